package core

import (
	"strings"
	"time"
)

// Note is the central entity of the domain.
// It represents a single note owned by a user, together with its
// classification facets and lifecycle state. The engines only ever read
// snapshots of notes; creation and mutation go through the Service.
type Note struct {
	ID         string     `json:"id" yaml:"id"`
	UserID     string     `json:"user_id" yaml:"user_id"`
	Title      string     `json:"title,omitempty" yaml:"title,omitempty"`
	Content    string     `json:"content" yaml:"content"`
	Tags       []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Category   string     `json:"category,omitempty" yaml:"category,omitempty"`
	Type       string     `json:"type,omitempty" yaml:"type,omitempty"`
	Priority   string     `json:"priority,omitempty" yaml:"priority,omitempty"`
	Importance string     `json:"importance,omitempty" yaml:"importance,omitempty"`
	Status     string     `json:"status,omitempty" yaml:"status,omitempty"`
	IsTask     bool       `json:"is_task" yaml:"is_task"`
	IsList     bool       `json:"is_list" yaml:"is_list"`
	IsIdea     bool       `json:"is_idea" yaml:"is_idea"`
	DueDate    *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	URL        string     `json:"url,omitempty" yaml:"url,omitempty"`
	Archived   bool       `json:"archived" yaml:"archived"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" yaml:"updated_at"`
}

// Partition identifies one of the two disjoint note subsets separated by the
// archived flag. The local cache keeps one sync stamp per partition; a note
// moves between partitions by flipping the flag, never by duplication.
type Partition string

const (
	PartitionActive   Partition = "active"
	PartitionArchived Partition = "archived"
)

// PartitionFor maps an archived flag to its partition name.
func PartitionFor(archived bool) Partition {
	if archived {
		return PartitionArchived
	}
	return PartitionActive
}

// NormalizeTags trims whitespace, drops empty entries and de-duplicates
// while preserving first-occurrence order. Persisted notes must never carry
// empty-string tags.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
