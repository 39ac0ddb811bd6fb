package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/sift/pkg/core"
)

// LoadSnapshot reads a full note snapshot from a YAML file. JSON snapshots
// parse too, JSON being a YAML subset.
func LoadSnapshot(path string) ([]core.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var notes []core.Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return notes, nil
}

func snapshotByID(notes []core.Note) map[string]core.Note {
	byID := make(map[string]core.Note, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
	}
	return byID
}
