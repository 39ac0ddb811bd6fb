package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QueryField enumerates the note fields the advanced search can address.
// The set is closed so that an invalid field name is a validation error
// rather than a silently unmatched condition.
type QueryField string

const (
	FieldTitle      QueryField = "title"
	FieldContent    QueryField = "content"
	FieldTags       QueryField = "tags"
	FieldCategory   QueryField = "category"
	FieldType       QueryField = "type"
	FieldPriority   QueryField = "priority"
	FieldImportance QueryField = "importance"
	FieldStatus     QueryField = "status"
	FieldURL        QueryField = "url"
	FieldDueDate    QueryField = "due_date"
	FieldCreatedAt  QueryField = "created_at"
	FieldUpdatedAt  QueryField = "updated_at"
)

// Operator enumerates the condition operators of the advanced search.
type Operator string

const (
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpStartsWith  Operator = "starts_with"
	OpEndsWith    Operator = "ends_with"
	OpIncludes    Operator = "includes"
	OpNotIncludes Operator = "not_includes"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpBefore      Operator = "before"
	OpAfter       Operator = "after"

	// OpBetween is recognized but not implemented: it always evaluates to
	// false. Kept that way deliberately, see query tests.
	OpBetween Operator = "between"
)

// Condition is a single field/operator/value predicate.
type Condition struct {
	Field    QueryField `json:"field" yaml:"field"`
	Operator Operator   `json:"operator" yaml:"operator"`
	Value    string     `json:"value" yaml:"value"`
}

// MatchMode combines conditions conjunctively (all) or disjunctively (any).
type MatchMode string

const (
	MatchAll MatchMode = "all"
	MatchAny MatchMode = "any"
)

// Search is a full advanced-search request.
type Search struct {
	Queries []Condition `json:"queries" yaml:"queries"`
	Match   MatchMode   `json:"match_type" yaml:"match_type"`
}

// ValidationResult reports pre-submission validation of a condition list.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ParseQueryField validates a user-supplied query field name.
func ParseQueryField(s string) (QueryField, error) {
	f := QueryField(s)
	if _, ok := fieldKinds[f]; !ok {
		return "", fmt.Errorf("unknown query field %q", s)
	}
	return f, nil
}

// ParseOperator validates a user-supplied operator name.
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	if !knownOperators[op] {
		return "", fmt.Errorf("unknown operator %q", s)
	}
	return op, nil
}

// EvaluateCondition reports whether a note satisfies a single condition.
// An absent field value satisfies only the negative operators; every
// positive operator fails against it. Unknown fields and operators evaluate
// to false (fail closed).
func EvaluateCondition(n Note, c Condition) bool {
	fv, known := lookupField(n, c.Field)
	if !known {
		return false
	}
	if !fv.present() {
		return isNegative(c.Operator)
	}

	value := strings.ToLower(c.Value)
	text := strings.ToLower(fv.coerce())

	switch c.Operator {
	case OpContains:
		return strings.Contains(text, value)
	case OpNotContains:
		return !strings.Contains(text, value)
	case OpEquals:
		return text == value
	case OpNotEquals:
		return text != value
	case OpStartsWith:
		return strings.HasPrefix(text, value)
	case OpEndsWith:
		return strings.HasSuffix(text, value)
	case OpIncludes:
		return fv.includes(value)
	case OpNotIncludes:
		return !fv.includes(value)
	case OpGreaterThan, OpLessThan:
		left, err1 := strconv.ParseFloat(fv.coerce(), 64)
		right, err2 := strconv.ParseFloat(c.Value, 64)
		if err1 != nil || err2 != nil {
			return false
		}
		if c.Operator == OpGreaterThan {
			return left > right
		}
		return left < right
	case OpBefore, OpAfter:
		left, okL := fv.asTime()
		right, okR := parseQueryTime(c.Value)
		if !okL || !okR {
			return false
		}
		if c.Operator == OpBefore {
			return left.Before(right)
		}
		return left.After(right)
	case OpBetween:
		return false
	default:
		return false
	}
}

// ExecuteAdvancedSearch returns the notes matching the search. An empty
// query list returns the input unchanged. This engine is independent of
// ApplyFilters; callers use one or the other, never both in one pass.
func ExecuteAdvancedSearch(notes []Note, s Search) []Note {
	if len(s.Queries) == 0 {
		return notes
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if matchesSearchQueries(n, s) {
			out = append(out, n)
		}
	}
	return out
}

func matchesSearchQueries(n Note, s Search) bool {
	if s.Match == MatchAny {
		for _, c := range s.Queries {
			if EvaluateCondition(n, c) {
				return true
			}
		}
		return false
	}
	for _, c := range s.Queries {
		if !EvaluateCondition(n, c) {
			return false
		}
	}
	return true
}

// ValidateSearch checks a condition list before execution and collects one
// human-readable error per offending condition, 1-indexed.
func ValidateSearch(queries []Condition) ValidationResult {
	var errs []string
	for i, c := range queries {
		pos := i + 1
		if c.Field == "" {
			errs = append(errs, fmt.Sprintf("condition %d: field is required", pos))
		} else if _, ok := fieldKinds[c.Field]; !ok {
			errs = append(errs, fmt.Sprintf("condition %d: unknown field %q", pos, c.Field))
		}
		if c.Operator == "" {
			errs = append(errs, fmt.Sprintf("condition %d: operator is required", pos))
		} else if !knownOperators[c.Operator] {
			errs = append(errs, fmt.Sprintf("condition %d: unknown operator %q", pos, c.Operator))
		}
		if c.Value == "" {
			errs = append(errs, fmt.Sprintf("condition %d: value is required", pos))
		}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindList
	kindTime
)

var fieldKinds = map[QueryField]fieldKind{
	FieldTitle:      kindText,
	FieldContent:    kindText,
	FieldTags:       kindList,
	FieldCategory:   kindText,
	FieldType:       kindText,
	FieldPriority:   kindText,
	FieldImportance: kindText,
	FieldStatus:     kindText,
	FieldURL:        kindText,
	FieldDueDate:    kindTime,
	FieldCreatedAt:  kindTime,
	FieldUpdatedAt:  kindTime,
}

var knownOperators = map[Operator]bool{
	OpContains: true, OpNotContains: true,
	OpEquals: true, OpNotEquals: true,
	OpStartsWith: true, OpEndsWith: true,
	OpIncludes: true, OpNotIncludes: true,
	OpGreaterThan: true, OpLessThan: true,
	OpBefore: true, OpAfter: true,
	OpBetween: true,
}

func isNegative(op Operator) bool {
	return op == OpNotEquals || op == OpNotContains || op == OpNotIncludes
}

// fieldValue is the resolved value of a query field on one note.
type fieldValue struct {
	kind fieldKind
	text string
	list []string
	when *time.Time
}

func lookupField(n Note, f QueryField) (fieldValue, bool) {
	kind, ok := fieldKinds[f]
	if !ok {
		return fieldValue{}, false
	}
	fv := fieldValue{kind: kind}
	switch f {
	case FieldTitle:
		fv.text = n.Title
	case FieldContent:
		fv.text = n.Content
	case FieldTags:
		fv.list = n.Tags
	case FieldCategory:
		fv.text = n.Category
	case FieldType:
		fv.text = n.Type
	case FieldPriority:
		fv.text = n.Priority
	case FieldImportance:
		fv.text = n.Importance
	case FieldStatus:
		fv.text = n.Status
	case FieldURL:
		fv.text = n.URL
	case FieldDueDate:
		fv.when = n.DueDate
	case FieldCreatedAt:
		if !n.CreatedAt.IsZero() {
			t := n.CreatedAt
			fv.when = &t
		}
	case FieldUpdatedAt:
		if !n.UpdatedAt.IsZero() {
			t := n.UpdatedAt
			fv.when = &t
		}
	}
	return fv, true
}

func (fv fieldValue) present() bool {
	switch fv.kind {
	case kindList:
		return len(fv.list) > 0
	case kindTime:
		return fv.when != nil
	default:
		return fv.text != ""
	}
}

// coerce renders the value as a string, the way the backend serializes it:
// tag lists join with commas, due dates are calendar days, timestamps are
// RFC 3339.
func (fv fieldValue) coerce() string {
	switch fv.kind {
	case kindList:
		return strings.Join(fv.list, ",")
	case kindTime:
		if fv.when == nil {
			return ""
		}
		return fv.when.Format(time.RFC3339)
	default:
		return fv.text
	}
}

// includes tests case-insensitive substring membership against any element
// of a list value, falling back to a plain substring test on scalars.
func (fv fieldValue) includes(value string) bool {
	if fv.kind == kindList {
		for _, item := range fv.list {
			if strings.Contains(strings.ToLower(item), value) {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(fv.coerce()), value)
}

func (fv fieldValue) asTime() (time.Time, bool) {
	if fv.when != nil {
		return *fv.when, true
	}
	return parseQueryTime(fv.coerce())
}

func parseQueryTime(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
