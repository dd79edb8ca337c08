package domain

import "slices"

// FieldValue holds the current user-entered value of one field.
// Text carries the string for text/note fields and the selected option
// value for single-choice fields; Selections carries the selection set of
// multi-choice fields.
type FieldValue struct {
	Text       string   `json:"text,omitempty"`
	Selections []string `json:"selections,omitempty"`
}

// IsZero reports whether no value has been entered.
func (v FieldValue) IsZero() bool {
	return v.Text == "" && len(v.Selections) == 0
}

// Selected reports whether the given option value is in the selection set.
func (v FieldValue) Selected(value string) bool {
	return slices.Contains(v.Selections, value)
}

// Answers maps field IDs to their current values.
// The session manager owns the canonical copy; everything else works on
// snapshots obtained via Clone.
type Answers map[string]FieldValue

// Clone returns a deep copy so callers cannot mutate stored state.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	for id, v := range a {
		v.Selections = slices.Clone(v.Selections)
		out[id] = v
	}
	return out
}

// ValidationResult maps field IDs to a localized problem description.
// An empty result means the response set is submittable. It is recomputed
// in full on every submit attempt.
type ValidationResult map[string]string
