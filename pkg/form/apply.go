package form

import (
	"fmt"
	"slices"

	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/schema"
)

// Apply updates one field of the answer set with a user input value and
// returns the new answers. The input semantics depend on the field kind:
//
//   - text/note: value replaces the stored string (sanitized);
//   - single: value selects the option with that value;
//   - multi: value toggles membership of that option in the selection set,
//     honoring the exclusive option rule.
//
// The given answers are not mutated.
func Apply(s *schema.Schema, answers domain.Answers, fieldID, value string) (domain.Answers, error) {
	f, ok := s.Field(fieldID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownField, fieldID)
	}

	out := answers.Clone()
	if out == nil {
		out = make(domain.Answers)
	}
	current := out[fieldID]

	switch f.Kind {
	case domain.KindText, domain.KindNote:
		clean, err := SanitizeInput(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fieldID, err)
		}
		current = domain.FieldValue{Text: clean}

	case domain.KindSingle:
		if _, ok := f.Option(value); !ok {
			return nil, fmt.Errorf("%w: %q in field %q", domain.ErrUnknownOption, value, fieldID)
		}
		current = domain.FieldValue{Text: value}

	case domain.KindMulti:
		if _, ok := f.Option(value); !ok {
			return nil, fmt.Errorf("%w: %q in field %q", domain.ErrUnknownOption, value, fieldID)
		}
		current = domain.FieldValue{Selections: toggle(f, current.Selections, value)}
	}

	out[fieldID] = current
	return out, nil
}

// toggle flips membership of value in the selection set. The exclusive
// option replaces the whole set when selected; selecting anything else
// drops the exclusive option.
func toggle(f *domain.FieldDescriptor, selections []string, value string) []string {
	if slices.Contains(selections, value) {
		return slices.DeleteFunc(slices.Clone(selections), func(v string) bool {
			return v == value
		})
	}
	if f.Exclusive != "" {
		if value == f.Exclusive {
			return []string{value}
		}
		selections = slices.DeleteFunc(slices.Clone(selections), func(v string) bool {
			return v == f.Exclusive
		})
	}
	return append(slices.Clone(selections), value)
}

// Declining reports whether the respondent has selected the declining
// attendance option.
func Declining(s *schema.Schema, answers domain.Answers) bool {
	return answers[s.Attendance.Field].Text == s.Attendance.Declining
}

// Disabled reports whether a field is currently disabled. It is derived
// from the attendance answer on every call, never cached: while the
// respondent is declining, everything except the attendance field itself
// and the identity fields is disabled.
func Disabled(s *schema.Schema, answers domain.Answers, fieldID string) bool {
	if !Declining(s, answers) {
		return false
	}
	return fieldID != s.Attendance.Field && !s.IsIdentity(fieldID)
}

// DisabledFields lists the currently disabled fields in schema order.
func DisabledFields(s *schema.Schema, answers domain.Answers) []string {
	var out []string
	for _, f := range s.Fields {
		if Disabled(s, answers, f.ID) {
			out = append(out, f.ID)
		}
	}
	return out
}
