package schema

import (
	"fmt"
	"strings"

	"github.com/kdvornichenko/birthday/pkg/domain"
)

// DefinitionError reports one problem with a questionnaire definition.
type DefinitionError struct {
	Field  string
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// AggregateError collects every definition problem found in one pass.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid questionnaire (%d problems):\n- %s",
		len(e.Errors), strings.Join(msgs, "\n- "))
}

// Validate checks the definition-level invariants: unique field IDs, option
// lists present exactly on choice fields, at most one default per single
// field, exclusive options that exist, and attendance/identity references
// that resolve. All problems are reported at once.
func (s *Schema) Validate() error {
	var errs []error
	fail := func(field, reason string) {
		errs = append(errs, &DefinitionError{Field: field, Reason: reason})
	}

	seen := make(map[string]bool, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.ID == "" {
			fail("", fmt.Sprintf("field #%d has no id", i))
			continue
		}
		if seen[f.ID] {
			fail(f.ID, "duplicate id")
		}
		seen[f.ID] = true

		if !f.Kind.Valid() {
			fail(f.ID, fmt.Sprintf("unknown kind %q", f.Kind))
			continue
		}
		if f.Kind.IsChoice() && len(f.Options) == 0 {
			fail(f.ID, "choice field has no options")
		}
		if !f.Kind.IsChoice() && len(f.Options) > 0 {
			fail(f.ID, "non-choice field has options")
		}

		values := make(map[string]bool, len(f.Options))
		defaults := 0
		for _, opt := range f.Options {
			if values[opt.Value] {
				fail(f.ID, fmt.Sprintf("duplicate option value %q", opt.Value))
			}
			values[opt.Value] = true
			if opt.Default {
				defaults++
			}
		}
		if f.Kind == domain.KindSingle && defaults > 1 {
			fail(f.ID, "single-choice field has more than one default option")
		}
		if f.Exclusive != "" {
			if f.Kind != domain.KindMulti {
				fail(f.ID, "exclusive option on a non-multi field")
			} else if !values[f.Exclusive] {
				fail(f.ID, fmt.Sprintf("exclusive option %q does not exist", f.Exclusive))
			}
		}
	}

	att, ok := s.Field(s.Attendance.Field)
	switch {
	case !ok:
		fail(s.Attendance.Field, "attendance field does not exist")
	case att.Kind != domain.KindSingle:
		fail(att.ID, "attendance field is not single-choice")
	default:
		if _, ok := att.Option(s.Attendance.Declining); !ok {
			fail(att.ID, fmt.Sprintf("declining option %q does not exist", s.Attendance.Declining))
		}
	}

	for _, id := range s.Identity {
		f, ok := s.Field(id)
		if !ok {
			fail(id, "identity field does not exist")
			continue
		}
		if f.Kind != domain.KindText {
			fail(id, "identity field is not a text field")
		}
	}

	if s.Messages.Declining == "" {
		fail("", "messages.declining template is empty")
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
