package form

import (
	"strings"

	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/schema"
)

// Validate checks the whole answer set against the schema and returns a
// problem per offending field. Rules are evaluated independently and all
// accumulate; nothing short-circuits. An empty result means the response
// is submittable.
//
// Disabled fields (see Disabled) are skipped except for required text
// fields, which stay required in both flows.
func Validate(s *schema.Schema, answers domain.Answers) domain.ValidationResult {
	result := make(domain.ValidationResult)

	for i := range s.Fields {
		f := &s.Fields[i]
		v := answers[f.ID]

		switch f.Kind {
		case domain.KindSingle:
			if Disabled(s, answers, f.ID) {
				continue
			}
			if v.Text == "" {
				result[f.ID] = f.ErrorText
			}

		case domain.KindMulti:
			if Disabled(s, answers, f.ID) {
				continue
			}
			if len(v.Selections) == 0 {
				result[f.ID] = f.ErrorText
			}

		case domain.KindText:
			// Identity fields are required regardless of the declining flow.
			if f.Required && strings.TrimSpace(v.Text) == "" {
				result[f.ID] = f.ErrorText
			}

		case domain.KindNote:
			// Optional free text never produces errors.
		}
	}

	return result
}
