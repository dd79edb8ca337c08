package schema

import (
	"github.com/kdvornichenko/birthday/pkg/domain"
)

// Attendance names the field that decides between the affirmative and
// declining flows, and the option value that means "not attending".
type Attendance struct {
	Field     string `json:"field" yaml:"field"`
	Declining string `json:"declining" yaml:"declining"`
}

// Messages holds the localized fixed strings of the composed message.
type Messages struct {
	// Declining is a template with two %s verbs: name, surname.
	Declining string `json:"declining" yaml:"declining"`
	// Identity labels the "{name} {surname}" line of the affirmative form.
	Identity string `json:"identity" yaml:"identity"`
	// NotSpecified replaces a display text that cannot be resolved to an
	// option. Validation makes this unreachable in practice.
	NotSpecified string `json:"not_specified" yaml:"not_specified"`
	// NoneSelected replaces an empty multi-choice selection.
	NoneSelected string `json:"none_selected" yaml:"none_selected"`
	// EmptyNote replaces an empty optional note.
	EmptyNote string `json:"empty_note" yaml:"empty_note"`
}

// Schema is a complete, read-only questionnaire definition.
type Schema struct {
	Lang       string                   `json:"lang" yaml:"lang"`
	Attendance Attendance               `json:"attendance" yaml:"attendance"`
	Identity   []string                 `json:"identity" yaml:"identity"`
	Fields     []domain.FieldDescriptor `json:"fields" yaml:"fields"`
	Messages   Messages                 `json:"messages" yaml:"messages"`

	byID map[string]int
}

// index builds the field lookup table. Called once after unmarshaling.
func (s *Schema) index() {
	s.byID = make(map[string]int, len(s.Fields))
	for i := range s.Fields {
		s.byID[s.Fields[i].ID] = i
	}
}

// Field returns the descriptor for the given field ID.
func (s *Schema) Field(id string) (*domain.FieldDescriptor, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.Fields[i], true
}

// Option resolves an option by (field ID, option value).
func (s *Schema) Option(fieldID, value string) (domain.OptionDescriptor, bool) {
	f, ok := s.Field(fieldID)
	if !ok {
		return domain.OptionDescriptor{}, false
	}
	return f.Option(value)
}

// IsIdentity reports whether the field carries respondent identity
// (name, surname). Identity fields stay required and enabled even when the
// respondent is declining.
func (s *Schema) IsIdentity(fieldID string) bool {
	for _, id := range s.Identity {
		if id == fieldID {
			return true
		}
	}
	return false
}

// Defaults returns the initial answers a fresh session starts from: every
// choice field set to its default option(s), text fields empty.
func (s *Schema) Defaults() domain.Answers {
	answers := make(domain.Answers, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		var v domain.FieldValue
		switch f.Kind {
		case domain.KindSingle:
			if d := f.Defaults(); len(d) > 0 {
				v.Text = d[0]
			}
		case domain.KindMulti:
			v.Selections = f.Defaults()
		case domain.KindText, domain.KindNote:
			// Starts empty.
		}
		answers[f.ID] = v
	}
	return answers
}
