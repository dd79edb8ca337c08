package form

import (
	"fmt"
	"strings"

	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/schema"
)

// Compose renders the outbound message from a validated answer snapshot.
// The result is immutable once produced: later edits to the answers do not
// affect a message already captured for delivery.
//
// A declining respondent yields the short declining template with the
// identity fields only. Otherwise the message is the identity line
// followed by one labeled line per non-identity field in schema order.
// Only option display texts appear in the output, never internal values.
func Compose(s *schema.Schema, answers domain.Answers) string {
	name := cleanText(answers[firstIdentity(s, 0)].Text)
	surname := cleanText(answers[firstIdentity(s, 1)].Text)

	if Declining(s, answers) {
		return fmt.Sprintf(s.Messages.Declining, name, surname)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s", s.Messages.Identity, name, surname)

	for i := range s.Fields {
		f := &s.Fields[i]
		if s.IsIdentity(f.ID) {
			continue
		}
		line, ok := renderLine(s, f, answers[f.ID])
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(line)
	}

	return b.String()
}

// renderLine resolves one field's stored value to display text. The second
// return value is false when the field has nothing worth a line (an empty
// optional note stays listed with its empty marker, matching the original
// message format).
func renderLine(s *schema.Schema, f *domain.FieldDescriptor, v domain.FieldValue) (string, bool) {
	switch f.Kind {
	case domain.KindSingle:
		if opt, ok := f.Option(v.Text); ok {
			return opt.Text, true
		}
		// Validation guarantees a selection; an unresolved raw value is
		// never echoed.
		return s.Messages.NotSpecified, true

	case domain.KindMulti:
		var texts []string
		for _, sel := range v.Selections {
			if opt, ok := f.Option(sel); ok {
				texts = append(texts, opt.Text)
			}
		}
		if len(texts) == 0 {
			return s.Messages.NoneSelected, true
		}
		return strings.Join(texts, ", "), true

	case domain.KindNote:
		if text := cleanText(v.Text); text != "" {
			return text, true
		}
		return s.Messages.EmptyNote, true

	case domain.KindText:
		if text := cleanText(v.Text); text != "" {
			return text, true
		}
		return s.Messages.NotSpecified, true
	}

	return "", false
}

// cleanText re-sanitizes free text at composition time. Input was already
// sanitized on Apply; this keeps the guarantee even for answers written to
// the store by other frontends.
func cleanText(text string) string {
	clean, err := SanitizeInput(text)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(clean)
}

// firstIdentity returns the identity field ID at the given position, so
// the composer tolerates schemas with a single identity field.
func firstIdentity(s *schema.Schema, i int) string {
	if i < len(s.Identity) {
		return s.Identity[i]
	}
	return ""
}
