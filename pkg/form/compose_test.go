package form

import (
	"strings"
	"testing"

	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answersFor(t *testing.T, lang string, pairs ...[2]string) (*schema.Schema, domain.Answers) {
	t.Helper()
	s := loadSchema(t, lang)
	a := s.Defaults()
	var err error
	for _, p := range pairs {
		a, err = Apply(s, a, p[0], p[1])
		require.NoError(t, err)
	}
	return s, a
}

func TestCompose_AffirmativeMessage(t *testing.T) {
	// A complete affirmative response echoes display texts only.
	s, a := answersFor(t, "ru",
		[2]string{"name", "Anna"},
		[2]string{"surname", "Ivanova"},
		[2]string{"alcohol", "red"},
	)
	require.Empty(t, Validate(s, a))

	msg := Compose(s, a)
	assert.Contains(t, msg, "Anna Ivanova")
	assert.Contains(t, msg, "Приду")
	assert.Contains(t, msg, "Красное")

	// Internal option values never leak into the message.
	for _, line := range strings.Split(msg, "\n") {
		_, rest, _ := strings.Cut(line, ": ")
		assert.NotContains(t, rest, "solo")
		assert.NotContains(t, rest, "red")
	}
}

func TestCompose_DecliningTemplate(t *testing.T) {
	// A declining respondent gets the fixed template regardless of what
	// else is stored.
	s, a := answersFor(t, "en",
		[2]string{"name", "Ivan"},
		[2]string{"surname", "Petrov"},
		[2]string{"attendance", "nope"},
		[2]string{"about", "bringing a surprise"},
	)
	require.Empty(t, Validate(s, a))

	msg := Compose(s, a)
	assert.Equal(t, "Ivan Petrov is not attending", msg)
}

func TestCompose_MultiJoinAndEmptyNote(t *testing.T) {
	s, a := answersFor(t, "en",
		[2]string{"name", "Anna"},
		[2]string{"surname", "Ivanova"},
		[2]string{"alcohol", "red"},
		[2]string{"alcohol", "champagne"},
	)

	msg := Compose(s, a)
	assert.Contains(t, msg, "Red wine, Champagne")
	assert.Contains(t, msg, "Something else? (optional): None")
}

func TestCompose_FallbackMarkers(t *testing.T) {
	s, a := answersFor(t, "en",
		[2]string{"name", "Anna"},
		[2]string{"surname", "Ivanova"},
	)
	// Force an unresolvable single-choice value and an empty multi set
	// past Apply's option checks; composition must fall back instead of
	// echoing raw values.
	a["attendance"] = domain.FieldValue{Text: "ghost"}
	a["alcohol"] = domain.FieldValue{}

	msg := Compose(s, a)
	assert.Contains(t, msg, "Not specified")
	assert.Contains(t, msg, "Nothing selected")
	assert.NotContains(t, msg, "ghost")
}

func TestCompose_StripsMarkupFromFreeText(t *testing.T) {
	s, a := answersFor(t, "en",
		[2]string{"name", "Anna"},
		[2]string{"surname", "Ivanova"},
		[2]string{"about", `see you <b>there</b>`},
	)

	msg := Compose(s, a)
	assert.NotContains(t, msg, "<b>")
	assert.Contains(t, msg, "there")
}

func TestCompose_ImmutableSnapshot(t *testing.T) {
	s, a := answersFor(t, "en",
		[2]string{"name", "Anna"},
		[2]string{"surname", "Ivanova"},
		[2]string{"alcohol", "red"},
	)

	msg := Compose(s, a)
	_, err := Apply(s, a, "name", "Someone")
	require.NoError(t, err)
	assert.Equal(t, msg, Compose(s, a))
}
