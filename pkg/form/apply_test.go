package form

import (
	"testing"

	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSchema(t *testing.T, lang string) *schema.Schema {
	t.Helper()
	s, err := schema.Load(lang)
	require.NoError(t, err)
	return s
}

func TestApply_TextReplaces(t *testing.T) {
	s := loadSchema(t, "ru")
	a := s.Defaults()

	a, err := Apply(s, a, "name", "Anna")
	require.NoError(t, err)
	assert.Equal(t, "Anna", a["name"].Text)

	a, err = Apply(s, a, "name", "Ivan")
	require.NoError(t, err)
	assert.Equal(t, "Ivan", a["name"].Text)
}

func TestApply_SingleReplaces(t *testing.T) {
	s := loadSchema(t, "ru")
	a := s.Defaults()
	assert.Equal(t, "solo", a["attendance"].Text)

	a, err := Apply(s, a, "attendance", "nope")
	require.NoError(t, err)
	assert.Equal(t, "nope", a["attendance"].Text)
}

func TestApply_MultiToggles(t *testing.T) {
	s := loadSchema(t, "ru")
	a := s.Defaults()

	a, err := Apply(s, a, "alcohol", "red")
	require.NoError(t, err)
	a, err = Apply(s, a, "alcohol", "white")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"red", "white"}, a["alcohol"].Selections)

	// Toggling an already-selected option removes it.
	a, err = Apply(s, a, "alcohol", "white")
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, a["alcohol"].Selections)
}

func TestApply_ExclusiveOptionRules(t *testing.T) {
	s := loadSchema(t, "ru")
	a := s.Defaults()

	// Default is the exclusive "I don't drink" option; picking a drink
	// removes it.
	assert.Equal(t, []string{"nope"}, a["alcohol"].Selections)
	a, err := Apply(s, a, "alcohol", "red")
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, a["alcohol"].Selections)

	a, err = Apply(s, a, "alcohol", "champagne")
	require.NoError(t, err)

	// Picking the exclusive option collapses the set to exactly it.
	a, err = Apply(s, a, "alcohol", "nope")
	require.NoError(t, err)
	assert.Equal(t, []string{"nope"}, a["alcohol"].Selections)
}

func TestApply_UnknownFieldAndOption(t *testing.T) {
	s := loadSchema(t, "ru")
	a := s.Defaults()

	_, err := Apply(s, a, "phone", "+7 900 000 00 00")
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	_, err = Apply(s, a, "alcohol", "whiskey")
	assert.ErrorIs(t, err, domain.ErrUnknownOption)

	_, err = Apply(s, a, "attendance", "maybe")
	assert.ErrorIs(t, err, domain.ErrUnknownOption)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s := loadSchema(t, "ru")
	orig := s.Defaults()

	_, err := Apply(s, orig, "alcohol", "red")
	require.NoError(t, err)
	assert.Equal(t, []string{"nope"}, orig["alcohol"].Selections)
}

func TestDisabled_DerivedFromAttendance(t *testing.T) {
	s := loadSchema(t, "ru")
	a := s.Defaults()

	assert.False(t, Disabled(s, a, "alcohol"))
	assert.Empty(t, DisabledFields(s, a))

	a, err := Apply(s, a, "attendance", "nope")
	require.NoError(t, err)

	assert.True(t, Declining(s, a))
	assert.True(t, Disabled(s, a, "alcohol"))
	assert.True(t, Disabled(s, a, "about"))
	assert.False(t, Disabled(s, a, "attendance"))
	assert.False(t, Disabled(s, a, "name"))
	assert.False(t, Disabled(s, a, "surname"))
	assert.Equal(t, []string{"alcohol", "about"}, DisabledFields(s, a))

	// Flipping back re-enables everything; nothing is cached.
	a, err = Apply(s, a, "attendance", "solo")
	require.NoError(t, err)
	assert.Empty(t, DisabledFields(s, a))
}
