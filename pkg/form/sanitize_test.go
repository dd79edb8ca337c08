package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	ok, err := SanitizeInput(strings.Repeat("a", MaxInputSize))
	require.NoError(t, err)
	assert.Len(t, ok, MaxInputSize)

	_, err = SanitizeInput(strings.Repeat("a", MaxInputSize+1))
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("hello\xff\xfe")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestSanitizeInput_StripsControlChars(t *testing.T) {
	out, err := SanitizeInput("hello\x1b[31mworld\x00")
	require.NoError(t, err)
	assert.Equal(t, "hello[31mworld", out)
}

func TestSanitizeInput_KeepsWhitespaceControls(t *testing.T) {
	out, err := SanitizeInput("line one\nline two\ttabbed\r")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\ttabbed\r", out)
}

func TestSanitizeInput_StripsMarkup(t *testing.T) {
	out, err := SanitizeInput(`<img src=x onerror=alert(1)>plain <i>text</i>`)
	require.NoError(t, err)
	assert.NotContains(t, out, "<")
	assert.Contains(t, out, "plain")
	assert.Contains(t, out, "text")
}

func TestSanitizeInput_PlainTextUntouched(t *testing.T) {
	out, err := SanitizeInput("Анна Иванова")
	require.NoError(t, err)
	assert.Equal(t, "Анна Иванова", out)
}
