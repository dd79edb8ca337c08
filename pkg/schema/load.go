package schema

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questionnaires/*.yaml
var questionnaires embed.FS

// DefaultLang is used when no language is configured.
const DefaultLang = "ru"

// Load returns the embedded questionnaire for the given language.
// The definition is validated before being returned; a malformed embedded
// file is a programming error surfaced at startup, not at submit time.
func Load(lang string) (*Schema, error) {
	if lang == "" {
		lang = DefaultLang
	}
	lang = strings.ToLower(lang)

	data, err := questionnaires.ReadFile("questionnaires/" + lang + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no questionnaire for language %q: %w", lang, err)
	}
	return Parse(data)
}

// Parse unmarshals and validates a questionnaire definition.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing questionnaire: %w", err)
	}
	s.index()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Source returns the raw embedded questionnaire definition for the given
// language.
func Source(lang string) ([]byte, error) {
	if lang == "" {
		lang = DefaultLang
	}
	lang = strings.ToLower(lang)

	data, err := questionnaires.ReadFile("questionnaires/" + lang + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no questionnaire for language %q: %w", lang, err)
	}
	return data, nil
}

// Languages lists the embedded questionnaire languages.
func Languages() []string {
	entries, err := questionnaires.ReadDir("questionnaires")
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return langs
}
