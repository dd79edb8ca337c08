package domain

// Kind identifies how a questionnaire field collects its value.
// It is a closed set: every switch over Kind must handle all four values.
type Kind string

const (
	// KindText is a free-text input (name, surname).
	KindText Kind = "text"
	// KindSingle is a single-choice group (radio).
	KindSingle Kind = "single"
	// KindMulti is a multiple-choice group (checkboxes).
	KindMulti Kind = "multi"
	// KindNote is an optional free-form note (textarea).
	KindNote Kind = "note"
)

// IsChoice reports whether fields of this kind carry an option list.
func (k Kind) IsChoice() bool {
	return k == KindSingle || k == KindMulti
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindSingle, KindMulti, KindNote:
		return true
	}
	return false
}

// FieldDescriptor describes one questionnaire field.
// Options is present iff Kind is single or multi.
type FieldDescriptor struct {
	ID       string `json:"id" yaml:"id"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Label    string `json:"label" yaml:"label"`
	Required bool   `json:"required,omitempty" yaml:"required"`

	// ErrorText is the localized message shown when the field fails
	// validation.
	ErrorText string `json:"error,omitempty" yaml:"error"`

	// Exclusive names the option of a multi field that clears all other
	// selections when chosen ("I don't drink"). Selecting any other option
	// removes the exclusive one from the set.
	Exclusive string `json:"exclusive,omitempty" yaml:"exclusive"`

	Options []OptionDescriptor `json:"options,omitempty" yaml:"options"`
}

// OptionDescriptor is one selectable option of a choice field.
// Value is the wire-internal key; Text is what the user sees and the only
// form ever echoed back into composed messages.
type OptionDescriptor struct {
	Value   string `json:"value" yaml:"value"`
	Text    string `json:"text" yaml:"text"`
	Default bool   `json:"default,omitempty" yaml:"default"`
}

// Option returns the option with the given value.
func (f *FieldDescriptor) Option(value string) (OptionDescriptor, bool) {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return OptionDescriptor{}, false
}

// Defaults returns the values of all options marked as default.
func (f *FieldDescriptor) Defaults() []string {
	var values []string
	for _, opt := range f.Options {
		if opt.Default {
			values = append(values, opt.Value)
		}
	}
	return values
}
