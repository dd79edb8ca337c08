package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kdvornichenko/birthday/internal/presentation/tui"
	"github.com/kdvornichenko/birthday/pkg/domain"
	"github.com/kdvornichenko/birthday/pkg/form"
	"github.com/kdvornichenko/birthday/pkg/schema"
)

var previewCmd = &cobra.Command{
	Use:   "preview [answers.yaml]",
	Short: "Render the questionnaire and a sample message",
	Long: `Shows the questionnaire the guests will see and the message the chat
would receive, without sending anything. By default the message uses the
schema defaults with placeholder names; pass a YAML file mapping field IDs
to values to preview a specific response.`,
	Run: func(cmd *cobra.Command, args []string) {
		lang, _ := cmd.Flags().GetString("lang")
		if err := runPreview(lang, args); err != nil {
			fmt.Printf("Preview failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringP("lang", "l", "", "Questionnaire language (default: "+schema.DefaultLang+")")
}

func runPreview(lang string, args []string) error {
	s, err := schema.Load(lang)
	if err != nil {
		return err
	}

	answers := sampleAnswers(s)
	heading := "Sample message"
	if len(args) > 0 {
		answers, err = answersFromFile(s, args[0])
		if err != nil {
			return err
		}
		heading = "Message for " + args[0]
	}

	render := tui.NewRenderer()

	fmt.Println()
	fmt.Println(tui.Heading(fmt.Sprintf("Questionnaire (%s)", s.Lang)))
	rendered, err := render(questionnaireMarkdown(s))
	if err != nil {
		return err
	}
	fmt.Print(rendered)

	fmt.Println()
	fmt.Println(tui.Heading(heading))
	fmt.Println(form.Compose(s, answers))
	return nil
}

// answersFromFile applies a YAML map of field IDs to values (a string, or
// a list of option values for multi fields) over the schema defaults.
func answersFromFile(s *schema.Schema, path string) (domain.Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	answers := s.Defaults()
	for fieldID, value := range raw {
		var inputs []string
		switch v := value.(type) {
		case string:
			inputs = []string{v}
		case []any:
			for _, item := range v {
				inputs = append(inputs, fmt.Sprint(item))
			}
		default:
			inputs = []string{fmt.Sprint(v)}
		}
		for _, input := range inputs {
			answers, err = form.Apply(s, answers, fieldID, input)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	return answers, nil
}

// questionnaireMarkdown lists the fields the way the form presents them.
func questionnaireMarkdown(s *schema.Schema) string {
	var b strings.Builder
	for i := range s.Fields {
		f := &s.Fields[i]
		required := ""
		if f.Required {
			required = " *(required)*"
		}
		fmt.Fprintf(&b, "- **%s**%s\n", f.Label, required)
		for _, opt := range f.Options {
			marker := " "
			if opt.Default {
				marker = "x"
			}
			fmt.Fprintf(&b, "  - [%s] %s\n", marker, opt.Text)
		}
	}
	return b.String()
}

// sampleAnswers fills the defaults with placeholder identity values so the
// composed message shows every line.
func sampleAnswers(s *schema.Schema) domain.Answers {
	answers := s.Defaults()
	for i, id := range s.Identity {
		answers[id] = domain.FieldValue{Text: fmt.Sprintf("Guest%d", i+1)}
	}
	return answers
}
