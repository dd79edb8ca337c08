package main

import (
	"fmt"
	"os"

	"github.com/kdvornichenko/birthday/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check questionnaire definitions for consistency",
	Long: `Validates the embedded questionnaire definitions, or a YAML file given
as an argument: unique field IDs, resolvable attendance and identity
references, option rules and message templates.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Questionnaires are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(args []string) error {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if _, err := schema.Parse(data); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		return nil
	}

	for _, lang := range schema.Languages() {
		if _, err := schema.Load(lang); err != nil {
			return fmt.Errorf("questionnaire %q: %w", lang, err)
		}
	}
	return nil
}
