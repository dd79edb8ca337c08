package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "invite",
	Short: "Invite is the RSVP backend of the invitation site",
	Long:  `Invite serves the RSVP questionnaire: sessions, field edits, validation, and delivery of submissions to a Telegram chat.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
