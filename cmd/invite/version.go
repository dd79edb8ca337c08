package main

import (
	"fmt"

	"github.com/kdvornichenko/birthday"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of invite",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("invite version %s\n", birthday.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
