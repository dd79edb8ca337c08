package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown when the server starts.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Warm gradient, party colors
	s1 := termenv.String("  _____            _ _       ").Foreground(p.Color("#fb7185"))
	s2 := termenv.String(" |_   _|          (_) |      ").Foreground(p.Color("#f472b6"))
	s3 := termenv.String("   | |  _ ____   ___| |_ ___ ").Foreground(p.Color("#e879f9"))
	s4 := termenv.String("   | | | '_ \\ \\ / / | __/ _ \\").Foreground(p.Color("#c084fc"))
	s5 := termenv.String("  _| |_| | | \\ V /| | ||  __/").Foreground(p.Color("#a78bfa"))
	s6 := termenv.String(" |_____|_| |_|\\_/ |_|\\__\\___|").Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Printf("   v%s\n\n", version)
}

// Heading renders a colored section heading.
func Heading(text string) string {
	p := termenv.ColorProfile()
	return termenv.String("== " + text + " ==").Foreground(p.Color("#818cf8")).Bold().String()
}
