package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blink-tac-toe/internal/registry"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"list"},
	Short:   "List emoji categories",
	Long: `Shows the built-in categories and any custom ones from the config file.

Custom categories are added under "categories" in the config:

  categories:
    - id: weather2
      title: Weather
      symbols: ["☀️", "🌧️", "🌈", "⚡"]`,
	Args: cobra.NoArgs,
	Run:  runCategories,
}

func runCategories(_ *cobra.Command, _ []string) {
	loadConfig()
	cats := registry.List()

	if len(cats) == 0 {
		fmt.Println("No categories available.")
		return
	}

	fmt.Println("Available categories:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, c := range cats {
		maxIDLen = max(maxIDLen, len(c.ID))
		maxTitleLen = max(maxTitleLen, len(c.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Symbols")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-------")

	for _, c := range cats {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, c.ID, maxTitleLen, c.Title, c.Preview())
	}

	fmt.Println()
	fmt.Println("Run 'blink play --p1 <id> --p2 <id>' to play with them.")
}
