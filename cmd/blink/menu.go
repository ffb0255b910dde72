package main

import (
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick categories, mode and difficulty, then play",
	Long: `Start with the setup menu.

Both players pick an emoji category; a category taken by one player is
not available to the other. After a match, press C to come back here.

Controls:
  Up/Down/j/k     - Move between rows
  Left/Right/h/l  - Change the value
  Enter           - Start
  Tab             - Win tallies
  ?               - Rules
  Q               - Quit

Examples:
  blink menu
  blink menu --db ./blink.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	runSession(loadConfig(), nil)
}
