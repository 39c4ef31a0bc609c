package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcane-flight/internal/games/arcane"
	"github.com/vovakirdan/arcane-flight/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered games and witches",
	Long:  `Shows the registered games and the witches Arcane Flight offers.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Println("Available games:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	cfg, err := arcane.LoadConfig()
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	fmt.Println()
	fmt.Println("Witches:")
	fmt.Println()
	for i, ch := range cfg.Characters {
		fmt.Printf("  [%d] %-8s %-10s %s\n", i+1, ch.ID, ch.Name, ch.Blurb)
	}

	fmt.Println()
	fmt.Println("Run 'arcane play' to fly.")
}
