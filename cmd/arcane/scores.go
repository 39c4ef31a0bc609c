package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcane-flight/internal/games/arcane"
	"github.com/vovakirdan/arcane-flight/internal/platform/tui"
	"github.com/vovakirdan/arcane-flight/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
	flagExportAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [witch]",
	Short: "Show high scores",
	Long: `Display the best Arcane Flight runs, optionally for one witch,
followed by per-witch statistics.

Examples:
  arcane scores
  arcane scores gold --limit 5
  arcane scores --interactive
  arcane scores --all > runs.json
  arcane scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
	scoresCmd.Flags().BoolVar(&flagExportAll, "all", false, "Print every recorded run as JSON")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(arcane.ID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagExportAll {
		return exportScores(os.Stdout, store)
	}

	cfg, err := arcane.LoadConfig()
	if err != nil {
		logger.Warn("using default config", "error", err)
	}

	if flagInteractive {
		ids := make([]string, len(cfg.Characters))
		for i, ch := range cfg.Characters {
			ids[i] = ch.ID
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, arcane.ID, "Arcane Flight", ids, width, height)
	}

	character := ""
	if len(args) > 0 {
		character = args[0]
		if _, ok := cfg.Character(character); !ok {
			logger.Warn("witch is not in the current config", "witch", character)
		}
	}

	scores, err := store.TopScores(arcane.ID, character, flagLimit)
	if err != nil {
		return err
	}

	title := "High Scores - Arcane Flight"
	if character != "" {
		title += " (" + character + ")"
	}
	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arcane play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "Rank", "Score", "Witch", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		who := entry.Character
		if who == "" {
			who = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-8s  %s\n", i+1, entry.Score, who, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.CharacterStats(arcane.ID)
	if err != nil {
		return err
	}
	total, err := store.GetGameStats(arcane.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("  %-8s  %5s  %5s  %6s\n", "Witch", "Runs", "Best", "Avg")
	for _, st := range stats {
		who := st.Character
		if who == "" {
			who = "-"
		}
		fmt.Printf("  %-8s  %5d  %5d  %6.1f\n", who, st.GamesCount, st.HighScore, st.AvgScore)
	}
	fmt.Printf("  %-8s  %5d  %5d  %6.1f\n", "Total", total.GamesCount, total.HighScore, total.AvgScore)
	if !total.LastPlayed.IsZero() {
		fmt.Printf("\nLast run: %s\n", total.LastPlayed.Format("2006-01-02 15:04"))
	}

	best, err := bestScore(store)
	if err != nil {
		return err
	}
	if best > 0 {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

// bestScore is the larger of the stored best and the best recorded run.
// Zero-score runs are never recorded, so the stored best can be the only trace.
func bestScore(store *storage.Store) (int, error) {
	stored, err := store.LoadBest(arcane.BestKey)
	if err != nil {
		return 0, err
	}
	high, err := store.HighScore(arcane.ID)
	if err != nil {
		return 0, err
	}
	return max(stored, high), nil
}

// exportScores writes every run, best first, as indented JSON.
func exportScores(w io.Writer, store *storage.Store) error {
	runs, err := store.AllScores(arcane.ID)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []storage.ScoreEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runs)
}
