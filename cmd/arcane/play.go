package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcane-flight/internal/config"
	"github.com/vovakirdan/arcane-flight/internal/core"
	"github.com/vovakirdan/arcane-flight/internal/games/arcane"
	"github.com/vovakirdan/arcane-flight/internal/platform/tui"
	"github.com/vovakirdan/arcane-flight/internal/registry"
	"github.com/vovakirdan/arcane-flight/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in this terminal",
	Long: `Start Arcane Flight in the current terminal.

Controls:
  Space/Up/W/click - Flap (also starts a run, and restarts after a crash)
  1 / 2            - Pick a witch (ignored while flying)
  Q                - Back to the witches (ignored while flying)
  P                - Pause
  R                - Restart after a crash
  Ctrl+S           - Save a text screenshot
  Esc/Ctrl+C       - Quit

A run in flight only answers to flap, pause and quit: crash first to
switch witches or return to the selection screen.

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcane play
  arcane play --difficulty hard
  arcane play --config ./my-arcane.yaml
  arcane play --log-file /tmp/arcane.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write warnings to this file while playing")
}

// configureArcane applies --config and --difficulty and checks the result loads.
func configureArcane() (config.ArcaneConfig, error) {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return config.ArcaneConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	arcane.SetConfigPath(flagConfig)
	arcane.SetDifficultyPreset(flagDifficulty)
	return arcane.LoadConfig()
}

// openStore opens the scores database; failure leaves play without persistence.
func openStore() (*storage.Store, tui.Store) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores will not be saved", "error", err)
		return nil, nil
	}
	return store, store
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := gameIDArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcane list' to see available games", gameID)
	}
	if _, err := configureArcane(); err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	db, store := openStore()
	if db != nil {
		defer db.Close()
	}

	var opts []tui.ModelOption
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		fileLogger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "arcane"})
		fileLogger.SetLevel(logger.GetLevel())
		opts = append(opts, tui.WithLogger(fileLogger))
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if err := tui.Run(game, store, cfg, opts...); err != nil {
		return err
	}

	// Errors during play were kept off the alternate screen.
	if e, ok := game.(interface{ Err() error }); ok && e.Err() != nil {
		logger.Warn("problem during play", "error", e.Err())
	}
	return nil
}
