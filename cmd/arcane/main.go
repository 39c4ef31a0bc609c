// arcane is a flap-to-fly terminal game: steer a witch on a broom through
// spires, runes and gates, locally or over SSH.
//
// Usage:
//
//	arcane play              - Play in this terminal
//	arcane list              - List available games
//	arcane scores [witch]    - Show high scores
//	arcane serve             - Start the SSH server (and optional HTTP API)
//	arcane snapshot          - Render a frame to PNG
//	arcane config            - Print the default game config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcane-flight/internal/games/arcane"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "arcane",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcane",
	Short: "Arcane Flight - fly a witch through the night sky",
	Long: `Arcane Flight is a flap-to-fly game for the terminal.

Pick a witch, tap to stay aloft, and thread the spires, runes,
pulse walls, swinging orbs and gates that drift in from the right.

Available commands:
  play      - Play in this terminal
  list      - Show registered games
  scores    - View high scores
  serve     - Host the game over SSH
  snapshot  - Render a frame to a PNG image
  config    - Print the default game config

Examples:
  arcane play
  arcane play --difficulty hard
  arcane scores gold
  arcane serve --ssh :2222 --http :8080
  arcane snapshot --ticks 600 --out frame.png`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// gameIDArg returns the game named on the command line, defaulting to Arcane Flight.
func gameIDArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return arcane.ID
}
