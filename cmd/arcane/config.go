package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcane-flight/internal/config"
	"github.com/vovakirdan/arcane-flight/internal/games/arcane"
)

var flagWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the built-in Arcane Flight config as YAML. Edit a copy and pass
it with --config, or save it as ~/.arcade/configs/arcane.yaml.

Examples:
  arcane config > my-arcane.yaml
  arcane config --write`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagWrite, "write", false, "Write to ~/.arcade/configs/arcane.yaml (never overwrites)")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	data := config.GetDefaultYAML(arcane.ID)
	if data == nil {
		return fmt.Errorf("no default config for %q", arcane.ID)
	}
	if !flagWrite {
		_, err := os.Stdout.Write(data)
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot get home directory: %w", err)
	}
	path := filepath.Join(home, ".arcade", "configs", "arcane.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	logger.Info("config written", "path", path)
	return nil
}
