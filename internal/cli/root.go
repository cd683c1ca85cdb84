// Package cli implements the command-line interface for cubectl.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/concurrentcube/internal/config"
)

const version = "0.1.0"

var (
	// Global flags
	configDir string
	verbose   bool

	// Set by the root pre-run hook.
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubectl",
	Short: "Concurrent cube driver",
	Long: `cubectl drives a concurrent N×N×N cube: apply rotation sequences,
stress the admission scheduler with many goroutines, browse stored stress
runs, or watch a cube being rotated live.

Moves are written face:layer, with faces 0..5 (Up, Left, Front, Right,
Back, Down) and layers counted from the named face.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default: user config dir/cubectl)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntP("size", "n", 3, "Cube size N")
	rootCmd.PersistentFlags().String("db", "", "Database file path (default: ~/.concurrentcube/runs.db)")
}

func setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	dir := configDir
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return err
		}
	}

	var err error
	cfg, err = config.Load(dir, cmd.Flags())
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", slog.String("dir", dir), slog.Int("size", cfg.Size))
	return nil
}
