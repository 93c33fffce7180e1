// Package cmd wires the sessgrep CLI together.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/sessgrep/internal/config"
	"github.com/nextlevelbuilder/sessgrep/internal/sessions"
)

const version = "0.1.0"

var (
	flagConfig  string
	flagVerbose bool
)

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sessgrep",
		Short: "Search coding-agent session transcripts",
		Long: `sessgrep searches the JSONL transcripts that coding agents write under a
projects directory. Matches come back as excerpts centered on the hits,
with metadata describing what was cut.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(flagVerbose)
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.sessgrep/config.json5)")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	root.AddCommand(searchCmd())
	root.AddCommand(sessionsCmd())
	root.AddCommand(configCmd())
	root.AddCommand(doctorCmd())
	return root
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func resolveConfigPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if env := os.Getenv("SESSGREP_CONFIG"); env != "" {
		return env
	}
	return config.DefaultPath()
}

func loadConfig() (*config.Config, error) {
	return config.Load(resolveConfigPath())
}

func newManager(cfg *config.Config) *sessions.Manager {
	return sessions.NewManager(cfg.ProjectsDir, slog.Default())
}
