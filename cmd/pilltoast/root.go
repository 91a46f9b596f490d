// Package main provides the CLI entrypoint for pilltoast.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pilltoast/internal/audio"
	"github.com/jmylchreest/pilltoast/internal/config"
	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pilltoast",
	Short: "Pill-shaped toast notifications",
	Long: `pilltoast shows short, pill-shaped toast messages that slide in from
the top or bottom of the screen, hold, and slide away again.

Toasts can be shown in the terminal, sent to the pilltoastd desktop daemon,
previewed interactively or rendered to PNG.

Running pilltoast without a subcommand launches the interactive preview.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.Load(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/pilltoast/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// loadStyles returns a registry holding the configured styles.
func loadStyles() (*style.Registry, error) {
	reg := style.NewRegistry()
	if err := cfg.ApplyStyles(reg); err != nil {
		return nil, fmt.Errorf("failed to apply styles: %w", err)
	}
	return reg, nil
}

// soundPlayer returns the audio manager for reg, or nil when audio is off.
// The caller stops it.
func soundPlayer(reg *style.Registry) *audio.Manager {
	if !cfg.Audio.Enabled {
		return nil
	}
	m := audio.NewManager(cfg.Audio, audio.NewPlayer(logger), logger)
	m.Track(reg)
	return m
}

// hooksSound avoids storing a typed nil in the interface.
func hooksSound(m *audio.Manager) toast.SoundPlayer {
	if m == nil {
		return nil
	}
	return m
}

// toastArgs resolves the location and duration flags, falling back to the
// configured defaults when empty.
func toastArgs(location, duration string) (toast.Location, toast.Duration, error) {
	loc := cfg.Defaults.Location
	if location != "" {
		var err error
		if loc, err = toast.ParseLocation(location); err != nil {
			return loc, toast.Duration{}, err
		}
	}
	d := cfg.Defaults.Duration
	if duration != "" {
		var err error
		if d, err = toast.ParseDuration(duration); err != nil {
			return loc, d, err
		}
	}
	return loc, d, nil
}

// styleArg returns name, or the configured default style when empty.
func styleArg(name string) string {
	if name == "" {
		return cfg.Defaults.Style
	}
	return name
}
