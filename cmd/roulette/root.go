package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vmunix/roulette/internal/config"
	"github.com/vmunix/roulette/internal/recommend"
	"github.com/vmunix/roulette/internal/screen"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "roulette",
		Short: "Spin for a random TV show or movie",
		Long: `roulette - pick a category and a minimum IMDB score, then spin
for a random title recommendation.

Run without a command to open the interactive screen.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScreen(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to config file (default: search ROULETTE_CONFIG, ./config.toml, XDG, /etc)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	cmd.Version = version
	cmd.SetVersionTemplate("roulette {{.Version}}\n")

	cmd.AddCommand(newSpinCmd(flags), newConfigCmd(flags))
	return cmd
}

// loadConfig resolves the config file. With no --config and nothing discovered,
// built-in defaults are used.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	path := flags.configPath
	if path == "" {
		found, err := config.Discover()
		switch {
		case errors.Is(err, config.ErrNotFound):
			return withOverrides(config.Default(), flags)
		case err != nil:
			return nil, err
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return withOverrides(cfg, flags)
}

// withOverrides applies command-line flags on top of the loaded config.
// Overrides are held to the same rules as the file they replace.
func withOverrides(cfg *config.Config, flags *globalFlags) (*config.Config, error) {
	if flags.logLevel != "" {
		if err := config.CheckLogLevel(flags.logLevel); err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
		cfg.Log.Level = flags.logLevel
	}
	return cfg, nil
}

func newRecommendClient(cfg *config.Config) *recommend.Client {
	return recommend.NewClient(
		recommend.WithBaseURL(cfg.Service.URL),
		recommend.WithAPIKey(cfg.Service.APIKey),
		recommend.WithTimeout(cfg.Service.Timeout.Duration),
	)
}

func runScreen(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	// The screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}
	logger := newLogger(logOut, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := screen.New(ctx, newRecommendClient(cfg), screen.Options{
		Title:      cfg.Screen.Title,
		ShowErrors: cfg.Screen.ShowErrors,
		Logger:     logger,
	})

	logger.Info("screen started", "service", cfg.Service.URL, "version", version)
	err = screen.Run(ctx, m, tea.WithAltScreen())
	logger.Info("screen stopped", "error", err)
	return err
}
