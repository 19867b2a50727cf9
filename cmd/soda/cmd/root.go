package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kievzenit/soda/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "soda",
	Short: "SodaScript front end",
	Long: `soda scans and parses SodaScript sources.

It prints token streams and syntax trees, and checks whole source trees
for lexical and syntax errors.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: soda.yaml, soda.yml or soda.toml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output, same as --log-level debug")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.CheckLanguage(); err != nil {
		return err
	}

	level, err := resolveLevel()
	if err != nil {
		return err
	}

	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	logger.Debug("configuration loaded", slog.String("path", cfg.Path), slog.String("level", level.String()))

	return nil
}

func resolveLevel() (slog.Level, error) {
	switch {
	case verbose:
		return slog.LevelDebug, nil
	case logLevel != "":
		return config.ParseLevel(logLevel)
	default:
		return config.ParseLevel(cfg.LogLevel)
	}
}

func readSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	return src, nil
}
