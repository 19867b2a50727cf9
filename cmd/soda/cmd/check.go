package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/kievzenit/soda/internal/compiler_errors"
	"github.com/kievzenit/soda/internal/watch"
	"github.com/spf13/cobra"
)

var watchMode bool

var checkCmd = &cobra.Command{
	Use:   "check [file|dir]...",
	Short: "Check sources for lexical and syntax errors",
	Long: `Scans and parses every source file below the given paths and reports
all diagnostics. Without arguments the configured source_dir is checked.

With --watch the check is repeated whenever a source file changes,
until interrupted.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-check on file changes")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	roots := args
	if len(roots) == 0 {
		roots = []string{cfg.SourceDir}
	}

	eh := compiler_errors.NewErrorHandler(cmd.ErrOrStderr(), compiler_errors.WithColor(cfg.ColorEnabled()))

	err := checkOnce(cmd, roots, eh)
	if !watchMode {
		return err
	}
	logCheckError(err)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return watchAndCheck(ctx, cmd, roots, eh)
}

func checkOnce(cmd *cobra.Command, roots []string, eh compiler_errors.ErrorHandler) error {
	eh.Reset()

	files, err := collectSources(roots)
	if err != nil {
		return err
	}

	for _, path := range files {
		src, err := readSource(path)
		if err != nil {
			return err
		}
		frontend(path, src, eh)
	}

	eh.Report()
	if err := eh.Err(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s), no errors\n", len(files))
	return nil
}

func watchAndCheck(ctx context.Context, cmd *cobra.Command, roots []string, eh compiler_errors.ErrorHandler) error {
	w, err := watch.New(logger, cfg.Extensions...)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, root := range roots {
		if err := w.Add(root); err != nil {
			return err
		}
	}
	w.Start(ctx)

	logger.Info("watching for changes", slog.Any("paths", roots))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s\n", ev.Op, ev.Path)
			logCheckError(checkOnce(cmd, roots, eh))
		case err := <-w.Errors():
			logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

// logCheckError keeps watch mode running after a failed check. Build failures
// were already reported, anything else is logged as a warning.
func logCheckError(err error) {
	switch {
	case err == nil:
	case errors.Is(err, compiler_errors.ErrBuildFailed):
		logger.Debug("check failed", slog.String("error", err.Error()))
	default:
		logger.Warn("check failed", slog.String("error", err.Error()))
	}
}

// collectSources expands directories into the source files below them.
// Explicitly named files are kept regardless of extension.
func collectSources(roots []string) ([]string, error) {
	files := make([]string, 0)

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", root, err)
		}

		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && cfg.IsSource(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
