package cmd

import (
	"fmt"

	"github.com/kievzenit/soda/internal/compiler_errors"
	"github.com/kievzenit/soda/internal/lexer"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}

	l := lexer.NewLexer(src, lexer.WithFileName(args[0]), lexer.WithLogger(logger))
	for _, token := range l.Tokenize() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", token.String(), token.Position())
	}

	eh := compiler_errors.NewErrorHandler(cmd.ErrOrStderr(), compiler_errors.WithColor(cfg.ColorEnabled()))
	for _, diag := range l.Diagnostics() {
		eh.AddError(diag)
	}
	eh.Report()

	return nil
}
