package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/kievzenit/soda/internal/ast"
	"github.com/kievzenit/soda/internal/compiler_errors"
	"github.com/spf13/cobra"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the syntax tree of a source file",
	Long: `Parses a source file and prints its syntax tree.

Formats:
  dump     full tree with every field
  outline  one line per node, indented by depth`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "dump", "output format: dump or outline")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if parseFormat != "dump" && parseFormat != "outline" {
		return fmt.Errorf("unknown format %q", parseFormat)
	}

	src, err := readSource(args[0])
	if err != nil {
		return err
	}

	eh := compiler_errors.NewErrorHandler(cmd.ErrOrStderr(), compiler_errors.WithColor(cfg.ColorEnabled()))
	unit := frontend(args[0], src, eh)
	eh.Report()
	if unit == nil {
		return eh.Err()
	}

	out := cmd.OutOrStdout()
	if parseFormat == "outline" {
		writeOutline(out, unit)
		return nil
	}

	fmt.Fprintln(out, ast.Dump(unit))
	return nil
}

func writeOutline(w io.Writer, root ast.AstNode) {
	ast.Inspect(root, func(n ast.AstNode, depth int) {
		line := strings.Repeat("  ", depth) + n.Kind().String()
		if label := outlineLabel(n); label != "" {
			line += " " + label
		}
		if t := n.FirstToken(); t != nil {
			line += " @" + t.Position()
		}
		fmt.Fprintln(w, line)
	})
}

func outlineLabel(n ast.AstNode) string {
	switch n := n.(type) {
	case *ast.Unit:
		return n.Name
	case *ast.PackageImportStatement:
		return n.Path
	case *ast.MemberImportStatement:
		return n.PackageName + "." + n.MemberName
	case *ast.ClassDeclaration:
		return n.Name
	case *ast.FunctionDeclaration:
		return n.Name
	case *ast.Parameter:
		return n.Name
	case *ast.VariableDeclaration:
		return n.Name
	case *ast.ForeachStatement:
		return n.Variable
	case *ast.TypeReference:
		return n.TypeName()
	case *ast.BinaryExpression:
		return n.Operator
	case *ast.UnaryExpression:
		return n.Operator
	case *ast.CallExpression:
		return n.Callee
	case *ast.ConstructorCallExpression:
		return n.Callee
	case *ast.LiteralExpression:
		return fmt.Sprintf("%s %q", n.LiteralKind, n.Value)
	case *ast.VariableExpression:
		return n.Name
	}

	return ""
}
