package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/slate/internal/syntax"
)

func newASTCommand(a *app) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "ast FILE",
		Short: "Print the syntax tree of a file",
		Long: `Parse a Slate source file and print its syntax tree as indented text,
JSON or YAML. The tree is printed even when the file has syntax errors;
statements that failed to parse are left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Output.Format
			}
			return a.runAST(cmd, args[0], format)
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json or yaml)")
	return c
}

// runAST parses the input file and outputs the AST.
func (a *app) runAST(cmd *cobra.Command, filename, format string) error {
	src, err := readSource(filename)
	if err != nil {
		return err
	}

	lx := a.newLexer(filename, src)
	p := a.newParser(lx)
	res := p.ParseProgram()
	a.log.Debug("parsed", "file", filename, "statements", len(res.Node.Body), "errors", len(p.Diagnostics()))

	// Print errors first
	diags := diagnostics(lx, p)
	printDiagnostics(cmd.ErrOrStderr(), a.errOut, diags)

	if err := writeTree(cmd.OutOrStdout(), res.Node, format); err != nil {
		return err
	}
	if len(diags) > 0 {
		return errSyntax
	}
	return nil
}

// writeTree prints node in the named format.
func writeTree(w io.Writer, node syntax.Node, format string) error {
	switch format {
	case "text":
		syntax.Fprint(w, node)
	case "json":
		if err := syntax.FprintJSON(w, node); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(syntax.ToTree(node)); err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
	return nil
}
