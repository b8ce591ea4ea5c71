// Package cmd implements the slc command tree.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/slate/internal/config"
	"github.com/you-not-fish/slate/internal/syntax"
)

// errSyntax is returned by commands whose input had lexical or syntax
// errors. The diagnostics have already been printed.
var errSyntax = errors.New("syntax errors")

// app holds state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg    *config.Config
	log    *slog.Logger
	out    styles // stdout
	errOut styles // stderr
}

// NewRootCommand builds the slc command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "slc",
		Short: "Slate front end",
		Long: `slc tokenizes and parses Slate source files.

Commands:
  tokens  - print the token stream of a file
  ast     - print the syntax tree of a file
  parse   - check one or more files for syntax errors
  repl    - parse entries interactively`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./slc.toml or ./slc.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newTokensCommand(a),
		newASTCommand(a),
		newParseCommand(a),
		newREPLCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the slc command and reports any failure other than syntax
// errors, which the commands print themselves.
func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil && !errors.Is(err, errSyntax) {
		fmt.Fprintf(os.Stderr, "slc: %v\n", err)
	}
	return err
}

// setup loads the configuration and prepares logging and styles.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, used, err := config.Resolve(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if used != "" {
		a.log.Debug("loaded config", "path", used)
	}

	color := cfg.Output.Color && !a.noColor && os.Getenv("NO_COLOR") == ""
	a.out = newStyles(cmd.OutOrStdout(), color)
	a.errOut = newStyles(cmd.ErrOrStderr(), color)
	return nil
}

// newLexer creates a lexer configured from the loaded options.
func (a *app) newLexer(filename, src string) *syntax.Lexer {
	lx := syntax.NewLexer(filename, src)
	lx.SetStrictIndent(a.cfg.Lexer.StrictIndent)
	return lx
}

// newParser creates a parser configured from the loaded options.
func (a *app) newParser(lx *syntax.Lexer) *syntax.Parser {
	p := syntax.NewParser(lx)
	p.SetMaxErrors(a.cfg.Parser.MaxErrors)
	return p
}

// readSource reads a source file as a string.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

// diagnostics returns the lexical errors followed by the syntax errors.
// A syntax error reported on the token of a lexical error only repeats it
// and is dropped.
func diagnostics(lx *syntax.Lexer, p *syntax.Parser) []syntax.Diagnostic {
	lexed := lx.Diagnostics()
	diags := lexed
	for _, d := range p.Diagnostics() {
		if !covers(d.Pos, lexed) {
			diags = append(diags, d)
		}
	}
	return diags
}

// covers reports whether a lexical error lies inside the span of pos, which
// means a parser error there is only the ERROR token tripping the parser.
func covers(pos syntax.Pos, lexed []syntax.Diagnostic) bool {
	for _, d := range lexed {
		off := d.Pos.Offset()
		if off == pos.Offset() || off > pos.Offset() && off < pos.End() {
			return true
		}
	}
	return false
}

// printDiagnostics writes one styled line per diagnostic.
func printDiagnostics(w io.Writer, s styles, diags []syntax.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s %s\n", s.Pos.Render(d.Pos.String()), s.Error.Render("error:"), d.Msg)
	}
}
