package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTokensCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a file",
		Long: `Print every token of a Slate source file with its position, kind,
lexeme and decoded value, followed by any lexical errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokens(cmd, args[0])
		},
	}
}

// runTokens scans the input file and prints all tokens with positions.
func (a *app) runTokens(cmd *cobra.Command, filename string) error {
	src, err := readSource(filename)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	lx := a.newLexer(filename, src)
	toks := lx.AllTokens()
	a.log.Debug("scanned", "file", filename, "tokens", len(toks))

	fmt.Fprintln(w, a.out.Header.Render(fmt.Sprintf("%-20s %-20s %-20s %s", "POSITION", "TOKEN", "LEXEME", "VALUE")))
	fmt.Fprintf(w, "%-20s %-20s %-20s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 20), strings.Repeat("-", 20), strings.Repeat("-", 10))

	for _, tok := range toks {
		value := ""
		if tok.Value != nil {
			value = formatValue(tok.Value)
		}
		fmt.Fprintf(w, "%s %s %-20s %s\n",
			a.out.Pos.Render(fmt.Sprintf("%-20s", tok.Pos)),
			a.out.Kind.Render(fmt.Sprintf("%-20s", tok.Kind)),
			formatLiteral(tok.Lexeme),
			value)
	}

	if lx.HasErrors() {
		printDiagnostics(cmd.ErrOrStderr(), a.errOut, lx.Diagnostics())
		return errSyntax
	}
	return nil
}

// formatValue formats a decoded token value for display.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return formatLiteral(s)
	}
	return fmt.Sprint(v)
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
