package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/slate/internal/syntax"
)

const (
	promptMain = "slate> "
	promptCont = "  ...> "
)

const replHelp = `Enter Slate statements; the syntax tree of each entry is printed.
An entry continues while it is incomplete or inside an indented block;
an empty line closes the block.

  :tokens  toggle printing the token stream
  :json    toggle JSON output
  :help    show this help
  :quit    leave the session`

// lineReader reads one line of input after showing a prompt.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

func newREPLCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse entries interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	}
}

// runREPL runs an interactive session on the terminal with line editing
// and persistent history.
func (a *app) runREPL(cmd *cobra.Command) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := a.cfg.REPL.HistoryFile
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				a.log.Warn("cannot save history", "path", histPath, "err", err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	s := &session{app: a, in: ln, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	s.onEntry = func(src string) {
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
	fmt.Fprintln(s.out, a.out.Header.Render("Slate "+Version)+a.out.Muted.Render("  (:help for commands)"))
	return s.run()
}

// session is one interactive parse loop.
type session struct {
	app     *app
	in      lineReader
	out     io.Writer
	errOut  io.Writer
	tokens  bool
	json    bool
	entries int
	onEntry func(src string)
}

// run reads and parses entries until end of input or :quit.
func (s *session) run() error {
	for {
		src, ok := s.readEntry()
		if !ok {
			fmt.Fprintln(s.out)
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if s.command(trimmed) {
				return nil
			}
			continue
		}

		if s.onEntry != nil {
			s.onEntry(src)
		}
		s.eval(src)
	}
}

// command runs a : command and reports whether the session should end.
func (s *session) command(line string) bool {
	switch strings.ToLower(line) {
	case ":quit", ":q", ":exit":
		return true
	case ":tokens":
		s.tokens = !s.tokens
		fmt.Fprintf(s.out, "token output %s\n", onOff(s.tokens))
	case ":json":
		s.json = !s.json
		fmt.Fprintf(s.out, "json output %s\n", onOff(s.json))
	case ":help":
		fmt.Fprintln(s.out, replHelp)
	default:
		fmt.Fprintf(s.errOut, "unknown command %s. Type :help for a list.\n", line)
	}
	return false
}

// eval parses one entry and prints its tree or its errors.
func (s *session) eval(src string) {
	s.entries++
	name := fmt.Sprintf("<repl:%d>", s.entries)

	lx := s.app.newLexer(name, src)
	p := s.app.newParser(lx)

	if s.tokens {
		for _, tok := range p.Tokens() {
			fmt.Fprintf(s.out, "%s %s\n", s.app.out.Pos.Render(fmt.Sprintf("%-16s", tok.Pos)), tok)
		}
	}

	res := p.ParseProgram()
	if diags := diagnostics(lx, p); len(diags) > 0 {
		printDiagnostics(s.errOut, s.app.errOut, diags)
		return
	}

	format := "text"
	if s.json {
		format = "json"
	}
	for _, stmt := range res.Node.Body {
		if err := writeTree(s.out, stmt, format); err != nil {
			fmt.Fprintln(s.errOut, err)
		}
	}
}

// readEntry reads lines until they form a complete entry: one that parses,
// or fails for a reason more input cannot fix. An entry that opens an
// indented block continues until an empty line. It returns false at end
// of input.
func (s *session) readEntry() (string, bool) {
	var lines []string

	for {
		prompt := promptMain
		if len(lines) > 0 {
			prompt = promptCont
		}
		line, err := s.in.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			if len(lines) > 0 {
				return strings.Join(lines, "\n"), true
			}
			return "", false
		}
		if err != nil {
			return "", false
		}

		if len(lines) > 0 && strings.TrimSpace(line) == "" {
			// an empty line ends an open block
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, line)

		src := strings.Join(lines, "\n")
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if needsMore(src) {
			continue
		}
		return src, true
	}
}

// needsMore reports whether src is an incomplete entry: it ends too early,
// its last line is inside an indented block, or it is a data declaration
// whose case block has not been entered yet.
func needsMore(src string) bool {
	p := syntax.NewParser(syntax.NewLexer("<repl>", src))
	p.ParseProgram()
	if syntax.IsIncomplete(p.FirstError()) {
		return true
	}

	lines := strings.Split(src, "\n")
	last := lines[len(lines)-1]
	if len(lines) > 1 && last != strings.TrimLeft(last, " \t") {
		return true
	}
	fields := strings.Fields(last)
	return len(lines) == 1 && len(fields) > 0 && (fields[0] == "data" || fields[0] == "private")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
