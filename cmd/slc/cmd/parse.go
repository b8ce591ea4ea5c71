package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/slate/internal/syntax"
)

func newParseCommand(a *app) *cobra.Command {
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Check files for syntax errors",
		Long: `Parse one or more Slate source files concurrently and print a summary
per file. The exit status is non-zero when any file has errors or does not
finish within the timeout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("timeout") {
				timeout = a.cfg.Parse.Timeout.Duration
			}
			return a.runParse(cmd, args, timeout)
		},
	}
	c.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "time limit for the whole run (0 means none)")
	return c
}

// fileResult is the outcome of parsing one file.
type fileResult struct {
	path    string
	stmts   int
	diags   []syntax.Diagnostic
	err     error // read failure or timeout
	elapsed time.Duration
}

func (r fileResult) failed() bool {
	return r.err != nil || len(r.diags) > 0
}

// runParse parses every file in its own goroutine and prints the results
// in argument order.
func (a *app) runParse(cmd *cobra.Command, paths []string, timeout time.Duration) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log := a.log.With("run", uuid.NewString())
	log.Debug("parse started", "files", len(paths), "timeout", timeout)

	results := make([]fileResult, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = a.parseFile(ctx, path)
			log.Debug("parsed", "file", path, "statements", results[i].stmts,
				"errors", len(results[i].diags), "elapsed", results[i].elapsed)
		}()
	}
	wg.Wait()

	w := cmd.OutOrStdout()
	failed, errCount := 0, 0
	for _, r := range results {
		switch {
		case r.err != nil:
			fmt.Fprintf(w, "%s %s: %v\n", a.out.Error.Render("FAIL"), r.path, r.err)
		case len(r.diags) > 0:
			fmt.Fprintf(w, "%s %s: %s\n", a.out.Error.Render("FAIL"), r.path, errorCount(len(r.diags)))
			printDiagnostics(cmd.ErrOrStderr(), a.errOut, r.diags)
		default:
			fmt.Fprintf(w, "%s   %s: %d statements %s\n", a.out.OK.Render("ok"), r.path, r.stmts,
				a.out.Muted.Render(fmt.Sprintf("(%s)", r.elapsed.Round(time.Microsecond))))
		}
		if r.failed() {
			failed++
			errCount += len(r.diags)
		}
	}

	summary := fmt.Sprintf("%d files, %d failed, %s", len(results), failed, errorCount(errCount))
	if failed > 0 {
		fmt.Fprintln(w, a.out.Warn.Render(summary))
		return errSyntax
	}
	fmt.Fprintln(w, a.out.Muted.Render(summary))
	return nil
}

// parseFile lexes and parses one file. Parsing itself cannot be interrupted;
// when ctx ends first the file is reported as timed out and the parse is
// abandoned.
func (a *app) parseFile(ctx context.Context, path string) fileResult {
	done := make(chan fileResult, 1)
	go func() {
		start := time.Now()
		r := fileResult{path: path}
		src, err := readSource(path)
		if err != nil {
			r.err = err
			done <- r
			return
		}
		lx := a.newLexer(path, src)
		p := a.newParser(lx)
		res := p.ParseProgram()
		r.stmts = len(res.Node.Body)
		r.diags = diagnostics(lx, p)
		r.elapsed = time.Since(start)
		done <- r
	}()

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		return fileResult{path: path, err: fmt.Errorf("not finished: %w", ctx.Err())}
	}
}

func errorCount(n int) string {
	if n == 1 {
		return "1 error"
	}
	return fmt.Sprintf("%d errors", n)
}
