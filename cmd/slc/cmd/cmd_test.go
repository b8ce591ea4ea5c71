package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/slate/internal/config"
)

func writeTempSlateFile(t *testing.T, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

// runSLC executes the command tree with args and captures its output.
func runSLC(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := runSLC(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "slc "+Version) {
		t.Errorf("version output missing version:\n%s", out)
	}
	if !strings.Contains(out, "Go Version:") {
		t.Errorf("version output missing Go version:\n%s", out)
	}
}

func TestTokens(t *testing.T) {
	filename := writeTempSlateFile(t, "input.sl", "val s = \"a\\tb\"\n")
	out, errOut, err := runSLC(t, "tokens", filename)
	if err != nil {
		t.Fatalf("tokens: %v\nstderr:\n%s", err, errOut)
	}

	for _, want := range []string{"POSITION", "IDENTIFIER", `"s"`, "STRING", `"a\tb"`, "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("token output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, filename+":1:1") {
		t.Errorf("token output missing positions:\n%s", out)
	}
}

func TestTokensLexError(t *testing.T) {
	filename := writeTempSlateFile(t, "bad.sl", "val x = $\n")
	_, errOut, err := runSLC(t, "tokens", filename)
	if !errors.Is(err, errSyntax) {
		t.Fatalf("tokens error = %v, want errSyntax", err)
	}
	if !strings.Contains(errOut, "unexpected character '$'") {
		t.Errorf("stderr missing lexical error:\n%s", errOut)
	}
}

func TestTokensMissingFile(t *testing.T) {
	_, _, err := runSLC(t, "tokens", filepath.Join(t.TempDir(), "missing.sl"))
	if err == nil || errors.Is(err, errSyntax) {
		t.Fatalf("tokens error = %v, want read error", err)
	}
}

func TestASTText(t *testing.T) {
	filename := writeTempSlateFile(t, "input.sl", "val x = 1\n")
	out, _, err := runSLC(t, "ast", filename)
	if err != nil {
		t.Fatalf("ast: %v", err)
	}
	for _, want := range []string{"Program", "VarDecl " + filename + ":1:1 val", "IdentPattern", "BasicLit"} {
		if !strings.Contains(out, want) {
			t.Errorf("ast output missing %q:\n%s", want, out)
		}
	}
}

func TestASTJSON(t *testing.T) {
	filename := writeTempSlateFile(t, "input.sl", "import a.{b}\nf(1)\n")
	out, _, err := runSLC(t, "ast", "--format", "json", filename)
	if err != nil {
		t.Fatalf("ast: %v", err)
	}

	var tree struct {
		Type string           `json:"type"`
		Body []map[string]any `json:"body"`
	}
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if tree.Type != "Program" || len(tree.Body) != 2 {
		t.Fatalf("tree = %+v", tree)
	}
	if tree.Body[0]["type"] != "ImportStmt" || tree.Body[0]["kind"] != "selective" {
		t.Errorf("body[0] = %v", tree.Body[0])
	}
}

func TestASTYAMLFromConfig(t *testing.T) {
	cfgFile := writeTempSlateFile(t, "slc.yaml", "output:\n  format: yaml\n")
	filename := writeTempSlateFile(t, "input.sl", "var n = 2 ** 8\n")

	out, _, err := runSLC(t, "--config", cfgFile, "ast", filename)
	if err != nil {
		t.Fatalf("ast: %v", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, out)
	}
	if tree["type"] != "Program" {
		t.Errorf("type = %v, want Program", tree["type"])
	}
	body, ok := tree["body"].([]any)
	if !ok || len(body) != 1 {
		t.Fatalf("body = %v", tree["body"])
	}
	if decl := body[0].(map[string]any); decl["mutable"] != true {
		t.Errorf("decl = %v, want mutable", decl)
	}
}

func TestASTWithErrors(t *testing.T) {
	filename := writeTempSlateFile(t, "bad.sl", "val ok = 1\nval = 2\n")
	out, errOut, err := runSLC(t, "ast", filename)
	if !errors.Is(err, errSyntax) {
		t.Fatalf("ast error = %v, want errSyntax", err)
	}
	if !strings.Contains(errOut, filename+":2:5: error:") {
		t.Errorf("stderr missing syntax error:\n%s", errOut)
	}
	// the statements that parsed are still printed
	if !strings.Contains(out, "VarDecl") {
		t.Errorf("partial tree missing:\n%s", out)
	}
}

func TestASTInvalidUTF8(t *testing.T) {
	filename := writeTempSlateFile(t, "bad.sl", "x = \"a\xffb\"\ny = \xfe\n")
	_, errOut, err := runSLC(t, "ast", filename)
	if !errors.Is(err, errSyntax) {
		t.Fatalf("ast error = %v, want errSyntax", err)
	}
	// one line per bad byte, none repeated by the parser
	if n := strings.Count(errOut, "error:"); n != 2 {
		t.Errorf("got %d diagnostics, want 2:\n%s", n, errOut)
	}
	if n := strings.Count(errOut, "invalid UTF-8 encoding"); n != 2 {
		t.Errorf("got %d encoding errors, want 2:\n%s", n, errOut)
	}
}

func TestASTUnknownFormat(t *testing.T) {
	filename := writeTempSlateFile(t, "input.sl", "x\n")
	_, _, err := runSLC(t, "ast", "--format", "xml", filename)
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("ast error = %v, want unknown format", err)
	}
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	good1 := filepath.Join(dir, "a.sl")
	good2 := filepath.Join(dir, "b.sl")
	if err := os.WriteFile(good1, []byte("val a = 1\nval b = 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(good2, []byte("def f(x) =\n  x * 2\nend f\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, errOut, err := runSLC(t, "parse", good1, good2)
	if err != nil {
		t.Fatalf("parse: %v\nstderr:\n%s", err, errOut)
	}
	if !strings.Contains(out, good1+": 2 statements") {
		t.Errorf("missing summary for %s:\n%s", good1, out)
	}
	if !strings.Contains(out, good2+": 1 statements") {
		t.Errorf("missing summary for %s:\n%s", good2, out)
	}
	if !strings.Contains(out, "2 files, 0 failed, 0 errors") {
		t.Errorf("missing run summary:\n%s", out)
	}
	// results are printed in argument order
	if strings.Index(out, good1) > strings.Index(out, good2) {
		t.Errorf("results out of order:\n%s", out)
	}
}

func TestParseFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.sl")
	bad := filepath.Join(dir, "bad.sl")
	missing := filepath.Join(dir, "missing.sl")
	if err := os.WriteFile(good, []byte("x = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("val = 1\nf(,)\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, errOut, err := runSLC(t, "parse", good, bad, missing)
	if !errors.Is(err, errSyntax) {
		t.Fatalf("parse error = %v, want errSyntax", err)
	}
	if !strings.Contains(out, "FAIL "+bad+": 2 errors") {
		t.Errorf("missing failure for %s:\n%s", bad, out)
	}
	if !strings.Contains(out, "FAIL "+missing+": read source") {
		t.Errorf("missing failure for %s:\n%s", missing, out)
	}
	if !strings.Contains(out, "3 files, 2 failed, 2 errors") {
		t.Errorf("missing run summary:\n%s", out)
	}
	if !strings.Contains(errOut, bad+":1:5: error:") {
		t.Errorf("stderr missing diagnostics:\n%s", errOut)
	}
}

func TestParseMaxErrorsFromConfig(t *testing.T) {
	cfgFile := writeTempSlateFile(t, "slc.toml", "[parser]\nmax_errors = 2\n")
	filename := writeTempSlateFile(t, "bad.sl", strings.Repeat(")\n", 5))

	_, errOut, err := runSLC(t, "--config", cfgFile, "parse", filename)
	if !errors.Is(err, errSyntax) {
		t.Fatalf("parse error = %v, want errSyntax", err)
	}
	if !strings.Contains(errOut, "too many errors; aborting parse") {
		t.Errorf("stderr missing abort message:\n%s", errOut)
	}
}

func TestConfigError(t *testing.T) {
	_, _, err := runSLC(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "version")
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("error = %v, want config not found", err)
	}
}

func TestVerboseLogging(t *testing.T) {
	filename := writeTempSlateFile(t, "input.sl", "x\n")
	_, errOut, err := runSLC(t, "--verbose", "parse", filename)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(errOut, "level=DEBUG") || !strings.Contains(errOut, "run=") {
		t.Errorf("stderr missing debug logs:\n%s", errOut)
	}
}

// ----------------------------------------------------------------------------
// REPL

// scriptReader feeds prepared lines to a session.
type scriptReader struct {
	lines   []string
	prompts []string
}

func (r *scriptReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func newTestSession(lines ...string) (*session, *scriptReader, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	a := &app{
		cfg:    config.Default(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:    newStyles(&out, false),
		errOut: newStyles(&errOut, false),
	}
	in := &scriptReader{lines: lines}
	return &session{app: a, in: in, out: &out, errOut: &errOut}, in, &out, &errOut
}

func TestREPLSession(t *testing.T) {
	s, in, out, errOut := newTestSession(
		"val x = 1",
		"def f(a) =",
		"  a + 1",
		"",
		":json",
		"f(2)",
		":bogus",
		":quit",
		"never read",
	)

	if err := s.run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	if s.entries != 3 {
		t.Errorf("entries = %d, want 3", s.entries)
	}
	for _, want := range []string{
		"VarDecl <repl:1>:1:1 val",
		"FuncDecl <repl:2>:1:1",
		"json output on",
		`"type": "ExprStmt"`,
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if !strings.Contains(errOut.String(), "unknown command :bogus") {
		t.Errorf("stderr missing unknown command:\n%s", errOut.String())
	}
	if len(in.lines) != 1 {
		t.Errorf("session did not stop at :quit, %d lines left", len(in.lines))
	}

	var cont int
	for _, p := range in.prompts {
		if p == promptCont {
			cont++
		}
	}
	if cont != 2 {
		t.Errorf("continuation prompts = %d, want 2 (%q)", cont, in.prompts)
	}
}

func TestREPLErrors(t *testing.T) {
	s, _, out, errOut := newTestSession("val x = )", "val y = 2")
	if err := s.run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(errOut.String(), "<repl:1>:1:9: error: expected expression") {
		t.Errorf("stderr missing syntax error:\n%s", errOut.String())
	}
	if !strings.Contains(out.String(), "VarDecl <repl:2>:1:1 val") {
		t.Errorf("session did not continue after an error:\n%s", out.String())
	}
}

func TestREPLIncompleteAtEOF(t *testing.T) {
	s, _, _, errOut := newTestSession("val x = (1 +")
	if err := s.run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(errOut.String(), "<repl:1>") {
		t.Errorf("incomplete entry at end of input was not reported:\n%s", errOut.String())
	}
}

func TestREPLTokens(t *testing.T) {
	s, _, out, _ := newTestSession(":tokens", "x")
	if err := s.run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `IDENTIFIER "x"`) {
		t.Errorf("token output missing:\n%s", out.String())
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"val x = 1", false},
		{"val x = )", false},
		{"def f(x) =", true},
		{"if a then", true},
		{"f(1,", true},
		{"match v", true},
		{"data Shape", true},
		{"def f(x) =\n  x", true},
		{"def f(x) =\n  x\nend f", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := needsMore(tt.src); got != tt.want {
				t.Errorf("needsMore(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a\nb", `"a\nb"`},
		{"tab\there", `"tab\there"`},
		{`q"uote`, `"q\"uote"`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, tt := range tests {
		if got := formatLiteral(tt.in); got != tt.want {
			t.Errorf("formatLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
