package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"milliseconds", "250ms", 250 * time.Millisecond, false},
		{"invalid", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Parser.MaxErrors != 100 {
		t.Errorf("Parser.MaxErrors = %d, want 100", cfg.Parser.MaxErrors)
	}
	if cfg.Output.Format != "text" || !cfg.Output.Color {
		t.Errorf("Output = %+v, want text with color", cfg.Output)
	}
	if cfg.Lexer.StrictIndent {
		t.Error("StrictIndent should default to false")
	}
	if cfg.Parse.Timeout.Duration != 30*time.Second {
		t.Errorf("Parse.Timeout = %v, want 30s", cfg.Parse.Timeout.Duration)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestParseTOML(t *testing.T) {
	data := `
log_level = "DEBUG"

[lexer]
strict_indent = true

[parser]
max_errors = 5

[output]
format = "json"
color = false

[repl]
history_file = "/tmp/slc_history"

[parse]
timeout = "2s"
`
	cfg, err := Parse([]byte(data), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.Lexer.StrictIndent {
		t.Error("StrictIndent = false, want true")
	}
	if cfg.Parser.MaxErrors != 5 {
		t.Errorf("MaxErrors = %d, want 5", cfg.Parser.MaxErrors)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color {
		t.Errorf("Output = %+v, want json without color", cfg.Output)
	}
	if cfg.REPL.HistoryFile != "/tmp/slc_history" {
		t.Errorf("HistoryFile = %q", cfg.REPL.HistoryFile)
	}
	if cfg.Parse.Timeout.Duration != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Parse.Timeout.Duration)
	}
}

func TestParseYAML(t *testing.T) {
	data := `
log_level: info
parser:
  max_errors: 0
output:
  format: yaml
parse:
  timeout: 1m
`
	cfg, err := Parse([]byte(data), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Parser.MaxErrors != 0 {
		t.Errorf("MaxErrors = %d, want 0", cfg.Parser.MaxErrors)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", cfg.Output.Format)
	}
	// keys absent from the file keep their defaults
	if !cfg.Output.Color {
		t.Error("Color should keep its default")
	}
	if cfg.Parse.Timeout.Duration != time.Minute {
		t.Errorf("Timeout = %v, want 1m", cfg.Parse.Timeout.Duration)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			cfg, err := Parse(nil, format)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if *cfg != *Default() {
				t.Errorf("empty %s config = %+v, want defaults", format, cfg)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr string
	}{
		{"bad toml", "log_level = ", FormatTOML, "failed to parse config"},
		{"bad yaml", "log_level: [", FormatYAML, "failed to parse config"},
		{"unknown toml key", "colour = true", FormatTOML, "unknown config key"},
		{"unknown yaml key", "colour: true", FormatYAML, "failed to parse config"},
		{"bad level", `log_level = "loud"`, FormatTOML, "log_level"},
		{"bad format", "output:\n  format: xml", FormatYAML, "output.format"},
		{"negative max errors", "[parser]\nmax_errors = -1", FormatTOML, "parser.max_errors"},
		{"bad timeout", "[parse]\ntimeout = \"later\"", FormatTOML, "failed to parse config"},
		{"unknown format", "", Format("ini"), "unknown config format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"slc.toml", FormatTOML, false},
		{"conf/slc.YAML", FormatYAML, false},
		{"slc.yml", FormatYAML, false},
		{"slc.json", "", true},
		{"slc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatOf() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slc.toml")
	if err := os.WriteFile(path, []byte("[parser]\nmax_errors = 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Parser.MaxErrors != 7 {
		t.Errorf("MaxErrors = %d, want 7", cfg.Parser.MaxErrors)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Load(missing) error = %v, want not found", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("log_level: loud\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.HasPrefix(err.Error(), bad) {
		t.Errorf("Load(bad) error = %v, want it prefixed with the path", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	if got := Discover(dir); got != "" {
		t.Errorf("Discover(empty dir) = %q, want \"\"", got)
	}

	yamlPath := filepath.Join(dir, "slc.yaml")
	if err := os.WriteFile(yamlPath, []byte("log_level: info\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := Discover(dir); got != yamlPath {
		t.Errorf("Discover() = %q, want %q", got, yamlPath)
	}

	// TOML wins over YAML
	tomlPath := filepath.Join(dir, "slc.toml")
	if err := os.WriteFile(tomlPath, []byte("log_level = \"info\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := Discover(dir); got != tomlPath {
		t.Errorf("Discover() = %q, want %q", got, tomlPath)
	}
}

func TestResolveExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	if err := os.WriteFile(path, []byte("lexer:\n  strict_indent: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, used, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if used != path {
		t.Errorf("used = %q, want %q", used, path)
	}
	if !cfg.Lexer.StrictIndent {
		t.Error("StrictIndent = false, want true")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("SLC_TEST_DIR", "/var/slc")

	tests := []struct {
		in, want string
	}{
		{"~/.slc_history", filepath.Join(home, ".slc_history")},
		{"$SLC_TEST_DIR/history", "/var/slc/history"},
		{"/abs/path", "/abs/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]string{
		"debug": "DEBUG",
		"info":  "INFO",
		"warn":  "WARN",
		"error": "ERROR",
	}
	for level, want := range tests {
		cfg := Default()
		cfg.LogLevel = level
		if got := cfg.SlogLevel().String(); got != want {
			t.Errorf("SlogLevel(%q) = %s, want %s", level, got, want)
		}
	}
}
