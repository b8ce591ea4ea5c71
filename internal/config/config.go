// Package config loads slc front-end options from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete slc configuration
type Config struct {
	LogLevel string       `toml:"log_level" yaml:"log_level"`
	Lexer    LexerConfig  `toml:"lexer" yaml:"lexer"`
	Parser   ParserConfig `toml:"parser" yaml:"parser"`
	Output   OutputConfig `toml:"output" yaml:"output"`
	REPL     REPLConfig   `toml:"repl" yaml:"repl"`
	Parse    ParseConfig  `toml:"parse" yaml:"parse"`
}

// LexerConfig holds lexer settings
type LexerConfig struct {
	StrictIndent bool `toml:"strict_indent" yaml:"strict_indent"`
}

// ParserConfig holds parser settings
type ParserConfig struct {
	// MaxErrors is the number of syntax errors recorded before parsing
	// stops. 0 means no limit.
	MaxErrors int `toml:"max_errors" yaml:"max_errors"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	HistoryFile string `toml:"history_file" yaml:"history_file"`
}

// ParseConfig holds settings for batch parsing
type ParseConfig struct {
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Format identifies a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Names searched for by Discover, in order.
var discoveryNames = []string{"slc.toml", "slc.yaml", "slc.yml"}

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	outputFormats = []string{"text", "json", "yaml"}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Parser:   ParserConfig{MaxErrors: 100},
		Output:   OutputConfig{Format: "text", Color: true},
		REPL:     REPLConfig{HistoryFile: expandPath("~/.slc_history")},
		Parse:    ParseConfig{Timeout: Duration{30 * time.Second}},
	}
}

// FormatOf returns the configuration format implied by the file extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
}

// Load loads configuration from a TOML or YAML file. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration data in the given format on top of the defaults
// and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover returns the first slc.toml, slc.yaml or slc.yml found in dir,
// or "" when there is none.
func Discover(dir string) string {
	for _, name := range discoveryNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Resolve loads the configuration named by path, or the one discovered in
// the working directory when path is empty. Without either it returns the
// defaults. The second result is the file that was loaded, if any.
func Resolve(path string) (*Config, string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get working directory: %w", err)
		}
		path = Discover(wd)
		if path == "" {
			return Default(), "", nil
		}
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// applyDefaults sets default values for keys a file set to empty
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.Output.Format = strings.ToLower(c.Output.Format)
}

// expandEnvVars expands environment variables and a leading ~ in paths
func (c *Config) expandEnvVars() {
	c.REPL.HistoryFile = expandPath(c.REPL.HistoryFile)
}

func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var problems []string

	if !slices.Contains(logLevels, c.LogLevel) {
		problems = append(problems, fmt.Sprintf("log_level: %q is not one of %s", c.LogLevel, strings.Join(logLevels, ", ")))
	}
	if !slices.Contains(outputFormats, c.Output.Format) {
		problems = append(problems, fmt.Sprintf("output.format: %q is not one of %s", c.Output.Format, strings.Join(outputFormats, ", ")))
	}
	if c.Parser.MaxErrors < 0 {
		problems = append(problems, fmt.Sprintf("parser.max_errors: must not be negative, got %d", c.Parser.MaxErrors))
	}
	if c.Parse.Timeout.Duration < 0 {
		problems = append(problems, fmt.Sprintf("parse.timeout: must not be negative, got %s", c.Parse.Timeout.Duration))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// SlogLevel returns the configured log level as a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}
