package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/inkwell/internal/engine/fileinfo"
	"github.com/dshills/inkwell/internal/logging"
)

// Indent styles.
const (
	IndentAuto  = "auto"
	IndentTab   = "tab"
	IndentSpace = "space"
)

// LineEndingAuto keeps the detected line ending.
const LineEndingAuto = "auto"

const maxWidth = 16

// Config is the complete inkwell configuration.
type Config struct {
	Editor    EditorConfig    `toml:"editor"`
	Highlight HighlightConfig `toml:"highlight"`
	Logging   LoggingConfig   `toml:"logging"`
}

// EditorConfig holds document editing settings.
type EditorConfig struct {
	TabWidth    int    `toml:"tab_width"`
	IndentStyle string `toml:"indent_style"`
	IndentWidth int    `toml:"indent_width"`
	LineEnding  string `toml:"line_ending"`
	UndoLimit   int    `toml:"undo_limit"`
}

// HighlightConfig holds syntax highlighting settings.
type HighlightConfig struct {
	Enabled bool   `toml:"enabled"`
	Theme   string `toml:"theme"`
	// Syntax is the syntax id used when detection finds only plain text.
	Syntax string `toml:"syntax"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:    4,
			IndentStyle: IndentAuto,
			IndentWidth: fileinfo.DefaultIndentWidth,
			LineEnding:  LineEndingAuto,
			UndoLimit:   1000,
		},
		Highlight: HighlightConfig{
			Enabled: true,
			Theme:   "monokai",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decode(path, data, cfg); err != nil {
				return nil, err
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader reads TOML from r over the defaults and validates it.
// Environment variables are not consulted.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := decode("<reader>", data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &derr):
			perr.Line, perr.Column = derr.Position()
		case errors.As(err, &serr) && len(serr.Errors) > 0:
			perr.Line, perr.Column = serr.Errors[0].Position()
			perr.Message = "unknown setting " + strings.Join(serr.Errors[0].Key(), ".")
		}
		return perr
	}
	return nil
}

// Validate checks every setting and reports the first invalid one.
func (c *Config) Validate() error {
	e := c.Editor
	if e.TabWidth < 1 || e.TabWidth > maxWidth {
		return invalid("editor.tab_width", "must be between 1 and %d, got %d", maxWidth, e.TabWidth)
	}
	switch e.IndentStyle {
	case IndentAuto, IndentTab, IndentSpace:
	default:
		return invalid("editor.indent_style", "unknown style %q", e.IndentStyle)
	}
	if e.IndentWidth < 1 || e.IndentWidth > maxWidth {
		return invalid("editor.indent_width", "must be between 1 and %d, got %d", maxWidth, e.IndentWidth)
	}
	if e.LineEnding != LineEndingAuto {
		if _, ok := fileinfo.ParseLineEnding(e.LineEnding); !ok {
			return invalid("editor.line_ending", "unknown line ending %q", e.LineEnding)
		}
	}
	if e.UndoLimit < 0 {
		return invalid("editor.undo_limit", "must not be negative, got %d", e.UndoLimit)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("logging.level", "unknown level %q", c.Logging.Level)
	}
	return nil
}

// Indentation returns the configured indentation, or false when it is
// left to detection.
func (e EditorConfig) Indentation() (fileinfo.Indentation, bool) {
	switch e.IndentStyle {
	case IndentTab:
		return fileinfo.Tab(e.IndentWidth), true
	case IndentSpace:
		return fileinfo.Space(e.IndentWidth), true
	}
	return fileinfo.Indentation{}, false
}

// LineEndingOverride returns the configured line ending, or false when it
// is left to detection.
func (e EditorConfig) LineEndingOverride() (fileinfo.LineEnding, bool) {
	if e.LineEnding == LineEndingAuto {
		return fileinfo.LineEndingLF, false
	}
	return fileinfo.ParseLineEnding(e.LineEnding)
}

// Logger builds a logger from the logging section.
func (c *Config) Logger(out io.Writer) *logging.Logger {
	return logging.New(logging.Config{
		Level:   logging.ParseLevel(c.Logging.Level),
		Output:  out,
		Console: c.Logging.Console,
	})
}
