package config

import (
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INKWELL_"

// LookupFunc reports the value of an environment variable.
type LookupFunc func(key string) (string, bool)

type envSetter func(c *Config, value string) error

// envMapping maps variable names (without prefix) to setters.
var envMapping = map[string]envSetter{
	"TAB_WIDTH":    intSetter("editor.tab_width", func(c *Config) *int { return &c.Editor.TabWidth }),
	"INDENT_WIDTH": intSetter("editor.indent_width", func(c *Config) *int { return &c.Editor.IndentWidth }),
	"UNDO_LIMIT":   intSetter("editor.undo_limit", func(c *Config) *int { return &c.Editor.UndoLimit }),
	"INDENT_STYLE": stringSetter(func(c *Config) *string { return &c.Editor.IndentStyle }),
	"LINE_ENDING":  stringSetter(func(c *Config) *string { return &c.Editor.LineEnding }),
	"THEME":        stringSetter(func(c *Config) *string { return &c.Highlight.Theme }),
	"SYNTAX":       stringSetter(func(c *Config) *string { return &c.Highlight.Syntax }),
	"LOG_LEVEL":    stringSetter(func(c *Config) *string { return &c.Logging.Level }),
	"HIGHLIGHT":    boolSetter("highlight.enabled", func(c *Config) *bool { return &c.Highlight.Enabled }),
	"LOG_CONSOLE":  boolSetter("logging.console", func(c *Config) *bool { return &c.Logging.Console }),
}

// ApplyEnv overrides settings from INKWELL_* variables found by lookup.
// Empty values are treated as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for name, set := range envMapping {
		val, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := set(c, val); err != nil {
			return err
		}
	}
	return nil
}

func stringSetter(field func(*Config) *string) envSetter {
	return func(c *Config, value string) error {
		*field(c) = strings.TrimSpace(value)
		return nil
	}
}

func intSetter(setting string, field func(*Config) *int) envSetter {
	return func(c *Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return invalid(setting, "not an integer: %q", value)
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(setting string, field func(*Config) *bool) envSetter {
	return func(c *Config, value string) error {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "on":
			*field(c) = true
		case "0", "false", "no", "off", "":
			*field(c) = false
		default:
			return invalid(setting, "not a boolean: %q", value)
		}
		return nil
	}
}
