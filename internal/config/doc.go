// Package config provides configuration for inkwell.
//
// Configuration is read from a TOML file and then overridden by
// environment variables prefixed with INKWELL_. A missing file yields the
// defaults.
//
//	[editor]
//	tab_width = 4
//	indent_style = "auto"   # auto, tab or space
//	indent_width = 4
//	line_ending = "auto"    # auto, lf, crlf or cr
//	undo_limit = 1000       # 0 keeps every step
//
//	[highlight]
//	enabled = true
//	theme = "monokai"
//	syntax = ""             # force a syntax id
//
//	[logging]
//	level = "info"
//	console = false
//
// A Watcher reloads the file when it changes and hands the new Config to
// registered handlers.
package config
