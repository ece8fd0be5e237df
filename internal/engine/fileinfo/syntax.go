package fileinfo

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainSyntax is the syntax id of text no lexer claims.
const PlainSyntax = "plain"

// sniffLimit bounds how much text content analysis looks at.
const sniffLimit = 4096

// DetectSyntax returns a lower-case syntax id for a file, matching the
// filename first and falling back to content analysis.
func DetectSyntax(filename, text string) string {
	var lexer chroma.Lexer
	if filename != "" {
		lexer = lexers.Match(filepath.Base(filename))
	}
	if lexer == nil && text != "" {
		lexer = lexers.Analyse(text[:min(len(text), sniffLimit)])
	}
	if lexer == nil {
		return PlainSyntax
	}
	name := strings.ToLower(lexer.Config().Name)
	if name == "plaintext" || name == "fallback" {
		return PlainSyntax
	}
	return name
}
