package syntax

import (
	"embed"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainID is the id of the syntax used when nothing else claims a file.
const PlainID = "plain"

//go:embed grammars/*.yaml
var builtinFS embed.FS

// Set is an immutable collection of grammars with chroma as a fallback.
type Set struct {
	grammars []*Grammar
	byID     map[string]*Grammar
	byExt    map[string]*Grammar
}

// NewSet builds a set from grammars. Later grammars win on id or
// extension conflicts.
func NewSet(grammars ...*Grammar) *Set {
	s := &Set{
		byID:  make(map[string]*Grammar, len(grammars)),
		byExt: make(map[string]*Grammar),
	}
	for _, g := range grammars {
		if _, dup := s.byID[g.id]; !dup {
			s.grammars = append(s.grammars, g)
		} else {
			i := slices.IndexFunc(s.grammars, func(o *Grammar) bool { return o.id == g.id })
			s.grammars[i] = g
		}
		s.byID[g.id] = g
		for _, ext := range g.extensions {
			s.byExt[ext] = g
		}
	}
	return s
}

// Builtin loads the grammars embedded in the binary.
func Builtin() (*Set, error) {
	entries, err := builtinFS.ReadDir("grammars")
	if err != nil {
		return nil, err
	}
	var grammars []*Grammar
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("grammars", e.Name()))
		if err != nil {
			return nil, err
		}
		g, err := ParseGrammar(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		grammars = append(grammars, g)
	}
	return NewSet(grammars...), nil
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Default returns the process-wide set of builtin grammars, loading it on
// first use. It panics if a builtin grammar fails to compile.
func Default() *Set {
	defaultOnce.Do(func() {
		s, err := Builtin()
		if err != nil {
			panic(fmt.Sprintf("syntax: builtin grammars: %v", err))
		}
		defaultSet = s
	})
	return defaultSet
}

// IDs returns the ids of the grammars in the set, sorted.
func (s *Set) IDs() []string {
	ids := make([]string, 0, len(s.grammars))
	for _, g := range s.grammars {
		ids = append(ids, g.id)
	}
	slices.Sort(ids)
	return ids
}

// Grammar returns the grammar registered under id.
func (s *Set) Grammar(id string) (*Grammar, bool) {
	g, ok := s.byID[strings.ToLower(id)]
	return g, ok
}

// Lookup returns the syntax for id: a grammar from the set, else a chroma
// lexer with that name or alias.
func (s *Set) Lookup(id string) (Syntax, error) {
	if g, ok := s.Grammar(id); ok {
		return g, nil
	}
	if l := lexers.Get(id); l != nil && l != lexers.Fallback {
		return NewChromaSyntax(l), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSyntax, id)
}

// ForExtension returns the grammar claiming a file extension, with or
// without its leading dot.
func (s *Set) ForExtension(ext string) (*Grammar, bool) {
	g, ok := s.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return g, ok
}

// ForFirstLine returns the first grammar whose first-line pattern matches.
func (s *Set) ForFirstLine(line string) (*Grammar, bool) {
	for _, g := range s.grammars {
		if g.MatchesFirstLine(line) {
			return g, true
		}
	}
	return nil, false
}

// ForFile picks a syntax for a file by extension, then first line, then
// chroma's filename patterns. It never returns nil.
func (s *Set) ForFile(name, firstLine string) Syntax {
	if g, ok := s.ForExtension(filepath.Ext(name)); ok {
		return g
	}
	if g, ok := s.ForFirstLine(firstLine); ok {
		return g
	}
	if name != "" {
		if l := lexers.Match(filepath.Base(name)); l != nil {
			return NewChromaSyntax(l)
		}
	}
	return s.Plain()
}

// Plain returns the plain-text syntax.
func (s *Set) Plain() Syntax {
	if g, ok := s.byID[PlainID]; ok {
		return g
	}
	return plainFallback
}

// plainFallback is used by sets built without a plain grammar.
var plainFallback = &Grammar{
	id:   PlainID,
	name: "Plain Text",
	main: &context{name: mainContext},
}
