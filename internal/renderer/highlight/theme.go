package highlight

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/inkwell/internal/syntax"
)

// DefaultThemeName is the theme used when none is configured.
const DefaultThemeName = "monokai"

// Theme maps scope selectors to styles.
//
// A selector names a scope prefix by whole segments: "string" applies to
// "string" and "string.quoted.double" but not to "strings".
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Default styles text outside any selector.
	Default Style

	// Selection is the selection highlight color.
	Selection Color

	// LineHighlight is the current line highlight color.
	LineHighlight Color

	selectors map[string]Style
}

// Rule pairs a scope selector with its style.
type Rule struct {
	Selector string
	Style    Style
}

// NewTheme creates a theme. Later rules override earlier ones with the
// same selector.
func NewTheme(name string, def Style, rules ...Rule) *Theme {
	t := &Theme{
		Name:          name,
		Default:       def,
		Selection:     def.Background.Blend(def.Foreground, 0.25),
		LineHighlight: def.Background.Blend(def.Foreground, 0.08),
		selectors:     make(map[string]Style, len(rules)),
	}
	for _, r := range rules {
		t.selectors[r.Selector] = r.Style
	}
	return t
}

// Rules returns the theme's rules sorted by selector.
func (t *Theme) Rules() []Rule {
	rules := make([]Rule, 0, len(t.selectors))
	for _, sel := range slices.Sorted(maps.Keys(t.selectors)) {
		rules = append(rules, Rule{Selector: sel, Style: t.selectors[sel]})
	}
	return rules
}

// StyleForScope returns the style of the most specific selector matching
// scope.
func (t *Theme) StyleForScope(scope string) (Style, bool) {
	for len(scope) > 0 {
		if style, ok := t.selectors[scope]; ok {
			return style, true
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return Style{}, false
}

// StyleFor resolves a scope stack, outermost first. Each matched scope
// is merged over the styles of the scopes enclosing it.
func (t *Theme) StyleFor(scopes []string) Style {
	style := t.Default
	for _, scope := range scopes {
		if s, ok := t.StyleForScope(scope); ok {
			style = style.Merge(s)
		}
	}
	return style
}

// FromChroma converts a chroma style into a theme, assigning each scope
// the entry of the chroma token type it stands for.
func FromChroma(cs *chroma.Style) *Theme {
	def := styleFromEntry(cs.Get(chroma.Background))
	def.Attrs = AttrNone

	var rules []Rule
	for _, m := range syntax.ChromaScopes() {
		entry := cs.Get(m.Token)
		style := styleFromEntry(entry)
		if style.Background == def.Background {
			style.Background = ColorDefault
		}
		rules = append(rules, Rule{Selector: m.Scope, Style: style})
	}
	return NewTheme(cs.Name, def, rules...)
}

func styleFromEntry(e chroma.StyleEntry) Style {
	var s Style
	if e.Colour.IsSet() {
		s.Foreground = RGB(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue())
	}
	if e.Background.IsSet() {
		s.Background = RGB(e.Background.Red(), e.Background.Green(), e.Background.Blue())
	}
	if e.Bold == chroma.Yes {
		s.Attrs |= AttrBold
	}
	if e.Italic == chroma.Yes {
		s.Attrs |= AttrItalic
	}
	if e.Underline == chroma.Yes {
		s.Attrs |= AttrUnderline
	}
	return s
}

var (
	themesOnce sync.Once
	themes     map[string]*Theme
)

// loadThemes converts every registered chroma style once.
func loadThemes() map[string]*Theme {
	themesOnce.Do(func() {
		themes = make(map[string]*Theme, len(styles.Registry))
		for name, cs := range styles.Registry {
			themes[strings.ToLower(name)] = FromChroma(cs)
		}
	})
	return themes
}

// LoadTheme returns the shared theme registered under name, ignoring case.
func LoadTheme(name string) (*Theme, error) {
	t, ok := loadThemes()[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// DefaultTheme returns the default theme, or chroma's fallback style if
// it is not registered.
func DefaultTheme() *Theme {
	if t, err := LoadTheme(DefaultThemeName); err == nil {
		return t
	}
	return FromChroma(styles.Fallback)
}

// ThemeNames returns the registered theme names, sorted.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(loadThemes()))
}
