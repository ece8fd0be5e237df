package highlight

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint8

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is a true color, or the terminal default when unset.
type Color struct {
	c   colorful.Color
	set bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{}

// RGB creates a color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{
		c:   colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		set: true,
	}
}

// ParseColor parses "#rrggbb" or "#rgb"; the leading '#' is optional.
func ParseColor(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return Color{c: c, set: true}, nil
}

// IsDefault returns true if this is the default color.
func (c Color) IsDefault() bool {
	return !c.set
}

// RGB returns the 8-bit components.
func (c Color) RGB() (r, g, b uint8) {
	return c.c.RGB255()
}

// Hex returns "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if !c.set {
		return ""
	}
	return c.c.Hex()
}

// String returns a string representation of the color.
func (c Color) String() string {
	if !c.set {
		return "default"
	}
	return c.Hex()
}

// Blend mixes c towards other by t in [0, 1], in Lab space.
// A default operand yields the other one.
func (c Color) Blend(other Color, t float64) Color {
	switch {
	case !c.set:
		return other
	case !other.set:
		return c
	}
	return Color{c: c.c.BlendLab(other.c, t).Clamped(), set: true}
}

// Style is a foreground, background and attribute set.
type Style struct {
	Foreground Color
	Background Color
	Attrs      Attribute
}

// NewStyle returns a style with the given foreground.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg}
}

// Bold returns s with bold set.
func (s Style) Bold() Style {
	s.Attrs |= AttrBold
	return s
}

// Italic returns s with italic set.
func (s Style) Italic() Style {
	s.Attrs |= AttrItalic
	return s
}

// Underline returns s with underline set.
func (s Style) Underline() Style {
	s.Attrs |= AttrUnderline
	return s
}

// Merge overlays o onto s: colors o sets replace those of s and
// attributes accumulate.
func (s Style) Merge(o Style) Style {
	if o.Foreground.set {
		s.Foreground = o.Foreground
	}
	if o.Background.set {
		s.Background = o.Background
	}
	s.Attrs |= o.Attrs
	return s
}

// Tcell converts the style for tcell screens.
func (s Style) Tcell() tcell.Style {
	ts := tcell.StyleDefault
	if s.Foreground.set {
		ts = ts.Foreground(tcellColor(s.Foreground))
	}
	if s.Background.set {
		ts = ts.Background(tcellColor(s.Background))
	}
	return ts.
		Bold(s.Attrs.Has(AttrBold)).
		Italic(s.Attrs.Has(AttrItalic)).
		Underline(s.Attrs.Has(AttrUnderline))
}

func tcellColor(c Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Lipgloss converts the style for rendering through r, which decides how
// colors degrade on the target terminal. A nil r uses lipgloss's default
// renderer.
func (s Style) Lipgloss(r *lipgloss.Renderer) lipgloss.Style {
	ls := lipgloss.NewStyle()
	if r != nil {
		ls = r.NewStyle()
	}
	if s.Foreground.set {
		ls = ls.Foreground(lipgloss.Color(s.Foreground.Hex()))
	}
	if s.Background.set {
		ls = ls.Background(lipgloss.Color(s.Background.Hex()))
	}
	if s.Attrs.Has(AttrBold) {
		ls = ls.Bold(true)
	}
	if s.Attrs.Has(AttrItalic) {
		ls = ls.Italic(true)
	}
	if s.Attrs.Has(AttrUnderline) {
		ls = ls.Underline(true)
	}
	return ls
}
