package syntax

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"
)

// mainContext is the context every grammar starts in.
const mainContext = "main"

// matchTimeout bounds a single regex match.
const matchTimeout = 250 * time.Millisecond

// Grammar is a regex grammar organised as a stack of named contexts.
//
// Each context holds an ordered list of rules. At every position the
// earliest match among the current context's rules wins, ties going to
// the rule listed first. A rule may push another context or pop the
// current one; a context's meta scope covers everything from the match
// that entered it to the match that left it.
type Grammar struct {
	id         string
	name       string
	scope      string
	extensions []string
	firstLine  *regexp2.Regexp
	main       *context
}

type context struct {
	name      string
	metaScope string
	popAtEOL  bool
	rules     []*rule
}

type rule struct {
	re    *regexp2.Regexp
	scope string
	push  *context
	pop   bool
}

type grammarFile struct {
	ID         string                 `yaml:"id"`
	Name       string                 `yaml:"name"`
	Scope      string                 `yaml:"scope"`
	Extensions []string               `yaml:"extensions"`
	FirstLine  string                 `yaml:"first_line"`
	Contexts   map[string]contextFile `yaml:"contexts"`
}

type contextFile struct {
	MetaScope string     `yaml:"meta_scope"`
	PopAtEOL  bool       `yaml:"pop_at_eol"`
	Rules     []ruleFile `yaml:"rules"`
}

type ruleFile struct {
	Match   string `yaml:"match"`
	Scope   string `yaml:"scope"`
	Push    string `yaml:"push"`
	Pop     bool   `yaml:"pop"`
	Include string `yaml:"include"`
}

// LoadGrammar reads and compiles a YAML grammar definition.
func LoadGrammar(r io.Reader) (*Grammar, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var gf grammarFile
	if err := dec.Decode(&gf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGrammar, err)
	}
	return compile(gf)
}

// ParseGrammar compiles a YAML grammar definition held in memory.
func ParseGrammar(data []byte) (*Grammar, error) {
	return LoadGrammar(bytes.NewReader(data))
}

func compile(gf grammarFile) (*Grammar, error) {
	if gf.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrGrammar)
	}
	if _, ok := gf.Contexts[mainContext]; !ok {
		return nil, fmt.Errorf("%w: %s: missing %q context", ErrGrammar, gf.ID, mainContext)
	}

	g := &Grammar{
		id:    strings.ToLower(gf.ID),
		name:  gf.Name,
		scope: gf.Scope,
	}
	if g.name == "" {
		g.name = gf.ID
	}
	for _, ext := range gf.Extensions {
		g.extensions = append(g.extensions, strings.ToLower(strings.TrimPrefix(ext, ".")))
	}
	if gf.FirstLine != "" {
		re, err := compileRegex(gf.FirstLine)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: first_line: %w", ErrGrammar, g.id, err)
		}
		g.firstLine = re
	}

	names := slices.Sorted(maps.Keys(gf.Contexts))
	contexts := make(map[string]*context, len(names))
	for _, name := range names {
		cf := gf.Contexts[name]
		contexts[name] = &context{name: name, metaScope: cf.MetaScope, popAtEOL: cf.PopAtEOL}
	}

	c := compiler{grammar: g.id, files: gf.Contexts, contexts: contexts}
	for _, name := range names {
		rules, err := c.rules(name, nil)
		if err != nil {
			return nil, err
		}
		contexts[name].rules = rules
	}
	g.main = contexts[mainContext]
	return g, nil
}

type compiler struct {
	grammar  string
	files    map[string]contextFile
	contexts map[string]*context
}

// rules flattens the rules of a context, expanding includes in place.
func (c *compiler) rules(name string, visiting []string) ([]*rule, error) {
	if slices.Contains(visiting, name) {
		return nil, fmt.Errorf("%w: %s: include cycle through %q", ErrGrammar, c.grammar, name)
	}
	visiting = append(visiting, name)

	var out []*rule
	for i, rf := range c.files[name].Rules {
		where := fmt.Sprintf("%s: %s[%d]", c.grammar, name, i)
		if rf.Include != "" {
			if _, ok := c.files[rf.Include]; !ok {
				return nil, fmt.Errorf("%w: %s: unknown context %q", ErrGrammar, where, rf.Include)
			}
			included, err := c.rules(rf.Include, visiting)
			if err != nil {
				return nil, err
			}
			out = append(out, included...)
			continue
		}
		if rf.Match == "" {
			return nil, fmt.Errorf("%w: %s: rule needs match or include", ErrGrammar, where)
		}
		re, err := compileRegex(rf.Match)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrGrammar, where, err)
		}
		r := &rule{re: re, scope: rf.Scope, pop: rf.Pop}
		if rf.Push != "" {
			target, ok := c.contexts[rf.Push]
			if !ok {
				return nil, fmt.Errorf("%w: %s: unknown context %q", ErrGrammar, where, rf.Push)
			}
			r.push = target
		}
		out = append(out, r)
	}
	return out, nil
}

func compileRegex(expr string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = matchTimeout
	return re, nil
}

// ID returns the grammar identifier.
func (g *Grammar) ID() string { return g.id }

// Name returns the display name.
func (g *Grammar) Name() string { return g.name }

// Scope returns the scope covering the whole document.
func (g *Grammar) Scope() string { return g.scope }

// Extensions returns the file extensions the grammar claims, lower-case
// and without the leading dot.
func (g *Grammar) Extensions() []string { return slices.Clone(g.extensions) }

// MatchesFirstLine reports whether the grammar claims a file by its first
// line, typically a shebang.
func (g *Grammar) MatchesFirstLine(line string) bool {
	if g.firstLine == nil {
		return false
	}
	ok, err := g.firstLine.MatchString(line)
	return err == nil && ok
}

type frame struct {
	ctx    *context
	scoped bool
}

type grammarState struct {
	started bool
	frames  []frame
}

func (s *grammarState) Clone() State {
	return &grammarState{started: s.started, frames: slices.Clone(s.frames)}
}

func (s *grammarState) top() frame {
	return s.frames[len(s.frames)-1]
}

// NewState returns a state positioned in the main context.
func (g *Grammar) NewState() State {
	return &grammarState{frames: []frame{{ctx: g.main}}}
}

// ParseLine implements Syntax.
func (g *Grammar) ParseLine(st State, line string) ([]ScopeOp, error) {
	s, ok := st.(*grammarState)
	if !ok {
		return nil, fmt.Errorf("%w: %s: foreign state %T", ErrParse, g.id, st)
	}

	var ops []ScopeOp
	if !s.started {
		s.started = true
		if g.scope != "" {
			ops = append(ops, Push(0, g.scope))
		}
	}

	text := []rune(line)
	limit := 4*len(text) + 16
	pos := 0
	for steps := 0; pos < len(text); steps++ {
		if steps > limit {
			return ops, fmt.Errorf("%w: %s: no progress at column %d", ErrParse, g.id, pos)
		}

		top := s.top()
		r, m, err := top.ctx.earliest(text, pos)
		if err != nil {
			return ops, fmt.Errorf("%w: %s: %w", ErrParse, g.id, err)
		}
		if r == nil {
			break
		}

		start, end := m.Index, m.Index+m.Length
		changed := false
		if r.push != nil && r.push.metaScope != "" {
			ops = append(ops, Push(start, r.push.metaScope))
		}
		if r.scope != "" && end > start {
			ops = append(ops, Push(start, r.scope), Pop(end))
		}
		if r.pop && len(s.frames) > 1 {
			if top.scoped {
				ops = append(ops, Pop(end))
			}
			s.frames = s.frames[:len(s.frames)-1]
			changed = true
		}
		if r.push != nil {
			s.frames = append(s.frames, frame{ctx: r.push, scoped: r.push.metaScope != ""})
			changed = true
		}

		switch {
		case end > pos:
			pos = end
		case !changed:
			pos++
		}
	}

	for len(s.frames) > 1 && s.top().ctx.popAtEOL {
		if s.top().scoped {
			ops = append(ops, Pop(len(text)))
		}
		s.frames = s.frames[:len(s.frames)-1]
	}
	return ops, nil
}

// earliest returns the rule matching closest to pos.
func (c *context) earliest(text []rune, pos int) (*rule, *regexp2.Match, error) {
	var (
		best  *rule
		bestM *regexp2.Match
	)
	for _, r := range c.rules {
		m, err := r.re.FindRunesMatchStartingAt(text, pos)
		if err != nil {
			return nil, nil, err
		}
		if m == nil {
			continue
		}
		if bestM == nil || m.Index < bestM.Index {
			best, bestM = r, m
			if m.Index == pos {
				break
			}
		}
	}
	return best, bestM, nil
}
