package syntax

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
)

// ScopeMapping pairs a scope with the chroma token type it stands for.
type ScopeMapping struct {
	Scope string
	Token chroma.TokenType
}

// chromaScopes is ordered most specific first.
var chromaScopes = []ScopeMapping{
	{"meta.preprocessor", chroma.CommentPreproc},
	{"comment", chroma.Comment},
	{"constant.character.escape", chroma.LiteralStringEscape},
	{"constant.character", chroma.LiteralStringChar},
	{"string", chroma.LiteralString},
	{"constant.numeric", chroma.LiteralNumber},
	{"constant.language", chroma.KeywordConstant},
	{"storage.type", chroma.KeywordType},
	{"storage.modifier", chroma.KeywordDeclaration},
	{"keyword.operator.word", chroma.OperatorWord},
	{"keyword.operator", chroma.Operator},
	{"keyword", chroma.Keyword},
	{"entity.name.function", chroma.NameFunction},
	{"entity.name.type", chroma.NameClass},
	{"entity.name.tag", chroma.NameTag},
	{"entity.name.decorator", chroma.NameDecorator},
	{"entity.other.attribute-name", chroma.NameAttribute},
	{"support.function", chroma.NameBuiltin},
	{"variable.language", chroma.NameBuiltinPseudo},
	{"variable", chroma.NameVariable},
	{"constant.other", chroma.NameConstant},
	{"punctuation", chroma.Punctuation},
	{"markup.heading", chroma.GenericHeading},
	{"markup.italic", chroma.GenericEmph},
	{"markup.bold", chroma.GenericStrong},
	{"markup.inserted", chroma.GenericInserted},
	{"markup.deleted", chroma.GenericDeleted},
	{"invalid", chroma.Error},
}

var scopeByToken = func() map[chroma.TokenType]string {
	m := make(map[chroma.TokenType]string, len(chromaScopes))
	for _, sm := range chromaScopes {
		m[sm.Token] = sm.Scope
	}
	return m
}()

// ChromaScopes returns the scopes chroma token types map to, most
// specific first.
func ChromaScopes() []ScopeMapping {
	out := make([]ScopeMapping, len(chromaScopes))
	copy(out, chromaScopes)
	return out
}

// ScopeFor returns the scope for a chroma token type, falling back to its
// sub-category and category. Plain text maps to "".
func ScopeFor(tt chroma.TokenType) string {
	for _, t := range []chroma.TokenType{tt, tt.SubCategory(), tt.Category()} {
		if s, ok := scopeByToken[t]; ok {
			return s
		}
	}
	return ""
}

// ChromaSyntax adapts a chroma lexer. Each line is tokenized on its own,
// so constructs spanning lines are not recognised past their first line.
type ChromaSyntax struct {
	lexer chroma.Lexer
	id    string
	name  string
	scope string
}

// NewChromaSyntax wraps lexer.
func NewChromaSyntax(lexer chroma.Lexer) *ChromaSyntax {
	cfg := lexer.Config()
	id := strings.ToLower(cfg.Name)
	return &ChromaSyntax{
		lexer: chroma.Coalesce(lexer),
		id:    id,
		name:  cfg.Name,
		scope: "source." + strings.ReplaceAll(id, " ", "-"),
	}
}

// ID implements Syntax.
func (c *ChromaSyntax) ID() string { return c.id }

// Name implements Syntax.
func (c *ChromaSyntax) Name() string { return c.name }

type chromaState struct {
	started bool
}

func (s *chromaState) Clone() State {
	cp := *s
	return &cp
}

// NewState implements Syntax.
func (c *ChromaSyntax) NewState() State {
	return &chromaState{}
}

// ParseLine implements Syntax.
func (c *ChromaSyntax) ParseLine(st State, line string) ([]ScopeOp, error) {
	s, ok := st.(*chromaState)
	if !ok {
		return nil, fmt.Errorf("%w: %s: foreign state %T", ErrParse, c.id, st)
	}

	var ops []ScopeOp
	if !s.started {
		s.started = true
		ops = append(ops, Push(0, c.scope))
	}
	if line == "" {
		return ops, nil
	}

	it, err := c.lexer.Tokenise(nil, line)
	if err != nil {
		return ops, fmt.Errorf("%w: %s: %w", ErrParse, c.id, err)
	}

	n := utf8.RuneCountInString(line)
	pos := 0
	for tok := it(); tok != chroma.EOF && pos < n; tok = it() {
		end := min(pos+utf8.RuneCountInString(tok.Value), n)
		if scope := ScopeFor(tok.Type); scope != "" && end > pos {
			ops = append(ops, Push(pos, scope), Pop(end))
		}
		pos = end
	}
	return ops, nil
}
