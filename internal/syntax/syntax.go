package syntax

import "errors"

var (
	// ErrUnknownSyntax indicates no syntax is registered under a name.
	ErrUnknownSyntax = errors.New("unknown syntax")

	// ErrGrammar indicates a grammar definition could not be compiled.
	ErrGrammar = errors.New("invalid grammar")

	// ErrParse indicates a line could not be parsed.
	ErrParse = errors.New("parse failed")
)

// OpKind is the kind of a scope operation.
type OpKind uint8

const (
	// OpPush enters a scope.
	OpPush OpKind = iota
	// OpPop leaves the innermost scope.
	OpPop
)

// String returns "push" or "pop".
func (k OpKind) String() string {
	if k == OpPop {
		return "pop"
	}
	return "push"
}

// ScopeOp changes the scope stack at a character offset of a line.
// Ops for a line are ordered by Offset.
type ScopeOp struct {
	Offset int
	Kind   OpKind
	Scope  string // empty for OpPop
}

// Push returns an op entering scope at offset.
func Push(offset int, scope string) ScopeOp {
	return ScopeOp{Offset: offset, Kind: OpPush, Scope: scope}
}

// Pop returns an op leaving the innermost scope at offset.
func Pop(offset int) ScopeOp {
	return ScopeOp{Offset: offset, Kind: OpPop}
}

// State is the parser state between two lines.
type State interface {
	// Clone returns an independent copy of the state.
	Clone() State
}

// Syntax parses lines into scope operations.
type Syntax interface {
	// ID returns the lower-case identifier of the syntax ("go", "json").
	ID() string

	// Name returns the display name of the syntax.
	Name() string

	// NewState returns the state at the start of a document.
	NewState() State

	// ParseLine parses one line without its terminator, advancing st.
	// On error the ops parsed before the failure are returned along with
	// it, and st reflects them.
	ParseLine(st State, line string) ([]ScopeOp, error)
}
