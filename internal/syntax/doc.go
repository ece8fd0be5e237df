// Package syntax turns lines of text into scope operations for the
// highlighter.
//
// A Syntax parses one line at a time, carrying a State from the end of
// each line into the next so that multi-line constructs (block comments,
// raw strings) resume correctly:
//
//	syn, _ := syntax.Default().Lookup("go")
//	st := syn.NewState()
//	for _, line := range lines {
//		ops, err := syn.ParseLine(st, line)
//		// feed ops to a highlighter
//	}
//
// Two implementations are provided. Grammar is a context-stack regex
// grammar loaded from YAML; the builtin grammars are embedded in the
// binary. ChromaSyntax wraps a chroma lexer and tokenizes each line on its
// own, so it serves any language chroma knows but does not carry state
// across lines.
//
// # Scopes
//
// Scope names are dotted, most general segment first
// ("string.quoted.double"). A ScopeOp pushes or pops one scope at a
// character offset within the line.
package syntax
