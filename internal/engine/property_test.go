package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/fileinfo"
)

var randomInserts = []string{"x", "ab", "e\u0301", "\U0001F1FA\U0001F1F8", "\n", "\r\n", "\t", "    ", "foo\nbar", "-> "}

// randomOp applies one random public operation to d.
func randomOp(rng *rand.Rand, d *Document) string {
	dirs := []Direction{Up, Down, Left, Right}
	switch rng.IntN(16) {
	case 0, 1, 2:
		s := randomInserts[rng.IntN(len(randomInserts))]
		d.Insert(s)
		return "insert " + s
	case 3:
		d.Backspace()
		return "backspace"
	case 4:
		d.Delete()
		return "delete"
	case 5:
		d.MoveSelections(dirs[rng.IntN(4)], rng.IntN(2) == 0)
		return "move"
	case 6:
		d.MoveSelectionsWord(dirs[rng.IntN(4)], rng.IntN(2) == 0)
		return "move word"
	case 7:
		d.DuplicateSelection(dirs[rng.IntN(2)])
		return "duplicate"
	case 8:
		d.PageDown(rng.IntN(4), rng.IntN(2) == 0)
		return "page down"
	case 9:
		d.PageUp(rng.IntN(4), rng.IntN(2) == 0)
		return "page up"
	case 10:
		d.Home(rng.IntN(2) == 0)
		return "home"
	case 11:
		d.End(rng.IntN(2) == 0)
		return "end"
	case 12:
		d.Indent(rng.IntN(2) == 0)
		return "indent"
	case 13:
		d.Deindent()
		return "deindent"
	case 14:
		_ = d.Undo()
		return "undo"
	default:
		n := d.Rope().LenLines()
		d.AddSelection(at(rng.IntN(n), rng.IntN(6)))
		return "add selection"
	}
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, 7))
		in := fileinfo.Space(1 + rng.IntN(4))
		if seed%3 == 0 {
			in = fileinfo.Tab(4)
		}
		d := newDoc("fn main() {\n    x := 1\n}\n", WithIndentation(in))

		for step := 0; step < 150; step++ {
			op := randomOp(rng, d)
			checkInvariants(t, d)
			if t.Failed() {
				t.Fatalf("seed %d step %d: %s", seed, step, op)
			}
		}
	}
}

func TestRandomUndoRedoRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	d := newDoc("alpha\nbeta\n")

	for step := 0; step < 200; step++ {
		randomOp(rng, d)
		if !d.CanUndo() {
			continue
		}

		text, sels := d.Text(), d.Selections()
		require.NoError(t, d.Undo())
		require.NoError(t, d.Redo())
		require.Equal(t, text, d.Text(), "step %d", step)
		require.True(t, sels.Equals(d.Selections()), "step %d", step)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	d := newDoc("ab\r\nc\nde\rf")
	r := d.Rope()
	for i := 0; i <= r.LenChars()+2; i++ {
		p := cursor.FromCharIdx(r, i)
		require.Equal(t, min(i, r.LenChars()), p.CharIdx(r), "index %d", i)
	}
}
