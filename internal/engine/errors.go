package engine

import (
	"errors"

	"github.com/dshills/inkwell/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrNothingToUndo indicates the undo stack is at its oldest entry.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates there is no undone entry to restore.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrLoad wraps I/O failures while loading a document.
	ErrLoad = errors.New("load failed")
)
