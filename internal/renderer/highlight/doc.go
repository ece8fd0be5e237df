// Package highlight styles text incrementally for presenters.
//
// A Theme maps scope selectors to styles. A Highlighter consumes the
// scope operations produced by a syntax and yields styled spans covering a
// line without gaps. A Cache keeps one styled line per document line and
// saves the parser and highlighter state every CheckpointInterval lines,
// so an edit only re-highlights from the block containing it:
//
//	cache := highlight.NewCache(syn, theme)
//	_ = cache.UpdateRange(ctx, doc.Rope(), first, last, doc.TabWidth())
//	spans := cache.Line(i).Truncate(width)
//
// Readers may observe lines that are stale with respect to the rope until
// the next update covers them. Worker runs updates in the background and
// folds requests that arrive while it is busy into one.
package highlight
