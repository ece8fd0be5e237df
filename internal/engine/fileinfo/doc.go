// Package fileinfo inspects raw file bytes on load.
//
// Detect recognises a byte order mark or guesses the encoding with a
// statistical detector, decodes the bytes (malformed input becomes U+FFFD,
// never an error), and infers the line ending style, the indentation unit
// and a syntax identifier for the text.
//
//	res := fileinfo.Detect("main.go", data)
//	res.Info.LineEnding.Sequence() // "\n"
//	res.Info.Indentation.Unit()    // "\t"
package fileinfo
