package fileinfo

import (
	"os"

	"github.com/dshills/inkwell/internal/engine/rope"
)

// FileInfo describes how a document is stored on disk.
type FileInfo struct {
	Encoding    Encoding
	BOM         []byte
	LineEnding  LineEnding
	Indentation Indentation
	SyntaxID    string
}

// Default returns the file info of a new, empty document.
func Default() FileInfo {
	return FileInfo{
		Encoding:    UTF8,
		LineEnding:  PlatformLineEnding(),
		Indentation: Space(DefaultIndentWidth),
		SyntaxID:    PlainSyntax,
	}
}

// Result is the outcome of Detect.
type Result struct {
	Info FileInfo
	Text rope.Rope

	// Replacements counts malformed sequences replaced during decoding.
	Replacements int
}

// Detect decodes data and infers its file info. The filename is only used
// to pick a syntax and may be empty.
func Detect(filename string, data []byte) Result {
	info := Default()

	payload := data
	if enc, bom, ok := DetectBOM(data); ok {
		info.Encoding = enc
		info.BOM = bom
		payload = data[len(bom):]
	} else {
		info.Encoding = GuessEncoding(data)
	}

	text, bad := info.Encoding.Decode(payload)
	r := rope.FromString(text)

	info.LineEnding = DetectLineEnding(text)
	info.Indentation = DetectIndentation(r)
	info.SyntaxID = DetectSyntax(filename, text)

	return Result{Info: info, Text: r, Replacements: bad}
}

// ReadFile reads and detects the file at path.
func ReadFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Detect(path, data), nil
}

// Encode serializes text for writing back to disk: the BOM, if any,
// followed by the text in the file's encoding.
func (fi FileInfo) Encode(text string) ([]byte, error) {
	body, err := fi.Encoding.Encode(text)
	if err != nil {
		return nil, err
	}
	if len(fi.BOM) == 0 {
		return body, nil
	}
	out := make([]byte, 0, len(fi.BOM)+len(body))
	out = append(out, fi.BOM...)
	return append(out, body...), nil
}
