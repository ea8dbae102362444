// Package extraction - text.go obtains plain text from uploaded resume files.
package extraction

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// minTextLength is the minimum number of characters a resume must yield
// before it is worth submitting to the extractor.
const minTextLength = 100

// TextExtractor turns stored resume bytes into plain text. Binary formats
// (PDF, DOCX) are handled by an external collaborator behind this interface;
// the built-in implementation covers plain-text uploads.
type TextExtractor interface {
	Extract(filename string, content []byte) (string, error)
}

// PlainText extracts text from plain-text resume files.
type PlainText struct{}

// NewPlainText returns a TextExtractor for .txt uploads.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Extract returns the file content as text. Non-text formats and files that
// yield too little text fail with a TextError.
func (p *PlainText) Extract(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".txt" {
		return "", &TextError{
			Filename: filename,
			Message:  "binary format requires an external text extraction service",
		}
	}

	if !utf8.Valid(content) {
		return "", &TextError{Filename: filename, Message: "file is not valid UTF-8 text"}
	}

	text := strings.TrimSpace(string(content))
	if len(text) < minTextLength {
		return "", &TextError{
			Filename: filename,
			Message:  "could not extract sufficient text from resume",
		}
	}

	return text, nil
}
