// Package parser turns source confirmations into ordered, non-empty text lines.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Parser extracts the text lines of one document.
type Parser interface {
	Lines(r io.Reader, filename string) ([]string, error)
}

// SupportedExtensions lists file extensions a batch folder may contain.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".html": true,
	".htm":  true,
	".txt":  true,
}

// Options tune the parsers returned by ForFile.
type Options struct {
	FallbackPdftotext bool
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// splitLines splits text on newlines and form feeds and drops empty lines.
// Lines are otherwise kept verbatim so label matching stays exact.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
