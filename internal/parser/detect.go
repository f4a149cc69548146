package parser

import (
	"fmt"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// ForContent picks a parser from the file's leading bytes. Banking portals
// sometimes save HTML under a .pdf name; the extension only decides when the
// content is not conclusive.
func ForContent(path string, opts Options) (Parser, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect %s: %w", filepath.Base(path), err)
	}
	switch {
	case mt.Is("application/pdf"):
		return &PDFParser{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case mt.Is("text/html"):
		return &HTMLParser{}, nil
	}
	return ForFile(path, opts)
}
