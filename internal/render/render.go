// Package render writes a batch summary as a document.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/billdigest/internal/pipeline"
)

// Renderer writes a summary to w.
type Renderer interface {
	Render(w io.Writer, s pipeline.Summary) error
	// Ext is the file extension of the rendered document.
	Ext() string
}

// ForFormat returns the renderer for "html" or "docx".
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "html":
		return &HTML{}, nil
	case "docx":
		return &DOCX{}, nil
	default:
		return nil, fmt.Errorf("unsupported summary format: %q", format)
	}
}
