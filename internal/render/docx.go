package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/billdigest/internal/pipeline"
	"github.com/fumiama/go-docx"
)

// DOCX renders the summary as a Word document: bold heading and timestamp,
// one paragraph per line, and rules drawn as a dashed separator.
type DOCX struct{}

func (d *DOCX) Ext() string { return ".docx" }

func (d *DOCX) Render(w io.Writer, s pipeline.Summary) error {
	doc := docx.New().WithDefaultTheme()
	for _, p := range s.Paragraphs() {
		para := doc.AddParagraph()
		switch {
		case p == "---":
			para.AddText(strings.Repeat("-", 40))
		case strings.HasPrefix(p, "**") && strings.HasSuffix(p, "**") && len(p) > 4:
			para.AddText(strings.Trim(p, "*")).Bold().Size("32")
		default:
			para.AddText(p).Size("24")
		}
	}
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
