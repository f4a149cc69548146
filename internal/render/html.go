package render

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/dgallion1/billdigest/internal/pipeline"
	"github.com/yuin/goldmark"
)

const bodyStyle = "font-family: Roboto, sans-serif; font-size: 16px; margin: 75px;"

// HTML renders the summary markdown into a standalone HTML page.
type HTML struct{}

func (h *HTML) Ext() string { return ".html" }

func (h *HTML) Render(w io.Writer, s pipeline.Summary) error {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(s.Markdown()), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}
	_, err := fmt.Fprintf(w,
		"<!DOCTYPE html>\n<html><head><meta charset=\"UTF-8\"><title>%s</title></head><body style=\"%s\">\n%s</body></html>\n",
		html.EscapeString(s.Heading()), bodyStyle, body.String())
	return err
}
