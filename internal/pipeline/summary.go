package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgallion1/billdigest/internal/bill"
)

const (
	summaryRule     = "---"
	summaryPrefix   = "summary_"
	timestampLayout = "02.01.2006. 15:04:05"
)

// Summary is the human-readable digest of one batch.
type Summary struct {
	Title       string
	Target      bill.Period
	GeneratedAt time.Time
	Lines       []string
	// Rent, when set, adds a trailer line with the fixed rent amount.
	Rent string
}

// NewSummary builds the summary for a processed batch.
func NewSummary(title string, target bill.Period, now time.Time, batch *Batch, rent string) Summary {
	return Summary{
		Title:       title,
		Target:      target,
		GeneratedAt: now,
		Lines:       batch.Lines(),
		Rent:        rent,
	}
}

// Heading is the title line, also used as the mail subject.
func (s Summary) Heading() string {
	return fmt.Sprintf("%s %s", s.Title, s.Target)
}

// Paragraphs returns the summary as markdown paragraphs in display order.
func (s Summary) Paragraphs() []string {
	out := []string{
		"**" + s.Heading() + "**",
		"**" + s.GeneratedAt.Format(timestampLayout) + "**",
		summaryRule,
	}
	out = append(out, s.Lines...)
	if s.Rent != "" {
		out = append(out, summaryRule, fmt.Sprintf("Rent %s = %s", s.Target, s.Rent))
	}
	return out
}

// Markdown joins the paragraphs with blank lines.
func (s Summary) Markdown() string {
	return strings.Join(s.Paragraphs(), "\n\n")
}

// Filename is the summary document's name inside the batch folder.
func (s Summary) Filename(ext string) string {
	return summaryPrefix + s.Target.Compact() + ext
}
