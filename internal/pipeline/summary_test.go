package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/billdigest/internal/bill"
)

func TestSummary_Paragraphs(t *testing.T) {
	batch := process(t, gasDoc("gas.pdf", 0))
	now := time.Date(2024, time.March, 14, 9, 5, 7, 0, time.UTC)
	s := NewSummary("Rent and utilities", bill.Period{Month: 3, Year: 2024}, now, batch, "305 €")

	want := []string{
		"**Rent and utilities 03/2024**",
		"**14.03.2024. 09:05:07**",
		"---",
		"Gas 02/2024 = 23,10 €",
		"---",
		"Rent 03/2024 = 305 €",
	}
	got := s.Paragraphs()
	if len(got) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if !strings.Contains(s.Markdown(), "---\n\nGas 02/2024") {
		t.Errorf("expected blank-line separated markdown, got %q", s.Markdown())
	}
}

func TestSummary_NoRent(t *testing.T) {
	batch := process(t, gasDoc("gas.pdf", 0))
	s := NewSummary("Bills", bill.Period{Month: 3, Year: 2024}, time.Now(), batch, "")
	got := s.Paragraphs()
	if got[len(got)-1] != "Gas 02/2024 = 23,10 €" {
		t.Errorf("expected no rent trailer, got %v", got)
	}
	if s.Heading() != "Bills 03/2024" {
		t.Errorf("expected heading Bills 03/2024, got %q", s.Heading())
	}
	if s.Filename(".docx") != "summary_032024.docx" {
		t.Errorf("unexpected filename %q", s.Filename(".docx"))
	}
}
