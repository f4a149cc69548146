package parser

import (
	"strings"
	"testing"
)

func TestTextParser_DropsEmptyLines(t *testing.T) {
	input := "Payment Confirmation Bank d.d.\n\nPAYEEPayee address\r\nCITY GAS UTILITY\n\n\nGASB\n"
	p := &TextParser{}
	lines, err := p.Lines(strings.NewReader(input), "gas.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Payment Confirmation Bank d.d.", "PAYEEPayee address", "CITY GAS UTILITY", "GASB"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestTextParser_KeepsWhitespaceVerbatim(t *testing.T) {
	p := &TextParser{}
	lines, err := p.Lines(strings.NewReader("AMOUNTFee \n  \n"), "x.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "AMOUNTFee " || lines[1] != "  " {
		t.Errorf("expected whitespace to be kept verbatim, got %q", lines)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	lines, err := p.Lines(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected 0 lines, got %d", len(lines))
	}
}

func TestSplitLines_PageBreaks(t *testing.T) {
	lines := splitLines("a\fb\r\n\nc")
	if strings.Join(lines, "|") != "a|b|c" {
		t.Errorf("expected a|b|c, got %q", lines)
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"a.pdf", false},
		{"A.PDF", false},
		{"a.html", false},
		{"a.htm", false},
		{"a.txt", false},
		{"a.docx", true},
		{"noext", true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			_, err := ForFile(tt.filename, Options{})
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
			if IsSupportedExtension(tt.filename) == tt.wantErr {
				t.Errorf("expected IsSupportedExtension=%v", !tt.wantErr)
			}
		})
	}
}
