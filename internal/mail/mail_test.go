package mail

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPropose_ListsFolder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"water_022024.pdf", "gas_032024.pdf", "summary_042024.docx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0o755); err != nil {
		t.Fatal(err)
	}

	from := Address{Name: "Igor", Address: "igor@example.com"}
	to := Address{Name: "Landlord", Address: "landlord@example.com"}
	p, err := Propose(from, to, "Rent and utilities 04/2024", "Confirmations attached.", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Subject != "Rent and utilities 04/2024" {
		t.Errorf("expected subject, got %q", p.Subject)
	}
	if p.IdempotencyKey == "" {
		t.Error("expected an idempotency key")
	}
	want := []string{"gas_032024.pdf", "summary_042024.docx", "water_022024.pdf"}
	if len(p.Attachments) != len(want) {
		t.Fatalf("expected %d attachments, got %d: %v", len(want), len(p.Attachments), p.Attachments)
	}
	for i, w := range want {
		if filepath.Base(p.Attachments[i]) != w {
			t.Errorf("attachment %d: expected %s, got %s", i, w, p.Attachments[i])
		}
	}
}

func TestPropose_MissingFolder(t *testing.T) {
	if _, err := Propose(Address{}, Address{}, "s", "b", filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing folder")
	}
}

func TestBuildRequest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gas_032024.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := Proposal{
		From:        Address{Name: "Igor", Address: "igor@example.com"},
		To:          Address{Address: "landlord@example.com"},
		Subject:     "Rent and utilities 04/2024",
		Body:        "Confirmations attached.",
		Attachments: []string{path},
	}
	req, err := buildRequest(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.From != "Igor <igor@example.com>" {
		t.Errorf("expected from header, got %q", req.From)
	}
	if len(req.To) != 1 || req.To[0] != "landlord@example.com" {
		t.Errorf("expected bare recipient address, got %v", req.To)
	}
	if len(req.Attachments) != 1 || req.Attachments[0].Filename != "gas_032024.pdf" || string(req.Attachments[0].Content) != "%PDF-1.4\n" {
		t.Errorf("unexpected attachments: %+v", req.Attachments)
	}
	if req.Attachments[0].ContentType != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", req.Attachments[0].ContentType)
	}
}
