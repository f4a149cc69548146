package config

import (
	"strings"
	"testing"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BILLDIGEST_DIRECTORY", t.TempDir())
	t.Setenv("MAIL_FROM_NAME", "Igor")
	t.Setenv("MAIL_FROM_ADDRESS", "igor@example.com")
	t.Setenv("MAIL_TO_NAME", "Landlord")
	t.Setenv("MAIL_TO_ADDRESS", "landlord@example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setValidEnv(t)
	cfg := Load()

	if cfg.SummaryFormat != "docx" {
		t.Errorf("expected docx, got %q", cfg.SummaryFormat)
	}
	if cfg.RentAmount != "305 €" {
		t.Errorf("expected default rent, got %q", cfg.RentAmount)
	}
	if cfg.ExtractConcurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.ExtractConcurrency)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setValidEnv(t)
	t.Setenv("RENT_AMOUNT", "-")
	t.Setenv("EXTRACT_CONCURRENCY", "0")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")
	t.Setenv("SUMMARY_FORMAT", "html")

	cfg := Load()
	if cfg.RentAmount != "" {
		t.Errorf("expected trailer disabled, got %q", cfg.RentAmount)
	}
	if cfg.ExtractConcurrency != 4 {
		t.Errorf("expected non-positive concurrency to fall back to 4, got %d", cfg.ExtractConcurrency)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback off")
	}
	if cfg.SummaryFormat != "html" {
		t.Errorf("expected html, got %q", cfg.SummaryFormat)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing directory", func(c *Config) { c.Directory = "" }, "BILLDIGEST_DIRECTORY is required"},
		{"directory not found", func(c *Config) { c.Directory = "/nonexistent/billdigest" }, "is not a directory"},
		{"missing from name", func(c *Config) { c.FromName = "" }, "MAIL_FROM_NAME"},
		{"bad from address", func(c *Config) { c.FromAddress = "not-an-email" }, "MAIL_FROM_ADDRESS"},
		{"named to address", func(c *Config) { c.ToAddress = "Landlord <l@example.com>" }, "MAIL_TO_ADDRESS"},
		{"bad format", func(c *Config) { c.SummaryFormat = "pdf" }, "SUMMARY_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValidEnv(t)
			cfg := Load()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateSendAndServer(t *testing.T) {
	var cfg Config
	if err := cfg.ValidateSend(); err == nil {
		t.Error("expected missing RESEND_API_KEY to fail")
	}
	if err := cfg.ValidateServer(); err == nil {
		t.Error("expected missing BILLDIGEST_API_KEY to fail")
	}
	cfg.ResendAPIKey = "re_x"
	cfg.APIKey = "k"
	if cfg.ValidateSend() != nil || cfg.ValidateServer() != nil {
		t.Error("expected keys to satisfy validation")
	}
}
