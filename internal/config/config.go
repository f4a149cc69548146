package config

import (
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultExtractConcurrency is used when EXTRACT_CONCURRENCY is unset or not positive.
const DefaultExtractConcurrency = 4

type Config struct {
	// Base directory holding one MMYYYY folder per month.
	Directory string

	// Mail identities
	FromName    string
	FromAddress string
	ToName      string
	ToAddress   string
	MailBody    string

	// Delivery
	ResendAPIKey string

	// Document layout
	IssuerHeader string

	// Summary
	SummaryTitle  string
	SummaryFormat string
	RentAmount    string

	// Extraction
	ExtractConcurrency   int
	PDFFallbackPdftotext bool

	// HTTP server
	Port   string
	APIKey string
}

// Load reads configuration from the environment, after merging an optional
// .env file from the working directory.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Directory: os.Getenv("BILLDIGEST_DIRECTORY"),

		FromName:    os.Getenv("MAIL_FROM_NAME"),
		FromAddress: os.Getenv("MAIL_FROM_ADDRESS"),
		ToName:      os.Getenv("MAIL_TO_NAME"),
		ToAddress:   os.Getenv("MAIL_TO_ADDRESS"),
		MailBody:    envOr("MAIL_BODY", "Confirmations attached."),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),

		IssuerHeader: envOr("ISSUER_HEADER", "Payment Confirmation Bank d.d."),

		SummaryTitle:  envOr("SUMMARY_TITLE", "Rent and utilities"),
		SummaryFormat: envOr("SUMMARY_FORMAT", "docx"),
		RentAmount:    envOr("RENT_AMOUNT", "305 €"),

		ExtractConcurrency:   envInt("EXTRACT_CONCURRENCY", DefaultExtractConcurrency),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		Port:   envOr("PORT", "8090"),
		APIKey: os.Getenv("BILLDIGEST_API_KEY"),
	}

	// RENT_AMOUNT set to "-" disables the trailer.
	if cfg.RentAmount == "-" {
		cfg.RentAmount = ""
	}
	if cfg.ExtractConcurrency <= 0 {
		cfg.ExtractConcurrency = DefaultExtractConcurrency
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Directory == "" {
		return fmt.Errorf("BILLDIGEST_DIRECTORY is required")
	}
	if st, err := os.Stat(c.Directory); err != nil || !st.IsDir() {
		return fmt.Errorf("BILLDIGEST_DIRECTORY %q is not a directory", c.Directory)
	}
	if err := validIdentity("MAIL_FROM", c.FromName, c.FromAddress); err != nil {
		return err
	}
	if err := validIdentity("MAIL_TO", c.ToName, c.ToAddress); err != nil {
		return err
	}
	switch strings.ToLower(c.SummaryFormat) {
	case "html", "docx":
	default:
		return fmt.Errorf("SUMMARY_FORMAT must be html or docx, got %q", c.SummaryFormat)
	}
	if c.IssuerHeader == "" {
		return fmt.Errorf("ISSUER_HEADER must not be empty")
	}
	return nil
}

// ValidateSend checks the settings needed to deliver mail.
func (c Config) ValidateSend() error {
	if c.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required to send mail")
	}
	return nil
}

// ValidateServer checks the settings needed by the HTTP server.
func (c Config) ValidateServer() error {
	if c.APIKey == "" {
		return fmt.Errorf("BILLDIGEST_API_KEY is required")
	}
	return nil
}

func validIdentity(prefix, name, address string) error {
	if name == "" {
		return fmt.Errorf("%s_NAME is required", prefix)
	}
	if address == "" {
		return fmt.Errorf("%s_ADDRESS is required", prefix)
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return fmt.Errorf("%s_ADDRESS %q is not a valid email address", prefix, address)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
