package mail

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/resend/resend-go/v2"
)

// ResendSender delivers proposals through the Resend API.
type ResendSender struct {
	client *resend.Client
	log    *slog.Logger

	backoff func(attempt int, err error) time.Duration
}

func NewResendSender(apiKey string, log *slog.Logger) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), log: log, backoff: Backoff}
}

// Send delivers p and returns the provider's message id.
func (s *ResendSender) Send(ctx context.Context, p Proposal) (string, error) {
	req, err := buildRequest(p)
	if err != nil {
		return "", err
	}
	var resp *resend.SendEmailResponse
	for attempt := range MaxAttempts {
		resp, err = s.client.Emails.SendWithOptions(ctx, req, &resend.SendEmailOptions{IdempotencyKey: p.IdempotencyKey})
		if err == nil || !IsRetryable(err) || attempt == MaxAttempts-1 {
			break
		}
		wait := s.backoff(attempt, err)
		s.log.Warn("email rate limited, retrying", "attempt", attempt, "wait", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		s.log.Error("email send failed", "to", p.To.Address, "subject", p.Subject, "error", err)
		return "", fmt.Errorf("email send failed: %w", err)
	}
	s.log.Info("email sent", "to", p.To.Address, "subject", p.Subject, "id", resp.Id)
	return resp.Id, nil
}

func buildRequest(p Proposal) (*resend.SendEmailRequest, error) {
	req := &resend.SendEmailRequest{
		From:    p.From.String(),
		To:      []string{p.To.String()},
		Subject: p.Subject,
		Text:    p.Body,
	}
	for _, path := range p.Attachments {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read attachment: %w", err)
		}
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename:    filepath.Base(path),
			Content:     data,
			ContentType: mimetype.Detect(data).String(),
		})
	}
	return req, nil
}
