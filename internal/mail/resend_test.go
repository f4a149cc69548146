package mail

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
)

func testSender(t *testing.T, handler http.HandlerFunc) *ResendSender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewResendSender("re_test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	base, _ := url.Parse(srv.URL + "/")
	s.client.BaseURL = base
	s.backoff = func(int, error) time.Duration { return time.Millisecond }
	return s
}

func proposal() Proposal {
	return Proposal{
		From:    Address{Name: "Tenant", Address: "tenant@example.com"},
		To:      Address{Name: "Landlord", Address: "landlord@example.com"},
		Subject: "Rent and utilities 04/2024",
		Body:    "Confirmations attached.",
	}
}

func TestResendSender_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	s := testSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message":"slow down"}`))
			return
		}
		w.Write([]byte(`{"id":"msg-42"}`))
	})

	id, err := s.Send(context.Background(), proposal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "msg-42" {
		t.Errorf("expected msg-42, got %q", id)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestResendSender_GivesUp(t *testing.T) {
	var calls atomic.Int32
	s := testSender(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := s.Send(context.Background(), proposal())
	if !errors.Is(err, resend.ErrRateLimit) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if calls.Load() != MaxAttempts {
		t.Errorf("expected %d calls, got %d", MaxAttempts, calls.Load())
	}
}

func TestResendSender_NoRetryOnBadRequest(t *testing.T) {
	var calls atomic.Int32
	s := testSender(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from"}`))
	})

	if _, err := s.Send(context.Background(), proposal()); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single call, got %d", calls.Load())
	}
}

func TestBackoff(t *testing.T) {
	hinted := &resend.RateLimitError{RetryAfter: "7"}
	if got := Backoff(0, hinted); got != 7*time.Second {
		t.Errorf("expected Retry-After to win, got %v", got)
	}
	for attempt, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		got := Backoff(attempt, errors.New("x"))
		if got < base || got >= base+base/2 {
			t.Errorf("attempt %d: expected [%v, %v), got %v", attempt, base, base+base/2, got)
		}
	}
	if got := Backoff(10, nil); got < 30*time.Second || got >= 45*time.Second {
		t.Errorf("expected cap at 30s plus jitter, got %v", got)
	}
}
