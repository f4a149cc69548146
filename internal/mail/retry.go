package mail

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/resend/resend-go/v2"
)

// MaxAttempts bounds delivery attempts for one proposal.
const MaxAttempts = 3

// IsRetryable reports whether a delivery error is worth retrying. Only rate
// limiting is: other failures would repeat identically.
func IsRetryable(err error) bool {
	return errors.Is(err, resend.ErrRateLimit)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter. A
// Retry-After hint from the provider wins when present.
func Backoff(attempt int, err error) time.Duration {
	var rl *resend.RateLimitError
	if errors.As(err, &rl) {
		if secs, perr := strconv.Atoi(rl.RetryAfter); perr == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}
