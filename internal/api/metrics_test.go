package api

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/dgallion1/billdigest/internal/bill"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("list: %w", fs.ErrNotExist), "not_found"},
		{bill.ErrNoDocumentsFound, "not_found"},
		{bill.ParseError("a.pdf", "amount", ""), "rejected"},
		{errors.New("disk full"), "error"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("outcome(%v): expected %s, got %s", tt.err, tt.want, got)
		}
	}
}
