// Package mail proposes and delivers the monthly digest email.
package mail

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

// Address is a named mail identity.
type Address struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (a Address) String() string {
	if a.Name == "" {
		return a.Address
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Address)
}

// Proposal is an email ready to be reviewed or sent.
type Proposal struct {
	From    Address `json:"from"`
	To      Address `json:"to"`
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
	// Attachments are absolute paths, sorted by name.
	Attachments []string `json:"attachments"`
	// IdempotencyKey lets the provider drop a repeated delivery.
	IdempotencyKey string `json:"idempotency_key"`
}

// Propose builds the digest email attaching every file in dir.
func Propose(from, to Address, subject, body, dir string) (Proposal, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Proposal{}, fmt.Errorf("list attachments: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return Proposal{
		From:           from,
		To:             to,
		Subject:        subject,
		Body:           body,
		Attachments:    files,
		IdempotencyKey: uuid.NewString(),
	}, nil
}
