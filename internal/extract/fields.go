// Package extract pulls labeled fields out of the text lines of a payment
// confirmation. The issuer prints every confirmation with the same layout,
// so fields are found by exact label lines and fixed offsets.
package extract

import "strings"

// Labels and offsets of the issuer's confirmation layout.
const (
	LabelPayee     = "PAYEEPayee address"
	LabelPurpose   = "Purpose codePayment description"
	LabelAmount    = "AMOUNTFee"
	LabelStatus    = "StatusConfirmation date and time"
	LabelReference = "Payee modelPayee reference number"

	offsetPayee       = 1
	offsetCode        = 1
	offsetDescription = 2
	offsetAmount      = 1
	offsetConfirmedAt = 2
	offsetReference   = 1
)

// Field is a value that may be absent from the document.
type Field struct {
	Text  string
	Valid bool
}

// Contains reports whether the field is present and contains sub.
func (f Field) Contains(sub string) bool {
	return f.Valid && strings.Contains(f.Text, sub)
}

// Equals reports whether the field is present and equal to s.
func (f Field) Equals(s string) bool {
	return f.Valid && f.Text == s
}

// Fields are the raw strings a classifier works from.
type Fields struct {
	Payee       Field
	Code        Field
	Description Field
	Amount      Field
	ConfirmedAt Field
	Reference   Field
}

// Get returns the line offset lines below the first line equal to label.
func Get(lines []string, label string, offset int) (string, bool) {
	for i, line := range lines {
		if line != label {
			continue
		}
		j := i + offset
		if j < 0 || j >= len(lines) {
			return "", false
		}
		return lines[j], true
	}
	return "", false
}

func field(lines []string, label string, offset int) Field {
	text, ok := Get(lines, label, offset)
	return Field{Text: text, Valid: ok}
}

// FromLines extracts all known fields. Absent labels leave fields invalid.
func FromLines(lines []string) Fields {
	return Fields{
		Payee:       field(lines, LabelPayee, offsetPayee),
		Code:        field(lines, LabelPurpose, offsetCode),
		Description: field(lines, LabelPurpose, offsetDescription),
		Amount:      field(lines, LabelAmount, offsetAmount),
		ConfirmedAt: field(lines, LabelStatus, offsetConfirmedAt),
		Reference:   field(lines, LabelReference, offsetReference),
	}
}

// IsIssuer reports whether the document starts with the issuer header line.
func IsIssuer(lines []string, header string) bool {
	return len(lines) > 0 && header != "" && lines[0] == header
}
