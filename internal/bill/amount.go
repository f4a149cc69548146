package bill

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyTokens = strings.NewReplacer("HRK", "kn", "EUR", "€")

// FormatAmount normalizes a raw amount such as "1,234.56 EUR" for display:
// currency codes become local symbols and the separators switch to the
// decimal-comma convention ("1.234,56 €"). Nothing is computed.
func FormatAmount(raw string) string {
	s := currencyTokens.Replace(strings.TrimSpace(raw))
	return strings.Map(func(r rune) rune {
		switch r {
		case '.':
			return ','
		case ',':
			return '.'
		}
		return r
	}, s)
}

// ParseAmount reads the numeric part of a raw amount ("4.50 EUR" -> 4.50).
// Commas are treated as thousands separators, as printed by the issuer.
func ParseAmount(raw string) (decimal.Decimal, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	num := strings.ReplaceAll(fields[0], ",", "")
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return d, nil
}
