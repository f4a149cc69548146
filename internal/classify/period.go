package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/billdigest/internal/bill"
)

var (
	// MM/YYYY
	slashMonth = regexp.MustCompile(`^(\d{2})/(\d{4})$`)
	// MMYYYY
	compactMonth = regexp.MustCompile(`^(\d{2})(\d{4})$`)
	// MM-MM/YY, a quarter or other month range
	monthRange = regexp.MustCompile(`^(\d{2})-(\d{2})/(\d{2})$`)
	// MM.YYYY. as printed on gas advances
	dottedMonth = regexp.MustCompile(`^(\d{2})\.(\d{4})\.?$`)
	// MM/YYYY or MM.YYYY on monthly power charges
	monthlyCharge = regexp.MustCompile(`^(\d{2})[./](\d{4})\.?$`)
	// YYYYMM on older monthly power charges
	legacyMonthlyCharge = regexp.MustCompile(`^(\d{4})(\d{2})$`)
	// DD.MM.YYYY with optional trailing time
	paymentDate = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})`)
	digits      = regexp.MustCompile(`^\d+$`)
)

// Character offsets into the routing reference of power advances. They are
// fixed by the issuer's reference format.
const (
	refYearStart  = 16
	refYearEnd    = 18
	refMonthStart = 18
	refMonthEnd   = 20
)

// Character offsets into the DDMMYYYY end date of a power settlement.
const (
	settlementMonthStart = 2
	settlementMonthEnd   = 4
	settlementYearStart  = 4
	settlementYearEnd    = 8
)

func period(month, year string) (bill.Period, error) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return bill.Period{}, fmt.Errorf("invalid month %q", month)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return bill.Period{}, fmt.Errorf("invalid year %q", year)
	}
	return bill.Period{Month: m, Year: y}, nil
}

// parseMonthYear accepts MM/YYYY, MMYYYY or MM-MM/YY.
func parseMonthYear(s string) (bill.Period, error) {
	s = strings.TrimSpace(s)
	if m := slashMonth.FindStringSubmatch(s); m != nil {
		return period(m[1], m[2])
	}
	if m := compactMonth.FindStringSubmatch(s); m != nil {
		return period(m[1], m[2])
	}
	if m := monthRange.FindStringSubmatch(s); m != nil {
		p, err := period(m[1], "20"+m[3])
		if err != nil {
			return bill.Period{}, err
		}
		end, err := period(m[2], "20"+m[3])
		if err != nil {
			return bill.Period{}, err
		}
		p.EndMonth = end.Month
		return p, nil
	}
	return bill.Period{}, fmt.Errorf("unrecognized period %q", s)
}

func parseDottedMonth(s string) (bill.Period, error) {
	m := dottedMonth.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return bill.Period{}, fmt.Errorf("unrecognized period %q", s)
	}
	return period(m[1], m[2])
}

func parseMonthlyCharge(s string) (bill.Period, error) {
	s = strings.TrimSpace(s)
	if m := monthlyCharge.FindStringSubmatch(s); m != nil {
		return period(m[1], m[2])
	}
	if m := legacyMonthlyCharge.FindStringSubmatch(s); m != nil {
		return period(m[2], m[1])
	}
	return bill.Period{}, fmt.Errorf("unrecognized period %q", s)
}

func parseRoutingReference(ref string) (bill.Period, error) {
	if len(ref) < refMonthEnd {
		return bill.Period{}, fmt.Errorf("reference %q too short", ref)
	}
	yy := ref[refYearStart:refYearEnd]
	if !digits.MatchString(yy) {
		return bill.Period{}, fmt.Errorf("invalid year %q", yy)
	}
	return period(ref[refMonthStart:refMonthEnd], "20"+yy)
}

func parseSettlementRange(s string) (bill.Period, error) {
	dates := strings.Split(s, "-")
	if len(dates) != 2 {
		return bill.Period{}, fmt.Errorf("expected two dates in %q", s)
	}
	end := strings.TrimSpace(dates[1])
	if len(end) < settlementYearEnd || !digits.MatchString(end[:settlementYearEnd]) {
		return bill.Period{}, fmt.Errorf("invalid end date %q", end)
	}
	return period(end[settlementMonthStart:settlementMonthEnd], end[settlementYearStart:settlementYearEnd])
}

func parsePaymentDate(s string) (time.Time, error) {
	m := paymentDate.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != mo {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
