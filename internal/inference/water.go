// Package inference assigns billing months to water invoices, which carry a
// payment date but no period.
//
// Invoice numbers grow with issuance, so they order invoices reliably where
// payment dates do not. The newest invoice is anchored to the month before
// its payment, and every older invoice steps back one more calendar month.
package inference

import (
	"fmt"
	"sort"
	"time"

	"github.com/dgallion1/billdigest/internal/bill"
)

// EarlyPaymentDay is the last day of a month on which a payment is taken to
// settle the period before the previous one.
const EarlyPaymentDay = 5

// lastDayOfPreviousMonth steps t back to the last day of the month before it.
func lastDayOfPreviousMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 0, 0, 0, 0, 0, time.UTC)
}

// Anchor returns the billing month of the newest invoice given its payment date.
func Anchor(paid time.Time) time.Time {
	t := paid
	if paid.Day() <= EarlyPaymentDay {
		t = lastDayOfPreviousMonth(t)
	}
	return lastDayOfPreviousMonth(t)
}

// ResolveWater assigns a distinct month to every slot. Records come back in
// the same order as slots; each keeps its source index for re-merging.
func ResolveWater(slots []bill.WaterSlot) ([]bill.Record, error) {
	if len(slots) == 0 {
		return nil, nil
	}

	order := make([]int, len(slots))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return slots[order[a]].InvoiceID > slots[order[b]].InvoiceID
	})
	for i := 1; i < len(order); i++ {
		prev, cur := slots[order[i-1]], slots[order[i]]
		if prev.InvoiceID == cur.InvoiceID {
			return nil, &bill.DocumentError{
				Filename: cur.Filename,
				Field:    "invoice number",
				Value:    fmt.Sprint(cur.InvoiceID),
				Err:      fmt.Errorf("%w: duplicate of %s", bill.ErrWaterResolution, prev.Filename),
			}
		}
	}

	resolved := make([]*bill.Record, len(slots))
	month := Anchor(slots[order[0]].PaymentDate)
	for n, i := range order {
		if n > 0 {
			month = lastDayOfPreviousMonth(month)
		}
		rec := slots[i].Resolve(bill.MonthOf(month))
		resolved[i] = &rec
	}

	records := make([]bill.Record, 0, len(slots))
	for i, rec := range resolved {
		if rec == nil {
			return nil, &bill.DocumentError{Filename: slots[i].Filename, Err: bill.ErrWaterResolution}
		}
		records = append(records, *rec)
	}
	return records, nil
}
