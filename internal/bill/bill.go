package bill

import (
	"fmt"
	"time"
)

// Category identifies the kind of bill a confirmation pays.
type Category string

const (
	Holding               Category = "holding"
	SmallReserve          Category = "small_reserve"
	UtilityFee            Category = "utility_fee"
	Gas                   Category = "gas"
	GasSettlement         Category = "gas_settlement"
	Electricity           Category = "electricity"
	ElectricitySettlement Category = "electricity_settlement"
	Water                 Category = "water"
)

var titles = map[Category]string{
	Holding:               "Holding",
	SmallReserve:          "Small reserve",
	UtilityFee:            "Utility fee",
	Gas:                   "Gas",
	GasSettlement:         "Gas settlement",
	Electricity:           "Electricity",
	ElectricitySettlement: "Electricity settlement",
	Water:                 "Water",
}

// Title is the display name used in summary lines.
func (c Category) Title() string {
	if t, ok := titles[c]; ok {
		return t
	}
	return string(c)
}

// Slug is the filename prefix for the category.
func (c Category) Slug() string {
	return string(c)
}

// Outcome is the result of classifying one document: either a finished
// Record or a WaterSlot waiting for batch resolution.
type Outcome interface {
	source() Source
}

// Source ties a record back to the file it came from and its position in
// processing order.
type Source struct {
	Filename string
	Index    int
}

// Record is a normalized bill line.
type Record struct {
	Source

	Category Category
	Amount   string // display form, e.g. "123,45 €"
	Period   Period // zero for gas settlements
	// Reference replaces the period for gas settlements.
	Reference string
}

func (r Record) source() Source { return r.Source }

// Line renders the summary line for the record.
func (r Record) Line() string {
	if r.Reference != "" {
		return fmt.Sprintf("%s %s = %s", r.Category.Title(), r.Reference, r.Amount)
	}
	return fmt.Sprintf("%s %s = %s", r.Category.Title(), r.Period, r.Amount)
}

// TargetName returns the canonical filename for the record's source file.
func (r Record) TargetName() string {
	ext := Ext(r.Filename)
	if r.Reference != "" {
		return fmt.Sprintf("%s_%s%s", r.Category.Slug(), Slugify(r.Reference), ext)
	}
	return fmt.Sprintf("%s_%s%s", r.Category.Slug(), r.Period.Compact(), ext)
}

// WaterSlot is a water bill whose period is not printed on the confirmation.
// Its period is inferred once the whole batch is known.
type WaterSlot struct {
	Source

	Amount      string
	InvoiceID   int
	PaymentDate time.Time
}

func (w WaterSlot) source() Source { return w.Source }

// Resolve turns the slot into a finished record for period p.
func (w WaterSlot) Resolve(p Period) Record {
	return Record{
		Source:   w.Source,
		Category: Water,
		Amount:   w.Amount,
		Period:   p,
	}
}
