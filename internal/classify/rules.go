package classify

import (
	"strconv"
	"strings"

	"github.com/dgallion1/billdigest/internal/bill"
	"github.com/shopspring/decimal"
)

// Payees, routing codes and description markers printed on confirmations.
const (
	PayeeHousing = "HOUSING HOLDING CO"
	PayeeGas     = "CITY GAS UTILITY"
	PayeePower   = "POWER UTILITY"
	PayeeWater   = "WATER & SEWAGE UTILITY"

	CodeNone  = "-"
	CodeGas   = "GASB"
	CodePower = "ELEC"
	CodeWater = "WTER"

	markerHoldingFees     = "FEES AND SERVICES FOR "
	markerUtilityFee      = "KN "
	markerUtilityFeeNUV   = "KN,NUV "
	markerGasAdvance      = "Advance installment for "
	markerGasSettlement   = "Gas settlement for "
	markerPowerMonthly    = "Monthly charge for "
	markerPowerAdvance    = "Advance"
	markerPowerShortCode  = "MNO"
	markerPowerSettlement = "Invoice for:"
	markerWaterInvoice    = "INVOICE NUMBER "
)

// Holding payments below this amount are the small reserve fund.
var smallReserveLimit = decimal.NewFromInt(5)

// DefaultRules returns the rule table in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:         "holding",
			Payee:        PayeeHousing,
			Code:         CodeNone,
			Descriptions: []string{markerHoldingFees},
			Parse:        parseHolding,
		},
		{
			Name:         "utility_fee",
			Payee:        PayeeHousing,
			Code:         CodeNone,
			Descriptions: []string{markerUtilityFee, markerUtilityFeeNUV},
			Parse:        parseUtilityFee,
		},
		{
			Name:         "gas",
			Payee:        PayeeGas,
			Code:         CodeGas,
			Descriptions: []string{markerGasAdvance},
			Parse:        parseGas,
		},
		{
			Name:         "gas_settlement",
			Payee:        PayeeGas,
			Code:         CodeGas,
			Descriptions: []string{markerGasSettlement},
			Parse:        parseGasSettlement,
		},
		{
			Name:         "electricity",
			Payee:        PayeePower,
			Code:         CodePower,
			Descriptions: []string{markerPowerMonthly, markerPowerAdvance, markerPowerShortCode},
			Parse:        parseElectricity,
		},
		{
			Name:         "electricity_settlement",
			Payee:        PayeePower,
			Code:         CodePower,
			Descriptions: []string{markerPowerSettlement},
			Parse:        parseElectricitySettlement,
		},
		{
			Name:         "water",
			Payee:        PayeeWater,
			Code:         CodeWater,
			Descriptions: []string{markerWaterInvoice},
			Parse:        parseWater,
		},
	}
}

// after returns the text following the first marker found in s.
func after(s string, markers ...string) string {
	for _, m := range markers {
		if i := strings.Index(s, m); i >= 0 {
			return s[i+len(m):]
		}
	}
	return ""
}

func amount(in Input) (string, error) {
	if !in.Fields.Amount.Valid {
		return "", bill.ParseError(in.Filename, "amount", "")
	}
	return bill.FormatAmount(in.Fields.Amount.Text), nil
}

func record(in Input, c bill.Category, amt string, p bill.Period) bill.Record {
	return bill.Record{Source: in.source(), Category: c, Amount: amt, Period: p}
}

func parseHolding(in Input) (bill.Outcome, error) {
	amt, err := amount(in)
	if err != nil {
		return nil, err
	}
	value, err := bill.ParseAmount(in.Fields.Amount.Text)
	if err != nil {
		return nil, bill.ParseError(in.Filename, "amount", in.Fields.Amount.Text)
	}
	category := bill.Holding
	if value.LessThan(smallReserveLimit) {
		category = bill.SmallReserve
	}

	desc := in.Fields.Description.Text
	p, err := parseMonthYear(after(desc, markerHoldingFees))
	if err != nil {
		return nil, bill.ParseError(in.Filename, "description", desc)
	}
	return record(in, category, amt, p), nil
}

func parseUtilityFee(in Input) (bill.Outcome, error) {
	amt, err := amount(in)
	if err != nil {
		return nil, err
	}
	desc := in.Fields.Description.Text
	p, err := parseMonthYear(after(desc, markerUtilityFeeNUV, markerUtilityFee))
	if err != nil {
		return nil, bill.ParseError(in.Filename, "description", desc)
	}
	return record(in, bill.UtilityFee, amt, p), nil
}

func parseGas(in Input) (bill.Outcome, error) {
	amt, err := amount(in)
	if err != nil {
		return nil, err
	}
	desc := in.Fields.Description.Text
	p, err := parseDottedMonth(after(desc, markerGasAdvance))
	if err != nil {
		return nil, bill.ParseError(in.Filename, "description", desc)
	}
	return record(in, bill.Gas, amt, p), nil
}

func parseGasSettlement(in Input) (bill.Outcome, error) {
	amt, err := amount(in)
	if err != nil {
		return nil, err
	}
	desc := in.Fields.Description.Text
	ref := strings.TrimSpace(after(desc, markerGasSettlement))
	if bill.Slugify(ref) == "" {
		return nil, bill.ParseError(in.Filename, "description", desc)
	}
	return bill.Record{
		Source:    in.source(),
		Category:  bill.GasSettlement,
		Amount:    amt,
		Reference: ref,
	}, nil
}

func parseElectricity(in Input) (bill.Outcome, error) {
	amt, err := amount(in)
	if err != nil {
		return nil, err
	}
	desc := in.Fields.Description.Text
	if strings.Contains(desc, markerPowerMonthly) {
		if p, err := parseMonthlyCharge(after(desc, markerPowerMonthly)); err == nil {
			return record(in, bill.Electricity, amt, p), nil
		}
	}
	if !in.Fields.Reference.Valid {
		return nil, bill.ParseError(in.Filename, "description", desc)
	}
	p, err := parseRoutingReference(in.Fields.Reference.Text)
	if err != nil {
		return nil, bill.ParseError(in.Filename, "reference", in.Fields.Reference.Text)
	}
	return record(in, bill.Electricity, amt, p), nil
}

func parseElectricitySettlement(in Input) (bill.Outcome, error) {
	amt, err := amount(in)
	if err != nil {
		return nil, err
	}
	desc := in.Fields.Description.Text
	p, err := parseSettlementRange(after(desc, markerPowerSettlement))
	if err != nil {
		return nil, bill.ParseError(in.Filename, "description", desc)
	}
	return record(in, bill.ElectricitySettlement, amt, p), nil
}

func parseWater(in Input) (bill.Outcome, error) {
	amt, err := amount(in)
	if err != nil {
		return nil, err
	}
	desc := in.Fields.Description.Text
	fields := strings.Fields(after(desc, markerWaterInvoice))
	if len(fields) == 0 {
		return nil, bill.ParseError(in.Filename, "invoice number", desc)
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil || id <= 0 {
		return nil, bill.ParseError(in.Filename, "invoice number", fields[0])
	}
	if !in.Fields.ConfirmedAt.Valid {
		return nil, bill.ParseError(in.Filename, "confirmation time", "")
	}
	paid, err := parsePaymentDate(in.Fields.ConfirmedAt.Text)
	if err != nil {
		return nil, bill.ParseError(in.Filename, "confirmation time", in.Fields.ConfirmedAt.Text)
	}
	return bill.WaterSlot{
		Source:      in.source(),
		Amount:      amt,
		InvoiceID:   id,
		PaymentDate: paid,
	}, nil
}
