package rent

import "github.com/shopspring/decimal"

// TypeTotal aggregates confirmed payments of one type
type TypeTotal struct {
	Count  int64
	Amount decimal.Decimal
}

// SummaryFilter narrows a summary to a month and/or year; zero means any
type SummaryFilter struct {
	Month int
	Year  int
}

// PaymentSummary totals confirmed payments by type
type PaymentSummary struct {
	Month         int             `json:"month,omitempty"`
	Year          int             `json:"year,omitempty"`
	TotalPayments int64           `json:"total_payments"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Rent          decimal.Decimal `json:"rent"`
	Deposits      decimal.Decimal `json:"deposits"`
	Utilities     decimal.Decimal `json:"utilities"`
	LateFees      decimal.Decimal `json:"late_fees"`
	Other         decimal.Decimal `json:"other"`
}

// NewPaymentSummary folds per-type totals into a summary
func NewPaymentSummary(filter SummaryFilter, totals map[PaymentType]TypeTotal) PaymentSummary {
	s := PaymentSummary{
		Month:       filter.Month,
		Year:        filter.Year,
		TotalAmount: decimal.Zero,
		Rent:        decimal.Zero,
		Deposits:    decimal.Zero,
		Utilities:   decimal.Zero,
		LateFees:    decimal.Zero,
		Other:       decimal.Zero,
	}
	for paymentType, total := range totals {
		switch paymentType {
		case PaymentTypeRent:
			s.Rent = s.Rent.Add(total.Amount)
		case PaymentTypeDeposit:
			s.Deposits = s.Deposits.Add(total.Amount)
		case PaymentTypeUtility:
			s.Utilities = s.Utilities.Add(total.Amount)
		case PaymentTypeLateFee:
			s.LateFees = s.LateFees.Add(total.Amount)
		default:
			s.Other = s.Other.Add(total.Amount)
		}
		s.TotalPayments += total.Count
		s.TotalAmount = s.TotalAmount.Add(total.Amount)
	}
	return s
}
