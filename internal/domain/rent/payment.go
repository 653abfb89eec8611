package rent

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentType classifies what a payment settles
type PaymentType string

const (
	PaymentTypeRent    PaymentType = "rent"
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypeUtility PaymentType = "utility"
	PaymentTypeLateFee PaymentType = "late_fee"
	PaymentTypeOther   PaymentType = "other"
)

// IsValid reports whether t is a known payment type
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeRent, PaymentTypeDeposit, PaymentTypeUtility, PaymentTypeLateFee, PaymentTypeOther:
		return true
	}
	return false
}

// PaymentMethod is the channel a payment arrived through
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodMobileMoney, PaymentMethodCash,
		PaymentMethodCheck, PaymentMethodCreditCard:
		return true
	}
	return false
}

// BreakdownLine is one utility charge covered by a payment
type BreakdownLine struct {
	UtilityID    uuid.UUID       `json:"utility_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	BillingCycle string          `json:"billing_cycle"`
}

// Breakdown splits a payment into rent and utilities
type Breakdown struct {
	Rent      decimal.Decimal `json:"rent"`
	Utilities []BreakdownLine `json:"utilities"`
	Total     decimal.Decimal `json:"total"`
}

// IsEmpty reports whether nothing was itemized
func (b Breakdown) IsEmpty() bool {
	return b.Rent.IsZero() && len(b.Utilities) == 0 && b.Total.IsZero()
}

// Normalize fills in an unset total. An empty breakdown totals to amount,
// otherwise the total is rent plus every utility line.
func (b Breakdown) Normalize(amount decimal.Decimal) Breakdown {
	if b.Utilities == nil {
		b.Utilities = []BreakdownLine{}
	}
	if !b.Total.IsZero() {
		return b
	}
	if b.Rent.IsZero() && len(b.Utilities) == 0 {
		b.Total = amount
		return b
	}
	total := b.Rent
	for _, line := range b.Utilities {
		total = total.Add(line.Amount)
	}
	b.Total = total
	return b
}

// Period is a billing month
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Validate checks month and year ranges
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Month must be between 1 and 12")
	}
	if p.Year < 2000 || p.Year > 2100 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Year is out of range")
	}
	return nil
}

// RentPayment is money received from a tenant. Only confirmed rent
// payments count against the tenant's balance.
type RentPayment struct {
	shared.BusinessAggregateRoot
	TenantID        uuid.UUID
	UnitID          uuid.UUID
	Amount          decimal.Decimal
	Type            PaymentType
	Method          PaymentMethod
	PaymentDate     time.Time
	DueDate         time.Time
	ReferenceNumber string
	ReceiptNumber   string
	Description     string
	IsConfirmed     bool
	ConfirmedBy     string
	ConfirmedAt     *time.Time
	Period          Period
	Breakdown       Breakdown
}

// NewRentPayment records an unconfirmed payment
func NewRentPayment(businessID, tenantID, unitID uuid.UUID, amount decimal.Decimal, paymentType PaymentType, method PaymentMethod, paymentDate, dueDate time.Time, period Period) (*RentPayment, error) {
	if tenantID == uuid.Nil || unitID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Payment requires a tenant and a unit")
	}
	if err := validatePayment(amount, paymentType, method, paymentDate, dueDate, period); err != nil {
		return nil, err
	}

	p := &RentPayment{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		TenantID:              tenantID,
		UnitID:                unitID,
		Amount:                amount,
		Type:                  paymentType,
		Method:                method,
		PaymentDate:           paymentDate,
		DueDate:               dueDate,
		Period:                period,
	}
	p.Breakdown = Breakdown{}.Normalize(amount)
	p.AddDomainEvent(NewPaymentRecordedEvent(p))
	return p, nil
}

// AffectsBalance reports whether the payment moves the tenant balance once confirmed
func (p *RentPayment) AffectsBalance() bool {
	return p.Type == PaymentTypeRent
}

// AssignNumbers sets the reference and receipt numbers
func (p *RentPayment) AssignNumbers(reference, receipt string) error {
	if strings.TrimSpace(reference) == "" || strings.TrimSpace(receipt) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Reference and receipt numbers are required")
	}
	p.ReferenceNumber = reference
	p.ReceiptNumber = receipt
	return nil
}

// SetBreakdown itemizes the payment
func (p *RentPayment) SetBreakdown(b Breakdown) {
	p.Breakdown = b.Normalize(p.Amount)
}

// Confirm marks the payment as received. Confirming twice is an error so
// the balance effect is never applied twice.
func (p *RentPayment) Confirm(confirmedBy string, now time.Time) error {
	if p.IsConfirmed {
		return shared.NewDomainError(shared.CodeInvalidState, "Payment is already confirmed")
	}
	p.IsConfirmed = true
	p.ConfirmedBy = confirmedBy
	p.ConfirmedAt = &now
	p.Touch()
	p.AddDomainEvent(NewPaymentConfirmedEvent(p))
	return nil
}

// Unconfirm withdraws a confirmation
func (p *RentPayment) Unconfirm() error {
	if !p.IsConfirmed {
		return shared.NewDomainError(shared.CodeInvalidState, "Payment is not confirmed")
	}
	p.IsConfirmed = false
	p.ConfirmedBy = ""
	p.ConfirmedAt = nil
	p.Touch()
	p.AddDomainEvent(NewPaymentUnconfirmedEvent(p))
	return nil
}

// Details are the editable fields of a payment
type Details struct {
	Amount      decimal.Decimal
	Type        PaymentType
	Method      PaymentMethod
	PaymentDate time.Time
	DueDate     time.Time
	Period      Period
	Description string
}

// ConfirmationChange reports how a revision moved the confirmation flag
type ConfirmationChange int

const (
	ConfirmationUnchanged ConfirmationChange = iota
	ConfirmationGranted
	ConfirmationWithdrawn
)

// Details returns the current editable fields
func (p *RentPayment) Details() Details {
	return Details{
		Amount:      p.Amount,
		Type:        p.Type,
		Method:      p.Method,
		PaymentDate: p.PaymentDate,
		DueDate:     p.DueDate,
		Period:      p.Period,
		Description: p.Description,
	}
}

// Revise replaces the editable fields and sets the confirmation flag in one
// versioned change. The caller applies or reverses the balance effect based
// on the returned change; editing the amount of a confirmed payment has none.
func (p *RentPayment) Revise(d Details, confirmed bool, confirmedBy string, now time.Time) (ConfirmationChange, error) {
	if err := validatePayment(d.Amount, d.Type, d.Method, d.PaymentDate, d.DueDate, d.Period); err != nil {
		return ConfirmationUnchanged, err
	}
	p.Amount = d.Amount
	p.Type = d.Type
	p.Method = d.Method
	p.PaymentDate = d.PaymentDate
	p.DueDate = d.DueDate
	p.Period = d.Period
	p.Description = d.Description

	change := ConfirmationUnchanged
	switch {
	case confirmed && !p.IsConfirmed:
		p.IsConfirmed = true
		p.ConfirmedBy = confirmedBy
		p.ConfirmedAt = &now
		p.AddDomainEvent(NewPaymentConfirmedEvent(p))
		change = ConfirmationGranted
	case !confirmed && p.IsConfirmed:
		p.IsConfirmed = false
		p.ConfirmedBy = ""
		p.ConfirmedAt = nil
		p.AddDomainEvent(NewPaymentUnconfirmedEvent(p))
		change = ConfirmationWithdrawn
	}
	p.Touch()
	return change, nil
}

func validatePayment(amount decimal.Decimal, paymentType PaymentType, method PaymentMethod, paymentDate, dueDate time.Time, period Period) error {
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Payment amount must be positive")
	}
	if !paymentType.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid payment type: %s", paymentType)
	}
	if !method.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid payment method: %s", method)
	}
	if paymentDate.IsZero() || dueDate.IsZero() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Payment and due dates are required")
	}
	return period.Validate()
}
