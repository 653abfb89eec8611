package rent

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeRentPayment is the aggregate type of payment events
const AggregateTypeRentPayment = "RentPayment"

// Event type constants
const (
	EventTypePaymentRecorded    = "PaymentRecorded"
	EventTypePaymentConfirmed   = "PaymentConfirmed"
	EventTypePaymentUnconfirmed = "PaymentUnconfirmed"
	EventTypePaymentDeleted     = "PaymentDeleted"
)

// PaymentEvent carries payment lifecycle changes; Type tells which one
type PaymentEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID       `json:"payment_id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	UnitID        uuid.UUID       `json:"unit_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentType   PaymentType     `json:"payment_type"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	IsConfirmed   bool            `json:"is_confirmed"`
}

func newPaymentEvent(eventType string, p *RentPayment) *PaymentEvent {
	return &PaymentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeRentPayment, p.ID, p.BusinessID),
		PaymentID:       p.ID,
		TenantID:        p.TenantID,
		UnitID:          p.UnitID,
		Amount:          p.Amount,
		PaymentType:     p.Type,
		ReceiptNumber:   p.ReceiptNumber,
		IsConfirmed:     p.IsConfirmed,
	}
}

// NewPaymentRecordedEvent creates a PaymentRecorded event
func NewPaymentRecordedEvent(p *RentPayment) *PaymentEvent {
	return newPaymentEvent(EventTypePaymentRecorded, p)
}

// NewPaymentConfirmedEvent creates a PaymentConfirmed event
func NewPaymentConfirmedEvent(p *RentPayment) *PaymentEvent {
	return newPaymentEvent(EventTypePaymentConfirmed, p)
}

// NewPaymentUnconfirmedEvent creates a PaymentUnconfirmed event
func NewPaymentUnconfirmedEvent(p *RentPayment) *PaymentEvent {
	return newPaymentEvent(EventTypePaymentUnconfirmed, p)
}

// NewPaymentDeletedEvent creates a PaymentDeleted event
func NewPaymentDeletedEvent(p *RentPayment) *PaymentEvent {
	return newPaymentEvent(EventTypePaymentDeleted, p)
}
