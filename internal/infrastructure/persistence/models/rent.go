package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/shopspring/decimal"
)

// RentPaymentModel is the persistence model for the RentPayment aggregate.
// The month/year columns carry the billing period.
type RentPaymentModel struct {
	BusinessAggregateModel
	TenantID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	UnitID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	PaymentType     rent.PaymentType   `gorm:"type:varchar(20);not null;index"`
	PaymentMethod   rent.PaymentMethod `gorm:"type:varchar(20);not null"`
	PaymentDate     time.Time          `gorm:"not null;index"`
	DueDate         time.Time          `gorm:"not null"`
	ReferenceNumber string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	ReceiptNumber   string             `gorm:"type:varchar(50);not null"`
	Description     string             `gorm:"type:text"`
	IsConfirmed     bool               `gorm:"not null;default:false;index"`
	ConfirmedBy     string             `gorm:"type:varchar(200)"`
	ConfirmedAt     *time.Time
	Month           int            `gorm:"not null"`
	Year            int            `gorm:"not null"`
	Breakdown       rent.Breakdown `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (RentPaymentModel) TableName() string {
	return "rent_payments"
}

// ToDomain converts the persistence model to a domain RentPayment
func (m *RentPaymentModel) ToDomain() *rent.RentPayment {
	return &rent.RentPayment{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		TenantID:              m.TenantID,
		UnitID:                m.UnitID,
		Amount:                m.Amount,
		Type:                  m.PaymentType,
		Method:                m.PaymentMethod,
		PaymentDate:           m.PaymentDate,
		DueDate:               m.DueDate,
		ReferenceNumber:       m.ReferenceNumber,
		ReceiptNumber:         m.ReceiptNumber,
		Description:           m.Description,
		IsConfirmed:           m.IsConfirmed,
		ConfirmedBy:           m.ConfirmedBy,
		ConfirmedAt:           m.ConfirmedAt,
		Period:                rent.Period{Month: m.Month, Year: m.Year},
		Breakdown:             m.Breakdown,
	}
}

// FromDomain populates the persistence model from a domain RentPayment
func (m *RentPaymentModel) FromDomain(p *rent.RentPayment) {
	m.FromDomainBusinessAggregateRoot(p.BusinessAggregateRoot)
	m.TenantID = p.TenantID
	m.UnitID = p.UnitID
	m.Amount = p.Amount
	m.PaymentType = p.Type
	m.PaymentMethod = p.Method
	m.PaymentDate = p.PaymentDate
	m.DueDate = p.DueDate
	m.ReferenceNumber = p.ReferenceNumber
	m.ReceiptNumber = p.ReceiptNumber
	m.Description = p.Description
	m.IsConfirmed = p.IsConfirmed
	m.ConfirmedBy = p.ConfirmedBy
	m.ConfirmedAt = p.ConfirmedAt
	m.Month = p.Period.Month
	m.Year = p.Period.Year
	m.Breakdown = p.Breakdown
}

// RentPaymentModelFromDomain creates a new persistence model from a domain RentPayment
func RentPaymentModelFromDomain(p *rent.RentPayment) *RentPaymentModel {
	m := &RentPaymentModel{}
	m.FromDomain(p)
	return m
}

// ReceiptSequenceModel holds the last receipt sequence issued per business and month prefix
type ReceiptSequenceModel struct {
	BusinessID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Prefix     string    `gorm:"type:varchar(20);primaryKey"`
	Value      int64     `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceiptSequenceModel) TableName() string {
	return "receipt_sequences"
}
