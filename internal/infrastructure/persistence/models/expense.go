package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/expense"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense aggregate
type ExpenseModel struct {
	BusinessAggregateModel
	PropertyID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	UnitID        *uuid.UUID            `gorm:"type:uuid;index"`
	Category      expense.Category      `gorm:"type:varchar(20);not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Description   string                `gorm:"type:text;not null"`
	Date          time.Time             `gorm:"column:expense_date;not null;index"`
	ReceiptNumber string                `gorm:"type:varchar(100)"`
	ReceiptImage  string                `gorm:"type:varchar(500)"`
	PaidBy        string                `gorm:"type:varchar(200)"`
	PaymentMethod expense.PaymentMethod `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *expense.Expense {
	return &expense.Expense{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		PropertyID:            m.PropertyID,
		UnitID:                m.UnitID,
		Category:              m.Category,
		Amount:                m.Amount,
		Description:           m.Description,
		Date:                  m.Date,
		ReceiptNumber:         m.ReceiptNumber,
		ReceiptImage:          m.ReceiptImage,
		PaidBy:                m.PaidBy,
		PaymentMethod:         m.PaymentMethod,
	}
}

// FromDomain populates the persistence model from a domain Expense
func (m *ExpenseModel) FromDomain(e *expense.Expense) {
	m.FromDomainBusinessAggregateRoot(e.BusinessAggregateRoot)
	m.PropertyID = e.PropertyID
	m.UnitID = e.UnitID
	m.Category = e.Category
	m.Amount = e.Amount
	m.Description = e.Description
	m.Date = e.Date
	m.ReceiptNumber = e.ReceiptNumber
	m.ReceiptImage = e.ReceiptImage
	m.PaidBy = e.PaidBy
	m.PaymentMethod = e.PaymentMethod
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense
func ExpenseModelFromDomain(e *expense.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
