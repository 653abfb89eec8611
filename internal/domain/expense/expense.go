package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category classifies what the money was spent on
type Category string

const (
	CategoryMaintenance Category = "maintenance"
	CategoryRepair      Category = "repair"
	CategoryUtility     Category = "utility"
	CategoryTax         Category = "tax"
	CategoryInsurance   Category = "insurance"
	CategorySupplies    Category = "supplies"
	CategoryOther       Category = "other"
)

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	switch c {
	case CategoryMaintenance, CategoryRepair, CategoryUtility, CategoryTax,
		CategoryInsurance, CategorySupplies, CategoryOther:
		return true
	}
	return false
}

// PaymentMethod is how an expense was settled
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
)

// IsValid reports whether m is a known method. The zero value means unknown
// and is accepted.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case "", PaymentMethodBankTransfer, PaymentMethodMobileMoney, PaymentMethodCash,
		PaymentMethodCheck, PaymentMethodCreditCard:
		return true
	}
	return false
}

// Expense is money spent on a property, optionally against one of its units
type Expense struct {
	shared.BusinessAggregateRoot
	PropertyID    uuid.UUID
	UnitID        *uuid.UUID
	Category      Category
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
	ReceiptNumber string
	ReceiptImage  string
	PaidBy        string
	PaymentMethod PaymentMethod
}

// NewExpense records an expense. A zero date means today.
func NewExpense(businessID, propertyID uuid.UUID, category Category, amount decimal.Decimal, description string, date time.Time) (*Expense, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Property is required")
	}
	if err := validate(category, amount, description); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now()
	}
	e := &Expense{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		PropertyID:            propertyID,
		Category:              category,
		Amount:                amount,
		Description:           strings.TrimSpace(description),
		Date:                  date,
	}
	e.AddDomainEvent(NewExpenseEvent(EventTypeExpenseRecorded, e))
	return e, nil
}

// Update replaces the amount and descriptive fields
func (e *Expense) Update(category Category, amount decimal.Decimal, description string, date time.Time) error {
	if err := validate(category, amount, description); err != nil {
		return err
	}
	if date.IsZero() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Expense date is required")
	}
	e.Category = category
	e.Amount = amount
	e.Description = strings.TrimSpace(description)
	e.Date = date
	e.Touch()
	e.AddDomainEvent(NewExpenseEvent(EventTypeExpenseUpdated, e))
	return nil
}

// SetPaymentMethod records how the expense was paid
func (e *Expense) SetPaymentMethod(method PaymentMethod) error {
	if !method.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid payment method: %s", method)
	}
	e.PaymentMethod = method
	return nil
}

func validate(category Category, amount decimal.Decimal, description string) error {
	if !category.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid expense category: %s", category)
	}
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Expense amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Description cannot be empty")
	}
	return nil
}

// CategoryTotal is the spend of one category
type CategoryTotal struct {
	Category    Category        `json:"category"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
}

// Summary totals expenses per category, largest first
type Summary struct {
	Categories  []CategoryTotal `json:"categories"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCount  int64           `json:"total_count"`
}

// NewSummary sums the category rows into a Summary
func NewSummary(rows []CategoryTotal) *Summary {
	s := &Summary{Categories: rows, TotalAmount: decimal.Zero}
	if s.Categories == nil {
		s.Categories = []CategoryTotal{}
	}
	for _, row := range rows {
		s.TotalAmount = s.TotalAmount.Add(row.TotalAmount)
		s.TotalCount += row.Count
	}
	return s
}

// Period bounds expense dates. Zero ends are open.
type Period struct {
	From time.Time
	To   time.Time
}

// Repository defines the interface for expense persistence
type Repository interface {
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Expense, error)
	// FindAllForBusiness lists expenses. Supported filter keys: property_id,
	// unit_id, category, payment_method, date_from, date_to
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Expense, error)
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)
	// SummarizeForBusiness groups spend by category; propertyID uuid.Nil covers every property
	SummarizeForBusiness(ctx context.Context, businessID, propertyID uuid.UUID, period Period) (*Summary, error)
	Save(ctx context.Context, e *Expense) error
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error
}
