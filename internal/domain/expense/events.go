package expense

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeExpense is the aggregate type of expense events
const AggregateTypeExpense = "Expense"

const (
	EventTypeExpenseRecorded = "ExpenseRecorded"
	EventTypeExpenseUpdated  = "ExpenseUpdated"
	EventTypeExpenseDeleted  = "ExpenseDeleted"
)

// ExpenseEvent carries expense changes
type ExpenseEvent struct {
	shared.BaseDomainEvent
	ExpenseID  uuid.UUID       `json:"expense_id"`
	PropertyID uuid.UUID       `json:"property_id"`
	Category   Category        `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
}

// NewExpenseEvent creates an ExpenseEvent of eventType for e
func NewExpenseEvent(eventType string, e *Expense) *ExpenseEvent {
	return &ExpenseEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeExpense, e.ID, e.BusinessID),
		ExpenseID:       e.ID,
		PropertyID:      e.PropertyID,
		Category:        e.Category,
		Amount:          e.Amount,
	}
}
