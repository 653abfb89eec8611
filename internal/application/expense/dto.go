package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/expense"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest records an expense against a property
type CreateExpenseRequest struct {
	PropertyID    uuid.UUID       `json:"property_id" binding:"required"`
	UnitID        *uuid.UUID      `json:"unit_id"`
	Category      string          `json:"category" binding:"required,oneof=maintenance repair utility tax insurance supplies other"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Date          *time.Time      `json:"date"`
	ReceiptNumber string          `json:"receipt_number" binding:"max=100"`
	PaidBy        string          `json:"paid_by" binding:"max=200"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=bank_transfer mobile_money cash check credit_card"`
}

// UpdateExpenseRequest represents a partial expense update
type UpdateExpenseRequest struct {
	Category      *string          `json:"category" binding:"omitempty,oneof=maintenance repair utility tax insurance supplies other"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   *string          `json:"description"`
	Date          *time.Time       `json:"date"`
	ReceiptNumber *string          `json:"receipt_number" binding:"omitempty,max=100"`
	PaidBy        *string          `json:"paid_by" binding:"omitempty,max=200"`
	PaymentMethod *string          `json:"payment_method" binding:"omitempty,oneof=bank_transfer mobile_money cash check credit_card"`
}

// ExpenseListFilter represents filter options for the expense list
type ExpenseListFilter struct {
	Search        string     `form:"search"`
	PropertyID    string     `form:"property_id" binding:"omitempty,uuid"`
	UnitID        string     `form:"unit_id" binding:"omitempty,uuid"`
	Category      string     `form:"category" binding:"omitempty,oneof=maintenance repair utility tax insurance supplies other"`
	PaymentMethod string     `form:"payment_method" binding:"omitempty,oneof=bank_transfer mobile_money cash check credit_card"`
	StartDate     *time.Time `form:"start_date" time_format:"2006-01-02" time_utc:"1"`
	EndDate       *time.Time `form:"end_date" time_format:"2006-01-02" time_utc:"1"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PeriodQuery bounds a summary by expense date; both ends are inclusive
type PeriodQuery struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02" time_utc:"1"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02" time_utc:"1"`
}

func (q PeriodQuery) toPeriod() expense.Period {
	var p expense.Period
	if q.StartDate != nil {
		p.From = *q.StartDate
	}
	if q.EndDate != nil {
		p.To = endOfDay(*q.EndDate)
	}
	return p
}

// endOfDay extends a date-only bound to cover the whole day
func endOfDay(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	BusinessID    uuid.UUID       `json:"business_id"`
	PropertyID    uuid.UUID       `json:"property_id"`
	UnitID        *uuid.UUID      `json:"unit_id,omitempty"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	ReceiptImage  string          `json:"receipt_image,omitempty"`
	PaidBy        string          `json:"paid_by,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PropertyExpensesResponse lists the expenses of one property with their
// category breakdown
type PropertyExpensesResponse struct {
	PropertyID uuid.UUID         `json:"property_id"`
	Expenses   []ExpenseResponse `json:"expenses"`
	Summary    *expense.Summary  `json:"summary"`
}

// AttachReceiptRequest registers an uploaded receipt scan
type AttachReceiptRequest struct {
	Key string `json:"key" binding:"required"`
}

// ToExpenseResponse converts a domain Expense to ExpenseResponse
func ToExpenseResponse(e *expense.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		BusinessID:    e.BusinessID,
		PropertyID:    e.PropertyID,
		UnitID:        e.UnitID,
		Category:      string(e.Category),
		Amount:        e.Amount,
		Description:   e.Description,
		Date:          e.Date,
		ReceiptNumber: e.ReceiptNumber,
		ReceiptImage:  e.ReceiptImage,
		PaidBy:        e.PaidBy,
		PaymentMethod: string(e.PaymentMethod),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// ToExpenseResponses converts a slice of expenses
func ToExpenseResponses(items []expense.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(items))
	for i := range items {
		responses[i] = ToExpenseResponse(&items[i])
	}
	return responses
}
