package rent

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/shopspring/decimal"
)

// BreakdownLineDTO is one utility charge covered by a payment
type BreakdownLineDTO struct {
	UtilityID    uuid.UUID       `json:"utility_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	BillingCycle string          `json:"billing_cycle"`
}

// BreakdownDTO itemizes a payment
type BreakdownDTO struct {
	Rent      decimal.Decimal    `json:"rent"`
	Utilities []BreakdownLineDTO `json:"utilities"`
	Total     decimal.Decimal    `json:"total"`
}

func (b BreakdownDTO) toDomain() rent.Breakdown {
	lines := make([]rent.BreakdownLine, len(b.Utilities))
	for i, l := range b.Utilities {
		lines[i] = rent.BreakdownLine{UtilityID: l.UtilityID, Name: l.Name, Amount: l.Amount, BillingCycle: l.BillingCycle}
	}
	return rent.Breakdown{Rent: b.Rent, Utilities: lines, Total: b.Total}
}

func toBreakdownDTO(b rent.Breakdown) BreakdownDTO {
	lines := make([]BreakdownLineDTO, len(b.Utilities))
	for i, l := range b.Utilities {
		lines[i] = BreakdownLineDTO{UtilityID: l.UtilityID, Name: l.Name, Amount: l.Amount, BillingCycle: l.BillingCycle}
	}
	return BreakdownDTO{Rent: b.Rent, Utilities: lines, Total: b.Total}
}

// RecordPaymentRequest records money received from a tenant
type RecordPaymentRequest struct {
	TenantID        uuid.UUID       `json:"tenant_id" binding:"required"`
	UnitID          uuid.UUID       `json:"unit_id"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentType     string          `json:"payment_type" binding:"required,oneof=rent deposit utility late_fee other"`
	PaymentMethod   string          `json:"payment_method" binding:"omitempty,oneof=bank_transfer mobile_money cash check credit_card"`
	PaymentDate     *time.Time      `json:"payment_date"`
	DueDate         *time.Time      `json:"due_date"`
	Month           int             `json:"month" binding:"omitempty,min=1,max=12"`
	Year            int             `json:"year" binding:"omitempty,min=2000,max=2100"`
	ReferenceNumber string          `json:"reference_number" binding:"omitempty,max=50"`
	ReceiptNumber   string          `json:"receipt_number" binding:"omitempty,max=50"`
	Description     string          `json:"description"`
	IsConfirmed     bool            `json:"is_confirmed"`
	ConfirmedBy     string          `json:"confirmed_by"`
	Breakdown       *BreakdownDTO   `json:"breakdown"`
}

// ConfirmPaymentRequest confirms a payment
type ConfirmPaymentRequest struct {
	ConfirmedBy string `json:"confirmed_by" binding:"required"`
}

// UpdatePaymentRequest represents a partial payment update
type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	PaymentType   *string          `json:"payment_type" binding:"omitempty,oneof=rent deposit utility late_fee other"`
	PaymentMethod *string          `json:"payment_method" binding:"omitempty,oneof=bank_transfer mobile_money cash check credit_card"`
	PaymentDate   *time.Time       `json:"payment_date"`
	DueDate       *time.Time       `json:"due_date"`
	Month         *int             `json:"month" binding:"omitempty,min=1,max=12"`
	Year          *int             `json:"year" binding:"omitempty,min=2000,max=2100"`
	Description   *string          `json:"description"`
	IsConfirmed   *bool            `json:"is_confirmed"`
	ConfirmedBy   string           `json:"confirmed_by"`
	Breakdown     *BreakdownDTO    `json:"breakdown"`
}

// PaymentListFilter represents filter options for the payment list
type PaymentListFilter struct {
	TenantID    string `form:"tenant_id" binding:"omitempty,uuid"`
	UnitID      string `form:"unit_id" binding:"omitempty,uuid"`
	PaymentType string `form:"payment_type" binding:"omitempty,oneof=rent deposit utility late_fee other"`
	IsConfirmed *bool  `form:"is_confirmed"`
	Month       int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year        int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Search      string `form:"search"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SummaryRequest narrows the payment summary to a period
type SummaryRequest struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	BusinessID      uuid.UUID       `json:"business_id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	UnitID          uuid.UUID       `json:"unit_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentType     string          `json:"payment_type"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentDate     time.Time       `json:"payment_date"`
	DueDate         time.Time       `json:"due_date"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	ReferenceNumber string          `json:"reference_number"`
	ReceiptNumber   string          `json:"receipt_number"`
	Description     string          `json:"description,omitempty"`
	IsConfirmed     bool            `json:"is_confirmed"`
	ConfirmedBy     string          `json:"confirmed_by,omitempty"`
	ConfirmedAt     *time.Time      `json:"confirmed_at,omitempty"`
	Breakdown       BreakdownDTO    `json:"breakdown"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToPaymentResponse converts a domain RentPayment to PaymentResponse
func ToPaymentResponse(p *rent.RentPayment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		BusinessID:      p.BusinessID,
		TenantID:        p.TenantID,
		UnitID:          p.UnitID,
		Amount:          p.Amount,
		PaymentType:     string(p.Type),
		PaymentMethod:   string(p.Method),
		PaymentDate:     p.PaymentDate,
		DueDate:         p.DueDate,
		Month:           p.Period.Month,
		Year:            p.Period.Year,
		ReferenceNumber: p.ReferenceNumber,
		ReceiptNumber:   p.ReceiptNumber,
		Description:     p.Description,
		IsConfirmed:     p.IsConfirmed,
		ConfirmedBy:     p.ConfirmedBy,
		ConfirmedAt:     p.ConfirmedAt,
		Breakdown:       toBreakdownDTO(p.Breakdown),
		Version:         p.Version,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToPaymentResponses converts a slice of payments
func ToPaymentResponses(items []rent.RentPayment) []PaymentResponse {
	responses := make([]PaymentResponse, len(items))
	for i := range items {
		responses[i] = ToPaymentResponse(&items[i])
	}
	return responses
}

// ReceiptDocument is a rendered receipt ready for download
type ReceiptDocument struct {
	FileName string
	Content  []byte
}
