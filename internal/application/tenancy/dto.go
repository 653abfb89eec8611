package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Tenant DTOs
// =============================================================================

// EmergencyContactDTO is the emergency contact of a tenant
type EmergencyContactDTO struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// CreateTenantRequest represents a request to move a tenant into a unit
type CreateTenantRequest struct {
	UnitID           uuid.UUID            `json:"unit_id" binding:"required"`
	Name             string               `json:"name" binding:"required,min=1,max=200"`
	Phone            string               `json:"phone" binding:"required"`
	Email            string               `json:"email" binding:"omitempty,email"`
	IDNumber         string               `json:"id_number" binding:"required"`
	Rent             *decimal.Decimal     `json:"rent"`
	PaymentMethod    string               `json:"payment_method" binding:"omitempty,oneof=bank_transfer mobile_money cash check credit_card"`
	MoveInDate       *time.Time           `json:"move_in_date"`
	EmergencyContact *EmergencyContactDTO `json:"emergency_contact"`
}

// UpdateTenantRequest represents a partial tenant update
type UpdateTenantRequest struct {
	Name             *string              `json:"name" binding:"omitempty,min=1,max=200"`
	Phone            *string              `json:"phone"`
	Email            *string              `json:"email" binding:"omitempty,email"`
	Rent             *decimal.Decimal     `json:"rent"`
	PaymentMethod    *string              `json:"payment_method" binding:"omitempty,oneof=bank_transfer mobile_money cash check credit_card"`
	EmergencyContact *EmergencyContactDTO `json:"emergency_contact"`
}

// UpdateTenantStatusRequest changes a tenant's status
type UpdateTenantStatusRequest struct {
	Status      string     `json:"status" binding:"required,oneof=active inactive overdue evicted moved_out"`
	MoveOutDate *time.Time `json:"move_out_date"`
}

// TenantListFilter represents filter options for the tenant list
type TenantListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive overdue evicted moved_out"`
	UnitID     string `form:"unit_id" binding:"omitempty,uuid"`
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID               uuid.UUID           `json:"id"`
	BusinessID       uuid.UUID           `json:"business_id"`
	UnitID           uuid.UUID           `json:"unit_id"`
	Name             string              `json:"name"`
	Phone            string              `json:"phone"`
	Email            string              `json:"email"`
	IDNumber         string              `json:"id_number"`
	Rent             decimal.Decimal     `json:"rent"`
	Balance          decimal.Decimal     `json:"balance"`
	Status           string              `json:"status"`
	PaymentMethod    string              `json:"payment_method"`
	MoveInDate       time.Time           `json:"move_in_date"`
	MoveOutDate      *time.Time          `json:"move_out_date,omitempty"`
	EmergencyContact EmergencyContactDTO `json:"emergency_contact"`
	Documents        []string            `json:"documents"`
	Version          int                 `json:"version"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ToTenantResponse converts a domain Tenant to TenantResponse
func ToTenantResponse(t *tenancy.Tenant) TenantResponse {
	return TenantResponse{
		ID:            t.ID,
		BusinessID:    t.BusinessID,
		UnitID:        t.UnitID,
		Name:          t.Name,
		Phone:         t.Phone,
		Email:         t.Email,
		IDNumber:      t.IDNumber,
		Rent:          t.Rent,
		Balance:       t.Balance,
		Status:        string(t.Status),
		PaymentMethod: string(t.PaymentMethod),
		MoveInDate:    t.MoveInDate,
		MoveOutDate:   t.MoveOutDate,
		EmergencyContact: EmergencyContactDTO{
			Name:         t.EmergencyContact.Name,
			Phone:        t.EmergencyContact.Phone,
			Relationship: t.EmergencyContact.Relationship,
		},
		Documents: t.Documents,
		Version:   t.Version,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTenantResponses converts a slice of tenants
func ToTenantResponses(items []tenancy.Tenant) []TenantResponse {
	responses := make([]TenantResponse, len(items))
	for i := range items {
		responses[i] = ToTenantResponse(&items[i])
	}
	return responses
}

// BalanceResponse is the account position of a tenant
type BalanceResponse struct {
	TenantID       uuid.UUID       `json:"tenant_id"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
}

// TotalDueResponse is what a tenant owes for the coming month
type TotalDueResponse struct {
	TenantID       uuid.UUID             `json:"tenant_id"`
	UnitID         uuid.UUID             `json:"unit_id"`
	Monthly        property.MonthlyTotal `json:"monthly"`
	CurrentBalance decimal.Decimal       `json:"current_balance"`
	TotalDue       decimal.Decimal       `json:"total_due"`
}

// DocumentUploadRequest asks for a presigned document upload
type DocumentUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// DocumentUploadResponse carries a presigned upload target
type DocumentUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AttachDocumentRequest registers an uploaded document
type AttachDocumentRequest struct {
	Key string `json:"key" binding:"required"`
}

// =============================================================================
// Lease DTOs
// =============================================================================

// CreateLeaseRequest drafts a lease
type CreateLeaseRequest struct {
	TenantID      uuid.UUID       `json:"tenant_id" binding:"required"`
	UnitID        uuid.UUID       `json:"unit_id" binding:"required"`
	StartDate     time.Time       `json:"start_date" binding:"required"`
	EndDate       time.Time       `json:"end_date" binding:"required"`
	RentAmount    decimal.Decimal `json:"rent_amount"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	PaymentDueDay int             `json:"payment_due_day" binding:"omitempty,min=1,max=28"`
	LateFee       decimal.Decimal `json:"late_fee"`
	Terms         string          `json:"terms"`
	DocumentKey   string          `json:"document_key"`
}

// UpdateLeaseRequest represents a partial update of the lease terms
type UpdateLeaseRequest struct {
	StartDate     *time.Time       `json:"start_date"`
	EndDate       *time.Time       `json:"end_date"`
	RentAmount    *decimal.Decimal `json:"rent_amount"`
	DepositAmount *decimal.Decimal `json:"deposit_amount"`
	PaymentDueDay *int             `json:"payment_due_day" binding:"omitempty,min=1,max=28"`
	LateFee       *decimal.Decimal `json:"late_fee"`
	Terms         *string          `json:"terms"`
}

// SignLeaseRequest records a signature
type SignLeaseRequest struct {
	Party string `json:"party" binding:"required,oneof=tenant landlord"`
}

// RenewLeaseRequest extends a lease into a successor
type RenewLeaseRequest struct {
	EndDate    time.Time        `json:"end_date" binding:"required"`
	RentAmount *decimal.Decimal `json:"rent_amount"`
}

// LeaseListFilter represents filter options for the lease list
type LeaseListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending active expired terminated renewed"`
	TenantID string `form:"tenant_id" binding:"omitempty,uuid"`
	UnitID   string `form:"unit_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LeaseResponse represents a lease in API responses
type LeaseResponse struct {
	ID               uuid.UUID       `json:"id"`
	BusinessID       uuid.UUID       `json:"business_id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	UnitID           uuid.UUID       `json:"unit_id"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	RentAmount       decimal.Decimal `json:"rent_amount"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	PaymentDueDay    int             `json:"payment_due_day"`
	LateFee          decimal.Decimal `json:"late_fee"`
	Terms            string          `json:"terms"`
	Status           string          `json:"status"`
	DocumentKey      string          `json:"document_key,omitempty"`
	SignedByTenant   bool            `json:"signed_by_tenant"`
	SignedByLandlord bool            `json:"signed_by_landlord"`
	SignedDate       *time.Time      `json:"signed_date,omitempty"`
	RenewedFromID    *uuid.UUID      `json:"renewed_from_id,omitempty"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToLeaseResponse converts a domain Lease to LeaseResponse
func ToLeaseResponse(l *tenancy.Lease) LeaseResponse {
	return LeaseResponse{
		ID:               l.ID,
		BusinessID:       l.BusinessID,
		TenantID:         l.TenantID,
		UnitID:           l.UnitID,
		StartDate:        l.StartDate,
		EndDate:          l.EndDate,
		RentAmount:       l.RentAmount,
		DepositAmount:    l.DepositAmount,
		PaymentDueDay:    l.PaymentDueDay,
		LateFee:          l.LateFee,
		Terms:            l.Terms,
		Status:           string(l.Status),
		DocumentKey:      l.DocumentKey,
		SignedByTenant:   l.SignedByTenant,
		SignedByLandlord: l.SignedByLandlord,
		SignedDate:       l.SignedDate,
		RenewedFromID:    l.RenewedFromID,
		Version:          l.Version,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// ToLeaseResponses converts a slice of leases
func ToLeaseResponses(items []tenancy.Lease) []LeaseResponse {
	responses := make([]LeaseResponse, len(items))
	for i := range items {
		responses[i] = ToLeaseResponse(&items[i])
	}
	return responses
}

func buildFilter(search string, page, pageSize int, orderBy, orderDir, defaultOrder string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.OrderBy = defaultOrder
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	filter.Search = search
	return filter
}
