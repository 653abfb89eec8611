package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/maintenance"
	"github.com/shopspring/decimal"
)

// CreateRequestRequest opens a maintenance request
type CreateRequestRequest struct {
	UnitID        uuid.UUID        `json:"unit_id" binding:"required"`
	TenantID      *uuid.UUID       `json:"tenant_id"`
	Title         string           `json:"title" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"required"`
	Priority      string           `json:"priority" binding:"omitempty,oneof=low medium high emergency"`
	AssignedTo    string           `json:"assigned_to" binding:"max=200"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
	ScheduledDate *time.Time       `json:"scheduled_date"`
}

// UpdateRequestRequest represents a partial maintenance request update
type UpdateRequestRequest struct {
	Title         *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Priority      *string          `json:"priority" binding:"omitempty,oneof=low medium high emergency"`
	AssignedTo    *string          `json:"assigned_to" binding:"omitempty,max=200"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
	ScheduledDate *time.Time       `json:"scheduled_date"`
}

// UpdateStatusRequest moves a request along its workflow
type UpdateStatusRequest struct {
	Status        string           `json:"status" binding:"required,oneof=pending in_progress completed cancelled"`
	CompletedDate *time.Time       `json:"completed_date"`
	ActualCost    *decimal.Decimal `json:"actual_cost"`
}

// RequestListFilter represents filter options for the request list
type RequestListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high emergency"`
	UnitID   string `form:"unit_id" binding:"omitempty,uuid"`
	TenantID string `form:"tenant_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RequestResponse represents a maintenance request in API responses
type RequestResponse struct {
	ID            uuid.UUID       `json:"id"`
	BusinessID    uuid.UUID       `json:"business_id"`
	UnitID        uuid.UUID       `json:"unit_id"`
	TenantID      *uuid.UUID      `json:"tenant_id,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      string          `json:"priority"`
	Status        string          `json:"status"`
	AssignedTo    string          `json:"assigned_to,omitempty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	ActualCost    decimal.Decimal `json:"actual_cost"`
	ScheduledDate *time.Time      `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time      `json:"completed_date,omitempty"`
	Images        []string        `json:"images"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToRequestResponse converts a domain Request to RequestResponse
func ToRequestResponse(r *maintenance.Request) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		BusinessID:    r.BusinessID,
		UnitID:        r.UnitID,
		TenantID:      r.TenantID,
		Title:         r.Title,
		Description:   r.Description,
		Priority:      string(r.Priority),
		Status:        string(r.Status),
		AssignedTo:    r.AssignedTo,
		EstimatedCost: r.EstimatedCost,
		ActualCost:    r.ActualCost,
		ScheduledDate: r.ScheduledDate,
		CompletedDate: r.CompletedDate,
		Images:        r.Images,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ToRequestResponses converts a slice of requests
func ToRequestResponses(items []maintenance.Request) []RequestResponse {
	responses := make([]RequestResponse, len(items))
	for i := range items {
		responses[i] = ToRequestResponse(&items[i])
	}
	return responses
}
