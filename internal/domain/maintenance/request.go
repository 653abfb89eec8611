package maintenance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Priority ranks the urgency of a request
type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityEmergency Priority = "emergency"
)

// IsValid reports whether p is a known priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}

// Status is the progress of a request
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Request is a repair or upkeep job on a unit
type Request struct {
	shared.BusinessAggregateRoot
	UnitID        uuid.UUID
	TenantID      *uuid.UUID
	Title         string
	Description   string
	Priority      Priority
	Status        Status
	AssignedTo    string
	EstimatedCost decimal.Decimal
	ActualCost    decimal.Decimal
	ScheduledDate *time.Time
	CompletedDate *time.Time
	Images        []string
}

// NewRequest opens a pending request
func NewRequest(businessID, unitID uuid.UUID, title, description string, priority Priority) (*Request, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unit is required")
	}
	if err := validateText(title, description); err != nil {
		return nil, err
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid priority: %s", priority)
	}
	r := &Request{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		UnitID:                unitID,
		Title:                 strings.TrimSpace(title),
		Description:           strings.TrimSpace(description),
		Priority:              priority,
		Status:                StatusPending,
		EstimatedCost:         decimal.Zero,
		ActualCost:            decimal.Zero,
		Images:                []string{},
	}
	r.AddDomainEvent(NewRequestEvent(EventTypeRequestOpened, r))
	return r, nil
}

// Update edits the descriptive and planning fields
func (r *Request) Update(title, description string, priority Priority, assignedTo string, estimated decimal.Decimal, scheduled *time.Time) error {
	if err := validateText(title, description); err != nil {
		return err
	}
	if !priority.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid priority: %s", priority)
	}
	if estimated.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Estimated cost cannot be negative")
	}
	r.Title = strings.TrimSpace(title)
	r.Description = strings.TrimSpace(description)
	r.Priority = priority
	r.AssignedTo = assignedTo
	r.EstimatedCost = estimated
	r.ScheduledDate = scheduled
	r.Touch()
	return nil
}

// ChangeStatus moves the request along. Completing records the completion
// date (now when not given) and the actual cost.
func (r *Request) ChangeStatus(status Status, completedAt *time.Time, actualCost decimal.Decimal) error {
	if !status.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid status: %s", status)
	}
	if r.Status == StatusCompleted || r.Status == StatusCancelled {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Request is already %s", r.Status)
	}
	if status == StatusCompleted {
		if actualCost.IsNegative() {
			return shared.NewDomainError(shared.CodeInvalidInput, "Actual cost cannot be negative")
		}
		done := time.Now()
		if completedAt != nil {
			done = *completedAt
		}
		r.CompletedDate = &done
		r.ActualCost = actualCost
	}
	r.Status = status
	r.Touch()
	r.AddDomainEvent(NewRequestEvent(EventTypeRequestStatusChanged, r))
	return nil
}

// AddImage registers an object-storage key for a photo of the job
func (r *Request) AddImage(key string) error {
	if strings.TrimSpace(key) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Image key cannot be empty")
	}
	r.Images = append(r.Images, key)
	r.Touch()
	return nil
}

// IsHighPriority reports high and emergency requests
func (r *Request) IsHighPriority() bool {
	return r.Priority == PriorityHigh || r.Priority == PriorityEmergency
}

func validateText(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Title cannot exceed 200 characters")
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Description cannot be empty")
	}
	return nil
}

// Stats summarizes the maintenance workload of a business
type Stats struct {
	Total        int64           `json:"total"`
	Pending      int64           `json:"pending"`
	InProgress   int64           `json:"in_progress"`
	Completed    int64           `json:"completed"`
	Cancelled    int64           `json:"cancelled"`
	HighPriority int64           `json:"high_priority"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}

// Repository defines the interface for maintenance persistence
type Repository interface {
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Request, error)
	// FindAllForBusiness lists requests. Supported filter keys: status, priority, unit_id, tenant_id
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Request, error)
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)
	Stats(ctx context.Context, businessID uuid.UUID) (*Stats, error)
	Save(ctx context.Context, request *Request) error
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error
}
