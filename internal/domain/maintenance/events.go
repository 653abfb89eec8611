package maintenance

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// AggregateTypeRequest is the aggregate type of maintenance events
const AggregateTypeRequest = "MaintenanceRequest"

// Event type constants
const (
	EventTypeRequestOpened        = "MaintenanceRequestOpened"
	EventTypeRequestStatusChanged = "MaintenanceRequestStatusChanged"
	EventTypeRequestDeleted       = "MaintenanceRequestDeleted"
)

// RequestEvent carries maintenance request changes
type RequestEvent struct {
	shared.BaseDomainEvent
	RequestID uuid.UUID `json:"request_id"`
	UnitID    uuid.UUID `json:"unit_id"`
	Priority  Priority  `json:"priority"`
	Status    Status    `json:"status"`
}

// NewRequestEvent creates a RequestEvent of eventType for r
func NewRequestEvent(eventType string, r *Request) *RequestEvent {
	return &RequestEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeRequest, r.ID, r.BusinessID),
		RequestID:       r.ID,
		UnitID:          r.UnitID,
		Priority:        r.Priority,
		Status:          r.Status,
	}
}
