package tenancy

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeTenant = "Tenant"
	AggregateTypeLease  = "Lease"
)

// Event type constants
const (
	EventTypeTenantCreated        = "TenantCreated"
	EventTypeTenantStatusChanged  = "TenantStatusChanged"
	EventTypeTenantBalanceChanged = "TenantBalanceChanged"
	EventTypeTenantDeleted        = "TenantDeleted"

	EventTypeLeaseCreated    = "LeaseCreated"
	EventTypeLeaseActivated  = "LeaseActivated"
	EventTypeLeaseTerminated = "LeaseTerminated"
	EventTypeLeaseExpired    = "LeaseExpired"
	EventTypeLeaseRenewed    = "LeaseRenewed"
)

// TenantCreatedEvent is published when a tenant moves in
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	TenantID uuid.UUID `json:"tenant_id"`
	UnitID   uuid.UUID `json:"unit_id"`
	Name     string    `json:"name"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(t *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, t.ID, t.BusinessID),
		TenantID:        t.ID,
		UnitID:          t.UnitID,
		Name:            t.Name,
	}
}

// TenantStatusChangedEvent is published on every status change
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	TenantID  uuid.UUID    `json:"tenant_id"`
	UnitID    uuid.UUID    `json:"unit_id"`
	OldStatus TenantStatus `json:"old_status"`
	NewStatus TenantStatus `json:"new_status"`
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(t *Tenant, old TenantStatus) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantStatusChanged, AggregateTypeTenant, t.ID, t.BusinessID),
		TenantID:        t.ID,
		UnitID:          t.UnitID,
		OldStatus:       old,
		NewStatus:       t.Status,
	}
}

// TenantBalanceChangedEvent is published whenever the balance moves
type TenantBalanceChangedEvent struct {
	shared.BaseDomainEvent
	TenantID   uuid.UUID       `json:"tenant_id"`
	PaymentID  uuid.UUID       `json:"payment_id,omitempty"`
	OldBalance decimal.Decimal `json:"old_balance"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// NewTenantBalanceChangedEvent creates a new TenantBalanceChangedEvent
func NewTenantBalanceChangedEvent(t *Tenant, old decimal.Decimal, paymentID uuid.UUID) *TenantBalanceChangedEvent {
	return &TenantBalanceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantBalanceChanged, AggregateTypeTenant, t.ID, t.BusinessID),
		TenantID:        t.ID,
		PaymentID:       paymentID,
		OldBalance:      old,
		NewBalance:      t.Balance,
	}
}

// TenantDeletedEvent is published after a tenant record is removed
type TenantDeletedEvent struct {
	shared.BaseDomainEvent
	TenantID uuid.UUID `json:"tenant_id"`
	UnitID   uuid.UUID `json:"unit_id"`
}

// NewTenantDeletedEvent creates a new TenantDeletedEvent
func NewTenantDeletedEvent(t *Tenant) *TenantDeletedEvent {
	return &TenantDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantDeleted, AggregateTypeTenant, t.ID, t.BusinessID),
		TenantID:        t.ID,
		UnitID:          t.UnitID,
	}
}

// LeaseEvent carries lease lifecycle changes; Type tells which one
type LeaseEvent struct {
	shared.BaseDomainEvent
	LeaseID  uuid.UUID   `json:"lease_id"`
	TenantID uuid.UUID   `json:"tenant_id"`
	UnitID   uuid.UUID   `json:"unit_id"`
	Status   LeaseStatus `json:"status"`
}

// NewLeaseEvent creates a lease lifecycle event of the given type
func NewLeaseEvent(eventType string, l *Lease) *LeaseEvent {
	return &LeaseEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeLease, l.ID, l.BusinessID),
		LeaseID:         l.ID,
		TenantID:        l.TenantID,
		UnitID:          l.UnitID,
		Status:          l.Status,
	}
}
