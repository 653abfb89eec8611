package property

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProperty = "Property"
	AggregateTypeUnit     = "Unit"
	AggregateTypeUtility  = "Utility"
)

// Event type constants
const (
	EventTypePropertyCreated   = "PropertyCreated"
	EventTypeUnitCreated       = "UnitCreated"
	EventTypeUnitOccupied      = "UnitOccupied"
	EventTypeUnitVacated       = "UnitVacated"
	EventTypeUnitStatusChanged = "UnitStatusChanged"
	EventTypeUtilityCreated    = "UtilityCreated"
)

// PropertyCreatedEvent is published when a property is registered
type PropertyCreatedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID    `json:"property_id"`
	Name       string       `json:"name"`
	Type       PropertyType `json:"type"`
}

// NewPropertyCreatedEvent creates a new PropertyCreatedEvent
func NewPropertyCreatedEvent(p *Property) *PropertyCreatedEvent {
	return &PropertyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyCreated, AggregateTypeProperty, p.ID, p.BusinessID),
		PropertyID:      p.ID,
		Name:            p.Name,
		Type:            p.Type,
	}
}

// UnitCreatedEvent is published when a unit is added to a property
type UnitCreatedEvent struct {
	shared.BaseDomainEvent
	UnitID     uuid.UUID `json:"unit_id"`
	PropertyID uuid.UUID `json:"property_id"`
	UnitNumber string    `json:"unit_number"`
}

// NewUnitCreatedEvent creates a new UnitCreatedEvent
func NewUnitCreatedEvent(u *Unit) *UnitCreatedEvent {
	return &UnitCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitCreated, AggregateTypeUnit, u.ID, u.BusinessID),
		UnitID:          u.ID,
		PropertyID:      u.PropertyID,
		UnitNumber:      u.UnitNumber,
	}
}

// UnitOccupiedEvent is published when a tenant moves into a unit
type UnitOccupiedEvent struct {
	shared.BaseDomainEvent
	UnitID     uuid.UUID `json:"unit_id"`
	PropertyID uuid.UUID `json:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
}

// NewUnitOccupiedEvent creates a new UnitOccupiedEvent
func NewUnitOccupiedEvent(u *Unit, tenantID uuid.UUID) *UnitOccupiedEvent {
	return &UnitOccupiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitOccupied, AggregateTypeUnit, u.ID, u.BusinessID),
		UnitID:          u.ID,
		PropertyID:      u.PropertyID,
		TenantID:        tenantID,
	}
}

// UnitVacatedEvent is published when a tenant leaves a unit
type UnitVacatedEvent struct {
	shared.BaseDomainEvent
	UnitID     uuid.UUID `json:"unit_id"`
	PropertyID uuid.UUID `json:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
}

// NewUnitVacatedEvent creates a new UnitVacatedEvent
func NewUnitVacatedEvent(u *Unit, tenantID uuid.UUID) *UnitVacatedEvent {
	return &UnitVacatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitVacated, AggregateTypeUnit, u.ID, u.BusinessID),
		UnitID:          u.ID,
		PropertyID:      u.PropertyID,
		TenantID:        tenantID,
	}
}

// UnitStatusChangedEvent is published on manual status changes (maintenance, reserved)
type UnitStatusChangedEvent struct {
	shared.BaseDomainEvent
	UnitID     uuid.UUID  `json:"unit_id"`
	PropertyID uuid.UUID  `json:"property_id"`
	OldStatus  UnitStatus `json:"old_status"`
	NewStatus  UnitStatus `json:"new_status"`
}

// NewUnitStatusChangedEvent creates a new UnitStatusChangedEvent
func NewUnitStatusChangedEvent(u *Unit, old UnitStatus) *UnitStatusChangedEvent {
	return &UnitStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnitStatusChanged, AggregateTypeUnit, u.ID, u.BusinessID),
		UnitID:          u.ID,
		PropertyID:      u.PropertyID,
		OldStatus:       old,
		NewStatus:       u.Status(),
	}
}

// UtilityCreatedEvent is published when a utility is added to the catalog
type UtilityCreatedEvent struct {
	shared.BaseDomainEvent
	UtilityID    uuid.UUID    `json:"utility_id"`
	Name         string       `json:"name"`
	BillingCycle BillingCycle `json:"billing_cycle"`
}

// NewUtilityCreatedEvent creates a new UtilityCreatedEvent
func NewUtilityCreatedEvent(u *Utility) *UtilityCreatedEvent {
	return &UtilityCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUtilityCreated, AggregateTypeUtility, u.ID, u.BusinessID),
		UtilityID:       u.ID,
		Name:            u.Name,
		BillingCycle:    u.BillingCycle,
	}
}
