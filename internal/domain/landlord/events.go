package landlord

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// AggregateTypeLandlord is the aggregate type of landlord events
const AggregateTypeLandlord = "Landlord"

const (
	EventTypeLandlordRegistered = "LandlordRegistered"
	EventTypeLandlordUpdated    = "LandlordUpdated"
	EventTypeLandlordDeleted    = "LandlordDeleted"
)

// LandlordEvent carries landlord changes
type LandlordEvent struct {
	shared.BaseDomainEvent
	LandlordID uuid.UUID `json:"landlord_id"`
	Name       string    `json:"name"`
	Status     Status    `json:"status"`
}

// NewLandlordEvent creates a LandlordEvent of eventType for l
func NewLandlordEvent(eventType string, l *Landlord) *LandlordEvent {
	return &LandlordEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeLandlord, l.ID, l.BusinessID),
		LandlordID:      l.ID,
		Name:            l.Name,
		Status:          l.Status,
	}
}
