package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// PropertyKey identifies a property across businesses
type PropertyKey struct {
	BusinessID uuid.UUID
	PropertyID uuid.UUID
}

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByIDForBusiness finds a property by ID within a business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Property, error)

	// FindAllForBusiness lists properties matching the filter
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Property, error)

	// CountForBusiness counts properties matching the filter
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)

	// ListKeys returns every property key; uuid.Nil lists all businesses
	ListKeys(ctx context.Context, businessID uuid.UUID) ([]PropertyKey, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error

	// DeleteForBusiness deletes a property within a business
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error

	// SetCounts overwrites the unit counters
	SetCounts(ctx context.Context, businessID, id uuid.UUID, counts OccupancyCounts) error

	// AdjustCounts applies deltas to the occupied and vacant counters in a
	// single statement, without reading the row first
	AdjustCounts(ctx context.Context, businessID, id uuid.UUID, occupiedDelta, vacantDelta int) error
}

// UnitRepository defines the interface for unit persistence
type UnitRepository interface {
	// FindByIDForBusiness finds a unit by ID within a business, utilities included
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Unit, error)

	// FindAllForBusiness lists units. Supported filter keys: property_id, status, type
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Unit, error)

	// CountForBusiness counts units matching the filter
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)

	// FindVacant lists vacant units; uuid.Nil spans all businesses
	FindVacant(ctx context.Context, businessID uuid.UUID) ([]Unit, error)

	// CountByStatus returns the status histogram of a property's units
	CountByStatus(ctx context.Context, businessID, propertyID uuid.UUID) (map[UnitStatus]int, error)

	// CountUsingUtility counts units that reference a utility
	CountUsingUtility(ctx context.Context, businessID, utilityID uuid.UUID) (int64, error)

	// ExistsByNumber checks a unit number within a property, ignoring excludeID
	ExistsByNumber(ctx context.Context, businessID, propertyID uuid.UUID, number string, excludeID uuid.UUID) (bool, error)

	// Save creates a unit or overwrites it unconditionally
	Save(ctx context.Context, unit *Unit) error

	// SaveWithLock updates a unit only if the stored version is unit.Version-1
	SaveWithLock(ctx context.Context, unit *Unit) error

	// UpdateDaysVacant stores the vacancy counter snapshot
	UpdateDaysVacant(ctx context.Context, id uuid.UUID, days int) error

	// DeleteForBusiness deletes a unit within a business
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error
}

// UtilityRepository defines the interface for utility persistence
type UtilityRepository interface {
	// FindByIDForBusiness finds a utility by ID within a business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Utility, error)

	// FindByIDs loads several utilities at once
	FindByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]Utility, error)

	// FindAllForBusiness lists utilities. Supported filter keys: billing_cycle, is_active
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Utility, error)

	// CountForBusiness counts utilities matching the filter
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByName checks for a utility name within a business, ignoring excludeID
	ExistsByName(ctx context.Context, businessID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a utility
	Save(ctx context.Context, utility *Utility) error

	// DeleteForBusiness deletes a utility within a business
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error
}

// UtilityCatalog indexes utilities by ID for the monthly calculator
func UtilityCatalog(utilities []Utility) map[uuid.UUID]*Utility {
	catalog := make(map[uuid.UUID]*Utility, len(utilities))
	for i := range utilities {
		catalog[utilities[i].ID] = &utilities[i]
	}
	return catalog
}

// UtilityIDs returns the IDs of the utilities attached to a unit
func (u *Unit) UtilityIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(u.Utilities))
	for _, uu := range u.Utilities {
		ids = append(ids, uu.UtilityID)
	}
	return ids
}
