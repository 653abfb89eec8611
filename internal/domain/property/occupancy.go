package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// UnitStatus is the persisted projection of a unit's occupancy
type UnitStatus string

const (
	UnitStatusVacant      UnitStatus = "vacant"
	UnitStatusOccupied    UnitStatus = "occupied"
	UnitStatusMaintenance UnitStatus = "maintenance"
	UnitStatusReserved    UnitStatus = "reserved"
)

// IsValid reports whether s is a known unit status
func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitStatusVacant, UnitStatusOccupied, UnitStatusMaintenance, UnitStatusReserved:
		return true
	}
	return false
}

// UnitStatuses lists every unit status
func UnitStatuses() []UnitStatus {
	return []UnitStatus{UnitStatusVacant, UnitStatusOccupied, UnitStatusMaintenance, UnitStatusReserved}
}

// Occupancy is the single source of truth for whether a unit is let.
// Exactly one of the variants holds: Vacant{since}, Occupied{tenant},
// Maintenance or Reserved. Status and the vacancy flag are derived from it.
type Occupancy struct {
	status   UnitStatus
	since    time.Time
	tenantID uuid.UUID
}

// VacantOccupancy returns the Vacant{since} variant
func VacantOccupancy(since time.Time) Occupancy {
	return Occupancy{status: UnitStatusVacant, since: since}
}

// OccupiedOccupancy returns the Occupied{tenant} variant
func OccupiedOccupancy(tenantID uuid.UUID) Occupancy {
	return Occupancy{status: UnitStatusOccupied, tenantID: tenantID}
}

// MaintenanceOccupancy returns the Maintenance variant
func MaintenanceOccupancy() Occupancy {
	return Occupancy{status: UnitStatusMaintenance}
}

// ReservedOccupancy returns the Reserved variant
func ReservedOccupancy() Occupancy {
	return Occupancy{status: UnitStatusReserved}
}

// RestoreOccupancy rebuilds an occupancy from its stored columns.
// Rows written before vacantSince was tracked fall back to the zero time.
func RestoreOccupancy(status UnitStatus, vacantSince *time.Time, tenantID *uuid.UUID) (Occupancy, error) {
	switch status {
	case UnitStatusVacant:
		if vacantSince == nil {
			return VacantOccupancy(time.Time{}), nil
		}
		return VacantOccupancy(*vacantSince), nil
	case UnitStatusOccupied:
		if tenantID == nil || *tenantID == uuid.Nil {
			return Occupancy{}, shared.NewDomainError(shared.CodeInvalidState, "Occupied unit has no tenant")
		}
		return OccupiedOccupancy(*tenantID), nil
	case UnitStatusMaintenance:
		return MaintenanceOccupancy(), nil
	case UnitStatusReserved:
		return ReservedOccupancy(), nil
	}
	return Occupancy{}, shared.NewDomainErrorf(shared.CodeInvalidState, "Unknown unit status: %s", status)
}

// Status returns the status projection
func (o Occupancy) Status() UnitStatus {
	return o.status
}

// IsVacant is true only for the Vacant variant
func (o Occupancy) IsVacant() bool {
	return o.status == UnitStatusVacant
}

// IsOccupied is true only for the Occupied variant
func (o Occupancy) IsOccupied() bool {
	return o.status == UnitStatusOccupied
}

// VacantSince returns the vacancy start, nil unless vacant
func (o Occupancy) VacantSince() *time.Time {
	if o.status != UnitStatusVacant {
		return nil
	}
	t := o.since
	return &t
}

// TenantID returns the occupying tenant, nil unless occupied
func (o Occupancy) TenantID() *uuid.UUID {
	if o.status != UnitStatusOccupied {
		return nil
	}
	id := o.tenantID
	return &id
}

// DaysVacant returns whole days between the vacancy start and now, 0 unless vacant
func (o Occupancy) DaysVacant(now time.Time) int {
	if o.status != UnitStatusVacant || o.since.IsZero() || now.Before(o.since) {
		return 0
	}
	return int(now.Sub(o.since) / (24 * time.Hour))
}
