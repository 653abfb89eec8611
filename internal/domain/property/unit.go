package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnitType is the layout of a unit
type UnitType string

const (
	UnitTypeStudio     UnitType = "studio"
	UnitTypeOneBed     UnitType = "1bed"
	UnitTypeTwoBed     UnitType = "2bed"
	UnitTypeThreeBed   UnitType = "3bed"
	UnitTypeFourBed    UnitType = "4bed"
	UnitTypeCommercial UnitType = "commercial"
)

// IsValid reports whether t is a known unit type
func (t UnitType) IsValid() bool {
	switch t {
	case UnitTypeStudio, UnitTypeOneBed, UnitTypeTwoBed, UnitTypeThreeBed,
		UnitTypeFourBed, UnitTypeCommercial:
		return true
	}
	return false
}

// UnitUtility attaches a utility to a unit. UnitCharge overrides the
// utility's own cost when non-zero.
type UnitUtility struct {
	UtilityID  uuid.UUID
	IsIncluded bool
	UnitCharge decimal.Decimal
}

// Unit is a single rentable space within a property
type Unit struct {
	shared.BusinessAggregateRoot
	PropertyID      uuid.UUID
	UnitNumber      string
	Type            UnitType
	Rent            decimal.Decimal
	Deposit         decimal.Decimal
	Occupancy       Occupancy
	DaysVacant      int
	LastTenantID    *uuid.UUID
	Amenities       []string
	Description     string
	Images          []string
	LastPaymentDate *time.Time
	NextPaymentDate *time.Time
	Utilities       []UnitUtility
}

// NewUnit creates a vacant unit within a property
func NewUnit(businessID, propertyID uuid.UUID, number string, unitType UnitType, rent, deposit decimal.Decimal) (*Unit, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Property is required")
	}
	if err := validateUnitFields(number, unitType, rent, deposit); err != nil {
		return nil, err
	}

	u := &Unit{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		PropertyID:            propertyID,
		UnitNumber:            strings.TrimSpace(number),
		Type:                  unitType,
		Rent:                  rent,
		Deposit:               deposit,
		Amenities:             []string{},
		Images:                []string{},
		Utilities:             []UnitUtility{},
	}
	u.Occupancy = VacantOccupancy(u.CreatedAt)
	u.AddDomainEvent(NewUnitCreatedEvent(u))
	return u, nil
}

// Status returns the derived occupancy status
func (u *Unit) Status() UnitStatus {
	return u.Occupancy.Status()
}

// IsVacant returns the derived vacancy flag
func (u *Unit) IsVacant() bool {
	return u.Occupancy.IsVacant()
}

// CurrentTenantID returns the occupying tenant, if any
func (u *Unit) CurrentTenantID() *uuid.UUID {
	return u.Occupancy.TenantID()
}

// VacantSince returns when the unit became vacant, if it is vacant
func (u *Unit) VacantSince() *time.Time {
	return u.Occupancy.VacantSince()
}

// Update replaces the descriptive fields of the unit
func (u *Unit) Update(number string, unitType UnitType, rent, deposit decimal.Decimal, description string, amenities []string) error {
	if err := validateUnitFields(number, unitType, rent, deposit); err != nil {
		return err
	}
	u.UnitNumber = strings.TrimSpace(number)
	u.Type = unitType
	u.Rent = rent
	u.Deposit = deposit
	u.Description = description
	if amenities != nil {
		u.Amenities = amenities
	}
	u.Touch()
	return nil
}

// SetOccupied binds tenantID to the unit. Only a vacant unit can be occupied.
func (u *Unit) SetOccupied(tenantID uuid.UUID) error {
	if tenantID == uuid.Nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Tenant is required")
	}
	if !u.IsVacant() {
		return shared.NewDomainErrorf(shared.CodeConflict, "Unit %s is %s, not vacant", u.UnitNumber, u.Status())
	}

	u.Occupancy = OccupiedOccupancy(tenantID)
	u.DaysVacant = 0
	u.Touch()
	u.AddDomainEvent(NewUnitOccupiedEvent(u, tenantID))
	return nil
}

// SetVacant releases the unit from outgoingTenantID as of vacateDate
func (u *Unit) SetVacant(outgoingTenantID uuid.UUID, vacateDate time.Time) {
	u.Occupancy = VacantOccupancy(vacateDate)
	if outgoingTenantID != uuid.Nil {
		id := outgoingTenantID
		u.LastTenantID = &id
	}
	u.DaysVacant = u.Occupancy.DaysVacant(time.Now())
	u.Touch()
	u.AddDomainEvent(NewUnitVacatedEvent(u, outgoingTenantID))
}

// ChangeStatus moves the unit between vacant, maintenance and reserved.
// Occupancy by a tenant is only ever set through SetOccupied.
func (u *Unit) ChangeStatus(status UnitStatus, now time.Time) error {
	if !status.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid unit status: %s", status)
	}
	if status == UnitStatusOccupied {
		return shared.NewDomainError(shared.CodeInvalidInput, "Units become occupied by moving a tenant in")
	}
	if u.Status() == status {
		return nil
	}
	if u.Occupancy.IsOccupied() {
		return shared.NewDomainErrorf(shared.CodeConflict, "Unit %s has a tenant; move the tenant out first", u.UnitNumber)
	}

	old := u.Status()
	switch status {
	case UnitStatusVacant:
		u.Occupancy = VacantOccupancy(now)
	case UnitStatusMaintenance:
		u.Occupancy = MaintenanceOccupancy()
	case UnitStatusReserved:
		u.Occupancy = ReservedOccupancy()
	}
	u.DaysVacant = u.Occupancy.DaysVacant(now)
	u.Touch()
	u.AddDomainEvent(NewUnitStatusChangedEvent(u, old))
	return nil
}

// RefreshDaysVacant recomputes the vacancy counter, reporting whether it changed
func (u *Unit) RefreshDaysVacant(now time.Time) bool {
	days := u.Occupancy.DaysVacant(now)
	if days == u.DaysVacant {
		return false
	}
	u.DaysVacant = days
	u.UpdatedAt = now
	return true
}

// AddOrReplaceUtility upserts the association for utilityID, keeping its position
func (u *Unit) AddOrReplaceUtility(utilityID uuid.UUID, isIncluded bool, unitCharge decimal.Decimal) error {
	if utilityID == uuid.Nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Utility is required")
	}
	if unitCharge.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit charge cannot be negative")
	}

	entry := UnitUtility{UtilityID: utilityID, IsIncluded: isIncluded, UnitCharge: unitCharge}
	replaced := false
	for i := range u.Utilities {
		if u.Utilities[i].UtilityID == utilityID {
			u.Utilities[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		u.Utilities = append(u.Utilities, entry)
	}
	u.Touch()
	return nil
}

// RemoveUtility drops the association for utilityID; absent entries are ignored
func (u *Unit) RemoveUtility(utilityID uuid.UUID) bool {
	for i := range u.Utilities {
		if u.Utilities[i].UtilityID == utilityID {
			u.Utilities = append(u.Utilities[:i], u.Utilities[i+1:]...)
			u.Touch()
			return true
		}
	}
	return false
}

// HasUtility reports whether utilityID is attached
func (u *Unit) HasUtility(utilityID uuid.UUID) bool {
	for _, uu := range u.Utilities {
		if uu.UtilityID == utilityID {
			return true
		}
	}
	return false
}

// RecordPayment stamps the last payment date and rolls the next due date a month ahead
func (u *Unit) RecordPayment(paidAt time.Time) {
	u.LastPaymentDate = &paidAt
	next := paidAt.AddDate(0, 1, 0)
	u.NextPaymentDate = &next
	u.Touch()
}

// AddImage registers an object-storage key for a unit photo
func (u *Unit) AddImage(key string) error {
	if strings.TrimSpace(key) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Image key cannot be empty")
	}
	u.Images = append(u.Images, key)
	u.Touch()
	return nil
}

func validateUnitFields(number string, unitType UnitType, rent, deposit decimal.Decimal) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit number cannot be empty")
	}
	if len(number) > 50 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit number cannot exceed 50 characters")
	}
	if !unitType.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid unit type: %s", unitType)
	}
	if rent.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Rent cannot be negative")
	}
	if deposit.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Deposit cannot be negative")
	}
	return nil
}
