package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// PropertyType classifies a property
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeTownhouse  PropertyType = "townhouse"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeMixed      PropertyType = "mixed"
)

// IsValid reports whether t is a known property type
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeTownhouse,
		PropertyTypeCommercial, PropertyTypeMixed:
		return true
	}
	return false
}

// PropertyStatus represents the operating status of a property
type PropertyStatus string

const (
	PropertyStatusActive      PropertyStatus = "active"
	PropertyStatusMaintenance PropertyStatus = "maintenance"
	PropertyStatusClosed      PropertyStatus = "closed"
)

// IsValid reports whether s is a known property status
func (s PropertyStatus) IsValid() bool {
	switch s {
	case PropertyStatusActive, PropertyStatusMaintenance, PropertyStatusClosed:
		return true
	}
	return false
}

// OccupancyCounts is the unit tally of a property.
// Total always equals Occupied + Vacant + Other, where Other holds units
// under maintenance or reserved.
type OccupancyCounts struct {
	Total    int `json:"total_units"`
	Occupied int `json:"occupied_units"`
	Vacant   int `json:"vacant_units"`
	Other    int `json:"other_units"`
}

// CountsFromStatuses builds counts from a status histogram
func CountsFromStatuses(byStatus map[UnitStatus]int) OccupancyCounts {
	var c OccupancyCounts
	for status, n := range byStatus {
		switch status {
		case UnitStatusOccupied:
			c.Occupied += n
		case UnitStatusVacant:
			c.Vacant += n
		default:
			c.Other += n
		}
		c.Total += n
	}
	return c
}

// IsConsistent reports whether the parts add up to the total
func (c OccupancyCounts) IsConsistent() bool {
	return c.Occupied >= 0 && c.Vacant >= 0 && c.Other >= 0 &&
		c.Occupied+c.Vacant+c.Other == c.Total
}

// OccupancyRate returns occupied/total as a percentage, 0 for an empty property
func (c OccupancyCounts) OccupancyRate() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Occupied) * 100 / float64(c.Total)
}

// Property is a building or site owned by a business. It is the aggregate
// root for its units' occupancy counters.
type Property struct {
	shared.BusinessAggregateRoot
	Name         string
	Address      string
	City         string
	LandlordID   *uuid.UUID
	LandlordName string
	Type         PropertyType
	Status       PropertyStatus
	Description  string
	Counts       OccupancyCounts
}

// NewProperty creates a new active property with no units
func NewProperty(businessID uuid.UUID, name, address string, propertyType PropertyType) (*Property, error) {
	if err := validatePropertyName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(address) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Property address cannot be empty")
	}
	if !propertyType.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid property type: %s", propertyType)
	}

	p := &Property{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Name:                  strings.TrimSpace(name),
		Address:               strings.TrimSpace(address),
		Type:                  propertyType,
		Status:                PropertyStatusActive,
	}
	p.AddDomainEvent(NewPropertyCreatedEvent(p))
	return p, nil
}

// Update updates the descriptive fields of a property
func (p *Property) Update(name, address, city, landlord, description string, propertyType PropertyType) error {
	if err := validatePropertyName(name); err != nil {
		return err
	}
	if strings.TrimSpace(address) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Property address cannot be empty")
	}
	if !propertyType.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid property type: %s", propertyType)
	}

	p.Name = strings.TrimSpace(name)
	p.Address = strings.TrimSpace(address)
	p.City = city
	p.LandlordName = landlord
	p.Description = description
	p.Type = propertyType
	p.Touch()
	return nil
}

// ChangeStatus moves the property to a new operating status
func (p *Property) ChangeStatus(status PropertyStatus) error {
	if !status.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid property status: %s", status)
	}
	if p.Status == status {
		return nil
	}
	p.Status = status
	p.Touch()
	return nil
}

// ApplyCounts overwrites the unit counters
func (p *Property) ApplyCounts(counts OccupancyCounts) {
	p.Counts = counts
	p.UpdatedAt = time.Now()
}

func validatePropertyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Property name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Property name cannot exceed 200 characters")
	}
	return nil
}
