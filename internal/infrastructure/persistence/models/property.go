package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for the Property aggregate
type PropertyModel struct {
	BusinessAggregateModel
	Name          string                  `gorm:"type:varchar(200);not null"`
	Address       string                  `gorm:"type:text;not null"`
	City          string                  `gorm:"type:varchar(100)"`
	LandlordID    *uuid.UUID              `gorm:"type:uuid;index"`
	LandlordName  string                  `gorm:"type:varchar(200)"`
	PropertyType  property.PropertyType   `gorm:"type:varchar(20);not null"`
	Status        property.PropertyStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Description   string                  `gorm:"type:text"`
	TotalUnits    int                     `gorm:"not null;default:0"`
	OccupiedUnits int                     `gorm:"not null;default:0"`
	VacantUnits   int                     `gorm:"not null;default:0"`
	OtherUnits    int                     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		Name:                  m.Name,
		Address:               m.Address,
		City:                  m.City,
		LandlordID:            m.LandlordID,
		LandlordName:          m.LandlordName,
		Type:                  m.PropertyType,
		Status:                m.Status,
		Description:           m.Description,
		Counts: property.OccupancyCounts{
			Total:    m.TotalUnits,
			Occupied: m.OccupiedUnits,
			Vacant:   m.VacantUnits,
			Other:    m.OtherUnits,
		},
	}
}

// FromDomain populates the persistence model from a domain Property
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainBusinessAggregateRoot(p.BusinessAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.City = p.City
	m.LandlordID = p.LandlordID
	m.LandlordName = p.LandlordName
	m.PropertyType = p.Type
	m.Status = p.Status
	m.Description = p.Description
	m.TotalUnits = p.Counts.Total
	m.OccupiedUnits = p.Counts.Occupied
	m.VacantUnits = p.Counts.Vacant
	m.OtherUnits = p.Counts.Other
}

// PropertyModelFromDomain creates a new persistence model from a domain Property
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// UnitModel is the persistence model for the Unit aggregate. Status,
// is_vacant, vacant_since and current_tenant_id are written together from
// the unit's occupancy and never updated independently.
type UnitModel struct {
	BusinessAggregateModel
	PropertyID      uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_unit_property_number,priority:1"`
	UnitNumber      string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_unit_property_number,priority:2"`
	UnitType        property.UnitType   `gorm:"type:varchar(20);not null"`
	Rent            decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Deposit         decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Status          property.UnitStatus `gorm:"type:varchar(20);not null;default:'vacant';index"`
	IsVacant        bool                `gorm:"not null;default:true"`
	VacantSince     *time.Time
	CurrentTenantID *uuid.UUID `gorm:"type:uuid;index"`
	DaysVacant      int        `gorm:"not null;default:0"`
	LastTenantID    *uuid.UUID `gorm:"type:uuid"`
	Amenities       []string   `gorm:"type:jsonb;serializer:json"`
	Description     string     `gorm:"type:text"`
	Images          []string   `gorm:"type:jsonb;serializer:json"`
	LastPaymentDate *time.Time
	NextPaymentDate *time.Time
	Utilities       []UnitUtilityModel `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit
func (m *UnitModel) ToDomain() (*property.Unit, error) {
	occupancy, err := property.RestoreOccupancy(m.Status, m.VacantSince, m.CurrentTenantID)
	if err != nil {
		return nil, err
	}
	u := &property.Unit{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		PropertyID:            m.PropertyID,
		UnitNumber:            m.UnitNumber,
		Type:                  m.UnitType,
		Rent:                  m.Rent,
		Deposit:               m.Deposit,
		Occupancy:             occupancy,
		DaysVacant:            m.DaysVacant,
		LastTenantID:          m.LastTenantID,
		Amenities:             nonNilStrings(m.Amenities),
		Description:           m.Description,
		Images:                nonNilStrings(m.Images),
		LastPaymentDate:       m.LastPaymentDate,
		NextPaymentDate:       m.NextPaymentDate,
		Utilities:             make([]property.UnitUtility, 0, len(m.Utilities)),
	}
	for _, uu := range sortedUnitUtilities(m.Utilities) {
		u.Utilities = append(u.Utilities, property.UnitUtility{
			UtilityID:  uu.UtilityID,
			IsIncluded: uu.IsIncluded,
			UnitCharge: uu.UnitCharge,
		})
	}
	return u, nil
}

// FromDomain populates the persistence model from a domain Unit
func (m *UnitModel) FromDomain(u *property.Unit) {
	m.FromDomainBusinessAggregateRoot(u.BusinessAggregateRoot)
	m.PropertyID = u.PropertyID
	m.UnitNumber = u.UnitNumber
	m.UnitType = u.Type
	m.Rent = u.Rent
	m.Deposit = u.Deposit
	m.Status = u.Status()
	m.IsVacant = u.IsVacant()
	m.VacantSince = u.VacantSince()
	m.CurrentTenantID = u.CurrentTenantID()
	m.DaysVacant = u.DaysVacant
	m.LastTenantID = u.LastTenantID
	m.Amenities = nonNilStrings(u.Amenities)
	m.Description = u.Description
	m.Images = nonNilStrings(u.Images)
	m.LastPaymentDate = u.LastPaymentDate
	m.NextPaymentDate = u.NextPaymentDate
	m.Utilities = make([]UnitUtilityModel, 0, len(u.Utilities))
	for i, uu := range u.Utilities {
		m.Utilities = append(m.Utilities, UnitUtilityModel{
			UnitID:     u.ID,
			UtilityID:  uu.UtilityID,
			Position:   i,
			IsIncluded: uu.IsIncluded,
			UnitCharge: uu.UnitCharge,
		})
	}
}

// UnitModelFromDomain creates a new persistence model from a domain Unit
func UnitModelFromDomain(u *property.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}

// UnitUtilityModel is one utility association of a unit
type UnitUtilityModel struct {
	UnitID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UtilityID  uuid.UUID       `gorm:"type:uuid;primaryKey;index"`
	Position   int             `gorm:"not null;default:0"`
	IsIncluded bool            `gorm:"not null;default:true"`
	UnitCharge decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (UnitUtilityModel) TableName() string {
	return "unit_utilities"
}

// UtilityModel is the persistence model for the Utility aggregate
type UtilityModel struct {
	BusinessAggregateModel
	Name         string                `gorm:"type:varchar(100);not null"`
	Description  string                `gorm:"type:text"`
	UnitCost     decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	BillingCycle property.BillingCycle `gorm:"type:varchar(20);not null;default:'monthly'"`
	IsActive     bool                  `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UtilityModel) TableName() string {
	return "utilities"
}

// ToDomain converts the persistence model to a domain Utility
func (m *UtilityModel) ToDomain() *property.Utility {
	return &property.Utility{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		Name:                  m.Name,
		Description:           m.Description,
		UnitCost:              m.UnitCost,
		BillingCycle:          m.BillingCycle,
		IsActive:              m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Utility
func (m *UtilityModel) FromDomain(u *property.Utility) {
	m.FromDomainBusinessAggregateRoot(u.BusinessAggregateRoot)
	m.Name = u.Name
	m.Description = u.Description
	m.UnitCost = u.UnitCost
	m.BillingCycle = u.BillingCycle
	m.IsActive = u.IsActive
}

// UtilityModelFromDomain creates a new persistence model from a domain Utility
func UtilityModelFromDomain(u *property.Utility) *UtilityModel {
	m := &UtilityModel{}
	m.FromDomain(u)
	return m
}

func sortedUnitUtilities(in []UnitUtilityModel) []UnitUtilityModel {
	out := make([]UnitUtilityModel, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
