package models

import (
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/landlord"
)

// LandlordModel is the persistence model for the Landlord aggregate.
// ID number and email are unique per business.
type LandlordModel struct {
	AggregateModel
	BusinessID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_landlords_business_id_number,priority:1;uniqueIndex:idx_landlords_business_email,priority:1"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Phone        string          `gorm:"type:varchar(50);not null"`
	IDNumber     string          `gorm:"column:id_number;type:varchar(50);not null;uniqueIndex:idx_landlords_business_id_number,priority:2"`
	Email        string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_landlords_business_email,priority:2"`
	Address      string          `gorm:"type:varchar(500);not null"`
	Status       landlord.Status `gorm:"type:varchar(20);not null;default:'active';index"`
	ProfileImage string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (LandlordModel) TableName() string {
	return "landlords"
}

// ToDomain converts the persistence model to a domain Landlord
func (m *LandlordModel) ToDomain() *landlord.Landlord {
	return &landlord.Landlord{
		BusinessAggregateRoot: m.toDomainBusinessAggregateRoot(m.BusinessID),
		Name:                  m.Name,
		Phone:                 m.Phone,
		IDNumber:              m.IDNumber,
		Email:                 m.Email,
		Address:               m.Address,
		Status:                m.Status,
		ProfileImage:          m.ProfileImage,
	}
}

// FromDomain populates the persistence model from a domain Landlord
func (m *LandlordModel) FromDomain(l *landlord.Landlord) {
	m.fromDomainAggregateRoot(l.BusinessAggregateRoot)
	m.BusinessID = l.BusinessID
	m.Name = l.Name
	m.Phone = l.Phone
	m.IDNumber = l.IDNumber
	m.Email = l.Email
	m.Address = l.Address
	m.Status = l.Status
	m.ProfileImage = l.ProfileImage
}

// LandlordModelFromDomain creates a new persistence model from a domain Landlord
func LandlordModelFromDomain(l *landlord.Landlord) *LandlordModel {
	m := &LandlordModel{}
	m.FromDomain(l)
	return m
}
