package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant aggregate.
// ID numbers are unique per business.
type TenantModel struct {
	AggregateModel
	BusinessID             uuid.UUID             `gorm:"type:uuid;not null;index;uniqueIndex:idx_tenants_business_id_number,priority:1"`
	UnitID                 uuid.UUID             `gorm:"type:uuid;not null;index"`
	Name                   string                `gorm:"type:varchar(200);not null"`
	Phone                  string                `gorm:"type:varchar(50);not null"`
	Email                  string                `gorm:"type:varchar(200)"`
	IDNumber               string                `gorm:"column:id_number;type:varchar(50);not null;uniqueIndex:idx_tenants_business_id_number,priority:2"`
	Rent                   decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Balance                decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Status                 tenancy.TenantStatus  `gorm:"type:varchar(20);not null;default:'active';index"`
	PaymentMethod          tenancy.PaymentMethod `gorm:"type:varchar(20)"`
	MoveInDate             time.Time             `gorm:"not null"`
	MoveOutDate            *time.Time
	EmergencyContactName   string   `gorm:"type:varchar(200)"`
	EmergencyContactPhone  string   `gorm:"type:varchar(50)"`
	EmergencyContactRelate string   `gorm:"column:emergency_contact_relationship;type:varchar(50)"`
	Documents              []string `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BusinessAggregateRoot: m.toDomainBusinessAggregateRoot(m.BusinessID),
		UnitID:                m.UnitID,
		Name:                  m.Name,
		Phone:                 m.Phone,
		Email:                 m.Email,
		IDNumber:              m.IDNumber,
		Rent:                  m.Rent,
		Balance:               m.Balance,
		Status:                m.Status,
		PaymentMethod:         m.PaymentMethod,
		MoveInDate:            m.MoveInDate,
		MoveOutDate:           m.MoveOutDate,
		EmergencyContact: tenancy.EmergencyContact{
			Name:         m.EmergencyContactName,
			Phone:        m.EmergencyContactPhone,
			Relationship: m.EmergencyContactRelate,
		},
		Documents: nonNilStrings(m.Documents),
	}
}

// FromDomain populates the persistence model from a domain Tenant
func (m *TenantModel) FromDomain(t *tenancy.Tenant) {
	m.fromDomainAggregateRoot(t.BusinessAggregateRoot)
	m.BusinessID = t.BusinessID
	m.UnitID = t.UnitID
	m.Name = t.Name
	m.Phone = t.Phone
	m.Email = t.Email
	m.IDNumber = t.IDNumber
	m.Rent = t.Rent
	m.Balance = t.Balance
	m.Status = t.Status
	m.PaymentMethod = t.PaymentMethod
	m.MoveInDate = t.MoveInDate
	m.MoveOutDate = t.MoveOutDate
	m.EmergencyContactName = t.EmergencyContact.Name
	m.EmergencyContactPhone = t.EmergencyContact.Phone
	m.EmergencyContactRelate = t.EmergencyContact.Relationship
	m.Documents = nonNilStrings(t.Documents)
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// LeaseModel is the persistence model for the Lease aggregate
type LeaseModel struct {
	BusinessAggregateModel
	TenantID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	UnitID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	StartDate        time.Time           `gorm:"not null"`
	EndDate          time.Time           `gorm:"not null;index"`
	RentAmount       decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	DepositAmount    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentDueDay    int                 `gorm:"not null;default:1"`
	LateFee          decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Terms            string              `gorm:"type:text"`
	Status           tenancy.LeaseStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	DocumentKey      string              `gorm:"type:varchar(500)"`
	SignedByTenant   bool                `gorm:"not null;default:false"`
	SignedByLandlord bool                `gorm:"not null;default:false"`
	SignedDate       *time.Time
	RenewedFromID    *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the persistence model to a domain Lease
func (m *LeaseModel) ToDomain() *tenancy.Lease {
	return &tenancy.Lease{
		BusinessAggregateRoot: m.ToDomainBusinessAggregateRoot(),
		TenantID:              m.TenantID,
		UnitID:                m.UnitID,
		LeaseTerms: tenancy.LeaseTerms{
			StartDate:     m.StartDate,
			EndDate:       m.EndDate,
			RentAmount:    m.RentAmount,
			DepositAmount: m.DepositAmount,
			PaymentDueDay: m.PaymentDueDay,
			LateFee:       m.LateFee,
			Terms:         m.Terms,
		},
		Status:           m.Status,
		DocumentKey:      m.DocumentKey,
		SignedByTenant:   m.SignedByTenant,
		SignedByLandlord: m.SignedByLandlord,
		SignedDate:       m.SignedDate,
		RenewedFromID:    m.RenewedFromID,
	}
}

// FromDomain populates the persistence model from a domain Lease
func (m *LeaseModel) FromDomain(l *tenancy.Lease) {
	m.FromDomainBusinessAggregateRoot(l.BusinessAggregateRoot)
	m.TenantID = l.TenantID
	m.UnitID = l.UnitID
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.RentAmount = l.RentAmount
	m.DepositAmount = l.DepositAmount
	m.PaymentDueDay = l.PaymentDueDay
	m.LateFee = l.LateFee
	m.Terms = l.Terms
	m.Status = l.Status
	m.DocumentKey = l.DocumentKey
	m.SignedByTenant = l.SignedByTenant
	m.SignedByLandlord = l.SignedByLandlord
	m.SignedDate = l.SignedDate
	m.RenewedFromID = l.RenewedFromID
}

// LeaseModelFromDomain creates a new persistence model from a domain Lease
func LeaseModelFromDomain(l *tenancy.Lease) *LeaseModel {
	m := &LeaseModel{}
	m.FromDomain(l)
	return m
}
