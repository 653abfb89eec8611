// Package landlord models the property owners a business manages on behalf of.
package landlord

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// Status is the account standing of a landlord
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// Landlord owns properties managed by the business. ID number and email are
// unique within a business.
type Landlord struct {
	shared.BusinessAggregateRoot
	Name         string
	Phone        string
	IDNumber     string
	Email        string
	Address      string
	Status       Status
	ProfileImage string
}

// Contact holds the editable details of a landlord
type Contact struct {
	Name     string
	Phone    string
	IDNumber string
	Email    string
	Address  string
}

// NewLandlord registers an active landlord
func NewLandlord(businessID uuid.UUID, c Contact) (*Landlord, error) {
	l := &Landlord{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Status:                StatusActive,
	}
	if err := l.apply(c); err != nil {
		return nil, err
	}
	l.AddDomainEvent(NewLandlordEvent(EventTypeLandlordRegistered, l))
	return l, nil
}

// Update replaces the contact details
func (l *Landlord) Update(c Contact) error {
	if err := l.apply(c); err != nil {
		return err
	}
	l.Touch()
	l.AddDomainEvent(NewLandlordEvent(EventTypeLandlordUpdated, l))
	return nil
}

// ChangeStatus moves the landlord to status
func (l *Landlord) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid landlord status: %s", status)
	}
	if l.Status == status {
		return nil
	}
	l.Status = status
	l.Touch()
	l.AddDomainEvent(NewLandlordEvent(EventTypeLandlordUpdated, l))
	return nil
}

// IsActive reports whether the landlord is in good standing
func (l *Landlord) IsActive() bool {
	return l.Status == StatusActive
}

func (l *Landlord) apply(c Contact) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.IDNumber = strings.TrimSpace(c.IDNumber)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Address = strings.TrimSpace(c.Address)

	switch {
	case c.Name == "":
		return shared.NewDomainError(shared.CodeInvalidInput, "Landlord name cannot be empty")
	case len(c.Name) > 200:
		return shared.NewDomainError(shared.CodeInvalidInput, "Landlord name cannot exceed 200 characters")
	case c.Phone == "":
		return shared.NewDomainError(shared.CodeInvalidInput, "Phone cannot be empty")
	case c.IDNumber == "":
		return shared.NewDomainError(shared.CodeInvalidInput, "ID number cannot be empty")
	case c.Address == "":
		return shared.NewDomainError(shared.CodeInvalidInput, "Address cannot be empty")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid email format")
	}

	l.Name = c.Name
	l.Phone = c.Phone
	l.IDNumber = c.IDNumber
	l.Email = c.Email
	l.Address = c.Address
	return nil
}

// Stats summarizes the portfolio of one landlord
type Stats struct {
	LandlordID      uuid.UUID `json:"landlord_id"`
	TotalProperties int       `json:"total_properties"`
	TotalUnits      int       `json:"total_units"`
	OccupiedUnits   int       `json:"occupied_units"`
	VacantUnits     int       `json:"vacant_units"`
	OccupancyRate   float64   `json:"occupancy_rate"`
}

// Repository defines the interface for landlord persistence
type Repository interface {
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Landlord, error)
	// FindAllForBusiness lists landlords. Supported filter keys: status
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Landlord, error)
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)
	// ExistsByContact reports whether another landlord of the business
	// already uses the ID number or email, ignoring excludeID
	ExistsByContact(ctx context.Context, businessID uuid.UUID, idNumber, email string, excludeID uuid.UUID) (bool, error)
	// Stats aggregates the occupancy counters of the landlord's properties
	Stats(ctx context.Context, businessID, landlordID uuid.UUID) (*Stats, error)
	Save(ctx context.Context, l *Landlord) error
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error
}
