package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ListFilter holds the paging and ordering fields every list endpoint shares
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToDomainFilter applies defaults and converts to a shared.Filter
func (f ListFilter) ToDomainFilter(defaultOrder string) shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.OrderBy = defaultOrder
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	return filter
}

// =============================================================================
// Property DTOs
// =============================================================================

// CreatePropertyRequest represents a request to register a property.
// A landlord_id links a registered landlord and overrides landlord_name.
type CreatePropertyRequest struct {
	Name         string     `json:"name" binding:"required,min=1,max=200"`
	Address      string     `json:"address" binding:"required"`
	City         string     `json:"city"`
	LandlordID   *uuid.UUID `json:"landlord_id"`
	LandlordName string     `json:"landlord_name"`
	Type         string     `json:"type" binding:"required,oneof=apartment house townhouse commercial mixed"`
	Description  string     `json:"description"`
}

// UpdatePropertyRequest represents a partial property update
type UpdatePropertyRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Address      *string    `json:"address"`
	City         *string    `json:"city"`
	LandlordID   *uuid.UUID `json:"landlord_id"`
	LandlordName *string    `json:"landlord_name"`
	Type         *string    `json:"type" binding:"omitempty,oneof=apartment house townhouse commercial mixed"`
	Status       *string    `json:"status" binding:"omitempty,oneof=active maintenance closed"`
	Description  *string    `json:"description"`
}

// PropertyListFilter represents filter options for the property list
type PropertyListFilter struct {
	ListFilter
	Status     string `form:"status" binding:"omitempty,oneof=active maintenance closed"`
	Type       string `form:"type" binding:"omitempty,oneof=apartment house townhouse commercial mixed"`
	City       string `form:"city"`
	LandlordID string `form:"landlord_id" binding:"omitempty,uuid"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID            uuid.UUID  `json:"id"`
	BusinessID    uuid.UUID  `json:"business_id"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	LandlordID    *uuid.UUID `json:"landlord_id,omitempty"`
	LandlordName  string     `json:"landlord_name"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Description   string     `json:"description"`
	TotalUnits    int        `json:"total_units"`
	OccupiedUnits int        `json:"occupied_units"`
	VacantUnits   int        `json:"vacant_units"`
	OtherUnits    int        `json:"other_units"`
	OccupancyRate float64    `json:"occupancy_rate"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToPropertyResponse converts a domain Property to PropertyResponse
func ToPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		BusinessID:    p.BusinessID,
		Name:          p.Name,
		Address:       p.Address,
		City:          p.City,
		LandlordID:    p.LandlordID,
		LandlordName:  p.LandlordName,
		Type:          string(p.Type),
		Status:        string(p.Status),
		Description:   p.Description,
		TotalUnits:    p.Counts.Total,
		OccupiedUnits: p.Counts.Occupied,
		VacantUnits:   p.Counts.Vacant,
		OtherUnits:    p.Counts.Other,
		OccupancyRate: p.Counts.OccupancyRate(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToPropertyResponses converts a slice of properties
func ToPropertyResponses(items []property.Property) []PropertyResponse {
	responses := make([]PropertyResponse, len(items))
	for i := range items {
		responses[i] = ToPropertyResponse(&items[i])
	}
	return responses
}

// CountsResponse is the result of a counter recompute
type CountsResponse struct {
	PropertyID uuid.UUID `json:"property_id"`
	property.OccupancyCounts
	OccupancyRate float64 `json:"occupancy_rate"`
}

// =============================================================================
// Unit DTOs
// =============================================================================

// CreateUnitRequest represents a request to add a unit to a property
type CreateUnitRequest struct {
	PropertyID  uuid.UUID       `json:"property_id" binding:"required"`
	UnitNumber  string          `json:"unit_number" binding:"required,min=1,max=50"`
	Type        string          `json:"type" binding:"required,oneof=studio 1bed 2bed 3bed 4bed commercial"`
	Rent        decimal.Decimal `json:"rent"`
	Deposit     decimal.Decimal `json:"deposit"`
	Description string          `json:"description"`
	Amenities   []string        `json:"amenities"`
}

// UpdateUnitRequest represents a partial unit update
type UpdateUnitRequest struct {
	UnitNumber  *string          `json:"unit_number" binding:"omitempty,min=1,max=50"`
	Type        *string          `json:"type" binding:"omitempty,oneof=studio 1bed 2bed 3bed 4bed commercial"`
	Rent        *decimal.Decimal `json:"rent"`
	Deposit     *decimal.Decimal `json:"deposit"`
	Description *string          `json:"description"`
	Amenities   []string         `json:"amenities"`
}

// UpdateUnitStatusRequest moves a unit between vacant, maintenance and reserved
type UpdateUnitStatusRequest struct {
	Status string `json:"status" binding:"required,unit_status"`
}

// UnitUtilityRequest attaches or updates a utility on a unit
type UnitUtilityRequest struct {
	UtilityID  uuid.UUID        `json:"utility_id" binding:"required"`
	IsIncluded *bool            `json:"is_included"`
	UnitCharge *decimal.Decimal `json:"unit_charge"`
}

// UnitListFilter represents filter options for the unit list
type UnitListFilter struct {
	ListFilter
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=vacant occupied maintenance reserved"`
	Type       string `form:"type" binding:"omitempty,oneof=studio 1bed 2bed 3bed 4bed commercial"`
}

// UnitUtilityResponse is a utility attached to a unit
type UnitUtilityResponse struct {
	UtilityID  uuid.UUID       `json:"utility_id"`
	IsIncluded bool            `json:"is_included"`
	UnitCharge decimal.Decimal `json:"unit_charge"`
}

// UnitResponse represents a unit in API responses
type UnitResponse struct {
	ID              uuid.UUID             `json:"id"`
	BusinessID      uuid.UUID             `json:"business_id"`
	PropertyID      uuid.UUID             `json:"property_id"`
	UnitNumber      string                `json:"unit_number"`
	Type            string                `json:"type"`
	Rent            decimal.Decimal       `json:"rent"`
	Deposit         decimal.Decimal       `json:"deposit"`
	Status          string                `json:"status"`
	IsVacant        bool                  `json:"is_vacant"`
	VacantSince     *time.Time            `json:"vacant_since,omitempty"`
	DaysVacant      int                   `json:"days_vacant"`
	CurrentTenantID *uuid.UUID            `json:"current_tenant_id,omitempty"`
	LastTenantID    *uuid.UUID            `json:"last_tenant_id,omitempty"`
	Amenities       []string              `json:"amenities"`
	Description     string                `json:"description"`
	Images          []string              `json:"images"`
	LastPaymentDate *time.Time            `json:"last_payment_date,omitempty"`
	NextPaymentDate *time.Time            `json:"next_payment_date,omitempty"`
	Utilities       []UnitUtilityResponse `json:"utilities"`
	Version         int                   `json:"version"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToUnitResponse converts a domain Unit to UnitResponse
func ToUnitResponse(u *property.Unit) UnitResponse {
	utilities := make([]UnitUtilityResponse, len(u.Utilities))
	for i, uu := range u.Utilities {
		utilities[i] = UnitUtilityResponse{
			UtilityID:  uu.UtilityID,
			IsIncluded: uu.IsIncluded,
			UnitCharge: uu.UnitCharge,
		}
	}
	return UnitResponse{
		ID:              u.ID,
		BusinessID:      u.BusinessID,
		PropertyID:      u.PropertyID,
		UnitNumber:      u.UnitNumber,
		Type:            string(u.Type),
		Rent:            u.Rent,
		Deposit:         u.Deposit,
		Status:          string(u.Status()),
		IsVacant:        u.IsVacant(),
		VacantSince:     u.VacantSince(),
		DaysVacant:      u.DaysVacant,
		CurrentTenantID: u.CurrentTenantID(),
		LastTenantID:    u.LastTenantID,
		Amenities:       u.Amenities,
		Description:     u.Description,
		Images:          u.Images,
		LastPaymentDate: u.LastPaymentDate,
		NextPaymentDate: u.NextPaymentDate,
		Utilities:       utilities,
		Version:         u.Version,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// ToUnitResponses converts a slice of units
func ToUnitResponses(items []property.Unit) []UnitResponse {
	responses := make([]UnitResponse, len(items))
	for i := range items {
		responses[i] = ToUnitResponse(&items[i])
	}
	return responses
}

// ImageUploadResponse carries a presigned upload target for a unit photo
type ImageUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AttachImageRequest registers an uploaded unit photo
type AttachImageRequest struct {
	Key string `json:"key" binding:"required"`
}

// =============================================================================
// Utility DTOs
// =============================================================================

// CreateUtilityRequest represents a request to add a utility to the catalog
type CreateUtilityRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	Description  string          `json:"description"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	BillingCycle string          `json:"billing_cycle" binding:"required,billing_cycle"`
}

// UpdateUtilityRequest represents a partial utility update
type UpdateUtilityRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Description  *string          `json:"description"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	BillingCycle *string          `json:"billing_cycle" binding:"omitempty,billing_cycle"`
	IsActive     *bool            `json:"is_active"`
}

// UtilityListFilter represents filter options for the utility list
type UtilityListFilter struct {
	ListFilter
	BillingCycle string `form:"billing_cycle" binding:"omitempty,billing_cycle"`
	IsActive     *bool  `form:"is_active"`
}

// UtilityResponse represents a utility in API responses
type UtilityResponse struct {
	ID           uuid.UUID       `json:"id"`
	BusinessID   uuid.UUID       `json:"business_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	BillingCycle string          `json:"billing_cycle"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToUtilityResponse converts a domain Utility to UtilityResponse
func ToUtilityResponse(u *property.Utility) UtilityResponse {
	return UtilityResponse{
		ID:           u.ID,
		BusinessID:   u.BusinessID,
		Name:         u.Name,
		Description:  u.Description,
		UnitCost:     u.UnitCost,
		BillingCycle: string(u.BillingCycle),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ToUtilityResponses converts a slice of utilities
func ToUtilityResponses(items []property.Utility) []UtilityResponse {
	responses := make([]UtilityResponse, len(items))
	for i := range items {
		responses[i] = ToUtilityResponse(&items[i])
	}
	return responses
}
