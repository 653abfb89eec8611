package landlord

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/landlord"
)

// CreateLandlordRequest registers a landlord
type CreateLandlordRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Phone    string `json:"phone" binding:"required,max=20"`
	IDNumber string `json:"id_number" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Address  string `json:"address" binding:"required"`
}

func (r CreateLandlordRequest) contact() landlord.Contact {
	return landlord.Contact{Name: r.Name, Phone: r.Phone, IDNumber: r.IDNumber, Email: r.Email, Address: r.Address}
}

// UpdateLandlordRequest represents a partial landlord update
type UpdateLandlordRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone        *string `json:"phone" binding:"omitempty,max=20"`
	IDNumber     *string `json:"id_number" binding:"omitempty,max=50"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Address      *string `json:"address"`
	ProfileImage *string `json:"profile_image"`
}

// UpdateStatusRequest changes the standing of a landlord
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
}

// LandlordListFilter represents filter options for the landlord list
type LandlordListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive suspended"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LandlordResponse represents a landlord in API responses
type LandlordResponse struct {
	ID           uuid.UUID `json:"id"`
	BusinessID   uuid.UUID `json:"business_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	IDNumber     string    `json:"id_number"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	Status       string    `json:"status"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToLandlordResponse converts a domain Landlord to LandlordResponse
func ToLandlordResponse(l *landlord.Landlord) LandlordResponse {
	return LandlordResponse{
		ID:           l.ID,
		BusinessID:   l.BusinessID,
		Name:         l.Name,
		Phone:        l.Phone,
		IDNumber:     l.IDNumber,
		Email:        l.Email,
		Address:      l.Address,
		Status:       string(l.Status),
		ProfileImage: l.ProfileImage,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// ToLandlordResponses converts a slice of landlords
func ToLandlordResponses(items []landlord.Landlord) []LandlordResponse {
	responses := make([]LandlordResponse, len(items))
	for i := range items {
		responses[i] = ToLandlordResponse(&items[i])
	}
	return responses
}
