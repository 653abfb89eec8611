package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/notification"
)

// CreateNotificationRequest posts a notification to the feed
type CreateNotificationRequest struct {
	RecipientID *uuid.UUID `json:"recipient_id"`
	Type        string     `json:"type" binding:"required,oneof=payment_due payment_received maintenance_request tenant_move_in tenant_move_out lease_expiry system"`
	Title       string     `json:"title" binding:"required,max=200"`
	Message     string     `json:"message" binding:"required"`
	RelatedID   *uuid.UUID `json:"related_id"`
	RelatedType string     `json:"related_type" binding:"max=50"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// MarkAllReadRequest scopes a bulk read to one recipient; omit it for the
// whole business
type MarkAllReadRequest struct {
	RecipientID *uuid.UUID `json:"recipient_id"`
}

// MarkAllReadResponse reports how many notifications changed
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// NotificationListFilter represents filter options for the feed
type NotificationListFilter struct {
	Search      string `form:"search"`
	RecipientID string `form:"recipient_id" binding:"omitempty,uuid"`
	Type        string `form:"type" binding:"omitempty,oneof=payment_due payment_received maintenance_request tenant_move_in tenant_move_out lease_expiry system"`
	IsRead      *bool  `form:"is_read"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// StatsQuery narrows the stats to one recipient
type StatsQuery struct {
	RecipientID string `form:"recipient_id" binding:"omitempty,uuid"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID          uuid.UUID  `json:"id"`
	BusinessID  uuid.UUID  `json:"business_id"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	RelatedID   *uuid.UUID `json:"related_id,omitempty"`
	RelatedType string     `json:"related_type,omitempty"`
	IsRead      bool       `json:"is_read"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToNotificationResponse converts a domain Notification to NotificationResponse
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		BusinessID:  n.BusinessID,
		RecipientID: n.RecipientID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		IsRead:      n.IsRead,
		Priority:    string(n.Priority),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// ToNotificationResponses converts a slice of notifications
func ToNotificationResponses(items []notification.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(items))
	for i := range items {
		responses[i] = ToNotificationResponse(&items[i])
	}
	return responses
}
