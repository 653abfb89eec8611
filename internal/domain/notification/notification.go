// Package notification holds the in-app notification feed of a business.
package notification

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// Type is what a notification is about
type Type string

const (
	TypePaymentDue         Type = "payment_due"
	TypePaymentReceived    Type = "payment_received"
	TypeMaintenanceRequest Type = "maintenance_request"
	TypeTenantMoveIn       Type = "tenant_move_in"
	TypeTenantMoveOut      Type = "tenant_move_out"
	TypeLeaseExpiry        Type = "lease_expiry"
	TypeSystem             Type = "system"
)

// IsValid reports whether t is a known type
func (t Type) IsValid() bool {
	switch t {
	case TypePaymentDue, TypePaymentReceived, TypeMaintenanceRequest, TypeTenantMoveIn,
		TypeTenantMoveOut, TypeLeaseExpiry, TypeSystem:
		return true
	}
	return false
}

// Priority ranks a notification
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is a known priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Notification is one entry of the feed. A nil RecipientID addresses
// everyone in the business.
type Notification struct {
	shared.BusinessAggregateRoot
	RecipientID *uuid.UUID
	Type        Type
	Title       string
	Message     string
	RelatedID   *uuid.UUID
	RelatedType string
	IsRead      bool
	Priority    Priority
}

// NewNotification creates an unread notification; an empty priority is medium
func NewNotification(businessID uuid.UUID, typ Type, title, message string, priority Priority) (*Notification, error) {
	if !typ.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid notification type: %s", typ)
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Title cannot be empty")
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Message cannot be empty")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid priority: %s", priority)
	}
	return &Notification{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		Type:                  typ,
		Title:                 strings.TrimSpace(title),
		Message:               strings.TrimSpace(message),
		Priority:              priority,
	}, nil
}

// RelatesTo links the notification to the record it is about
func (n *Notification) RelatesTo(relatedType string, id uuid.UUID) {
	n.RelatedType = relatedType
	n.RelatedID = &id
}

// MarkRead flags the notification as read. It reports whether anything changed.
func (n *Notification) MarkRead() bool {
	if n.IsRead {
		return false
	}
	n.IsRead = true
	n.Touch()
	return true
}

// Stats counts the feed of a business or of one recipient
type Stats struct {
	Total  int64          `json:"total"`
	Unread int64          `json:"unread"`
	ByType map[Type]int64 `json:"by_type"`
}

// Repository defines the interface for notification persistence
type Repository interface {
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Notification, error)
	// FindAllForBusiness lists notifications, newest first. Supported filter
	// keys: recipient_id, type, is_read
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Notification, error)
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)
	// MarkAllRead flags every unread notification of the recipient (every
	// notification of the business when recipient is nil) and returns the count
	MarkAllRead(ctx context.Context, businessID uuid.UUID, recipient *uuid.UUID) (int64, error)
	Stats(ctx context.Context, businessID uuid.UUID, recipient *uuid.UUID) (*Stats, error)
	Save(ctx context.Context, n *Notification) error
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error
}
