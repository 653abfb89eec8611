package notification

import (
	"context"
	"fmt"

	"github.com/rentdesk/backend/internal/domain/maintenance"
	"github.com/rentdesk/backend/internal/domain/notification"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// FeedHandler turns domain events into business-wide feed entries
type FeedHandler struct {
	repo   notification.Repository
	logger *zap.Logger
}

// NewFeedHandler creates a FeedHandler writing to repo
func NewFeedHandler(repo notification.Repository, logger *zap.Logger) *FeedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedHandler{repo: repo, logger: logger}
}

// EventTypes lists the events that produce a notification
func (h *FeedHandler) EventTypes() []string {
	return []string{
		tenancy.EventTypeTenantCreated,
		tenancy.EventTypeTenantStatusChanged,
		tenancy.EventTypeLeaseExpired,
		rent.EventTypePaymentConfirmed,
		maintenance.EventTypeRequestOpened,
	}
}

// Handle stores the notification for event, if it warrants one
func (h *FeedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	n, err := h.notificationFor(event)
	if err != nil || n == nil {
		return err
	}
	if err := h.repo.Save(ctx, n); err != nil {
		h.logger.Warn("Failed to store notification",
			zap.String("event_type", event.EventType()),
			zap.String("business_id", event.BusinessID().String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (h *FeedHandler) notificationFor(event shared.DomainEvent) (*notification.Notification, error) {
	var (
		typ         notification.Type
		title, body string
		priority    = notification.PriorityMedium
		relatedType = "tenant"
	)
	switch e := event.(type) {
	case *tenancy.TenantCreatedEvent:
		typ, title = notification.TypeTenantMoveIn, "Tenant moved in"
		body = fmt.Sprintf("%s moved in", e.Name)
	case *tenancy.TenantStatusChangedEvent:
		if e.NewStatus != tenancy.TenantStatusMovedOut && e.NewStatus != tenancy.TenantStatusEvicted {
			return nil, nil
		}
		typ, title = notification.TypeTenantMoveOut, "Tenant moved out"
		body = fmt.Sprintf("A tenant left with status %s; the unit is vacant", e.NewStatus)
	case *tenancy.LeaseEvent:
		if e.EventType() != tenancy.EventTypeLeaseExpired {
			return nil, nil
		}
		typ, title, relatedType = notification.TypeLeaseExpiry, "Lease expired", "lease"
		body = "A lease reached its end date and expired"
		priority = notification.PriorityHigh
	case *rent.PaymentEvent:
		if e.EventType() != rent.EventTypePaymentConfirmed {
			return nil, nil
		}
		typ, title, relatedType = notification.TypePaymentReceived, "Payment received", "payment"
		body = fmt.Sprintf("Payment of %s confirmed", e.Amount.StringFixed(2))
		if e.ReceiptNumber != "" {
			body += ", receipt " + e.ReceiptNumber
		}
	case *maintenance.RequestEvent:
		if e.EventType() != maintenance.EventTypeRequestOpened {
			return nil, nil
		}
		typ, title, relatedType = notification.TypeMaintenanceRequest, "Maintenance requested", "maintenance_request"
		body = fmt.Sprintf("New %s priority maintenance request", e.Priority)
		if e.Priority == maintenance.PriorityHigh || e.Priority == maintenance.PriorityEmergency {
			priority = notification.PriorityHigh
		}
	default:
		return nil, nil
	}

	n, err := notification.NewNotification(event.BusinessID(), typ, title, body, priority)
	if err != nil {
		return nil, err
	}
	n.RelatesTo(relatedType, event.AggregateID())
	return n, nil
}

var _ shared.EventHandler = (*FeedHandler)(nil)
