package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/expense"
	"github.com/rentdesk/backend/internal/domain/landlord"
	"github.com/rentdesk/backend/internal/domain/maintenance"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/report"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// DashboardInvalidationHandler drops a business's cached dashboard whenever
// an event changes a figure the summary reports
type DashboardInvalidationHandler struct {
	cache  report.DashboardCache
	logger *zap.Logger
}

// NewDashboardInvalidationHandler creates the handler
func NewDashboardInvalidationHandler(cache report.DashboardCache, logger *zap.Logger) *DashboardInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardInvalidationHandler{cache: cache, logger: logger}
}

// EventTypes lists the events that change dashboard figures
func (h *DashboardInvalidationHandler) EventTypes() []string {
	return []string{
		property.EventTypePropertyCreated,
		property.EventTypeUnitCreated,
		property.EventTypeUnitOccupied,
		property.EventTypeUnitVacated,
		property.EventTypeUnitStatusChanged,
		property.EventTypeUtilityCreated,
		tenancy.EventTypeTenantCreated,
		tenancy.EventTypeTenantStatusChanged,
		tenancy.EventTypeTenantBalanceChanged,
		tenancy.EventTypeTenantDeleted,
		tenancy.EventTypeLeaseActivated,
		tenancy.EventTypeLeaseTerminated,
		tenancy.EventTypeLeaseExpired,
		tenancy.EventTypeLeaseRenewed,
		rent.EventTypePaymentRecorded,
		rent.EventTypePaymentConfirmed,
		rent.EventTypePaymentUnconfirmed,
		rent.EventTypePaymentDeleted,
		maintenance.EventTypeRequestOpened,
		maintenance.EventTypeRequestStatusChanged,
		maintenance.EventTypeRequestDeleted,
		expense.EventTypeExpenseRecorded,
		expense.EventTypeExpenseUpdated,
		expense.EventTypeExpenseDeleted,
		landlord.EventTypeLandlordRegistered,
		landlord.EventTypeLandlordUpdated,
		landlord.EventTypeLandlordDeleted,
	}
}

// Handle invalidates the summary of the event's business
func (h *DashboardInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	businessID := event.BusinessID()
	if businessID == uuid.Nil {
		return nil
	}
	if err := h.cache.Invalidate(ctx, businessID); err != nil {
		h.logger.Warn("Failed to invalidate dashboard cache",
			zap.String("business_id", businessID.String()),
			zap.String("event_type", event.EventType()),
			zap.Error(err))
		return err
	}
	h.logger.Debug("Dashboard cache invalidated",
		zap.String("business_id", businessID.String()),
		zap.String("event_type", event.EventType()))
	return nil
}
