package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/maintenance"
	"github.com/rentdesk/backend/internal/domain/notification"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/rentdesk/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Feed(t *testing.T) {
	stack := testutil.NewStack(t)
	svc := NewService(stack.Notifications, nil)
	ctx := context.Background()
	businessID := uuid.New()
	manager := uuid.New()

	post := func(typ string, recipient *uuid.UUID) *NotificationResponse {
		n, err := svc.Create(ctx, businessID, CreateNotificationRequest{
			RecipientID: recipient, Type: typ, Title: "Reminder", Message: "Rent is due on the 5th",
		})
		require.NoError(t, err)
		return n
	}
	due := post("payment_due", &manager)
	post("payment_due", &manager)
	post("system", nil)

	assert.Equal(t, "medium", due.Priority)
	assert.False(t, due.IsRead)

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Create(ctx, businessID, CreateNotificationRequest{Type: "gossip", Title: "x", Message: "y"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	read, err := svc.MarkRead(ctx, businessID, due.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	again, err := svc.MarkRead(ctx, businessID, due.ID)
	require.NoError(t, err)
	assert.True(t, again.IsRead)

	unread := false
	items, total, err := svc.List(ctx, businessID, NotificationListFilter{IsRead: &unread})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	stats, err := svc.Stats(ctx, businessID, StatsQuery{RecipientID: manager.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Unread)

	_, err = svc.Stats(ctx, businessID, StatsQuery{RecipientID: "nope"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	marked, err := svc.MarkAllRead(ctx, businessID, MarkAllReadRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked.Updated)

	stats, err = svc.Stats(ctx, businessID, StatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Zero(t, stats.Unread)

	require.NoError(t, svc.Delete(ctx, businessID, due.ID))
	_, err = svc.GetByID(ctx, businessID, due.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), due.ID), shared.ErrNotFound)
}

func TestFeedHandler_Handle(t *testing.T) {
	stack := testutil.NewStack(t)
	h := NewFeedHandler(stack.Notifications, nil)
	svc := NewService(stack.Notifications, nil)
	ctx := context.Background()
	businessID := uuid.New()
	now := time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC)

	tenant, err := tenancy.NewTenant(businessID, uuid.New(), "Amina Otieno", "+254700000001", "ID-1", decimal.NewFromInt(1000), now)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, tenancy.NewTenantCreatedEvent(tenant)))

	tenant.Status = tenancy.TenantStatusOverdue
	require.NoError(t, h.Handle(ctx, tenancy.NewTenantStatusChangedEvent(tenant, tenancy.TenantStatusActive)))
	tenant.Status = tenancy.TenantStatusMovedOut
	require.NoError(t, h.Handle(ctx, tenancy.NewTenantStatusChangedEvent(tenant, tenancy.TenantStatusOverdue)))

	payment, err := rent.NewRentPayment(businessID, tenant.ID, tenant.UnitID, decimal.NewFromInt(1000), rent.PaymentTypeRent, rent.PaymentMethodCash, now, now, rent.Period{Year: 2026, Month: 10})
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, rent.NewPaymentRecordedEvent(payment)))
	require.NoError(t, h.Handle(ctx, rent.NewPaymentConfirmedEvent(payment)))

	request, err := maintenance.NewRequest(businessID, tenant.UnitID, "Burst pipe", "Water everywhere", maintenance.PriorityEmergency)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, maintenance.NewRequestEvent(maintenance.EventTypeRequestOpened, request)))

	stats, err := svc.Stats(ctx, businessID, StatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total, "overdue and recorded-only events are not announced")
	assert.Equal(t, int64(1), stats.ByType[notification.TypeTenantMoveIn])
	assert.Equal(t, int64(1), stats.ByType[notification.TypeTenantMoveOut])
	assert.Equal(t, int64(1), stats.ByType[notification.TypePaymentReceived])
	assert.Equal(t, int64(1), stats.ByType[notification.TypeMaintenanceRequest])

	items, _, err := svc.List(ctx, businessID, NotificationListFilter{Type: "maintenance_request"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "high", items[0].Priority)
	require.NotNil(t, items[0].RelatedID)
	assert.Equal(t, request.ID, *items[0].RelatedID)
	assert.Nil(t, items[0].RecipientID)

	items, _, err = svc.List(ctx, businessID, NotificationListFilter{Type: "payment_received"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Message, "1000.00")
}
