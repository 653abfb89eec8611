package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appproperty "github.com/rentdesk/backend/internal/application/property"
	apptenancy "github.com/rentdesk/backend/internal/application/tenancy"
	"github.com/rentdesk/backend/internal/domain/maintenance"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type maintenanceFixture struct {
	svc        *Service
	publisher  *MockEventPublisher
	businessID uuid.UUID
	unitID     uuid.UUID
	tenantID   uuid.UUID
}

func newMaintenanceFixture(t *testing.T) *maintenanceFixture {
	t.Helper()
	ctx := context.Background()
	stack := testutil.NewStack(t)
	r := stack.Repos
	counter := appproperty.NewOccupancyCounter(r.PropertyRepo, r.UnitRepo, nil)
	businessID := uuid.New()

	p, err := appproperty.NewPropertyService(r.PropertyRepo, r.UnitRepo, counter, nil).
		Create(ctx, businessID, appproperty.CreatePropertyRequest{Name: "Parklands Heights", Address: "1 Limuru Rd", Type: "apartment"})
	require.NoError(t, err)
	u, err := appproperty.NewUnitService(r.UnitRepo, r.PropertyRepo, r.UtilityRepo, r.TenantRepo, stack.Scope, counter, nil).
		Create(ctx, businessID, appproperty.CreateUnitRequest{
			PropertyID: p.ID, UnitNumber: "7C", Type: "studio",
			Rent: decimal.NewFromInt(15000), Deposit: decimal.NewFromInt(15000),
		})
	require.NoError(t, err)
	tn, err := apptenancy.NewTenantService(r.TenantRepo, r.UnitRepo, r.UtilityRepo, r.PaymentRepo, stack.Scope, counter, nil).
		Create(ctx, businessID, apptenancy.CreateTenantRequest{UnitID: u.ID, Name: "Halima Yusuf", Phone: "+254744000000", IDNumber: "ID-8001"})
	require.NoError(t, err)

	publisher := new(MockEventPublisher)
	svc := NewService(stack.Maintenance, r.UnitRepo, r.TenantRepo, nil)
	svc.SetEventPublisher(publisher)
	return &maintenanceFixture{svc: svc, publisher: publisher, businessID: businessID, unitID: u.ID, tenantID: tn.ID}
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == eventType
	})
}

func TestService_CreateDefaultsTenantToOccupant(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	f.publisher.On("Publish", mock.Anything, eventOfType(maintenance.EventTypeRequestOpened)).Return(nil).Once()

	estimate := decimal.NewFromInt(2500)
	r, err := f.svc.Create(ctx, f.businessID, CreateRequestRequest{
		UnitID: f.unitID, Title: "Broken window", Description: "Bedroom window pane cracked",
		Priority: "high", EstimatedCost: &estimate,
	})
	require.NoError(t, err)
	require.NotNil(t, r.TenantID)
	assert.Equal(t, f.tenantID, *r.TenantID)
	assert.Equal(t, "pending", r.Status)
	assert.True(t, r.EstimatedCost.Equal(estimate))
	f.publisher.AssertExpectations(t)

	_, err = f.svc.Create(ctx, f.businessID, CreateRequestRequest{UnitID: uuid.New(), Title: "x", Description: "y"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	stranger := uuid.New()
	_, err = f.svc.Create(ctx, f.businessID, CreateRequestRequest{UnitID: f.unitID, TenantID: &stranger, Title: "x", Description: "y"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_StatusWorkflowAndStats(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	open := func(title, priority string) uuid.UUID {
		r, err := f.svc.Create(ctx, f.businessID, CreateRequestRequest{
			UnitID: f.unitID, Title: title, Description: title + " reported", Priority: priority,
		})
		require.NoError(t, err)
		return r.ID
	}
	geyser := open("Geyser", "emergency")
	paint := open("Repaint", "low")
	open("Door lock", "high")

	_, err := f.svc.UpdateStatus(ctx, f.businessID, geyser, UpdateStatusRequest{Status: "in_progress"})
	require.NoError(t, err)
	done := time.Date(2026, 10, 12, 15, 0, 0, 0, time.UTC)
	cost := decimal.NewFromInt(4200)
	completed, err := f.svc.UpdateStatus(ctx, f.businessID, geyser, UpdateStatusRequest{
		Status: "completed", CompletedDate: &done, ActualCost: &cost,
	})
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedDate)
	assert.True(t, done.Equal(*completed.CompletedDate))

	_, err = f.svc.UpdateStatus(ctx, f.businessID, geyser, UpdateStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	_, err = f.svc.UpdateStatus(ctx, f.businessID, paint, UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx, f.businessID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.Cancelled)
	assert.Equal(t, int64(2), stats.HighPriority)
	assert.True(t, stats.TotalCost.Equal(cost))

	items, total, err := f.svc.List(ctx, f.businessID, RequestListFilter{Priority: "high"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Door lock", items[0].Title)
}

func TestService_UpdateAndDelete(t *testing.T) {
	f := newMaintenanceFixture(t)
	ctx := context.Background()
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	r, err := f.svc.Create(ctx, f.businessID, CreateRequestRequest{UnitID: f.unitID, Title: "Sink", Description: "Blocked sink"})
	require.NoError(t, err)
	assert.Equal(t, "medium", r.Priority)

	assignee := "Juma Plumbing"
	when := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	updated, err := f.svc.Update(ctx, f.businessID, r.ID, UpdateRequestRequest{AssignedTo: &assignee, ScheduledDate: &when})
	require.NoError(t, err)
	assert.Equal(t, assignee, updated.AssignedTo)
	assert.Equal(t, "Blocked sink", updated.Description)
	require.NotNil(t, updated.ScheduledDate)

	negative := decimal.NewFromInt(-1)
	_, err = f.svc.Update(ctx, f.businessID, r.ID, UpdateRequestRequest{EstimatedCost: &negative})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	require.NoError(t, f.svc.Delete(ctx, f.businessID, r.ID))
	_, err = f.svc.GetByID(ctx, f.businessID, r.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.publisher.AssertCalled(t, "Publish", mock.Anything, eventOfType(maintenance.EventTypeRequestDeleted))
}
