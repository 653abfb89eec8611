package landlord

import (
	"context"
	"testing"

	"github.com/google/uuid"
	appproperty "github.com/rentdesk/backend/internal/application/property"
	"github.com/rentdesk/backend/internal/domain/landlord"
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

type landlordFixture struct {
	svc        *Service
	properties *appproperty.PropertyService
	units      *appproperty.UnitService
	businessID uuid.UUID
}

func newLandlordFixture(t *testing.T) *landlordFixture {
	t.Helper()
	stack := testutil.NewStack(t)
	r := stack.Repos
	counter := appproperty.NewOccupancyCounter(r.PropertyRepo, r.UnitRepo, nil)
	properties := appproperty.NewPropertyService(r.PropertyRepo, r.UnitRepo, counter, nil)
	properties.SetLandlordRepository(stack.Landlords)
	return &landlordFixture{
		svc:        NewService(stack.Landlords, r.PropertyRepo, nil),
		properties: properties,
		units:      appproperty.NewUnitService(r.UnitRepo, r.PropertyRepo, r.UtilityRepo, r.TenantRepo, stack.Scope, counter, nil),
		businessID: uuid.New(),
	}
}

func (f *landlordFixture) register(t *testing.T, idNumber, email string) *LandlordResponse {
	t.Helper()
	l, err := f.svc.Create(context.Background(), f.businessID, CreateLandlordRequest{
		Name: "Grace Wanjiru", Phone: "+254711000001", IDNumber: idNumber, Email: email, Address: "12 Ngong Rd",
	})
	require.NoError(t, err)
	return l
}

func TestService_Create(t *testing.T) {
	f := newLandlordFixture(t)
	ctx := context.Background()
	publisher := new(MockEventPublisher)
	f.svc.SetEventPublisher(publisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == landlord.EventTypeLandlordRegistered
	})).Return(nil).Once()

	l, err := f.svc.Create(ctx, f.businessID, CreateLandlordRequest{
		Name: " Grace Wanjiru ", Phone: "+254711000001", IDNumber: "LL-1", Email: "Grace@Example.com", Address: "12 Ngong Rd",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace Wanjiru", l.Name)
	assert.Equal(t, "grace@example.com", l.Email)
	assert.Equal(t, "active", l.Status)
	publisher.AssertExpectations(t)

	t.Run("reused ID number", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.businessID, CreateLandlordRequest{
			Name: "Peter", Phone: "+254711000002", IDNumber: "LL-1", Email: "peter@example.com", Address: "1 Moi Ave",
		})
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("reused email", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.businessID, CreateLandlordRequest{
			Name: "Peter", Phone: "+254711000002", IDNumber: "LL-2", Email: "grace@example.com", Address: "1 Moi Ave",
		})
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("another business may reuse both", func(t *testing.T) {
		_, err := f.svc.Create(ctx, uuid.New(), CreateLandlordRequest{
			Name: "Grace", Phone: "+254711000001", IDNumber: "LL-1", Email: "grace@example.com", Address: "12 Ngong Rd",
		})
		assert.NoError(t, err)
	})

	t.Run("malformed email", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.businessID, CreateLandlordRequest{
			Name: "Peter", Phone: "+254711000002", IDNumber: "LL-3", Email: "peter.example.com", Address: "1 Moi Ave",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestService_UpdateAndStatus(t *testing.T) {
	f := newLandlordFixture(t)
	ctx := context.Background()
	first := f.register(t, "LL-1", "first@example.com")
	second := f.register(t, "LL-2", "second@example.com")

	phone := "+254722000000"
	updated, err := f.svc.Update(ctx, f.businessID, first.ID, UpdateLandlordRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "first@example.com", updated.Email)

	taken := "second@example.com"
	_, err = f.svc.Update(ctx, f.businessID, first.ID, UpdateLandlordRequest{Email: &taken})
	assert.ErrorIs(t, err, shared.ErrConflict)

	suspended, err := f.svc.UpdateStatus(ctx, f.businessID, second.ID, UpdateStatusRequest{Status: "suspended"})
	require.NoError(t, err)
	assert.Equal(t, "suspended", suspended.Status)

	items, total, err := f.svc.List(ctx, f.businessID, LandlordListFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)

	items, _, err = f.svc.List(ctx, f.businessID, LandlordListFilter{Search: "second@"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestService_PropertiesAndDelete(t *testing.T) {
	f := newLandlordFixture(t)
	ctx := context.Background()
	l := f.register(t, "LL-1", "owner@example.com")

	p, err := f.properties.Create(ctx, f.businessID, appproperty.CreatePropertyRequest{
		Name: "Palm Court", Address: "1 Harbour Rd", Type: "apartment", LandlordID: &l.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, p.LandlordID)
	assert.Equal(t, l.ID, *p.LandlordID)
	assert.Equal(t, "Grace Wanjiru", p.LandlordName)

	for _, number := range []string{"A1", "A2"} {
		_, err := f.units.Create(ctx, f.businessID, appproperty.CreateUnitRequest{
			PropertyID: p.ID, UnitNumber: number, Type: "1bed",
			Rent: decimal.NewFromInt(1000), Deposit: decimal.NewFromInt(1000),
		})
		require.NoError(t, err)
	}

	stats, err := f.svc.Stats(ctx, f.businessID, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProperties)
	assert.Equal(t, 2, stats.TotalUnits)
	assert.Equal(t, 2, stats.VacantUnits)

	t.Run("landlord of another business cannot be linked", func(t *testing.T) {
		foreign := uuid.New()
		_, err := f.properties.Create(ctx, uuid.New(), appproperty.CreatePropertyRequest{
			Name: "Elsewhere", Address: "2 Harbour Rd", Type: "apartment", LandlordID: &l.ID,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = f.svc.Stats(ctx, foreign, l.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	err = f.svc.Delete(ctx, f.businessID, l.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.Contains(t, err.Error(), "existing properties")

	unlink := uuid.Nil
	_, err = f.properties.Update(ctx, f.businessID, p.ID, appproperty.UpdatePropertyRequest{LandlordID: &unlink})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.businessID, l.ID))
	_, err = f.svc.GetByID(ctx, f.businessID, l.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
