package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	propertyapp "github.com/rentdesk/backend/internal/application/property"
	rentapp "github.com/rentdesk/backend/internal/application/rent"
	tenancyapp "github.com/rentdesk/backend/internal/application/tenancy"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

type services struct {
	properties *propertyapp.PropertyService
	units      *propertyapp.UnitService
	tenants    *tenancyapp.TenantService
	payments   *rentapp.PaymentService
	counter    *propertyapp.OccupancyCounter
}

func newServices(t *testing.T) *services {
	t.Helper()
	db := NewSharedTestDB(t).DB

	propertyRepo := persistence.NewGormPropertyRepository(db)
	unitRepo := persistence.NewGormUnitRepository(db)
	utilityRepo := persistence.NewGormUtilityRepository(db)
	tenantRepo := persistence.NewGormTenantRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	txScope := persistence.NewGormTransactionScope(db)
	counter := propertyapp.NewOccupancyCounter(propertyRepo, unitRepo, nil)

	return &services{
		properties: propertyapp.NewPropertyService(propertyRepo, unitRepo, counter, nil),
		units:      propertyapp.NewUnitService(unitRepo, propertyRepo, utilityRepo, tenantRepo, txScope, counter, nil),
		tenants:    tenancyapp.NewTenantService(tenantRepo, unitRepo, utilityRepo, paymentRepo, txScope, counter, nil),
		payments:   rentapp.NewPaymentService(paymentRepo, tenantRepo, unitRepo, utilityRepo, propertyRepo, txScope, nil),
		counter:    counter,
	}
}

func (s *services) seedUnits(t *testing.T, businessID uuid.UUID, n int) (*propertyapp.PropertyResponse, []*propertyapp.UnitResponse) {
	t.Helper()
	ctx := t.Context()
	p, err := s.properties.Create(ctx, businessID, propertyapp.CreatePropertyRequest{
		Name: "Kileleshwa Court", Address: "14 Othaya Rd", Type: "apartment", LandlordName: "Grace Achieng",
	})
	require.NoError(t, err)

	units := make([]*propertyapp.UnitResponse, 0, n)
	for i := range n {
		u, err := s.units.Create(ctx, businessID, propertyapp.CreateUnitRequest{
			PropertyID: p.ID,
			UnitNumber: fmt.Sprintf("B%d", i+1),
			Type:       "1bed",
			Rent:       decimal.NewFromInt(18000),
			Deposit:    decimal.NewFromInt(18000),
		})
		require.NoError(t, err)
		units = append(units, u)
	}
	return p, units
}

func (s *services) moveIn(ctx context.Context, businessID, unitID uuid.UUID, n int) (*tenancyapp.TenantResponse, error) {
	return s.tenants.Create(ctx, businessID, tenancyapp.CreateTenantRequest{
		UnitID:   unitID,
		Name:     fmt.Sprintf("Tenant %d", n),
		Phone:    fmt.Sprintf("+2547000000%02d", n),
		IDNumber: fmt.Sprintf("ID-%04d", n),
	})
}

func TestOccupancy_CountsFollowMoves(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	s := newServices(t)
	ctx := t.Context()
	businessID := uuid.New()
	p, units := s.seedUnits(t, businessID, 3)

	first, err := s.moveIn(ctx, businessID, units[0].ID, 1)
	require.NoError(t, err)
	_, err = s.moveIn(ctx, businessID, units[1].ID, 2)
	require.NoError(t, err)

	got, err := s.properties.GetByID(ctx, businessID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalUnits)
	assert.Equal(t, 2, got.OccupiedUnits)
	assert.Equal(t, 1, got.VacantUnits)

	_, err = s.tenants.UpdateStatus(ctx, businessID, first.ID, tenancyapp.UpdateTenantStatusRequest{Status: "moved_out"})
	require.NoError(t, err)

	got, err = s.properties.GetByID(ctx, businessID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OccupiedUnits)
	assert.Equal(t, 2, got.VacantUnits)

	unit, err := s.units.GetByID(ctx, businessID, units[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "vacant", unit.Status)
	require.NotNil(t, unit.LastTenantID)
	assert.Equal(t, first.ID, *unit.LastTenantID)

	// the reconciler agrees with the incremental counters
	n, err := s.counter.RecomputeAll(ctx, businessID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	again, err := s.properties.GetByID(ctx, businessID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, got.OccupiedUnits, again.OccupiedUnits)
	assert.Equal(t, got.VacantUnits, again.VacantUnits)
}

func TestOccupancy_ConcurrentMoveInsKeepOneTenant(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	s := newServices(t)
	ctx := t.Context()
	businessID := uuid.New()
	p, units := s.seedUnits(t, businessID, 1)

	const workers = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded []uuid.UUID
		failures  []error
	)
	for i := range workers {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			tenant, err := s.moveIn(ctx, businessID, units[0].ID, n)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			succeeded = append(succeeded, tenant.ID)
		}(i + 10)
	}
	wg.Wait()

	require.Len(t, succeeded, 1)
	for _, err := range failures {
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr), "unexpected error: %v", err)
	}

	unit, err := s.units.GetByID(ctx, businessID, units[0].ID)
	require.NoError(t, err)
	require.NotNil(t, unit.CurrentTenantID)
	assert.Equal(t, succeeded[0], *unit.CurrentTenantID)

	got, err := s.properties.GetByID(ctx, businessID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OccupiedUnits)
	assert.Equal(t, 0, got.VacantUnits)
}

func TestTenants_ConcurrentSameIDNumberKeepsOne(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	s := newServices(t)
	ctx := t.Context()
	businessID := uuid.New()
	p, units := s.seedUnits(t, businessID, 4)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded []uuid.UUID
		failures  []error
	)
	for _, u := range units {
		wg.Add(1)
		go func(unitID uuid.UUID) {
			defer wg.Done()
			// every request carries the same ID number
			tenant, err := s.moveIn(ctx, businessID, unitID, 77)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			succeeded = append(succeeded, tenant.ID)
		}(u.ID)
	}
	wg.Wait()

	require.Len(t, succeeded, 1)
	require.Len(t, failures, len(units)-1)
	for _, err := range failures {
		assert.ErrorIs(t, err, shared.ErrConflict, "unexpected error: %v", err)
	}

	got, err := s.properties.GetByID(ctx, businessID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OccupiedUnits)
	assert.Equal(t, len(units)-1, got.VacantUnits)
}

func TestPayments_ConcurrentReceiptNumbersAreUnique(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	s := newServices(t)
	ctx := t.Context()
	businessID := uuid.New()
	_, units := s.seedUnits(t, businessID, 1)
	tenant, err := s.moveIn(ctx, businessID, units[0].ID, 1)
	require.NoError(t, err)

	const payments = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		receipts = map[string]bool{}
		errs     []error
	)
	for range payments {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.payments.Record(ctx, businessID, rentapp.RecordPaymentRequest{
				TenantID:    tenant.ID,
				Amount:      decimal.NewFromInt(1000),
				PaymentType: "rent",
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			receipts[p.ReceiptNumber] = true
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, receipts, payments)

	_, total, err := s.payments.ListByTenant(ctx, businessID, tenant.ID, rentapp.PaymentListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, payments, total)
}

func TestBusinessIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	s := newServices(t)
	ctx := t.Context()
	owner, other := uuid.New(), uuid.New()
	p, units := s.seedUnits(t, owner, 1)

	_, err := s.properties.GetByID(ctx, other, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = s.units.GetByID(ctx, other, units[0].ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = s.moveIn(ctx, other, units[0].ID, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	list, total, err := s.units.List(ctx, other, propertyapp.UnitListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}
