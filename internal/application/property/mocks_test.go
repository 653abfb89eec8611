package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockPropertyRepository is a mock implementation of property.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]property.Property, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]property.Property), args.Error(1)
}

func (m *MockPropertyRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) ListKeys(ctx context.Context, businessID uuid.UUID) ([]property.PropertyKey, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]property.PropertyKey), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	return m.Called(ctx, businessID, id).Error(0)
}

func (m *MockPropertyRepository) SetCounts(ctx context.Context, businessID, id uuid.UUID, counts property.OccupancyCounts) error {
	return m.Called(ctx, businessID, id, counts).Error(0)
}

func (m *MockPropertyRepository) AdjustCounts(ctx context.Context, businessID, id uuid.UUID, occupiedDelta, vacantDelta int) error {
	return m.Called(ctx, businessID, id, occupiedDelta, vacantDelta).Error(0)
}

// MockUnitRepository is a mock implementation of property.UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*property.Unit, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]property.Unit, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]property.Unit), args.Error(1)
}

func (m *MockUnitRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) FindVacant(ctx context.Context, businessID uuid.UUID) ([]property.Unit, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]property.Unit), args.Error(1)
}

func (m *MockUnitRepository) CountByStatus(ctx context.Context, businessID, propertyID uuid.UUID) (map[property.UnitStatus]int, error) {
	args := m.Called(ctx, businessID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[property.UnitStatus]int), args.Error(1)
}

func (m *MockUnitRepository) CountUsingUtility(ctx context.Context, businessID, utilityID uuid.UUID) (int64, error) {
	args := m.Called(ctx, businessID, utilityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) ExistsByNumber(ctx context.Context, businessID, propertyID uuid.UUID, number string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, businessID, propertyID, number, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *property.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockUnitRepository) SaveWithLock(ctx context.Context, unit *property.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockUnitRepository) UpdateDaysVacant(ctx context.Context, id uuid.UUID, days int) error {
	return m.Called(ctx, id, days).Error(0)
}

func (m *MockUnitRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	return m.Called(ctx, businessID, id).Error(0)
}

// MockUtilityRepository is a mock implementation of property.UtilityRepository
type MockUtilityRepository struct {
	mock.Mock
}

func (m *MockUtilityRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*property.Utility, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Utility), args.Error(1)
}

func (m *MockUtilityRepository) FindByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]property.Utility, error) {
	args := m.Called(ctx, businessID, ids)
	return args.Get(0).([]property.Utility), args.Error(1)
}

func (m *MockUtilityRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]property.Utility, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]property.Utility), args.Error(1)
}

func (m *MockUtilityRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUtilityRepository) ExistsByName(ctx context.Context, businessID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, businessID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUtilityRepository) Save(ctx context.Context, utility *property.Utility) error {
	return m.Called(ctx, utility).Error(0)
}

func (m *MockUtilityRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	return m.Called(ctx, businessID, id).Error(0)
}
