package property

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOccupancyCounter_Recompute(t *testing.T) {
	ctx := context.Background()
	businessID, propertyID := uuid.New(), uuid.New()
	props := new(MockPropertyRepository)
	units := new(MockUnitRepository)

	units.On("CountByStatus", ctx, businessID, propertyID).Return(map[property.UnitStatus]int{
		property.UnitStatusOccupied:    3,
		property.UnitStatusVacant:      2,
		property.UnitStatusMaintenance: 1,
		property.UnitStatusReserved:    1,
	}, nil)
	want := property.OccupancyCounts{Total: 7, Occupied: 3, Vacant: 2, Other: 2}
	props.On("SetCounts", ctx, businessID, propertyID, want).Return(nil)

	counts, err := NewOccupancyCounter(props, units, nil).Recompute(ctx, businessID, propertyID)
	require.NoError(t, err)
	assert.Equal(t, want, counts)
	assert.True(t, counts.IsConsistent())
	props.AssertExpectations(t)
	units.AssertExpectations(t)
}

func TestOccupancyCounter_Adjust(t *testing.T) {
	ctx := context.Background()
	businessID, propertyID := uuid.New(), uuid.New()
	props := new(MockPropertyRepository)
	props.On("AdjustCounts", ctx, businessID, propertyID, -1, 1).Return(nil)

	require.NoError(t, NewOccupancyCounter(props, new(MockUnitRepository), nil).Adjust(ctx, businessID, propertyID, -1, 1))
	props.AssertExpectations(t)
}

func TestOccupancyCounter_RecomputeAllContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	good := property.PropertyKey{BusinessID: uuid.New(), PropertyID: uuid.New()}
	bad := property.PropertyKey{BusinessID: uuid.New(), PropertyID: uuid.New()}
	props := new(MockPropertyRepository)
	units := new(MockUnitRepository)
	boom := errors.New("boom")

	props.On("ListKeys", ctx, uuid.Nil).Return([]property.PropertyKey{bad, good}, nil)
	units.On("CountByStatus", ctx, bad.BusinessID, bad.PropertyID).Return(nil, boom)
	units.On("CountByStatus", ctx, good.BusinessID, good.PropertyID).Return(map[property.UnitStatus]int{property.UnitStatusVacant: 1}, nil)
	props.On("SetCounts", ctx, good.BusinessID, good.PropertyID, mock.Anything).Return(nil)

	done, err := NewOccupancyCounter(props, units, nil).RecomputeAll(ctx, uuid.Nil)
	assert.Equal(t, 1, done)
	assert.ErrorIs(t, err, boom)
	props.AssertExpectations(t)
}
