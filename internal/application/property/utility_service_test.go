package property

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUtilityService_Create(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()

	t.Run("rejects duplicate names", func(t *testing.T) {
		utilities := new(MockUtilityRepository)
		utilities.On("ExistsByName", ctx, businessID, "Water", uuid.Nil).Return(true, nil)

		_, err := NewUtilityService(utilities, new(MockUnitRepository)).Create(ctx, businessID, CreateUtilityRequest{
			Name: "Water", UnitCost: decimal.NewFromInt(300), BillingCycle: "monthly",
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		utilities.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("saves a new utility", func(t *testing.T) {
		utilities := new(MockUtilityRepository)
		utilities.On("ExistsByName", ctx, businessID, "Internet", uuid.Nil).Return(false, nil)
		utilities.On("Save", ctx, mock.AnythingOfType("*property.Utility")).Return(nil)

		resp, err := NewUtilityService(utilities, new(MockUnitRepository)).Create(ctx, businessID, CreateUtilityRequest{
			Name: "Internet", UnitCost: decimal.NewFromInt(2400), BillingCycle: "quarterly",
		})
		require.NoError(t, err)
		assert.Equal(t, "quarterly", resp.BillingCycle)
		assert.True(t, resp.IsActive)
		utilities.AssertExpectations(t)
	})
}

func TestUtilityService_DeleteBlockedWhileAttached(t *testing.T) {
	ctx := context.Background()
	businessID := uuid.New()
	utility, err := property.NewUtility(businessID, "Water", decimal.NewFromInt(300), property.BillingCycleMonthly)
	require.NoError(t, err)

	utilities := new(MockUtilityRepository)
	units := new(MockUnitRepository)
	utilities.On("FindByIDForBusiness", ctx, businessID, utility.ID).Return(utility, nil)
	units.On("CountUsingUtility", ctx, businessID, utility.ID).Return(int64(2), nil)

	err = NewUtilityService(utilities, units).Delete(ctx, businessID, utility.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)
	utilities.AssertNotCalled(t, "DeleteForBusiness", mock.Anything, mock.Anything, mock.Anything)
}
