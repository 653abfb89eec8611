package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUtility(t *testing.T, name string, cost int64, cycle BillingCycle) *Utility {
	t.Helper()
	u, err := NewUtility(uuid.New(), name, decimal.NewFromInt(cost), cycle)
	require.NoError(t, err)
	return u
}

func TestComputeMonthlyTotal(t *testing.T) {
	t.Run("rent plus included utilities normalized by cycle", func(t *testing.T) {
		unit := newTestUnit(t)
		water := mustUtility(t, "Water", 200, BillingCycleMonthly)
		security := mustUtility(t, "Security", 300, BillingCycleQuarterly)
		internet := mustUtility(t, "Internet", 90, BillingCycleMonthly)

		require.NoError(t, unit.AddOrReplaceUtility(water.ID, true, decimal.Zero))
		require.NoError(t, unit.AddOrReplaceUtility(security.ID, true, decimal.Zero))
		require.NoError(t, unit.AddOrReplaceUtility(internet.ID, false, decimal.Zero))

		catalog := map[uuid.UUID]*Utility{water.ID: water, security.ID: security, internet.ID: internet}
		got := ComputeMonthlyTotal(unit, catalog)

		assert.Equal(t, "1300.00", got.Total.StringFixed(2))
		assert.True(t, decimal.NewFromInt(1000).Equal(got.Rent))
		require.Len(t, got.Utilities, 2)
		assert.Equal(t, "Water", got.Utilities[0].Name)
		assert.True(t, decimal.NewFromInt(200).Equal(got.Utilities[0].Amount))
		assert.Equal(t, BillingCycleQuarterly, got.Utilities[1].BillingCycle)
		assert.True(t, decimal.NewFromInt(100).Equal(got.Utilities[1].Amount))
	})

	t.Run("unit charge overrides cost, annual and per-use", func(t *testing.T) {
		unit := newTestUnit(t)
		insurance := mustUtility(t, "Insurance", 1200, BillingCycleAnnually)
		gas := mustUtility(t, "Gas", 40, BillingCyclePerUse)
		parking := mustUtility(t, "Parking", 10, BillingCycleMonthly)

		require.NoError(t, unit.AddOrReplaceUtility(insurance.ID, true, decimal.NewFromInt(100)))
		require.NoError(t, unit.AddOrReplaceUtility(gas.ID, true, decimal.Zero))
		require.NoError(t, unit.AddOrReplaceUtility(parking.ID, true, decimal.NewFromInt(25)))

		got := ComputeMonthlyTotal(unit, UtilityCatalog([]Utility{*insurance, *gas, *parking}))

		// 1000 + 100/12 + 25 = 1033.333.. -> 1033.33
		assert.Equal(t, "1033.33", got.Total.StringFixed(2))
		require.Len(t, got.Utilities, 2)
		assert.Equal(t, "8.33", got.Utilities[0].Amount.StringFixed(2))
		assert.Equal(t, "Parking", got.Utilities[1].Name)
	})

	t.Run("zero cost and unknown utilities are left out", func(t *testing.T) {
		unit := newTestUnit(t)
		free := mustUtility(t, "Trash", 0, BillingCycleMonthly)
		require.NoError(t, unit.AddOrReplaceUtility(free.ID, true, decimal.Zero))
		require.NoError(t, unit.AddOrReplaceUtility(uuid.New(), true, decimal.NewFromInt(10)))

		got := ComputeMonthlyTotal(unit, UtilityCatalog([]Utility{*free}))
		assert.Empty(t, got.Utilities)
		assert.True(t, decimal.NewFromInt(1000).Equal(got.Total))
	})
}

func TestBillingCycle_MonthlyEquivalent(t *testing.T) {
	tests := []struct {
		cycle BillingCycle
		want  string
	}{
		{BillingCycleMonthly, "120.00"},
		{BillingCycleQuarterly, "40.00"},
		{BillingCycleAnnually, "10.00"},
		{BillingCyclePerUse, "0.00"},
	}
	for _, tt := range tests {
		t.Run(string(tt.cycle), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cycle.MonthlyEquivalent(decimal.NewFromInt(120)).StringFixed(2))
		})
	}
}
