package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPayment(t *testing.T, db *gorm.DB, businessID, tenantID uuid.UUID, amount int64, paymentType rent.PaymentType, confirmed bool, period rent.Period) *rent.RentPayment {
	t.Helper()
	now := time.Date(period.Year, time.Month(period.Month), 5, 10, 0, 0, 0, time.UTC)
	p, err := rent.NewRentPayment(businessID, tenantID, uuid.New(), decimal.NewFromInt(amount), paymentType, rent.PaymentMethodCash, now, now, period)
	require.NoError(t, err)
	require.NoError(t, p.AssignNumbers(rent.NewReferenceNumber(now)+"-"+p.ID.String()[:4], rent.ReceiptPrefix(now)+"-"+p.ID.String()[:8]))
	if confirmed {
		require.NoError(t, p.Confirm("landlord", now))
	}
	require.NoError(t, NewGormPaymentRepository(db).Save(t.Context(), p))
	return p
}

func TestGormPaymentRepository_RoundTripWithBreakdown(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	businessID := uuid.New()

	p := seedPayment(t, db, businessID, uuid.New(), 1300, rent.PaymentTypeRent, false, rent.Period{Month: 10, Year: 2026})
	p.SetBreakdown(rent.Breakdown{
		Rent: decimal.NewFromInt(1000),
		Utilities: []rent.BreakdownLine{
			{UtilityID: uuid.New(), Name: "Water", Amount: decimal.NewFromInt(300), BillingCycle: "monthly"},
		},
		Total: decimal.NewFromInt(1300),
	})
	require.NoError(t, repo.Save(t.Context(), p))

	loaded, err := repo.FindByIDForBusiness(t.Context(), businessID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, rent.Period{Month: 10, Year: 2026}, loaded.Period)
	require.Len(t, loaded.Breakdown.Utilities, 1)
	assert.Equal(t, "Water", loaded.Breakdown.Utilities[0].Name)
	assert.True(t, loaded.Breakdown.Total.Equal(decimal.NewFromInt(1300)))
	assert.False(t, loaded.IsConfirmed)
}

func TestGormPaymentRepository_Aggregates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	businessID := uuid.New()
	tenantID := uuid.New()
	october := rent.Period{Month: 10, Year: 2026}
	september := rent.Period{Month: 9, Year: 2026}

	seedPayment(t, db, businessID, tenantID, 1000, rent.PaymentTypeRent, true, october)
	seedPayment(t, db, businessID, tenantID, 500, rent.PaymentTypeRent, true, september)
	seedPayment(t, db, businessID, tenantID, 700, rent.PaymentTypeRent, false, october)
	seedPayment(t, db, businessID, tenantID, 2000, rent.PaymentTypeDeposit, true, october)
	seedPayment(t, db, businessID, uuid.New(), 50, rent.PaymentTypeOther, true, october)
	seedPayment(t, db, uuid.New(), tenantID, 9999, rent.PaymentTypeRent, true, october)

	t.Run("confirmed rent of one tenant", func(t *testing.T) {
		total, err := repo.SumConfirmedRent(t.Context(), businessID, tenantID)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(1500)), total.String())
	})

	t.Run("totals by type for a month", func(t *testing.T) {
		totals, err := repo.TotalsByType(t.Context(), businessID, rent.SummaryFilter{Month: 10, Year: 2026})
		require.NoError(t, err)
		assert.Equal(t, int64(1), totals[rent.PaymentTypeRent].Count)
		assert.True(t, totals[rent.PaymentTypeRent].Amount.Equal(decimal.NewFromInt(1000)))
		assert.True(t, totals[rent.PaymentTypeDeposit].Amount.Equal(decimal.NewFromInt(2000)))
		assert.True(t, totals[rent.PaymentTypeOther].Amount.Equal(decimal.NewFromInt(50)))

		summary := rent.NewPaymentSummary(rent.SummaryFilter{Month: 10, Year: 2026}, totals)
		assert.Equal(t, int64(3), summary.TotalPayments)
		assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(3050)))
	})

	t.Run("unfiltered totals", func(t *testing.T) {
		totals, err := repo.TotalsByType(t.Context(), businessID, rent.SummaryFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), totals[rent.PaymentTypeRent].Count)
	})

	t.Run("list filters", func(t *testing.T) {
		filter := shared.DefaultFilter().
			WithFilter("tenant_id", tenantID.String()).
			WithFilter("is_confirmed", false)
		items, err := repo.FindAllForBusiness(t.Context(), businessID, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(700)))

		count, err := repo.CountForBusiness(t.Context(), businessID, shared.DefaultFilter().WithFilter("month", 9))
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormPaymentRepository_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	businessID := uuid.New()
	p := seedPayment(t, db, businessID, uuid.New(), 100, rent.PaymentTypeRent, false, rent.Period{Month: 1, Year: 2026})

	exists, err := repo.ExistsByReference(t.Context(), p.ReferenceNumber)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByReceipt(t.Context(), businessID, p.ReceiptNumber)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByReceipt(t.Context(), uuid.New(), p.ReceiptNumber)
	require.NoError(t, err)
	assert.False(t, exists)
}
