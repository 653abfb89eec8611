package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTenantRepository_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTenantRepository(db)
	businessID := uuid.New()
	p := seedProperty(t, db, businessID, "Palm Court")
	u := seedUnit(t, db, businessID, p.ID, "A1")

	tn := seedTenant(t, db, businessID, u.ID, "ID-001", 1200)
	require.NoError(t, tn.AddDocument("tenants/lease.pdf"))
	require.NoError(t, repo.SaveWithLock(t.Context(), tn))

	loaded, err := repo.FindByIDForBusiness(t.Context(), businessID, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, "ID-001", loaded.IDNumber)
	assert.Equal(t, "1200", loaded.Balance.String())
	assert.Equal(t, tenancy.TenantStatusActive, loaded.Status)
	assert.Equal(t, []string{"tenants/lease.pdf"}, loaded.Documents)
	assert.Nil(t, loaded.MoveOutDate)
}

func TestGormTenantRepository_SaveWithLockConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTenantRepository(db)
	businessID := uuid.New()
	tn := seedTenant(t, db, businessID, uuid.New(), "ID-001", 0)

	stale, err := repo.FindByIDForBusiness(t.Context(), businessID, tn.ID)
	require.NoError(t, err)

	tn.ApplyPayment(decimal.NewFromInt(100), uuid.New())
	require.NoError(t, repo.SaveWithLock(t.Context(), tn))

	stale.ApplyPayment(decimal.NewFromInt(100), uuid.New())
	assert.ErrorIs(t, repo.SaveWithLock(t.Context(), stale), shared.ErrConcurrencyConflict)
}

func TestGormTenantRepository_IDNumberUniquePerBusiness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTenantRepository(db)
	businessID := uuid.New()
	seedTenant(t, db, businessID, uuid.New(), "ID-7001", 0)

	t.Run("same business is rejected", func(t *testing.T) {
		dup, err := tenancy.NewTenant(businessID, uuid.New(), "Brian Kamau", "+254700000002", "ID-7001", decimal.NewFromInt(900), time.Now())
		require.NoError(t, err)
		err = repo.Save(t.Context(), dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		count, err := repo.CountForBusiness(t.Context(), businessID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("other business may reuse the number", func(t *testing.T) {
		other, err := tenancy.NewTenant(uuid.New(), uuid.New(), "Brian Kamau", "+254700000002", "ID-7001", decimal.NewFromInt(900), time.Now())
		require.NoError(t, err)
		assert.NoError(t, repo.Save(t.Context(), other))
	})

	t.Run("resaving the same tenant is not a duplicate", func(t *testing.T) {
		tn := seedTenant(t, db, businessID, uuid.New(), "ID-7002", 0)
		tn.Phone = "+254700000003"
		assert.NoError(t, repo.Save(t.Context(), tn))
	})
}

func TestGormTenantRepository_Queries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTenantRepository(db)
	businessID := uuid.New()
	palm := seedProperty(t, db, businessID, "Palm Court")
	cedar := seedProperty(t, db, businessID, "Cedar Heights")
	a1 := seedUnit(t, db, businessID, palm.ID, "A1")
	b1 := seedUnit(t, db, businessID, cedar.ID, "B1")

	seedTenant(t, db, businessID, a1.ID, "ID-001", 500)
	seedTenant(t, db, businessID, a1.ID, "ID-002", -200)
	seedTenant(t, db, businessID, b1.ID, "ID-003", 250)
	seedTenant(t, db, uuid.New(), uuid.New(), "ID-001", 9999)

	t.Run("count by unit includes every status", func(t *testing.T) {
		count, err := repo.CountByUnit(t.Context(), businessID, a1.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("property filter", func(t *testing.T) {
		filter := shared.DefaultFilter().WithFilter("property_id", cedar.ID.String())
		items, err := repo.FindAllForBusiness(t.Context(), businessID, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "ID-003", items[0].IDNumber)
	})

	t.Run("outstanding ignores credit balances and other businesses", func(t *testing.T) {
		total, err := repo.SumOutstanding(t.Context(), businessID)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(750)), total.String())
	})

	t.Run("id number uniqueness is per business", func(t *testing.T) {
		exists, err := repo.ExistsByIDNumber(t.Context(), businessID, "ID-001", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByIDNumber(t.Context(), uuid.New(), "ID-003", uuid.Nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
