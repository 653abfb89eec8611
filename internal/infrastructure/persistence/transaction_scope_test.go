package persistence

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/application/txscope"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope_RollsBackEveryStep(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)
	businessID := uuid.New()
	p := seedProperty(t, db, businessID, "Palm Court")
	u := seedUnit(t, db, businessID, p.ID, "A1")
	tenantID := uuid.New()

	failure := errors.New("boom")
	err := scope.Execute(t.Context(), func(repos txscope.TransactionalRepositories) error {
		unit, err := repos.Units().FindByIDForBusiness(t.Context(), businessID, u.ID)
		if err != nil {
			return err
		}
		if err := unit.SetOccupied(tenantID); err != nil {
			return err
		}
		if err := repos.Units().SaveWithLock(t.Context(), unit); err != nil {
			return err
		}
		if err := repos.Properties().AdjustCounts(t.Context(), businessID, p.ID, 1, -1); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	unit, err := NewGormUnitRepository(db).FindByIDForBusiness(t.Context(), businessID, u.ID)
	require.NoError(t, err)
	assert.True(t, unit.IsVacant())
	assert.Equal(t, 1, unit.Version)

	prop, err := NewGormPropertyRepository(db).FindByIDForBusiness(t.Context(), businessID, p.ID)
	require.NoError(t, err)
	assert.Zero(t, prop.Counts.Occupied)
}

func TestGormTransactionScope_Commits(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)
	businessID := uuid.New()
	p := seedProperty(t, db, businessID, "Palm Court")

	var receipt int64
	err := scope.Execute(t.Context(), func(repos txscope.TransactionalRepositories) error {
		if err := repos.Properties().AdjustCounts(t.Context(), businessID, p.ID, 1, 0); err != nil {
			return err
		}
		n, err := repos.ReceiptSequencer().Next(t.Context(), businessID, "RCPT-2610")
		receipt = n
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), receipt)

	prop, err := NewGormPropertyRepository(db).FindByIDForBusiness(t.Context(), businessID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, prop.Counts.Occupied)

	_, err = NewGormTenantRepository(db).FindByIDForBusiness(t.Context(), businessID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
