package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}),
		&gorm.Config{SkipDefaultTransaction: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	db, err := wrap(gormDB)
	require.NoError(t, err)
	return db, mock, mockDB
}

func TestDatabase_Check(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		db, mock, _ := newMockDatabase(t)
		mock.ExpectPing()
		assert.NoError(t, db.Check(context.Background()))
		assert.Same(t, db.SQL(), db.sql)
	})

	t.Run("unreachable is unavailable", func(t *testing.T) {
		db, mock, _ := newMockDatabase(t)
		mock.ExpectPing().WillReturnError(errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

		err := db.Check(context.Background())
		assert.ErrorIs(t, err, shared.ErrUnavailable)
		assert.Contains(t, err.Error(), "connections in use")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("close", func(t *testing.T) {
		db, mock, _ := newMockDatabase(t)
		mock.ExpectClose()
		assert.NoError(t, db.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// The property counters must be adjusted in place so two concurrent tenant
// moves on the same property never lose an update.
func TestGormPropertyRepository_AdjustCountsIsSingleAtomicUpdate(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormPropertyRepository(db.DB)

	mock.ExpectExec(`UPDATE "properties" SET "occupied_units"=occupied_units \+ \$1,"updated_at"=\$2,"vacant_units"=vacant_units \+ \$3 WHERE`).
		WithArgs(1, sqlmock.AnyArg(), -1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AdjustCounts(context.Background(), uuid.New(), uuid.New(), 1, -1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTenantRepository_SaveWithLockChecksVersion(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormTenantRepository(db.DB)

	tn, err := tenancy.NewTenant(uuid.New(), uuid.New(), "Amina Otieno", "+254700000001", "ID-001", decimal.NewFromInt(1000), time.Now())
	require.NoError(t, err)
	tn.Version = 5

	mock.ExpectExec(`UPDATE "tenants" SET .* WHERE .*version = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SaveWithLock(context.Background(), tn)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
