package testutil

import (
	"path/filepath"
	"testing"

	"github.com/rentdesk/backend/internal/application/txscope"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a file-backed SQLite database in a temp dir with every
// table migrated. It uses a single connection so writers queue up the way
// row locks make them on Postgres.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "rentdesk.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "Failed to open SQLite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...), "Failed to migrate")
	return db
}

// Stack bundles the GORM repositories and transaction scope over one database
type Stack struct {
	DB            *gorm.DB
	Repos         txscope.Repositories
	Maintenance   *persistence.GormMaintenanceRepository
	Expenses      *persistence.GormExpenseRepository
	Landlords     *persistence.GormLandlordRepository
	Notifications *persistence.GormNotificationRepository
	Scope         txscope.TransactionScope
}

// NewStack builds a Stack on a fresh SQLite database
func NewStack(t *testing.T) *Stack {
	t.Helper()
	db := NewSQLiteDB(t)
	return &Stack{
		DB: db,
		Repos: txscope.Repositories{
			PropertyRepo:    persistence.NewGormPropertyRepository(db),
			UnitRepo:        persistence.NewGormUnitRepository(db),
			UtilityRepo:     persistence.NewGormUtilityRepository(db),
			TenantRepo:      persistence.NewGormTenantRepository(db),
			LeaseRepo:       persistence.NewGormLeaseRepository(db),
			PaymentRepo:     persistence.NewGormPaymentRepository(db),
			ReceiptSequence: persistence.NewGormReceiptSequencer(db),
		},
		Maintenance:   persistence.NewGormMaintenanceRepository(db),
		Expenses:      persistence.NewGormExpenseRepository(db),
		Landlords:     persistence.NewGormLandlordRepository(db),
		Notifications: persistence.NewGormNotificationRepository(db),
		Scope:         persistence.NewGormTransactionScope(db),
	}
}
