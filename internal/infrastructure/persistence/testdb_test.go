package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates a file-backed SQLite database with every table migrated.
// A single connection serialises access the way row locks would on Postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "rentdesk.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func seedProperty(t *testing.T, db *gorm.DB, businessID uuid.UUID, name string) *property.Property {
	t.Helper()
	p, err := property.NewProperty(businessID, name, "1 Harbour Road", property.PropertyTypeApartment)
	require.NoError(t, err)
	require.NoError(t, NewGormPropertyRepository(db).Save(t.Context(), p))
	return p
}

func seedUnit(t *testing.T, db *gorm.DB, businessID, propertyID uuid.UUID, number string) *property.Unit {
	t.Helper()
	u, err := property.NewUnit(businessID, propertyID, number, property.UnitTypeOneBed, decimal.NewFromInt(1000), decimal.NewFromInt(2000))
	require.NoError(t, err)
	require.NoError(t, NewGormUnitRepository(db).Save(t.Context(), u))
	return u
}

func seedTenant(t *testing.T, db *gorm.DB, businessID, unitID uuid.UUID, idNumber string, balance int64) *tenancy.Tenant {
	t.Helper()
	tn, err := tenancy.NewTenant(businessID, unitID, "Amina Otieno", "+254700000001", idNumber, decimal.NewFromInt(1000), time.Now())
	require.NoError(t, err)
	tn.Balance = decimal.NewFromInt(balance)
	require.NoError(t, NewGormTenantRepository(db).Save(t.Context(), tn))
	return tn
}
