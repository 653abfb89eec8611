// Package testutil provides shared fixtures for RentDesk tests: SQLite and
// sqlmock databases, an API client, and an event recorder.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDB is a postgres-dialect GORM handle whose statements are scripted
// through sqlmock.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB opens a MockDB that is closed when the test ends
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, DriverName: "postgres"}),
		&gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err, "Failed to open GORM over sqlmock")

	return &MockDB{DB: db, Mock: mock, SqlDB: conn}
}

// ExpectationsWereMet fails the test if a scripted statement never ran
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// NewTestUUID derives a deterministic UUID from seed
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("rentdesk/"+seed))
}

// TestBusinessID is the business most fixtures belong to
func TestBusinessID() uuid.UUID {
	return NewTestUUID("business")
}

// Money parses a decimal amount and panics on malformed input
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
