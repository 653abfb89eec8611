package persistence

import (
	"context"

	"github.com/rentdesk/backend/internal/application/txscope"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos txscope.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Properties() property.PropertyRepository {
	return NewGormPropertyRepository(r.tx)
}

func (r *gormTransactionalRepositories) Units() property.UnitRepository {
	return NewGormUnitRepository(r.tx)
}

func (r *gormTransactionalRepositories) Utilities() property.UtilityRepository {
	return NewGormUtilityRepository(r.tx)
}

func (r *gormTransactionalRepositories) Tenants() tenancy.TenantRepository {
	return NewGormTenantRepository(r.tx)
}

func (r *gormTransactionalRepositories) Leases() tenancy.LeaseRepository {
	return NewGormLeaseRepository(r.tx)
}

func (r *gormTransactionalRepositories) Payments() rent.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormTransactionalRepositories) ReceiptSequencer() rent.ReceiptSequencer {
	return NewGormReceiptSequencer(r.tx)
}

var _ txscope.TransactionScope = (*GormTransactionScope)(nil)
var _ txscope.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
