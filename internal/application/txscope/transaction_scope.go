// Package txscope lets application services run multi-aggregate workflows
// (tenant moves, payment confirmation) inside one database transaction.
package txscope

import (
	"context"

	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/tenancy"
)

// TransactionScope provides transactional access to the occupancy and billing repositories.
// All repository operations performed inside Execute are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories sharing one database transaction
type TransactionalRepositories interface {
	Properties() property.PropertyRepository
	Units() property.UnitRepository
	Utilities() property.UtilityRepository
	Tenants() tenancy.TenantRepository
	Leases() tenancy.LeaseRepository
	Payments() rent.PaymentRepository
	ReceiptSequencer() rent.ReceiptSequencer
}

// Repositories is a plain bundle of repositories
type Repositories struct {
	PropertyRepo    property.PropertyRepository
	UnitRepo        property.UnitRepository
	UtilityRepo     property.UtilityRepository
	TenantRepo      tenancy.TenantRepository
	LeaseRepo       tenancy.LeaseRepository
	PaymentRepo     rent.PaymentRepository
	ReceiptSequence rent.ReceiptSequencer
}

// NoOpTransactionScope runs fn directly against the given repositories without a transaction.
// It is used in unit tests with mocked repositories.
type NoOpTransactionScope struct {
	repos Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Properties() property.PropertyRepository { return s.repos.PropertyRepo }
func (s *NoOpTransactionScope) Units() property.UnitRepository { return s.repos.UnitRepo }
func (s *NoOpTransactionScope) Utilities() property.UtilityRepository { return s.repos.UtilityRepo }
func (s *NoOpTransactionScope) Tenants() tenancy.TenantRepository { return s.repos.TenantRepo }
func (s *NoOpTransactionScope) Leases() tenancy.LeaseRepository { return s.repos.LeaseRepo }
func (s *NoOpTransactionScope) Payments() rent.PaymentRepository { return s.repos.PaymentRepo }
func (s *NoOpTransactionScope) ReceiptSequencer() rent.ReceiptSequencer { return s.repos.ReceiptSequence }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
