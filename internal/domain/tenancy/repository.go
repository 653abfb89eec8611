package tenancy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByIDForBusiness finds a tenant by ID within a business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Tenant, error)

	// FindAllForBusiness lists tenants. Supported filter keys: status, unit_id, property_id
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Tenant, error)

	// CountForBusiness counts tenants matching the filter
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByUnit counts tenants of any status that reference a unit
	CountByUnit(ctx context.Context, businessID, unitID uuid.UUID) (int64, error)

	// ExistsByIDNumber checks for an ID number within a business, ignoring excludeID
	ExistsByIDNumber(ctx context.Context, businessID uuid.UUID, idNumber string, excludeID uuid.UUID) (bool, error)

	// SumOutstanding totals positive balances of tenants in a business
	SumOutstanding(ctx context.Context, businessID uuid.UUID) (decimal.Decimal, error)

	// Save creates or overwrites a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// SaveWithLock updates a tenant only if the stored version is tenant.Version-1
	SaveWithLock(ctx context.Context, tenant *Tenant) error

	// DeleteForBusiness deletes a tenant within a business
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error
}

// LeaseRepository defines the interface for lease persistence
type LeaseRepository interface {
	// FindByIDForBusiness finds a lease by ID within a business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Lease, error)

	// FindAllForBusiness lists leases. Supported filter keys: status, tenant_id, unit_id
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Lease, error)

	// CountForBusiness counts leases matching the filter
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)

	// FindExpiring lists active leases ending between from and to, soonest first
	FindExpiring(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]Lease, error)

	// FindOverdueActive lists active leases whose end date is before now, across businesses
	FindOverdueActive(ctx context.Context, now time.Time) ([]Lease, error)

	// Save creates or updates a lease
	Save(ctx context.Context, lease *Lease) error

	// SaveWithLock updates a lease only if the stored version is lease.Version-1
	SaveWithLock(ctx context.Context, lease *Lease) error

	// DeleteForBusiness deletes a lease within a business
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error
}
