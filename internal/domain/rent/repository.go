package rent

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines the interface for rent payment persistence
type PaymentRepository interface {
	// FindByIDForBusiness finds a payment by ID within a business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*RentPayment, error)

	// FindAllForBusiness lists payments. Supported filter keys:
	// tenant_id, unit_id, payment_type, is_confirmed, month, year
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]RentPayment, error)

	// CountForBusiness counts payments matching the filter
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByReference checks whether a reference number is taken
	ExistsByReference(ctx context.Context, reference string) (bool, error)

	// ExistsByReceipt checks whether a receipt number is taken within a business
	ExistsByReceipt(ctx context.Context, businessID uuid.UUID, receipt string) (bool, error)

	// SumConfirmedRent totals confirmed rent payments of a tenant
	SumConfirmedRent(ctx context.Context, businessID, tenantID uuid.UUID) (decimal.Decimal, error)

	// TotalsByType aggregates confirmed payments per type
	TotalsByType(ctx context.Context, businessID uuid.UUID, filter SummaryFilter) (map[PaymentType]TypeTotal, error)

	// Save creates or overwrites a payment
	Save(ctx context.Context, payment *RentPayment) error

	// SaveWithLock updates a payment only if the stored version is payment.Version-1
	SaveWithLock(ctx context.Context, payment *RentPayment) error

	// DeleteForBusiness deletes a payment within a business
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error
}
