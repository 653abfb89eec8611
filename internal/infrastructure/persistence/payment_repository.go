package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByIDForBusiness finds a payment by ID within a business
func (r *GormPaymentRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*rent.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "payment")
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness lists payments matching the filter
func (r *GormPaymentRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]rent.RentPayment, error) {
	var rows []models.RentPaymentModel
	if err := r.filtered(ctx, businessID, filter).Scopes(pageScope(filter, paymentSorts)).Find(&rows).Error; err != nil {
		return nil, translateError(err, "payment")
	}
	out := make([]rent.RentPayment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountForBusiness counts payments matching the filter
func (r *GormPaymentRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, businessID, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "payment")
	}
	return count, nil
}

func (r *GormPaymentRepository) filtered(ctx context.Context, businessID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).
		Scopes(businessScope(businessID), searchScope(filter.Search, "reference_number", "receipt_number", "description"))
	if v, ok := stringFilter(filter, "tenant_id"); ok {
		q = q.Where("tenant_id = ?", v)
	}
	if v, ok := stringFilter(filter, "unit_id"); ok {
		q = q.Where("unit_id = ?", v)
	}
	if v, ok := stringFilter(filter, "payment_type"); ok {
		q = q.Where("payment_type = ?", v)
	}
	if v, ok := boolFilter(filter, "is_confirmed"); ok {
		q = q.Where("is_confirmed = ?", v)
	}
	if v, ok := intFilter(filter, "month"); ok && v > 0 {
		q = q.Where("month = ?", v)
	}
	if v, ok := intFilter(filter, "year"); ok && v > 0 {
		q = q.Where("year = ?", v)
	}
	return q
}

// ExistsByReference checks whether a reference number is taken
func (r *GormPaymentRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	return r.exists(ctx, "reference_number = ?", reference)
}

// ExistsByReceipt checks whether a receipt number is taken within a business
func (r *GormPaymentRepository) ExistsByReceipt(ctx context.Context, businessID uuid.UUID, receipt string) (bool, error) {
	return r.exists(ctx, "business_id = ? AND receipt_number = ?", businessID, receipt)
}

func (r *GormPaymentRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, translateError(err, "payment")
	}
	return count > 0, nil
}

// SumConfirmedRent totals confirmed rent payments of a tenant
func (r *GormPaymentRepository) SumConfirmedRent(ctx context.Context, businessID, tenantID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).
		Scopes(businessScope(businessID)).
		Where("tenant_id = ? AND payment_type = ? AND is_confirmed = ?", tenantID, rent.PaymentTypeRent, true).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, translateError(err, "payment")
	}
	return total, nil
}

// TotalsByType aggregates confirmed payments per type
func (r *GormPaymentRepository) TotalsByType(ctx context.Context, businessID uuid.UUID, filter rent.SummaryFilter) (map[rent.PaymentType]rent.TypeTotal, error) {
	var rows []struct {
		PaymentType rent.PaymentType
		Count       int64
		Amount      decimal.Decimal
	}
	q := r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).
		Scopes(businessScope(businessID)).
		Where("is_confirmed = ?", true)
	if filter.Month > 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year > 0 {
		q = q.Where("year = ?", filter.Year)
	}
	err := q.Select("payment_type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("payment_type").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "payment")
	}
	totals := make(map[rent.PaymentType]rent.TypeTotal, len(rows))
	for _, row := range rows {
		totals[row.PaymentType] = rent.TypeTotal{Count: row.Count, Amount: row.Amount}
	}
	return totals, nil
}

// Save creates or overwrites a payment
func (r *GormPaymentRepository) Save(ctx context.Context, p *rent.RentPayment) error {
	return translateError(r.db.WithContext(ctx).Save(models.RentPaymentModelFromDomain(p)).Error, "payment")
}

// SaveWithLock updates a payment only if the stored version is p.Version-1
func (r *GormPaymentRepository) SaveWithLock(ctx context.Context, p *rent.RentPayment) error {
	result := r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).
		Where("id = ? AND business_id = ? AND version = ?", p.ID, p.BusinessID, p.Version-1).
		Select("*").
		Omit("id", "created_at", "business_id").
		Updates(models.RentPaymentModelFromDomain(p))
	return lockResult(result, "payment")
}

// DeleteForBusiness deletes a payment within a business
func (r *GormPaymentRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).Delete(&models.RentPaymentModel{})
	if result.Error != nil {
		return translateError(result.Error, "payment")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ rent.PaymentRepository = (*GormPaymentRepository)(nil)
