package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeaseRepository implements LeaseRepository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// FindByIDForBusiness finds a lease by ID within a business
func (r *GormLeaseRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*tenancy.Lease, error) {
	var model models.LeaseModel
	if err := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "lease")
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness lists leases. Supported filter keys: status, tenant_id, unit_id
func (r *GormLeaseRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]tenancy.Lease, error) {
	var rows []models.LeaseModel
	if err := r.filtered(ctx, businessID, filter).Scopes(pageScope(filter, leaseSorts)).Find(&rows).Error; err != nil {
		return nil, translateError(err, "lease")
	}
	return leasesToDomain(rows), nil
}

// CountForBusiness counts leases matching the filter
func (r *GormLeaseRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, businessID, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "lease")
	}
	return count, nil
}

func (r *GormLeaseRepository) filtered(ctx context.Context, businessID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.LeaseModel{}).
		Scopes(businessScope(businessID), searchScope(filter.Search, "terms"))
	if v, ok := stringFilter(filter, "status"); ok {
		q = q.Where("status = ?", v)
	}
	if v, ok := stringFilter(filter, "tenant_id"); ok {
		q = q.Where("tenant_id = ?", v)
	}
	if v, ok := stringFilter(filter, "unit_id"); ok {
		q = q.Where("unit_id = ?", v)
	}
	return q
}

// FindExpiring lists active leases ending between from and to, soonest first
func (r *GormLeaseRepository) FindExpiring(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]tenancy.Lease, error) {
	var rows []models.LeaseModel
	err := r.db.WithContext(ctx).
		Scopes(businessScope(businessID)).
		Where("status = ? AND end_date >= ? AND end_date <= ?", tenancy.LeaseStatusActive, from, to).
		Order("end_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "lease")
	}
	return leasesToDomain(rows), nil
}

// FindOverdueActive lists active leases whose end date is before now, across businesses
func (r *GormLeaseRepository) FindOverdueActive(ctx context.Context, now time.Time) ([]tenancy.Lease, error) {
	var rows []models.LeaseModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", tenancy.LeaseStatusActive, now).
		Order("end_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "lease")
	}
	return leasesToDomain(rows), nil
}

// Save creates or updates a lease
func (r *GormLeaseRepository) Save(ctx context.Context, l *tenancy.Lease) error {
	return translateError(r.db.WithContext(ctx).Save(models.LeaseModelFromDomain(l)).Error, "lease")
}

// SaveWithLock updates a lease only if the stored version is l.Version-1
func (r *GormLeaseRepository) SaveWithLock(ctx context.Context, l *tenancy.Lease) error {
	result := r.db.WithContext(ctx).Model(&models.LeaseModel{}).
		Where("id = ? AND business_id = ? AND version = ?", l.ID, l.BusinessID, l.Version-1).
		Select("*").
		Omit("id", "created_at", "business_id").
		Updates(models.LeaseModelFromDomain(l))
	return lockResult(result, "lease")
}

// DeleteForBusiness deletes a lease within a business
func (r *GormLeaseRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).Delete(&models.LeaseModel{})
	if result.Error != nil {
		return translateError(result.Error, "lease")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func leasesToDomain(rows []models.LeaseModel) []tenancy.Lease {
	out := make([]tenancy.Lease, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ tenancy.LeaseRepository = (*GormLeaseRepository)(nil)
