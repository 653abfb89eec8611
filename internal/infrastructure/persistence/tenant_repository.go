package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByIDForBusiness finds a tenant by ID within a business
func (r *GormTenantRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*tenancy.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "tenant")
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness lists tenants. Supported filter keys: status, unit_id, property_id
func (r *GormTenantRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]tenancy.Tenant, error) {
	var rows []models.TenantModel
	if err := r.filtered(ctx, businessID, filter).Scopes(pageScope(filter, tenantSorts)).Find(&rows).Error; err != nil {
		return nil, translateError(err, "tenant")
	}
	out := make([]tenancy.Tenant, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountForBusiness counts tenants matching the filter
func (r *GormTenantRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, businessID, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "tenant")
	}
	return count, nil
}

func (r *GormTenantRepository) filtered(ctx context.Context, businessID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Scopes(businessScope(businessID), searchScope(filter.Search, "name", "phone", "email", "id_number"))
	if v, ok := stringFilter(filter, "status"); ok {
		q = q.Where("status = ?", v)
	}
	if v, ok := stringFilter(filter, "unit_id"); ok {
		q = q.Where("unit_id = ?", v)
	}
	if v, ok := stringFilter(filter, "property_id"); ok {
		q = q.Where("unit_id IN (?)",
			r.db.Model(&models.UnitModel{}).Select("id").Where("property_id = ?", v))
	}
	return q
}

// CountByUnit counts tenants of any status that reference a unit
func (r *GormTenantRepository) CountByUnit(ctx context.Context, businessID, unitID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Scopes(businessScope(businessID)).
		Where("unit_id = ?", unitID).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err, "tenant")
	}
	return count, nil
}

// ExistsByIDNumber checks for an ID number within a business, ignoring excludeID
func (r *GormTenantRepository) ExistsByIDNumber(ctx context.Context, businessID uuid.UUID, idNumber string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Scopes(businessScope(businessID)).
		Where("id_number = ?", idNumber)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err, "tenant")
	}
	return count > 0, nil
}

// SumOutstanding totals positive balances of tenants in a business
func (r *GormTenantRepository) SumOutstanding(ctx context.Context, businessID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Scopes(businessScope(businessID)).
		Where("balance > 0").
		Select("COALESCE(SUM(balance), 0)").
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, translateError(err, "tenant")
	}
	return total, nil
}

// Save creates or overwrites a tenant
func (r *GormTenantRepository) Save(ctx context.Context, t *tenancy.Tenant) error {
	return translateError(r.db.WithContext(ctx).Save(models.TenantModelFromDomain(t)).Error, "tenant")
}

// SaveWithLock updates a tenant only if the stored version is t.Version-1
func (r *GormTenantRepository) SaveWithLock(ctx context.Context, t *tenancy.Tenant) error {
	model := models.TenantModelFromDomain(t)
	result := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("id = ? AND business_id = ? AND version = ?", t.ID, t.BusinessID, t.Version-1).
		Select("*").
		Omit("id", "created_at", "business_id").
		Updates(model)
	return lockResult(result, "tenant")
}

// DeleteForBusiness deletes a tenant within a business
func (r *GormTenantRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).Delete(&models.TenantModel{})
	if result.Error != nil {
		return translateError(result.Error, "tenant")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ tenancy.TenantRepository = (*GormTenantRepository)(nil)
