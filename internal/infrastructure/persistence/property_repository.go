package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByIDForBusiness finds a property by ID within a business
func (r *GormPropertyRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "property")
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness lists properties. Supported filter keys: status, property_type, city
func (r *GormPropertyRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]property.Property, error) {
	var rows []models.PropertyModel
	err := r.filtered(ctx, businessID, filter).Scopes(pageScope(filter, propertySorts)).Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "property")
	}
	out := make([]property.Property, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountForBusiness counts properties matching the filter
func (r *GormPropertyRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, businessID, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "property")
	}
	return count, nil
}

func (r *GormPropertyRepository) filtered(ctx context.Context, businessID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Scopes(businessScope(businessID), searchScope(filter.Search, "name", "address", "city"))
	if v, ok := stringFilter(filter, "status"); ok {
		q = q.Where("status = ?", v)
	}
	if v, ok := stringFilter(filter, "property_type"); ok {
		q = q.Where("property_type = ?", v)
	}
	if v, ok := stringFilter(filter, "city"); ok {
		q = q.Where("city = ?", v)
	}
	if v, ok := stringFilter(filter, "landlord_id"); ok {
		q = q.Where("landlord_id = ?", v)
	}
	return q
}

// ListKeys returns every property key; uuid.Nil lists all businesses
func (r *GormPropertyRepository) ListKeys(ctx context.Context, businessID uuid.UUID) ([]property.PropertyKey, error) {
	var rows []struct {
		BusinessID uuid.UUID
		ID         uuid.UUID
	}
	err := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Scopes(optionalBusinessScope(businessID)).
		Select("business_id, id").
		Order("business_id, id").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "property")
	}
	keys := make([]property.PropertyKey, len(rows))
	for i, row := range rows {
		keys[i] = property.PropertyKey{BusinessID: row.BusinessID, PropertyID: row.ID}
	}
	return keys, nil
}

// Save creates or updates a property. The unit counters are left to
// SetCounts and AdjustCounts.
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	err := r.db.WithContext(ctx).
		Omit(propertyCounterColumns...).
		Save(models.PropertyModelFromDomain(p)).Error
	return translateError(err, "property")
}

var propertyCounterColumns = []string{"total_units", "occupied_units", "vacant_units", "other_units"}

// DeleteForBusiness deletes a property within a business
func (r *GormPropertyRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).Delete(&models.PropertyModel{})
	if result.Error != nil {
		return translateError(result.Error, "property")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetCounts overwrites the unit counters
func (r *GormPropertyRepository) SetCounts(ctx context.Context, businessID, id uuid.UUID, counts property.OccupancyCounts) error {
	result := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Scopes(businessScope(businessID)).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"total_units":    counts.Total,
			"occupied_units": counts.Occupied,
			"vacant_units":   counts.Vacant,
			"other_units":    counts.Other,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error, "property")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AdjustCounts applies deltas to the occupied and vacant counters in one UPDATE
func (r *GormPropertyRepository) AdjustCounts(ctx context.Context, businessID, id uuid.UUID, occupiedDelta, vacantDelta int) error {
	result := r.db.WithContext(ctx).Model(&models.PropertyModel{}).
		Scopes(businessScope(businessID)).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"occupied_units": gorm.Expr("occupied_units + ?", occupiedDelta),
			"vacant_units":   gorm.Expr("vacant_units + ?", vacantDelta),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error, "property")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ property.PropertyRepository = (*GormPropertyRepository)(nil)
