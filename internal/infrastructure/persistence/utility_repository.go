package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUtilityRepository implements UtilityRepository using GORM
type GormUtilityRepository struct {
	db *gorm.DB
}

// NewGormUtilityRepository creates a new GormUtilityRepository
func NewGormUtilityRepository(db *gorm.DB) *GormUtilityRepository {
	return &GormUtilityRepository{db: db}
}

// FindByIDForBusiness finds a utility by ID within a business
func (r *GormUtilityRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*property.Utility, error) {
	var model models.UtilityModel
	if err := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "utility")
	}
	return model.ToDomain(), nil
}

// FindByIDs loads several utilities at once. Unknown IDs are skipped.
func (r *GormUtilityRepository) FindByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]property.Utility, error) {
	if len(ids) == 0 {
		return []property.Utility{}, nil
	}
	var rows []models.UtilityModel
	if err := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translateError(err, "utility")
	}
	return utilitiesToDomain(rows), nil
}

// FindAllForBusiness lists utilities. Supported filter keys: billing_cycle, is_active
func (r *GormUtilityRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]property.Utility, error) {
	var rows []models.UtilityModel
	if err := r.filtered(ctx, businessID, filter).Scopes(pageScope(filter, utilitySorts)).Find(&rows).Error; err != nil {
		return nil, translateError(err, "utility")
	}
	return utilitiesToDomain(rows), nil
}

// CountForBusiness counts utilities matching the filter
func (r *GormUtilityRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, businessID, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "utility")
	}
	return count, nil
}

func (r *GormUtilityRepository) filtered(ctx context.Context, businessID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.UtilityModel{}).
		Scopes(businessScope(businessID), searchScope(filter.Search, "name", "description"))
	if v, ok := stringFilter(filter, "billing_cycle"); ok {
		q = q.Where("billing_cycle = ?", v)
	}
	if v, ok := boolFilter(filter, "is_active"); ok {
		q = q.Where("is_active = ?", v)
	}
	return q
}

// ExistsByName checks for a utility name within a business, ignoring excludeID
func (r *GormUtilityRepository) ExistsByName(ctx context.Context, businessID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.UtilityModel{}).
		Scopes(businessScope(businessID)).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err, "utility")
	}
	return count > 0, nil
}

// Save creates or updates a utility
func (r *GormUtilityRepository) Save(ctx context.Context, u *property.Utility) error {
	return translateError(r.db.WithContext(ctx).Save(models.UtilityModelFromDomain(u)).Error, "utility")
}

// DeleteForBusiness deletes a utility within a business
func (r *GormUtilityRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).Delete(&models.UtilityModel{})
	if result.Error != nil {
		return translateError(result.Error, "utility")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func utilitiesToDomain(rows []models.UtilityModel) []property.Utility {
	out := make([]property.Utility, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ property.UtilityRepository = (*GormUtilityRepository)(nil)
