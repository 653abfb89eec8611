package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUnitRepository implements UnitRepository using GORM.
// Utility associations live in unit_utilities and are replaced wholesale on every write.
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByIDForBusiness finds a unit by ID within a business
func (r *GormUnitRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*property.Unit, error) {
	var model models.UnitModel
	err := r.db.WithContext(ctx).
		Preload("Utilities").
		Scopes(businessScope(businessID)).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, translateError(err, "unit")
	}
	return model.ToDomain()
}

// FindAllForBusiness lists units. Supported filter keys: property_id, status, type
func (r *GormUnitRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]property.Unit, error) {
	var rows []models.UnitModel
	err := r.filtered(ctx, businessID, filter).
		Preload("Utilities").
		Scopes(pageScope(filter, unitSorts)).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "unit")
	}
	return unitsToDomain(rows)
}

// CountForBusiness counts units matching the filter
func (r *GormUnitRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, businessID, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "unit")
	}
	return count, nil
}

func (r *GormUnitRepository) filtered(ctx context.Context, businessID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Scopes(businessScope(businessID), searchScope(filter.Search, "unit_number", "description"))
	if v, ok := stringFilter(filter, "property_id"); ok {
		q = q.Where("property_id = ?", v)
	}
	if v, ok := stringFilter(filter, "status"); ok {
		q = q.Where("status = ?", v)
	}
	if v, ok := stringFilter(filter, "type"); ok {
		q = q.Where("unit_type = ?", v)
	}
	return q
}

// FindVacant lists vacant units; uuid.Nil spans all businesses
func (r *GormUnitRepository) FindVacant(ctx context.Context, businessID uuid.UUID) ([]property.Unit, error) {
	var rows []models.UnitModel
	err := r.db.WithContext(ctx).
		Preload("Utilities").
		Scopes(optionalBusinessScope(businessID)).
		Where("status = ?", property.UnitStatusVacant).
		Order("unit_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "unit")
	}
	return unitsToDomain(rows)
}

// CountByStatus returns the status histogram of a property's units
func (r *GormUnitRepository) CountByStatus(ctx context.Context, businessID, propertyID uuid.UUID) (map[property.UnitStatus]int, error) {
	var rows []struct {
		Status property.UnitStatus
		Count  int
	}
	err := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Scopes(businessScope(businessID)).
		Where("property_id = ?", propertyID).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "unit")
	}
	histogram := make(map[property.UnitStatus]int, len(rows))
	for _, row := range rows {
		histogram[row.Status] = row.Count
	}
	return histogram, nil
}

// CountUsingUtility counts units that reference a utility
func (r *GormUnitRepository) CountUsingUtility(ctx context.Context, businessID, utilityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UnitUtilityModel{}).
		Joins("JOIN units ON units.id = unit_utilities.unit_id").
		Where("units.business_id = ? AND unit_utilities.utility_id = ?", businessID, utilityID).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err, "unit")
	}
	return count, nil
}

// ExistsByNumber checks a unit number within a property, ignoring excludeID
func (r *GormUnitRepository) ExistsByNumber(ctx context.Context, businessID, propertyID uuid.UUID, number string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Scopes(businessScope(businessID)).
		Where("property_id = ? AND unit_number = ?", propertyID, number)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err, "unit")
	}
	return count > 0, nil
}

// Save creates a unit or overwrites it unconditionally
func (r *GormUnitRepository) Save(ctx context.Context, u *property.Unit) error {
	model := models.UnitModelFromDomain(u)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		return replaceUnitUtilities(tx, model)
	})
	return translateError(err, "unit")
}

// SaveWithLock updates a unit only if the stored version is u.Version-1
func (r *GormUnitRepository) SaveWithLock(ctx context.Context, u *property.Unit) error {
	model := models.UnitModelFromDomain(u)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UnitModel{}).
			Where("id = ? AND business_id = ? AND version = ?", model.ID, model.BusinessID, model.Version-1).
			Select("*").
			Omit("id", "created_at", "business_id", clause.Associations).
			Updates(model)
		if err := lockResult(result, "unit"); err != nil {
			return err
		}
		return replaceUnitUtilities(tx, model)
	})
	return translateError(err, "unit")
}

// UpdateDaysVacant stores the vacancy counter snapshot without touching the version
func (r *GormUnitRepository) UpdateDaysVacant(ctx context.Context, id uuid.UUID, days int) error {
	result := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{"days_vacant": days, "updated_at": time.Now()})
	if result.Error != nil {
		return translateError(result.Error, "unit")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForBusiness deletes a unit within a business
func (r *GormUnitRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(businessScope(businessID)).Where("id = ?", id).Delete(&models.UnitModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("unit_id = ?", id).Delete(&models.UnitUtilityModel{}).Error
	})
	return translateError(err, "unit")
}

func replaceUnitUtilities(tx *gorm.DB, model *models.UnitModel) error {
	if err := tx.Where("unit_id = ?", model.ID).Delete(&models.UnitUtilityModel{}).Error; err != nil {
		return err
	}
	if len(model.Utilities) == 0 {
		return nil
	}
	return tx.Create(&model.Utilities).Error
}

func unitsToDomain(rows []models.UnitModel) ([]property.Unit, error) {
	out := make([]property.Unit, 0, len(rows))
	for i := range rows {
		u, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, nil
}

var _ property.UnitRepository = (*GormUnitRepository)(nil)
