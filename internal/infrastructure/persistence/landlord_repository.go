package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/landlord"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLandlordRepository implements landlord.Repository using GORM
type GormLandlordRepository struct {
	db *gorm.DB
}

// NewGormLandlordRepository creates a new GormLandlordRepository
func NewGormLandlordRepository(db *gorm.DB) *GormLandlordRepository {
	return &GormLandlordRepository{db: db}
}

// FindByIDForBusiness finds a landlord by ID within a business
func (r *GormLandlordRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*landlord.Landlord, error) {
	var model models.LandlordModel
	if err := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "landlord")
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness lists landlords matching the filter
func (r *GormLandlordRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]landlord.Landlord, error) {
	var rows []models.LandlordModel
	if err := r.filtered(ctx, businessID, filter).Scopes(pageScope(filter, landlordSorts)).Find(&rows).Error; err != nil {
		return nil, translateError(err, "landlord")
	}
	out := make([]landlord.Landlord, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountForBusiness counts landlords matching the filter
func (r *GormLandlordRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, businessID, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "landlord")
	}
	return count, nil
}

func (r *GormLandlordRepository) filtered(ctx context.Context, businessID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.LandlordModel{}).
		Scopes(businessScope(businessID), searchScope(filter.Search, "name", "email", "phone", "id_number"))
	if v, ok := stringFilter(filter, "status"); ok {
		q = q.Where("status = ?", v)
	}
	return q
}

// ExistsByContact checks the ID number and email against the other
// landlords of the business
func (r *GormLandlordRepository) ExistsByContact(ctx context.Context, businessID uuid.UUID, idNumber, email string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.LandlordModel{}).
		Scopes(businessScope(businessID)).
		Where("(id_number = ? OR email = ?)", strings.TrimSpace(idNumber), strings.ToLower(strings.TrimSpace(email)))
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err, "landlord")
	}
	return count > 0, nil
}

// Stats counts the units of every property linked to the landlord. Units are
// read from their own rows, as the dashboard does.
func (r *GormLandlordRepository) Stats(ctx context.Context, businessID, landlordID uuid.UUID) (*landlord.Stats, error) {
	db := r.db.WithContext(ctx)
	scope := businessScope(businessID)

	var properties int64
	if err := db.Model(&models.PropertyModel{}).Scopes(scope).
		Where("landlord_id = ?", landlordID).
		Count(&properties).Error; err != nil {
		return nil, translateError(err, "landlord")
	}

	var rows []struct {
		Status property.UnitStatus
		Count  int
	}
	owned := db.Model(&models.PropertyModel{}).Scopes(scope).Select("id").Where("landlord_id = ?", landlordID)
	if err := db.Model(&models.UnitModel{}).Scopes(scope).
		Where("property_id IN (?)", owned).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, translateError(err, "landlord")
	}
	byStatus := make(map[property.UnitStatus]int, len(rows))
	for _, row := range rows {
		byStatus[row.Status] += row.Count
	}
	counts := property.CountsFromStatuses(byStatus)

	return &landlord.Stats{
		LandlordID:      landlordID,
		TotalProperties: int(properties),
		TotalUnits:      counts.Total,
		OccupiedUnits:   counts.Occupied,
		VacantUnits:     counts.Vacant,
		OccupancyRate:   counts.OccupancyRate(),
	}, nil
}

// Save creates or updates a landlord
func (r *GormLandlordRepository) Save(ctx context.Context, l *landlord.Landlord) error {
	return translateError(r.db.WithContext(ctx).Save(models.LandlordModelFromDomain(l)).Error, "landlord")
}

// DeleteForBusiness deletes a landlord within a business
func (r *GormLandlordRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).Delete(&models.LandlordModel{})
	if result.Error != nil {
		return translateError(result.Error, "landlord")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ landlord.Repository = (*GormLandlordRepository)(nil)
