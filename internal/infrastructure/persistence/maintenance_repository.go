package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/maintenance"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMaintenanceRepository implements maintenance.Repository using GORM
type GormMaintenanceRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRepository creates a new GormMaintenanceRepository
func NewGormMaintenanceRepository(db *gorm.DB) *GormMaintenanceRepository {
	return &GormMaintenanceRepository{db: db}
}

// FindByIDForBusiness finds a request by ID within a business
func (r *GormMaintenanceRepository) FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*maintenance.Request, error) {
	var model models.MaintenanceRequestModel
	if err := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "maintenance request")
	}
	return model.ToDomain(), nil
}

// FindAllForBusiness lists requests matching the filter
func (r *GormMaintenanceRepository) FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]maintenance.Request, error) {
	var rows []models.MaintenanceRequestModel
	if err := r.filtered(ctx, businessID, filter).Scopes(pageScope(filter, maintenanceSorts)).Find(&rows).Error; err != nil {
		return nil, translateError(err, "maintenance request")
	}
	out := make([]maintenance.Request, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountForBusiness counts requests matching the filter
func (r *GormMaintenanceRepository) CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, businessID, filter).Count(&count).Error; err != nil {
		return 0, translateError(err, "maintenance request")
	}
	return count, nil
}

func (r *GormMaintenanceRepository) filtered(ctx context.Context, businessID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{}).
		Scopes(businessScope(businessID), searchScope(filter.Search, "title", "description", "assigned_to"))
	for _, key := range []string{"status", "priority", "unit_id", "tenant_id"} {
		if v, ok := stringFilter(filter, key); ok {
			q = q.Where(key+" = ?", v)
		}
	}
	return q
}

// Stats summarises the requests of a business
func (r *GormMaintenanceRepository) Stats(ctx context.Context, businessID uuid.UUID) (*maintenance.Stats, error) {
	var rows []struct {
		Status   maintenance.Status
		Priority maintenance.Priority
		Count    int64
		Cost     decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{}).
		Scopes(businessScope(businessID)).
		Select("status, priority, COUNT(*) AS count, COALESCE(SUM(actual_cost), 0) AS cost").
		Group("status, priority").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "maintenance request")
	}
	stats := &maintenance.Stats{TotalCost: decimal.Zero}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case maintenance.StatusPending:
			stats.Pending += row.Count
		case maintenance.StatusInProgress:
			stats.InProgress += row.Count
		case maintenance.StatusCompleted:
			stats.Completed += row.Count
			stats.TotalCost = stats.TotalCost.Add(row.Cost)
		case maintenance.StatusCancelled:
			stats.Cancelled += row.Count
		}
		if row.Priority == maintenance.PriorityHigh || row.Priority == maintenance.PriorityEmergency {
			stats.HighPriority += row.Count
		}
	}
	return stats, nil
}

// Save creates or updates a request
func (r *GormMaintenanceRepository) Save(ctx context.Context, req *maintenance.Request) error {
	return translateError(r.db.WithContext(ctx).Save(models.MaintenanceRequestModelFromDomain(req)).Error, "maintenance request")
}

// DeleteForBusiness deletes a request within a business
func (r *GormMaintenanceRepository) DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(businessScope(businessID)).Where("id = ?", id).Delete(&models.MaintenanceRequestModel{})
	if result.Error != nil {
		return translateError(result.Error, "maintenance request")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ maintenance.Repository = (*GormMaintenanceRepository)(nil)
