package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOccupancyProvider reads occupancy across all businesses
type GormOccupancyProvider struct {
	db *gorm.DB
}

// NewGormOccupancyProvider creates a provider over db
func NewGormOccupancyProvider(db *gorm.DB) *GormOccupancyProvider {
	return &GormOccupancyProvider{db: db}
}

type unitStatusRow struct {
	BusinessID uuid.UUID
	Status     string
	Total      int64
}

type overdueRow struct {
	BusinessID uuid.UUID
	Total      int64
}

// OccupancySnapshots groups units by status and counts tenants that are
// overdue or carry a positive balance, per business.
func (p *GormOccupancyProvider) OccupancySnapshots(ctx context.Context) ([]OccupancySnapshot, error) {
	var units []unitStatusRow
	if err := p.db.WithContext(ctx).
		Model(&models.UnitModel{}).
		Select("business_id, status, COUNT(*) AS total").
		Group("business_id, status").
		Scan(&units).Error; err != nil {
		return nil, err
	}

	var overdue []overdueRow
	if err := p.db.WithContext(ctx).
		Model(&models.TenantModel{}).
		Select("business_id, COUNT(*) AS total").
		Where("status = ? OR (status <> ? AND balance > 0)",
			tenancy.TenantStatusOverdue, tenancy.TenantStatusMovedOut).
		Group("business_id").
		Scan(&overdue).Error; err != nil {
		return nil, err
	}

	byBusiness := make(map[uuid.UUID]*OccupancySnapshot)
	var order []uuid.UUID
	snapshot := func(id uuid.UUID) *OccupancySnapshot {
		s, ok := byBusiness[id]
		if !ok {
			s = &OccupancySnapshot{BusinessID: id, UnitsByStatus: make(map[string]int64)}
			byBusiness[id] = s
			order = append(order, id)
		}
		return s
	}
	for _, row := range units {
		snapshot(row.BusinessID).UnitsByStatus[row.Status] = row.Total
	}
	for _, row := range overdue {
		snapshot(row.BusinessID).OverdueTenants = row.Total
	}

	result := make([]OccupancySnapshot, 0, len(order))
	for _, id := range order {
		result = append(result, *byBusiness[id])
	}
	return result, nil
}

var _ OccupancyProvider = (*GormOccupancyProvider)(nil)
