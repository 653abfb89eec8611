package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"go.uber.org/zap"
)

// OccupancyCounter maintains the denormalized unit counters on a property.
// Adjust is the hot path used by tenant moves; Recompute rebuilds the
// counters from the unit table and is the repair path.
type OccupancyCounter struct {
	propertyRepo property.PropertyRepository
	unitRepo     property.UnitRepository
	logger       *zap.Logger
}

// NewOccupancyCounter creates a new OccupancyCounter
func NewOccupancyCounter(propertyRepo property.PropertyRepository, unitRepo property.UnitRepository, logger *zap.Logger) *OccupancyCounter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OccupancyCounter{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		logger:       logger,
	}
}

// With returns a counter bound to other repositories, typically the
// transactional ones handed out by a TransactionScope
func (c *OccupancyCounter) With(propertyRepo property.PropertyRepository, unitRepo property.UnitRepository) *OccupancyCounter {
	return &OccupancyCounter{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		logger:       c.logger,
	}
}

// Recompute rebuilds the counters of one property from its units
func (c *OccupancyCounter) Recompute(ctx context.Context, businessID, propertyID uuid.UUID) (property.OccupancyCounts, error) {
	byStatus, err := c.unitRepo.CountByStatus(ctx, businessID, propertyID)
	if err != nil {
		return property.OccupancyCounts{}, err
	}
	counts := property.CountsFromStatuses(byStatus)
	if err := c.propertyRepo.SetCounts(ctx, businessID, propertyID, counts); err != nil {
		return property.OccupancyCounts{}, err
	}
	return counts, nil
}

// Adjust shifts the occupied and vacant counters in one atomic update
func (c *OccupancyCounter) Adjust(ctx context.Context, businessID, propertyID uuid.UUID, occupiedDelta, vacantDelta int) error {
	return c.propertyRepo.AdjustCounts(ctx, businessID, propertyID, occupiedDelta, vacantDelta)
}

// RecomputeAll rebuilds the counters of every property of a business, or of
// every business when businessID is uuid.Nil. It keeps going past failures
// and returns the number of properties fixed along with the first error.
func (c *OccupancyCounter) RecomputeAll(ctx context.Context, businessID uuid.UUID) (int, error) {
	keys, err := c.propertyRepo.ListKeys(ctx, businessID)
	if err != nil {
		return 0, err
	}

	var firstErr error
	done := 0
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, err := c.Recompute(ctx, key.BusinessID, key.PropertyID); err != nil {
			c.logger.Error("Failed to recompute property counts",
				zap.String("business_id", key.BusinessID.String()),
				zap.String("property_id", key.PropertyID.String()),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		done++
	}
	return done, firstErr
}
