package property

import (
	"context"

	"github.com/rentdesk/backend/internal/domain/property"
)

// ComputeUnitTotal loads the utilities attached to unit and prices its
// recurring monthly charge
func ComputeUnitTotal(ctx context.Context, utilityRepo property.UtilityRepository, unit *property.Unit) (property.MonthlyTotal, error) {
	utilities, err := utilityRepo.FindByIDs(ctx, unit.BusinessID, unit.UtilityIDs())
	if err != nil {
		return property.MonthlyTotal{}, err
	}
	return property.ComputeMonthlyTotal(unit, property.UtilityCatalog(utilities)), nil
}
