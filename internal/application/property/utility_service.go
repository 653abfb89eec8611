package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
)

// UtilityService handles the utility catalog
type UtilityService struct {
	utilityRepo property.UtilityRepository
	unitRepo    property.UnitRepository
}

// NewUtilityService creates a new UtilityService
func NewUtilityService(utilityRepo property.UtilityRepository, unitRepo property.UnitRepository) *UtilityService {
	return &UtilityService{
		utilityRepo: utilityRepo,
		unitRepo:    unitRepo,
	}
}

// Create adds a utility to the catalog
func (s *UtilityService) Create(ctx context.Context, businessID uuid.UUID, req CreateUtilityRequest) (*UtilityResponse, error) {
	exists, err := s.utilityRepo.ExistsByName(ctx, businessID, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Utility with this name already exists")
	}

	utility, err := property.NewUtility(businessID, req.Name, req.UnitCost, property.BillingCycle(req.BillingCycle))
	if err != nil {
		return nil, err
	}
	utility.Description = req.Description

	if err := s.utilityRepo.Save(ctx, utility); err != nil {
		return nil, err
	}
	response := ToUtilityResponse(utility)
	return &response, nil
}

// GetByID retrieves a utility by ID
func (s *UtilityService) GetByID(ctx context.Context, businessID, utilityID uuid.UUID) (*UtilityResponse, error) {
	utility, err := s.utilityRepo.FindByIDForBusiness(ctx, businessID, utilityID)
	if err != nil {
		return nil, err
	}
	response := ToUtilityResponse(utility)
	return &response, nil
}

// List retrieves utilities with filtering and pagination
func (s *UtilityService) List(ctx context.Context, businessID uuid.UUID, filter UtilityListFilter) ([]UtilityResponse, int64, error) {
	domainFilter := filter.ToDomainFilter("name")
	if filter.OrderDir == "" {
		domainFilter.OrderDir = "asc"
	}
	if filter.BillingCycle != "" {
		domainFilter.Filters["billing_cycle"] = filter.BillingCycle
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	items, err := s.utilityRepo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.utilityRepo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToUtilityResponses(items), total, nil
}

// Update applies a partial update to a utility
func (s *UtilityService) Update(ctx context.Context, businessID, utilityID uuid.UUID, req UpdateUtilityRequest) (*UtilityResponse, error) {
	utility, err := s.utilityRepo.FindByIDForBusiness(ctx, businessID, utilityID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != utility.Name {
		exists, err := s.utilityRepo.ExistsByName(ctx, businessID, *req.Name, utility.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Utility with this name already exists")
		}
	}

	if req.Name != nil || req.Description != nil || req.UnitCost != nil || req.BillingCycle != nil {
		cycle := utility.BillingCycle
		if req.BillingCycle != nil {
			cycle = property.BillingCycle(*req.BillingCycle)
		}
		err := utility.Update(
			valueOr(req.Name, utility.Name),
			valueOr(req.Description, utility.Description),
			valueOr(req.UnitCost, utility.UnitCost),
			cycle,
		)
		if err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		utility.SetActive(*req.IsActive)
	}

	if err := s.utilityRepo.Save(ctx, utility); err != nil {
		return nil, err
	}
	response := ToUtilityResponse(utility)
	return &response, nil
}

// Delete removes a utility that no unit references
func (s *UtilityService) Delete(ctx context.Context, businessID, utilityID uuid.UUID) error {
	if _, err := s.utilityRepo.FindByIDForBusiness(ctx, businessID, utilityID); err != nil {
		return err
	}
	inUse, err := s.unitRepo.CountUsingUtility(ctx, businessID, utilityID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return shared.NewDomainErrorf(shared.CodeConflict, "Utility is attached to %d unit(s)", inUse)
	}
	return s.utilityRepo.DeleteForBusiness(ctx, businessID, utilityID)
}
