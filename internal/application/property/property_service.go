package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/landlord"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PropertyService handles property-related business operations
type PropertyService struct {
	propertyRepo   property.PropertyRepository
	unitRepo       property.UnitRepository
	counter        *OccupancyCounter
	landlordRepo   landlord.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo property.PropertyRepository,
	unitRepo property.UnitRepository,
	counter *OccupancyCounter,
	logger *zap.Logger,
) *PropertyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyService{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		counter:      counter,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *PropertyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLandlordRepository enables linking properties to registered landlords
func (s *PropertyService) SetLandlordRepository(repo landlord.Repository) {
	s.landlordRepo = repo
}

// Create registers a new property
func (s *PropertyService) Create(ctx context.Context, businessID uuid.UUID, req CreatePropertyRequest) (*PropertyResponse, error) {
	p, err := property.NewProperty(businessID, req.Name, req.Address, property.PropertyType(req.Type))
	if err != nil {
		return nil, err
	}
	p.City = req.City
	p.LandlordName = req.LandlordName
	p.Description = req.Description
	if req.LandlordID != nil {
		if err := s.linkLandlord(ctx, p, *req.LandlordID); err != nil {
			return nil, err
		}
	}

	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.publish(ctx, p)

	s.logger.Info("Property created",
		zap.String("business_id", businessID.String()),
		zap.String("property_id", p.ID.String()),
	)
	response := ToPropertyResponse(p)
	return &response, nil
}

// GetByID retrieves a property by ID
func (s *PropertyService) GetByID(ctx context.Context, businessID, propertyID uuid.UUID) (*PropertyResponse, error) {
	p, err := s.propertyRepo.FindByIDForBusiness(ctx, businessID, propertyID)
	if err != nil {
		return nil, err
	}
	response := ToPropertyResponse(p)
	return &response, nil
}

// List retrieves properties with filtering and pagination
func (s *PropertyService) List(ctx context.Context, businessID uuid.UUID, filter PropertyListFilter) ([]PropertyResponse, int64, error) {
	domainFilter := filter.ToDomainFilter("name")
	if filter.OrderDir == "" {
		domainFilter.OrderDir = "asc"
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		domainFilter.Filters["property_type"] = filter.Type
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}
	if filter.LandlordID != "" {
		domainFilter.Filters["landlord_id"] = filter.LandlordID
	}

	items, err := s.propertyRepo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.propertyRepo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPropertyResponses(items), total, nil
}

// Update applies a partial update to a property
func (s *PropertyService) Update(ctx context.Context, businessID, propertyID uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	p, err := s.propertyRepo.FindByIDForBusiness(ctx, businessID, propertyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Address != nil || req.City != nil || req.LandlordName != nil ||
		req.Type != nil || req.Description != nil {
		name := valueOr(req.Name, p.Name)
		address := valueOr(req.Address, p.Address)
		city := valueOr(req.City, p.City)
		landlord := valueOr(req.LandlordName, p.LandlordName)
		description := valueOr(req.Description, p.Description)
		propertyType := p.Type
		if req.Type != nil {
			propertyType = property.PropertyType(*req.Type)
		}
		if err := p.Update(name, address, city, landlord, description, propertyType); err != nil {
			return nil, err
		}
	}
	if req.LandlordID != nil {
		if err := s.linkLandlord(ctx, p, *req.LandlordID); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := p.ChangeStatus(property.PropertyStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToPropertyResponse(p)
	return &response, nil
}

// Delete removes a property that no longer has units
func (s *PropertyService) Delete(ctx context.Context, businessID, propertyID uuid.UUID) error {
	if _, err := s.propertyRepo.FindByIDForBusiness(ctx, businessID, propertyID); err != nil {
		return err
	}

	units, err := s.unitRepo.CountForBusiness(ctx, businessID, shared.DefaultFilter().WithFilter("property_id", propertyID))
	if err != nil {
		return err
	}
	if units > 0 {
		return shared.NewDomainErrorf(shared.CodeConflict, "Property still has %d unit(s); delete them first", units)
	}
	return s.propertyRepo.DeleteForBusiness(ctx, businessID, propertyID)
}

// Recompute rebuilds the unit counters of a property from its units
func (s *PropertyService) Recompute(ctx context.Context, businessID, propertyID uuid.UUID) (*CountsResponse, error) {
	if _, err := s.propertyRepo.FindByIDForBusiness(ctx, businessID, propertyID); err != nil {
		return nil, err
	}
	counts, err := s.counter.Recompute(ctx, businessID, propertyID)
	if err != nil {
		return nil, err
	}
	return &CountsResponse{
		PropertyID:      propertyID,
		OccupancyCounts: counts,
		OccupancyRate:   counts.OccupancyRate(),
	}, nil
}

func (s *PropertyService) publish(ctx context.Context, sources ...shared.EventSource) {
	if err := shared.PublishPending(ctx, s.eventPublisher, sources...); err != nil {
		s.logger.Warn("Failed to publish property events", zap.Error(err))
	}
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

// linkLandlord points p at a landlord of the same business and copies the
// landlord's name. uuid.Nil unlinks and keeps the free-text name.
func (s *PropertyService) linkLandlord(ctx context.Context, p *property.Property, landlordID uuid.UUID) error {
	if landlordID == uuid.Nil {
		p.LandlordID = nil
		return nil
	}
	if s.landlordRepo == nil {
		return shared.NewDomainError(shared.CodeUnavailable, "Landlord registry is not available")
	}
	l, err := s.landlordRepo.FindByIDForBusiness(ctx, p.BusinessID, landlordID)
	if err != nil {
		return err
	}
	p.LandlordID = &l.ID
	p.LandlordName = l.Name
	return nil
}
