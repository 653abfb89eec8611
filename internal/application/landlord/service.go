package landlord

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/landlord"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	errDuplicateContact = shared.NewDomainError(shared.CodeConflict, "A landlord with this ID number or email already exists")
	errHasProperties    = shared.NewDomainError(shared.CodeConflict, "Cannot delete landlord with existing properties")
)

// Service manages the landlords of a business
type Service struct {
	repo           landlord.Repository
	propertyRepo   property.PropertyRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new landlord Service
func NewService(repo landlord.Repository, propertyRepo property.PropertyRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, propertyRepo: propertyRepo, logger: logger}
}

// SetEventPublisher sets the event publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a landlord. ID number and email must be unused within the business.
func (s *Service) Create(ctx context.Context, businessID uuid.UUID, req CreateLandlordRequest) (*LandlordResponse, error) {
	l, err := landlord.NewLandlord(businessID, req.contact())
	if err != nil {
		return nil, err
	}
	if err := s.checkContact(ctx, l, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.save(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Info("Landlord registered",
		zap.String("business_id", businessID.String()),
		zap.String("landlord_id", l.ID.String()),
	)
	response := ToLandlordResponse(l)
	return &response, nil
}

// GetByID retrieves a landlord by ID
func (s *Service) GetByID(ctx context.Context, businessID, landlordID uuid.UUID) (*LandlordResponse, error) {
	l, err := s.repo.FindByIDForBusiness(ctx, businessID, landlordID)
	if err != nil {
		return nil, err
	}
	response := ToLandlordResponse(l)
	return &response, nil
}

// List retrieves landlords with filtering and pagination
func (s *Service) List(ctx context.Context, businessID uuid.UUID, filter LandlordListFilter) ([]LandlordResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	items, err := s.repo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToLandlordResponses(items), total, nil
}

// Update applies a partial update to a landlord
func (s *Service) Update(ctx context.Context, businessID, landlordID uuid.UUID, req UpdateLandlordRequest) (*LandlordResponse, error) {
	l, err := s.repo.FindByIDForBusiness(ctx, businessID, landlordID)
	if err != nil {
		return nil, err
	}

	c := landlord.Contact{Name: l.Name, Phone: l.Phone, IDNumber: l.IDNumber, Email: l.Email, Address: l.Address}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.IDNumber != nil {
		c.IDNumber = *req.IDNumber
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if err := l.Update(c); err != nil {
		return nil, err
	}
	if req.ProfileImage != nil {
		l.ProfileImage = *req.ProfileImage
	}
	if err := s.checkContact(ctx, l, l.ID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, l); err != nil {
		return nil, err
	}
	response := ToLandlordResponse(l)
	return &response, nil
}

// UpdateStatus changes the standing of a landlord
func (s *Service) UpdateStatus(ctx context.Context, businessID, landlordID uuid.UUID, req UpdateStatusRequest) (*LandlordResponse, error) {
	l, err := s.repo.FindByIDForBusiness(ctx, businessID, landlordID)
	if err != nil {
		return nil, err
	}
	if err := l.ChangeStatus(landlord.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.save(ctx, l); err != nil {
		return nil, err
	}
	response := ToLandlordResponse(l)
	return &response, nil
}

// Delete removes a landlord that no longer owns any property
func (s *Service) Delete(ctx context.Context, businessID, landlordID uuid.UUID) error {
	l, err := s.repo.FindByIDForBusiness(ctx, businessID, landlordID)
	if err != nil {
		return err
	}
	owned, err := s.propertyRepo.CountForBusiness(ctx, businessID, shared.DefaultFilter().WithFilter("landlord_id", landlordID))
	if err != nil {
		return err
	}
	if owned > 0 {
		return errHasProperties
	}
	if err := s.repo.DeleteForBusiness(ctx, businessID, landlordID); err != nil {
		return err
	}
	l.AddDomainEvent(landlord.NewLandlordEvent(landlord.EventTypeLandlordDeleted, l))
	s.publish(ctx, l)
	return nil
}

// Stats reports the occupancy of the landlord's portfolio
func (s *Service) Stats(ctx context.Context, businessID, landlordID uuid.UUID) (*landlord.Stats, error) {
	if _, err := s.repo.FindByIDForBusiness(ctx, businessID, landlordID); err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx, businessID, landlordID)
}

func (s *Service) checkContact(ctx context.Context, l *landlord.Landlord, excludeID uuid.UUID) error {
	taken, err := s.repo.ExistsByContact(ctx, l.BusinessID, l.IDNumber, l.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return errDuplicateContact
	}
	return nil
}

func (s *Service) save(ctx context.Context, l *landlord.Landlord) error {
	if err := s.repo.Save(ctx, l); err != nil {
		// A concurrent registration won one of the unique indexes
		if errors.Is(err, shared.ErrAlreadyExists) {
			return errDuplicateContact
		}
		return err
	}
	s.publish(ctx, l)
	return nil
}

func (s *Service) publish(ctx context.Context, l *landlord.Landlord) {
	if err := shared.PublishPending(ctx, s.eventPublisher, l); err != nil {
		s.logger.Warn("Failed to publish landlord events", zap.Error(err))
	}
}
