package maintenance

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/maintenance"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service handles maintenance requests
type Service struct {
	repo           maintenance.Repository
	unitRepo       property.UnitRepository
	tenantRepo     tenancy.TenantRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new maintenance Service
func NewService(repo maintenance.Repository, unitRepo property.UnitRepository, tenantRepo tenancy.TenantRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		unitRepo:   unitRepo,
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a request on a unit. When no tenant is given the unit's
// current occupant is recorded.
func (s *Service) Create(ctx context.Context, businessID uuid.UUID, req CreateRequestRequest) (*RequestResponse, error) {
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, req.UnitID)
	if err != nil {
		return nil, err
	}
	tenantID := req.TenantID
	if tenantID != nil {
		if _, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, *tenantID); err != nil {
			return nil, err
		}
	} else {
		tenantID = unit.CurrentTenantID()
	}

	r, err := maintenance.NewRequest(businessID, unit.ID, req.Title, req.Description, maintenance.Priority(req.Priority))
	if err != nil {
		return nil, err
	}
	if req.EstimatedCost != nil {
		if req.EstimatedCost.IsNegative() {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Estimated cost cannot be negative")
		}
		r.EstimatedCost = *req.EstimatedCost
	}
	r.TenantID = tenantID
	r.AssignedTo = req.AssignedTo
	r.ScheduledDate = req.ScheduledDate

	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	s.publish(ctx, r)

	if r.IsHighPriority() {
		s.logger.Info("High priority maintenance request opened",
			zap.String("business_id", businessID.String()),
			zap.String("request_id", r.ID.String()),
			zap.String("unit_id", unit.ID.String()),
		)
	}
	response := ToRequestResponse(r)
	return &response, nil
}

// GetByID retrieves a request by ID
func (s *Service) GetByID(ctx context.Context, businessID, requestID uuid.UUID) (*RequestResponse, error) {
	r, err := s.repo.FindByIDForBusiness(ctx, businessID, requestID)
	if err != nil {
		return nil, err
	}
	response := ToRequestResponse(r)
	return &response, nil
}

// List retrieves requests with filtering and pagination
func (s *Service) List(ctx context.Context, businessID uuid.UUID, filter RequestListFilter) ([]RequestResponse, int64, error) {
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
	for key, value := range map[string]string{
		"status":    filter.Status,
		"priority":  filter.Priority,
		"unit_id":   filter.UnitID,
		"tenant_id": filter.TenantID,
	} {
		if value != "" {
			domainFilter.Filters[key] = value
		}
	}

	requests, err := s.repo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToRequestResponses(requests), total, nil
}

// Update edits a request
func (s *Service) Update(ctx context.Context, businessID, requestID uuid.UUID, req UpdateRequestRequest) (*RequestResponse, error) {
	r, err := s.repo.FindByIDForBusiness(ctx, businessID, requestID)
	if err != nil {
		return nil, err
	}

	title, description, priority := r.Title, r.Description, r.Priority
	assignedTo, estimated, scheduled := r.AssignedTo, r.EstimatedCost, r.ScheduledDate
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Priority != nil {
		priority = maintenance.Priority(*req.Priority)
	}
	if req.AssignedTo != nil {
		assignedTo = *req.AssignedTo
	}
	if req.EstimatedCost != nil {
		estimated = *req.EstimatedCost
	}
	if req.ScheduledDate != nil {
		scheduled = req.ScheduledDate
	}
	if err := r.Update(title, description, priority, assignedTo, estimated, scheduled); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	response := ToRequestResponse(r)
	return &response, nil
}

// UpdateStatus moves a request along; completing it records date and cost
func (s *Service) UpdateStatus(ctx context.Context, businessID, requestID uuid.UUID, req UpdateStatusRequest) (*RequestResponse, error) {
	r, err := s.repo.FindByIDForBusiness(ctx, businessID, requestID)
	if err != nil {
		return nil, err
	}
	actual := decimal.Zero
	if req.ActualCost != nil {
		actual = *req.ActualCost
	}
	if err := r.ChangeStatus(maintenance.Status(req.Status), req.CompletedDate, actual); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	s.publish(ctx, r)

	response := ToRequestResponse(r)
	return &response, nil
}

// Delete removes a request
func (s *Service) Delete(ctx context.Context, businessID, requestID uuid.UUID) error {
	r, err := s.repo.FindByIDForBusiness(ctx, businessID, requestID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteForBusiness(ctx, businessID, requestID); err != nil {
		return err
	}
	r.AddDomainEvent(maintenance.NewRequestEvent(maintenance.EventTypeRequestDeleted, r))
	s.publish(ctx, r)
	return nil
}

// Stats summarizes the maintenance workload
func (s *Service) Stats(ctx context.Context, businessID uuid.UUID) (*maintenance.Stats, error) {
	return s.repo.Stats(ctx, businessID)
}

func (s *Service) publish(ctx context.Context, r *maintenance.Request) {
	if err := shared.PublishPending(ctx, s.eventPublisher, r); err != nil {
		s.logger.Warn("Failed to publish maintenance events", zap.Error(err))
	}
}
