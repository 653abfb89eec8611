package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/notification"
	"github.com/rentdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service manages the in-app notification feed
type Service struct {
	repo   notification.Repository
	logger *zap.Logger
}

// NewService creates a new notification Service
func NewService(repo notification.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Create posts a notification
func (s *Service) Create(ctx context.Context, businessID uuid.UUID, req CreateNotificationRequest) (*NotificationResponse, error) {
	n, err := notification.NewNotification(businessID, notification.Type(req.Type), req.Title, req.Message, notification.Priority(req.Priority))
	if err != nil {
		return nil, err
	}
	n.RecipientID = req.RecipientID
	if req.RelatedID != nil {
		n.RelatesTo(req.RelatedType, *req.RelatedID)
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	response := ToNotificationResponse(n)
	return &response, nil
}

// GetByID retrieves a notification by ID
func (s *Service) GetByID(ctx context.Context, businessID, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.repo.FindByIDForBusiness(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	response := ToNotificationResponse(n)
	return &response, nil
}

// List retrieves the feed, newest first
func (s *Service) List(ctx context.Context, businessID uuid.UUID, filter NotificationListFilter) ([]NotificationResponse, int64, error) {
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
	if filter.RecipientID != "" {
		domainFilter.Filters["recipient_id"] = filter.RecipientID
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.IsRead != nil {
		domainFilter.Filters["is_read"] = *filter.IsRead
	}

	items, err := s.repo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToNotificationResponses(items), total, nil
}

// MarkRead flags one notification as read
func (s *Service) MarkRead(ctx context.Context, businessID, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.repo.FindByIDForBusiness(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if n.MarkRead() {
		if err := s.repo.Save(ctx, n); err != nil {
			return nil, err
		}
	}
	response := ToNotificationResponse(n)
	return &response, nil
}

// MarkAllRead flags every unread notification of the recipient, or of the
// whole business when no recipient is given
func (s *Service) MarkAllRead(ctx context.Context, businessID uuid.UUID, req MarkAllReadRequest) (*MarkAllReadResponse, error) {
	updated, err := s.repo.MarkAllRead(ctx, businessID, req.RecipientID)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadResponse{Updated: updated}, nil
}

// Delete removes a notification
func (s *Service) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	return s.repo.DeleteForBusiness(ctx, businessID, id)
}

// Stats counts the feed, optionally for one recipient
func (s *Service) Stats(ctx context.Context, businessID uuid.UUID, q StatsQuery) (*notification.Stats, error) {
	var recipient *uuid.UUID
	if q.RecipientID != "" {
		id, err := uuid.Parse(q.RecipientID)
		if err != nil {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invalid recipient ID")
		}
		recipient = &id
	}
	return s.repo.Stats(ctx, businessID, recipient)
}
