package expense

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	appproperty "github.com/rentdesk/backend/internal/application/property"
	"github.com/rentdesk/backend/internal/domain/expense"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service records what a business spends on its properties
type Service struct {
	repo           expense.Repository
	propertyRepo   property.PropertyRepository
	unitRepo       property.UnitRepository
	presigner      appproperty.UploadPresigner
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new expense Service
func NewService(repo expense.Repository, propertyRepo property.PropertyRepository, unitRepo property.UnitRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:         repo,
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetPresigner enables presigned receipt uploads
func (s *Service) SetPresigner(presigner appproperty.UploadPresigner) {
	s.presigner = presigner
}

// Create records an expense. A unit, when given, must belong to the property.
func (s *Service) Create(ctx context.Context, businessID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if _, err := s.propertyRepo.FindByIDForBusiness(ctx, businessID, req.PropertyID); err != nil {
		return nil, err
	}
	if req.UnitID != nil {
		unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, *req.UnitID)
		if err != nil {
			return nil, err
		}
		if unit.PropertyID != req.PropertyID {
			return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Unit %s does not belong to this property", unit.UnitNumber)
		}
	}

	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}
	e, err := expense.NewExpense(businessID, req.PropertyID, expense.Category(req.Category), req.Amount, req.Description, date)
	if err != nil {
		return nil, err
	}
	if err := e.SetPaymentMethod(expense.PaymentMethod(req.PaymentMethod)); err != nil {
		return nil, err
	}
	e.UnitID = req.UnitID
	e.ReceiptNumber = req.ReceiptNumber
	e.PaidBy = req.PaidBy

	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	s.publish(ctx, e)

	s.logger.Info("Expense recorded",
		zap.String("business_id", businessID.String()),
		zap.String("expense_id", e.ID.String()),
		zap.String("category", string(e.Category)),
		zap.String("amount", e.Amount.String()),
	)
	response := ToExpenseResponse(e)
	return &response, nil
}

// GetByID retrieves an expense by ID
func (s *Service) GetByID(ctx context.Context, businessID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	e, err := s.repo.FindByIDForBusiness(ctx, businessID, expenseID)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(e)
	return &response, nil
}

// List retrieves expenses with filtering and pagination, newest first by default
func (s *Service) List(ctx context.Context, businessID uuid.UUID, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = "expense_date"
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
		"property_id":    filter.PropertyID,
		"unit_id":        filter.UnitID,
		"category":       filter.Category,
		"payment_method": filter.PaymentMethod,
	} {
		if value != "" {
			domainFilter.Filters[key] = value
		}
	}
	period := PeriodQuery{StartDate: filter.StartDate, EndDate: filter.EndDate}.toPeriod()
	if !period.From.IsZero() {
		domainFilter.Filters["date_from"] = period.From
	}
	if !period.To.IsZero() {
		domainFilter.Filters["date_to"] = period.To
	}

	items, err := s.repo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToExpenseResponses(items), total, nil
}

// Update applies a partial update to an expense
func (s *Service) Update(ctx context.Context, businessID, expenseID uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	e, err := s.repo.FindByIDForBusiness(ctx, businessID, expenseID)
	if err != nil {
		return nil, err
	}

	category, amount, description, date := e.Category, e.Amount, e.Description, e.Date
	if req.Category != nil {
		category = expense.Category(*req.Category)
	}
	if req.Amount != nil {
		amount = *req.Amount
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Date != nil {
		date = *req.Date
	}
	if err := e.Update(category, amount, description, date); err != nil {
		return nil, err
	}
	if req.PaymentMethod != nil {
		if err := e.SetPaymentMethod(expense.PaymentMethod(*req.PaymentMethod)); err != nil {
			return nil, err
		}
	}
	if req.ReceiptNumber != nil {
		e.ReceiptNumber = *req.ReceiptNumber
	}
	if req.PaidBy != nil {
		e.PaidBy = *req.PaidBy
	}

	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	s.publish(ctx, e)
	response := ToExpenseResponse(e)
	return &response, nil
}

// Delete removes an expense
func (s *Service) Delete(ctx context.Context, businessID, expenseID uuid.UUID) error {
	e, err := s.repo.FindByIDForBusiness(ctx, businessID, expenseID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteForBusiness(ctx, businessID, expenseID); err != nil {
		return err
	}
	e.AddDomainEvent(expense.NewExpenseEvent(expense.EventTypeExpenseDeleted, e))
	s.publish(ctx, e)
	return nil
}

// Summary totals the business's expenses per category over the period
func (s *Service) Summary(ctx context.Context, businessID uuid.UUID, q PeriodQuery) (*expense.Summary, error) {
	return s.repo.SummarizeForBusiness(ctx, businessID, uuid.Nil, q.toPeriod())
}

// ForProperty lists a property's expenses in the period, newest first, with
// the per-category totals
func (s *Service) ForProperty(ctx context.Context, businessID, propertyID uuid.UUID, q PeriodQuery) (*PropertyExpensesResponse, error) {
	if _, err := s.propertyRepo.FindByIDForBusiness(ctx, businessID, propertyID); err != nil {
		return nil, err
	}
	period := q.toPeriod()
	filter := shared.DefaultFilter().WithFilter("property_id", propertyID)
	filter.OrderBy = "expense_date"
	filter.PageSize = 0
	if !period.From.IsZero() {
		filter.Filters["date_from"] = period.From
	}
	if !period.To.IsZero() {
		filter.Filters["date_to"] = period.To
	}

	items, err := s.repo.FindAllForBusiness(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}
	summary, err := s.repo.SummarizeForBusiness(ctx, businessID, propertyID, period)
	if err != nil {
		return nil, err
	}
	return &PropertyExpensesResponse{
		PropertyID: propertyID,
		Expenses:   ToExpenseResponses(items),
		Summary:    summary,
	}, nil
}

// RequestReceiptUpload returns a presigned URL for a receipt scan
func (s *Service) RequestReceiptUpload(ctx context.Context, businessID, expenseID uuid.UUID, fileName, contentType string) (*appproperty.ImageUploadResponse, error) {
	if s.presigner == nil {
		return nil, shared.NewDomainError(shared.CodeUnavailable, "Object storage is not configured")
	}
	if _, err := s.repo.FindByIDForBusiness(ctx, businessID, expenseID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/expenses/%s/%s-%s", businessID, expenseID, uuid.NewString()[:8], path.Base(fileName))
	url, expiresAt, err := s.presigner.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeUnavailable, "Failed to presign upload", err)
	}
	return &appproperty.ImageUploadResponse{UploadURL: url, Key: key, ExpiresAt: expiresAt}, nil
}

// AttachReceipt records the object key of an uploaded receipt scan
func (s *Service) AttachReceipt(ctx context.Context, businessID, expenseID uuid.UUID, req AttachReceiptRequest) (*ExpenseResponse, error) {
	e, err := s.repo.FindByIDForBusiness(ctx, businessID, expenseID)
	if err != nil {
		return nil, err
	}
	e.ReceiptImage = req.Key
	e.Touch()
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	response := ToExpenseResponse(e)
	return &response, nil
}

func (s *Service) publish(ctx context.Context, e *expense.Expense) {
	if err := shared.PublishPending(ctx, s.eventPublisher, e); err != nil {
		s.logger.Warn("Failed to publish expense events", zap.Error(err))
	}
}
