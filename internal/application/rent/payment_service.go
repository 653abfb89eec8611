package rent

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	appproperty "github.com/rentdesk/backend/internal/application/property"
	"github.com/rentdesk/backend/internal/application/txscope"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// PaymentService records tenant payments and keeps tenant balances in step
// with confirmed rent.
type PaymentService struct {
	paymentRepo    rent.PaymentRepository
	tenantRepo     tenancy.TenantRepository
	unitRepo       property.UnitRepository
	utilityRepo    property.UtilityRepository
	propertyRepo   property.PropertyRepository
	txScope        txscope.TransactionScope
	renderer       rent.ReceiptRenderer
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo rent.PaymentRepository,
	tenantRepo tenancy.TenantRepository,
	unitRepo property.UnitRepository,
	utilityRepo property.UtilityRepository,
	propertyRepo property.PropertyRepository,
	txScope txscope.TransactionScope,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		paymentRepo:  paymentRepo,
		tenantRepo:   tenantRepo,
		unitRepo:     unitRepo,
		utilityRepo:  utilityRepo,
		propertyRepo: propertyRepo,
		txScope:      txScope,
		logger:       logger,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetReceiptRenderer enables PDF receipts
func (s *PaymentService) SetReceiptRenderer(renderer rent.ReceiptRenderer) {
	s.renderer = renderer
}

// Record stores a new payment. The receipt number is drawn from the
// business's monthly sequence in the same transaction as the insert, and a
// payment recorded as confirmed settles the tenant balance right away.
func (s *PaymentService) Record(ctx context.Context, businessID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	tenant, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, req.TenantID)
	if err != nil {
		return nil, err
	}
	unitID := req.UnitID
	if unitID == uuid.Nil {
		unitID = tenant.UnitID
	}
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, unitID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}
	dueDate := paymentDate
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}
	period := rent.Period{Month: req.Month, Year: req.Year}
	if period.Month == 0 {
		period.Month = int(paymentDate.Month())
	}
	if period.Year == 0 {
		period.Year = paymentDate.Year()
	}
	method := rent.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = rent.PaymentMethod(tenant.PaymentMethod)
	}

	payment, err := rent.NewRentPayment(businessID, tenant.ID, unit.ID, req.Amount, rent.PaymentType(req.PaymentType), method, paymentDate, dueDate, period)
	if err != nil {
		return nil, err
	}
	payment.Description = req.Description

	reference := req.ReferenceNumber
	if reference == "" {
		reference = rent.NewReferenceNumber(now)
	}
	taken, err := s.paymentRepo.ExistsByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainErrorf(shared.CodeConflict, "Reference number %s is already used", reference)
	}

	switch {
	case req.Breakdown != nil:
		payment.SetBreakdown(req.Breakdown.toDomain())
	case payment.Type == rent.PaymentTypeRent:
		monthly, err := appproperty.ComputeUnitTotal(ctx, s.utilityRepo, unit)
		if err != nil {
			return nil, err
		}
		payment.SetBreakdown(breakdownFromMonthly(monthly))
	}

	var updatedTenant *tenancy.Tenant
	err = s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		receipt := req.ReceiptNumber
		if receipt == "" {
			prefix := rent.ReceiptPrefix(now)
			seq, err := repos.ReceiptSequencer().Next(ctx, businessID, prefix)
			if err != nil {
				return err
			}
			receipt = rent.FormatReceiptNumber(prefix, seq)
		} else {
			exists, err := repos.Payments().ExistsByReceipt(ctx, businessID, receipt)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewDomainErrorf(shared.CodeConflict, "Receipt number %s is already used", receipt)
			}
		}
		if err := payment.AssignNumbers(reference, receipt); err != nil {
			return err
		}

		if req.IsConfirmed {
			if err := payment.Confirm(req.ConfirmedBy, now); err != nil {
				return err
			}
		}
		if err := repos.Payments().Save(ctx, payment); err != nil {
			return err
		}
		if payment.IsConfirmed {
			updatedTenant, err = s.settle(ctx, repos, payment, false)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, payment, updatedTenant)

	s.logger.Info("Payment recorded",
		zap.String("business_id", businessID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("receipt_number", payment.ReceiptNumber),
		zap.Bool("confirmed", payment.IsConfirmed),
	)
	response := ToPaymentResponse(payment)
	return &response, nil
}

// Confirm marks a payment as received and applies it to the tenant balance
func (s *PaymentService) Confirm(ctx context.Context, businessID, paymentID uuid.UUID, req ConfirmPaymentRequest) (*PaymentResponse, error) {
	var (
		payment *rent.RentPayment
		tenant  *tenancy.Tenant
	)
	err := s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		var err error
		payment, err = repos.Payments().FindByIDForBusiness(ctx, businessID, paymentID)
		if err != nil {
			return err
		}
		if err := payment.Confirm(req.ConfirmedBy, s.now()); err != nil {
			return err
		}
		if err := repos.Payments().SaveWithLock(ctx, payment); err != nil {
			return err
		}
		tenant, err = s.settle(ctx, repos, payment, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, payment, tenant)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Update edits a payment. Flipping the confirmation flag applies or
// reverses the balance effect; other edits never touch the balance.
func (s *PaymentService) Update(ctx context.Context, businessID, paymentID uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	var (
		payment *rent.RentPayment
		tenant  *tenancy.Tenant
	)
	err := s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		var err error
		payment, err = repos.Payments().FindByIDForBusiness(ctx, businessID, paymentID)
		if err != nil {
			return err
		}

		d := payment.Details()
		if req.Amount != nil {
			d.Amount = *req.Amount
		}
		if req.PaymentType != nil {
			d.Type = rent.PaymentType(*req.PaymentType)
		}
		if req.PaymentMethod != nil {
			d.Method = rent.PaymentMethod(*req.PaymentMethod)
		}
		if req.PaymentDate != nil {
			d.PaymentDate = *req.PaymentDate
		}
		if req.DueDate != nil {
			d.DueDate = *req.DueDate
		}
		if req.Month != nil {
			d.Period.Month = *req.Month
		}
		if req.Year != nil {
			d.Period.Year = *req.Year
		}
		if req.Description != nil {
			d.Description = *req.Description
		}
		confirmed := payment.IsConfirmed
		if req.IsConfirmed != nil {
			confirmed = *req.IsConfirmed
		}

		change, err := payment.Revise(d, confirmed, req.ConfirmedBy, s.now())
		if err != nil {
			return err
		}
		if req.Breakdown != nil {
			payment.SetBreakdown(req.Breakdown.toDomain())
		}
		if err := repos.Payments().SaveWithLock(ctx, payment); err != nil {
			return err
		}

		switch change {
		case rent.ConfirmationGranted:
			tenant, err = s.settle(ctx, repos, payment, false)
		case rent.ConfirmationWithdrawn:
			tenant, err = s.settle(ctx, repos, payment, true)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, payment, tenant)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Delete removes a payment, first reversing its balance effect if it was
// a confirmed rent payment.
func (s *PaymentService) Delete(ctx context.Context, businessID, paymentID uuid.UUID) error {
	var (
		payment *rent.RentPayment
		tenant  *tenancy.Tenant
	)
	err := s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		var err error
		payment, err = repos.Payments().FindByIDForBusiness(ctx, businessID, paymentID)
		if err != nil {
			return err
		}
		if payment.IsConfirmed {
			if tenant, err = s.settle(ctx, repos, payment, true); err != nil {
				return err
			}
		}
		return repos.Payments().DeleteForBusiness(ctx, businessID, paymentID)
	})
	if err != nil {
		return err
	}

	payment.AddDomainEvent(rent.NewPaymentDeletedEvent(payment))
	s.publish(ctx, payment, tenant)
	return nil
}

// settle applies (or with reverse, undoes) a confirmed payment against the
// tenant balance. Only rent moves the balance. A tenant deleted since the
// payment was taken is skipped; its history stays.
func (s *PaymentService) settle(ctx context.Context, repos txscope.TransactionalRepositories, payment *rent.RentPayment, reverse bool) (*tenancy.Tenant, error) {
	if !payment.AffectsBalance() {
		return nil, nil
	}
	tenant, err := repos.Tenants().FindByIDForBusiness(ctx, payment.BusinessID, payment.TenantID)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("Tenant of payment no longer exists",
			zap.String("payment_id", payment.ID.String()),
			zap.String("tenant_id", payment.TenantID.String()),
		)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if reverse {
		tenant.ReversePayment(payment.Amount, payment.ID)
	} else {
		tenant.ApplyPayment(payment.Amount, payment.ID)
	}
	if err := repos.Tenants().SaveWithLock(ctx, tenant); err != nil {
		return nil, err
	}

	if !reverse {
		unit, err := repos.Units().FindByIDForBusiness(ctx, payment.BusinessID, payment.UnitID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if unit != nil {
			unit.RecordPayment(payment.PaymentDate)
			if err := repos.Units().SaveWithLock(ctx, unit); err != nil {
				return nil, err
			}
		}
	}
	return tenant, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, businessID, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByIDForBusiness(ctx, businessID, paymentID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments with filtering and pagination
func (s *PaymentService) List(ctx context.Context, businessID uuid.UUID, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = "payment_date"
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	if filter.TenantID != "" {
		domainFilter.Filters["tenant_id"] = filter.TenantID
	}
	if filter.UnitID != "" {
		domainFilter.Filters["unit_id"] = filter.UnitID
	}
	if filter.PaymentType != "" {
		domainFilter.Filters["payment_type"] = filter.PaymentType
	}
	if filter.IsConfirmed != nil {
		domainFilter.Filters["is_confirmed"] = *filter.IsConfirmed
	}
	if filter.Month > 0 {
		domainFilter.Filters["month"] = filter.Month
	}
	if filter.Year > 0 {
		domainFilter.Filters["year"] = filter.Year
	}

	payments, err := s.paymentRepo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPaymentResponses(payments), total, nil
}

// ListByTenant lists the payments of one tenant, newest first
func (s *PaymentService) ListByTenant(ctx context.Context, businessID, tenantID uuid.UUID, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	if _, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, tenantID); err != nil {
		return nil, 0, err
	}
	filter.TenantID = tenantID.String()
	return s.List(ctx, businessID, filter)
}

// Summary totals confirmed payments by type, optionally for one month or year
func (s *PaymentService) Summary(ctx context.Context, businessID uuid.UUID, req SummaryRequest) (*rent.PaymentSummary, error) {
	filter := rent.SummaryFilter{Month: req.Month, Year: req.Year}
	totals, err := s.paymentRepo.TotalsByType(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}
	summary := rent.NewPaymentSummary(filter, totals)
	return &summary, nil
}

// Receipt renders the payment receipt as a PDF
func (s *PaymentService) Receipt(ctx context.Context, businessID, paymentID uuid.UUID) (*ReceiptDocument, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError(shared.CodeUnavailable, "Receipt printing is not configured")
	}
	payment, err := s.paymentRepo.FindByIDForBusiness(ctx, businessID, paymentID)
	if err != nil {
		return nil, err
	}

	receipt := rent.Receipt{Payment: payment}
	if tenant, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, payment.TenantID); err == nil {
		receipt.TenantName = tenant.Name
		receipt.TenantPhone = tenant.Phone
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, payment.UnitID); err == nil {
		receipt.UnitNumber = unit.UnitNumber
		if p, err := s.propertyRepo.FindByIDForBusiness(ctx, businessID, unit.PropertyID); err == nil {
			receipt.PropertyName = p.Name
			receipt.Address = p.Address
			receipt.LandlordName = p.LandlordName
		}
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	pdf, err := s.renderer.RenderReceipt(ctx, receipt)
	if err != nil {
		s.logger.Error("Failed to render receipt",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err),
		)
		return nil, shared.WrapDomainError(shared.CodeUnavailable, "Failed to render receipt", err)
	}
	return &ReceiptDocument{
		FileName: payment.ReceiptNumber + ".pdf",
		Content:  pdf,
	}, nil
}

func (s *PaymentService) publish(ctx context.Context, payment *rent.RentPayment, tenant *tenancy.Tenant) {
	sources := []shared.EventSource{payment}
	if tenant != nil {
		sources = append(sources, tenant)
	}
	if err := shared.PublishPending(ctx, s.eventPublisher, sources...); err != nil {
		s.logger.Warn("Failed to publish payment events", zap.Error(err))
	}
}

func breakdownFromMonthly(m property.MonthlyTotal) rent.Breakdown {
	lines := make([]rent.BreakdownLine, len(m.Utilities))
	for i, c := range m.Utilities {
		lines[i] = rent.BreakdownLine{
			UtilityID:    c.UtilityID,
			Name:         c.Name,
			Amount:       c.Amount,
			BillingCycle: string(c.BillingCycle),
		}
	}
	return rent.Breakdown{Rent: m.Rent, Utilities: lines, Total: m.Total}
}
