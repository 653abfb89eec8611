package tenancy

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/application/txscope"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LeaseService manages lease agreements
type LeaseService struct {
	leaseRepo      tenancy.LeaseRepository
	tenantRepo     tenancy.TenantRepository
	unitRepo       property.UnitRepository
	txScope        txscope.TransactionScope
	eventPublisher shared.EventPublisher
	expiryWindow   int
	logger         *zap.Logger
	now            func() time.Time
}

// NewLeaseService creates a new LeaseService
func NewLeaseService(
	leaseRepo tenancy.LeaseRepository,
	tenantRepo tenancy.TenantRepository,
	unitRepo property.UnitRepository,
	txScope txscope.TransactionScope,
	logger *zap.Logger,
) *LeaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaseService{
		leaseRepo:    leaseRepo,
		tenantRepo:   tenantRepo,
		unitRepo:     unitRepo,
		txScope:      txScope,
		expiryWindow: tenancy.DefaultExpiryWindowDays,
		logger:       logger,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *LeaseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetExpiryWindow overrides the default look-ahead of Expiring
func (s *LeaseService) SetExpiryWindow(days int) {
	if days > 0 {
		s.expiryWindow = days
	}
}

// Create drafts a pending lease between a tenant and a unit
func (s *LeaseService) Create(ctx context.Context, businessID uuid.UUID, req CreateLeaseRequest) (*LeaseResponse, error) {
	if _, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, req.TenantID); err != nil {
		return nil, err
	}
	if _, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, req.UnitID); err != nil {
		return nil, err
	}

	dueDay := req.PaymentDueDay
	if dueDay == 0 {
		dueDay = 1
	}
	lease, err := tenancy.NewLease(businessID, req.TenantID, req.UnitID, tenancy.LeaseTerms{
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
		PaymentDueDay: dueDay,
		LateFee:       req.LateFee,
		Terms:         req.Terms,
	})
	if err != nil {
		return nil, err
	}
	lease.DocumentKey = req.DocumentKey

	if err := s.leaseRepo.Save(ctx, lease); err != nil {
		return nil, err
	}
	s.publish(ctx, lease)

	response := ToLeaseResponse(lease)
	return &response, nil
}

// GetByID retrieves a lease by ID
func (s *LeaseService) GetByID(ctx context.Context, businessID, leaseID uuid.UUID) (*LeaseResponse, error) {
	lease, err := s.leaseRepo.FindByIDForBusiness(ctx, businessID, leaseID)
	if err != nil {
		return nil, err
	}
	response := ToLeaseResponse(lease)
	return &response, nil
}

// List retrieves leases with filtering and pagination
func (s *LeaseService) List(ctx context.Context, businessID uuid.UUID, filter LeaseListFilter) ([]LeaseResponse, int64, error) {
	domainFilter := buildFilter(filter.Search, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, "end_date")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.TenantID != "" {
		domainFilter.Filters["tenant_id"] = filter.TenantID
	}
	if filter.UnitID != "" {
		domainFilter.Filters["unit_id"] = filter.UnitID
	}

	leases, err := s.leaseRepo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leaseRepo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToLeaseResponses(leases), total, nil
}

// Update rewrites the terms of an open lease
func (s *LeaseService) Update(ctx context.Context, businessID, leaseID uuid.UUID, req UpdateLeaseRequest) (*LeaseResponse, error) {
	lease, err := s.leaseRepo.FindByIDForBusiness(ctx, businessID, leaseID)
	if err != nil {
		return nil, err
	}

	terms := lease.LeaseTerms
	if req.StartDate != nil {
		terms.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		terms.EndDate = *req.EndDate
	}
	if req.RentAmount != nil {
		terms.RentAmount = *req.RentAmount
	}
	if req.DepositAmount != nil {
		terms.DepositAmount = *req.DepositAmount
	}
	if req.PaymentDueDay != nil {
		terms.PaymentDueDay = *req.PaymentDueDay
	}
	if req.LateFee != nil {
		terms.LateFee = *req.LateFee
	}
	if req.Terms != nil {
		terms.Terms = *req.Terms
	}
	if err := lease.UpdateTerms(terms); err != nil {
		return nil, err
	}
	return s.saveLocked(ctx, lease)
}

// Sign records a signature; the lease activates once both parties signed
func (s *LeaseService) Sign(ctx context.Context, businessID, leaseID uuid.UUID, req SignLeaseRequest) (*LeaseResponse, error) {
	lease, err := s.leaseRepo.FindByIDForBusiness(ctx, businessID, leaseID)
	if err != nil {
		return nil, err
	}
	if err := lease.Sign(tenancy.Signatory(req.Party), s.now()); err != nil {
		return nil, err
	}
	return s.saveLocked(ctx, lease)
}

// Terminate ends a lease early
func (s *LeaseService) Terminate(ctx context.Context, businessID, leaseID uuid.UUID) (*LeaseResponse, error) {
	lease, err := s.leaseRepo.FindByIDForBusiness(ctx, businessID, leaseID)
	if err != nil {
		return nil, err
	}
	if err := lease.Terminate(); err != nil {
		return nil, err
	}
	return s.saveLocked(ctx, lease)
}

// Renew closes a lease and creates its active successor
func (s *LeaseService) Renew(ctx context.Context, businessID, leaseID uuid.UUID, req RenewLeaseRequest) (*LeaseResponse, error) {
	var previous, next *tenancy.Lease
	err := s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		var err error
		previous, err = repos.Leases().FindByIDForBusiness(ctx, businessID, leaseID)
		if err != nil {
			return err
		}
		rentAmount := decimal.Zero
		if req.RentAmount != nil {
			rentAmount = *req.RentAmount
		}
		next, err = previous.Renew(req.EndDate, rentAmount, s.now())
		if err != nil {
			return err
		}
		if err := repos.Leases().SaveWithLock(ctx, previous); err != nil {
			return err
		}
		return repos.Leases().Save(ctx, next)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, previous, next)

	response := ToLeaseResponse(next)
	return &response, nil
}

// Delete removes a lease that is not in force
func (s *LeaseService) Delete(ctx context.Context, businessID, leaseID uuid.UUID) error {
	lease, err := s.leaseRepo.FindByIDForBusiness(ctx, businessID, leaseID)
	if err != nil {
		return err
	}
	if lease.Status == tenancy.LeaseStatusActive {
		return shared.NewDomainError(shared.CodeConflict, "Terminate an active lease before deleting it")
	}
	return s.leaseRepo.DeleteForBusiness(ctx, businessID, leaseID)
}

// Expiring lists active leases ending within days from now; days <= 0
// falls back to the configured window
func (s *LeaseService) Expiring(ctx context.Context, businessID uuid.UUID, days int) ([]LeaseResponse, error) {
	if days <= 0 {
		days = s.expiryWindow
	}
	now := s.now()
	leases, err := s.leaseRepo.FindExpiring(ctx, businessID, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	return ToLeaseResponses(leases), nil
}

// ExpireOverdue closes every active lease whose end date has passed, across
// all businesses. Leases changed concurrently are skipped and picked up on
// the next run.
func (s *LeaseService) ExpireOverdue(ctx context.Context) (int, error) {
	now := s.now()
	leases, err := s.leaseRepo.FindOverdueActive(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range leases {
		lease := &leases[i]
		if !lease.Expire(now) {
			continue
		}
		if err := s.leaseRepo.SaveWithLock(ctx, lease); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				continue
			}
			return expired, err
		}
		s.publish(ctx, lease)
		expired++
	}
	if expired > 0 {
		s.logger.Info("Expired overdue leases", zap.Int("count", expired))
	}
	return expired, nil
}

func (s *LeaseService) saveLocked(ctx context.Context, lease *tenancy.Lease) (*LeaseResponse, error) {
	if err := s.leaseRepo.SaveWithLock(ctx, lease); err != nil {
		return nil, err
	}
	s.publish(ctx, lease)
	response := ToLeaseResponse(lease)
	return &response, nil
}

func (s *LeaseService) publish(ctx context.Context, sources ...shared.EventSource) {
	if err := shared.PublishPending(ctx, s.eventPublisher, sources...); err != nil {
		s.logger.Warn("Failed to publish lease events", zap.Error(err))
	}
}
