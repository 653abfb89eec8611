package tenancy

import (
	"context"
	"errors"
	"fmt"
	"path"
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

var errDuplicateIDNumber = shared.NewDomainError(shared.CodeConflict, "A tenant with this ID number already exists")

// TenantService runs the tenant lifecycle. Every move in or out touches the
// tenant, its unit and the property counters, and always in one transaction.
type TenantService struct {
	tenantRepo     tenancy.TenantRepository
	unitRepo       property.UnitRepository
	utilityRepo    property.UtilityRepository
	paymentRepo    rent.PaymentRepository
	txScope        txscope.TransactionScope
	counter        *appproperty.OccupancyCounter
	presigner      appproperty.UploadPresigner
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo tenancy.TenantRepository,
	unitRepo property.UnitRepository,
	utilityRepo property.UtilityRepository,
	paymentRepo rent.PaymentRepository,
	txScope txscope.TransactionScope,
	counter *appproperty.OccupancyCounter,
	logger *zap.Logger,
) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{
		tenantRepo:  tenantRepo,
		unitRepo:    unitRepo,
		utilityRepo: utilityRepo,
		paymentRepo: paymentRepo,
		txScope:     txScope,
		counter:     counter,
		logger:      logger,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *TenantService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetPresigner enables presigned document uploads
func (s *TenantService) SetPresigner(presigner appproperty.UploadPresigner) {
	s.presigner = presigner
}

// Create moves a new tenant into a vacant unit
func (s *TenantService) Create(ctx context.Context, businessID uuid.UUID, req CreateTenantRequest) (*TenantResponse, error) {
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, req.UnitID)
	if err != nil {
		return nil, err
	}
	if !unit.IsVacant() {
		return nil, shared.NewDomainErrorf(shared.CodeConflict, "Unit %s is %s, not vacant", unit.UnitNumber, unit.Status())
	}
	exists, err := s.tenantRepo.ExistsByIDNumber(ctx, businessID, req.IDNumber, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errDuplicateIDNumber
	}

	rentAmount := unit.Rent
	if req.Rent != nil {
		rentAmount = *req.Rent
	}
	var moveIn time.Time
	if req.MoveInDate != nil {
		moveIn = *req.MoveInDate
	}
	tenant, err := tenancy.NewTenant(businessID, unit.ID, req.Name, req.Phone, req.IDNumber, rentAmount, moveIn)
	if err != nil {
		return nil, err
	}
	if err := tenant.SetEmail(req.Email); err != nil {
		return nil, err
	}
	if req.PaymentMethod != "" {
		tenant.PaymentMethod = tenancy.PaymentMethod(req.PaymentMethod)
		if !tenant.PaymentMethod.IsValid() {
			return nil, shared.NewDomainErrorf(shared.CodeInvalidInput, "Invalid payment method: %s", req.PaymentMethod)
		}
	}
	if req.EmergencyContact != nil {
		tenant.EmergencyContact = toEmergencyContact(*req.EmergencyContact)
	}

	err = s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		if err := repos.Tenants().Save(ctx, tenant); err != nil {
			return err
		}
		// Reload so the versioned write below races against the latest row
		unit, err = repos.Units().FindByIDForBusiness(ctx, businessID, req.UnitID)
		if err != nil {
			return err
		}
		if _, err := repos.Properties().FindByIDForBusiness(ctx, businessID, unit.PropertyID); err != nil {
			return err
		}
		if err := unit.SetOccupied(tenant.ID); err != nil {
			return err
		}
		if err := repos.Units().SaveWithLock(ctx, unit); err != nil {
			return err
		}
		return s.counter.With(repos.Properties(), repos.Units()).Adjust(ctx, businessID, unit.PropertyID, 1, -1)
	})
	if errors.Is(err, shared.ErrAlreadyExists) {
		// A concurrent move-in with the same ID number won the unique index
		return nil, errDuplicateIDNumber
	}
	if err != nil {
		return nil, err
	}
	s.publish(ctx, tenant, unit)

	s.logger.Info("Tenant moved in",
		zap.String("business_id", businessID.String()),
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("unit_id", unit.ID.String()),
	)
	response := ToTenantResponse(tenant)
	return &response, nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, businessID, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, tenantID)
	if err != nil {
		return nil, err
	}
	response := ToTenantResponse(tenant)
	return &response, nil
}

// List retrieves tenants with filtering and pagination
func (s *TenantService) List(ctx context.Context, businessID uuid.UUID, filter TenantListFilter) ([]TenantResponse, int64, error) {
	domainFilter := buildFilter(filter.Search, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, "name")
	if filter.OrderDir == "" {
		domainFilter.OrderDir = "asc"
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.UnitID != "" {
		domainFilter.Filters["unit_id"] = filter.UnitID
	}
	if filter.PropertyID != "" {
		domainFilter.Filters["property_id"] = filter.PropertyID
	}

	tenants, err := s.tenantRepo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tenantRepo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTenantResponses(tenants), total, nil
}

// ListByProperty lists the tenants of every unit in a property
func (s *TenantService) ListByProperty(ctx context.Context, businessID, propertyID uuid.UUID, filter TenantListFilter) ([]TenantResponse, int64, error) {
	filter.PropertyID = propertyID.String()
	return s.List(ctx, businessID, filter)
}

// Update edits contact and billing details
func (s *TenantService) Update(ctx context.Context, businessID, tenantID uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, tenantID)
	if err != nil {
		return nil, err
	}

	p := tenant.Profile()
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Rent != nil {
		p.Rent = *req.Rent
	}
	if req.PaymentMethod != nil {
		p.PaymentMethod = tenancy.PaymentMethod(*req.PaymentMethod)
	}
	if req.EmergencyContact != nil {
		p.EmergencyContact = toEmergencyContact(*req.EmergencyContact)
	}
	if err := tenant.Update(p); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.SaveWithLock(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Delete vacates the tenant's unit and removes the tenant. Payments are kept.
func (s *TenantService) Delete(ctx context.Context, businessID, tenantID uuid.UUID) error {
	var (
		tenant *tenancy.Tenant
		unit   *property.Unit
	)
	err := s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		var err error
		tenant, err = repos.Tenants().FindByIDForBusiness(ctx, businessID, tenantID)
		if err != nil {
			return err
		}
		if tenant.HasUnit() {
			unit, err = s.vacate(ctx, repos, tenant, s.now())
			if err != nil {
				return err
			}
		}
		return repos.Tenants().DeleteForBusiness(ctx, businessID, tenantID)
	})
	if err != nil {
		return err
	}

	tenant.AddDomainEvent(tenancy.NewTenantDeletedEvent(tenant))
	s.publish(ctx, tenant, unit)
	return nil
}

// UpdateStatus changes a tenant's status. Moving out vacates the unit;
// reactivating a moved-out tenant re-occupies it if it is still vacant.
func (s *TenantService) UpdateStatus(ctx context.Context, businessID, tenantID uuid.UUID, req UpdateTenantStatusRequest) (*TenantResponse, error) {
	var (
		tenant *tenancy.Tenant
		unit   *property.Unit
	)
	err := s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		var err error
		tenant, err = repos.Tenants().FindByIDForBusiness(ctx, businessID, tenantID)
		if err != nil {
			return err
		}

		transition, err := tenant.PlanStatusChange(tenancy.TenantStatus(req.Status))
		if err != nil {
			return err
		}
		switch transition {
		case tenancy.TransitionNone:
			return nil
		case tenancy.TransitionPlain:
			if err := tenant.SetStatus(tenancy.TenantStatus(req.Status)); err != nil {
				return err
			}
		case tenancy.TransitionMoveOut:
			date := s.now()
			if req.MoveOutDate != nil {
				date = *req.MoveOutDate
			}
			if unit, err = s.vacate(ctx, repos, tenant, date); err != nil {
				return err
			}
			tenant.MoveOut(date)
		case tenancy.TransitionReactivate:
			if unit, err = s.reoccupy(ctx, repos, tenant); err != nil {
				return err
			}
			tenant.Reactivate()
		}
		return repos.Tenants().SaveWithLock(ctx, tenant)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, tenant, unit)

	response := ToTenantResponse(tenant)
	return &response, nil
}

// vacate releases the tenant's unit if the tenant still holds it. A unit
// already re-let to someone else is left alone.
func (s *TenantService) vacate(ctx context.Context, repos txscope.TransactionalRepositories, tenant *tenancy.Tenant, date time.Time) (*property.Unit, error) {
	unit, err := repos.Units().FindByIDForBusiness(ctx, tenant.BusinessID, tenant.UnitID)
	if err != nil {
		return nil, err
	}
	current := unit.CurrentTenantID()
	if current == nil || *current != tenant.ID {
		return nil, nil
	}
	if _, err := repos.Properties().FindByIDForBusiness(ctx, tenant.BusinessID, unit.PropertyID); err != nil {
		return nil, err
	}
	if err := s.counter.With(repos.Properties(), repos.Units()).Adjust(ctx, tenant.BusinessID, unit.PropertyID, -1, 1); err != nil {
		return nil, err
	}
	unit.SetVacant(tenant.ID, date)
	if err := repos.Units().SaveWithLock(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *TenantService) reoccupy(ctx context.Context, repos txscope.TransactionalRepositories, tenant *tenancy.Tenant) (*property.Unit, error) {
	unit, err := repos.Units().FindByIDForBusiness(ctx, tenant.BusinessID, tenant.UnitID)
	if err != nil {
		return nil, err
	}
	if err := unit.SetOccupied(tenant.ID); err != nil {
		return nil, err
	}
	if err := repos.Units().SaveWithLock(ctx, unit); err != nil {
		return nil, err
	}
	if err := s.counter.With(repos.Properties(), repos.Units()).Adjust(ctx, tenant.BusinessID, unit.PropertyID, 1, -1); err != nil {
		return nil, err
	}
	return unit, nil
}

// Balance returns what the tenant owes and has paid in rent
func (s *TenantService) Balance(ctx context.Context, businessID, tenantID uuid.UUID) (*BalanceResponse, error) {
	tenant, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, tenantID)
	if err != nil {
		return nil, err
	}
	paid, err := s.paymentRepo.SumConfirmedRent(ctx, businessID, tenantID)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{
		TenantID:       tenant.ID,
		CurrentBalance: tenant.Balance,
		TotalPaid:      paid,
	}, nil
}

// TotalDue is the unit's monthly charge plus the tenant's current balance
func (s *TenantService) TotalDue(ctx context.Context, businessID, tenantID uuid.UUID) (*TotalDueResponse, error) {
	tenant, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, tenantID)
	if err != nil {
		return nil, err
	}
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, tenant.UnitID)
	if err != nil {
		return nil, err
	}
	monthly, err := appproperty.ComputeUnitTotal(ctx, s.utilityRepo, unit)
	if err != nil {
		return nil, err
	}
	return &TotalDueResponse{
		TenantID:       tenant.ID,
		UnitID:         unit.ID,
		Monthly:        monthly,
		CurrentBalance: tenant.Balance,
		TotalDue:       monthly.Total.Add(tenant.Balance).Round(2),
	}, nil
}

// RequestDocumentUpload returns a presigned URL for uploading a tenant document
func (s *TenantService) RequestDocumentUpload(ctx context.Context, businessID, tenantID uuid.UUID, req DocumentUploadRequest) (*DocumentUploadResponse, error) {
	if s.presigner == nil {
		return nil, shared.NewDomainError(shared.CodeUnavailable, "Object storage is not configured")
	}
	if _, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, tenantID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/tenants/%s/%s-%s", businessID, tenantID, uuid.NewString()[:8], path.Base(req.FileName))
	url, expiresAt, err := s.presigner.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeUnavailable, "Failed to presign upload", err)
	}
	return &DocumentUploadResponse{UploadURL: url, Key: key, ExpiresAt: expiresAt}, nil
}

// AttachDocument registers an uploaded document on the tenant
func (s *TenantService) AttachDocument(ctx context.Context, businessID, tenantID uuid.UUID, req AttachDocumentRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByIDForBusiness(ctx, businessID, tenantID)
	if err != nil {
		return nil, err
	}
	before := tenant.Version
	if err := tenant.AddDocument(req.Key); err != nil {
		return nil, err
	}
	if tenant.Version != before {
		if err := s.tenantRepo.SaveWithLock(ctx, tenant); err != nil {
			return nil, err
		}
	}
	response := ToTenantResponse(tenant)
	return &response, nil
}

func (s *TenantService) publish(ctx context.Context, tenant *tenancy.Tenant, unit *property.Unit) {
	sources := []shared.EventSource{tenant}
	if unit != nil {
		sources = append(sources, unit)
	}
	if err := shared.PublishPending(ctx, s.eventPublisher, sources...); err != nil {
		s.logger.Warn("Failed to publish tenant events", zap.Error(err))
	}
}

func toEmergencyContact(dto EmergencyContactDTO) tenancy.EmergencyContact {
	return tenancy.EmergencyContact{
		Name:         dto.Name,
		Phone:        dto.Phone,
		Relationship: dto.Relationship,
	}
}
