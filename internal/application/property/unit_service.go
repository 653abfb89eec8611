package property

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/application/txscope"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UploadPresigner hands out short-lived upload URLs for object storage
type UploadPresigner interface {
	PresignUpload(ctx context.Context, key, contentType string) (url string, expiresAt time.Time, err error)
}

// UnitService handles unit ledger operations
type UnitService struct {
	unitRepo       property.UnitRepository
	propertyRepo   property.PropertyRepository
	utilityRepo    property.UtilityRepository
	tenantRepo     tenancy.TenantRepository
	txScope        txscope.TransactionScope
	counter        *OccupancyCounter
	presigner      UploadPresigner
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewUnitService creates a new UnitService
func NewUnitService(
	unitRepo property.UnitRepository,
	propertyRepo property.PropertyRepository,
	utilityRepo property.UtilityRepository,
	tenantRepo tenancy.TenantRepository,
	txScope txscope.TransactionScope,
	counter *OccupancyCounter,
	logger *zap.Logger,
) *UnitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitService{
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		utilityRepo:  utilityRepo,
		tenantRepo:   tenantRepo,
		txScope:      txScope,
		counter:      counter,
		logger:       logger,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *UnitService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetPresigner enables presigned image uploads
func (s *UnitService) SetPresigner(presigner UploadPresigner) {
	s.presigner = presigner
}

// Create adds a vacant unit to a property and refreshes the property counters
func (s *UnitService) Create(ctx context.Context, businessID uuid.UUID, req CreateUnitRequest) (*UnitResponse, error) {
	if _, err := s.propertyRepo.FindByIDForBusiness(ctx, businessID, req.PropertyID); err != nil {
		return nil, err
	}
	exists, err := s.unitRepo.ExistsByNumber(ctx, businessID, req.PropertyID, req.UnitNumber, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf(shared.CodeAlreadyExists, "Unit %s already exists in this property", req.UnitNumber)
	}

	unit, err := property.NewUnit(businessID, req.PropertyID, req.UnitNumber, property.UnitType(req.Type), req.Rent, req.Deposit)
	if err != nil {
		return nil, err
	}
	unit.Description = req.Description
	if req.Amenities != nil {
		unit.Amenities = req.Amenities
	}

	err = s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		if err := repos.Units().Save(ctx, unit); err != nil {
			return err
		}
		_, err := s.counter.With(repos.Properties(), repos.Units()).Recompute(ctx, businessID, unit.PropertyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, unit)

	response := ToUnitResponse(unit)
	return &response, nil
}

// GetByID retrieves a unit by ID
func (s *UnitService) GetByID(ctx context.Context, businessID, unitID uuid.UUID) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, unitID)
	if err != nil {
		return nil, err
	}
	response := ToUnitResponse(unit)
	return &response, nil
}

// List retrieves units with filtering and pagination
func (s *UnitService) List(ctx context.Context, businessID uuid.UUID, filter UnitListFilter) ([]UnitResponse, int64, error) {
	domainFilter := filter.ToDomainFilter("unit_number")
	if filter.OrderDir == "" {
		domainFilter.OrderDir = "asc"
	}
	if filter.PropertyID != "" {
		domainFilter.Filters["property_id"] = filter.PropertyID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	units, err := s.unitRepo.FindAllForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.unitRepo.CountForBusiness(ctx, businessID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToUnitResponses(units), total, nil
}

// ListByProperty lists the units of one property
func (s *UnitService) ListByProperty(ctx context.Context, businessID, propertyID uuid.UUID, filter UnitListFilter) ([]UnitResponse, int64, error) {
	if _, err := s.propertyRepo.FindByIDForBusiness(ctx, businessID, propertyID); err != nil {
		return nil, 0, err
	}
	filter.PropertyID = propertyID.String()
	return s.List(ctx, businessID, filter)
}

// ListAvailable lists vacant units
func (s *UnitService) ListAvailable(ctx context.Context, businessID uuid.UUID) ([]UnitResponse, error) {
	units, err := s.unitRepo.FindVacant(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return ToUnitResponses(units), nil
}

// Update edits the descriptive fields of a unit
func (s *UnitService) Update(ctx context.Context, businessID, unitID uuid.UUID, req UpdateUnitRequest) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, unitID)
	if err != nil {
		return nil, err
	}

	number := valueOr(req.UnitNumber, unit.UnitNumber)
	if number != unit.UnitNumber {
		exists, err := s.unitRepo.ExistsByNumber(ctx, businessID, unit.PropertyID, number, unit.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainErrorf(shared.CodeAlreadyExists, "Unit %s already exists in this property", number)
		}
	}
	unitType := unit.Type
	if req.Type != nil {
		unitType = property.UnitType(*req.Type)
	}

	err = unit.Update(number, unitType,
		valueOr(req.Rent, unit.Rent),
		valueOr(req.Deposit, unit.Deposit),
		valueOr(req.Description, unit.Description),
		req.Amenities,
	)
	if err != nil {
		return nil, err
	}
	if err := s.unitRepo.SaveWithLock(ctx, unit); err != nil {
		return nil, err
	}

	response := ToUnitResponse(unit)
	return &response, nil
}

// UpdateStatus moves a unit between vacant, maintenance and reserved and
// rebuilds the property counters in the same transaction
func (s *UnitService) UpdateStatus(ctx context.Context, businessID, unitID uuid.UUID, req UpdateUnitStatusRequest) (*UnitResponse, error) {
	status := property.UnitStatus(req.Status)
	var unit *property.Unit

	err := s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		var err error
		unit, err = repos.Units().FindByIDForBusiness(ctx, businessID, unitID)
		if err != nil {
			return err
		}
		if unit.Status() == status {
			return nil
		}
		if err := unit.ChangeStatus(status, s.now()); err != nil {
			return err
		}
		if err := repos.Units().SaveWithLock(ctx, unit); err != nil {
			return err
		}
		_, err = s.counter.With(repos.Properties(), repos.Units()).Recompute(ctx, businessID, unit.PropertyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, unit)

	response := ToUnitResponse(unit)
	return &response, nil
}

// Delete removes a unit no tenant references
func (s *UnitService) Delete(ctx context.Context, businessID, unitID uuid.UUID) error {
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, unitID)
	if err != nil {
		return err
	}
	tenants, err := s.tenantRepo.CountByUnit(ctx, businessID, unitID)
	if err != nil {
		return err
	}
	if tenants > 0 {
		return shared.NewDomainErrorf(shared.CodeConflict, "Unit %s is still referenced by %d tenant(s)", unit.UnitNumber, tenants)
	}

	return s.txScope.Execute(ctx, func(repos txscope.TransactionalRepositories) error {
		if err := repos.Units().DeleteForBusiness(ctx, businessID, unitID); err != nil {
			return err
		}
		_, err := s.counter.With(repos.Properties(), repos.Units()).Recompute(ctx, businessID, unit.PropertyID)
		return err
	})
}

// AddOrReplaceUtility attaches a utility to a unit, or updates the attachment
func (s *UnitService) AddOrReplaceUtility(ctx context.Context, businessID, unitID uuid.UUID, req UnitUtilityRequest) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, unitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.utilityRepo.FindByIDForBusiness(ctx, businessID, req.UtilityID); err != nil {
		return nil, err
	}

	included := valueOr(req.IsIncluded, true)
	charge := valueOr(req.UnitCharge, decimal.Zero)
	if err := unit.AddOrReplaceUtility(req.UtilityID, included, charge); err != nil {
		return nil, err
	}
	if err := s.unitRepo.SaveWithLock(ctx, unit); err != nil {
		return nil, err
	}

	response := ToUnitResponse(unit)
	return &response, nil
}

// RemoveUtility detaches a utility from a unit; detaching an absent utility is a no-op
func (s *UnitService) RemoveUtility(ctx context.Context, businessID, unitID, utilityID uuid.UUID) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, unitID)
	if err != nil {
		return nil, err
	}
	if unit.RemoveUtility(utilityID) {
		if err := s.unitRepo.SaveWithLock(ctx, unit); err != nil {
			return nil, err
		}
	}

	response := ToUnitResponse(unit)
	return &response, nil
}

// MonthlyTotal prices the recurring monthly charge of a unit
func (s *UnitService) MonthlyTotal(ctx context.Context, businessID, unitID uuid.UUID) (*property.MonthlyTotal, error) {
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, unitID)
	if err != nil {
		return nil, err
	}
	total, err := ComputeUnitTotal(ctx, s.utilityRepo, unit)
	if err != nil {
		return nil, err
	}
	return &total, nil
}

// RefreshVacancy recomputes days-vacant for every vacant unit; uuid.Nil
// covers all businesses. It returns how many units changed.
func (s *UnitService) RefreshVacancy(ctx context.Context, businessID uuid.UUID) (int, error) {
	units, err := s.unitRepo.FindVacant(ctx, businessID)
	if err != nil {
		return 0, err
	}
	now := s.now()
	changed := 0
	for i := range units {
		if !units[i].RefreshDaysVacant(now) {
			continue
		}
		if err := s.unitRepo.UpdateDaysVacant(ctx, units[i].ID, units[i].DaysVacant); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// RequestImageUpload returns a presigned URL for uploading a unit photo
func (s *UnitService) RequestImageUpload(ctx context.Context, businessID, unitID uuid.UUID, fileName, contentType string) (*ImageUploadResponse, error) {
	if s.presigner == nil {
		return nil, shared.NewDomainError(shared.CodeUnavailable, "Object storage is not configured")
	}
	if _, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, unitID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/units/%s/%s-%s", businessID, unitID, uuid.NewString()[:8], path.Base(fileName))
	url, expiresAt, err := s.presigner.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeUnavailable, "Failed to presign upload", err)
	}
	return &ImageUploadResponse{UploadURL: url, Key: key, ExpiresAt: expiresAt}, nil
}

// AttachImage registers an uploaded photo on the unit
func (s *UnitService) AttachImage(ctx context.Context, businessID, unitID uuid.UUID, req AttachImageRequest) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForBusiness(ctx, businessID, unitID)
	if err != nil {
		return nil, err
	}
	if err := unit.AddImage(req.Key); err != nil {
		return nil, err
	}
	if err := s.unitRepo.SaveWithLock(ctx, unit); err != nil {
		return nil, err
	}
	response := ToUnitResponse(unit)
	return &response, nil
}

func (s *UnitService) publish(ctx context.Context, sources ...shared.EventSource) {
	if err := shared.PublishPending(ctx, s.eventPublisher, sources...); err != nil {
		s.logger.Warn("Failed to publish unit events", zap.Error(err))
	}
}
