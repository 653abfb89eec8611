package persistence

import (
	"context"

	"github.com/rentdesk/backend/internal/domain/landlord"
	"github.com/rentdesk/backend/internal/domain/maintenance"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/report"
	"github.com/rentdesk/backend/internal/domain/tenancy"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDashboardRepository implements report.DashboardRepository using GORM
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// Summary aggregates the figures of one business. Rates are left to
// DashboardSummary.Finalize.
func (r *GormDashboardRepository) Summary(ctx context.Context, q report.DashboardQuery) (*report.DashboardSummary, error) {
	db := r.db.WithContext(ctx)
	scope := businessScope(q.BusinessID)
	s := &report.DashboardSummary{BusinessID: q.BusinessID}

	var properties int64
	if err := db.Model(&models.PropertyModel{}).Scopes(scope).Count(&properties).Error; err != nil {
		return nil, translateError(err, "dashboard")
	}
	s.TotalProperties = int(properties)

	// Units are counted from their own rows so the summary never depends on
	// the property counters being reconciled.
	var unitRows []struct {
		Status property.UnitStatus
		Count  int
	}
	if err := db.Model(&models.UnitModel{}).Scopes(scope).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&unitRows).Error; err != nil {
		return nil, translateError(err, "dashboard")
	}
	byStatus := make(map[property.UnitStatus]int, len(unitRows))
	for _, row := range unitRows {
		byStatus[row.Status] += row.Count
	}
	counts := property.CountsFromStatuses(byStatus)
	s.TotalUnits = counts.Total
	s.OccupiedUnits = counts.Occupied
	s.VacantUnits = counts.Vacant
	s.OtherUnits = counts.Other

	var tenantRows []struct {
		Status      tenancy.TenantStatus
		Count       int
		Owing       int
		Outstanding decimal.Decimal
		RentDue     decimal.Decimal
	}
	if err := db.Model(&models.TenantModel{}).Scopes(scope).
		Select("status, COUNT(*) AS count, " +
			"SUM(CASE WHEN balance > 0 THEN 1 ELSE 0 END) AS owing, " +
			"COALESCE(SUM(CASE WHEN balance > 0 THEN balance ELSE 0 END), 0) AS outstanding, " +
			"COALESCE(SUM(rent), 0) AS rent_due").
		Group("status").
		Scan(&tenantRows).Error; err != nil {
		return nil, translateError(err, "dashboard")
	}
	s.OutstandingBalance = decimal.Zero
	s.MonthlyRentDue = decimal.Zero
	for _, row := range tenantRows {
		s.TotalTenants += row.Count
		if row.Status == tenancy.TenantStatusMovedOut {
			continue
		}
		switch row.Status {
		case tenancy.TenantStatusActive:
			s.ActiveTenants += row.Count
			s.OverdueTenants += row.Owing
		case tenancy.TenantStatusOverdue:
			s.OverdueTenants += row.Count
		default:
			s.OverdueTenants += row.Owing
		}
		s.OutstandingBalance = s.OutstandingBalance.Add(row.Outstanding)
		if row.Status == tenancy.TenantStatusActive || row.Status == tenancy.TenantStatusOverdue {
			s.MonthlyRentDue = s.MonthlyRentDue.Add(row.RentDue)
		}
	}

	var revenueRows []struct {
		PaymentType rent.PaymentType
		Total       decimal.Decimal
	}
	if err := db.Model(&models.RentPaymentModel{}).Scopes(scope).
		Select("payment_type, COALESCE(SUM(amount), 0) AS total").
		Where("is_confirmed = ?", true).
		Group("payment_type").
		Scan(&revenueRows).Error; err != nil {
		return nil, translateError(err, "dashboard")
	}
	s.TotalRevenue = decimal.Zero
	s.TotalDeposits = decimal.Zero
	for _, row := range revenueRows {
		switch row.PaymentType {
		case rent.PaymentTypeRent:
			s.TotalRevenue = row.Total
		case rent.PaymentTypeDeposit:
			s.TotalDeposits = row.Total
		}
	}

	monthly, err := confirmedTotal(db.Model(&models.RentPaymentModel{}).Scopes(scope).
		Where("payment_type = ? AND payment_date >= ?", rent.PaymentTypeRent, q.RevenueSince))
	if err != nil {
		return nil, err
	}
	s.MonthlyRevenue = monthly

	collected, err := confirmedTotal(db.Model(&models.RentPaymentModel{}).Scopes(scope).
		Where("payment_date >= ? AND payment_date < ?", q.MonthStart, q.MonthEnd))
	if err != nil {
		return nil, err
	}
	s.CollectedThisMonth = collected

	var spent struct {
		Total decimal.Decimal
	}
	if err := db.Model(&models.ExpenseModel{}).Scopes(scope).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("expense_date >= ? AND expense_date < ?", q.MonthStart, q.MonthEnd).
		Scan(&spent).Error; err != nil {
		return nil, translateError(err, "dashboard")
	}
	s.MonthlyExpenses = spent.Total

	var pending int64
	if err := db.Model(&models.RentPaymentModel{}).Scopes(scope).
		Where("is_confirmed = ?", false).
		Count(&pending).Error; err != nil {
		return nil, translateError(err, "dashboard")
	}
	s.PendingPayments = int(pending)

	var requestRows []struct {
		Status maintenance.Status
		Count  int
	}
	if err := db.Model(&models.MaintenanceRequestModel{}).Scopes(scope).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&requestRows).Error; err != nil {
		return nil, translateError(err, "dashboard")
	}
	for _, row := range requestRows {
		switch row.Status {
		case maintenance.StatusPending:
			s.PendingMaintenance = row.Count
		case maintenance.StatusInProgress:
			s.InProgressMaintenance = row.Count
		case maintenance.StatusCompleted:
			s.CompletedMaintenance = row.Count
		}
	}

	var utilities int64
	if err := db.Model(&models.UtilityModel{}).Scopes(scope).Count(&utilities).Error; err != nil {
		return nil, translateError(err, "dashboard")
	}
	s.TotalUtilities = int(utilities)

	var expiring int64
	if err := db.Model(&models.LeaseModel{}).Scopes(scope).
		Where("status = ? AND end_date >= ? AND end_date <= ?", tenancy.LeaseStatusActive, q.Now, q.LeaseHorizon).
		Count(&expiring).Error; err != nil {
		return nil, translateError(err, "dashboard")
	}
	s.ExpiringLeases = int(expiring)

	var landlords int64
	if err := db.Model(&models.LandlordModel{}).Scopes(scope).
		Where("status = ?", landlord.StatusActive).
		Count(&landlords).Error; err != nil {
		return nil, translateError(err, "dashboard")
	}
	s.ActiveLandlords = int(landlords)

	return s, nil
}

func confirmedTotal(query *gorm.DB) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").
		Where("is_confirmed = ?", true).
		Scan(&row).Error; err != nil {
		return decimal.Zero, translateError(err, "dashboard")
	}
	return row.Total, nil
}
