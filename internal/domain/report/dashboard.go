package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardQuery bounds the time-dependent figures of a summary
type DashboardQuery struct {
	BusinessID   uuid.UUID
	MonthStart   time.Time
	MonthEnd     time.Time
	RevenueSince time.Time // start of the trailing revenue window
	LeaseHorizon time.Time // leases ending on or before this count as expiring
	Now          time.Time
}

// DashboardSummary is the per-business read model behind the dashboard
type DashboardSummary struct {
	BusinessID uuid.UUID `json:"business_id"`

	TotalProperties int     `json:"total_properties"`
	TotalUnits      int     `json:"total_units"`
	OccupiedUnits   int     `json:"occupied_units"`
	VacantUnits     int     `json:"vacant_units"`
	OtherUnits      int     `json:"other_units"`
	OccupancyRate   float64 `json:"occupancy_rate"`

	TotalTenants   int `json:"total_tenants"`
	ActiveTenants  int `json:"active_tenants"`
	OverdueTenants int `json:"overdue_tenants"`

	TotalRevenue       decimal.Decimal `json:"total_revenue"`        // confirmed rent, all time
	TotalDeposits      decimal.Decimal `json:"total_deposits"`       // confirmed deposits, all time
	MonthlyRevenue     decimal.Decimal `json:"monthly_revenue"`      // confirmed rent in the trailing window
	CollectedThisMonth decimal.Decimal `json:"collected_this_month"` // confirmed payments of every type this month
	MonthlyRentDue     decimal.Decimal `json:"monthly_rent_due"`
	CollectionRate     float64         `json:"collection_rate"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	PendingPayments    int             `json:"pending_payments"`
	MonthlyExpenses    decimal.Decimal `json:"monthly_expenses"` // expenses dated this month
	NetProfit          decimal.Decimal `json:"net_profit"`

	PendingMaintenance    int `json:"pending_maintenance"`
	InProgressMaintenance int `json:"in_progress_maintenance"`
	CompletedMaintenance  int `json:"completed_maintenance"`
	OpenMaintenance       int `json:"open_maintenance"`

	TotalUtilities  int `json:"total_utilities"`
	ExpiringLeases  int `json:"expiring_leases"`
	ActiveLandlords int `json:"active_landlords"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Finalize derives the rates and totals that depend on the raw counts
func (s *DashboardSummary) Finalize() {
	s.OccupancyRate = 0
	if s.TotalUnits > 0 {
		s.OccupancyRate = roundOne(float64(s.OccupiedUnits) * 100 / float64(s.TotalUnits))
	}
	s.CollectionRate = 0
	if s.MonthlyRentDue.IsPositive() {
		rate, _ := s.MonthlyRevenue.Div(s.MonthlyRentDue).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		s.CollectionRate = rate
	}
	s.OpenMaintenance = s.PendingMaintenance + s.InProgressMaintenance
	s.NetProfit = s.MonthlyRevenue.Sub(s.MonthlyExpenses)
}

func roundOne(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

// DashboardRepository computes the raw figures of a summary
type DashboardRepository interface {
	Summary(ctx context.Context, q DashboardQuery) (*DashboardSummary, error)
}

// DashboardCache stores computed summaries per business.
// Get returns nil without error on a miss.
type DashboardCache interface {
	Get(ctx context.Context, businessID uuid.UUID) (*DashboardSummary, error)
	Set(ctx context.Context, summary *DashboardSummary, ttl time.Duration) error
	Invalidate(ctx context.Context, businessID uuid.UUID) error
}
