package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/maintenance"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// OccupancySnapshot is one business's occupancy at collection time
type OccupancySnapshot struct {
	BusinessID     uuid.UUID
	UnitsByStatus  map[string]int64
	OverdueTenants int64
}

// OccupancyProvider reads current occupancy for every business
type OccupancyProvider interface {
	OccupancySnapshots(ctx context.Context) ([]OccupancySnapshot, error)
}

// BusinessMetricsConfig holds configuration for business metrics
type BusinessMetricsConfig struct {
	Meter     metric.Meter
	Logger    *zap.Logger
	Occupancy OccupancyProvider
}

// BusinessMetrics counts rent activity from domain events and samples
// occupancy gauges on an interval. It subscribes to the event bus.
type BusinessMetrics struct {
	logger    *zap.Logger
	occupancy OccupancyProvider

	paymentsRecorded  *Counter
	paymentsConfirmed *FloatCounter
	tenantMoves       *Counter
	maintenanceOpened *Counter

	units          *Gauge
	overdueTenants *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once
}

// NewBusinessMetrics creates the instruments
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		logger:    logger,
		occupancy: cfg.Occupancy,
		stopChan:  make(chan struct{}),
	}

	var err error
	if bm.paymentsRecorded, err = NewCounter(cfg.Meter,
		"rentdesk_payments_recorded_total", "Payments recorded", "{payments}"); err != nil {
		return nil, err
	}
	if bm.paymentsConfirmed, err = NewFloatCounter(cfg.Meter,
		"rentdesk_payments_confirmed_amount", "Amount of confirmed payments", "{currency}"); err != nil {
		return nil, err
	}
	if bm.tenantMoves, err = NewCounter(cfg.Meter,
		"rentdesk_tenant_moves_total", "Tenants moving in or out of units", "{moves}"); err != nil {
		return nil, err
	}
	if bm.maintenanceOpened, err = NewCounter(cfg.Meter,
		"rentdesk_maintenance_opened_total", "Maintenance requests opened", "{requests}"); err != nil {
		return nil, err
	}
	if bm.units, err = NewGauge(cfg.Meter,
		"rentdesk_units", "Units per occupancy status", "{units}"); err != nil {
		return nil, err
	}
	if bm.overdueTenants, err = NewGauge(cfg.Meter,
		"rentdesk_overdue_tenants", "Tenants overdue or owing", "{tenants}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// EventTypes lists the events that feed the counters
func (bm *BusinessMetrics) EventTypes() []string {
	return []string{
		rent.EventTypePaymentRecorded,
		rent.EventTypePaymentConfirmed,
		property.EventTypeUnitOccupied,
		property.EventTypeUnitVacated,
		maintenance.EventTypeRequestOpened,
	}
}

// Handle records one event. It never fails.
func (bm *BusinessMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch event.EventType() {
	case rent.EventTypePaymentRecorded:
		if e, ok := event.(*rent.PaymentEvent); ok {
			bm.paymentsRecorded.Inc(ctx, AttrPaymentType.String(string(e.PaymentType)))
		}
	case rent.EventTypePaymentConfirmed:
		if e, ok := event.(*rent.PaymentEvent); ok {
			amount, _ := e.Amount.Float64()
			bm.paymentsConfirmed.Add(ctx, amount, AttrPaymentType.String(string(e.PaymentType)))
		}
	case property.EventTypeUnitOccupied:
		bm.tenantMoves.Inc(ctx, AttrDirection.String("in"))
	case property.EventTypeUnitVacated:
		bm.tenantMoves.Inc(ctx, AttrDirection.String("out"))
	case maintenance.EventTypeRequestOpened:
		bm.maintenanceOpened.Inc(ctx)
	}
	return nil
}

// Collect samples occupancy gauges once
func (bm *BusinessMetrics) Collect(ctx context.Context) {
	if bm.occupancy == nil {
		return
	}
	snapshots, err := bm.occupancy.OccupancySnapshots(ctx)
	if err != nil {
		bm.logger.Warn("Failed to collect occupancy metrics", zap.Error(err))
		return
	}
	for _, s := range snapshots {
		business := AttrBusinessID.String(s.BusinessID.String())
		for _, status := range property.UnitStatuses() {
			bm.units.Record(ctx, s.UnitsByStatus[string(status)], business, AttrUnitStatus.String(string(status)))
		}
		bm.overdueTenants.Record(ctx, s.OverdueTenants, business)
	}
}

// StartPeriodicCollection samples occupancy every interval (default 5m)
// until Stop or ctx is done. Later calls are ignored.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go bm.run(ctx, interval)
	})
}

func (bm *BusinessMetrics) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.Collect(ctx)
	for {
		select {
		case <-bm.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.Collect(ctx)
		}
	}
}

// Stop ends periodic collection
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}
