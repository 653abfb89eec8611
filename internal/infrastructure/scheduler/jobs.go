package scheduler

import (
	"context"

	"github.com/google/uuid"
)

// Job names
const (
	JobReconcileCounts = "reconcile_counts"
	JobRefreshVacancy  = "refresh_vacancy"
	JobExpireLeases    = "expire_leases"
)

// CountReconciler rebuilds property unit counters
type CountReconciler interface {
	RecomputeAll(ctx context.Context, businessID uuid.UUID) (int, error)
}

// VacancyRefresher recomputes days-vacant on vacant units
type VacancyRefresher interface {
	RefreshVacancy(ctx context.Context, businessID uuid.UUID) (int, error)
}

// LeaseExpirer closes active leases past their end date
type LeaseExpirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

// RentJobs are the services behind the housekeeping jobs
type RentJobs struct {
	Counts  CountReconciler
	Vacancy VacancyRefresher
	Leases  LeaseExpirer
}

// Schedules holds the cron spec of each job; an empty spec leaves the job out
type Schedules struct {
	ReconcileCounts string
	RefreshVacancy  string
	ExpireLeases    string
}

// RegisterRentJobs registers every job whose service and schedule are set.
// All jobs cover every business.
func RegisterRentJobs(s *Scheduler, jobs RentJobs, schedules Schedules) error {
	if jobs.Counts != nil && schedules.ReconcileCounts != "" {
		if err := s.Register(JobReconcileCounts, schedules.ReconcileCounts, func(ctx context.Context) (int, error) {
			return jobs.Counts.RecomputeAll(ctx, uuid.Nil)
		}); err != nil {
			return err
		}
	}
	if jobs.Vacancy != nil && schedules.RefreshVacancy != "" {
		if err := s.Register(JobRefreshVacancy, schedules.RefreshVacancy, func(ctx context.Context) (int, error) {
			return jobs.Vacancy.RefreshVacancy(ctx, uuid.Nil)
		}); err != nil {
			return err
		}
	}
	if jobs.Leases != nil && schedules.ExpireLeases != "" {
		if err := s.Register(JobExpireLeases, schedules.ExpireLeases, jobs.Leases.ExpireOverdue); err != nil {
			return err
		}
	}
	return nil
}
