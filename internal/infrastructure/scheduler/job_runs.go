package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobRunRecord is a persisted job run
type JobRunRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Job         string    `gorm:"size:50;not null;index:idx_job_runs_job_started,priority:1"`
	Status      string    `gorm:"size:20;not null"`
	Processed   int       `gorm:"not null;default:0"`
	Error       string    `gorm:"type:text"`
	StartedAt   time.Time `gorm:"not null;index:idx_job_runs_job_started,priority:2"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (JobRunRecord) TableName() string {
	return "scheduler_job_runs"
}

// GormRunRecorder stores job runs in scheduler_job_runs
type GormRunRecorder struct {
	db *gorm.DB
}

// NewGormRunRecorder creates a recorder over db
func NewGormRunRecorder(db *gorm.DB) *GormRunRecorder {
	return &GormRunRecorder{db: db}
}

// RecordStart inserts a running record and returns its id
func (r *GormRunRecorder) RecordStart(ctx context.Context, job string, startedAt time.Time) (string, error) {
	record := &JobRunRecord{
		ID:        uuid.New(),
		Job:       job,
		Status:    string(JobStatusRunning),
		StartedAt: startedAt,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return "", err
	}
	return record.ID.String(), nil
}

// RecordFinish stores the outcome of a run
func (r *GormRunRecorder) RecordFinish(ctx context.Context, id string, run JobRun) error {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&JobRunRecord{}).
		Where("id = ?", recordID).
		Updates(map[string]any{
			"status":       string(run.Status),
			"processed":    run.Processed,
			"error":        run.Error,
			"completed_at": run.CompletedAt,
		}).Error
}

// Recent returns the latest runs of job, newest first
func (r *GormRunRecorder) Recent(ctx context.Context, job string, limit int) ([]JobRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []JobRunRecord
	if err := r.db.WithContext(ctx).
		Where("job = ?", job).
		Order("started_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}

	runs := make([]JobRun, len(records))
	for i, rec := range records {
		runs[i] = JobRun{
			Job:         rec.Job,
			Status:      JobStatus(rec.Status),
			Processed:   rec.Processed,
			Error:       rec.Error,
			StartedAt:   rec.StartedAt,
			CompletedAt: rec.CompletedAt,
		}
	}
	return runs, nil
}

var _ RunRecorder = (*GormRunRecorder)(nil)
