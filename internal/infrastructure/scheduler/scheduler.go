// Package scheduler runs the periodic rent housekeeping jobs on cron
// schedules and keeps a history of every run.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// JobStatus is the outcome of a run
type JobStatus string

const (
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobFunc does one pass of a job and reports how many records it changed
type JobFunc func(ctx context.Context) (int, error)

// JobRun is one execution of a job
type JobRun struct {
	Job         string
	Status      JobStatus
	Processed   int
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Duration is the wall time of a finished run
func (r JobRun) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// RunRecorder persists job runs
type RunRecorder interface {
	RecordStart(ctx context.Context, job string, startedAt time.Time) (string, error)
	RecordFinish(ctx context.Context, id string, run JobRun) error
}

// Config holds scheduler configuration
type Config struct {
	JobTimeout time.Duration // per run, default 10m
	Location   *time.Location
}

// JobInfo describes a registered job
type JobInfo struct {
	Name     string
	Schedule string
	Next     time.Time
	LastRun  *JobRun
}

type job struct {
	name     string
	schedule string
	fn       JobFunc
	entryID  cron.EntryID
	mu       sync.Mutex // held while the job runs
	last     *JobRun
}

// Scheduler triggers registered jobs on their cron schedules. A job that is
// still running when its next tick arrives skips that tick.
type Scheduler struct {
	cron     *cron.Cron
	config   Config
	logger   *zap.Logger
	recorder RunRecorder
	now      func() time.Time

	mu      sync.RWMutex
	jobs    map[string]*job
	baseCtx context.Context
	cancel  context.CancelFunc
	running bool
}

// New creates a stopped scheduler. recorder may be nil.
func New(cfg Config, recorder RunRecorder, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 10 * time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	cronLog := cronLogger{logger.Named("cron").Sugar()}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		config:   cfg,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
		jobs:     make(map[string]*job),
		baseCtx:  context.Background(),
	}
}

// Register adds a job under a standard five-field cron spec or a
// descriptor such as "@every 1h"
func (s *Scheduler) Register(name, spec string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" || fn == nil {
		return fmt.Errorf("%w: job needs a name and a function", ErrInvalidConfig)
	}
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("%w: job %q registered twice", ErrInvalidConfig, name)
	}

	j := &job{name: name, schedule: spec, fn: fn}
	id, err := s.cron.AddFunc(spec, func() { s.tick(j) })
	if err != nil {
		return fmt.Errorf("%w: job %q schedule %q: %v", ErrInvalidConfig, name, spec, err)
	}
	j.entryID = id
	s.jobs[name] = j
	return nil
}

// Start begins triggering jobs. Runs use ctx as their parent.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.baseCtx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop stops triggering, cancels running jobs and waits for them until ctx ends
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow executes a job immediately and waits for it. It fails with
// ErrJobRunning rather than overlap a run already in progress.
func (s *Scheduler) RunNow(ctx context.Context, name string) (JobRun, error) {
	s.mu.RLock()
	j, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return JobRun{}, fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	if !j.mu.TryLock() {
		return JobRun{}, fmt.Errorf("%w: %s", ErrJobRunning, name)
	}
	defer j.mu.Unlock()

	run := s.execute(ctx, j)
	if run.Status == JobStatusFailed {
		return run, fmt.Errorf("job %s failed: %s", name, run.Error)
	}
	return run, nil
}

// Jobs lists registered jobs by name
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		info := JobInfo{
			Name:     j.name,
			Schedule: j.schedule,
			Next:     s.cron.Entry(j.entryID).Next,
		}
		info.LastRun = j.lastRun()
		infos = append(infos, info)
	}
	sort.Slice(infos, func(a, b int) bool { return infos[a].Name < infos[b].Name })
	return infos
}

func (s *Scheduler) tick(j *job) {
	if !j.mu.TryLock() {
		s.logger.Info("Skipping job tick, previous run still active", zap.String("job", j.name))
		return
	}
	defer j.mu.Unlock()

	s.mu.RLock()
	ctx := s.baseCtx
	s.mu.RUnlock()
	s.execute(ctx, j)
}

// execute runs j once; the caller holds j.mu
func (s *Scheduler) execute(parent context.Context, j *job) JobRun {
	ctx, cancel := context.WithTimeout(parent, s.config.JobTimeout)
	defer cancel()

	run := JobRun{Job: j.name, Status: JobStatusRunning, StartedAt: s.now()}
	recordID := s.recordStart(ctx, run)

	var processed int
	err := telemetry.Traced(ctx, "scheduler."+j.name, func(ctx context.Context) error {
		var runErr error
		telemetry.WithProfilingLabels(ctx, telemetry.JobLabels(j.name, ""), func(ctx context.Context) {
			defer func() {
				if r := recover(); r != nil {
					runErr = fmt.Errorf("job panicked: %v", r)
				}
			}()
			processed, runErr = j.fn(ctx)
		})
		return runErr
	}, attribute.String("job", j.name))

	completed := s.now()
	run.CompletedAt = &completed
	run.Processed = processed
	if err != nil {
		run.Status = JobStatusFailed
		run.Error = err.Error()
		s.logger.Error("Scheduled job failed",
			zap.String("job", j.name),
			zap.Int("processed", processed),
			zap.Duration("duration", run.Duration()),
			zap.Error(err),
		)
	} else {
		run.Status = JobStatusSuccess
		s.logger.Info("Scheduled job completed",
			zap.String("job", j.name),
			zap.Int("processed", processed),
			zap.Duration("duration", run.Duration()),
		)
	}

	j.last = &run
	s.recordFinish(recordID, run)
	return run
}

func (j *job) lastRun() *JobRun {
	if !j.mu.TryLock() {
		return &JobRun{Job: j.name, Status: JobStatusRunning}
	}
	defer j.mu.Unlock()
	if j.last == nil {
		return nil
	}
	last := *j.last
	return &last
}

func (s *Scheduler) recordStart(ctx context.Context, run JobRun) string {
	if s.recorder == nil {
		return ""
	}
	id, err := s.recorder.RecordStart(ctx, run.Job, run.StartedAt)
	if err != nil {
		s.logger.Warn("Failed to record job start", zap.String("job", run.Job), zap.Error(err))
		return ""
	}
	return id
}

func (s *Scheduler) recordFinish(id string, run JobRun) {
	if s.recorder == nil || id == "" {
		return
	}
	// The run context may have timed out; the record must still land.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.recorder.RecordFinish(ctx, id, run); err != nil {
		s.logger.Warn("Failed to record job finish", zap.String("job", run.Job), zap.Error(err))
	}
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
