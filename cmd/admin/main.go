package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	propertyapp "github.com/rentdesk/backend/internal/application/property"
	tenancyapp "github.com/rentdesk/backend/internal/application/tenancy"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
	"github.com/rentdesk/backend/internal/infrastructure/scheduler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	logLevel string
	business string
	timeout  time.Duration
	log      *zap.Logger
}

// app is what a command needs from the database
type app struct {
	db        *persistence.Database
	counter   *propertyapp.OccupancyCounter
	units     *propertyapp.UnitService
	leases    *tenancyapp.LeaseService
	scheduler *scheduler.Scheduler
	runs      *scheduler.GormRunRecorder
}

func main() {
	c := &cli{}
	if err := c.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "RentDesk maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := logger.DefaultConfig()
			cfg.Level = c.logLevel
			log, err := logger.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Minute, "give up after this long")

	root.AddCommand(
		c.reconcileCmd(),
		c.vacancyCmd(),
		c.leasesCmd(),
		c.runsCmd(),
	)
	return root
}

func (c *cli) withApp(fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	db, err := persistence.Open(ctx, &cfg.Database,
		logger.NewGormLogger(c.log, logger.MapGormLogLevel(c.logLevel)))
	if err != nil {
		return err
	}
	defer db.Close()

	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)
	counter := propertyapp.NewOccupancyCounter(propertyRepo, unitRepo, c.log)

	a := &app{
		db:      db,
		counter: counter,
		units: propertyapp.NewUnitService(unitRepo, propertyRepo, persistence.NewGormUtilityRepository(db.DB),
			tenantRepo, txScope, counter, c.log),
		leases: tenancyapp.NewLeaseService(persistence.NewGormLeaseRepository(db.DB), tenantRepo, unitRepo, txScope, c.log),
		runs:   scheduler.NewGormRunRecorder(db.DB),
	}
	a.leases.SetExpiryWindow(cfg.Billing.LeaseExpiryDays)

	// Jobs go through the scheduler so manual runs land in the run history.
	// "@yearly" keeps them registered; the scheduler is never started here.
	a.scheduler = scheduler.New(scheduler.Config{JobTimeout: c.timeout}, a.runs, c.log)
	if err := scheduler.RegisterRentJobs(a.scheduler, scheduler.RentJobs{
		Counts:  a.counter,
		Vacancy: a.units,
		Leases:  a.leases,
	}, scheduler.Schedules{
		ReconcileCounts: "@yearly",
		RefreshVacancy:  "@yearly",
		ExpireLeases:    "@yearly",
	}); err != nil {
		return err
	}

	return fn(ctx, a)
}

func (c *cli) businessID() (uuid.UUID, error) {
	if c.business == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(c.business)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --business %q: %w", c.business, err)
	}
	return id, nil
}

func (c *cli) report(job string, processed int) {
	c.log.Info("Job finished", zap.String("job", job), zap.Int("processed", processed))
	fmt.Printf("%s: %d processed\n", job, processed)
}

func (c *cli) reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute the unit counters of every property",
		RunE: func(cmd *cobra.Command, args []string) error {
			businessID, err := c.businessID()
			if err != nil {
				return err
			}
			return c.withApp(func(ctx context.Context, a *app) error {
				if businessID == uuid.Nil {
					run, err := a.scheduler.RunNow(ctx, scheduler.JobReconcileCounts)
					if err != nil {
						return err
					}
					c.report(run.Job, run.Processed)
					return nil
				}
				n, err := a.counter.RecomputeAll(ctx, businessID)
				if err != nil {
					return err
				}
				c.report(scheduler.JobReconcileCounts, n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&c.business, "business", "", "limit to one business id")
	return cmd
}

func (c *cli) vacancyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vacancy",
		Short: "Refresh the days-vacant figure of vacant units",
		RunE: func(cmd *cobra.Command, args []string) error {
			businessID, err := c.businessID()
			if err != nil {
				return err
			}
			return c.withApp(func(ctx context.Context, a *app) error {
				if businessID == uuid.Nil {
					run, err := a.scheduler.RunNow(ctx, scheduler.JobRefreshVacancy)
					if err != nil {
						return err
					}
					c.report(run.Job, run.Processed)
					return nil
				}
				n, err := a.units.RefreshVacancy(ctx, businessID)
				if err != nil {
					return err
				}
				c.report(scheduler.JobRefreshVacancy, n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&c.business, "business", "", "limit to one business id")
	return cmd
}

func (c *cli) leasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leases",
		Short: "Mark active leases past their end date as expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(ctx context.Context, a *app) error {
				run, err := a.scheduler.RunNow(ctx, scheduler.JobExpireLeases)
				if err != nil {
					return err
				}
				c.report(run.Job, run.Processed)
				return nil
			})
		},
	}
}

func (c *cli) runsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs <job>",
		Short: "Show recent runs of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(func(ctx context.Context, a *app) error {
				runs, err := a.runs.Recent(ctx, args[0], limit)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "STARTED\tSTATUS\tPROCESSED\tDURATION\tERROR")
				for _, r := range runs {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
						r.StartedAt.Format(time.RFC3339), r.Status, r.Processed, r.Duration().Round(time.Millisecond), r.Error)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show")
	return cmd
}
