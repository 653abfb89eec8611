package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/migration"
	"github.com/rentdesk/backend/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	path     string
	logLevel string
	log      *zap.Logger
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
		Use:           "migrate",
		Short:         "RentDesk database migration tool",
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
	root.PersistentFlags().StringVar(&c.path, "path", "", "migrations directory; empty uses the migrations built into the binary")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		c.upCmd(),
		c.downCmd(),
		c.stepCmd(),
		c.gotoCmd(),
		c.versionCmd(),
		c.forceCmd(),
		c.dropCmd(),
		c.createCmd(),
		c.listCmd(),
	)
	return root
}

// withMigrator opens the database named by the configuration and runs fn
func (c *cli) withMigrator(fn func(m *migration.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := migration.New(db, c.source(), c.log)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func (c *cli) source() migration.Source {
	if c.path != "" {
		return migration.Source{Path: c.path}
	}
	return migration.Source{FS: migrations.FS}
}

func (c *cli) upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMigrator(func(m *migration.Migrator) error { return m.Up() })
		},
	}
}

func (c *cli) downCmd() *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("down removes every table; rerun with --confirm")
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.Down() })
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the rollback")
	return cmd
}

func (c *cli) stepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step <n>",
		Short: "Apply n migrations; negative n rolls back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
		},
	}
}

func (c *cli) gotoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goto <version>",
		Short: "Migrate up or down to a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.GoTo(uint(v)) })
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the applied migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMigrator(func(m *migration.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					c.log.Info("No migrations applied")
					return nil
				}
				c.log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
				return nil
			})
		},
	}
}

func (c *cli) forceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Record a version without running it, to clear a dirty state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.Force(v) })
		},
	}
}

func (c *cli) dropCmd() *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop every database object",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("drop destroys all data; rerun with --confirm")
			}
			return c.withMigrator(func(m *migration.Migrator) error { return m.Drop() })
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the drop")
	return cmd
}

func (c *cli) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Create the next numbered migration pair",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.path
			if dir == "" {
				dir = "migrations"
			}
			description := ""
			if len(args) > 1 {
				description = args[1]
			}
			mf, err := migration.CreateMigration(dir, args[0], description)
			if err != nil {
				return err
			}
			c.log.Info("Migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				names []string
				err   error
			)
			if c.path != "" {
				names, err = migration.ListMigrations(c.path)
			} else {
				names, err = migration.ListEmbedded(migrations.FS)
			}
			if err != nil {
				return err
			}
			if len(names) == 0 {
				c.log.Info("No migrations found")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), "  -", n)
			}
			return nil
		},
	}
}
