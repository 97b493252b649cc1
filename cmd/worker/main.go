package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shiftboard/shiftboard-backend/config"
	"github.com/shiftboard/shiftboard-backend/internal/bootstrap"
	cronjob "github.com/shiftboard/shiftboard-backend/internal/cron"
	employeesvc "github.com/shiftboard/shiftboard-backend/internal/employees/service"
	"github.com/shiftboard/shiftboard-backend/internal/logging"
	"github.com/shiftboard/shiftboard-backend/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type env struct {
	cfg *config.Config
	log *logrus.Entry
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "worker",
		Short:         "Maintenance jobs for the shiftboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logging.New(logging.Options{
				Service: cfg.App.Name + "-worker",
				Level:   cfg.App.LogLevel,
				File:    cfg.App.LogFile,
				JSON:    cfg.IsProduction(),
			})
			return nil
		},
	}

	root.AddCommand(e.migrateCmd(), e.warmCacheCmd(), e.cronCmd())
	return root
}

func (e *env) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.cfg.Database.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate needs STORE_DRIVER=%s", config.DriverPostgres)
			}
			pool, err := bootstrap.OpenDB(cmd.Context(), bootstrap.DBOptions{DSN: postgres.DSN(&e.cfg.Database)})
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := bootstrap.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			e.log.Info("schema applied")
			return nil
		},
	}
}

func (e *env) warmCacheCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "warm-cache",
		Short: "Load the employee list into Redis once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withWarmer(cmd.Context(), e.cfg.Worker.CacheWarmSpec, func(s *cronjob.Scheduler, svc *employeesvc.EmployeeService) error {
				if reset {
					if err := svc.Reset(cmd.Context()); err != nil {
						return err
					}
					e.log.Info("employee cache dropped")
				}
				return s.RunOnce(cmd.Context())
			})
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop the cached list before loading it")
	return cmd
}

func (e *env) cronCmd() *cobra.Command {
	var spec string

	cmd := &cobra.Command{
		Use:   "cron",
		Short: "Keep the employee cache warm on a schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if spec == "" {
				spec = e.cfg.Worker.CacheWarmSpec
			}
			return e.withWarmer(cmd.Context(), spec, func(s *cronjob.Scheduler, _ *employeesvc.EmployeeService) error {
				_ = s.RunOnce(cmd.Context())
				if err := s.Start(cmd.Context()); err != nil {
					return err
				}
				<-cmd.Context().Done()
				s.Stop()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&spec, "spec", "", "cron expression with seconds (default CACHE_WARM_SPEC)")
	return cmd
}

// withWarmer opens the store and Redis, then hands the employee service and a
// scheduler bound to it to fn.
func (e *env) withWarmer(ctx context.Context, spec string, fn func(*cronjob.Scheduler, *employeesvc.EmployeeService) error) error {
	if !e.cfg.Redis.Enabled() {
		return fmt.Errorf("REDIS_ADDR is not set")
	}

	stores, err := bootstrap.OpenStores(ctx, e.cfg, e.log)
	if err != nil {
		return err
	}
	defer stores.Close()

	rdb, err := bootstrap.OpenRedis(ctx, e.cfg.Redis)
	if err != nil {
		return err
	}
	defer func(c *redis.Client) { _ = c.Close() }(rdb)

	svc := bootstrap.NewEmployeeService(stores, rdb, e.cfg.Redis, e.log)
	return fn(cronjob.NewScheduler(spec, svc, e.log), svc)
}
