package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/shiftboard/shiftboard-backend/config"
	clientrepo "github.com/shiftboard/shiftboard-backend/internal/clients/repository"
	clientsvc "github.com/shiftboard/shiftboard-backend/internal/clients/service"
	employeerepo "github.com/shiftboard/shiftboard-backend/internal/employees/repository"
	employeesvc "github.com/shiftboard/shiftboard-backend/internal/employees/service"
	projectrepo "github.com/shiftboard/shiftboard-backend/internal/projects/repository"
	projectsvc "github.com/shiftboard/shiftboard-backend/internal/projects/service"
	"github.com/shiftboard/shiftboard-backend/internal/storage/memory"
	"github.com/shiftboard/shiftboard-backend/internal/storage/postgres"
)

// Stores holds the repositories for the configured driver.
type Stores struct {
	Driver    string
	Clients   clientsvc.Repository
	Projects  projectsvc.Repository
	Employees employeesvc.Repository

	// Pool is set for the postgres driver only.
	Pool *pgxpool.Pool

	sqlDB *sql.DB
}

// DB is the handle the postgres repositories query through, nil for the
// memory driver.
func (s *Stores) DB() *sql.DB { return s.sqlDB }

// Close releases the database handles, if any.
func (s *Stores) Close() {
	if s.sqlDB != nil {
		_ = s.sqlDB.Close()
	}
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// MemoryStores backs every repository with one in-process store.
func MemoryStores(m *memory.Store) *Stores {
	return &Stores{
		Driver:    config.DriverMemory,
		Clients:   m.Clients(),
		Projects:  m.Projects(),
		Employees: m.Employees(),
	}
}

// OpenStores connects the repositories selected by cfg.Database.Driver and
// applies the schema when migrations are enabled.
func OpenStores(ctx context.Context, cfg *config.Config, log *logrus.Entry) (*Stores, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("using in-memory store, data is lost on restart")
		return MemoryStores(memory.NewStore()), nil
	}

	dsn := postgres.DSN(&cfg.Database)
	// The pool only runs migrations and health pings.
	pool, err := OpenDB(ctx, DBOptions{DSN: dsn, MaxConns: 2})
	if err != nil {
		return nil, err
	}
	if cfg.Database.Migrate {
		if err := Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("database schema applied")
	}

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open repositories: %w", err)
	}

	return &Stores{
		Driver:    config.DriverPostgres,
		Clients:   clientrepo.NewClientRepository(db),
		Projects:  projectrepo.NewProjectRepository(db),
		Employees: employeerepo.NewEmployeeRepository(db),
		Pool:      pool,
		sqlDB:     db,
	}, nil
}
