package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// Repository reads employees from the store.
type Repository interface {
	List(ctx context.Context) ([]domain.Employee, error)
}

// Cache holds a copy of the employee list.
type Cache interface {
	Get(ctx context.Context) ([]domain.Employee, bool, error)
	Set(ctx context.Context, list []domain.Employee) error
	Invalidate(ctx context.Context) error
}

// EmployeeService serves the read-only staff register.
type EmployeeService struct {
	repo  Repository
	cache Cache
	log   *logrus.Entry
}

// NewEmployeeService creates the service. cache may be nil.
func NewEmployeeService(repo Repository, cache Cache, log *logrus.Entry) *EmployeeService {
	return &EmployeeService{repo: repo, cache: cache, log: log.WithField("component", "employees")}
}

// List returns all employees, from the cache when it holds a copy.
// Cache failures are logged and the store is used instead.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	if s.cache != nil {
		list, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.log.WithError(err).Warn("list employees: cache read failed")
		case ok:
			return nonNil(list), nil
		}
	}

	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, list); err != nil {
			s.log.WithError(err).Warn("list employees: cache write failed")
		}
	}
	return list, nil
}

// Warm reloads the cache from the store and returns the number of
// employees cached.
func (s *EmployeeService) Warm(ctx context.Context) (int, error) {
	list, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if s.cache == nil {
		return len(list), nil
	}
	if err := s.cache.Set(ctx, list); err != nil {
		return 0, domain.Store("warm employee cache", err)
	}
	return len(list), nil
}

// Reset drops the cached list so the next read goes to the store.
func (s *EmployeeService) Reset(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return domain.Store("reset employee cache", err)
	}
	return nil
}

func (s *EmployeeService) load(ctx context.Context) ([]domain.Employee, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.Store("list employees", err)
	}
	return nonNil(list), nil
}

func nonNil(list []domain.Employee) []domain.Employee {
	if list == nil {
		return []domain.Employee{}
	}
	return list
}
