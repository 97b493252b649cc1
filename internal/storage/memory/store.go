package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// Store keeps clients, projects and employees in process memory. It
// enforces the same references as the postgres schema: projects must name
// an existing client and a client with projects cannot be deleted.
type Store struct {
	mu         sync.RWMutex
	clients    map[int64]domain.Client
	projects   map[int64]domain.Project
	employees  []domain.Employee
	nextClient int64
	nextProj   int64
	now        func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		clients:  make(map[int64]domain.Client),
		projects: make(map[int64]domain.Project),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Clients returns the client repository view of the store.
func (s *Store) Clients() *ClientRepository { return &ClientRepository{s: s} }

// Projects returns the project repository view of the store.
func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{s: s} }

// Employees returns the employee repository view of the store.
func (s *Store) Employees() *EmployeeRepository { return &EmployeeRepository{s: s} }

// SeedEmployees replaces the staff register.
func (s *Store) SeedEmployees(list []domain.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = slices.Clone(list)
}

type ClientRepository struct{ s *Store }

func (r *ClientRepository) Create(_ context.Context, f domain.ClientFields) (*domain.Client, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextClient++
	now := s.now()
	c := domain.Client{
		ID:        s.nextClient,
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.clients[c.ID] = c

	c.Projects = []domain.Project{}
	return &c, nil
}

// List orders by name then id, which keeps equal names in insertion order.
// Names compare byte-wise, like the postgres repository's "C" collation.
func (r *ClientRepository) List(_ context.Context) ([]domain.Client, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Client, 0, len(s.clients))
	for _, c := range s.clients {
		c.Projects = s.projectsOf(c.ID)
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b domain.Client) int {
		if n := cmp.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *ClientRepository) Get(_ context.Context, id int64) (*domain.Client, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, domain.NotFound("client", id)
	}
	c.Projects = s.projectsOf(id)
	return &c, nil
}

func (r *ClientRepository) Update(_ context.Context, id int64, f domain.ClientFields) (*domain.Client, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, domain.NotFound("client", id)
	}
	c.Name, c.Email, c.Phone = f.Name, f.Email, f.Phone
	c.UpdatedAt = s.now()
	s.clients[id] = c

	c.Projects = s.projectsOf(id)
	return &c, nil
}

func (r *ClientRepository) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return domain.NotFound("client", id)
	}
	for _, p := range s.projects {
		if p.ClientID == id {
			return domain.StillReferenced("client", id, "projects")
		}
	}
	delete(s.clients, id)
	return nil
}

type ProjectRepository struct{ s *Store }

func (r *ProjectRepository) Create(_ context.Context, f domain.ProjectFields) (*domain.Project, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[f.ClientID]; !ok {
		return nil, domain.DanglingReference("client", f.ClientID)
	}

	s.nextProj++
	now := s.now()
	p := domain.Project{
		ID:        s.nextProj,
		Name:      f.Name,
		Address:   f.Address,
		Location:  f.Location,
		Budget:    f.Budget,
		Manager:   f.Manager,
		ClientID:  f.ClientID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.projects[p.ID] = p
	return &p, nil
}

func (r *ProjectRepository) Get(_ context.Context, id int64) (*domain.Project, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, domain.NotFound("project", id)
	}
	p.Client = s.clients[p.ClientID].Summary()
	return &p, nil
}

// Update applies the patch under the write lock, so the project and the
// client it returns are read consistently.
func (r *ProjectRepository) Update(_ context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[id]
	if !ok {
		return nil, domain.NotFound("project", id)
	}
	next := patch.Apply(cur)

	client, ok := s.clients[next.ClientID]
	if !ok {
		return nil, domain.DanglingReference("client", next.ClientID)
	}
	next.UpdatedAt = s.now()
	s.projects[id] = next

	next.Client = client.Summary()
	return &next, nil
}

func (r *ProjectRepository) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return domain.NotFound("project", id)
	}
	delete(s.projects, id)
	return nil
}

type EmployeeRepository struct{ s *Store }

// List orders by full name then id.
func (r *EmployeeRepository) List(_ context.Context) ([]domain.Employee, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.employees)
	if out == nil {
		out = []domain.Employee{}
	}
	slices.SortFunc(out, func(a, b domain.Employee) int {
		if n := cmp.Compare(a.FullName, b.FullName); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// projectsOf returns the client's projects by id. Caller holds the lock.
func (s *Store) projectsOf(clientID int64) []domain.Project {
	out := []domain.Project{}
	for _, p := range s.projects {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b domain.Project) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
