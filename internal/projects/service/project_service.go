package service

import (
	"context"
	"strings"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// Repository is the persistence surface the project service needs.
type Repository interface {
	Create(ctx context.Context, f domain.ProjectFields) (*domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

// CreateProjectInput is a project as submitted by a form. ClientID and
// Location are still in their raw textual form.
type CreateProjectInput struct {
	Name     string
	ClientID string
	Address  string
	Location string
	Budget   float64
	Manager  string
}

// UpdateProjectInput carries the fields of a project update. Nil fields
// keep their stored value.
type UpdateProjectInput struct {
	Name     *string
	ClientID *string
	Address  *string
	Location *string
	Budget   *float64
	Manager  *string
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo Repository
}

// NewProjectService creates a new project service
func NewProjectService(repo Repository) *ProjectService {
	return &ProjectService{
		repo: repo,
	}
}

// Create parses and validates the input, then stores the project.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error) {
	f := domain.ProjectFields{
		Name:     strings.TrimSpace(in.Name),
		Address:  strings.TrimSpace(in.Address),
		Location: domain.LocationInside,
		Budget:   in.Budget,
		Manager:  strings.TrimSpace(in.Manager),
	}
	if f.Name == "" {
		return nil, domain.Required("name")
	}

	clientID, err := domain.ParseID("clientId", in.ClientID)
	if err != nil {
		return nil, err
	}
	f.ClientID = clientID

	if strings.TrimSpace(in.Location) != "" {
		if f.Location, err = domain.ParseLocation(in.Location); err != nil {
			return nil, err
		}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, domain.Store("create project", err)
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	if id <= 0 {
		return nil, domain.Invalid("id", "id must be a positive integer")
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, domain.Store("get project", err)
	}
	return p, nil
}

// Update applies the supplied fields and returns the project with its
// client.
func (s *ProjectService) Update(ctx context.Context, id int64, in UpdateProjectInput) (*domain.Project, error) {
	if id <= 0 {
		return nil, domain.Invalid("id", "id must be a positive integer")
	}

	patch, err := toPatch(in)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	// Nothing to write: answer with the stored project and leave updatedAt alone.
	if patch.Empty() {
		return s.Get(ctx, id)
	}

	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, domain.Store("update project", err)
	}
	return p, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.Invalid("id", "id must be a positive integer")
	}
	return domain.Store("delete project", s.repo.Delete(ctx, id))
}

func toPatch(in UpdateProjectInput) (domain.ProjectPatch, error) {
	var patch domain.ProjectPatch

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
	}
	if in.ClientID != nil {
		id, err := domain.ParseID("clientId", *in.ClientID)
		if err != nil {
			return patch, err
		}
		patch.ClientID = &id
	}
	if in.Address != nil {
		addr := strings.TrimSpace(*in.Address)
		patch.Address = &addr
	}
	if in.Location != nil {
		loc, err := domain.ParseLocation(*in.Location)
		if err != nil {
			return patch, err
		}
		patch.Location = &loc
	}
	if in.Budget != nil {
		b := *in.Budget
		patch.Budget = &b
	}
	if in.Manager != nil {
		m := strings.TrimSpace(*in.Manager)
		patch.Manager = &m
	}
	return patch, nil
}
