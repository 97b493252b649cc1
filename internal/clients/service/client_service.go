package service

import (
	"context"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// Repository is the persistence surface the client service needs.
// Implemented by the postgres-backed repository and the memory store.
type Repository interface {
	Create(ctx context.Context, f domain.ClientFields) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, id int64, f domain.ClientFields) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

type CreateClientInput struct {
	Name  string
	Email string
	Phone string
}

// UpdateClientInput replaces every writable field of a client.
type UpdateClientInput struct {
	Name  string
	Email string
	Phone string
}

// ClientService handles client-related business logic
type ClientService struct {
	repo Repository
}

// NewClientService creates a new client service
func NewClientService(repo Repository) *ClientService {
	return &ClientService{repo: repo}
}

// Create validates the input and stores a new client.
func (s *ClientService) Create(ctx context.Context, in CreateClientInput) (*domain.Client, error) {
	f, err := domain.ClientFields{Name: in.Name, Email: in.Email, Phone: in.Phone}.Normalize()
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, domain.Store("create client", err)
	}
	return c, nil
}

// List returns all clients with their projects, ordered by name.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.Store("list clients", err)
	}
	if out == nil {
		out = []domain.Client{}
	}
	return out, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	if id <= 0 {
		return nil, domain.Invalid("id", "id must be a positive integer")
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, domain.Store("get client", err)
	}
	return c, nil
}

// Update replaces name, email and phone.
func (s *ClientService) Update(ctx context.Context, id int64, in UpdateClientInput) (*domain.Client, error) {
	if id <= 0 {
		return nil, domain.Invalid("id", "id must be a positive integer")
	}
	f, err := domain.ClientFields{Name: in.Name, Email: in.Email, Phone: in.Phone}.Normalize()
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, domain.Store("update client", err)
	}
	return c, nil
}

// Delete removes a client that owns no projects.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.Invalid("id", "id must be a positive integer")
	}
	return domain.Store("delete client", s.repo.Delete(ctx, id))
}
