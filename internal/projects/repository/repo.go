package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
	"github.com/shiftboard/shiftboard-backend/internal/storage/postgres"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, address, location, budget, manager, client_id, created_at, updated_at`

// Create inserts a new project. A client id that names no client is
// reported as a reference error and leaves no row behind.
func (r *ProjectRepository) Create(ctx context.Context, f domain.ProjectFields) (*domain.Project, error) {
	const q = `
INSERT INTO projects (name, client_id, address, location, budget, manager)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + projectColumns + `;
`
	row := r.db.QueryRowContext(ctx, q, f.Name, f.ClientID, f.Address, string(f.Location), f.Budget, f.Manager)
	p, err := scanProject(row)
	if err != nil {
		return nil, postgres.TranslateError("create project", err, "client", f.ClientID)
	}
	return p, nil
}

// Get returns one project together with its client.
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	const q = `
SELECT p.id, p.name, p.address, p.location, p.budget, p.manager, p.client_id, p.created_at, p.updated_at,
       c.id, c.name, c.email, c.phone, c.created_at, c.updated_at
FROM projects p
JOIN clients c ON c.id = p.client_id
WHERE p.id = $1;
`
	var (
		p  domain.Project
		cs domain.ClientSummary
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Address, &p.Location, &p.Budget, &p.Manager, &p.ClientID, &p.CreatedAt, &p.UpdatedAt,
		&cs.ID, &cs.Name, &cs.Email, &cs.Phone, &cs.CreatedAt, &cs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("project", id)
		}
		return nil, domain.Store("get project", err)
	}
	p.Client = &cs
	return &p, nil
}

// Update merges the patch into the stored project and returns the result
// with its (possibly new) client. Both statements run in one transaction.
func (r *ProjectRepository) Update(ctx context.Context, id int64, patch domain.ProjectPatch) (_ *domain.Project, err error) {
	const q = `
UPDATE projects
SET name       = COALESCE($2, name),
    client_id  = COALESCE($3, client_id),
    address    = COALESCE($4, address),
    location   = COALESCE($5, location),
    budget     = COALESCE($6, budget),
    manager    = COALESCE($7, manager),
    updated_at = now()
WHERE id = $1
RETURNING ` + projectColumns + `;
`
	const clientQ = `SELECT id, name, email, phone, created_at, updated_at FROM clients WHERE id = $1;`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.Store("update project", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	row := tx.QueryRowContext(ctx, q, id,
		nullString(patch.Name),
		nullInt64(patch.ClientID),
		nullString(patch.Address),
		nullLocation(patch.Location),
		nullFloat64(patch.Budget),
		nullString(patch.Manager),
	)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("project", id)
		}
		var clientID int64
		if patch.ClientID != nil {
			clientID = *patch.ClientID
		}
		return nil, postgres.TranslateError("update project", err, "client", clientID)
	}

	var cs domain.ClientSummary
	err = tx.QueryRowContext(ctx, clientQ, p.ClientID).
		Scan(&cs.ID, &cs.Name, &cs.Email, &cs.Phone, &cs.CreatedAt, &cs.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.DanglingReference("client", p.ClientID)
		}
		return nil, domain.Store("update project", err)
	}
	p.Client = &cs

	if err = tx.Commit(); err != nil {
		return nil, domain.Store("update project", err)
	}
	return p, nil
}

// Delete removes a project by id.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM projects WHERE id = $1;`

	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.Store("delete project", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return domain.Store("delete project", err)
	}
	if n == 0 {
		return domain.NotFound("project", id)
	}
	return nil
}

func scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Address, &p.Location, &p.Budget, &p.Manager, &p.ClientID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat64(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullLocation(v *domain.Location) any {
	if v == nil {
		return nil
	}
	return string(*v)
}
