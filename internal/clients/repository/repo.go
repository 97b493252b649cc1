package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
	"github.com/shiftboard/shiftboard-backend/internal/storage/postgres"
)

// ClientRepository provides persistence operations for clients
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts a new client.
func (r *ClientRepository) Create(ctx context.Context, f domain.ClientFields) (*domain.Client, error) {
	const q = `
INSERT INTO clients (name, email, phone)
VALUES ($1, $2, $3)
RETURNING id, name, email, phone, created_at, updated_at;
`
	c := domain.Client{Projects: []domain.Project{}}
	err := r.db.QueryRowContext(ctx, q, f.Name, f.Email, f.Phone).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, postgres.TranslateError("create client", err, "client", 0)
	}
	return &c, nil
}

const selectClientsWithProjects = `
SELECT c.id, c.name, c.email, c.phone, c.created_at, c.updated_at,
       p.id, p.name, p.address, p.location, p.budget, p.manager, p.client_id, p.created_at, p.updated_at
FROM clients c
LEFT JOIN projects p ON p.client_id = c.id
`

// List returns every client ordered by name, ties broken by id, each with
// its projects. Names compare byte-wise so the order does not depend on the
// database locale.
func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, selectClientsWithProjects+`ORDER BY c.name COLLATE "C" ASC, c.id ASC, p.id ASC;`)
	if err != nil {
		return nil, domain.Store("list clients", err)
	}
	defer rows.Close()

	out, err := scanClients(rows)
	if err != nil {
		return nil, domain.Store("list clients", err)
	}
	return out, nil
}

// Get returns one client with its projects.
func (r *ClientRepository) Get(ctx context.Context, id int64) (*domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, selectClientsWithProjects+`WHERE c.id = $1 ORDER BY p.id ASC;`, id)
	if err != nil {
		return nil, domain.Store("get client", err)
	}
	defer rows.Close()

	out, err := scanClients(rows)
	if err != nil {
		return nil, domain.Store("get client", err)
	}
	if len(out) == 0 {
		return nil, domain.NotFound("client", id)
	}
	return &out[0], nil
}

// Update replaces name, email and phone of a client and returns it with its
// projects. Both statements run in one transaction.
func (r *ClientRepository) Update(ctx context.Context, id int64, f domain.ClientFields) (_ *domain.Client, err error) {
	const q = `
UPDATE clients
SET name = $2, email = $3, phone = $4, updated_at = now()
WHERE id = $1
RETURNING id;
`
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.Store("update client", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var updated int64
	if err = tx.QueryRowContext(ctx, q, id, f.Name, f.Email, f.Phone).Scan(&updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("client", id)
		}
		return nil, postgres.TranslateError("update client", err, "client", id)
	}

	rows, err := tx.QueryContext(ctx, selectClientsWithProjects+`WHERE c.id = $1 ORDER BY p.id ASC;`, id)
	if err != nil {
		return nil, domain.Store("update client", err)
	}
	out, err := scanClients(rows)
	rows.Close()
	if err != nil {
		return nil, domain.Store("update client", err)
	}
	if len(out) == 0 {
		err = domain.NotFound("client", id)
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, domain.Store("update client", err)
	}
	return &out[0], nil
}

// Delete removes a client. Clients that still own projects are kept.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM clients WHERE id = $1;`

	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return domain.StillReferenced("client", id, "projects")
		}
		return domain.Store("delete client", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return domain.Store("delete client", err)
	}
	if n == 0 {
		return domain.NotFound("client", id)
	}
	return nil
}

func scanClients(rows *sql.Rows) ([]domain.Client, error) {
	out := make([]domain.Client, 0, 16)
	index := make(map[int64]int)

	for rows.Next() {
		var (
			c                       domain.Client
			pID, pClientID          sql.NullInt64
			pName, pAddr, pLoc, pMg sql.NullString
			pBudget                 sql.NullFloat64
			pCreated, pUpdated      sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
			&pID, &pName, &pAddr, &pLoc, &pBudget, &pMg, &pClientID, &pCreated, &pUpdated,
		); err != nil {
			return nil, err
		}

		i, seen := index[c.ID]
		if !seen {
			c.Projects = []domain.Project{}
			out = append(out, c)
			i = len(out) - 1
			index[c.ID] = i
		}

		if pID.Valid {
			out[i].Projects = append(out[i].Projects, domain.Project{
				ID:        pID.Int64,
				Name:      pName.String,
				Address:   pAddr.String,
				Location:  domain.Location(pLoc.String),
				Budget:    pBudget.Float64,
				Manager:   pMg.String,
				ClientID:  pClientID.Int64,
				CreatedAt: timeOrZero(pCreated),
				UpdatedAt: timeOrZero(pUpdated),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func timeOrZero(t sql.NullTime) time.Time {
	if t.Valid {
		return t.Time
	}
	return time.Time{}
}
