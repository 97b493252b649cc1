package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

var projectCols = []string{"id", "name", "address", "location", "budget", "manager", "client_id", "created_at", "updated_at"}

func setupProjectRepo(t *testing.T) (*ProjectRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewProjectRepository(db), mock, db
}

func lobbyClean() domain.ProjectFields {
	return domain.ProjectFields{
		Name:     "Lobby Clean",
		ClientID: 1,
		Address:  "1 Main St",
		Location: domain.LocationInside,
		Budget:   500,
		Manager:  "Jane",
	}
}

func TestProjectRepository_Create(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()
	now := time.Now()

	t.Run("inserts and returns the row", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO projects`).
			WithArgs("Lobby Clean", int64(1), "1 Main St", "INSIDE", 500.0, "Jane").
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow(10, "Lobby Clean", "1 Main St", "INSIDE", "500.00", "Jane", 1, now, now))

		p, err := repo.Create(ctx, lobbyClean())
		require.NoError(t, err)
		assert.Equal(t, int64(10), p.ID)
		assert.Equal(t, int64(1), p.ClientID)
		assert.Equal(t, 500.0, p.Budget)
		assert.Equal(t, domain.LocationInside, p.Location)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing client", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "projects_client_id_fkey"})

		_, err := repo.Create(ctx, lobbyClean())
		var re *domain.ReferenceError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "client", re.Entity)
		assert.Equal(t, int64(1), re.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("check violation", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnError(&pq.Error{Code: "23514", Constraint: "projects_budget_check", Message: "budget check"})

		_, err := repo.Create(ctx, lobbyClean())
		assert.ErrorIs(t, err, domain.ErrValidation)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_Get(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()
	now := time.Now()

	cols := append(append([]string{}, projectCols...), "id", "name", "email", "phone", "created_at", "updated_at")
	mock.ExpectQuery(`FROM projects p`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(10, "Lobby Clean", "1 Main St", "INSIDE", "500.00", "Jane", 1, now, now, 1, "Acme", "a@acme.test", "", now, now))

	p, err := repo.Get(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, p.Client)
	assert.Equal(t, "Acme", p.Client.Name)

	mock.ExpectQuery(`FROM projects p`).WithArgs(int64(11)).WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(ctx, 11)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	budget := 750.0

	t.Run("merges only supplied fields and loads the client", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE projects`).
			WithArgs(int64(10), nil, nil, nil, nil, 750.0, nil).
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow(10, "Lobby Clean", "1 Main St", "INSIDE", "750.00", "Jane", 1, now, now))
		mock.ExpectQuery(`SELECT id, name, email, phone, created_at, updated_at FROM clients`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "created_at", "updated_at"}).
				AddRow(1, "Acme", "a@acme.test", "", now, now))
		mock.ExpectCommit()

		p, err := repo.Update(ctx, 10, domain.ProjectPatch{Budget: &budget})
		require.NoError(t, err)
		assert.Equal(t, 750.0, p.Budget)
		assert.Equal(t, "Lobby Clean", p.Name)
		require.NotNil(t, p.Client)
		assert.Equal(t, int64(1), p.Client.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown project rolls back", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE projects`).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.Update(ctx, 99, domain.ProjectPatch{Budget: &budget})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dangling client rolls back", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()
		clientID := int64(42)

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE projects`).
			WithArgs(int64(10), nil, int64(42), nil, nil, nil, nil).
			WillReturnError(&pq.Error{Code: "23503"})
		mock.ExpectRollback()

		_, err := repo.Update(ctx, 10, domain.ProjectPatch{ClientID: &clientID})
		var re *domain.ReferenceError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, int64(42), re.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		repo, mock, db := setupProjectRepo(t)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		_, err := repo.Update(ctx, 10, domain.ProjectPatch{Budget: &budget})
		assert.ErrorIs(t, err, domain.ErrStore)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_Delete(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM projects`).WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM projects`).WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(ctx, 10))
	assert.ErrorIs(t, repo.Delete(ctx, 10), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
