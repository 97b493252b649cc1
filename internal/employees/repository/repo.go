package repository

import (
	"context"
	"database/sql"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// EmployeeRepository reads the staff register.
type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List returns every employee ordered by full name, ties broken by id.
func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	const q = `
SELECT id, code, last_name, first_name, full_name, email, phone, division, department,
       current_position, hire_date, termination_date, agreement_type, working_hours,
       remote_days, created_at, updated_at
FROM employees
ORDER BY full_name ASC, id ASC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.Store("list employees", err)
	}
	defer rows.Close()

	out := make([]domain.Employee, 0, 32)
	for rows.Next() {
		var (
			e                                  domain.Employee
			email, phone, division, department sql.NullString
			position, agreement                sql.NullString
			hired, terminated                  sql.NullTime
		)
		if err := rows.Scan(
			&e.ID, &e.Code, &e.LastName, &e.FirstName, &e.FullName,
			&email, &phone, &division, &department, &position,
			&hired, &terminated, &agreement, &e.WorkingHours, &e.RemoteDays,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, domain.Store("list employees", err)
		}
		e.Email = email.String
		e.Phone = phone.String
		e.Division = division.String
		e.Department = department.String
		e.CurrentPosition = position.String
		e.AgreementType = agreement.String
		if hired.Valid {
			t := hired.Time
			e.HireDate = &t
		}
		if terminated.Valid {
			t := terminated.Time
			e.TerminationDate = &t
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Store("list employees", err)
	}
	return out, nil
}
