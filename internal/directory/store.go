// Package directory is the read side of the users table: lookups by id,
// by employee code, and role-scoped listings for the reporting features.
package directory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shahana-04/employee/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

const userColumns = `id, name, email, employee_id, department, role, created_at`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.EmployeeID, &u.Department, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns nil (no error) when the user does not exist.
func (s *Store) FindByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id = ?
LIMIT 1`, id)
	return scanUser(row)
}

// FindByEmployeeCode returns nil (no error) when no user carries the code.
func (s *Store) FindByEmployeeCode(ctx context.Context, code string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE employee_id = ?
LIMIT 1`, code)
	return scanUser(row)
}

func (s *Store) ListByRole(ctx context.Context, role string) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE role = ?
ORDER BY employee_id ASC`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.EmployeeID, &u.Department, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
