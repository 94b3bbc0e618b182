package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shahana-04/employee/internal/platform/db"
)

type Account struct {
	ID           string
	Name         string
	Email        string
	EmployeeID   string
	Department   string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}

type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, a *Account) error
}

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

const accountColumns = `id, name, email, employee_id, department, role, password_hash, created_at`

func (s *Store) getBy(ctx context.Context, where string, arg any) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+accountColumns+`
FROM users
WHERE `+where+`
LIMIT 1`, arg)

	var a Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.EmployeeID, &a.Department, &a.Role, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return s.getBy(ctx, "email = ?", email)
}

func (s *Store) GetByID(ctx context.Context, id string) (*Account, error) {
	return s.getBy(ctx, "id = ?", id)
}

// Create relies on the unique keys (email, employee_id) to reject duplicates.
func (s *Store) Create(ctx context.Context, a *Account) error {
	const q = `
INSERT INTO users (id, name, email, employee_id, department, role, password_hash, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, NOW(6))`
	_, err := s.db.ExecContext(ctx, q, a.ID, a.Name, a.Email, a.EmployeeID, a.Department, a.Role, a.PasswordHash)
	return err
}
