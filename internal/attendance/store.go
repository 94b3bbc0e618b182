package attendance

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shahana-04/employee/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

const recordColumns = `id, user_id, date, check_in_time, check_out_time, status, total_hours`

// FindOne returns nil (no error) when the user has no record for the day.
// day must already be normalized to local midnight.
func (s *Store) FindOne(ctx context.Context, userID string, day time.Time) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+recordColumns+`
FROM attendances
WHERE user_id = ? AND date = ?
LIMIT 1`, userID, day)

	var r recordRow
	err := row.Scan(&r.ID, &r.UserID, &r.Date, &r.CheckIn, &r.CheckOut, &r.Status, &r.TotalHours)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := r.toModel()
	return &rec, nil
}

// Create inserts a new record. The (user_id, date) unique key rejects a
// concurrent duplicate; callers translate MySQL error 1062.
func (s *Store) Create(ctx context.Context, rec *Record) error {
	const q = `
INSERT INTO attendances (id, user_id, date, check_in_time, check_out_time, status, total_hours)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		rec.ID, rec.UserID, rec.Date, timeOrNil(rec.CheckInTime), timeOrNil(rec.CheckOutTime),
		rec.Status, rec.TotalHours)
	return err
}

// UpdateCheckIn fills the check-in fields of an existing shell record
// (one seeded without a clock-in, e.g. an external absent marker).
func (s *Store) UpdateCheckIn(ctx context.Context, id string, checkIn time.Time, status string) error {
	const q = `UPDATE attendances SET check_in_time = ?, status = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, checkIn, status, id)
	return err
}

func (s *Store) UpdateCheckout(ctx context.Context, id string, checkOut time.Time, totalHours float64) error {
	const q = `UPDATE attendances SET check_out_time = ?, total_hours = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, checkOut, totalHours, id)
	return err
}

// List selects by dynamic WHERE; date range bounds are inclusive.
func (s *Store) List(ctx context.Context, f Filter) ([]Record, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`
SELECT ` + recordColumns + `
FROM attendances
`)
	if f.UserID != nil && *f.UserID != "" {
		wheres = append(wheres, "user_id = ?")
		args = append(args, *f.UserID)
	}
	if f.Day != nil {
		wheres = append(wheres, "date = ?")
		args = append(args, *f.Day)
	} else {
		if f.From != nil {
			wheres = append(wheres, "date >= ?")
			args = append(args, *f.From)
		}
		if f.To != nil {
			wheres = append(wheres, "date <= ?")
			args = append(args, *f.To)
		}
	}
	if f.Status != nil && *f.Status != "" {
		wheres = append(wheres, "status = ?")
		args = append(args, *f.Status)
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}

	if f.Asc {
		buf.WriteString(" ORDER BY date ASC, user_id ASC")
	} else {
		buf.WriteString(" ORDER BY date DESC, user_id ASC")
	}
	if f.Limit > 0 {
		buf.WriteString(fmt.Sprintf(" LIMIT %d", f.Limit))
	}

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r recordRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Date, &r.CheckIn, &r.CheckOut, &r.Status, &r.TotalHours); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
