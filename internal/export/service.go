package export

import (
	"context"
	"log"
	"time"

	"github.com/shahana-04/employee/internal/attendance"
	"github.com/shahana-04/employee/internal/clock"
	"github.com/shahana-04/employee/internal/directory"
	"github.com/shahana-04/employee/internal/platform/db"
)

type RecordSource interface {
	List(ctx context.Context, f attendance.Filter) ([]attendance.Record, error)
}

type UserSource interface {
	FindByID(ctx context.Context, id string) (*directory.User, error)
	FindByEmployeeCode(ctx context.Context, code string) (*directory.User, error)
}

type Service struct {
	records RecordSource
	users   UserSource
}

func NewService(dbtx db.DBTX, users *directory.Store) *Service {
	return &Service{
		records: attendance.NewStore(dbtx),
		users:   users,
	}
}

type Query struct {
	StartDate    string // YYYY-MM-DD, inclusive
	EndDate      string // YYYY-MM-DD, inclusive
	EmployeeCode string
}

// Export selects the records and projects them to rows. Both date bounds
// must be given together; an unknown employee code yields zero rows.
func (s *Service) Export(ctx context.Context, q Query) ([]Row, error) {
	f := attendance.Filter{Asc: true}

	if (q.StartDate == "") != (q.EndDate == "") {
		return nil, ErrInvalid("start_date and end_date must be given together")
	}
	if q.StartDate != "" {
		from, err := time.ParseInLocation(attendance.DateLayout, q.StartDate, time.Local)
		if err != nil {
			return nil, ErrInvalid("start_date must be YYYY-MM-DD")
		}
		toDay, err := time.ParseInLocation(attendance.DateLayout, q.EndDate, time.Local)
		if err != nil {
			return nil, ErrInvalid("end_date must be YYYY-MM-DD")
		}
		if toDay.Before(from) {
			return nil, ErrInvalid("end_date must be >= start_date")
		}
		start := clock.NormalizeToDay(from)
		end := clock.EndOfDay(toDay)
		f.From, f.To = &start, &end
	}

	if q.EmployeeCode != "" {
		u, err := s.users.FindByEmployeeCode(ctx, q.EmployeeCode)
		if err != nil {
			return nil, storeErr("employee lookup", err)
		}
		if u == nil {
			return []Row{}, nil
		}
		f.UserID = &u.ID
	}

	records, err := s.records.List(ctx, f)
	if err != nil {
		return nil, storeErr("record list", err)
	}

	users := make(map[string]directory.User)
	for _, r := range records {
		if _, ok := users[r.UserID]; ok {
			continue
		}
		u, err := s.users.FindByID(ctx, r.UserID)
		if err != nil {
			return nil, storeErr("user resolve", err)
		}
		if u != nil {
			users[r.UserID] = *u
		}
	}

	return Project(records, users)
}

func storeErr(op string, err error) *APIError {
	log.Printf("[ERROR] export %s: %v", op, err)
	return ErrStore()
}
