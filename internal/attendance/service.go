package attendance

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/oklog/ulid/v2"

	"github.com/shahana-04/employee/internal/clock"
	"github.com/shahana-04/employee/internal/directory"
	"github.com/shahana-04/employee/internal/platform/db"
)

// RecordStore is the persistence contract; *Store implements it over MySQL,
// tests swap in fakes.
type RecordStore interface {
	FindOne(ctx context.Context, userID string, day time.Time) (*Record, error)
	Create(ctx context.Context, rec *Record) error
	UpdateCheckIn(ctx context.Context, id string, checkIn time.Time, status string) error
	UpdateCheckout(ctx context.Context, id string, checkOut time.Time, totalHours float64) error
	List(ctx context.Context, f Filter) ([]Record, error)
}

// Directory is the slice of the user directory this feature needs.
type Directory interface {
	FindByID(ctx context.Context, id string) (*directory.User, error)
	FindByEmployeeCode(ctx context.Context, code string) (*directory.User, error)
}

type Service struct {
	store RecordStore
	users Directory
	now   func() time.Time
	newID func() string
}

func NewService(dbtx db.DBTX, users *directory.Store) *Service {
	return &Service{
		store: NewStore(dbtx),
		users: users,
		now:   time.Now,
		newID: func() string { return ulid.Make().String() },
	}
}

// ===== Daily lifecycle (NoRecord → CheckedIn → CheckedOut) =====

func (s *Service) CheckIn(ctx context.Context, userID string) (RecordResponse, error) {
	if userID == "" {
		return RecordResponse{}, ErrInvalid("user id is required")
	}
	now := s.now()
	today := clock.NormalizeToDay(now)

	existing, err := s.store.FindOne(ctx, userID, today)
	if err != nil {
		return RecordResponse{}, storeErr("check-in lookup", err)
	}
	if existing != nil && existing.CheckInTime != nil {
		return RecordResponse{}, ErrAlreadyCheckedIn()
	}

	status := clock.ClassifyCheckIn(now)

	if existing != nil {
		// 外部投入されたシェルレコード（check_in 無し）を再利用する
		if err := s.store.UpdateCheckIn(ctx, existing.ID, now, status); err != nil {
			return RecordResponse{}, storeErr("check-in update", err)
		}
		existing.CheckInTime = &now
		existing.Status = status
		return existing.Response(), nil
	}

	rec := &Record{
		ID:          s.newID(),
		UserID:      userID,
		Date:        today,
		CheckInTime: &now,
		Status:      status,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		// 同時二重チェックインは (user_id, date) UNIQUE が弾く
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return RecordResponse{}, ErrAlreadyCheckedIn()
		}
		return RecordResponse{}, storeErr("check-in insert", err)
	}
	return rec.Response(), nil
}

func (s *Service) CheckOut(ctx context.Context, userID string) (RecordResponse, error) {
	if userID == "" {
		return RecordResponse{}, ErrInvalid("user id is required")
	}
	now := s.now()
	today := clock.NormalizeToDay(now)

	rec, err := s.store.FindOne(ctx, userID, today)
	if err != nil {
		return RecordResponse{}, storeErr("check-out lookup", err)
	}
	if rec == nil || rec.CheckInTime == nil {
		return RecordResponse{}, ErrNoCheckIn()
	}
	if rec.CheckOutTime != nil {
		return RecordResponse{}, ErrAlreadyCheckedOut()
	}

	hours := clock.ComputeHours(*rec.CheckInTime, now)
	if err := s.store.UpdateCheckout(ctx, rec.ID, now, hours); err != nil {
		return RecordResponse{}, storeErr("check-out update", err)
	}
	rec.CheckOutTime = &now
	rec.TotalHours = hours
	return rec.Response(), nil
}

// TodayStatus derives the lifecycle state purely from field presence;
// the stored status column plays no part here.
func (s *Service) TodayStatus(ctx context.Context, userID string) (TodayStatusResponse, error) {
	rec, err := s.store.FindOne(ctx, userID, clock.NormalizeToDay(s.now()))
	if err != nil {
		return TodayStatusResponse{}, storeErr("today lookup", err)
	}
	return todayStatusOf(rec), nil
}

func todayStatusOf(rec *Record) TodayStatusResponse {
	if rec == nil {
		return TodayStatusResponse{Status: TodayNotCheckedIn}
	}
	dto := rec.Response()
	if rec.CheckOutTime != nil {
		return TodayStatusResponse{Status: TodayCheckedOut, Record: &dto}
	}
	return TodayStatusResponse{Status: TodayCheckedIn, Record: &dto}
}

// ===== Personal history / summary =====

// PersonalHistory lists a user's records date-descending; month/year of 0
// means the whole history.
func (s *Service) PersonalHistory(ctx context.Context, userID string, month, year int) ([]RecordResponse, error) {
	if userID == "" {
		return nil, ErrInvalid("user id is required")
	}
	f := Filter{UserID: &userID}
	if month != 0 && year != 0 {
		if month < 1 || month > 12 {
			return nil, ErrInvalid("month must be 1..12")
		}
		from, to := clock.MonthRange(year, time.Month(month), time.Local)
		f.From, f.To = &from, &to
	}
	records, err := s.store.List(ctx, f)
	if err != nil {
		return nil, storeErr("history list", err)
	}
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, r.Response())
	}
	return out, nil
}

// PersonalSummary accumulates one month's records into per-status counts
// and a 2-decimal hours total. Unrecognized statuses are skipped, not
// bucketed. month/year of 0 defaults to the current month.
func (s *Service) PersonalSummary(ctx context.Context, userID string, month, year int) (SummaryResponse, error) {
	if userID == "" {
		return SummaryResponse{}, ErrInvalid("user id is required")
	}
	now := s.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return SummaryResponse{}, ErrInvalid("month must be 1..12")
	}

	from, to := clock.MonthRange(year, time.Month(month), time.Local)
	records, err := s.store.List(ctx, Filter{UserID: &userID, From: &from, To: &to})
	if err != nil {
		return SummaryResponse{}, storeErr("summary list", err)
	}

	sum := SummaryResponse{Month: month, Year: year}
	var hours float64
	for _, r := range records {
		switch r.Status {
		case clock.StatusPresent:
			sum.Present++
		case clock.StatusAbsent:
			sum.Absent++
		case clock.StatusLate:
			sum.Late++
		case clock.StatusHalfDay:
			sum.HalfDay++
		}
		hours += r.TotalHours
	}
	sum.TotalHours = clock.Round2(hours)
	return sum, nil
}

// ===== Manager views =====

// ListAll is the team-wide listing with optional employee-code, day and
// status filters. An unknown employee code returns an empty set.
func (s *Service) ListAll(ctx context.Context, q AllQuery) ([]TeamRecordResponse, error) {
	f := Filter{}

	if q.Date != "" {
		day, err := parseDay(q.Date)
		if err != nil {
			return nil, ErrInvalid("date must be YYYY-MM-DD")
		}
		f.Day = &day
	}
	if q.Status != "" {
		if !clock.ValidStatus(q.Status) {
			return nil, ErrInvalid("unknown status")
		}
		st := q.Status
		f.Status = &st
	}
	if q.EmployeeCode != "" {
		u, err := s.users.FindByEmployeeCode(ctx, q.EmployeeCode)
		if err != nil {
			return nil, storeErr("employee lookup", err)
		}
		if u == nil {
			return []TeamRecordResponse{}, nil
		}
		f.UserID = &u.ID
	}

	records, err := s.store.List(ctx, f)
	if err != nil {
		return nil, storeErr("team list", err)
	}
	return s.resolveTeam(ctx, records)
}

// EmployeeHistory is PersonalHistory on behalf of a manager.
func (s *Service) EmployeeHistory(ctx context.Context, targetUserID string, month, year int) ([]RecordResponse, error) {
	return s.PersonalHistory(ctx, targetUserID, month, year)
}

// TeamSummaryForDay tallies all records of the day by stored status.
// The absent counter counts records explicitly tagged absent; no code
// path writes that status, so it stays zero unless seeded externally.
// Callers wanting a real absence list must use report.AbsentReconciliation.
func (s *Service) TeamSummaryForDay(ctx context.Context, dateStr string) (TeamSummaryResponse, error) {
	day := clock.NormalizeToDay(s.now())
	if dateStr != "" {
		d, err := parseDay(dateStr)
		if err != nil {
			return TeamSummaryResponse{}, ErrInvalid("date must be YYYY-MM-DD")
		}
		day = d
	}

	records, err := s.store.List(ctx, Filter{Day: &day})
	if err != nil {
		return TeamSummaryResponse{}, storeErr("team summary list", err)
	}

	sum := TeamSummaryResponse{Date: day.Format(DateLayout)}
	for _, r := range records {
		switch r.Status {
		case clock.StatusPresent:
			sum.Present++
		case clock.StatusAbsent:
			sum.Absent++
		case clock.StatusLate:
			sum.Late++
		case clock.StatusHalfDay:
			sum.HalfDay++
		}
	}
	return sum, nil
}

// TeamTodayStatus returns today's checked-in records resolved to
// directory fields.
func (s *Service) TeamTodayStatus(ctx context.Context) (TeamTodayStatusResponse, error) {
	today := clock.NormalizeToDay(s.now())
	records, err := s.store.List(ctx, Filter{Day: &today})
	if err != nil {
		return TeamTodayStatusResponse{}, storeErr("today team list", err)
	}

	var checkedIn []Record
	for _, r := range records {
		if r.CheckInTime != nil {
			checkedIn = append(checkedIn, r)
		}
	}
	resolved, err := s.resolveTeam(ctx, checkedIn)
	if err != nil {
		return TeamTodayStatusResponse{}, err
	}
	return TeamTodayStatusResponse{
		Date:         today.Format(DateLayout),
		PresentCount: len(resolved),
		Present:      resolved,
	}, nil
}

// resolveTeam attaches directory fields to each record. Listings are
// lenient: a missing owner leaves user empty rather than failing
// (the strict variant lives in the export projector).
func (s *Service) resolveTeam(ctx context.Context, records []Record) ([]TeamRecordResponse, error) {
	cache := make(map[string]*directory.User)
	out := make([]TeamRecordResponse, 0, len(records))
	for _, r := range records {
		u, ok := cache[r.UserID]
		if !ok {
			var err error
			u, err = s.users.FindByID(ctx, r.UserID)
			if err != nil {
				return nil, storeErr("user resolve", err)
			}
			cache[r.UserID] = u
		}
		tr := TeamRecordResponse{RecordResponse: r.Response()}
		if u != nil {
			tr.User = &UserRef{
				ID:         u.ID,
				Name:       u.Name,
				Email:      u.Email,
				EmployeeID: u.EmployeeID,
				Department: u.Department,
			}
		}
		out = append(out, tr)
	}
	return out, nil
}

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return clock.NormalizeToDay(t), nil
}

func storeErr(op string, err error) *APIError {
	log.Printf("[ERROR] attendance %s: %v", op, err)
	return ErrStore()
}
