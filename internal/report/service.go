// Package report is the aggregation engine behind the dashboards:
// weekly trend, department rollup and presence/absence reconciliation
// over the attendance records and the user directory.
package report

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
	FindOne(ctx context.Context, userID string, day time.Time) (*attendance.Record, error)
	List(ctx context.Context, f attendance.Filter) ([]attendance.Record, error)
}

type UserSource interface {
	FindByID(ctx context.Context, id string) (*directory.User, error)
	ListByRole(ctx context.Context, role string) ([]directory.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

type Service struct {
	records RecordSource
	users   UserSource
	now     func() time.Time
}

func NewService(dbtx db.DBTX, users *directory.Store) *Service {
	return &Service{
		records: attendance.NewStore(dbtx),
		users:   users,
		now:     time.Now,
	}
}

// ===== Aggregations =====

// WeeklyTrend counts checked-in records per day for the 7 days ending at
// endDay inclusive. Always returns exactly 7 points, ascending by day.
func (s *Service) WeeklyTrend(ctx context.Context, endDay time.Time) ([]TrendPoint, error) {
	endDay = clock.NormalizeToDay(endDay)
	startDay := endDay.AddDate(0, 0, -6)
	to := clock.EndOfDay(endDay)

	records, err := s.records.List(ctx, attendance.Filter{From: &startDay, To: &to})
	if err != nil {
		return nil, storeErr("weekly trend list", err)
	}

	counts := make(map[string]int)
	for _, r := range records {
		if r.CheckInTime == nil {
			continue
		}
		counts[r.Date.Format(attendance.DateLayout)]++
	}

	trend := make([]TrendPoint, 0, 7)
	for i := 0; i < 7; i++ {
		key := startDay.AddDate(0, 0, i).Format(attendance.DateLayout)
		trend = append(trend, TrendPoint{Date: key, Present: counts[key]})
	}
	return trend, nil
}

// DepartmentRollup groups the given day's records by the owner's
// department, counting checked-in records only. Users the directory no
// longer knows fall under "Unknown". Output keeps first-seen order.
func (s *Service) DepartmentRollup(ctx context.Context, records []attendance.Record) ([]DeptCount, error) {
	index := make(map[string]int)
	var out []DeptCount
	cache := make(map[string]*directory.User)

	for _, r := range records {
		if r.CheckInTime == nil {
			continue
		}
		u, ok := cache[r.UserID]
		if !ok {
			var err error
			u, err = s.users.FindByID(ctx, r.UserID)
			if err != nil {
				return nil, storeErr("rollup user resolve", err)
			}
			cache[r.UserID] = u
		}
		dept := directory.UnknownDepartment
		if u != nil && u.Department != "" {
			dept = u.Department
		}
		i, seen := index[dept]
		if !seen {
			index[dept] = len(out)
			out = append(out, DeptCount{Department: dept})
			i = index[dept]
		}
		out[i].Present++
	}
	return out, nil
}

// AbsentReconciliation is the exact absence computation: every directory
// employee without a checked-in record for the day. This, not the
// status-based tally in the team summary, is the authoritative list.
func (s *Service) AbsentReconciliation(ctx context.Context, day time.Time) ([]directory.User, error) {
	day = clock.NormalizeToDay(day)

	employees, err := s.users.ListByRole(ctx, directory.RoleEmployee)
	if err != nil {
		return nil, storeErr("reconciliation employee list", err)
	}
	records, err := s.records.List(ctx, attendance.Filter{Day: &day})
	if err != nil {
		return nil, storeErr("reconciliation record list", err)
	}

	present := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.CheckInTime != nil {
			present[r.UserID] = struct{}{}
		}
	}

	absent := make([]directory.User, 0)
	for _, e := range employees {
		if _, ok := present[e.ID]; !ok {
			absent = append(absent, e)
		}
	}
	return absent, nil
}

// HeadcountAbsentApprox is the headcount-delta absence figure
// (employees − checked-in records). It answers "how many", not "who";
// the named list comes from AbsentReconciliation.
func (s *Service) HeadcountAbsentApprox(ctx context.Context, day time.Time) (TodayAttendance, int64, error) {
	day = clock.NormalizeToDay(day)

	total, err := s.users.CountByRole(ctx, directory.RoleEmployee)
	if err != nil {
		return TodayAttendance{}, 0, storeErr("headcount count", err)
	}
	records, err := s.records.List(ctx, attendance.Filter{Day: &day})
	if err != nil {
		return TodayAttendance{}, 0, storeErr("headcount record list", err)
	}

	present := 0
	for _, r := range records {
		if r.CheckInTime != nil {
			present++
		}
	}
	return TodayAttendance{Present: present, Absent: int(total) - present}, total, nil
}

// ===== Dashboards =====

func (s *Service) EmployeeDashboard(ctx context.Context, userID string) (EmployeeDashboard, error) {
	if userID == "" {
		return EmployeeDashboard{}, attendance.ErrInvalid("user id is required")
	}
	now := s.now()
	today := clock.NormalizeToDay(now)

	todayRec, err := s.records.FindOne(ctx, userID, today)
	if err != nil {
		return EmployeeDashboard{}, storeErr("dashboard today lookup", err)
	}

	from, to := clock.MonthRange(now.Year(), now.Month(), now.Location())
	monthRecords, err := s.records.List(ctx, attendance.Filter{UserID: &userID, From: &from, To: &to})
	if err != nil {
		return EmployeeDashboard{}, storeErr("dashboard month list", err)
	}

	var snap MonthSnapshot
	var hours float64
	for _, r := range monthRecords {
		switch r.Status {
		case clock.StatusPresent:
			snap.Present++
		case clock.StatusAbsent:
			snap.Absent++
		case clock.StatusLate:
			snap.Late++
		}
		hours += r.TotalHours
	}
	snap.TotalHours = clock.Round2(hours)

	recent, err := s.records.List(ctx, attendance.Filter{UserID: &userID, Limit: 7})
	if err != nil {
		return EmployeeDashboard{}, storeErr("dashboard recent list", err)
	}
	recentDTO := make([]attendance.RecordResponse, 0, len(recent))
	for _, r := range recent {
		recentDTO = append(recentDTO, r.Response())
	}

	status := attendance.TodayNotCheckedIn
	if todayRec != nil {
		if todayRec.CheckOutTime != nil {
			status = attendance.TodayCheckedOut
		} else {
			status = attendance.TodayCheckedIn
		}
	}

	return EmployeeDashboard{
		TodayStatus:      status,
		MonthSummary:     snap,
		RecentAttendance: recentDTO,
	}, nil
}

// ManagerDashboard composes the team-wide view. It deliberately carries
// both absence figures: the headcount approximation and the reconciled
// named list.
func (s *Service) ManagerDashboard(ctx context.Context) (ManagerDashboard, error) {
	today := clock.NormalizeToDay(s.now())

	todayAttendance, total, err := s.HeadcountAbsentApprox(ctx, today)
	if err != nil {
		return ManagerDashboard{}, err
	}

	todayRecords, err := s.records.List(ctx, attendance.Filter{Day: &today})
	if err != nil {
		return ManagerDashboard{}, storeErr("dashboard today list", err)
	}

	var late []attendance.Record
	for _, r := range todayRecords {
		if r.Status == clock.StatusLate {
			late = append(late, r)
		}
	}
	lateArrivals, err := s.resolveTeam(ctx, late)
	if err != nil {
		return ManagerDashboard{}, err
	}

	trend, err := s.WeeklyTrend(ctx, today)
	if err != nil {
		return ManagerDashboard{}, err
	}

	departmentWise, err := s.DepartmentRollup(ctx, todayRecords)
	if err != nil {
		return ManagerDashboard{}, err
	}

	absentees, err := s.AbsentReconciliation(ctx, today)
	if err != nil {
		return ManagerDashboard{}, err
	}
	absentDTO := make([]AbsentEmployee, 0, len(absentees))
	for _, u := range absentees {
		absentDTO = append(absentDTO, AbsentEmployee{
			ID:         u.ID,
			Name:       u.Name,
			EmployeeID: u.EmployeeID,
			Department: u.Department,
		})
	}

	return ManagerDashboard{
		TotalEmployees:       total,
		TodayAttendance:      todayAttendance,
		LateArrivals:         lateArrivals,
		WeeklyTrend:          trend,
		DepartmentWise:       departmentWise,
		AbsentEmployeesToday: absentDTO,
	}, nil
}

func (s *Service) resolveTeam(ctx context.Context, records []attendance.Record) ([]attendance.TeamRecordResponse, error) {
	cache := make(map[string]*directory.User)
	out := make([]attendance.TeamRecordResponse, 0, len(records))
	for _, r := range records {
		u, ok := cache[r.UserID]
		if !ok {
			var err error
			u, err = s.users.FindByID(ctx, r.UserID)
			if err != nil {
				return nil, storeErr("late resolve", err)
			}
			cache[r.UserID] = u
		}
		tr := attendance.TeamRecordResponse{RecordResponse: r.Response()}
		if u != nil {
			tr.User = &attendance.UserRef{
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

func storeErr(op string, err error) *attendance.APIError {
	log.Printf("[ERROR] report %s: %v", op, err)
	return attendance.ErrStore()
}
