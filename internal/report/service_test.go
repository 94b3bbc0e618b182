package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shahana-04/employee/internal/attendance"
	"github.com/shahana-04/employee/internal/clock"
	"github.com/shahana-04/employee/internal/directory"
)

type fakeRecords struct {
	findOne func(ctx context.Context, userID string, day time.Time) (*attendance.Record, error)
	list    func(ctx context.Context, f attendance.Filter) ([]attendance.Record, error)
}

func (r *fakeRecords) FindOne(ctx context.Context, userID string, day time.Time) (*attendance.Record, error) {
	if r.findOne == nil {
		return nil, nil
	}
	return r.findOne(ctx, userID, day)
}

func (r *fakeRecords) List(ctx context.Context, f attendance.Filter) ([]attendance.Record, error) {
	if r.list == nil {
		return nil, nil
	}
	return r.list(ctx, f)
}

type fakeUsers struct {
	findByID   func(ctx context.Context, id string) (*directory.User, error)
	listByRole func(ctx context.Context, role string) ([]directory.User, error)
	countByRole func(ctx context.Context, role string) (int64, error)
}

func (u *fakeUsers) FindByID(ctx context.Context, id string) (*directory.User, error) {
	if u.findByID == nil {
		return nil, nil
	}
	return u.findByID(ctx, id)
}

func (u *fakeUsers) ListByRole(ctx context.Context, role string) ([]directory.User, error) {
	if u.listByRole == nil {
		return nil, nil
	}
	return u.listByRole(ctx, role)
}

func (u *fakeUsers) CountByRole(ctx context.Context, role string) (int64, error) {
	if u.countByRole == nil {
		return 0, nil
	}
	return u.countByRole(ctx, role)
}

func newTestService(records RecordSource, users UserSource, now time.Time) *Service {
	return &Service{records: records, users: users, now: func() time.Time { return now }}
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.Local)
}

func checkedIn(userID string, d int, status string) attendance.Record {
	in := time.Date(2025, 6, d, 9, 0, 0, 0, time.Local)
	return attendance.Record{
		ID:          "rec-" + userID + fmt.Sprint(d),
		UserID:      userID,
		Date:        day(d),
		CheckInTime: &in,
		Status:      status,
	}
}

func TestWeeklyTrendIsDenseAndAscending(t *testing.T) {
	records := &fakeRecords{
		list: func(ctx context.Context, f attendance.Filter) ([]attendance.Record, error) {
			return []attendance.Record{
				checkedIn("u1", 10, clock.StatusPresent),
				checkedIn("u2", 10, clock.StatusLate),
				checkedIn("u1", 12, clock.StatusPresent),
				{ID: "shell", UserID: "u3", Date: day(14), Status: clock.StatusAbsent}, // no check-in: not counted
			}, nil
		},
	}
	svc := newTestService(records, &fakeUsers{}, day(14))

	trend, err := svc.WeeklyTrend(context.Background(), day(14))
	if err != nil {
		t.Fatalf("weekly trend: %v", err)
	}
	if len(trend) != 7 {
		t.Fatalf("expected exactly 7 points, got %d", len(trend))
	}
	for i, p := range trend {
		want := day(8 + i).Format("2006-01-02")
		if p.Date != want {
			t.Fatalf("point %d: expected %s, got %s", i, want, p.Date)
		}
	}
	wantCounts := []int{0, 0, 2, 0, 1, 0, 0}
	for i, want := range wantCounts {
		if trend[i].Present != want {
			t.Fatalf("point %s: expected %d present, got %d", trend[i].Date, want, trend[i].Present)
		}
	}
}

func TestAbsentReconciliationExactComplement(t *testing.T) {
	employees := make([]directory.User, 0, 10)
	for i := 1; i <= 10; i++ {
		employees = append(employees, directory.User{
			ID:         fmt.Sprintf("u%d", i),
			Name:       fmt.Sprintf("Employee %d", i),
			EmployeeID: fmt.Sprintf("EMP-%03d", i),
			Role:       directory.RoleEmployee,
		})
	}
	var recs []attendance.Record
	for i := 1; i <= 6; i++ {
		recs = append(recs, checkedIn(fmt.Sprintf("u%d", i), 14, clock.StatusPresent))
	}

	records := &fakeRecords{
		list: func(ctx context.Context, f attendance.Filter) ([]attendance.Record, error) {
			return recs, nil
		},
	}
	users := &fakeUsers{
		listByRole: func(ctx context.Context, role string) ([]directory.User, error) {
			if role != directory.RoleEmployee {
				t.Fatalf("expected employee role query, got %q", role)
			}
			return employees, nil
		},
	}
	svc := newTestService(records, users, day(14))

	absent, err := svc.AbsentReconciliation(context.Background(), day(14))
	if err != nil {
		t.Fatalf("reconciliation: %v", err)
	}
	if len(absent) != 4 {
		t.Fatalf("expected 4 absentees, got %d", len(absent))
	}
	for i, u := range absent {
		want := fmt.Sprintf("u%d", 7+i)
		if u.ID != want {
			t.Fatalf("absentee %d: expected %s, got %s", i, want, u.ID)
		}
	}
}

func TestAbsentReconciliationIgnoresShellRecords(t *testing.T) {
	records := &fakeRecords{
		list: func(ctx context.Context, f attendance.Filter) ([]attendance.Record, error) {
			// record exists but has no check-in: still absent
			return []attendance.Record{{ID: "shell", UserID: "u1", Date: day(14), Status: clock.StatusAbsent}}, nil
		},
	}
	users := &fakeUsers{
		listByRole: func(ctx context.Context, role string) ([]directory.User, error) {
			return []directory.User{{ID: "u1", Role: directory.RoleEmployee}}, nil
		},
	}
	svc := newTestService(records, users, day(14))

	absent, err := svc.AbsentReconciliation(context.Background(), day(14))
	if err != nil {
		t.Fatalf("reconciliation: %v", err)
	}
	if len(absent) != 1 || absent[0].ID != "u1" {
		t.Fatalf("expected u1 absent, got %v", absent)
	}
}

func TestDepartmentRollup(t *testing.T) {
	depts := map[string]string{"u1": "Engineering", "u2": "Engineering", "u3": "Sales"}
	users := &fakeUsers{
		findByID: func(ctx context.Context, id string) (*directory.User, error) {
			if d, ok := depts[id]; ok {
				return &directory.User{ID: id, Department: d}, nil
			}
			return nil, nil // dropped from the directory
		},
	}
	svc := newTestService(&fakeRecords{}, users, day(14))

	in := []attendance.Record{
		checkedIn("u1", 14, clock.StatusPresent),
		checkedIn("u2", 14, clock.StatusLate),
		checkedIn("u3", 14, clock.StatusPresent),
		checkedIn("u4", 14, clock.StatusPresent), // unresolvable owner
		{ID: "shell", UserID: "u5", Date: day(14)}, // no check-in: skipped
	}
	rollup, err := svc.DepartmentRollup(context.Background(), in)
	if err != nil {
		t.Fatalf("rollup: %v", err)
	}
	want := []DeptCount{
		{Department: "Engineering", Present: 2},
		{Department: "Sales", Present: 1},
		{Department: directory.UnknownDepartment, Present: 1},
	}
	if len(rollup) != len(want) {
		t.Fatalf("expected %d departments, got %d", len(want), len(rollup))
	}
	for i := range want {
		if rollup[i] != want[i] {
			t.Fatalf("dept %d: expected %+v, got %+v", i, want[i], rollup[i])
		}
	}
}

func TestManagerDashboardApproxVsExactAbsence(t *testing.T) {
	employees := []directory.User{
		{ID: "u1", Name: "Asha", EmployeeID: "EMP-001", Department: "Engineering", Role: directory.RoleEmployee},
		{ID: "u2", Name: "Ben", EmployeeID: "EMP-002", Department: "Sales", Role: directory.RoleEmployee},
		{ID: "u3", Name: "Chitra", EmployeeID: "EMP-003", Department: "Sales", Role: directory.RoleEmployee},
	}
	todayRecs := []attendance.Record{
		checkedIn("u1", 14, clock.StatusLate),
		{ID: "shell", UserID: "u2", Date: day(14), Status: clock.StatusAbsent}, // seeded, no check-in
	}
	records := &fakeRecords{
		list: func(ctx context.Context, f attendance.Filter) ([]attendance.Record, error) {
			if f.Day != nil {
				return todayRecs, nil
			}
			return todayRecs[:1], nil // trend window
		},
	}
	users := &fakeUsers{
		findByID: func(ctx context.Context, id string) (*directory.User, error) {
			for i := range employees {
				if employees[i].ID == id {
					return &employees[i], nil
				}
			}
			return nil, nil
		},
		listByRole: func(ctx context.Context, role string) ([]directory.User, error) {
			return employees, nil
		},
		countByRole: func(ctx context.Context, role string) (int64, error) {
			return int64(len(employees)), nil
		},
	}
	svc := newTestService(records, users, day(14))

	dash, err := svc.ManagerDashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.TotalEmployees != 3 {
		t.Fatalf("expected 3 employees, got %d", dash.TotalEmployees)
	}
	// approximation: headcount delta
	if dash.TodayAttendance.Present != 1 || dash.TodayAttendance.Absent != 2 {
		t.Fatalf("unexpected approx figures %+v", dash.TodayAttendance)
	}
	// exact: named list (u2 has a record but no check-in, u3 has nothing)
	if len(dash.AbsentEmployeesToday) != 2 {
		t.Fatalf("expected 2 named absentees, got %+v", dash.AbsentEmployeesToday)
	}
	if dash.AbsentEmployeesToday[0].ID != "u2" || dash.AbsentEmployeesToday[1].ID != "u3" {
		t.Fatalf("unexpected absentees %+v", dash.AbsentEmployeesToday)
	}
	if len(dash.LateArrivals) != 1 || dash.LateArrivals[0].User == nil || dash.LateArrivals[0].User.Name != "Asha" {
		t.Fatalf("unexpected late arrivals %+v", dash.LateArrivals)
	}
	if len(dash.WeeklyTrend) != 7 {
		t.Fatalf("expected dense trend, got %d points", len(dash.WeeklyTrend))
	}
	if len(dash.DepartmentWise) != 1 || dash.DepartmentWise[0].Department != "Engineering" {
		t.Fatalf("unexpected department rollup %+v", dash.DepartmentWise)
	}
}

func TestEmployeeDashboard(t *testing.T) {
	in := time.Date(2025, 6, 14, 9, 0, 0, 0, time.Local)
	out := time.Date(2025, 6, 14, 17, 30, 0, 0, time.Local)
	today := &attendance.Record{ID: "r", UserID: "u1", Date: day(14), CheckInTime: &in, CheckOutTime: &out, Status: clock.StatusPresent, TotalHours: 8.5}

	records := &fakeRecords{
		findOne: func(ctx context.Context, userID string, d time.Time) (*attendance.Record, error) {
			return today, nil
		},
		list: func(ctx context.Context, f attendance.Filter) ([]attendance.Record, error) {
			if f.Limit == 7 {
				return []attendance.Record{*today}, nil
			}
			return []attendance.Record{
				*today,
				checkedIn("u1", 13, clock.StatusLate),
				{ID: "x", UserID: "u1", Date: day(12), Status: clock.StatusHalfDay}, // not in snapshot counters
			}, nil
		},
	}
	svc := newTestService(records, &fakeUsers{}, day(14).Add(18*time.Hour))

	dash, err := svc.EmployeeDashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.TodayStatus != attendance.TodayCheckedOut {
		t.Fatalf("expected checked out, got %q", dash.TodayStatus)
	}
	if dash.MonthSummary.Present != 1 || dash.MonthSummary.Late != 1 || dash.MonthSummary.Absent != 0 {
		t.Fatalf("unexpected month summary %+v", dash.MonthSummary)
	}
	if dash.MonthSummary.TotalHours != 8.5 {
		t.Fatalf("expected 8.5 hours, got %v", dash.MonthSummary.TotalHours)
	}
	if len(dash.RecentAttendance) != 1 {
		t.Fatalf("expected 1 recent record, got %d", len(dash.RecentAttendance))
	}
}
