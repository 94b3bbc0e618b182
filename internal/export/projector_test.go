package export

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shahana-04/employee/internal/attendance"
	"github.com/shahana-04/employee/internal/clock"
	"github.com/shahana-04/employee/internal/directory"
)

func record(id, userID string, d int, withTimes bool) attendance.Record {
	rec := attendance.Record{
		ID:     id,
		UserID: userID,
		Date:   time.Date(2025, 6, d, 0, 0, 0, 0, time.Local),
		Status: clock.StatusPresent,
	}
	if withTimes {
		in := time.Date(2025, 6, d, 9, 0, 0, 0, time.Local)
		out := time.Date(2025, 6, d, 17, 30, 0, 0, time.Local)
		rec.CheckInTime = &in
		rec.CheckOutTime = &out
		rec.TotalHours = 8.5
	}
	return rec
}

func TestProjectRowParity(t *testing.T) {
	records := []attendance.Record{
		record("r1", "u1", 10, true),
		record("r2", "u2", 10, false), // checked nothing: empty time cells
		record("r3", "u1", 11, true),
	}
	users := map[string]directory.User{
		"u1": {ID: "u1", Name: "Asha", EmployeeID: "EMP-001", Department: "Engineering"},
		"u2": {ID: "u2", Name: "Ben", EmployeeID: "EMP-002", Department: "Sales"},
	}

	rows, err := Project(records, users)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(rows) != len(records) {
		t.Fatalf("expected %d rows, got %d", len(records), len(rows))
	}
	if rows[0].EmployeeID != "EMP-001" || rows[0].Date != "2025-06-10" || rows[0].TotalHours != 8.5 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[0].CheckInTime == "" || rows[0].CheckOutTime == "" {
		t.Fatalf("expected ISO times on first row, got %+v", rows[0])
	}
	if rows[1].CheckInTime != "" || rows[1].CheckOutTime != "" {
		t.Fatalf("expected empty time cells on shell row, got %+v", rows[1])
	}
}

func TestProjectUnresolvedReference(t *testing.T) {
	records := []attendance.Record{record("r1", "ghost", 10, true)}

	_, err := Project(records, map[string]directory.User{})

	var api *APIError
	if !errors.As(err, &api) || api.Code != CodeUnresolvedReference {
		t.Fatalf("expected UNRESOLVED_REFERENCE, got %v", err)
	}
}

type fakeRecords struct {
	list func(ctx context.Context, f attendance.Filter) ([]attendance.Record, error)
}

func (r *fakeRecords) List(ctx context.Context, f attendance.Filter) ([]attendance.Record, error) {
	if r.list == nil {
		return nil, nil
	}
	return r.list(ctx, f)
}

type fakeUsers struct {
	findByID           func(ctx context.Context, id string) (*directory.User, error)
	findByEmployeeCode func(ctx context.Context, code string) (*directory.User, error)
}

func (u *fakeUsers) FindByID(ctx context.Context, id string) (*directory.User, error) {
	if u.findByID == nil {
		return nil, nil
	}
	return u.findByID(ctx, id)
}

func (u *fakeUsers) FindByEmployeeCode(ctx context.Context, code string) (*directory.User, error) {
	if u.findByEmployeeCode == nil {
		return nil, nil
	}
	return u.findByEmployeeCode(ctx, code)
}

func TestExportUnknownEmployeeCode(t *testing.T) {
	svc := &Service{records: &fakeRecords{}, users: &fakeUsers{}}

	rows, err := svc.Export(context.Background(), Query{EmployeeCode: "EMP-404"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty rows, got %v", rows)
	}
}

func TestExportRangeBoundsInclusive(t *testing.T) {
	var gotFilter attendance.Filter
	records := &fakeRecords{
		list: func(ctx context.Context, f attendance.Filter) ([]attendance.Record, error) {
			gotFilter = f
			return nil, nil
		},
	}
	svc := &Service{records: records, users: &fakeUsers{}}

	if _, err := svc.Export(context.Background(), Query{StartDate: "2025-06-01", EndDate: "2025-06-10"}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if gotFilter.From == nil || gotFilter.To == nil {
		t.Fatal("expected range filter")
	}
	if !gotFilter.From.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected start %v", gotFilter.From)
	}
	if !gotFilter.To.Equal(time.Date(2025, 6, 10, 23, 59, 59, 999_000_000, time.Local)) {
		t.Fatalf("unexpected end %v", gotFilter.To)
	}
}

func TestExportHalfOpenQueryRejected(t *testing.T) {
	svc := &Service{records: &fakeRecords{}, users: &fakeUsers{}}

	_, err := svc.Export(context.Background(), Query{StartDate: "2025-06-01"})

	var api *APIError
	if !errors.As(err, &api) || api.Code != CodeInvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestMarshalCSV(t *testing.T) {
	rows := []Row{
		{EmployeeID: "EMP-001", Name: "Asha", Department: "Engineering", Date: "2025-06-10",
			Status: clock.StatusPresent, CheckInTime: "2025-06-10T09:00:00+05:30", TotalHours: 8.5},
	}

	data, err := marshalCSV(rows, false)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(csvHeader, ",") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "EMP-001") || !strings.HasSuffix(lines[1], "8.5") {
		t.Fatalf("unexpected row %q", lines[1])
	}
}
