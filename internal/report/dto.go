package report

import "github.com/shahana-04/employee/internal/attendance"

// TrendPoint is one day of the weekly presence trend; days with no
// records still appear with Present=0.
type TrendPoint struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Present int    `json:"present"`
}

type DeptCount struct {
	Department string `json:"department"`
	Present    int    `json:"present"`
}

// AbsentEmployee is the directory projection of a reconciled absentee.
type AbsentEmployee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Department string `json:"department"`
}

// MonthSnapshot is the employee-dashboard month rollup. It carries no
// half-day counter; the full breakdown lives in the personal summary.
type MonthSnapshot struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	TotalHours float64 `json:"total_hours"`
}

type EmployeeDashboard struct {
	TodayStatus      string                      `json:"today_status"`
	MonthSummary     MonthSnapshot               `json:"month_summary"`
	RecentAttendance []attendance.RecordResponse `json:"recent_attendance"`
}

// TodayAttendance exposes the headcount-delta absence approximation
// (total − present). The named absentee list is a separate figure with
// different semantics; the two must not be conflated.
type TodayAttendance struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

type ManagerDashboard struct {
	TotalEmployees       int64                           `json:"total_employees"`
	TodayAttendance      TodayAttendance                 `json:"today_attendance"`
	LateArrivals         []attendance.TeamRecordResponse `json:"late_arrivals"`
	WeeklyTrend          []TrendPoint                    `json:"weekly_trend"`
	DepartmentWise       []DeptCount                     `json:"department_wise"`
	AbsentEmployeesToday []AbsentEmployee                `json:"absent_employees_today"`
}
