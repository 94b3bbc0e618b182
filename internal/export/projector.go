// Package export flattens attendance records into tabular report rows
// and serves them as CSV downloads.
package export

import (
	"fmt"
	"time"

	"github.com/shahana-04/employee/internal/attendance"
	"github.com/shahana-04/employee/internal/directory"
)

// Row is one flat report line with the owner already resolved.
type Row struct {
	EmployeeID   string
	Name         string
	Department   string
	Date         string // YYYY-MM-DD
	Status       string
	CheckInTime  string // ISO8601 or ""
	CheckOutTime string // ISO8601 or ""
	TotalHours   float64
}

// Project maps records to rows 1:1. A record whose owner is missing from
// users fails the whole projection with UNRESOLVED_REFERENCE — rows are
// never dropped silently, so row count always matches record count.
func Project(records []attendance.Record, users map[string]directory.User) ([]Row, error) {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		u, ok := users[r.UserID]
		if !ok {
			return nil, ErrUnresolved(fmt.Sprintf("no user for record %s", r.ID))
		}
		rows = append(rows, Row{
			EmployeeID:   u.EmployeeID,
			Name:         u.Name,
			Department:   u.Department,
			Date:         r.Date.Format(attendance.DateLayout),
			Status:       r.Status,
			CheckInTime:  isoOrEmpty(r.CheckInTime),
			CheckOutTime: isoOrEmpty(r.CheckOutTime),
			TotalHours:   r.TotalHours,
		})
	}
	return rows, nil
}

func isoOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
