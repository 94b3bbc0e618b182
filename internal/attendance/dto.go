package attendance

import "time"

const (
	DateLayout = "2006-01-02"

	// Today-status values derived from check-in/check-out presence,
	// independent of the stored status field.
	TodayNotCheckedIn = "Not Checked In"
	TodayCheckedIn    = "Checked In"
	TodayCheckedOut   = "Checked Out"
)

type RecordResponse struct {
	RecordID     string     `json:"record_id"`
	UserID       string     `json:"user_id"`
	Date         string     `json:"date"` // YYYY-MM-DD
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	Status       string     `json:"status"`
	TotalHours   float64    `json:"total_hours"`
}

// UserRef is the directory projection embedded in team-wide listings.
type UserRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
	Department string `json:"department"`
}

type TeamRecordResponse struct {
	RecordResponse
	User *UserRef `json:"user,omitempty"`
}

type TodayStatusResponse struct {
	Status string          `json:"status"`
	Record *RecordResponse `json:"record,omitempty"`
}

type SummaryResponse struct {
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"half_day"`
	TotalHours float64 `json:"total_hours"`
}

type TeamSummaryResponse struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
	HalfDay int    `json:"half_day"`
}

type TeamTodayStatusResponse struct {
	Date         string               `json:"date"` // YYYY-MM-DD
	PresentCount int                  `json:"present_count"`
	Present      []TeamRecordResponse `json:"present"`
}

// AllQuery filters the manager-wide listing. An unknown employee code
// yields an empty result set, not an error.
type AllQuery struct {
	EmployeeCode string
	Date         string // YYYY-MM-DD
	Status       string
}

// Filter is the store-level record selection.
type Filter struct {
	UserID *string
	Day    *time.Time // exact normalized day; wins over From/To
	From   *time.Time
	To     *time.Time
	Status *string
	Limit  int  // 0 = unlimited
	Asc    bool // date ascending (default descending)
}
