package attendance

import (
	"database/sql"
	"time"
)

// Record is one user's attendance for one calendar day.
// Date is always the check-in day normalized to local midnight;
// (UserID, Date) is unique at the store level.
type Record struct {
	ID           string
	UserID       string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       string
	TotalHours   float64
}

// DB行に対応（スキャン用）
type recordRow struct {
	ID         string
	UserID     string
	Date       time.Time
	CheckIn    sql.NullTime
	CheckOut   sql.NullTime
	Status     string
	TotalHours float64
}

func (r recordRow) toModel() Record {
	rec := Record{
		ID:         r.ID,
		UserID:     r.UserID,
		Date:       r.Date,
		Status:     r.Status,
		TotalHours: r.TotalHours,
	}
	if r.CheckIn.Valid {
		t := r.CheckIn.Time
		rec.CheckInTime = &t
	}
	if r.CheckOut.Valid {
		t := r.CheckOut.Time
		rec.CheckOutTime = &t
	}
	return rec
}

func (r Record) Response() RecordResponse {
	return RecordResponse{
		RecordID:     r.ID,
		UserID:       r.UserID,
		Date:         r.Date.Format(DateLayout),
		CheckInTime:  r.CheckInTime,
		CheckOutTime: r.CheckOutTime,
		Status:       r.Status,
		TotalHours:   r.TotalHours,
	}
}
