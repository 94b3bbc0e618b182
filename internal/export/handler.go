package export

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const attachmentName = "attendance_report.csv"

var csvHeader = []string{
	"employeeId", "name", "department", "date", "status",
	"checkInTime", "checkOutTime", "totalHours",
}

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, requireManager gin.HandlerFunc) {
	h := &Handler{svc: svc}
	r.GET("/attendance/export", requireManager, h.Export)
}

// GET /attendance/export?start_date=&end_date=&employee_id=&encoding=
func (h *Handler) Export(c *gin.Context) {
	rows, err := h.svc.Export(c.Request.Context(), Query{
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		EmployeeCode: c.Query("employee_id"),
	})
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}

	sjis := c.Query("encoding") == "sjis"
	data, err := marshalCSV(rows, sjis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apiErrFrom(err))
		return
	}

	contentType := "text/csv; charset=utf-8"
	if sjis {
		contentType = "text/csv; charset=Shift_JIS"
	}
	c.Header("Content-Disposition", `attachment; filename="`+attachmentName+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// marshalCSV renders rows; sjis=true re-encodes to CP932 for Excel
// environments that choke on UTF-8.
func marshalCSV(rows []Row, sjis bool) ([]byte, error) {
	var b bytes.Buffer
	var w *csv.Writer
	if sjis {
		w = csv.NewWriter(transform.NewWriter(&b, japanese.ShiftJIS.NewEncoder()))
	} else {
		w = csv.NewWriter(&b)
	}

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.EmployeeID,
			r.Name,
			r.Department,
			r.Date,
			r.Status,
			r.CheckInTime,
			r.CheckOutTime,
			strconv.FormatFloat(r.TotalHours, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
