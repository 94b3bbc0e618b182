package attendance

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shahana-04/employee/internal/platform/auth"
)

type Handler struct{ svc *Service }

// RegisterRoutes: caller mounts this under an authenticated group;
// requireManager guards the team-wide endpoints.
func RegisterRoutes(r gin.IRoutes, svc *Service, requireManager gin.HandlerFunc) {
	h := &Handler{svc: svc}

	// employee
	r.POST("/attendance/checkin", h.CheckIn)
	r.POST("/attendance/checkout", h.CheckOut)
	r.GET("/attendance/today", h.Today)
	r.GET("/attendance/my-history", h.MyHistory)
	r.GET("/attendance/my-summary", h.MySummary)

	// manager
	r.GET("/attendance/all", requireManager, h.ListAll)
	r.GET("/attendance/employee/:id", requireManager, h.EmployeeHistory)
	r.GET("/attendance/summary", requireManager, h.TeamSummary)
	r.GET("/attendance/today-status", requireManager, h.TeamTodayStatus)
}

// ---------- handlers ----------

func (h *Handler) CheckIn(c *gin.Context) {
	res, err := h.svc.CheckIn(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(ToHTTPStatus(err), APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checked in", "record": res})
}

func (h *Handler) CheckOut(c *gin.Context) {
	res, err := h.svc.CheckOut(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(ToHTTPStatus(err), APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checked out", "record": res})
}

func (h *Handler) Today(c *gin.Context) {
	res, err := h.svc.TodayStatus(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(ToHTTPStatus(err), APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) MyHistory(c *gin.Context) {
	month, year := monthYear(c)
	records, err := h.svc.PersonalHistory(c.Request.Context(), auth.UserID(c), month, year)
	if err != nil {
		c.JSON(ToHTTPStatus(err), APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) MySummary(c *gin.Context) {
	month, year := monthYear(c)
	res, err := h.svc.PersonalSummary(c.Request.Context(), auth.UserID(c), month, year)
	if err != nil {
		c.JSON(ToHTTPStatus(err), APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListAll(c *gin.Context) {
	q := AllQuery{
		EmployeeCode: c.Query("employee_id"),
		Date:         c.Query("date"),
		Status:       c.Query("status"),
	}
	records, err := h.svc.ListAll(c.Request.Context(), q)
	if err != nil {
		c.JSON(ToHTTPStatus(err), APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) EmployeeHistory(c *gin.Context) {
	month, year := monthYear(c)
	records, err := h.svc.EmployeeHistory(c.Request.Context(), c.Param("id"), month, year)
	if err != nil {
		c.JSON(ToHTTPStatus(err), APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) TeamSummary(c *gin.Context) {
	res, err := h.svc.TeamSummaryForDay(c.Request.Context(), c.Query("date"))
	if err != nil {
		c.JSON(ToHTTPStatus(err), APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) TeamTodayStatus(c *gin.Context) {
	res, err := h.svc.TeamTodayStatus(c.Request.Context())
	if err != nil {
		c.JSON(ToHTTPStatus(err), APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func monthYear(c *gin.Context) (int, int) {
	return atoiDef(c.Query("month"), 0), atoiDef(c.Query("year"), 0)
}

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}
