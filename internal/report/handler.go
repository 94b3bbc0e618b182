package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shahana-04/employee/internal/attendance"
	"github.com/shahana-04/employee/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, requireManager gin.HandlerFunc) {
	h := &Handler{svc: svc}
	r.GET("/dashboard/employee", h.Employee)
	r.GET("/dashboard/manager", requireManager, h.Manager)
}

func (h *Handler) Employee(c *gin.Context) {
	res, err := h.svc.EmployeeDashboard(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(attendance.ToHTTPStatus(err), attendance.APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Manager(c *gin.Context) {
	res, err := h.svc.ManagerDashboard(c.Request.Context())
	if err != nil {
		c.JSON(attendance.ToHTTPStatus(err), attendance.APIErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
