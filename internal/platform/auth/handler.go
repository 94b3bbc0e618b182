package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shahana-04/employee/internal/directory"
)

type Handler struct{ svc *Service }

// RegisterRoutes wires the open auth endpoints; requireAuth guards /me.
func RegisterRoutes(r gin.IRoutes, svc *Service, requireAuth gin.HandlerFunc) {
	h := &Handler{svc: svc}
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", requireAuth, h.Me)
}

type RegisterRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6"`
	EmployeeID string  `json:"employee_id" binding:"required"`
	Department string  `json:"department"`
	Role       *string `json:"role,omitempty"` // 未指定なら employee
}

type accountDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

func toAccountDTO(a *Account) accountDTO {
	return accountDTO{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		EmployeeID: a.EmployeeID,
		Department: a.Department,
		Role:       a.Role,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role := directory.RoleEmployee
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}
	if role != directory.RoleEmployee && role != directory.RoleManager {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be employee or manager"})
		return
	}

	acct, err := h.svc.Register(c.Request.Context(), RegisterInput{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   req.Password,
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		Department: strings.TrimSpace(req.Department),
		Role:       role,
	})
	if err != nil {
		if err == ErrAlreadyExists {
			c.JSON(http.StatusConflict, gin.H{"error": "email or employee_id already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "register failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered", "user": toAccountDTO(acct)})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, acct, err := h.svc.Login(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toAccountDTO(acct),
	})
}

func (h *Handler) Me(c *gin.Context) {
	acct, err := h.svc.Me(c.Request.Context(), UserID(c))
	if err != nil {
		if err == ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toAccountDTO(acct)})
}
