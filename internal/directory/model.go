package directory

import "time"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"

	// Fallback when a user row has no department set.
	UnknownDepartment = "Unknown"
)

type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EmployeeID string    `json:"employee_id"`
	Department string    `json:"department"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}
