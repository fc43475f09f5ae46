package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleManager is the role name allowed to administer categories and staff.
// It is reserved: it cannot be created, renamed or deleted.
const RoleManager = "Gerente"

const (
	EmployeeActive   = "Ativo"
	EmployeeInactive = "Inativo"
)

type Employee struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Role      string    `db:"role"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (e *Employee) IsManager() bool {
	return e.Role == RoleManager
}

// IsActive treats an unset status as active.
func (e *Employee) IsActive() bool {
	return e.Status != EmployeeInactive
}

func ValidEmployeeStatus(status string) bool {
	return status == EmployeeActive || status == EmployeeInactive
}

// Role is a job title employees are assigned to. Employees reference it by
// name.
type Role struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}
