package entity

import (
	"time"

	"github.com/sangkips/scango-api/internal/domain/enum"
)

// Employee is a staff member allowed onto the cashier or guard terminal
type Employee struct {
	EmployeeID   string            `gorm:"primaryKey;size:64" json:"employee_id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Role         enum.EmployeeRole `gorm:"size:16;not null" json:"role"`
	PasswordHash string            `gorm:"size:255;not null" json:"-"`
	Active       bool              `gorm:"default:true" json:"active"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}
