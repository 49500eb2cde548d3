package repository

import (
	"context"

	"github.com/sangkips/scango-api/internal/domain/entity"
)

// EmployeeRepository reads staff accounts
type EmployeeRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Employee, error)
}
