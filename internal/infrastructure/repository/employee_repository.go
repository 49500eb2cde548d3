package repository

import (
	"context"
	"errors"

	"github.com/sangkips/scango-api/internal/domain/entity"
	domainRepo "github.com/sangkips/scango-api/internal/domain/repository"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates an employee repository over one backend
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Employee, error) {
	var emp entity.Employee
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

type fallbackEmployeeRepository struct {
	remote domainRepo.EmployeeRepository
	local  domainRepo.EmployeeRepository
	f      *fallback
}

// NewFallbackEmployeeRepository reads staff accounts remote-first. remote may be nil.
func NewFallbackEmployeeRepository(remote, local domainRepo.EmployeeRepository, opts FallbackOptions) domainRepo.EmployeeRepository {
	resolve := opts.Resolver
	if remote == nil {
		resolve = LocalOnly
	}
	return &fallbackEmployeeRepository{
		remote: remote,
		local:  local,
		f:      newFallback(resolve, opts.Health, opts.Timeout, opts.Logger),
	}
}

func (r *fallbackEmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Employee, error) {
	return call(ctx, r.f, "employee", employeeID, false,
		func(ctx context.Context) (*entity.Employee, error) { return r.remote.GetByEmployeeID(ctx, employeeID) },
		func(ctx context.Context) (*entity.Employee, error) { return r.local.GetByEmployeeID(ctx, employeeID) },
	)
}
