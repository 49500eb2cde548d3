package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/enum"
	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/pkg/apperror"
	"github.com/sangkips/scango-api/pkg/otp"
	"github.com/sangkips/scango-api/pkg/utils"
	"go.uber.org/zap"
)

// Development login used when the employee directory is unreachable
const (
	devEmployeeID       = "admin"
	devEmployeePassword = "1234"
)

// OTPGateway sends and checks one-time passwords
type OTPGateway interface {
	SendOTP(ctx context.Context, phone string) (*otp.Result, error)
	VerifyOTP(ctx context.Context, phone, code string) (*otp.Result, error)
}

// AuthService handles staff and customer sign-in
type AuthService struct {
	employees   repository.EmployeeRepository
	jwtManager  *utils.JWTManager
	otp         OTPGateway
	devFallback bool
	log         *zap.Logger
}

// NewAuthService creates a new auth service. devFallback enables the
// admin/1234 cashier login when the directory cannot be reached.
func NewAuthService(
	employees repository.EmployeeRepository,
	jwtManager *utils.JWTManager,
	otpGateway OTPGateway,
	devFallback bool,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		employees:   employees,
		jwtManager:  jwtManager,
		otp:         otpGateway,
		devFallback: devFallback,
		log:         log,
	}
}

// EmployeeLoginOutput represents the staff login output
type EmployeeLoginOutput struct {
	Employee    *entity.Employee `json:"employee"`
	AccessToken string           `json:"access_token"`
}

// Customer is the signed-in shopper. Customers are identified by phone and never stored.
type Customer struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// CustomerLoginOutput represents the customer login output
type CustomerLoginOutput struct {
	Customer    *Customer `json:"customer"`
	AccessToken string    `json:"access_token"`
}

// Login checks staff credentials. It returns nil, nil for a wrong ID or password.
func (s *AuthService) Login(ctx context.Context, employeeID, password string) (*entity.Employee, error) {
	employeeID = strings.TrimSpace(employeeID)

	emp, err := s.employees.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if s.devFallback && employeeID == devEmployeeID && password == devEmployeePassword {
			s.log.Warn("employee directory unavailable, using development login", zap.Error(err))
			return devEmployee(), nil
		}
		return nil, apperror.NewPersistenceError("Employee directory unavailable", err)
	}
	if emp == nil || !utils.CheckPasswordHash(password, emp.PasswordHash) {
		return nil, nil
	}
	return emp, nil
}

// EmployeeLogin authenticates staff and issues a session token
func (s *AuthService) EmployeeLogin(ctx context.Context, employeeID, password string) (*EmployeeLoginOutput, error) {
	emp, err := s.Login(ctx, employeeID, password)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !emp.Active {
		return nil, apperror.NewAppError(http.StatusForbidden, "Employee account is disabled")
	}
	if !emp.Role.IsValid() {
		return nil, apperror.NewAppError(http.StatusForbidden, "Employee has no terminal role")
	}

	token, err := s.jwtManager.GenerateEmployeeToken(emp.EmployeeID, emp.Name, emp.Role.String())
	if err != nil {
		return nil, err
	}

	s.log.Info("employee signed in", zap.String("employee_id", emp.EmployeeID), zap.String("role", emp.Role.String()))
	return &EmployeeLoginOutput{Employee: emp, AccessToken: token}, nil
}

// SendOTP asks the gateway to text a code to phone
func (s *AuthService) SendOTP(ctx context.Context, phone string) (*otp.Result, error) {
	res, err := s.otp.SendOTP(ctx, phone)
	if err != nil {
		s.log.Warn("OTP send failed", zap.Error(err))
		return nil, apperror.NewAppError(http.StatusBadGateway, "Could not send OTP, please retry")
	}
	if !res.Success {
		return nil, apperror.NewBadRequestError(res.Message)
	}
	return res, nil
}

// VerifyOTP checks the code and signs the customer in
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code, name string) (*CustomerLoginOutput, error) {
	res, err := s.otp.VerifyOTP(ctx, phone, code)
	if err != nil {
		s.log.Warn("OTP verify failed", zap.Error(err))
		return nil, apperror.NewAppError(http.StatusBadGateway, "Could not verify OTP, please retry")
	}
	if !res.Success {
		return nil, apperror.ErrInvalidOTP
	}

	customer := &Customer{ID: "user-" + phone, Phone: phone, Name: strings.TrimSpace(name)}
	token, err := s.jwtManager.GenerateCustomerToken(customer.ID, customer.Phone, customer.Name)
	if err != nil {
		return nil, err
	}
	return &CustomerLoginOutput{Customer: customer, AccessToken: token}, nil
}

func devEmployee() *entity.Employee {
	return &entity.Employee{
		EmployeeID: "emp-001",
		Name:       "Demo Employee",
		Role:       enum.EmployeeRoleCashier,
		Active:     true,
	}
}
