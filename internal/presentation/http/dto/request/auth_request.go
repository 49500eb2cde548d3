package request

// EmployeeLoginRequest represents a staff terminal login
type EmployeeLoginRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,max=64"`
	Password   string `json:"password" binding:"required"`
}

// SendOTPRequest asks for a one-time password
type SendOTPRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Phone string `json:"phone" binding:"required,numeric,min=10,max=15"`
}

// VerifyOTPRequest completes customer sign-in
type VerifyOTPRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Phone string `json:"phone" binding:"required,numeric,min=10,max=15"`
	OTP   string `json:"otp" binding:"required,numeric,len=6"`
}
