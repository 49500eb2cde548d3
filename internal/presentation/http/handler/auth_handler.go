package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/application/service"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/request"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// EmployeeLogin handles staff terminal login
// @Summary Employee login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.EmployeeLoginRequest true "Employee credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/employee/login [post]
func (h *AuthHandler) EmployeeLogin(c *gin.Context) {
	var req request.EmployeeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.EmployeeLogin(c.Request.Context(), req.EmployeeID, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"employee":     output.Employee,
		"access_token": output.AccessToken,
		"token_type":   "Bearer",
	})
}

// SendOTP sends a one-time password to the customer's phone
// @Summary Send OTP
// @Tags auth
// @Router /auth/otp/send [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req request.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Enter your name and a valid mobile number")
		return
	}

	res, err := h.authService.SendOTP(c.Request.Context(), req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res.Message, gin.H{"offline": res.Offline})
}

// VerifyOTP verifies the code and returns a customer session token
// @Summary Verify OTP
// @Tags auth
// @Router /auth/otp/verify [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req request.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "OTP must be 6 digits")
		return
	}

	output, err := h.authService.VerifyOTP(c.Request.Context(), req.Phone, req.OTP, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"customer":     output.Customer,
		"access_token": output.AccessToken,
		"token_type":   "Bearer",
	})
}
