package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal kinds carried in session tokens
const (
	PrincipalEmployee = "employee"
	PrincipalCustomer = "customer"
)

// JWTClaims represents the claims in a session token
type JWTClaims struct {
	Kind  string `json:"kind"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token generation and validation
type JWTManager struct {
	secretKey []byte
	expiry    time.Duration
	issuer    string
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, expiry time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secret),
		expiry:    expiry,
		issuer:    issuer,
	}
}

// GenerateEmployeeToken issues a staff session token
func (m *JWTManager) GenerateEmployeeToken(employeeID, name, role string) (string, error) {
	return m.sign(&JWTClaims{
		Kind: PrincipalEmployee,
		Name: name,
		Role: role,
		RegisteredClaims: m.registered(employeeID),
	})
}

// GenerateCustomerToken issues a customer session token after OTP verification
func (m *JWTManager) GenerateCustomerToken(customerID, phone, name string) (string, error) {
	return m.sign(&JWTClaims{
		Kind:  PrincipalCustomer,
		Name:  name,
		Phone: phone,
		RegisteredClaims: m.registered(customerID),
	})
}

// ValidateToken validates a token and returns the claims
func (m *JWTManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	}, jwt.WithIssuer(m.issuer))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}

func (m *JWTManager) registered(subject string) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    m.issuer,
		Subject:   subject,
	}
}

func (m *JWTManager) sign(claims *JWTClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}
