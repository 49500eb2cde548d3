package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores processed requests to prevent duplicate checkouts
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idem_key_principal;size:255;not null"` // The idempotency key from client
	PrincipalID  string    `gorm:"uniqueIndex:idx_idem_key_principal;size:64;not null"`  // Customer or employee who made the request
	Endpoint     string    `gorm:"size:255;not null"`                                    // API endpoint (e.g., "POST /checkout")
	RequestHash  string    `gorm:"size:64"`                                              // SHA256 hash of request body
	ResponseCode int       `gorm:"not null"`                                             // HTTP status code of original response, 0 while in flight
	ResponseBody string    `gorm:"type:text"`                                            // JSON response body (cached)
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"` // Keys expire after 24 hours
}

// BeforeCreate generates a UUID before creating a new key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsPending reports whether the request holding the key has not finished yet
func (i *IdempotencyKey) IsPending() bool {
	return i.ResponseCode == 0
}
