package entity

import (
	"time"

	"github.com/sangkips/scango-api/internal/domain/enum"
)

// Order is the customer's history entry for a completed checkout.
// It is immutable once appended.
type Order struct {
	ID            string             `gorm:"primaryKey;size:16" json:"id"`
	CustomerID    string             `gorm:"size:64;not null;index" json:"-"`
	ReceiptNumber string             `gorm:"size:32;not null;index" json:"receipt_number"`
	StoreID       string             `gorm:"size:64" json:"store_id"`
	StoreName     string             `gorm:"size:255" json:"store_name"`
	Items         []ReceiptLine      `gorm:"serializer:json;type:text" json:"items"`
	TotalAmount   Money              `gorm:"not null" json:"total_amount"`
	TotalDiscount Money              `gorm:"not null" json:"total_discount"`
	PaymentMethod enum.PaymentMethod `gorm:"size:16" json:"payment_method"`
	Status        enum.PaymentStatus `gorm:"size:16" json:"status"`
	QRPayload     string             `gorm:"type:text" json:"qr_payload"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "order_history"
}
