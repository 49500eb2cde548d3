package entity

import (
	"time"

	"github.com/sangkips/scango-api/internal/domain/enum"
)

// ReceiptLine is the item snapshot kept on receipts and orders
type ReceiptLine struct {
	ProductID string `json:"product_id"`
	Barcode   string `json:"barcode"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	MRP       Money  `json:"mrp"`
}

// LinesFromCart snapshots cart lines
func LinesFromCart(items []CartItem) []ReceiptLine {
	lines := make([]ReceiptLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, ReceiptLine{
			ProductID: item.Product.ID,
			Barcode:   item.Product.Barcode,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
			MRP:       item.Product.MRP,
		})
	}
	return lines
}

// Receipt is the staff-facing payment record, looked up by receipt number only.
// PaymentStatus only moves forward and ExitVerification flips to true once.
type Receipt struct {
	ReceiptNumber    string             `gorm:"primaryKey;size:32" json:"receipt_number"`
	StoreID          string             `gorm:"size:64;index;not null" json:"store_id"`
	TotalAmount      Money              `gorm:"not null" json:"total_amount"` // Stored in paise
	PaymentMethod    enum.PaymentMethod `gorm:"size:16" json:"payment_method"`
	PaymentStatus    enum.PaymentStatus `gorm:"size:16;not null;index" json:"payment_status"`
	Items            []ReceiptLine      `gorm:"serializer:json;type:text" json:"items"`
	ExitVerification bool               `gorm:"not null;default:false" json:"exit_verification"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ItemCount is the total number of units on the receipt
func (r *Receipt) ItemCount() int {
	n := 0
	for _, line := range r.Items {
		n += line.Quantity
	}
	return n
}
