package entity

// SlipHeader holds the store header printed at the top of a counter slip.
type SlipHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
}

// SlipItem represents a single line item on a slip.
type SlipItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	Total     Money  `json:"total"`
}

// ReceiptSlip is a value object representing a printable counter slip.
// It is composed from a Receipt at print time and never stored.
type ReceiptSlip struct {
	Header        SlipHeader `json:"header"`
	ReceiptNumber string     `json:"receipt_number"`
	Date          string     `json:"date"`
	Cashier       string     `json:"cashier,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	Items         []SlipItem `json:"items"`
	Savings       Money      `json:"savings"`
	Total         Money      `json:"total"`
	QRPayload     string     `json:"qr_payload,omitempty"`
}
