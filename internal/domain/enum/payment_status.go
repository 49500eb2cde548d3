package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentStatus represents where a receipt sits in the payment lifecycle
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusVerified PaymentStatus = "VERIFIED"
)

var paymentStatusRank = map[PaymentStatus]int{
	PaymentStatusPending:  0,
	PaymentStatusPaid:     1,
	PaymentStatusVerified: 2,
}

func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known status
func (s PaymentStatus) IsValid() bool {
	_, ok := paymentStatusRank[s]
	return ok
}

// IsSettled is true once money has been collected
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusPaid || s == PaymentStatusVerified
}

// CanAdvanceTo reports whether moving to next keeps the status monotonic
func (s PaymentStatus) CanAdvanceTo(next PaymentStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	return paymentStatusRank[next] >= paymentStatusRank[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	status := PaymentStatus(str)
	if !status.IsValid() {
		return fmt.Errorf("unknown payment status %q", str)
	}
	*s = status
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = PaymentStatusPending
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentStatus", value)
	}
	return nil
}
