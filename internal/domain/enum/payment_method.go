package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethod is how the customer chose to pay at checkout
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodUPI  PaymentMethod = "UPI"
)

// ParsePaymentMethod accepts any casing of a known method
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI:
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// InitialStatus is the payment status a new receipt starts in. Cash is settled at the counter.
func (m PaymentMethod) InitialStatus() PaymentStatus {
	if m == PaymentMethodCash {
		return PaymentStatusPending
	}
	return PaymentStatusPaid
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
