package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_CanAdvanceTo(t *testing.T) {
	tests := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentStatusPending, PaymentStatusPaid, true},
		{PaymentStatusPending, PaymentStatusVerified, true},
		{PaymentStatusPaid, PaymentStatusVerified, true},
		{PaymentStatusPaid, PaymentStatusPaid, true},
		{PaymentStatusPaid, PaymentStatusPending, false},
		{PaymentStatusVerified, PaymentStatusPaid, false},
		{PaymentStatus("REFUNDED"), PaymentStatusPaid, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanAdvanceTo(tt.to))
		})
	}
}

func TestPaymentStatus_IsSettled(t *testing.T) {
	assert.False(t, PaymentStatusPending.IsSettled())
	assert.True(t, PaymentStatusPaid.IsSettled())
	assert.True(t, PaymentStatusVerified.IsSettled())
}

func TestPaymentStatus_UnmarshalRejectsUnknown(t *testing.T) {
	var s PaymentStatus
	assert.Error(t, json.Unmarshal([]byte(`"SHIPPED"`), &s))
	assert.NoError(t, json.Unmarshal([]byte(`"PAID"`), &s))
	assert.Equal(t, PaymentStatusPaid, s)
}

func TestPaymentMethod_InitialStatus(t *testing.T) {
	m, err := ParsePaymentMethod(" cash ")
	assert.NoError(t, err)
	assert.Equal(t, PaymentStatusPending, m.InitialStatus())
	assert.Equal(t, PaymentStatusPaid, PaymentMethodCard.InitialStatus())
	assert.Equal(t, PaymentStatusPaid, PaymentMethodUPI.InitialStatus())

	_, err = ParsePaymentMethod("cheque")
	assert.Error(t, err)
}
