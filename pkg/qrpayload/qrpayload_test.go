package qrpayload

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_RoundTripsThroughParse(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	raw, err := Encode("DM-ABC123", "RCP-482913", at)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	assert.Equal(t, "DM-ABC123", fields["id"])
	assert.Equal(t, "RCP-482913", fields["receipt"])
	assert.EqualValues(t, Version, fields["v"])
	assert.EqualValues(t, at.UnixMilli(), fields["ts"])
	assert.Equal(t, ValidityMarker, fields["sig"])

	p, err := Parse(raw)
	require.NoError(t, err)
	s, ok := p.(Structured)
	require.True(t, ok, "expected Structured, got %T", p)
	assert.Equal(t, "RCP-482913", s.ReceiptNumber)
	assert.Equal(t, "DM-ABC123", s.OrderID)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Payload
		wantErr error
	}{
		{name: "plain receipt number", raw: "RCP-123456", want: Literal{Text: "RCP-123456"}},
		{name: "surrounding whitespace", raw: "  RCP-123456\n", want: Literal{Text: "RCP-123456"}},
		{name: "broken json", raw: `{"receipt": "RCP-1`, want: Literal{Text: `{"receipt": "RCP-1`}},
		{name: "json without identifiers", raw: `{"v":1}`, want: Literal{Text: `{"v":1}`}},
		{name: "json with wrong field type", raw: `{"receipt": 42}`, want: Literal{Text: `{"receipt": 42}`}},
		{name: "order id only", raw: `{"id":"DM-XYZ789","v":1}`, want: Structured{OrderID: "DM-XYZ789", Version: 1}},
		{name: "receipt only", raw: `{"receipt":"RCP-654321"}`, want: Structured{ReceiptNumber: "RCP-654321"}},
		{name: "empty", raw: "   ", wantErr: ErrEmptyScan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
