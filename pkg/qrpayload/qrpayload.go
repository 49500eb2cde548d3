// Package qrpayload encodes the receipt QR shown by the customer app and
// decodes whatever a staff scanner reads back.
//
// A scan decodes to either a Structured payload (the JSON the app produced)
// or a Literal (anything else, typically a receipt number typed or printed
// as plain text).
package qrpayload

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	// Version is the schema version written into new payloads
	Version = 1
	// ValidityMarker is the opaque marker the customer app expects in the sig field
	ValidityMarker = "DMART_VALID"
)

// ErrEmptyScan is returned for blank input
var ErrEmptyScan = errors.New("qrpayload: empty scan")

// Payload is the result of decoding a scan: Structured or Literal
type Payload interface {
	isPayload()
}

// Structured is a decoded JSON payload. Either identifier may be empty.
type Structured struct {
	OrderID       string `json:"id,omitempty"`
	ReceiptNumber string `json:"receipt,omitempty"`
	Version       int    `json:"v"`
	Timestamp     int64  `json:"ts"`
	Signature     string `json:"sig,omitempty"`
}

// Literal is scanned text that is not a structured payload
type Literal struct {
	Text string
}

func (Structured) isPayload() {}
func (Literal) isPayload()    {}

// Encode builds the QR payload for an order
func Encode(orderID, receiptNumber string, at time.Time) (string, error) {
	data, err := json.Marshal(Structured{
		OrderID:       orderID,
		ReceiptNumber: receiptNumber,
		Version:       Version,
		Timestamp:     at.UnixMilli(),
		Signature:     ValidityMarker,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Parse decodes a scan. Malformed JSON, non-object JSON and objects carrying
// neither a receipt number nor an order id all decode to Literal.
func Parse(raw string) (Payload, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, ErrEmptyScan
	}

	if strings.HasPrefix(text, "{") {
		var s Structured
		if err := json.Unmarshal([]byte(text), &s); err == nil {
			s.OrderID = strings.TrimSpace(s.OrderID)
			s.ReceiptNumber = strings.TrimSpace(s.ReceiptNumber)
			if s.ReceiptNumber != "" || s.OrderID != "" {
				return s, nil
			}
		}
	}

	return Literal{Text: text}, nil
}
