package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	ReceiptPrefix = "RCP-"
	OrderPrefix   = "DM-"

	orderAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateReceiptNumber returns a human-typable receipt number such as RCP-482913.
// The leading digit is never zero so every number has six significant digits.
func GenerateReceiptNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return ReceiptPrefix + big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}

// GenerateOrderID returns a customer-facing order id such as DM-K3X9QA
func GenerateOrderID() (string, error) {
	var sb strings.Builder
	sb.WriteString(OrderPrefix)
	max := big.NewInt(int64(len(orderAlphabet)))
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(orderAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// LooksLikeReceiptNumber reports whether s has the receipt number shape
func LooksLikeReceiptNumber(s string) bool {
	if !strings.HasPrefix(s, ReceiptPrefix) {
		return false
	}
	digits := s[len(ReceiptPrefix):]
	if len(digits) != 6 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
