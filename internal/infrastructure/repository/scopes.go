package repository

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey string

// CustomerIDKey is the context key for the signed-in customer
const CustomerIDKey ctxKey = "customer_id"

// CustomerScope returns a GORM scope that filters by the customer in ctx.
// A missing customer yields no rows.
func CustomerScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		customerID, ok := GetCustomerID(ctx)
		if !ok || customerID == "" {
			return db.Where("1 = 0")
		}
		return db.Where("customer_id = ?", customerID)
	}
}

// WithCustomer adds the customer ID to context
func WithCustomer(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, CustomerIDKey, customerID)
}

// GetCustomerID extracts the customer ID from context
func GetCustomerID(ctx context.Context) (string, bool) {
	customerID, ok := ctx.Value(CustomerIDKey).(string)
	return customerID, ok
}
