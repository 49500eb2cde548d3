package request

// SelectStoreRequest binds the cart to a store
type SelectStoreRequest struct {
	StoreID string `json:"store_id" binding:"required"`
}

// AddCartItemRequest adds a scanned product to the cart
type AddCartItemRequest struct {
	Barcode  string `json:"barcode" binding:"required"`
	Quantity int    `json:"quantity" binding:"omitempty,min=1,max=999"`
}

// AdjustCartItemRequest changes a line's quantity by delta
type AdjustCartItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CheckoutRequest places the order for the current cart
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}
