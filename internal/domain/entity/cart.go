package entity

import "errors"

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrCartItemNotFound = errors.New("product is not in the cart")
	ErrNilProduct       = errors.New("product is required")
)

// CartItem is one line of a cart
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is the payable amount of the line
func (i CartItem) LineTotal() Money {
	return i.Product.Price.Times(i.Quantity)
}

// LineSavings is the discount of the line
func (i CartItem) LineSavings() Money {
	return i.Product.Discount.Times(i.Quantity)
}

// Cart aggregates scanned products, one line per product id, in scan order.
// A Cart is not safe for concurrent use.
type Cart struct {
	StoreID string
	lines   []CartItem
}

// NewCart creates an empty cart bound to a store
func NewCart(storeID string) *Cart {
	return &Cart{StoreID: storeID}
}

// Add puts qty units of product into the cart, merging with an existing line
func (c *Cart) Add(product *Product, qty int) error {
	if product == nil {
		return ErrNilProduct
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if i := c.indexOf(product.ID); i >= 0 {
		c.lines[i].Quantity += qty
		return nil
	}
	c.lines = append(c.lines, CartItem{Product: *product, Quantity: qty})
	return nil
}

// Adjust changes the quantity of a line by delta. A line reaching zero is removed.
func (c *Cart) Adjust(productID string, delta int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrCartItemNotFound
	}
	next := c.lines[i].Quantity + delta
	if next <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity = next
	return nil
}

// Totals returns the payable amount and the savings against MRP
func (c *Cart) Totals() (payable, savings Money) {
	for _, line := range c.lines {
		payable += line.LineTotal()
		savings += line.LineSavings()
	}
	return payable, savings
}

// Items returns a copy of the lines in insertion order
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// Count is the total number of units
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear removes every line
func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
