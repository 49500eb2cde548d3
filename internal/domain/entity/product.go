package entity

import "time"

// ProductMaster is the chain-wide catalog record keyed by barcode
type ProductMaster struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Barcode   string    `gorm:"size:64;uniqueIndex;not null" json:"barcode"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Brand     string    `gorm:"size:255" json:"brand"`
	Weight    string    `gorm:"size:64" json:"weight"`
	Category  string    `gorm:"size:128" json:"category"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	MRP       Money     `gorm:"not null" json:"mrp"` // Stored in paise
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the ProductMaster model
func (ProductMaster) TableName() string {
	return "product_master"
}

// StoreInventory overrides the selling price of a barcode in one store
type StoreInventory struct {
	StoreID   string    `gorm:"primaryKey;size:64" json:"store_id"`
	Barcode   string    `gorm:"primaryKey;size:64" json:"barcode"`
	Price     Money     `gorm:"not null" json:"price"` // Stored in paise
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the StoreInventory model
func (StoreInventory) TableName() string {
	return "store_inventory"
}

// Product is a catalog entry resolved for one store. It is never persisted.
type Product struct {
	ID       string `json:"id"`
	Barcode  string `json:"barcode"`
	StoreID  string `json:"store_id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Weight   string `json:"weight"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
	MRP      Money  `json:"mrp"`
	Price    Money  `json:"price"`
	Discount Money  `json:"discount"`
}

// ResolveProduct applies an optional store override to a master record.
// The discount is always derived from the effective price.
func ResolveProduct(master *ProductMaster, storeID string, override *StoreInventory) *Product {
	price := master.MRP
	if override != nil {
		price = override.Price
	}
	return &Product{
		ID:       master.ID,
		Barcode:  master.Barcode,
		StoreID:  storeID,
		Name:     master.Name,
		Brand:    master.Brand,
		Weight:   master.Weight,
		Category: master.Category,
		ImageURL: master.ImageURL,
		MRP:      master.MRP,
		Price:    price,
		Discount: master.MRP - price,
	}
}

// HasValidPrice reports whether 0 <= price <= mrp
func (p *Product) HasValidPrice() bool {
	return p.Price >= 0 && p.Price <= p.MRP
}
