package entity

// Store is a physical outlet. Stores are static reference data.
type Store struct {
	ID        string  `gorm:"primaryKey;size:64" json:"id"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Address   string  `gorm:"size:512" json:"address"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// TableName returns the table name for the Store model
func (Store) TableName() string {
	return "stores"
}

// Counter is a staffed billing counter and its current queue
type Counter struct {
	ID        string `gorm:"primaryKey;size:32" json:"id"`
	StoreID   string `gorm:"size:64;index" json:"store_id"`
	Number    int    `json:"number"`
	QueueSize int    `json:"queue_size"`
	Active    bool   `gorm:"default:true" json:"active"`
}

// TableName returns the table name for the Counter model
func (Counter) TableName() string {
	return "counters"
}
