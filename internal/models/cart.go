package models

import "math"

// Cart represents a user's pharmacy cart. One cart per user.
type Cart struct {
	BaseModel
	UserID string     `gorm:"size:36;uniqueIndex" json:"userId"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	Total  float64    `json:"total"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// CartItem represents one medication line in a cart
type CartItem struct {
	BaseModel
	CartID       string  `gorm:"size:36;index" json:"-"`
	MedicationID string  `gorm:"size:36;index" json:"medicationId"`
	Name         string  `gorm:"size:255" json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// Recalculate restores the invariant Total == sum(quantity * price) over all
// items, rounded to cents. Called after every cart mutation; the total is
// never trusted independently of the items.
func (c *Cart) Recalculate() {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.Price
	}
	c.Total = math.Round(total*100) / 100
}

// FindItem returns the index of the item for the given medication, or -1.
func (c *Cart) FindItem(medicationID string) int {
	for i := range c.Items {
		if c.Items[i].MedicationID == medicationID {
			return i
		}
	}
	return -1
}
