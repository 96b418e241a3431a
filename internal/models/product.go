package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a retailer-owned catalog entry. Stock is only ever mutated
// through conditional updates so it can never be observed negative.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // primary key
	RetailerID  uint           `gorm:"not null;index" json:"retailer_id"`                         // owning retailer
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`                    // product name
	Description string         `gorm:"type:varchar(2000)" json:"description"`                     // description
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // unit price, > 0
	Stock       int            `gorm:"not null;default:0" json:"stock"`                           // units on hand, >= 0
	IsAvailable bool           `gorm:"default:true;index" json:"is_available"`                    // availability flag
	Images      StringArray    `gorm:"type:json" json:"images"`                                   // image paths
	Category    string         `gorm:"type:varchar(80);index" json:"category"`                    // category label
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // created time
	UpdatedAt   time.Time      `json:"updated_at"`                                                // updated time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // soft delete

	Retailer *Retailer `gorm:"foreignKey:RetailerID" json:"retailer,omitempty"` // owning store
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// IsOrderable reports whether the product can satisfy the requested quantity.
func (p *Product) IsOrderable(quantity int) bool {
	if p == nil || quantity <= 0 {
		return false
	}
	return p.IsAvailable && p.Stock >= quantity
}
