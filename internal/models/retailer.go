package models

import (
	"time"

	"gorm.io/gorm"
)

// Retailer is a geolocated store account owning a product catalog.
type Retailer struct {
	ID           uint           `gorm:"primarykey" json:"id"`                      // primary key
	Name         string         `gorm:"type:varchar(120);not null" json:"name"`    // store name
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`         // login email
	PasswordHash string         `gorm:"type:varchar(200)" json:"-"`                // bcrypt hash (issuance handled externally)
	Phone        string         `gorm:"type:varchar(32)" json:"phone"`             // contact phone
	Address      string         `gorm:"type:varchar(500)" json:"address"`          // postal address
	Longitude    float64        `gorm:"index;not null;default:0" json:"longitude"` // geocoded longitude
	Latitude     float64        `gorm:"index;not null;default:0" json:"latitude"`  // geocoded latitude
	IsOpen       bool           `gorm:"default:true" json:"is_open"`               // accepting orders
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                   // created time
	UpdatedAt    time.Time      `json:"updated_at"`                                // updated time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                            // soft delete

	Products []Product `gorm:"foreignKey:RetailerID" json:"products,omitempty"` // catalog
}

// TableName sets the table name.
func (Retailer) TableName() string {
	return "retailers"
}
