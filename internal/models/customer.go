package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a geolocated buyer account.
type Customer struct {
	ID           uint           `gorm:"primarykey" json:"id"`                   // primary key
	Name         string         `gorm:"type:varchar(120);not null" json:"name"` // display name
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`      // login email
	PasswordHash string         `gorm:"type:varchar(200)" json:"-"`             // bcrypt hash (issuance handled externally)
	Phone        string         `gorm:"type:varchar(32)" json:"phone"`          // contact phone
	Address      string         `gorm:"type:varchar(500)" json:"address"`       // postal address
	Longitude    float64        `gorm:"not null;default:0" json:"longitude"`    // geocoded longitude
	Latitude     float64        `gorm:"not null;default:0" json:"latitude"`     // geocoded latitude
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                // created time
	UpdatedAt    time.Time      `json:"updated_at"`                             // updated time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                         // soft delete
}

// TableName sets the table name.
func (Customer) TableName() string {
	return "customers"
}
