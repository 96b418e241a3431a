package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart is the single mutable shopping cart owned by one customer. It is
// created lazily on first access and reused across shopping sessions; a
// successful checkout empties it rather than deleting it. All line items
// must belong to one retailer.
type Cart struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // primary key
	CustomerID     uint           `gorm:"uniqueIndex;not null" json:"customer_id"`                      // owning customer (1:1)
	CouponCode     string         `gorm:"type:varchar(64)" json:"coupon_code"`                          // applied coupon, if any
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // pre-resolved discount
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // created time
	UpdatedAt      time.Time      `json:"updated_at"`                                                   // updated time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft delete

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // line items
}

// TableName sets the table name.
func (Cart) TableName() string {
	return "carts"
}

// RetailerID returns the retailer the cart is bound to, or zero when empty.
func (c *Cart) RetailerID() uint {
	if c == nil || len(c.Items) == 0 {
		return 0
	}
	return c.Items[0].RetailerID
}

// FindItem returns the line for a product, or nil when absent.
func (c *Cart) FindItem(productID uint) *CartItem {
	if c == nil {
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// CartItem is one (product, quantity, captured price) line within a cart.
// Name, image and retailer are denormalized at add time; the captured unit
// price is refreshed whenever the same product is re-added.
type CartItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                    // primary key
	CartID       uint           `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`    // owning cart
	ProductID    uint           `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"` // referenced product
	RetailerID   uint           `gorm:"not null;index" json:"retailer_id"`                       // denormalized retailer
	ProductName  string         `gorm:"type:varchar(200);not null" json:"product_name"`          // snapshot name
	ProductImage string         `gorm:"type:varchar(500)" json:"product_image"`                  // snapshot image
	UnitPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // price captured at add time
	Quantity     int            `gorm:"not null" json:"quantity"`                                // units, >= 1
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                 // created time
	UpdatedAt    time.Time      `json:"updated_at"`                                              // updated time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                          // soft delete
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
