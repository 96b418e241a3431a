package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is an immutable record created once from a cart at checkout. Only
// status, status history, payment state and delivery dates may change after
// creation; items and all money fields are fixed.
type Order struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // primary key
	OrderNo      string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // human-readable unique number
	CustomerID   uint           `gorm:"index;not null" json:"customer_id"`                         // buying customer
	RetailerID   uint           `gorm:"index;not null" json:"retailer_id"`                         // fulfilling retailer
	Status       string         `gorm:"index;not null" json:"status"`                              // lifecycle status
	Subtotal     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`     // sum of line totals
	Discount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`     // pre-resolved discount
	Tax          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`          // round2((subtotal-discount)*rate)
	DeliveryFee  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"` // fixed fee
	Total        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`        // subtotal - discount + tax + fee
	CouponCode   string         `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`             // coupon snapshot
	CancelReason string         `gorm:"type:varchar(500)" json:"cancel_reason,omitempty"`          // set on cancellation
	Payment      PaymentInfo    `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`           // payment state
	Delivery     DeliveryInfo   `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery"`         // delivery details
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // created time
	UpdatedAt    time.Time      `json:"updated_at"`                                                // updated time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // soft delete

	Items         []OrderItem        `gorm:"foreignKey:OrderID" json:"items,omitempty"`          // frozen line snapshots
	StatusHistory []OrderStatusEvent `gorm:"foreignKey:OrderID" json:"status_history,omitempty"` // append-only log
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}

// IsTerminal reports whether the order reached an absorbing status.
func (o *Order) IsTerminal() bool {
	if o == nil {
		return false
	}
	return o.Status == "delivered" || o.Status == "cancelled"
}

// PaymentInfo is the local payment state attached to an order. Non-COD
// methods are treated as pre-settled at creation; there is no gateway
// capture in this backend.
type PaymentInfo struct {
	Method        string     `gorm:"type:varchar(20);not null" json:"method"`             // cod / card / upi / wallet
	Status        string     `gorm:"type:varchar(20);not null" json:"status"`             // pending / completed / failed / refunded
	TransactionID string     `gorm:"type:varchar(128)" json:"transaction_id,omitempty"`   // external reference
	Amount        Money      `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // charged amount
	PaidAt        *time.Time `json:"paid_at,omitempty"`                                   // stamped when completed
}

// DeliveryInfo is the delivery detail block attached to an order.
type DeliveryInfo struct {
	Address        string     `gorm:"type:varchar(500)" json:"address"`                  // drop-off address
	Phone          string     `gorm:"type:varchar(32)" json:"phone"`                     // contact phone
	Instructions   string     `gorm:"type:varchar(500)" json:"instructions,omitempty"`   // courier notes
	ExpectedDate   *time.Time `json:"expected_date,omitempty"`                           // defaulted on confirmation
	ActualDate     *time.Time `json:"actual_date,omitempty"`                             // stamped on delivery
	TrackingNumber string     `gorm:"type:varchar(64)" json:"tracking_number,omitempty"` // courier tracking ref
}

// OrderItem is an immutable snapshot of one cart line, frozen at order
// creation and independent of later product mutation or deletion.
type OrderItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                     // primary key
	OrderID      uint           `gorm:"index;not null" json:"order_id"`                           // owning order
	ProductID    uint           `gorm:"index;not null" json:"product_id"`                         // source product
	ProductName  string         `gorm:"type:varchar(200);not null" json:"product_name"`           // snapshot name
	ProductImage string         `gorm:"type:varchar(500)" json:"product_image"`                   // snapshot image
	RetailerID   uint           `gorm:"index;not null" json:"retailer_id"`                        // snapshot retailer id
	RetailerName string         `gorm:"type:varchar(120)" json:"retailer_name"`                   // snapshot retailer name
	UnitPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // price captured in the cart
	Quantity     int            `gorm:"not null" json:"quantity"`                                 // units
	TotalPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // unit price * quantity
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                  // created time
	UpdatedAt    time.Time      `json:"updated_at"`                                               // updated time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                           // soft delete
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderStatusEvent is one append-only entry in an order's status history.
type OrderStatusEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`                    // primary key
	OrderID   uint      `gorm:"index;not null" json:"order_id"`          // owning order
	Status    string    `gorm:"type:varchar(32);not null" json:"status"` // status entered
	Note      string    `gorm:"type:varchar(500)" json:"note,omitempty"` // optional annotation
	CreatedAt time.Time `gorm:"index" json:"created_at"`                 // transition time
}

// TableName sets the table name.
func (OrderStatusEvent) TableName() string {
	return "order_status_events"
}
