package repository

import (
	"errors"

	"github.com/abhinandan-jain01/NearMart/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface.
type CartRepository interface {
	GetByCustomer(customerID uint) (*models.Cart, error)
	GetOrCreate(customerID uint) (*models.Cart, error)
	SaveItem(item *models.CartItem) error
	DeleteItem(cartID, productID uint) error
	ClearItems(cartID uint) error
	UpdateDiscount(cartID uint, couponCode string, discount models.Money) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates the cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByCustomer fetches the customer's cart with items, nil when absent.
func (r *GormCartRepository) GetByCustomer(customerID uint) (*models.Cart, error) {
	if customerID == 0 {
		return nil, errors.New("invalid customer id")
	}
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id asc")
	}).Where("customer_id = ?", customerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate fetches the customer's cart, creating an empty one on first use.
func (r *GormCartRepository) GetOrCreate(customerID uint) (*models.Cart, error) {
	cart, err := r.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{CustomerID: customerID}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// SaveItem inserts or updates one cart line.
func (r *GormCartRepository) SaveItem(item *models.CartItem) error {
	if item == nil {
		return errors.New("cart item is nil")
	}
	return r.db.Save(item).Error
}

// DeleteItem removes one line from a cart.
func (r *GormCartRepository) DeleteItem(cartID, productID uint) error {
	if cartID == 0 || productID == 0 {
		return errors.New("invalid cart item params")
	}
	return r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{}).Error
}

// ClearItems empties a cart and resets its coupon state. The cart row
// itself survives so the next shopping session reuses it.
func (r *GormCartRepository) ClearItems(cartID uint) error {
	if cartID == 0 {
		return errors.New("invalid cart id")
	}
	if err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"coupon_code":     "",
		"discount_amount": models.NewMoneyFromFloat(0),
	}).Error
}

// UpdateDiscount records a resolved coupon on the cart.
func (r *GormCartRepository) UpdateDiscount(cartID uint, couponCode string, discount models.Money) error {
	if cartID == 0 {
		return errors.New("invalid cart id")
	}
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"coupon_code":     couponCode,
		"discount_amount": discount,
	}).Error
}
