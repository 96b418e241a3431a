package repository

import (
	"errors"

	"github.com/abhinandan-jain01/NearMart/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository is the customer data access interface.
type CustomerRepository interface {
	GetByID(id uint) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	Create(item *models.Customer) error
	Update(item *models.Customer) error
	WithTx(tx *gorm.DB) CustomerRepository
}

// GormCustomerRepository is the GORM implementation.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates the customer repository.
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) CustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// GetByID fetches one customer, nil when absent.
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	if id == 0 {
		return nil, errors.New("invalid customer id")
	}
	var item models.Customer
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByEmail fetches one customer by login email, nil when absent.
func (r *GormCustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	if email == "" {
		return nil, errors.New("invalid email")
	}
	var item models.Customer
	if err := r.db.Where("email = ?", email).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a customer.
func (r *GormCustomerRepository) Create(item *models.Customer) error {
	if item == nil {
		return errors.New("customer is nil")
	}
	return r.db.Create(item).Error
}

// Update saves a customer.
func (r *GormCustomerRepository) Update(item *models.Customer) error {
	if item == nil {
		return errors.New("customer is nil")
	}
	return r.db.Save(item).Error
}
