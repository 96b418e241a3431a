package repository

import (
	"errors"

	"github.com/abhinandan-jain01/NearMart/internal/models"

	"gorm.io/gorm"
)

// RetailerRepository is the retailer data access interface.
type RetailerRepository interface {
	GetByID(id uint) (*models.Retailer, error)
	GetByEmail(email string) (*models.Retailer, error)
	List(filter RetailerListFilter) ([]models.Retailer, int64, error)
	ListOpen() ([]models.Retailer, error)
	Create(item *models.Retailer) error
	Update(item *models.Retailer) error
	WithTx(tx *gorm.DB) RetailerRepository
}

// GormRetailerRepository is the GORM implementation.
type GormRetailerRepository struct {
	db *gorm.DB
}

// NewRetailerRepository creates the retailer repository.
func NewRetailerRepository(db *gorm.DB) *GormRetailerRepository {
	return &GormRetailerRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormRetailerRepository) WithTx(tx *gorm.DB) RetailerRepository {
	if tx == nil {
		return r
	}
	return &GormRetailerRepository{db: tx}
}

// GetByID fetches one retailer, nil when absent.
func (r *GormRetailerRepository) GetByID(id uint) (*models.Retailer, error) {
	if id == 0 {
		return nil, errors.New("invalid retailer id")
	}
	var item models.Retailer
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByEmail fetches one retailer by login email, nil when absent.
func (r *GormRetailerRepository) GetByEmail(email string) (*models.Retailer, error) {
	if email == "" {
		return nil, errors.New("invalid email")
	}
	var item models.Retailer
	if err := r.db.Where("email = ?", email).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List queries retailers with filters and pagination.
func (r *GormRetailerRepository) List(filter RetailerListFilter) ([]models.Retailer, int64, error) {
	query := r.db.Model(&models.Retailer{})

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.OnlyOpen {
		query = query.Where("is_open = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var items []models.Retailer
	if err := query.Order("id asc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListOpen returns every retailer currently accepting orders. Distance
// filtering happens in the service layer against this set.
func (r *GormRetailerRepository) ListOpen() ([]models.Retailer, error) {
	var items []models.Retailer
	if err := r.db.Where("is_open = ?", true).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a retailer.
func (r *GormRetailerRepository) Create(item *models.Retailer) error {
	if item == nil {
		return errors.New("retailer is nil")
	}
	return r.db.Create(item).Error
}

// Update saves a retailer.
func (r *GormRetailerRepository) Update(item *models.Retailer) error {
	if item == nil {
		return errors.New("retailer is nil")
	}
	return r.db.Save(item).Error
}
