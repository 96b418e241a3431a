package repository

import (
	"errors"
	"strings"

	"github.com/abhinandan-jain01/NearMart/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateOrderNo signals the generated order number collided with an
// existing row. Callers regenerate and retry.
var ErrDuplicateOrderNo = errors.New("duplicate order no")

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem, event *models.OrderStatusEvent) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndCustomer(id, customerID uint) (*models.Order, error)
	GetByIDAndRetailer(id, retailerID uint) (*models.Order, error)
	GetByOrderNoAndCustomer(orderNo string, customerID uint) (*models.Order, error)
	ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error)
	ListByRetailer(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	AppendStatusEvent(event *models.OrderStatusEvent) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.Preload("Items").Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_status_events.id asc")
	})
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// Create inserts an order with its item snapshots and the initial status
// event. Order-number collisions surface as ErrDuplicateOrderNo.
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem, event *models.OrderStatusEvent) error {
	if order == nil {
		return errors.New("order is nil")
	}
	if err := r.db.Create(order).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return ErrDuplicateOrderNo
		}
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	if event != nil {
		event.OrderID = order.ID
		if err := r.db.Create(event).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches an order with items and history, nil when absent.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetail(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndCustomer fetches an order scoped to its buyer.
func (r *GormOrderRepository) GetByIDAndCustomer(id, customerID uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetail(r.db).Where("id = ? AND customer_id = ?", id, customerID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndRetailer fetches an order scoped to its fulfilling retailer.
func (r *GormOrderRepository) GetByIDAndRetailer(id, retailerID uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetail(r.db).Where("id = ? AND retailer_id = ?", id, retailerID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNoAndCustomer fetches a customer order by its order number.
func (r *GormOrderRepository) GetByOrderNoAndCustomer(orderNo string, customerID uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetail(r.db).Where("order_no = ? AND customer_id = ?", orderNo, customerID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) list(query *gorm.DB, filter OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no LIKE ?", "%"+filter.OrderNo+"%")
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := r.withDetail(query).Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListByCustomer pages a customer's order history.
func (r *GormOrderRepository) ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("customer_id = ?", filter.CustomerID)
	return r.list(query, filter)
}

// ListByRetailer pages a retailer's incoming orders.
func (r *GormOrderRepository) ListByRetailer(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("retailer_id = ?", filter.RetailerID)
	return r.list(query, filter)
}

// UpdateStatus updates an order's status plus any companion columns.
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// AppendStatusEvent appends one entry to the status history.
func (r *GormOrderRepository) AppendStatusEvent(event *models.OrderStatusEvent) error {
	if event == nil || event.OrderID == 0 {
		return errors.New("invalid status event")
	}
	return r.db.Create(event).Error
}
