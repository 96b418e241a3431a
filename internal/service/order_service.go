package service

import (
	"strings"
	"time"

	"github.com/abhinandan-jain01/NearMart/internal/constants"
	"github.com/abhinandan-jain01/NearMart/internal/logger"
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/queue"
	"github.com/abhinandan-jain01/NearMart/internal/repository"

	"gorm.io/gorm"
)

// UpdateStatusInput is a retailer-driven status transition.
type UpdateStatusInput struct {
	OrderID        uint
	RetailerID     uint
	Status         string
	Note           string
	TrackingNumber string
}

// CancelOrderInput is a cancellation request from either side.
type CancelOrderInput struct {
	OrderID    uint
	CustomerID uint // set when the customer cancels
	RetailerID uint // set when the retailer cancels
	Reason     string
}

var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusCancelled:      true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
}

func isTransitionAllowed(current, target string) bool {
	// delivered and cancelled absorb: nothing leaves them, not even a
	// same-status repeat
	if current == constants.OrderStatusDelivered || current == constants.OrderStatusCancelled {
		return false
	}
	if current == target {
		return true
	}
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

// retailer-settable targets; cancellation goes through Cancel instead
var retailerStatusTargets = map[string]bool{
	constants.OrderStatusConfirmed:      true,
	constants.OrderStatusProcessing:     true,
	constants.OrderStatusOutForDelivery: true,
	constants.OrderStatusDelivered:      true,
}

// OrderService owns the post-checkout order lifecycle.
type OrderService struct {
	orderRepo            repository.OrderRepository
	productRepo          repository.ProductRepository
	expectedDeliveryDays int
	queueClient          *queue.Client
}

// NewOrderService creates the order service.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, expectedDeliveryDays int, queueClient *queue.Client) *OrderService {
	if expectedDeliveryDays <= 0 {
		expectedDeliveryDays = constants.DefaultExpectedDeliveryDay
	}
	return &OrderService{
		orderRepo:            orderRepo,
		productRepo:          productRepo,
		expectedDeliveryDays: expectedDeliveryDays,
		queueClient:          queueClient,
	}
}

// GetForCustomer fetches an order the customer owns.
func (s *OrderService) GetForCustomer(orderID, customerID uint) (*models.Order, error) {
	if orderID == 0 || customerID == 0 {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNoForCustomer fetches a customer order by its number.
func (s *OrderService) GetByOrderNoForCustomer(orderNo string, customerID uint) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" || customerID == 0 {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByOrderNoAndCustomer(orderNo, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForCustomer pages a customer's order history.
func (s *OrderService) ListForCustomer(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.CustomerID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.ListByCustomer(filter)
}

// GetForRetailer fetches an order the retailer fulfils.
func (s *OrderService) GetForRetailer(orderID, retailerID uint) (*models.Order, error) {
	if orderID == 0 || retailerID == 0 {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByIDAndRetailer(orderID, retailerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForRetailer pages a retailer's incoming orders.
func (s *OrderService) ListForRetailer(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.RetailerID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.ListByRetailer(filter)
}

// UpdateStatus moves an order along its lifecycle on behalf of a retailer.
// Same-status updates on a live order are idempotent no-ops; terminal orders
// and anything off the transition table are rejected without touching the
// order.
func (s *OrderService) UpdateStatus(input UpdateStatusInput) (*models.Order, error) {
	target := strings.ToLower(strings.TrimSpace(input.Status))
	if input.OrderID == 0 || input.RetailerID == 0 || target == "" {
		return nil, ErrInvalidInput
	}
	if !retailerStatusTargets[target] {
		return nil, ErrInvalidTransition
	}

	order, err := s.orderRepo.GetByIDAndRetailer(input.OrderID, input.RetailerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.IsTerminal() {
		return nil, ErrInvalidTransition
	}
	if order.Status == target {
		return order, nil
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	switch target {
	case constants.OrderStatusConfirmed:
		if order.Delivery.ExpectedDate == nil {
			expected := now.AddDate(0, 0, s.expectedDeliveryDays)
			updates["delivery_expected_date"] = expected
		}
	case constants.OrderStatusOutForDelivery:
		if tracking := strings.TrimSpace(input.TrackingNumber); tracking != "" {
			updates["delivery_tracking_number"] = tracking
		}
	case constants.OrderStatusDelivered:
		updates["delivery_actual_date"] = now
		if order.Payment.Method == constants.PaymentMethodCOD && order.Payment.Status == constants.PaymentStatusPending {
			// COD settles at the doorstep
			updates["payment_status"] = constants.PaymentStatusCompleted
			updates["payment_paid_at"] = now
		}
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		if err := repo.UpdateStatus(order.ID, target, updates); err != nil {
			return err
		}
		return repo.AppendStatusEvent(&models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  target,
			Note:    strings.TrimSpace(input.Note),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(order.ID, target)
	if target == constants.OrderStatusConfirmed {
		s.scheduleDeliveryReminder(order.ID)
	}

	return s.orderRepo.GetByID(order.ID)
}

// Cancel aborts an order and returns its reserved stock. Cancellation is
// allowed from any live status; delivered and already-cancelled orders
// are rejected.
func (s *OrderService) Cancel(input CancelOrderInput) (*models.Order, error) {
	if input.OrderID == 0 || (input.CustomerID == 0 && input.RetailerID == 0) {
		return nil, ErrInvalidInput
	}

	var order *models.Order
	var err error
	if input.CustomerID != 0 {
		order, err = s.orderRepo.GetByIDAndCustomer(input.OrderID, input.CustomerID)
	} else {
		order, err = s.orderRepo.GetByIDAndRetailer(input.OrderID, input.RetailerID)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isTransitionAllowed(order.Status, constants.OrderStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at":    now,
		"cancel_reason": strings.TrimSpace(input.Reason),
	}
	if order.Payment.Status == constants.PaymentStatusCompleted {
		updates["payment_status"] = constants.PaymentStatusRefunded
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			if _, err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		repo := s.orderRepo.WithTx(tx)
		if err := repo.UpdateStatus(order.ID, constants.OrderStatusCancelled, updates); err != nil {
			return err
		}
		return repo.AppendStatusEvent(&models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  constants.OrderStatusCancelled,
			Note:    strings.TrimSpace(input.Reason),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(order.ID, constants.OrderStatusCancelled)

	return s.orderRepo.GetByID(order.ID)
}

// UpdatePaymentInput is a retailer-driven payment state change.
type UpdatePaymentInput struct {
	OrderID       uint
	RetailerID    uint
	Status        string
	TransactionID string
}

var retailerPaymentTargets = map[string]bool{
	constants.PaymentStatusCompleted: true,
	constants.PaymentStatusFailed:    true,
	constants.PaymentStatusRefunded:  true,
}

// UpdatePayment records an out-of-band payment state change, such as a
// bank transfer confirmation. Completing a payment stamps paid_at.
func (s *OrderService) UpdatePayment(input UpdatePaymentInput) (*models.Order, error) {
	target := strings.ToLower(strings.TrimSpace(input.Status))
	if input.OrderID == 0 || input.RetailerID == 0 {
		return nil, ErrInvalidInput
	}
	if !retailerPaymentTargets[target] {
		return nil, ErrInvalidInput
	}

	order, err := s.orderRepo.GetByIDAndRetailer(input.OrderID, input.RetailerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Payment.Status == target {
		return order, nil
	}

	updates := map[string]interface{}{
		"updated_at":     time.Now(),
		"payment_status": target,
	}
	if txn := strings.TrimSpace(input.TransactionID); txn != "" {
		updates["payment_transaction_id"] = txn
	}
	if target == constants.PaymentStatusCompleted {
		updates["payment_paid_at"] = time.Now()
	}
	if err := s.orderRepo.UpdateStatus(order.ID, order.Status, updates); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

func (s *OrderService) notify(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_notify_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}

func (s *OrderService) scheduleDeliveryReminder(orderID uint) {
	// remind the retailer one day before the expected delivery date
	delay := time.Duration(s.expectedDeliveryDays-1) * 24 * time.Hour
	if err := s.queueClient.EnqueueOrderDeliveryReminder(queue.OrderDeliveryReminderPayload{
		OrderID: orderID,
	}, delay); err != nil {
		logger.Warnw("order_delivery_reminder_enqueue_failed", "order_id", orderID, "error", err)
	}
}
