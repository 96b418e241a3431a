package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhinandan-jain01/NearMart/internal/constants"
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type orderFixture struct {
	orders   *OrderService
	db       *gorm.DB
	customer *models.Customer
	retailer *models.Retailer
}

func setupOrderServiceTest(t *testing.T) *orderFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:order_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Retailer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusEvent{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	customer := &models.Customer{Name: "Asha", Email: fmt.Sprintf("order_cust_%d@example.com", time.Now().UnixNano())}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	retailer := &models.Retailer{Name: "Corner Grocer", Email: fmt.Sprintf("order_ret_%d@example.com", time.Now().UnixNano()), IsOpen: true}
	if err := db.Create(retailer).Error; err != nil {
		t.Fatalf("create retailer failed: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	return &orderFixture{
		orders:   NewOrderService(orderRepo, productRepo, 3, nil),
		db:       db,
		customer: customer,
		retailer: retailer,
	}
}

func (f *orderFixture) createOrder(t *testing.T, status, paymentMethod, paymentStatus string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:    generateOrderNo(),
		CustomerID: f.customer.ID,
		RetailerID: f.retailer.ID,
		Status:     status,
		Subtotal:   models.NewMoneyFromFloat(10),
		Total:      models.NewMoneyFromFloat(16),
		Payment: models.PaymentInfo{
			Method: paymentMethod,
			Status: paymentStatus,
			Amount: models.NewMoneyFromFloat(16),
		},
		Delivery: models.DeliveryInfo{Address: "12 Lake Road"},
	}
	if err := f.db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func (f *orderFixture) createOrderItem(t *testing.T, orderID, productID uint, quantity int) {
	t.Helper()
	item := &models.OrderItem{
		OrderID:    orderID,
		ProductID:  productID,
		RetailerID: f.retailer.ID,
		UnitPrice:  models.NewMoneyFromFloat(5),
		Quantity:   quantity,
		TotalPrice: models.NewMoneyFromFloat(5 * float64(quantity)),
	}
	if err := f.db.Create(item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
}

func TestUpdateStatusHappyPath(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusPending, constants.PaymentMethodCOD, constants.PaymentStatusPending)

	updated, err := f.orders.UpdateStatus(UpdateStatusInput{
		OrderID:    order.ID,
		RetailerID: f.retailer.ID,
		Status:     constants.OrderStatusConfirmed,
	})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status want confirmed got %s", updated.Status)
	}
	if updated.Delivery.ExpectedDate == nil {
		t.Fatalf("confirmation should default the expected delivery date")
	}
	if len(updated.StatusHistory) != 1 || updated.StatusHistory[0].Status != constants.OrderStatusConfirmed {
		t.Fatalf("unexpected history: %+v", updated.StatusHistory)
	}
}

func TestUpdateStatusRejectsSkippedSteps(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusPending, constants.PaymentMethodCOD, constants.PaymentStatusPending)

	_, err := f.orders.UpdateStatus(UpdateStatusInput{
		OrderID:    order.ID,
		RetailerID: f.retailer.ID,
		Status:     constants.OrderStatusDelivered,
	})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition got %v", err)
	}
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusConfirmed, constants.PaymentMethodCOD, constants.PaymentStatusPending)

	updated, err := f.orders.UpdateStatus(UpdateStatusInput{
		OrderID:    order.ID,
		RetailerID: f.retailer.ID,
		Status:     constants.OrderStatusConfirmed,
	})
	if err != nil {
		t.Fatalf("same status update failed: %v", err)
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status want confirmed got %s", updated.Status)
	}
	var count int64
	if err := f.db.Model(&models.OrderStatusEvent{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count events failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("no-op must not append history, got %d events", count)
	}
}

func TestDeliveredStampsDateAndSettlesCOD(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusOutForDelivery, constants.PaymentMethodCOD, constants.PaymentStatusPending)

	updated, err := f.orders.UpdateStatus(UpdateStatusInput{
		OrderID:    order.ID,
		RetailerID: f.retailer.ID,
		Status:     constants.OrderStatusDelivered,
	})
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if updated.Delivery.ActualDate == nil {
		t.Fatalf("delivery should stamp the actual date")
	}
	if updated.Payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("cod payment want completed got %s", updated.Payment.Status)
	}
	if updated.Payment.PaidAt == nil {
		t.Fatalf("paid_at should be stamped on COD settlement")
	}
}

func TestDeliveredIsTerminal(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusDelivered, constants.PaymentMethodCOD, constants.PaymentStatusCompleted)

	_, err := f.orders.UpdateStatus(UpdateStatusInput{
		OrderID:    order.ID,
		RetailerID: f.retailer.ID,
		Status:     constants.OrderStatusProcessing,
	})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition got %v", err)
	}
	// even a repeated delivered is rejected once the order is terminal
	if _, err := f.orders.UpdateStatus(UpdateStatusInput{
		OrderID:    order.ID,
		RetailerID: f.retailer.ID,
		Status:     constants.OrderStatusDelivered,
	}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("delivered -> delivered want ErrInvalidTransition got %v", err)
	}
	if _, err := f.orders.Cancel(CancelOrderInput{OrderID: order.ID, CustomerID: f.customer.ID, Reason: "late"}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("delivered order cancel want ErrInvalidTransition got %v", err)
	}
}

func TestUpdateStatusScopesToRetailer(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusPending, constants.PaymentMethodCOD, constants.PaymentStatusPending)

	_, err := f.orders.UpdateStatus(UpdateStatusInput{
		OrderID:    order.ID,
		RetailerID: f.retailer.ID + 99,
		Status:     constants.OrderStatusConfirmed,
	})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}

func TestUpdateStatusTrackingNumber(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusProcessing, constants.PaymentMethodCard, constants.PaymentStatusCompleted)

	updated, err := f.orders.UpdateStatus(UpdateStatusInput{
		OrderID:        order.ID,
		RetailerID:     f.retailer.ID,
		Status:         constants.OrderStatusOutForDelivery,
		TrackingNumber: "TRK-42",
	})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if updated.Delivery.TrackingNumber != "TRK-42" {
		t.Fatalf("tracking number want TRK-42 got %q", updated.Delivery.TrackingNumber)
	}
}

func TestCancelReturnsStockAndRefunds(t *testing.T) {
	f := setupOrderServiceTest(t)
	product := &models.Product{
		RetailerID:  f.retailer.ID,
		Name:        "milk",
		PriceAmount: models.NewMoneyFromFloat(5),
		Stock:       2,
		IsAvailable: true,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	order := f.createOrder(t, constants.OrderStatusConfirmed, constants.PaymentMethodCard, constants.PaymentStatusCompleted)
	f.createOrderItem(t, order.ID, product.ID, 3)

	cancelled, err := f.orders.Cancel(CancelOrderInput{
		OrderID:    order.ID,
		CustomerID: f.customer.ID,
		Reason:     "changed my mind",
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", cancelled.Status)
	}
	if cancelled.CancelReason != "changed my mind" {
		t.Fatalf("cancel reason not stored: %q", cancelled.CancelReason)
	}
	if cancelled.Payment.Status != constants.PaymentStatusRefunded {
		t.Fatalf("settled payment should flip to refunded, got %s", cancelled.Payment.Status)
	}

	var got models.Product
	if err := f.db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 5 {
		t.Fatalf("stock want 5 got %d", got.Stock)
	}
}

func TestCancelRejectedOnCancelled(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusCancelled, constants.PaymentMethodCOD, constants.PaymentStatusPending)

	_, err := f.orders.Cancel(CancelOrderInput{OrderID: order.ID, CustomerID: f.customer.ID})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("repeat cancel want ErrInvalidTransition got %v", err)
	}
}

func TestCancelAllowedOutForDelivery(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusOutForDelivery, constants.PaymentMethodCOD, constants.PaymentStatusPending)

	cancelled, err := f.orders.Cancel(CancelOrderInput{OrderID: order.ID, CustomerID: f.customer.ID, Reason: "taking too long"})
	if err != nil {
		t.Fatalf("cancel out_for_delivery failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", cancelled.Status)
	}
	if cancelled.CancelReason != "taking too long" {
		t.Fatalf("cancel reason not stored: %q", cancelled.CancelReason)
	}
}

func TestUpdatePaymentCompletedStampsPaidAt(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusConfirmed, constants.PaymentMethodCard, constants.PaymentStatusPending)

	updated, err := f.orders.UpdatePayment(UpdatePaymentInput{
		OrderID:       order.ID,
		RetailerID:    f.retailer.ID,
		Status:        constants.PaymentStatusCompleted,
		TransactionID: "TXN-77",
	})
	if err != nil {
		t.Fatalf("update payment failed: %v", err)
	}
	if updated.Payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("payment status want completed got %s", updated.Payment.Status)
	}
	if updated.Payment.TransactionID != "TXN-77" {
		t.Fatalf("transaction id want TXN-77 got %q", updated.Payment.TransactionID)
	}
	if updated.Payment.PaidAt == nil {
		t.Fatalf("paid_at should be stamped on completion")
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("order status must not change, got %s", updated.Status)
	}
}

func TestUpdatePaymentValidation(t *testing.T) {
	f := setupOrderServiceTest(t)
	order := f.createOrder(t, constants.OrderStatusConfirmed, constants.PaymentMethodCard, constants.PaymentStatusPending)

	if _, err := f.orders.UpdatePayment(UpdatePaymentInput{
		OrderID:    order.ID,
		RetailerID: f.retailer.ID,
		Status:     "pending",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("pending is not a retailer target, want ErrInvalidInput got %v", err)
	}

	if _, err := f.orders.UpdatePayment(UpdatePaymentInput{
		OrderID:    order.ID,
		RetailerID: f.retailer.ID + 99,
		Status:     constants.PaymentStatusCompleted,
	}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign retailer want ErrOrderNotFound got %v", err)
	}

	// same state is a no-op
	settled := f.createOrder(t, constants.OrderStatusConfirmed, constants.PaymentMethodCard, constants.PaymentStatusCompleted)
	got, err := f.orders.UpdatePayment(UpdatePaymentInput{
		OrderID:    settled.ID,
		RetailerID: f.retailer.ID,
		Status:     constants.PaymentStatusCompleted,
	})
	if err != nil {
		t.Fatalf("no-op update failed: %v", err)
	}
	if got.Payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("payment status want completed got %s", got.Payment.Status)
	}
}

func TestIsTransitionAllowedTable(t *testing.T) {
	cases := []struct {
		current string
		target  string
		want    bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPending, constants.OrderStatusOutForDelivery, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusProcessing, true},
		{constants.OrderStatusProcessing, constants.OrderStatusOutForDelivery, true},
		{constants.OrderStatusOutForDelivery, constants.OrderStatusDelivered, true},
		{constants.OrderStatusOutForDelivery, constants.OrderStatusCancelled, true},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusDelivered, constants.OrderStatusDelivered, false},
		{constants.OrderStatusCancelled, constants.OrderStatusConfirmed, false},
		{constants.OrderStatusCancelled, constants.OrderStatusCancelled, false},
		{constants.OrderStatusProcessing, constants.OrderStatusProcessing, true},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.current, tc.target); got != tc.want {
			t.Fatalf("%s -> %s want %v got %v", tc.current, tc.target, tc.want, got)
		}
	}
}
