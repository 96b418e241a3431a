package service

import (
	"errors"
	"strings"
	"time"

	"github.com/abhinandan-jain01/NearMart/internal/constants"
	"github.com/abhinandan-jain01/NearMart/internal/logger"
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/queue"
	"github.com/abhinandan-jain01/NearMart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlaceOrderInput is the checkout request.
type PlaceOrderInput struct {
	CustomerID           uint
	PaymentMethod        string
	DeliveryAddress      string
	DeliveryPhone        string
	DeliveryInstructions string
}

// CheckoutService turns the customer's cart into an order. The whole
// commitment runs in one database transaction: stock reservation, order
// creation and cart clearing either all happen or none do.
type CheckoutService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	retailerRepo repository.RetailerRepository
	pricing      Pricing
	queueClient  *queue.Client
}

// NewCheckoutService creates the checkout service.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	retailerRepo repository.RetailerRepository,
	pricing Pricing,
	queueClient *queue.Client,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		retailerRepo: retailerRepo,
		pricing:      pricing,
		queueClient:  queueClient,
	}
}

var validPaymentMethods = map[string]bool{
	constants.PaymentMethodCOD:    true,
	constants.PaymentMethodCard:   true,
	constants.PaymentMethodUPI:    true,
	constants.PaymentMethodWallet: true,
}

// PlaceOrder runs the full checkout pipeline: verify the cart, price it,
// reserve stock, create the order and clear the cart.
func (s *CheckoutService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	if input.CustomerID == 0 {
		return nil, ErrInvalidInput
	}
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if !validPaymentMethods[method] {
		return nil, ErrInvalidPaymentMethod
	}

	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	cart, err := s.cartRepo.GetByCustomer(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	retailer, err := s.retailerRepo.GetByID(cart.RetailerID())
	if err != nil {
		return nil, err
	}
	if retailer == nil {
		return nil, ErrRetailerNotFound
	}
	if !retailer.IsOpen {
		return nil, ErrRetailerClosed
	}

	if err := s.verifyAvailability(cart); err != nil {
		return nil, err
	}

	address := strings.TrimSpace(input.DeliveryAddress)
	if address == "" {
		address = customer.Address
	}
	phone := strings.TrimSpace(input.DeliveryPhone)
	if phone == "" {
		phone = customer.Phone
	}
	if address == "" {
		return nil, ErrInvalidInput
	}

	subtotal := cartSubtotal(cart)
	discount := ClampDiscount(subtotal, cart.DiscountAmount)
	tax, total := s.pricing.Quote(subtotal, discount)

	now := time.Now()
	payment := models.PaymentInfo{
		Method: method,
		Status: constants.PaymentStatusPending,
		Amount: total,
	}
	if method != constants.PaymentMethodCOD {
		// non-COD methods are settled upstream before checkout reaches us
		payment.Status = constants.PaymentStatusCompleted
		payment.PaidAt = &now
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			RetailerID:   line.RetailerID,
			RetailerName: retailer.Name,
			UnitPrice:    line.UnitPrice,
			Quantity:     line.Quantity,
			TotalPrice:   models.NewMoneyFromDecimal(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))),
		})
	}

	var created *models.Order
	for attempt := 0; attempt < constants.OrderNoMaxAttempts; attempt++ {
		order := &models.Order{
			OrderNo:     generateOrderNo(),
			CustomerID:  customer.ID,
			RetailerID:  retailer.ID,
			Status:      constants.OrderStatusPending,
			Subtotal:    subtotal,
			Discount:    discount,
			Tax:         tax,
			DeliveryFee: s.pricing.DeliveryFee,
			Total:       total,
			CouponCode:  cart.CouponCode,
			Payment:     payment,
			Delivery: models.DeliveryInfo{
				Address:      address,
				Phone:        phone,
				Instructions: strings.TrimSpace(input.DeliveryInstructions),
			},
		}
		err = s.commit(cart, order, items)
		if errors.Is(err, repository.ErrDuplicateOrderNo) {
			continue
		}
		if err != nil {
			return nil, err
		}
		created = order
		break
	}
	if created == nil {
		return nil, ErrOrderNoExhausted
	}

	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: created.ID,
		Status:  created.Status,
	}); err != nil {
		logger.Warnw("order_status_notify_enqueue_failed", "order_id", created.ID, "error", err)
	}

	full, err := s.orderRepo.GetByID(created.ID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return created, nil
	}
	return full, nil
}

// verifyAvailability re-checks every cart line against the live catalog and
// reports all failing lines at once.
func (s *CheckoutService) verifyAvailability(cart *models.Cart) error {
	ids := make([]uint, 0, len(cart.Items))
	for _, line := range cart.Items {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	var failed []UnavailableItem
	for _, line := range cart.Items {
		product := byID[line.ProductID]
		if product == nil || !product.IsAvailable {
			failed = append(failed, UnavailableItem{
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Requested:   line.Quantity,
				IsAvailable: false,
			})
			continue
		}
		if product.Stock < line.Quantity {
			failed = append(failed, UnavailableItem{
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Requested:   line.Quantity,
				Available:   product.Stock,
				IsAvailable: true,
			})
		}
	}
	if len(failed) > 0 {
		return &UnavailableItemsError{Items: failed}
	}
	return nil
}

// commit reserves stock, creates the order and clears the cart atomically.
// A failed stock guard on any line rolls the whole transaction back.
func (s *CheckoutService) commit(cart *models.Cart, order *models.Order, items []models.OrderItem) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		for _, line := range cart.Items {
			affected, err := productRepo.DecrementStock(line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				shortage := &StockShortageError{
					ProductID:   line.ProductID,
					ProductName: line.ProductName,
					Requested:   line.Quantity,
				}
				// report the stock that remains; a failed read keeps zeros
				if product, err := productRepo.GetByID(line.ProductID); err == nil && product != nil {
					shortage.Available = product.Stock
					shortage.IsAvailable = product.IsAvailable
				}
				return shortage
			}
		}

		event := &models.OrderStatusEvent{
			Status: constants.OrderStatusPending,
			Note:   "order placed",
		}
		if err := s.orderRepo.WithTx(tx).Create(order, items, event); err != nil {
			return err
		}

		return s.cartRepo.WithTx(tx).ClearItems(cart.ID)
	})
}
