package service

import (
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/repository"

	"github.com/shopspring/decimal"
)

// CartLine is one priced cart line for responses.
type CartLine struct {
	ProductID    uint         `json:"product_id"`
	RetailerID   uint         `json:"retailer_id"`
	ProductName  string       `json:"product_name"`
	ProductImage string       `json:"product_image"`
	UnitPrice    models.Money `json:"unit_price"`
	Quantity     int          `json:"quantity"`
	LineTotal    models.Money `json:"line_total"`
}

// CartView is the fully priced cart returned to the storefront.
type CartView struct {
	CartID      uint         `json:"cart_id"`
	RetailerID  uint         `json:"retailer_id"`
	Items       []CartLine   `json:"items"`
	ItemCount   int          `json:"item_count"`
	CouponCode  string       `json:"coupon_code,omitempty"`
	Subtotal    models.Money `json:"subtotal"`
	Discount    models.Money `json:"discount"`
	Tax         models.Money `json:"tax"`
	DeliveryFee models.Money `json:"delivery_fee"`
	Total       models.Money `json:"total"`
}

// AddCartItemInput is the add-to-cart request.
type AddCartItemInput struct {
	CustomerID uint
	ProductID  uint
	Quantity   int
}

// CartService owns the single mutable cart per customer.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	pricing     Pricing
}

// NewCartService creates the cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, pricing Pricing) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// GetCart returns the customer's priced cart, creating it on first access.
func (s *CartService) GetCart(customerID uint) (*CartView, error) {
	if customerID == 0 {
		return nil, ErrInvalidInput
	}
	cart, err := s.cartRepo.GetOrCreate(customerID)
	if err != nil {
		return nil, err
	}
	return s.buildView(cart), nil
}

// AddItem puts a product in the cart, capturing its current price. Re-adding
// the same product raises the quantity and refreshes the captured price. All
// lines must belong to one retailer.
func (s *CartService) AddItem(input AddCartItemInput) (*CartView, error) {
	if input.CustomerID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsAvailable {
		return nil, &ProductUnavailableError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   product.Stock,
			IsAvailable: false,
		}
	}

	cart, err := s.cartRepo.GetOrCreate(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if boundTo := cart.RetailerID(); boundTo != 0 && boundTo != product.RetailerID {
		return nil, ErrCrossRetailerConflict
	}

	quantity := input.Quantity
	existing := cart.FindItem(input.ProductID)
	if existing != nil {
		quantity += existing.Quantity
	}
	if product.Stock < quantity {
		return nil, &StockShortageError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
			IsAvailable: true,
		}
	}

	item := existing
	if item == nil {
		item = &models.CartItem{
			CartID:     cart.ID,
			ProductID:  product.ID,
			RetailerID: product.RetailerID,
		}
	}
	item.Quantity = quantity
	item.ProductName = product.Name
	item.ProductImage = firstImage(product.Images)
	item.UnitPrice = product.PriceAmount
	if err := s.cartRepo.SaveItem(item); err != nil {
		return nil, err
	}
	return s.reload(input.CustomerID)
}

// UpdateItemQuantity sets the quantity of an existing line.
func (s *CartService) UpdateItemQuantity(customerID, productID uint, quantity int) (*CartView, error) {
	if customerID == 0 || productID == 0 {
		return nil, ErrInvalidInput
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.cartRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	item := cart.FindItem(productID)
	if item == nil {
		return nil, ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &ProductUnavailableError{
			ProductID:   productID,
			ProductName: item.ProductName,
		}
	}
	if !product.IsAvailable {
		return nil, &ProductUnavailableError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   product.Stock,
			IsAvailable: false,
		}
	}
	if product.Stock < quantity {
		return nil, &StockShortageError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
			IsAvailable: true,
		}
	}

	item.Quantity = quantity
	if err := s.cartRepo.SaveItem(item); err != nil {
		return nil, err
	}
	return s.reload(customerID)
}

// RemoveItem drops one line from the cart.
func (s *CartService) RemoveItem(customerID, productID uint) (*CartView, error) {
	if customerID == 0 || productID == 0 {
		return nil, ErrInvalidInput
	}
	cart, err := s.cartRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
		return nil, err
	}
	return s.reload(customerID)
}

// Clear empties the cart and resets its coupon state.
func (s *CartService) Clear(customerID uint) error {
	if customerID == 0 {
		return ErrInvalidInput
	}
	cart, err := s.cartRepo.GetByCustomer(customerID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.ClearItems(cart.ID)
}

// ApplyCoupon stores a pre-resolved discount on the cart. Coupon resolution
// itself lives in the promotions backend; here the amount is only validated
// against the current subtotal.
func (s *CartService) ApplyCoupon(customerID uint, code string, discount models.Money) (*CartView, error) {
	if customerID == 0 || code == "" || discount.IsNegative() {
		return nil, ErrInvalidInput
	}
	cart, err := s.cartRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	subtotal := cartSubtotal(cart)
	if discount.GreaterThan(subtotal.Decimal) {
		return nil, ErrInvalidInput
	}
	if err := s.cartRepo.UpdateDiscount(cart.ID, code, discount); err != nil {
		return nil, err
	}
	return s.reload(customerID)
}

// LineAvailability is one cart line checked against the live catalog.
type LineAvailability struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
	IsAvailable bool   `json:"is_available"`
	OK          bool   `json:"ok"`
}

// VerifyAvailability re-checks every cart line against current catalog
// state without mutating anything. Checkout runs the same verification
// again inside its transaction.
func (s *CartService) VerifyAvailability(customerID uint) ([]LineAvailability, error) {
	if customerID == 0 {
		return nil, ErrInvalidInput
	}
	cart, err := s.cartRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return []LineAvailability{}, nil
	}

	ids := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	report := make([]LineAvailability, 0, len(cart.Items))
	for _, item := range cart.Items {
		line := LineAvailability{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Requested:   item.Quantity,
		}
		if product, ok := byID[item.ProductID]; ok {
			line.ProductName = product.Name
			line.Available = product.Stock
			line.IsAvailable = product.IsAvailable
			line.OK = product.IsAvailable && product.Stock >= item.Quantity
		}
		report = append(report, line)
	}
	return report, nil
}

func (s *CartService) reload(customerID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return s.buildView(cart), nil
}

func (s *CartService) buildView(cart *models.Cart) *CartView {
	view := &CartView{
		CartID:     cart.ID,
		RetailerID: cart.RetailerID(),
		CouponCode: cart.CouponCode,
		Items:      make([]CartLine, 0, len(cart.Items)),
	}
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		lineTotal := models.NewMoneyFromDecimal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		subtotal = subtotal.Add(lineTotal.Decimal)
		view.ItemCount += item.Quantity
		view.Items = append(view.Items, CartLine{
			ProductID:    item.ProductID,
			RetailerID:   item.RetailerID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			LineTotal:    lineTotal,
		})
	}
	view.Subtotal = models.NewMoneyFromDecimal(subtotal)
	view.Discount = ClampDiscount(view.Subtotal, cart.DiscountAmount)
	if len(view.Items) == 0 {
		// nothing to deliver, nothing to charge
		zero := models.NewMoneyFromFloat(0)
		view.Discount, view.Tax, view.DeliveryFee, view.Total = zero, zero, zero, zero
		return view
	}
	view.DeliveryFee = s.pricing.DeliveryFee
	view.Tax, view.Total = s.pricing.Quote(view.Subtotal, view.Discount)
	return view
}

func cartSubtotal(cart *models.Cart) models.Money {
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return models.NewMoneyFromDecimal(subtotal)
}

func firstImage(images models.StringArray) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
