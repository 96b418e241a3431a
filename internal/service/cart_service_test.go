package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewCartService(cartRepo, productRepo, NewPricing(0.1, 5.0)), db
}

func seedProduct(t *testing.T, db *gorm.DB, retailerID uint, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		RetailerID:  retailerID,
		Name:        name,
		PriceAmount: models.NewMoneyFromFloat(price),
		Stock:       stock,
		IsAvailable: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestAddItemCapturesPrice(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedProduct(t, db, 1, "rice", 4.25, 10)

	view, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(view.Items))
	}
	if got := view.Items[0].UnitPrice.String(); got != "4.25" {
		t.Fatalf("unit price want 4.25 got %s", got)
	}

	// a later catalog price change must not touch the captured line
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price_amount", models.NewMoneyFromFloat(9.99)).Error; err != nil {
		t.Fatalf("reprice failed: %v", err)
	}
	view, err = svc.GetCart(7)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if got := view.Items[0].UnitPrice.String(); got != "4.25" {
		t.Fatalf("captured price changed, want 4.25 got %s", got)
	}
}

func TestAddItemReAddRefreshesPriceAndQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedProduct(t, db, 1, "rice", 4.25, 10)

	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price_amount", models.NewMoneyFromFloat(3.75)).Error; err != nil {
		t.Fatalf("reprice failed: %v", err)
	}

	view, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if view.Items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", view.Items[0].Quantity)
	}
	if got := view.Items[0].UnitPrice.String(); got != "3.75" {
		t.Fatalf("re-add should refresh price, want 3.75 got %s", got)
	}
}

func TestAddItemCrossRetailerConflict(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := seedProduct(t, db, 1, "rice", 4.25, 10)
	other := seedProduct(t, db, 2, "dal", 3.10, 10)

	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: first.ID, Quantity: 1}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	_, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: other.ID, Quantity: 1})
	if !errors.Is(err, ErrCrossRetailerConflict) {
		t.Fatalf("want ErrCrossRetailerConflict got %v", err)
	}
}

func TestAddItemValidation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedProduct(t, db, 1, "rice", 4.25, 2)

	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity got %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: 999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: product.ID, Quantity: 3}); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_available", false).Error; err != nil {
		t.Fatalf("hide product failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("want ErrProductUnavailable got %v", err)
	}
}

func TestAddItemErrorsCarryStockState(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedProduct(t, db, 1, "rice", 4.25, 2)

	_, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: product.ID, Quantity: 3})
	var shortage *StockShortageError
	if !errors.As(err, &shortage) {
		t.Fatalf("want StockShortageError got %v", err)
	}
	if shortage.Requested != 3 || shortage.Available != 2 || !shortage.IsAvailable {
		t.Fatalf("shortage payload unexpected: %+v", shortage)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_available", false).Error; err != nil {
		t.Fatalf("hide product failed: %v", err)
	}
	_, err = svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: product.ID, Quantity: 1})
	var unavailable *ProductUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("want ProductUnavailableError got %v", err)
	}
	if unavailable.ProductID != product.ID || unavailable.Available != 2 || unavailable.IsAvailable {
		t.Fatalf("unavailable payload unexpected: %+v", unavailable)
	}
}

func TestCartViewPricing(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	apples := seedProduct(t, db, 1, "apples", 2.99, 10)
	bread := seedProduct(t, db, 1, "bread", 1.99, 10)

	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: apples.ID, Quantity: 2}); err != nil {
		t.Fatalf("add apples failed: %v", err)
	}
	view, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: bread.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add bread failed: %v", err)
	}

	if got := view.Subtotal.String(); got != "7.97" {
		t.Fatalf("subtotal want 7.97 got %s", got)
	}
	if got := view.Tax.String(); got != "0.80" {
		t.Fatalf("tax want 0.80 got %s", got)
	}
	if got := view.DeliveryFee.String(); got != "5.00" {
		t.Fatalf("delivery fee want 5.00 got %s", got)
	}
	if got := view.Total.String(); got != "13.77" {
		t.Fatalf("total want 13.77 got %s", got)
	}
	if view.ItemCount != 3 {
		t.Fatalf("item count want 3 got %d", view.ItemCount)
	}
}

func TestEmptyCartHasNoCharges(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	view, err := svc.GetCart(7)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if got := view.Total.String(); got != "0.00" {
		t.Fatalf("empty cart total want 0.00 got %s", got)
	}
	if got := view.DeliveryFee.String(); got != "0.00" {
		t.Fatalf("empty cart fee want 0.00 got %s", got)
	}
}

func TestRemoveAndUpdateQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	rice := seedProduct(t, db, 1, "rice", 4.25, 10)
	dal := seedProduct(t, db, 1, "dal", 3.10, 10)

	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: rice.ID, Quantity: 2}); err != nil {
		t.Fatalf("add rice failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: dal.ID, Quantity: 1}); err != nil {
		t.Fatalf("add dal failed: %v", err)
	}

	view, err := svc.UpdateItemQuantity(7, rice.ID, 4)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if line := findLine(view, rice.ID); line == nil || line.Quantity != 4 {
		t.Fatalf("rice quantity want 4 got %+v", line)
	}

	view, err = svc.RemoveItem(7, dal.ID)
	if err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(view.Items))
	}

	// removing the last line unbinds the retailer
	view, err = svc.RemoveItem(7, rice.ID)
	if err != nil {
		t.Fatalf("remove last item failed: %v", err)
	}
	if view.RetailerID != 0 {
		t.Fatalf("retailer binding should clear, got %d", view.RetailerID)
	}
}

func TestApplyCouponClampsToSubtotal(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	rice := seedProduct(t, db, 1, "rice", 4.00, 10)

	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: rice.ID, Quantity: 1}); err != nil {
		t.Fatalf("add rice failed: %v", err)
	}

	if _, err := svc.ApplyCoupon(7, "BIG", models.NewMoneyFromFloat(10)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("oversized coupon should be rejected, got %v", err)
	}

	view, err := svc.ApplyCoupon(7, "SAVE1", models.NewMoneyFromFloat(1))
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if got := view.Discount.String(); got != "1.00" {
		t.Fatalf("discount want 1.00 got %s", got)
	}
	// tax on the discounted base: (4.00-1.00)*0.1 = 0.30
	if got := view.Tax.String(); got != "0.30" {
		t.Fatalf("tax want 0.30 got %s", got)
	}
	if got := view.Total.String(); got != "8.30" {
		t.Fatalf("total want 8.30 got %s", got)
	}
}

func TestVerifyAvailability(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	rice := seedProduct(t, db, 1, "rice", 4.25, 10)
	dal := seedProduct(t, db, 1, "dal", 3.10, 5)

	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: rice.ID, Quantity: 2}); err != nil {
		t.Fatalf("add rice failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{CustomerID: 7, ProductID: dal.ID, Quantity: 5}); err != nil {
		t.Fatalf("add dal failed: %v", err)
	}

	// stock drained and product hidden after the lines were added
	if err := db.Model(&models.Product{}).Where("id = ?", dal.ID).Update("stock", 1).Error; err != nil {
		t.Fatalf("drain stock failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", rice.ID).Update("is_available", false).Error; err != nil {
		t.Fatalf("hide product failed: %v", err)
	}

	report, err := svc.VerifyAvailability(7)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("report lines want 2 got %d", len(report))
	}
	byProduct := map[uint]LineAvailability{}
	for _, line := range report {
		byProduct[line.ProductID] = line
	}
	if line := byProduct[rice.ID]; line.OK || line.IsAvailable {
		t.Fatalf("hidden product should fail verification: %+v", line)
	}
	if line := byProduct[dal.ID]; line.OK || line.Available != 1 || !line.IsAvailable {
		t.Fatalf("short stock line unexpected: %+v", line)
	}
}

func TestVerifyAvailabilityEmptyCart(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	report, err := svc.VerifyAvailability(7)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if len(report) != 0 {
		t.Fatalf("empty cart should verify to an empty report, got %d lines", len(report))
	}
}

func findLine(view *CartView, productID uint) *CartLine {
	for i := range view.Items {
		if view.Items[i].ProductID == productID {
			return &view.Items[i]
		}
	}
	return nil
}
