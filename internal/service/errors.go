package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the service layer. Handlers map these to HTTP
// status codes; services never reference transport concerns.
var (
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrInvalidInput          = errors.New("invalid input")
	ErrProductNotFound       = errors.New("product not found")
	ErrRetailerNotFound      = errors.New("retailer not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCartNotFound          = errors.New("cart not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrProductUnavailable    = errors.New("product unavailable")
	ErrCrossRetailerConflict = errors.New("cart items must belong to one retailer")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrItemsUnavailable      = errors.New("some items are unavailable")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrOrderNoExhausted      = errors.New("order number generation exhausted")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrNotOwned              = errors.New("resource not owned by caller")
	ErrRetailerClosed        = errors.New("retailer is not accepting orders")
	ErrGeocodeFailed         = errors.New("geocode lookup failed")
)

// UnavailableItem describes one cart line that failed availability checks.
type UnavailableItem struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
	IsAvailable bool   `json:"is_available"`
}

// UnavailableItemsError carries the full list of failing lines so the
// caller can report every problem at once instead of the first.
type UnavailableItemsError struct {
	Items []UnavailableItem
}

// Error implements error.
func (e *UnavailableItemsError) Error() string {
	names := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		names = append(names, item.ProductName)
	}
	return fmt.Sprintf("items unavailable: %s", strings.Join(names, ", "))
}

// Is matches ErrItemsUnavailable so errors.Is keeps working on the
// payload-carrying form.
func (e *UnavailableItemsError) Is(target error) bool {
	return target == ErrItemsUnavailable
}

// StockShortageError reports a request for more units than the catalog
// holds, carrying the live stock so the UI can cap the quantity.
type StockShortageError struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
	IsAvailable bool   `json:"is_available"`
}

// Error implements error.
func (e *StockShortageError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): requested %d, available %d", e.ProductID, e.ProductName, e.Requested, e.Available)
}

// Is matches ErrInsufficientStock.
func (e *StockShortageError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ProductUnavailableError reports a product the retailer has pulled from
// sale, carrying its current catalog state.
type ProductUnavailableError struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Available   int    `json:"available"`
	IsAvailable bool   `json:"is_available"`
}

// Error implements error.
func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %d (%s) is unavailable", e.ProductID, e.ProductName)
}

// Is matches ErrProductUnavailable.
func (e *ProductUnavailableError) Is(target error) bool {
	return target == ErrProductUnavailable
}
