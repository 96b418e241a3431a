package storefront

import (
	"errors"

	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps one business error onto an API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartCommonErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrCrossRetailerConflict, code: response.CodeBadRequest, msg: "cart already holds items from another retailer"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "not enough stock"},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, msg: "cart not found"},
}

var orderLookupErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
}

var orderCancelErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, msg: "order can no longer be cancelled"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrCustomerNotFound, code: response.CodeNotFound, msg: "customer not found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
}

var retailerErrorRules = []mappedHandlerError{
	{target: service.ErrRetailerNotFound, code: response.CodeNotFound, msg: "retailer not found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidPaymentMethod, code: response.CodeBadRequest, msg: "unsupported payment method"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrCustomerNotFound, code: response.CodeNotFound, msg: "customer not found"},
	{target: service.ErrRetailerNotFound, code: response.CodeNotFound, msg: "retailer not found"},
	{target: service.ErrRetailerClosed, code: response.CodeBadRequest, msg: "retailer is not accepting orders"},
	{target: service.ErrOrderNoExhausted, code: response.CodeInternal, msg: "could not allocate an order number"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
}

// respondCartError carries the product's live stock and availability on
// stock and availability failures so the client can adjust the line.
func respondCartError(c *gin.Context, err error) {
	var shortage *service.StockShortageError
	if errors.As(err, &shortage) {
		respondErrorWithData(c, response.CodeBadRequest, "not enough stock",
			gin.H{
				"product_id":   shortage.ProductID,
				"product_name": shortage.ProductName,
				"requested":    shortage.Requested,
				"available":    shortage.Available,
				"is_available": shortage.IsAvailable,
			}, nil)
		return
	}
	var unavailable *service.ProductUnavailableError
	if errors.As(err, &unavailable) {
		respondErrorWithData(c, response.CodeBadRequest, "product is not available",
			gin.H{
				"product_id":   unavailable.ProductID,
				"product_name": unavailable.ProductName,
				"available":    unavailable.Available,
				"is_available": unavailable.IsAvailable,
			}, nil)
		return
	}
	respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "cart operation failed")
}

// respondCheckoutError reports availability and stock failures with the
// per-item detail the client needs to repair the cart.
func respondCheckoutError(c *gin.Context, err error) {
	var unavailable *service.UnavailableItemsError
	if errors.As(err, &unavailable) {
		respondErrorWithData(c, response.CodeBadRequest, "some items are no longer available",
			gin.H{"unavailable_items": unavailable.Items}, nil)
		return
	}
	var shortage *service.StockShortageError
	if errors.As(err, &shortage) {
		respondErrorWithData(c, response.CodeBadRequest, "not enough stock",
			gin.H{
				"product_id":   shortage.ProductID,
				"product_name": shortage.ProductName,
				"requested":    shortage.Requested,
				"available":    shortage.Available,
				"is_available": shortage.IsAvailable,
			}, nil)
		return
	}
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "failed to place order")
}
