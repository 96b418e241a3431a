package storefront

import (
	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest is the order placement body. Address and phone fall
// back to the customer profile when empty.
type CheckoutRequest struct {
	PaymentMethod        string `json:"payment_method" binding:"required"`
	DeliveryAddress      string `json:"delivery_address"`
	DeliveryPhone        string `json:"delivery_phone"`
	DeliveryInstructions string `json:"delivery_instructions"`
}

// Checkout converts the cart into an order in one transaction.
func (h *Handler) Checkout(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.CheckoutService.PlaceOrder(service.PlaceOrderInput{
		CustomerID:           customerID,
		PaymentMethod:        req.PaymentMethod,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryPhone:        req.DeliveryPhone,
		DeliveryInstructions: req.DeliveryInstructions,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	requestLog(c).Infow("order_placed",
		"order_no", order.OrderNo,
		"customer_id", customerID,
		"retailer_id", order.RetailerID,
	)
	response.Success(c, order)
}
