package storefront

import (
	"strconv"

	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest is the add/update cart line body.
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// ApplyCouponRequest carries a coupon application.
type ApplyCouponRequest struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// GetCart returns the customer's cart with computed pricing.
func (h *Handler) GetCart(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	view, err := h.CartService.GetCart(customerID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem adds a product to the cart, capturing its current price.
func (h *Handler) AddCartItem(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	view, err := h.CartService.AddItem(service.AddCartItemInput{
		CustomerID: customerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem sets the quantity of one cart line. Quantity zero
// removes the line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	var (
		view *service.CartView
		err  error
	)
	if req.Quantity <= 0 {
		view, err = h.CartService.RemoveItem(customerID, productID)
	} else {
		view, err = h.CartService.UpdateItemQuantity(customerID, productID, req.Quantity)
	}
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem deletes one cart line.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}
	view, err := h.CartService.RemoveItem(customerID, productID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart empties the cart and drops the retailer binding.
func (h *Handler) ClearCart(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(customerID); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

// VerifyCart re-checks every cart line against live catalog state so the
// client can repair the cart before checkout.
func (h *Handler) VerifyCart(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	report, err := h.CartService.VerifyAvailability(customerID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	allOK := true
	for _, line := range report {
		if !line.OK {
			allOK = false
			break
		}
	}
	response.Success(c, gin.H{"ok": allOK, "items": report})
}

// ApplyCoupon records a coupon discount against the cart.
func (h *Handler) ApplyCoupon(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	view, err := h.CartService.ApplyCoupon(customerID, req.Code, models.NewMoneyFromFloat(req.Amount))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(value), true
}
