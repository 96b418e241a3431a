package merchant

import (
	"strconv"
	"strings"

	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/repository"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest moves an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	Note           string `json:"note"`
	TrackingNumber string `json:"tracking_number"`
}

// CancelOrderRequest carries an optional cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// ListOrders pages through the retailer's incoming orders.
func (h *Handler) ListOrders(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListForRetailer(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		RetailerID: retailerID,
		Status:     strings.TrimSpace(c.Query("status")),
		OrderNo:    strings.TrimSpace(c.Query("order_no")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// GetOrder returns one of the retailer's orders with items and history.
func (h *Handler) GetOrder(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetForRetailer(orderID, retailerID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to fetch order")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus advances the order through its lifecycle. Repeating
// the current status is a no-op.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(service.UpdateStatusInput{
		OrderID:        orderID,
		RetailerID:     retailerID,
		Status:         strings.TrimSpace(req.Status),
		Note:           strings.TrimSpace(req.Note),
		TrackingNumber: strings.TrimSpace(req.TrackingNumber),
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to update order")
		return
	}
	response.Success(c, order)
}

// UpdatePaymentRequest records an out-of-band payment state change.
type UpdatePaymentRequest struct {
	Status        string `json:"status" binding:"required"`
	TransactionID string `json:"transaction_id"`
}

// UpdateOrderPayment marks a payment completed, failed or refunded.
func (h *Handler) UpdateOrderPayment(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := h.OrderService.UpdatePayment(service.UpdatePaymentInput{
		OrderID:       orderID,
		RetailerID:    retailerID,
		Status:        strings.TrimSpace(req.Status),
		TransactionID: strings.TrimSpace(req.TransactionID),
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to update payment")
		return
	}
	response.Success(c, order)
}

// CancelOrder cancels an order on the retailer's side, returning stock.
func (h *Handler) CancelOrder(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	// reason is optional; an empty body is fine
	var req CancelOrderRequest
	_ = c.ShouldBindJSON(&req)
	order, err := h.OrderService.Cancel(service.CancelOrderInput{
		OrderID:    orderID,
		RetailerID: retailerID,
		Reason:     strings.TrimSpace(req.Reason),
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to cancel order")
		return
	}
	response.Success(c, order)
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
