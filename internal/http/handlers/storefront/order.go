package storefront

import (
	"strconv"
	"strings"

	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/repository"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
)

// CancelOrderRequest carries an optional cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// ListOrders pages through the customer's orders, newest first.
func (h *Handler) ListOrders(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListForCustomer(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: customerID,
		Status:     strings.TrimSpace(c.Query("status")),
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

// GetOrder returns one of the customer's orders with items and history.
func (h *Handler) GetOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetForCustomer(orderID, customerID)
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "failed to fetch order")
		return
	}
	response.Success(c, order)
}

// GetOrderByNo looks an order up by its public order number.
func (h *Handler) GetOrderByNo(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "invalid order number", nil)
		return
	}
	order, err := h.OrderService.GetByOrderNoForCustomer(orderNo, customerID)
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "failed to fetch order")
		return
	}
	response.Success(c, order)
}

// CancelOrder cancels one of the customer's orders, returning reserved
// stock. Cancelling an already-cancelled order is a no-op.
func (h *Handler) CancelOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
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
		CustomerID: customerID,
		Reason:     strings.TrimSpace(req.Reason),
	})
	if err != nil {
		respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "failed to cancel order")
		return
	}
	response.Success(c, order)
}
