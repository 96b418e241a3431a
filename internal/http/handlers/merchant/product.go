package merchant

import (
	"strconv"
	"strings"

	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/repository"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
)

// SaveProductRequest creates or updates a catalog entry.
type SaveProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required"`
	Stock       int      `json:"stock"`
	IsAvailable bool     `json:"is_available"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
}

// RestockRequest adds units to a product's stock.
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// SetAvailabilityRequest shows or hides a product.
type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// ListProducts pages through the retailer's own catalog, hidden
// products included.
func (h *Handler) ListProducts(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		RetailerID: retailerID,
		Category:   strings.TrimSpace(c.Query("category")),
		Search:     strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list products", err)
		return
	}
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// CreateProduct adds a catalog entry.
func (h *Handler) CreateProduct(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	var req SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Save(saveInput(retailerID, 0, req))
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "failed to save product")
		return
	}
	response.Success(c, product)
}

// UpdateProduct edits a catalog entry the retailer owns.
func (h *Handler) UpdateProduct(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	productID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Save(saveInput(retailerID, productID, req))
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "failed to save product")
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a catalog entry the retailer owns.
func (h *Handler) DeleteProduct(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	productID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(productID, retailerID); err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "failed to delete product")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// RestockProduct adds stock units.
func (h *Handler) RestockProduct(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	productID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Restock(productID, retailerID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "failed to restock product")
		return
	}
	response.Success(c, product)
}

// SetProductAvailability shows or hides a product without touching stock.
func (h *Handler) SetProductAvailability(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	productID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.ProductService.SetAvailability(productID, retailerID, req.IsAvailable); err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "failed to update product")
		return
	}
	response.Success(c, gin.H{"updated": true})
}

func saveInput(retailerID, productID uint, req SaveProductRequest) service.SaveProductInput {
	return service.SaveProductInput{
		RetailerID:  retailerID,
		ProductID:   productID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       models.NewMoneyFromFloat(req.Price),
		Stock:       req.Stock,
		IsAvailable: req.IsAvailable,
		Images:      req.Images,
		Category:    strings.TrimSpace(req.Category),
	}
}
