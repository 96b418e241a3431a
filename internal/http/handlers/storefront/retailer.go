package storefront

import (
	"strconv"
	"strings"

	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListRetailers pages through open retailers.
func (h *Handler) ListRetailers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	retailers, total, err := h.RetailerService.List(repository.RetailerListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		OnlyOpen: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list retailers", err)
		return
	}
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, retailers, pagination)
}

// ListNearbyRetailers returns open retailers within a radius of the
// caller's coordinates, nearest first.
func (h *Handler) ListNearbyRetailers(c *gin.Context) {
	latitude, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	longitude, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondError(c, response.CodeBadRequest, "lat and lng are required", nil)
		return
	}
	radiusKM, _ := strconv.ParseFloat(c.DefaultQuery("radius_km", "10"), 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	nearby, err := h.RetailerService.ListNearby(latitude, longitude, radiusKM, limit)
	if err != nil {
		respondWithMappedError(c, err, retailerErrorRules, response.CodeInternal, "failed to list retailers")
		return
	}
	response.Success(c, gin.H{"retailers": nearby})
}

// GetRetailer returns one retailer's public profile.
func (h *Handler) GetRetailer(c *gin.Context) {
	retailerID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	retailer, err := h.RetailerService.Get(retailerID)
	if err != nil {
		respondWithMappedError(c, err, retailerErrorRules, response.CodeInternal, "failed to fetch retailer")
		return
	}
	response.Success(c, retailer)
}

// ListRetailerProducts pages through one retailer's available catalog.
func (h *Handler) ListRetailerProducts(c *gin.Context) {
	retailerID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		RetailerID:    retailerID,
		Category:      strings.TrimSpace(c.Query("category")),
		Search:        strings.TrimSpace(c.Query("search")),
		OnlyAvailable: true,
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

// GetProduct returns one product's public detail.
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(productID)
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "failed to fetch product")
		return
	}
	response.Success(c, product)
}
