package merchant

import (
	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest carries shop profile changes. An address change
// triggers a geocode lookup.
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SetOpenRequest flips whether the shop accepts orders.
type SetOpenRequest struct {
	IsOpen bool `json:"is_open"`
}

// GetProfile returns the retailer's own profile.
func (h *Handler) GetProfile(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	retailer, err := h.RetailerService.Get(retailerID)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "failed to fetch profile")
		return
	}
	response.Success(c, retailer)
}

// UpdateProfile saves shop profile fields.
func (h *Handler) UpdateProfile(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	retailer, err := h.RetailerService.UpdateProfile(c.Request.Context(), service.UpdateRetailerProfileInput{
		RetailerID: retailerID,
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
	})
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "failed to update profile")
		return
	}
	response.Success(c, retailer)
}

// SetOpen opens or closes the shop for new orders.
func (h *Handler) SetOpen(c *gin.Context) {
	retailerID, ok := getRetailerID(c)
	if !ok {
		return
	}
	var req SetOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	retailer, err := h.RetailerService.SetOpen(retailerID, req.IsOpen)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "failed to update profile")
		return
	}
	response.Success(c, retailer)
}
