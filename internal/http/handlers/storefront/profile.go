package storefront

import (
	"github.com/abhinandan-jain01/NearMart/internal/http/response"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest carries customer profile changes. An address
// change triggers a geocode lookup.
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// GetProfile returns the customer's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.GetProfile(customerID)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "failed to fetch profile")
		return
	}
	response.Success(c, customer)
}

// UpdateProfile saves profile fields.
func (h *Handler) UpdateProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	customer, err := h.CustomerService.UpdateProfile(c.Request.Context(), service.UpdateCustomerProfileInput{
		CustomerID: customerID,
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
	})
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "failed to update profile")
		return
	}
	response.Success(c, customer)
}
