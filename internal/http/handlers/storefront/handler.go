package storefront

import "github.com/abhinandan-jain01/NearMart/internal/provider"

// Handler serves the customer-facing API: discovery, cart, checkout
// and order tracking.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
