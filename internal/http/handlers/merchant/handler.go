package merchant

import "github.com/abhinandan-jain01/NearMart/internal/provider"

// Handler serves the retailer-facing API: catalog management, order
// fulfilment and shop profile.
type Handler struct {
	*provider.Container
}

// New creates the merchant handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
