package router

import (
	"fmt"
	"strings"

	"github.com/abhinandan-jain01/NearMart/internal/cache"
	"github.com/abhinandan-jain01/NearMart/internal/config"
	merchanthandlers "github.com/abhinandan-jain01/NearMart/internal/http/handlers/merchant"
	storefronthandlers "github.com/abhinandan-jain01/NearMart/internal/http/handlers/storefront"
	"github.com/abhinandan-jain01/NearMart/internal/logger"
	"github.com/abhinandan-jain01/NearMart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with both API surfaces.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	r := gin.New()

	storefrontHandler := storefronthandlers.New(c)
	merchantHandler := merchanthandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "nm"
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// discovery endpoints need no auth
		public := apiV1.Group("")
		{
			public.GET("/retailers", storefrontHandler.ListRetailers)
			public.GET("/retailers/nearby", storefrontHandler.ListNearbyRetailers)
			public.GET("/retailers/:id", storefrontHandler.GetRetailer)
			public.GET("/retailers/:id/products", storefrontHandler.ListRetailerProducts)
			public.GET("/products/:id", storefrontHandler.GetProduct)
		}

		// customer endpoints
		customer := apiV1.Group("")
		customer.Use(CustomerJWTAuthMiddleware(cfg.Auth.CustomerJWT.SecretKey, c.CustomerRepo))
		{
			customer.GET("/me", storefrontHandler.GetProfile)
			customer.PUT("/me/profile", storefrontHandler.UpdateProfile)

			customer.GET("/cart", storefrontHandler.GetCart)
			customer.GET("/cart/verify", storefrontHandler.VerifyCart)
			customer.POST("/cart/items", storefrontHandler.AddCartItem)
			customer.PUT("/cart/items/:product_id", storefrontHandler.UpdateCartItem)
			customer.DELETE("/cart/items/:product_id", storefrontHandler.RemoveCartItem)
			customer.DELETE("/cart", storefrontHandler.ClearCart)
			customer.POST("/cart/coupon", storefrontHandler.ApplyCoupon)

			customer.POST("/checkout",
				RateLimitMiddleware(cache.Client(), checkoutRule, KeyByContextUint("customer_id")),
				storefrontHandler.Checkout)

			customer.GET("/orders", storefrontHandler.ListOrders)
			customer.GET("/orders/:id", storefrontHandler.GetOrder)
			customer.GET("/orders/by-order-no/:order_no", storefrontHandler.GetOrderByNo)
			customer.POST("/orders/:id/cancel", storefrontHandler.CancelOrder)
		}

		// merchant endpoints
		merchant := apiV1.Group("/merchant")
		merchant.Use(RetailerJWTAuthMiddleware(cfg.Auth.RetailerJWT.SecretKey, c.RetailerRepo))
		{
			merchant.GET("/me", merchantHandler.GetProfile)
			merchant.PUT("/me/profile", merchantHandler.UpdateProfile)
			merchant.PUT("/me/open", merchantHandler.SetOpen)

			merchant.GET("/products", merchantHandler.ListProducts)
			merchant.POST("/products", merchantHandler.CreateProduct)
			merchant.PUT("/products/:id", merchantHandler.UpdateProduct)
			merchant.DELETE("/products/:id", merchantHandler.DeleteProduct)
			merchant.POST("/products/:id/restock", merchantHandler.RestockProduct)
			merchant.PUT("/products/:id/availability", merchantHandler.SetProductAvailability)

			merchant.GET("/orders", merchantHandler.ListOrders)
			merchant.GET("/orders/:id", merchantHandler.GetOrder)
			merchant.PUT("/orders/:id/status", merchantHandler.UpdateOrderStatus)
			merchant.PUT("/orders/:id/payment", merchantHandler.UpdateOrderPayment)
			merchant.POST("/orders/:id/cancel", merchantHandler.CancelOrder)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
