package provider

import (
	"github.com/abhinandan-jain01/NearMart/internal/cache"
	"github.com/abhinandan-jain01/NearMart/internal/config"
	"github.com/abhinandan-jain01/NearMart/internal/geocoder"
	"github.com/abhinandan-jain01/NearMart/internal/logger"
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/queue"
	"github.com/abhinandan-jain01/NearMart/internal/repository"
	"github.com/abhinandan-jain01/NearMart/internal/service"
)

// Container wires repositories and services for the handlers.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Geocoder    geocoder.Geocoder

	// Repositories
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	CustomerRepo repository.CustomerRepository
	RetailerRepo repository.RetailerRepository

	// Services
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	OrderService    *service.OrderService
	ProductService  *service.ProductService
	CustomerService *service.CustomerService
	RetailerService *service.RetailerService
}

// NewContainer initializes the dependency container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	var geo geocoder.Geocoder
	gc, err := geocoder.NewClient(&cfg.Geocoder)
	if err != nil {
		logger.Warnw("provider_init_geocoder_failed", "error", err)
	} else {
		geo = gc
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Geocoder:    geo,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.RetailerRepo = repository.NewRetailerRepository(db)
}

func (c *Container) initServices() {
	pricing := service.NewPricing(c.Config.Order.TaxRate, c.Config.Order.DeliveryFee)

	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, pricing)
	c.CheckoutService = service.NewCheckoutService(
		c.CartRepo,
		c.ProductRepo,
		c.OrderRepo,
		c.CustomerRepo,
		c.RetailerRepo,
		pricing,
		c.QueueClient,
	)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.Config.Order.ExpectedDeliveryDays, c.QueueClient)
	c.ProductService = service.NewProductService(c.ProductRepo, c.RetailerRepo)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo, c.Geocoder)
	c.RetailerService = service.NewRetailerService(c.RetailerRepo, c.Geocoder)
}
