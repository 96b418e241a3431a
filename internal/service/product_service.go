package service

import (
	"strings"

	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/repository"
)

// SaveProductInput is the merchant create/update request.
type SaveProductInput struct {
	RetailerID  uint
	ProductID   uint // zero on create
	Name        string
	Description string
	Price       models.Money
	Stock       int
	IsAvailable bool
	Images      []string
	Category    string
}

// ProductService owns catalog reads and merchant catalog management.
type ProductService struct {
	productRepo  repository.ProductRepository
	retailerRepo repository.RetailerRepository
}

// NewProductService creates the product service.
func NewProductService(productRepo repository.ProductRepository, retailerRepo repository.RetailerRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		retailerRepo: retailerRepo,
	}
}

// Get fetches one product for the storefront.
func (s *ProductService) Get(productID uint) (*models.Product, error) {
	if productID == 0 {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List queries the catalog.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// Save creates or updates a retailer's product.
func (s *ProductService) Save(input SaveProductInput) (*models.Product, error) {
	if input.RetailerID == 0 {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || !input.Price.IsPositive() || input.Stock < 0 {
		return nil, ErrInvalidInput
	}

	retailer, err := s.retailerRepo.GetByID(input.RetailerID)
	if err != nil {
		return nil, err
	}
	if retailer == nil {
		return nil, ErrRetailerNotFound
	}

	if input.ProductID == 0 {
		product := &models.Product{
			RetailerID:  input.RetailerID,
			Name:        name,
			Description: strings.TrimSpace(input.Description),
			PriceAmount: input.Price,
			Stock:       input.Stock,
			IsAvailable: input.IsAvailable,
			Images:      models.StringArray(input.Images),
			Category:    strings.TrimSpace(input.Category),
		}
		if err := s.productRepo.Create(product); err != nil {
			return nil, err
		}
		return product, nil
	}

	product, err := s.ownedProduct(input.ProductID, input.RetailerID)
	if err != nil {
		return nil, err
	}
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.PriceAmount = input.Price
	product.Stock = input.Stock
	product.IsAvailable = input.IsAvailable
	product.Images = models.StringArray(input.Images)
	product.Category = strings.TrimSpace(input.Category)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a retailer's product. Existing order snapshots keep their
// copies of its name and price.
func (s *ProductService) Delete(productID, retailerID uint) error {
	if _, err := s.ownedProduct(productID, retailerID); err != nil {
		return err
	}
	return s.productRepo.Delete(productID)
}

// Restock adds inventory to a retailer's product.
func (s *ProductService) Restock(productID, retailerID uint, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.ownedProduct(productID, retailerID); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.AddStock(productID, quantity); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(productID)
}

// SetAvailability toggles a product on or off the storefront.
func (s *ProductService) SetAvailability(productID, retailerID uint, available bool) error {
	if _, err := s.ownedProduct(productID, retailerID); err != nil {
		return err
	}
	return s.productRepo.SetAvailability(productID, available)
}

func (s *ProductService) ownedProduct(productID, retailerID uint) (*models.Product, error) {
	if productID == 0 || retailerID == 0 {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.RetailerID != retailerID {
		return nil, ErrNotOwned
	}
	return product, nil
}
