package service

import (
	"context"
	"strings"

	"github.com/abhinandan-jain01/NearMart/internal/geocoder"
	"github.com/abhinandan-jain01/NearMart/internal/logger"
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/repository"
)

// UpdateCustomerProfileInput is the profile update request.
type UpdateCustomerProfileInput struct {
	CustomerID uint
	Name       string
	Phone      string
	Address    string
}

// CustomerService owns customer profile reads and updates.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	geo          geocoder.Geocoder
}

// NewCustomerService creates the customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, geo geocoder.Geocoder) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		geo:          geo,
	}
}

// GetProfile fetches the customer profile.
func (s *CustomerService) GetProfile(customerID uint) (*models.Customer, error) {
	if customerID == 0 {
		return nil, ErrInvalidInput
	}
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// UpdateProfile saves profile fields. An address change re-geocodes the
// customer; a failed lookup keeps the old coordinates instead of failing
// the whole update.
func (s *CustomerService) UpdateProfile(ctx context.Context, input UpdateCustomerProfileInput) (*models.Customer, error) {
	customer, err := s.GetProfile(input.CustomerID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		customer.Name = name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		customer.Phone = phone
	}
	if address := strings.TrimSpace(input.Address); address != "" && address != customer.Address {
		customer.Address = address
		if s.geo != nil {
			location, err := s.geo.Geocode(ctx, address)
			if err != nil {
				logger.Warnw("customer_geocode_failed", "customer_id", customer.ID, "error", err)
			} else {
				customer.Latitude = location.Latitude
				customer.Longitude = location.Longitude
			}
		}
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}
