package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/abhinandan-jain01/NearMart/internal/geocoder"
	"github.com/abhinandan-jain01/NearMart/internal/logger"
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/repository"
)

const earthRadiusKM = 6371.0

// NearbyRetailer is one retailer with its distance from the caller.
type NearbyRetailer struct {
	Retailer   models.Retailer `json:"retailer"`
	DistanceKM float64         `json:"distance_km"`
}

// UpdateRetailerProfileInput is the merchant profile update request.
type UpdateRetailerProfileInput struct {
	RetailerID uint
	Name       string
	Phone      string
	Address    string
}

// RetailerService owns retailer discovery and merchant profile management.
type RetailerService struct {
	retailerRepo repository.RetailerRepository
	geo          geocoder.Geocoder
}

// NewRetailerService creates the retailer service.
func NewRetailerService(retailerRepo repository.RetailerRepository, geo geocoder.Geocoder) *RetailerService {
	return &RetailerService{
		retailerRepo: retailerRepo,
		geo:          geo,
	}
}

// Get fetches one retailer.
func (s *RetailerService) Get(retailerID uint) (*models.Retailer, error) {
	if retailerID == 0 {
		return nil, ErrInvalidInput
	}
	retailer, err := s.retailerRepo.GetByID(retailerID)
	if err != nil {
		return nil, err
	}
	if retailer == nil {
		return nil, ErrRetailerNotFound
	}
	return retailer, nil
}

// List queries retailers with filters and pagination.
func (s *RetailerService) List(filter repository.RetailerListFilter) ([]models.Retailer, int64, error) {
	return s.retailerRepo.List(filter)
}

// ListNearby returns open retailers within radiusKM of a point, nearest
// first. The open set is small enough that distance filtering happens in
// memory rather than in SQL.
func (s *RetailerService) ListNearby(latitude, longitude, radiusKM float64, limit int) ([]NearbyRetailer, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, ErrInvalidInput
	}
	if radiusKM <= 0 {
		radiusKM = 10
	}
	retailers, err := s.retailerRepo.ListOpen()
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyRetailer, 0, len(retailers))
	for _, retailer := range retailers {
		if retailer.Latitude == 0 && retailer.Longitude == 0 {
			continue // never geocoded
		}
		distance := haversineKM(latitude, longitude, retailer.Latitude, retailer.Longitude)
		if distance > radiusKM {
			continue
		}
		nearby = append(nearby, NearbyRetailer{Retailer: retailer, DistanceKM: distance})
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKM < nearby[j].DistanceKM
	})
	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// UpdateProfile saves merchant profile fields, re-geocoding on address
// change the same way customer profiles do.
func (s *RetailerService) UpdateProfile(ctx context.Context, input UpdateRetailerProfileInput) (*models.Retailer, error) {
	retailer, err := s.Get(input.RetailerID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		retailer.Name = name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		retailer.Phone = phone
	}
	if address := strings.TrimSpace(input.Address); address != "" && address != retailer.Address {
		retailer.Address = address
		if s.geo != nil {
			location, err := s.geo.Geocode(ctx, address)
			if err != nil {
				logger.Warnw("retailer_geocode_failed", "retailer_id", retailer.ID, "error", err)
			} else {
				retailer.Latitude = location.Latitude
				retailer.Longitude = location.Longitude
			}
		}
	}

	if err := s.retailerRepo.Update(retailer); err != nil {
		return nil, err
	}
	return retailer, nil
}

// SetOpen flips whether the retailer accepts new orders.
func (s *RetailerService) SetOpen(retailerID uint, open bool) (*models.Retailer, error) {
	retailer, err := s.Get(retailerID)
	if err != nil {
		return nil, err
	}
	retailer.IsOpen = open
	if err := s.retailerRepo.Update(retailer); err != nil {
		return nil, err
	}
	return retailer, nil
}

// haversineKM computes the great-circle distance between two points.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
