package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drivehub/rental-backend/internal/database"
	"github.com/drivehub/rental-backend/internal/models"
)

// Catalog fallback day rates used when a car has no active offer
const (
	fallbackPerDayWithoutDriver = 150.00
	fallbackPerDayWithDriver    = 200.00
)

// ListingService shapes cars into the flattened catalog response. Its
// per-day pricing comes off the best active offer (or the fixed
// fallbacks), independent of the booking rate table.
type ListingService struct {
	cars   *database.CarRepository
	offers *database.CarOfferRepository
	stores *database.StoreRepository
	logger *logrus.Logger
}

// NewListingService creates a new listing service
func NewListingService(
	cars *database.CarRepository,
	offers *database.CarOfferRepository,
	stores *database.StoreRepository,
	logger *logrus.Logger,
) *ListingService {
	return &ListingService{
		cars:   cars,
		offers: offers,
		stores: stores,
		logger: logger,
	}
}

// SearchCars runs a catalog search and formats the page of results
func (s *ListingService) SearchCars(filter models.CarFilter, now time.Time) (models.Page, error) {
	cars, total, err := s.cars.List(filter)
	if err != nil {
		return models.Page{}, err
	}

	listings, err := s.formatCars(cars, now, true)
	if err != nil {
		return models.Page{}, err
	}

	return models.NewPage(listings, filter.Page, filter.PerPage, len(listings), total), nil
}

// GetCar formats a single car with its store block
func (s *ListingService) GetCar(id string, now time.Time) (*models.CarListing, error) {
	car, err := s.cars.GetByID(id)
	if err != nil {
		return nil, err
	}

	offers, err := s.offers.GetByCarID(car.ID)
	if err != nil {
		return nil, err
	}

	store, err := s.storeSummary(car.StoreID)
	if err != nil {
		s.logger.WithError(err).WithField("store_id", car.StoreID).Warn("Failed to load store for listing")
	}

	listing := s.FormatCar(car, offers, store, now)
	return &listing, nil
}

// ListStoreCars formats a store's own cars without the store block
func (s *ListingService) ListStoreCars(storeID string, now time.Time) ([]models.CarListing, error) {
	cars, err := s.cars.GetByStoreID(storeID)
	if err != nil {
		return nil, err
	}
	return s.formatCars(cars, now, false)
}

// FormatCar flattens a car into the catalog listing shape
func (s *ListingService) FormatCar(car *models.Car, offers []models.CarOffer, store *models.StoreSummary, now time.Time) models.CarListing {
	primary := ""
	images := []string(car.ImageURLs)
	if images == nil {
		images = []string{}
	}
	if len(images) > 0 {
		primary = images[0]
	}

	return models.CarListing{
		ID:           car.ID,
		StoreID:      car.StoreID,
		Brand:        car.Brand,
		Type:         car.Type,
		Model:        car.Model,
		Year:         car.Year,
		Color:        car.Color,
		Seats:        car.Seats,
		Transmission: car.Transmission,
		FuelType:     car.FuelType,
		PrimaryImage: primary,
		Images:       images,
		Pricing:      catalogPricing(offers, now),
		Features:     carFeatures(car),
		Store:        store,
	}
}

// catalogPricing derives the display price block from the best active
// offer, falling back to the fixed day rates when no offer applies.
func catalogPricing(offers []models.CarOffer, now time.Time) models.CarPricing {
	best := models.BestOffer(offers, now)
	if best == nil {
		return models.CarPricing{
			PerDayWithoutDriver: fallbackPerDayWithoutDriver,
			PerDayWithDriver:    fallbackPerDayWithDriver,
			Currency:            "USD",
			DiscountPercentage:  0,
			HasOffer:            false,
		}
	}

	return models.CarPricing{
		PerDayWithoutDriver: best.PriceWithoutDriver,
		PerDayWithDriver:    best.PriceWithDriver,
		Currency:            best.Currency,
		DiscountPercentage:  best.DiscountPercentage,
		HasOffer:            true,
	}
}

// carFeatures derives the feature chips shown on a listing card
func carFeatures(car *models.Car) []string {
	features := []string{
		fmt.Sprintf("%d Seats", car.Seats),
	}

	switch car.Transmission {
	case models.TransmissionAutomatic:
		features = append(features, "Automatic")
	case models.TransmissionManual:
		features = append(features, "Manual")
	}

	if car.FuelType != "" {
		features = append(features, car.FuelType)
	}
	if car.Engine != "" {
		features = append(features, car.Engine)
	}

	features = append(features, "Air Conditioning", "Bluetooth")
	return features
}

func (s *ListingService) formatCars(cars []models.Car, now time.Time, withStore bool) ([]models.CarListing, error) {
	if len(cars) == 0 {
		return []models.CarListing{}, nil
	}

	ids := make([]string, len(cars))
	for i := range cars {
		ids[i] = cars[i].ID
	}

	offersByCar, err := s.offers.GetByCarIDs(ids)
	if err != nil {
		return nil, err
	}

	// Stores repeat across a page; fetch each once
	summaries := map[string]*models.StoreSummary{}

	listings := make([]models.CarListing, 0, len(cars))
	for i := range cars {
		var store *models.StoreSummary
		if withStore {
			cached, ok := summaries[cars[i].StoreID]
			if !ok {
				cached, err = s.storeSummary(cars[i].StoreID)
				if err != nil {
					s.logger.WithError(err).WithField("store_id", cars[i].StoreID).Warn("Failed to load store for listing")
				}
				summaries[cars[i].StoreID] = cached
			}
			store = cached
		}
		listings = append(listings, s.FormatCar(&cars[i], offersByCar[cars[i].ID], store, now))
	}

	return listings, nil
}

func (s *ListingService) storeSummary(storeID string) (*models.StoreSummary, error) {
	store, err := s.stores.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	summary := store.Summary()
	return &summary, nil
}
