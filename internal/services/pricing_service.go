package services

import (
	"math"
	"time"

	"github.com/drivehub/rental-backend/internal/config"
	"github.com/drivehub/rental-backend/internal/models"
)

// PricingService computes booking transaction prices from the base rate
// table and the car's best active offer. Catalog display pricing is a
// separate path in ListingService and is never derived from this one.
type PricingService struct {
	rates config.RateTableConfig
}

// NewPricingService creates a new pricing service
func NewPricingService(rates config.RateTableConfig) *PricingService {
	return &PricingService{rates: rates}
}

// Quote is the breakdown of a computed booking price
type Quote struct {
	Units              int     `json:"units"`
	BaseRate           float64 `json:"base_rate"`
	Subtotal           float64 `json:"subtotal"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Total              float64 `json:"total"`
}

// CalculateBookingPrice prices a booking for the given date range. The
// duration is the whole number of units between start and end, never
// less than one. The best active offer's discount applies to the whole
// subtotal; the result is rounded half-up to two decimals.
func (s *PricingService) CalculateBookingPrice(
	durationType models.DurationType,
	start, end time.Time,
	offers []models.CarOffer,
	now time.Time,
) (*Quote, error) {
	rate, unit := s.rateFor(durationType)

	units := int(end.Sub(start) / unit)
	if units < 1 {
		units = 1
	}

	subtotal := rate * float64(units)

	discount := 0.0
	if best := models.BestOffer(offers, now); best != nil {
		discount = best.DiscountPercentage
	}

	total := roundMoney(subtotal * (1 - discount/100))

	return &Quote{
		Units:              units,
		BaseRate:           rate,
		Subtotal:           roundMoney(subtotal),
		DiscountPercentage: discount,
		Total:              total,
	}, nil
}

// rateFor resolves the base rate and billing unit for a duration type.
// Unrecognized types bill at the hourly rate.
func (s *PricingService) rateFor(durationType models.DurationType) (float64, time.Duration) {
	switch durationType {
	case models.DurationDaily:
		return s.rates.Daily, 24 * time.Hour
	case models.DurationWeekly:
		return s.rates.Weekly, 7 * 24 * time.Hour
	default:
		return s.rates.Hourly, time.Hour
	}
}

// roundMoney rounds half-up to two decimal places
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
