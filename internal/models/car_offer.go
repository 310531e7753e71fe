package models

import (
	"errors"
	"time"
)

// CarOffer represents a discount/pricing offer attached to a car.
// An offer with both dates null is always active while is_active holds.
type CarOffer struct {
	ID                 string     `json:"id" db:"id"`
	CarID              string     `json:"car_id" db:"car_id"`
	DiscountPercentage float64    `json:"discount_percentage" db:"discount_percentage"`
	PriceWithoutDriver float64    `json:"price_without_driver" db:"price_without_driver"`
	PriceWithDriver    float64    `json:"price_with_driver" db:"price_with_driver"`
	Currency           string     `json:"currency" db:"currency"`
	StartDate          *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty" db:"end_date"`
	IsActive           bool       `json:"is_active" db:"is_active"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// IsActiveAt reports whether the offer is active at the given instant.
// Activity is always computed against an explicit clock so that pricing
// and listing code stays deterministic.
func (o *CarOffer) IsActiveAt(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	if o.StartDate == nil && o.EndDate == nil {
		return true
	}
	if o.StartDate != nil && now.Before(*o.StartDate) {
		return false
	}
	if o.EndDate != nil && now.After(*o.EndDate) {
		return false
	}
	return true
}

// BestOffer returns the active offer with the highest discount percentage,
// or nil when no offer is active at the given instant.
func BestOffer(offers []CarOffer, now time.Time) *CarOffer {
	var best *CarOffer
	for i := range offers {
		if !offers[i].IsActiveAt(now) {
			continue
		}
		if best == nil || offers[i].DiscountPercentage > best.DiscountPercentage {
			best = &offers[i]
		}
	}
	return best
}

// CreateCarOfferRequest represents the request to create an offer
type CreateCarOfferRequest struct {
	CarID              string  `json:"car_id" binding:"required"`
	DiscountPercentage float64 `json:"discount_percentage"`
	PriceWithoutDriver float64 `json:"price_without_driver" binding:"required,gt=0"`
	PriceWithDriver    float64 `json:"price_with_driver" binding:"required,gt=0"`
	Currency           string  `json:"currency"`
	StartDate          *string `json:"start_date,omitempty"` // Format: YYYY-MM-DD
	EndDate            *string `json:"end_date,omitempty"`   // Format: YYYY-MM-DD
	IsActive           *bool   `json:"is_active,omitempty"`
}

// UpdateCarOfferRequest represents the request to update an offer
type UpdateCarOfferRequest struct {
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	PriceWithoutDriver *float64 `json:"price_without_driver,omitempty"`
	PriceWithDriver    *float64 `json:"price_with_driver,omitempty"`
	Currency           *string  `json:"currency,omitempty"`
	StartDate          *string  `json:"start_date,omitempty"`
	EndDate            *string  `json:"end_date,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

// Validate validates the CreateCarOfferRequest
func (req *CreateCarOfferRequest) Validate() error {
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		return errors.New("discount_percentage must be between 0 and 100")
	}

	if (req.StartDate == nil) != (req.EndDate == nil) {
		return errors.New("start_date and end_date must be provided together")
	}

	if req.Currency == "" {
		req.Currency = "USD"
	}

	return nil
}
