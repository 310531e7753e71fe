package models

import (
	"errors"
	"time"
)

// Transmission represents the gearbox type of a car
type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

// Car represents a rental car listed by a store
type Car struct {
	ID           string       `json:"id" db:"id"`
	StoreID      string       `json:"store_id" db:"store_id"`
	Brand        string       `json:"brand" db:"brand"`
	Type         string       `json:"type" db:"type"`
	Model        string       `json:"model" db:"model"`
	Year         int          `json:"year" db:"year"`
	Color        string       `json:"color" db:"color"`
	Seats        int          `json:"seats" db:"seats"`
	Transmission Transmission `json:"transmission" db:"transmission"`
	FuelType     string       `json:"fuel_type" db:"fuel_type"`
	Engine       string       `json:"engine" db:"engine"`
	ImageURLs    StringArray  `json:"image_urls" db:"image_urls"`
	Priority     int          `json:"priority" db:"priority"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

// CarPricing is the catalog price block on a listing. Rates come straight
// off the best active offer (or fixed fallbacks), per day only. Booking
// transaction pricing is computed separately by the pricing service.
type CarPricing struct {
	PerDayWithoutDriver float64 `json:"per_day_without_driver"`
	PerDayWithDriver    float64 `json:"per_day_with_driver"`
	Currency            string  `json:"currency"`
	DiscountPercentage  float64 `json:"discount_percentage"`
	HasOffer            bool    `json:"has_offer"`
}

// CarListing is the flattened response shape for catalog endpoints
type CarListing struct {
	ID           string        `json:"id"`
	StoreID      string        `json:"store_id"`
	Brand        string        `json:"brand"`
	Type         string        `json:"type"`
	Model        string        `json:"model"`
	Year         int           `json:"year"`
	Color        string        `json:"color"`
	Seats        int           `json:"seats"`
	Transmission Transmission  `json:"transmission"`
	FuelType     string        `json:"fuel_type"`
	PrimaryImage string        `json:"primary_image"`
	Images       []string      `json:"images"`
	Pricing      CarPricing    `json:"pricing"`
	Features     []string      `json:"features"`
	Store        *StoreSummary `json:"store,omitempty"`
}

// CreateCarRequest represents the request to list a new car
type CreateCarRequest struct {
	Brand        string   `json:"brand" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	Model        string   `json:"model" binding:"required"`
	Year         int      `json:"year" binding:"required"`
	Color        string   `json:"color"`
	Seats        int      `json:"seats" binding:"required,gt=0"`
	Transmission string   `json:"transmission" binding:"required"`
	FuelType     string   `json:"fuel_type" binding:"required"`
	Engine       string   `json:"engine"`
	ImageURLs    []string `json:"image_urls"`
	Priority     *int     `json:"priority,omitempty"`
}

// UpdateCarRequest represents the request to update car details
type UpdateCarRequest struct {
	Brand        *string   `json:"brand,omitempty"`
	Type         *string   `json:"type,omitempty"`
	Model        *string   `json:"model,omitempty"`
	Year         *int      `json:"year,omitempty"`
	Color        *string   `json:"color,omitempty"`
	Seats        *int      `json:"seats,omitempty"`
	Transmission *string   `json:"transmission,omitempty"`
	FuelType     *string   `json:"fuel_type,omitempty"`
	Engine       *string   `json:"engine,omitempty"`
	ImageURLs    *[]string `json:"image_urls,omitempty"`
	Priority     *int      `json:"priority,omitempty"`
}

// CarFilter carries the catalog search filters
type CarFilter struct {
	Brand        string
	Type         string
	CityID       string
	StoreID      string
	MinSeats     int
	MaxPrice     float64
	Transmission string
	FuelType     string
	Page         int
	PerPage      int
}

// Validate validates the CreateCarRequest
func (req *CreateCarRequest) Validate() error {
	transmission := Transmission(req.Transmission)
	if transmission != TransmissionManual && transmission != TransmissionAutomatic {
		return errors.New("invalid transmission: must be manual or automatic")
	}

	currentYear := time.Now().Year()
	if req.Year < 1950 || req.Year > currentYear+1 {
		return errors.New("invalid year")
	}

	if req.Seats <= 0 {
		return errors.New("seats must be greater than 0")
	}

	return nil
}
