package models

import (
	"errors"
	"time"
)

// DriverGender represents the driver gender on a pick-and-drop service
type DriverGender string

const (
	DriverGenderMale   DriverGender = "male"
	DriverGenderFemale DriverGender = "female"
)

// PickAndDrop represents a published ride-share service with ordered stops
type PickAndDrop struct {
	ID              string       `json:"id" db:"id"`
	UserID          string       `json:"user_id" db:"user_id"`
	CarID           *string      `json:"car_id,omitempty" db:"car_id"`
	StartLocation   string       `json:"start_location" db:"start_location"`
	EndLocation     string       `json:"end_location" db:"end_location"`
	PickupCityID    *string      `json:"pickup_city_id,omitempty" db:"pickup_city_id"`
	PickupAreaID    *string      `json:"pickup_area_id,omitempty" db:"pickup_area_id"`
	DropoffCityID   *string      `json:"dropoff_city_id,omitempty" db:"dropoff_city_id"`
	DropoffAreaID   *string      `json:"dropoff_area_id,omitempty" db:"dropoff_area_id"`
	DepartureTime   time.Time    `json:"departure_time" db:"departure_time"`
	AvailableSpaces int          `json:"available_spaces" db:"available_spaces"`
	DriverGender    DriverGender `json:"driver_gender" db:"driver_gender"`
	PricePerPerson  float64      `json:"price_per_person" db:"price_per_person"`
	Currency        string       `json:"currency" db:"currency"`
	IsActive        bool         `json:"is_active" db:"is_active"`
	IsEveryday      bool         `json:"is_everyday" db:"is_everyday"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`

	Stops []PickAndDropStop `json:"stops"`
}

// PickAndDropStop represents an ordered stop on a service. The stop set
// is exclusively owned by its service and replaced wholesale on update.
type PickAndDropStop struct {
	ID        string     `json:"id" db:"id"`
	ServiceID string     `json:"service_id" db:"service_id"`
	Location  string     `json:"location" db:"location"`
	CityID    *string    `json:"city_id,omitempty" db:"city_id"`
	AreaID    *string    `json:"area_id,omitempty" db:"area_id"`
	StopTime  *time.Time `json:"stop_time,omitempty" db:"stop_time"`
	StopOrder int        `json:"stop_order" db:"stop_order"`
	Notes     *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// StopInput is a stop entry in a create/update request
type StopInput struct {
	Location string  `json:"location" binding:"required"`
	CityID   *string `json:"city_id,omitempty"`
	AreaID   *string `json:"area_id,omitempty"`
	StopTime *string `json:"stop_time,omitempty"` // RFC 3339
	Notes    *string `json:"notes,omitempty"`
}

// CreatePickAndDropRequest represents the request to publish a service
type CreatePickAndDropRequest struct {
	CarID           *string     `json:"car_id,omitempty"`
	StartLocation   string      `json:"start_location" binding:"required"`
	EndLocation     string      `json:"end_location" binding:"required"`
	PickupCityID    *string     `json:"pickup_city_id,omitempty"`
	PickupAreaID    *string     `json:"pickup_area_id,omitempty"`
	DropoffCityID   *string     `json:"dropoff_city_id,omitempty"`
	DropoffAreaID   *string     `json:"dropoff_area_id,omitempty"`
	DepartureTime   string      `json:"departure_time" binding:"required"` // RFC 3339
	AvailableSpaces int         `json:"available_spaces" binding:"required,min=1"`
	DriverGender    string      `json:"driver_gender" binding:"required"`
	PricePerPerson  float64     `json:"price_per_person" binding:"required,gt=0"`
	Currency        string      `json:"currency"`
	IsEveryday      bool        `json:"is_everyday"`
	Stops           []StopInput `json:"stops"`
}

// PickAndDropFilter carries the public search filters
type PickAndDropFilter struct {
	StartLocation string
	EndLocation   string
	DriverGender  string
	MinSpaces     int
	DepartureDate string // YYYY-MM-DD, exact match
	DepartureTime string // HH:MM, matched within a ±1 hour window
	Page          int
	PerPage       int
}

// Validate validates the CreatePickAndDropRequest and returns the parsed
// departure time.
func (r *CreatePickAndDropRequest) Validate() (time.Time, error) {
	gender := DriverGender(r.DriverGender)
	if gender != DriverGenderMale && gender != DriverGenderFemale {
		return time.Time{}, errors.New("invalid driver_gender: must be male or female")
	}

	if r.AvailableSpaces < 1 {
		return time.Time{}, errors.New("available_spaces must be at least 1")
	}

	departure, err := time.Parse(time.RFC3339, r.DepartureTime)
	if err != nil {
		return time.Time{}, errors.New("invalid departure_time: must be RFC 3339")
	}

	if r.Currency == "" {
		r.Currency = "USD"
	}

	return departure, nil
}
