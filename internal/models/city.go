package models

import "time"

// City represents a city used to scope stores, routes and stops
type City struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Area represents a named area within a city
type Area struct {
	ID        string    `json:"id" db:"id"`
	CityID    string    `json:"city_id" db:"city_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
