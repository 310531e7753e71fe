package models

import "time"

// Store represents a rental store that lists cars on the marketplace
type Store struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Phone     string    `json:"phone" db:"phone"`
	CityID    *string   `json:"city_id,omitempty" db:"city_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StoreSummary is the store block embedded in car listings.
// Rating and reviews are placeholder values until a review system exists.
type StoreSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
}

// Summary returns the store block embedded in listings. Rating and
// review count are fixed placeholders until reviews are collected.
func (s *Store) Summary() StoreSummary {
	return StoreSummary{
		ID:      s.ID,
		Name:    s.Name,
		Address: s.Address,
		Phone:   s.Phone,
		Rating:  4.5,
		Reviews: 50,
	}
}

// CreateStoreRequest represents the request to register a store
type CreateStoreRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	CityID  *string `json:"city_id,omitempty"`
}

// UpdateStoreRequest represents the request to update store details
type UpdateStoreRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	CityID  *string `json:"city_id,omitempty"`
}
