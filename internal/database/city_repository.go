package database

import (
	"fmt"

	"github.com/drivehub/rental-backend/internal/models"
)

// CityRepository handles database operations for cities and areas
type CityRepository struct {
	db DB
}

// NewCityRepository creates a new CityRepository
func NewCityRepository(db DB) *CityRepository {
	return &CityRepository{db: db}
}

// ListCities retrieves all cities ordered by name
func (r *CityRepository) ListCities() ([]models.City, error) {
	query := `SELECT id, name, created_at FROM cities ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		var city models.City
		if err := rows.Scan(&city.ID, &city.Name, &city.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}

	return cities, rows.Err()
}

// ListAreasByCity retrieves all areas in a city ordered by name
func (r *CityRepository) ListAreasByCity(cityID string) ([]models.Area, error) {
	query := `SELECT id, city_id, name, created_at FROM areas WHERE city_id = $1 ORDER BY name`

	rows, err := r.db.Query(query, cityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	defer rows.Close()

	areas := []models.Area{}
	for rows.Next() {
		var area models.Area
		if err := rows.Scan(&area.ID, &area.CityID, &area.Name, &area.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan area: %w", err)
		}
		areas = append(areas, area)
	}

	return areas, rows.Err()
}
