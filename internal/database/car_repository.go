package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/drivehub/rental-backend/internal/models"
)

// CarRepository handles database operations for the cars table
type CarRepository struct {
	db DB
}

// NewCarRepository creates a new CarRepository
func NewCarRepository(db DB) *CarRepository {
	return &CarRepository{db: db}
}

const carColumns = `id, store_id, brand, type, model, year, color, seats,
	   transmission, fuel_type, engine, image_urls, priority, created_at, updated_at`

// Create lists a new car for a store
func (r *CarRepository) Create(storeID string, req *models.CreateCarRequest) (*models.Car, error) {
	priority := 0
	if req.Priority != nil {
		priority = *req.Priority
	}

	query := `
		INSERT INTO cars (id, store_id, brand, type, model, year, color, seats,
						  transmission, fuel_type, engine, image_urls, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + carColumns

	car := &models.Car{}
	err := r.scanCar(r.db.QueryRow(query,
		uuid.New().String(), storeID, req.Brand, req.Type, req.Model, req.Year,
		req.Color, req.Seats, req.Transmission, req.FuelType, req.Engine,
		pq.Array(req.ImageURLs), priority,
	), car)
	if err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	return car, nil
}

// GetByID retrieves a car by ID
func (r *CarRepository) GetByID(id string) (*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car := &models.Car{}
	if err := r.scanCar(r.db.QueryRow(query, id), car); err != nil {
		return nil, err
	}

	return car, nil
}

// GetByStoreID retrieves all cars listed by a store
func (r *CarRepository) GetByStoreID(storeID string) ([]models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE store_id = $1 ORDER BY priority DESC, created_at DESC`

	rows, err := r.db.Query(query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cars: %w", err)
	}
	defer rows.Close()

	return r.scanCars(rows)
}

// List retrieves a filtered, paginated catalog page and the total count
// of matching cars. Catalog ordering is priority first, newest second.
func (r *CarRepository) List(filter models.CarFilter) ([]models.Car, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argCount := 1

	if filter.Brand != "" {
		conditions = append(conditions, fmt.Sprintf("brand = $%d", argCount))
		args = append(args, filter.Brand)
		argCount++
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argCount))
		args = append(args, filter.Type)
		argCount++
	}
	if filter.StoreID != "" {
		conditions = append(conditions, fmt.Sprintf("store_id = $%d", argCount))
		args = append(args, filter.StoreID)
		argCount++
	}
	if filter.CityID != "" {
		conditions = append(conditions, fmt.Sprintf("store_id IN (SELECT id FROM stores WHERE city_id = $%d)", argCount))
		args = append(args, filter.CityID)
		argCount++
	}
	if filter.MinSeats > 0 {
		conditions = append(conditions, fmt.Sprintf("seats >= $%d", argCount))
		args = append(args, filter.MinSeats)
		argCount++
	}
	if filter.Transmission != "" {
		conditions = append(conditions, fmt.Sprintf("transmission = $%d", argCount))
		args = append(args, filter.Transmission)
		argCount++
	}
	if filter.FuelType != "" {
		conditions = append(conditions, fmt.Sprintf("fuel_type = $%d", argCount))
		args = append(args, filter.FuelType)
		argCount++
	}
	if filter.MaxPrice > 0 {
		// Catalog price is the best active offer's per-day rate, where
		// best means highest discount among offers whose date window
		// covers now. Cars with no such offer price at the fixed
		// fallback rate.
		conditions = append(conditions, fmt.Sprintf(
			`COALESCE((SELECT o.price_without_driver FROM car_offers o
			  WHERE o.car_id = cars.id AND o.is_active = true
			    AND (o.start_date IS NULL OR o.start_date <= NOW())
			    AND (o.end_date IS NULL OR o.end_date >= NOW())
			  ORDER BY o.discount_percentage DESC LIMIT 1), 150) <= $%d`, argCount))
		args = append(args, filter.MaxPrice)
		argCount++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM cars" + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	offset := (filter.Page - 1) * filter.PerPage
	query := fmt.Sprintf("SELECT "+carColumns+" FROM cars"+where+
		" ORDER BY priority DESC, created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.PerPage, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cars: %w", err)
	}
	defer rows.Close()

	cars, err := r.scanCars(rows)
	if err != nil {
		return nil, 0, err
	}

	return cars, total, nil
}

// Update updates car details
func (r *CarRepository) Update(id string, req *models.UpdateCarRequest) error {
	updates := []string{}
	args := []interface{}{id}
	argCount := 2

	if req.Brand != nil {
		updates = append(updates, fmt.Sprintf("brand = $%d", argCount))
		args = append(args, *req.Brand)
		argCount++
	}
	if req.Type != nil {
		updates = append(updates, fmt.Sprintf("type = $%d", argCount))
		args = append(args, *req.Type)
		argCount++
	}
	if req.Model != nil {
		updates = append(updates, fmt.Sprintf("model = $%d", argCount))
		args = append(args, *req.Model)
		argCount++
	}
	if req.Year != nil {
		updates = append(updates, fmt.Sprintf("year = $%d", argCount))
		args = append(args, *req.Year)
		argCount++
	}
	if req.Color != nil {
		updates = append(updates, fmt.Sprintf("color = $%d", argCount))
		args = append(args, *req.Color)
		argCount++
	}
	if req.Seats != nil {
		updates = append(updates, fmt.Sprintf("seats = $%d", argCount))
		args = append(args, *req.Seats)
		argCount++
	}
	if req.Transmission != nil {
		updates = append(updates, fmt.Sprintf("transmission = $%d", argCount))
		args = append(args, *req.Transmission)
		argCount++
	}
	if req.FuelType != nil {
		updates = append(updates, fmt.Sprintf("fuel_type = $%d", argCount))
		args = append(args, *req.FuelType)
		argCount++
	}
	if req.Engine != nil {
		updates = append(updates, fmt.Sprintf("engine = $%d", argCount))
		args = append(args, *req.Engine)
		argCount++
	}
	if req.ImageURLs != nil {
		updates = append(updates, fmt.Sprintf("image_urls = $%d", argCount))
		args = append(args, pq.Array(*req.ImageURLs))
		argCount++
	}
	if req.Priority != nil {
		updates = append(updates, fmt.Sprintf("priority = $%d", argCount))
		args = append(args, *req.Priority)
		argCount++
	}

	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE cars SET " + strings.Join(updates, ", ") + ", updated_at = NOW() WHERE id = $1"
	_, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}

	return nil
}

// Delete removes a car listing
func (r *CarRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("car not found")
	}

	return nil
}

// scanCar scans a single car row
func (r *CarRepository) scanCar(row interface {
	Scan(dest ...interface{}) error
}, car *models.Car) error {
	return row.Scan(
		&car.ID, &car.StoreID, &car.Brand, &car.Type, &car.Model, &car.Year,
		&car.Color, &car.Seats, &car.Transmission, &car.FuelType, &car.Engine,
		&car.ImageURLs, &car.Priority, &car.CreatedAt, &car.UpdatedAt,
	)
}

// scanCars scans a result set of car rows
func (r *CarRepository) scanCars(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]models.Car, error) {
	cars := []models.Car{}
	for rows.Next() {
		var car models.Car
		if err := r.scanCar(rows, &car); err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}
