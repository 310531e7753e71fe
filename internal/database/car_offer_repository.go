package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/drivehub/rental-backend/internal/models"
)

// CarOfferRepository handles database operations for the car_offers table
type CarOfferRepository struct {
	db DB
}

// NewCarOfferRepository creates a new CarOfferRepository
func NewCarOfferRepository(db DB) *CarOfferRepository {
	return &CarOfferRepository{db: db}
}

const offerColumns = `id, car_id, discount_percentage, price_without_driver,
	   price_with_driver, currency, start_date, end_date, is_active, created_at, updated_at`

// Create creates a new offer for a car
func (r *CarOfferRepository) Create(req *models.CreateCarOfferRequest) (*models.CarOffer, error) {
	startDate, endDate, err := parseOfferWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := `
		INSERT INTO car_offers (id, car_id, discount_percentage, price_without_driver,
								price_with_driver, currency, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + offerColumns

	offer := &models.CarOffer{}
	err = r.db.QueryRow(query,
		uuid.New().String(), req.CarID, req.DiscountPercentage,
		req.PriceWithoutDriver, req.PriceWithDriver, req.Currency,
		startDate, endDate, isActive,
	).Scan(
		&offer.ID, &offer.CarID, &offer.DiscountPercentage, &offer.PriceWithoutDriver,
		&offer.PriceWithDriver, &offer.Currency, &offer.StartDate, &offer.EndDate,
		&offer.IsActive, &offer.CreatedAt, &offer.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	return offer, nil
}

// GetByID retrieves an offer by ID
func (r *CarOfferRepository) GetByID(id string) (*models.CarOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM car_offers WHERE id = $1`

	offer := &models.CarOffer{}
	err := r.db.QueryRow(query, id).Scan(
		&offer.ID, &offer.CarID, &offer.DiscountPercentage, &offer.PriceWithoutDriver,
		&offer.PriceWithDriver, &offer.Currency, &offer.StartDate, &offer.EndDate,
		&offer.IsActive, &offer.CreatedAt, &offer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return offer, nil
}

// GetByCarID retrieves all offers attached to a car
func (r *CarOfferRepository) GetByCarID(carID string) ([]models.CarOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM car_offers WHERE car_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}
	defer rows.Close()

	return r.scanOffers(rows)
}

// GetByCarIDs retrieves offers for a set of cars, grouped by car ID.
// Used to load a catalog page's offers in one query.
func (r *CarOfferRepository) GetByCarIDs(carIDs []string) (map[string][]models.CarOffer, error) {
	grouped := make(map[string][]models.CarOffer)
	if len(carIDs) == 0 {
		return grouped, nil
	}

	query := `SELECT ` + offerColumns + ` FROM car_offers WHERE car_id = ANY($1)`

	rows, err := r.db.Query(query, pq.Array(carIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}
	defer rows.Close()

	offers, err := r.scanOffers(rows)
	if err != nil {
		return nil, err
	}

	for _, offer := range offers {
		grouped[offer.CarID] = append(grouped[offer.CarID], offer)
	}

	return grouped, nil
}

// Update updates an offer
func (r *CarOfferRepository) Update(id string, req *models.UpdateCarOfferRequest) error {
	updates := []string{}
	args := []interface{}{id}
	argCount := 2

	if req.DiscountPercentage != nil {
		updates = append(updates, fmt.Sprintf("discount_percentage = $%d", argCount))
		args = append(args, *req.DiscountPercentage)
		argCount++
	}
	if req.PriceWithoutDriver != nil {
		updates = append(updates, fmt.Sprintf("price_without_driver = $%d", argCount))
		args = append(args, *req.PriceWithoutDriver)
		argCount++
	}
	if req.PriceWithDriver != nil {
		updates = append(updates, fmt.Sprintf("price_with_driver = $%d", argCount))
		args = append(args, *req.PriceWithDriver)
		argCount++
	}
	if req.Currency != nil {
		updates = append(updates, fmt.Sprintf("currency = $%d", argCount))
		args = append(args, *req.Currency)
		argCount++
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return fmt.Errorf("invalid start_date: %w", err)
		}
		updates = append(updates, fmt.Sprintf("start_date = $%d", argCount))
		args = append(args, startDate)
		argCount++
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return fmt.Errorf("invalid end_date: %w", err)
		}
		updates = append(updates, fmt.Sprintf("end_date = $%d", argCount))
		args = append(args, endDate)
		argCount++
	}
	if req.IsActive != nil {
		updates = append(updates, fmt.Sprintf("is_active = $%d", argCount))
		args = append(args, *req.IsActive)
		argCount++
	}

	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE car_offers SET " + strings.Join(updates, ", ") + ", updated_at = NOW() WHERE id = $1"
	_, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}

	return nil
}

// Delete removes an offer
func (r *CarOfferRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM car_offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("offer not found")
	}

	return nil
}

// scanOffers scans a result set of offer rows
func (r *CarOfferRepository) scanOffers(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]models.CarOffer, error) {
	offers := []models.CarOffer{}
	for rows.Next() {
		var offer models.CarOffer
		err := rows.Scan(
			&offer.ID, &offer.CarID, &offer.DiscountPercentage, &offer.PriceWithoutDriver,
			&offer.PriceWithDriver, &offer.Currency, &offer.StartDate, &offer.EndDate,
			&offer.IsActive, &offer.CreatedAt, &offer.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

// parseOfferWindow parses the optional YYYY-MM-DD offer window
func parseOfferWindow(start, end *string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if start != nil {
		parsed, err := time.Parse("2006-01-02", *start)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start_date: %w", err)
		}
		startDate = &parsed
	}

	if end != nil {
		parsed, err := time.Parse("2006-01-02", *end)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end_date: %w", err)
		}
		endDate = &parsed
	}

	return startDate, endDate, nil
}
