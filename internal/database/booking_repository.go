package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/drivehub/rental-backend/internal/models"
)

// ErrCarUnavailable is returned when a booking would overlap an existing
// confirmed or active booking on the same car.
var ErrCarUnavailable = errors.New("car is not available for the requested dates")

// ErrCarNotFound is returned when the booked car does not exist.
var ErrCarNotFound = errors.New("car not found")

// BookingRepository handles database operations for the bookings table.
// It holds *sqlx.DB directly because booking creation needs transactions
// with row locks.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, car_id, user_id, store_id, start_date, end_date,
	   duration_type, total_price, status, notes, device_info, created_at, updated_at`

// CountOverlapping counts confirmed/active bookings on a car whose closed
// interval overlaps [start, end]. Boundary timestamps count as overlap.
func (r *BookingRepository) CountOverlapping(carID string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE car_id = $1
		  AND status IN ('confirmed', 'active')
		  AND start_date <= $3
		  AND end_date >= $2
	`

	var count int
	if err := r.db.QueryRow(query, carID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

// Create inserts a booking after re-checking availability inside a
// transaction that locks the car row. The lock serializes concurrent
// bookings for the same car, closing the check-then-insert race.
func (r *BookingRepository) Create(booking *models.Booking) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedID string
	err = tx.QueryRow(`SELECT id FROM cars WHERE id = $1 FOR UPDATE`, booking.CarID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCarNotFound
		}
		return fmt.Errorf("failed to lock car: %w", err)
	}

	var overlapping int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM bookings
		WHERE car_id = $1
		  AND status IN ('confirmed', 'active')
		  AND start_date <= $3
		  AND end_date >= $2
	`, booking.CarID, booking.StartDate, booking.EndDate).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check availability: %w", err)
	}
	if overlapping > 0 {
		return ErrCarUnavailable
	}

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	query := `
		INSERT INTO bookings (id, car_id, user_id, store_id, start_date, end_date,
							  duration_type, total_price, status, notes, device_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(query,
		booking.ID, booking.CarID, booking.UserID, booking.StoreID,
		booking.StartDate, booking.EndDate, booking.DurationType,
		booking.TotalPrice, booking.Status, booking.Notes, booking.DeviceInfo,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking := &models.Booking{}
	err := r.db.QueryRow(query, id).Scan(
		&booking.ID, &booking.CarID, &booking.UserID, &booking.StoreID,
		&booking.StartDate, &booking.EndDate, &booking.DurationType,
		&booking.TotalPrice, &booking.Status, &booking.Notes,
		&booking.DeviceInfo, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// ListByUserID retrieves a customer's bookings, newest first, paginated
func (r *BookingRepository) ListByUserID(userID string, page, perPage int) ([]models.Booking, int, error) {
	return r.list(`user_id = $1`, userID, page, perPage)
}

// ListByStoreID retrieves a store's bookings, newest first, paginated
func (r *BookingRepository) ListByStoreID(storeID string, page, perPage int) ([]models.Booking, int, error) {
	return r.list(`store_id = $1`, storeID, page, perPage)
}

func (r *BookingRepository) list(condition, arg string, page, perPage int) ([]models.Booking, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM bookings WHERE `+condition, arg).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	offset := (page - 1) * perPage
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + condition +
		` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(query, arg, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var booking models.Booking
		err := rows.Scan(
			&booking.ID, &booking.CarID, &booking.UserID, &booking.StoreID,
			&booking.StartDate, &booking.EndDate, &booking.DurationType,
			&booking.TotalPrice, &booking.Status, &booking.Notes,
			&booking.DeviceInfo, &booking.CreatedAt, &booking.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, total, rows.Err()
}

// UpdateStatus moves a booking to a new status
func (r *BookingRepository) UpdateStatus(id string, status models.BookingStatus) error {
	result, err := r.db.Exec(
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

// ActivateDueBookings marks confirmed bookings whose start date has
// passed as active. Used by the nightly sweep.
func (r *BookingRepository) ActivateDueBookings(now time.Time) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE bookings SET status = 'active', updated_at = NOW()
		 WHERE status = 'confirmed' AND start_date <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to activate due bookings: %w", err)
	}
	return result.RowsAffected()
}

// CompleteFinishedBookings marks active bookings whose end date has
// passed as completed. Used by the nightly sweep.
func (r *BookingRepository) CompleteFinishedBookings(now time.Time) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE bookings SET status = 'completed', updated_at = NOW()
		 WHERE status = 'active' AND end_date <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to complete finished bookings: %w", err)
	}
	return result.RowsAffected()
}
