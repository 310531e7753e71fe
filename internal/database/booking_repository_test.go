package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivehub/rental-backend/internal/models"
)

func newBookingRepo(t *testing.T) (*BookingRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewBookingRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCountOverlapping(t *testing.T) {
	repo, mock := newBookingRepo(t)

	carID := uuid.New().String()
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	t.Run("No overlap", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
			WithArgs(carID, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		count, err := repo.CountOverlapping(carID, start, end)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Boundary touch counts as overlap", func(t *testing.T) {
		// An existing booking ending exactly at our start is a conflict
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
			WithArgs(carID, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		count, err := repo.CountOverlapping(carID, start, end)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
			WithArgs(carID, start, end).
			WillReturnError(fmt.Errorf("database error"))

		_, err := repo.CountOverlapping(carID, start, end)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count overlapping bookings")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateBooking(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)

	newBooking := func() *models.Booking {
		return &models.Booking{
			ID:           uuid.New().String(),
			CarID:        uuid.New().String(),
			UserID:       uuid.New().String(),
			StoreID:      uuid.New().String(),
			StartDate:    start,
			EndDate:      end,
			DurationType: models.DurationDaily,
			TotalPrice:   360.00,
			Status:       models.BookingStatusPending,
		}
	}

	t.Run("Success", func(t *testing.T) {
		repo, mock := newBookingRepo(t)
		booking := newBooking()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM cars WHERE id = \$1 FOR UPDATE`).
			WithArgs(booking.CarID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(booking.CarID))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
			WithArgs(booking.CarID, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(
				booking.ID, booking.CarID, booking.UserID, booking.StoreID,
				start, end, string(models.DurationDaily), 360.00,
				string(models.BookingStatusPending), nil, nil,
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectCommit()

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.Equal(t, now, booking.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Car not found", func(t *testing.T) {
		repo, mock := newBookingRepo(t)
		booking := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM cars WHERE id = \$1 FOR UPDATE`).
			WithArgs(booking.CarID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.Create(booking)
		assert.ErrorIs(t, err, ErrCarNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Overlapping booking rejected", func(t *testing.T) {
		repo, mock := newBookingRepo(t)
		booking := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM cars WHERE id = \$1 FOR UPDATE`).
			WithArgs(booking.CarID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(booking.CarID))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
			WithArgs(booking.CarID, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.Create(booking)
		assert.ErrorIs(t, err, ErrCarUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	repo, mock := newBookingRepo(t)
	id := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs(id, string(models.BookingStatusConfirmed)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(id, models.BookingStatusConfirmed)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs(id, string(models.BookingStatusConfirmed)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(id, models.BookingStatusConfirmed)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "booking not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLifecycleSweeps(t *testing.T) {
	repo, mock := newBookingRepo(t)
	now := time.Now()

	mock.ExpectExec(`UPDATE bookings SET status = 'active'`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 2))

	activated, err := repo.ActivateDueBookings(now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), activated)

	mock.ExpectExec(`UPDATE bookings SET status = 'completed'`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	completed, err := repo.CompleteFinishedBookings(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
