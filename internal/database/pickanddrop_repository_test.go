package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivehub/rental-backend/internal/models"
)

func newPickAndDropRepo(t *testing.T) (*PickAndDropRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPickAndDropRepository(sqlx.NewDb(db, "sqlmock")), mock
}

var serviceRowColumns = []string{
	"id", "user_id", "car_id", "start_location", "end_location",
	"pickup_city_id", "pickup_area_id", "dropoff_city_id", "dropoff_area_id",
	"departure_time", "available_spaces", "driver_gender", "price_per_person",
	"currency", "is_active", "is_everyday", "created_at", "updated_at",
}

func serviceRow(id, userID string, departure time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(serviceRowColumns).AddRow(
		id, userID, nil, "Downtown", "Airport",
		nil, nil, nil, nil,
		departure, 3, "male", 12.50,
		"USD", true, false, now, now,
	)
}

func TestUpdateServiceReplacesStops(t *testing.T) {
	repo, mock := newPickAndDropRepo(t)

	serviceID := "svc-1"
	departure := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)
	req := &models.CreatePickAndDropRequest{
		StartLocation:   "Downtown",
		EndLocation:     "Airport",
		DepartureTime:   departure.Format(time.RFC3339),
		AvailableSpaces: 3,
		DriverGender:    "male",
		PricePerPerson:  12.50,
		Currency:        "USD",
		Stops: []models.StopInput{
			{Location: "Central Station"},
			{Location: "Mall"},
		},
	}

	stopColumns := []string{"id", "service_id", "location", "city_id", "area_id", "stop_time", "stop_order", "notes", "created_at"}
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE pick_and_drop_services`).
		WillReturnRows(serviceRow(serviceID, "user-1", departure))
	// The old stop set is dropped wholesale before the new one goes in
	mock.ExpectExec(`DELETE FROM pick_and_drop_stops WHERE service_id = \$1`).
		WithArgs(serviceID).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectQuery(`INSERT INTO pick_and_drop_stops`).
		WithArgs(sqlmock.AnyArg(), serviceID, "Central Station", nil, nil, nil, 0, nil).
		WillReturnRows(sqlmock.NewRows(stopColumns).AddRow(
			"stop-1", serviceID, "Central Station", nil, nil, nil, 0, nil, now))
	mock.ExpectQuery(`INSERT INTO pick_and_drop_stops`).
		WithArgs(sqlmock.AnyArg(), serviceID, "Mall", nil, nil, nil, 1, nil).
		WillReturnRows(sqlmock.NewRows(stopColumns).AddRow(
			"stop-2", serviceID, "Mall", nil, nil, nil, 1, nil, now))
	mock.ExpectCommit()

	service, err := repo.Update(serviceID, req, departure)
	require.NoError(t, err)

	require.Len(t, service.Stops, 2)
	assert.Equal(t, "Central Station", service.Stops[0].Location)
	assert.Equal(t, 0, service.Stops[0].StopOrder)
	assert.Equal(t, "Mall", service.Stops[1].Location)
	assert.Equal(t, 1, service.Stops[1].StopOrder)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateServiceInsertsOrderedStops(t *testing.T) {
	repo, mock := newPickAndDropRepo(t)

	departure := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)
	req := &models.CreatePickAndDropRequest{
		StartLocation:   "Downtown",
		EndLocation:     "Airport",
		DepartureTime:   departure.Format(time.RFC3339),
		AvailableSpaces: 3,
		DriverGender:    "male",
		PricePerPerson:  12.50,
		Currency:        "USD",
		Stops:           []models.StopInput{{Location: "Central Station"}},
	}

	stopColumns := []string{"id", "service_id", "location", "city_id", "area_id", "stop_time", "stop_order", "notes", "created_at"}
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO pick_and_drop_services`).
		WillReturnRows(serviceRow("svc-2", "user-1", departure))
	mock.ExpectQuery(`INSERT INTO pick_and_drop_stops`).
		WithArgs(sqlmock.AnyArg(), "svc-2", "Central Station", nil, nil, nil, 0, nil).
		WillReturnRows(sqlmock.NewRows(stopColumns).AddRow(
			"stop-1", "svc-2", "Central Station", nil, nil, nil, 0, nil, now))
	mock.ExpectCommit()

	service, err := repo.Create("user-1", req, departure)
	require.NoError(t, err)
	assert.Equal(t, "svc-2", service.ID)
	require.Len(t, service.Stops, 1)
	assert.Equal(t, 0, service.Stops[0].StopOrder)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListServicesDropsUnparseableTimeFilter(t *testing.T) {
	repo, mock := newPickAndDropRepo(t)

	// A garbage departure_time must not reach SQL; only is_active filters
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pick_and_drop_services WHERE is_active = true`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT (.+) FROM pick_and_drop_services WHERE is_active = true ORDER BY departure_time ASC`).
		WillReturnRows(sqlmock.NewRows(serviceRowColumns))

	services, total, err := repo.List(models.PickAndDropFilter{
		DepartureTime: "whenever",
		Page:          1,
		PerPage:       15,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, services)

	assert.NoError(t, mock.ExpectationsWereMet())
}
