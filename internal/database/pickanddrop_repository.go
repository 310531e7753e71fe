package database

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/drivehub/rental-backend/internal/models"
	"github.com/drivehub/rental-backend/pkg/timewindow"
)

// PickAndDropRepository handles database operations for pick-and-drop
// services and their stops. Holds *sqlx.DB because create/update replace
// the stop set transactionally.
type PickAndDropRepository struct {
	db *sqlx.DB
}

// NewPickAndDropRepository creates a new PickAndDropRepository
func NewPickAndDropRepository(db *sqlx.DB) *PickAndDropRepository {
	return &PickAndDropRepository{db: db}
}

const serviceColumns = `id, user_id, car_id, start_location, end_location,
	   pickup_city_id, pickup_area_id, dropoff_city_id, dropoff_area_id,
	   departure_time, available_spaces, driver_gender, price_per_person,
	   currency, is_active, is_everyday, created_at, updated_at`

var timeLiteral = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// castsAsTime reports whether raw is safe to cast to a SQL time.
// Shape alone is not enough: out-of-range values like "25:00" pass the
// pattern but fail the cast in Postgres.
func castsAsTime(raw string) bool {
	m := timeLiteral.FindStringSubmatch(raw)
	if m == nil {
		return false
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return false
	}
	if m[3] != "" {
		second, _ := strconv.Atoi(m[3])
		if second > 59 {
			return false
		}
	}
	return true
}

// Create publishes a new service together with its ordered stops
func (r *PickAndDropRepository) Create(userID string, req *models.CreatePickAndDropRequest, departure time.Time) (*models.PickAndDrop, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO pick_and_drop_services (id, user_id, car_id, start_location, end_location,
			pickup_city_id, pickup_area_id, dropoff_city_id, dropoff_area_id,
			departure_time, available_spaces, driver_gender, price_per_person,
			currency, is_active, is_everyday)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, true, $15)
		RETURNING ` + serviceColumns

	service := &models.PickAndDrop{}
	err = r.scanService(tx.QueryRow(query,
		uuid.New().String(), userID, req.CarID, req.StartLocation, req.EndLocation,
		req.PickupCityID, req.PickupAreaID, req.DropoffCityID, req.DropoffAreaID,
		departure, req.AvailableSpaces, req.DriverGender, req.PricePerPerson,
		req.Currency, req.IsEveryday,
	), service)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	service.Stops, err = r.insertStops(tx, service.ID, req.Stops)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return service, nil
}

// Update rewrites a service's fields and replaces its entire stop set.
// Stops are never edited in place: the posted array is the new truth.
func (r *PickAndDropRepository) Update(id string, req *models.CreatePickAndDropRequest, departure time.Time) (*models.PickAndDrop, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE pick_and_drop_services
		SET car_id = $2, start_location = $3, end_location = $4,
			pickup_city_id = $5, pickup_area_id = $6,
			dropoff_city_id = $7, dropoff_area_id = $8,
			departure_time = $9, available_spaces = $10, driver_gender = $11,
			price_per_person = $12, currency = $13, is_everyday = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + serviceColumns

	service := &models.PickAndDrop{}
	err = r.scanService(tx.QueryRow(query,
		id, req.CarID, req.StartLocation, req.EndLocation,
		req.PickupCityID, req.PickupAreaID, req.DropoffCityID, req.DropoffAreaID,
		departure, req.AvailableSpaces, req.DriverGender, req.PricePerPerson,
		req.Currency, req.IsEveryday,
	), service)
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	if _, err = tx.Exec(`DELETE FROM pick_and_drop_stops WHERE service_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to clear stops: %w", err)
	}

	service.Stops, err = r.insertStops(tx, id, req.Stops)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return service, nil
}

// insertStops inserts the posted stop array in order
func (r *PickAndDropRepository) insertStops(tx *sqlx.Tx, serviceID string, stops []models.StopInput) ([]models.PickAndDropStop, error) {
	inserted := []models.PickAndDropStop{}

	for i, input := range stops {
		var stopTime *time.Time
		if input.StopTime != nil {
			parsed, err := time.Parse(time.RFC3339, *input.StopTime)
			if err != nil {
				return nil, fmt.Errorf("invalid stop_time at position %d: %w", i, err)
			}
			stopTime = &parsed
		}

		query := `
			INSERT INTO pick_and_drop_stops (id, service_id, location, city_id, area_id, stop_time, stop_order, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, service_id, location, city_id, area_id, stop_time, stop_order, notes, created_at
		`

		var stop models.PickAndDropStop
		err := tx.QueryRow(query,
			uuid.New().String(), serviceID, input.Location, input.CityID,
			input.AreaID, stopTime, i, input.Notes,
		).Scan(
			&stop.ID, &stop.ServiceID, &stop.Location, &stop.CityID,
			&stop.AreaID, &stop.StopTime, &stop.StopOrder, &stop.Notes, &stop.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert stop %d: %w", i, err)
		}

		inserted = append(inserted, stop)
	}

	return inserted, nil
}

// GetByID retrieves a service with its ordered stops
func (r *PickAndDropRepository) GetByID(id string) (*models.PickAndDrop, error) {
	query := `SELECT ` + serviceColumns + ` FROM pick_and_drop_services WHERE id = $1`

	service := &models.PickAndDrop{}
	if err := r.scanService(r.db.QueryRow(query, id), service); err != nil {
		return nil, err
	}

	stops, err := r.getStops([]string{id})
	if err != nil {
		return nil, err
	}
	service.Stops = stops[id]
	if service.Stops == nil {
		service.Stops = []models.PickAndDropStop{}
	}

	return service, nil
}

// Delete removes a service; stops go with it via cascade
func (r *PickAndDropRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM pick_and_drop_services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("service not found")
	}

	return nil
}

// List searches active services with the public filters, including the
// ±1 hour time-of-day window, ordered by departure time ascending.
func (r *PickAndDropRepository) List(filter models.PickAndDropFilter) ([]models.PickAndDrop, int, error) {
	conditions := []string{"is_active = true"}
	args := []interface{}{}
	argCount := 1

	if filter.StartLocation != "" {
		conditions = append(conditions, fmt.Sprintf("start_location ILIKE $%d", argCount))
		args = append(args, "%"+filter.StartLocation+"%")
		argCount++
	}
	if filter.EndLocation != "" {
		conditions = append(conditions, fmt.Sprintf("end_location ILIKE $%d", argCount))
		args = append(args, "%"+filter.EndLocation+"%")
		argCount++
	}
	if filter.DriverGender != "" {
		conditions = append(conditions, fmt.Sprintf("driver_gender = $%d", argCount))
		args = append(args, filter.DriverGender)
		argCount++
	}
	if filter.MinSpaces > 0 {
		conditions = append(conditions, fmt.Sprintf("available_spaces >= $%d", argCount))
		args = append(args, filter.MinSpaces)
		argCount++
	}
	if filter.DepartureDate != "" {
		conditions = append(conditions, fmt.Sprintf("(is_everyday = true OR departure_time::date = $%d)", argCount))
		args = append(args, filter.DepartureDate)
		argCount++
	}
	if filter.DepartureTime != "" {
		clause, clauseArgs := windowClause(timewindow.Parse(filter.DepartureTime), argCount)
		if clause != "" {
			conditions = append(conditions, clause)
			args = append(args, clauseArgs...)
			argCount += len(clauseArgs)
		}
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM pick_and_drop_services"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	offset := (filter.Page - 1) * filter.PerPage
	query := fmt.Sprintf("SELECT "+serviceColumns+" FROM pick_and_drop_services"+where+
		" ORDER BY departure_time ASC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.PerPage, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services, err := r.scanServices(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachStops(services); err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

// ListByUserID retrieves a driver's own services, latest departure first
func (r *PickAndDropRepository) ListByUserID(userID string, page, perPage int) ([]models.PickAndDrop, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM pick_and_drop_services WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	offset := (page - 1) * perPage
	query := `SELECT ` + serviceColumns + ` FROM pick_and_drop_services
		WHERE user_id = $1 ORDER BY departure_time DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(query, userID, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services, err := r.scanServices(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachStops(services); err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

// windowClause translates a time window into a SQL predicate on the
// departure time-of-day. Fallback windows degrade to a one-sided filter
// when the raw input still casts as a time, and drop the filter entirely
// otherwise rather than failing the query.
func windowClause(w timewindow.Window, argCount int) (string, []interface{}) {
	if w.Fallback {
		if !castsAsTime(w.Raw) {
			return "", nil
		}
		return fmt.Sprintf("departure_time::time >= $%d::time", argCount), []interface{}{w.Raw}
	}

	if w.Wraps {
		return fmt.Sprintf("(departure_time::time >= $%d::time OR departure_time::time <= $%d::time)", argCount, argCount+1),
			[]interface{}{w.Lower.String(), w.Upper.String()}
	}

	return fmt.Sprintf("departure_time::time BETWEEN $%d::time AND $%d::time", argCount, argCount+1),
		[]interface{}{w.Lower.String(), w.Upper.String()}
}

// attachStops loads and attaches the ordered stops for a page of services
func (r *PickAndDropRepository) attachStops(services []models.PickAndDrop) error {
	if len(services) == 0 {
		return nil
	}

	ids := make([]string, len(services))
	for i := range services {
		ids[i] = services[i].ID
	}

	grouped, err := r.getStops(ids)
	if err != nil {
		return err
	}

	for i := range services {
		services[i].Stops = grouped[services[i].ID]
		if services[i].Stops == nil {
			services[i].Stops = []models.PickAndDropStop{}
		}
	}

	return nil
}

// getStops loads stops for a set of services, grouped by service ID
func (r *PickAndDropRepository) getStops(serviceIDs []string) (map[string][]models.PickAndDropStop, error) {
	query := `
		SELECT id, service_id, location, city_id, area_id, stop_time, stop_order, notes, created_at
		FROM pick_and_drop_stops
		WHERE service_id = ANY($1)
		ORDER BY service_id, stop_order
	`

	rows, err := r.db.Query(query, pq.Array(serviceIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stops: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]models.PickAndDropStop)
	for rows.Next() {
		var stop models.PickAndDropStop
		err := rows.Scan(
			&stop.ID, &stop.ServiceID, &stop.Location, &stop.CityID,
			&stop.AreaID, &stop.StopTime, &stop.StopOrder, &stop.Notes, &stop.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stop: %w", err)
		}
		grouped[stop.ServiceID] = append(grouped[stop.ServiceID], stop)
	}

	return grouped, rows.Err()
}

// scanService scans a single service row
func (r *PickAndDropRepository) scanService(row interface {
	Scan(dest ...interface{}) error
}, service *models.PickAndDrop) error {
	return row.Scan(
		&service.ID, &service.UserID, &service.CarID, &service.StartLocation,
		&service.EndLocation, &service.PickupCityID, &service.PickupAreaID,
		&service.DropoffCityID, &service.DropoffAreaID, &service.DepartureTime,
		&service.AvailableSpaces, &service.DriverGender, &service.PricePerPerson,
		&service.Currency, &service.IsActive, &service.IsEveryday,
		&service.CreatedAt, &service.UpdatedAt,
	)
}

// scanServices scans a result set of service rows
func (r *PickAndDropRepository) scanServices(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]models.PickAndDrop, error) {
	services := []models.PickAndDrop{}
	for rows.Next() {
		var service models.PickAndDrop
		if err := r.scanService(rows, &service); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, service)
	}
	return services, rows.Err()
}
