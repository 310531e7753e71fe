package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/drivehub/rental-backend/internal/models"
)

// StoreRepository handles database operations for the stores table
type StoreRepository struct {
	db DB
}

// NewStoreRepository creates a new StoreRepository
func NewStoreRepository(db DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// Create creates a new store for an owner
func (r *StoreRepository) Create(ownerID string, req *models.CreateStoreRequest) (*models.Store, error) {
	query := `
		INSERT INTO stores (id, owner_id, name, address, phone, city_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, owner_id, name, address, phone, city_id, created_at, updated_at
	`

	store := &models.Store{}
	err := r.db.QueryRow(query, uuid.New().String(), ownerID, req.Name, req.Address, req.Phone, req.CityID).Scan(
		&store.ID, &store.OwnerID, &store.Name, &store.Address,
		&store.Phone, &store.CityID, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

// GetByID retrieves a store by ID
func (r *StoreRepository) GetByID(id string) (*models.Store, error) {
	query := `
		SELECT id, owner_id, name, address, phone, city_id, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	store := &models.Store{}
	err := r.db.QueryRow(query, id).Scan(
		&store.ID, &store.OwnerID, &store.Name, &store.Address,
		&store.Phone, &store.CityID, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return store, nil
}

// GetByOwnerID retrieves the store owned by a user
func (r *StoreRepository) GetByOwnerID(ownerID string) (*models.Store, error) {
	query := `
		SELECT id, owner_id, name, address, phone, city_id, created_at, updated_at
		FROM stores
		WHERE owner_id = $1
	`

	store := &models.Store{}
	err := r.db.QueryRow(query, ownerID).Scan(
		&store.ID, &store.OwnerID, &store.Name, &store.Address,
		&store.Phone, &store.CityID, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Update updates store details
func (r *StoreRepository) Update(id string, req *models.UpdateStoreRequest) error {
	updates := []string{}
	args := []interface{}{id}
	argCount := 2

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *req.Name)
		argCount++
	}
	if req.Address != nil {
		updates = append(updates, fmt.Sprintf("address = $%d", argCount))
		args = append(args, *req.Address)
		argCount++
	}
	if req.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", argCount))
		args = append(args, *req.Phone)
		argCount++
	}
	if req.CityID != nil {
		updates = append(updates, fmt.Sprintf("city_id = $%d", argCount))
		args = append(args, *req.CityID)
		argCount++
	}

	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE stores SET " + strings.Join(updates, ", ") + ", updated_at = NOW() WHERE id = $1"
	_, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}

	return nil
}
