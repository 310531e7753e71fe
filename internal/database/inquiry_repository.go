package database

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/drivehub/rental-backend/internal/models"
)

// InquiryRepository handles database operations for customer inquiries
type InquiryRepository struct {
	db DB
}

// NewInquiryRepository creates a new InquiryRepository
func NewInquiryRepository(db DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

const inquiryColumns = `id, store_id, user_id, car_id, subject, message, status, reply, created_at, updated_at`

// Create records a new inquiry from a customer to a store
func (r *InquiryRepository) Create(userID string, req *models.CreateInquiryRequest) (*models.Inquiry, error) {
	query := `
		INSERT INTO inquiries (id, store_id, user_id, car_id, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'open')
		RETURNING ` + inquiryColumns

	inquiry := &models.Inquiry{}
	err := r.db.QueryRow(query,
		uuid.New().String(), req.StoreID, userID, req.CarID, req.Subject, req.Message,
	).Scan(
		&inquiry.ID, &inquiry.StoreID, &inquiry.UserID, &inquiry.CarID,
		&inquiry.Subject, &inquiry.Message, &inquiry.Status, &inquiry.Reply,
		&inquiry.CreatedAt, &inquiry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	return inquiry, nil
}

// GetByID retrieves an inquiry by ID
func (r *InquiryRepository) GetByID(id string) (*models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id = $1`

	inquiry := &models.Inquiry{}
	err := r.db.QueryRow(query, id).Scan(
		&inquiry.ID, &inquiry.StoreID, &inquiry.UserID, &inquiry.CarID,
		&inquiry.Subject, &inquiry.Message, &inquiry.Status, &inquiry.Reply,
		&inquiry.CreatedAt, &inquiry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}

	return inquiry, nil
}

// ListByStoreID retrieves a store's inquiries, newest first
func (r *InquiryRepository) ListByStoreID(storeID string, page, perPage int) ([]models.Inquiry, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM inquiries WHERE store_id = $1`, storeID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	offset := (page - 1) * perPage
	query := `SELECT ` + inquiryColumns + ` FROM inquiries
		WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(query, storeID, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []models.Inquiry{}
	for rows.Next() {
		var inquiry models.Inquiry
		err := rows.Scan(
			&inquiry.ID, &inquiry.StoreID, &inquiry.UserID, &inquiry.CarID,
			&inquiry.Subject, &inquiry.Message, &inquiry.Status, &inquiry.Reply,
			&inquiry.CreatedAt, &inquiry.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inquiry)
	}

	return inquiries, total, rows.Err()
}

// Reply stores the owner's reply and marks the inquiry replied
func (r *InquiryRepository) Reply(id, reply string) (*models.Inquiry, error) {
	query := `
		UPDATE inquiries
		SET reply = $2, status = 'replied', updated_at = NOW()
		WHERE id = $1
		RETURNING ` + inquiryColumns

	inquiry := &models.Inquiry{}
	err := r.db.QueryRow(query, id, reply).Scan(
		&inquiry.ID, &inquiry.StoreID, &inquiry.UserID, &inquiry.CarID,
		&inquiry.Subject, &inquiry.Message, &inquiry.Status, &inquiry.Reply,
		&inquiry.CreatedAt, &inquiry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reply to inquiry: %w", err)
	}

	return inquiry, nil
}

// UpdateStatus sets the handling state of an inquiry
func (r *InquiryRepository) UpdateStatus(id string, status models.InquiryStatus) error {
	result, err := r.db.Exec(`UPDATE inquiries SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("inquiry not found")
	}

	return nil
}
