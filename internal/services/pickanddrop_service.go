package services

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/drivehub/rental-backend/internal/database"
	"github.com/drivehub/rental-backend/internal/models"
)

// ErrNotServiceOwner is returned when a driver touches a service they
// did not publish.
var ErrNotServiceOwner = errors.New("service belongs to another user")

// PickAndDropService handles business logic for ride-share services
type PickAndDropService struct {
	services *database.PickAndDropRepository
	logger   *logrus.Logger
}

// NewPickAndDropService creates a new pick-and-drop service
func NewPickAndDropService(services *database.PickAndDropRepository, logger *logrus.Logger) *PickAndDropService {
	return &PickAndDropService{services: services, logger: logger}
}

// Publish validates and publishes a new service with its stops
func (s *PickAndDropService) Publish(userID string, req *models.CreatePickAndDropRequest) (*models.PickAndDrop, error) {
	departure, err := req.Validate()
	if err != nil {
		return nil, err
	}

	service, err := s.services.Create(userID, req, departure)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"service_id": service.ID,
		"user_id":    userID,
		"route":      service.StartLocation + " -> " + service.EndLocation,
	}).Info("Pick-and-drop service published")

	return service, nil
}

// Update rewrites a service the caller owns, replacing its stop set
func (s *PickAndDropService) Update(id, userID string, req *models.CreatePickAndDropRequest) (*models.PickAndDrop, error) {
	departure, err := req.Validate()
	if err != nil {
		return nil, err
	}

	existing, err := s.services.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrNotServiceOwner
	}

	return s.services.Update(id, req, departure)
}

// Delete removes a service the caller owns
func (s *PickAndDropService) Delete(id, userID string) error {
	existing, err := s.services.GetByID(id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotServiceOwner
	}

	return s.services.Delete(id)
}

// Get retrieves a single service with its stops
func (s *PickAndDropService) Get(id string) (*models.PickAndDrop, error) {
	return s.services.GetByID(id)
}

// Search runs the public search across active services. A requested
// departure time matches services departing within an hour either side.
func (s *PickAndDropService) Search(filter models.PickAndDropFilter) (models.Page, error) {
	services, total, err := s.services.List(filter)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(services, filter.Page, filter.PerPage, len(services), total), nil
}

// MyServices pages through the caller's own published services
func (s *PickAndDropService) MyServices(userID string, page, perPage int) (models.Page, error) {
	services, total, err := s.services.ListByUserID(userID, page, perPage)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(services, page, perPage, len(services), total), nil
}
