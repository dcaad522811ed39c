package services

import (
	"context"
	"fmt"

	"github.com/admanager/admanager-backend/internal/models"
	"github.com/admanager/admanager-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerService handles the businesses a user runs campaigns for.
type CustomerService struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// Create creates a customer for the user.
func (s *CustomerService) Create(ctx context.Context, userID string, req *models.CustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		UserID:      userID,
		Name:        req.Name,
		WebsiteURL:  req.WebsiteURL,
		PhoneNumber: req.PhoneNumber,
		Sector:      req.Sector,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// List returns the user's customers.
func (s *CustomerService) List(ctx context.Context, userID string) ([]*models.Customer, error) {
	return s.customerRepo.FindByUserID(ctx, userID)
}

// Get returns a customer if it exists and belongs to the user.
func (s *CustomerService) Get(ctx context.Context, userID string, id primitive.ObjectID) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil || customer.UserID != userID {
		return nil, ErrNotFound
	}
	return customer, nil
}

// Update overwrites the editable fields of a customer.
func (s *CustomerService) Update(ctx context.Context, userID string, id primitive.ObjectID, req *models.CustomerRequest) (*models.Customer, error) {
	customer, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.WebsiteURL = req.WebsiteURL
	customer.PhoneNumber = req.PhoneNumber
	customer.Sector = req.Sector

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

// Delete removes a customer.
func (s *CustomerService) Delete(ctx context.Context, userID string, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}
