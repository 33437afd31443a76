package service

import (
	"context"
	"log/slog"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/store"
	"github.com/openshelf/openshelf-server/internal/validation"
)

// CustomerService orchestrates customer operations.
type CustomerService struct {
	store    store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(store store.Store, validate *validation.Validator, logger *slog.Logger) *CustomerService {
	return &CustomerService{
		store:    store,
		validate: validate,
		logger:   logger,
	}
}

// CreateCustomerParams carries the fields for creating a customer.
type CreateCustomerParams struct {
	Name string  `json:"name" validate:"required"`
	City *string `json:"city"`
	Age  *int    `json:"age" validate:"omitempty,gte=0"`
}

// CreateCustomer validates and persists a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, params CreateCustomerParams) (*domain.Customer, error) {
	if err := s.validate.Validate(params); err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name: params.Name,
		City: params.City,
		Age:  params.Age,
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created", "id", customer.ID, "name", customer.Name)
	return customer, nil
}

// GetCustomer retrieves a single customer by ID.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

// ListCustomers returns all customers.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.store.ListCustomers(ctx)
}

// UpdateCustomerParams carries the optional fields for a merge-patch update.
type UpdateCustomerParams struct {
	Name *string `json:"name"`
	City *string `json:"city"`
	Age  *int    `json:"age" validate:"omitempty,gte=0"`
}

// UpdateCustomer applies a merge-patch update to a customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, params UpdateCustomerParams) (*domain.Customer, error) {
	if err := s.validate.Validate(params); err != nil {
		return nil, err
	}

	customer, err := s.store.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		customer.Name = *params.Name
	}
	if params.City != nil {
		customer.City = params.City
	}
	if params.Age != nil {
		customer.Age = params.Age
	}

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer updated", "id", customer.ID)
	return customer, nil
}

// DeleteCustomer removes a customer and all loans referencing them, atomically.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.store.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", "id", id)
	return nil
}
