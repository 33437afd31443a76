package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/service"
)

func (s *Server) registerCustomerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createCustomer",
		Method:        http.MethodPost,
		Path:          "/createCustomer",
		Summary:       "Create customer",
		Description:   "Creates a new customer",
		Tags:          []string{"Customers"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateCustomer)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCustomers",
		Method:      http.MethodGet,
		Path:        "/listCustomers",
		Summary:     "List customers",
		Description: "Returns all customers ordered by ID",
		Tags:        []string{"Customers"},
	}, s.handleListCustomers)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCustomer",
		Method:      http.MethodPut,
		Path:        "/updateCustomer/{id}",
		Summary:     "Update customer",
		Description: "Applies the supplied fields to a customer; omitted fields are left unchanged",
		Tags:        []string{"Customers"},
	}, s.handleUpdateCustomer)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCustomer",
		Method:      http.MethodDelete,
		Path:        "/deleteCustomer/{id}",
		Summary:     "Delete customer",
		Description: "Deletes a customer and every loan that references them",
		Tags:        []string{"Customers"},
	}, s.handleDeleteCustomer)
}

// === DTOs ===

// CustomerResponse contains customer data in API responses.
type CustomerResponse struct {
	ID   int64   `json:"id" doc:"Customer ID"`
	Name string  `json:"name" doc:"Full name"`
	City *string `json:"city" doc:"City of residence"`
	Age  *int    `json:"age" doc:"Age in years"`
}

func toCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:   c.ID,
		Name: c.Name,
		City: c.City,
		Age:  c.Age,
	}
}

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Name string   `json:"name" doc:"Full name"`
	City *string  `json:"city,omitempty" doc:"City of residence"`
	Age  *FlexInt `json:"age,omitempty" doc:"Age in years. Numeric strings are accepted."`
}

// CreateCustomerInput wraps the create customer request for Huma.
type CreateCustomerInput struct {
	Body CreateCustomerRequest
}

// CustomerOutput wraps a single customer response for Huma.
type CustomerOutput struct {
	Body CustomerResponse
}

// ListCustomersResponse contains a list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers" doc:"All customers"`
}

// ListCustomersOutput wraps the list customers response for Huma.
type ListCustomersOutput struct {
	Body ListCustomersResponse
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Name *string  `json:"name,omitempty" doc:"Full name"`
	City *string  `json:"city,omitempty" doc:"City of residence"`
	Age  *FlexInt `json:"age,omitempty" doc:"Age in years"`
}

// UpdateCustomerInput wraps the update customer request for Huma.
type UpdateCustomerInput struct {
	ID   int64 `path:"id" doc:"Customer ID"`
	Body UpdateCustomerRequest
}

// DeleteCustomerInput contains parameters for deleting a customer.
type DeleteCustomerInput struct {
	ID int64 `path:"id" doc:"Customer ID"`
}

// === Handlers ===

func (s *Server) handleCreateCustomer(ctx context.Context, input *CreateCustomerInput) (*CustomerOutput, error) {
	customer, err := s.services.Customer.CreateCustomer(ctx, service.CreateCustomerParams{
		Name: input.Body.Name,
		City: input.Body.City,
		Age:  input.Body.Age.IntPtr(),
	})
	if err != nil {
		return nil, err
	}

	return &CustomerOutput{Body: toCustomerResponse(customer)}, nil
}

func (s *Server) handleListCustomers(ctx context.Context, _ *struct{}) (*ListCustomersOutput, error) {
	customers, err := s.services.Customer.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toCustomerResponse(c)
	}

	return &ListCustomersOutput{Body: ListCustomersResponse{Customers: resp}}, nil
}

func (s *Server) handleUpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*CustomerOutput, error) {
	customer, err := s.services.Customer.UpdateCustomer(ctx, input.ID, service.UpdateCustomerParams{
		Name: input.Body.Name,
		City: input.Body.City,
		Age:  input.Body.Age.IntPtr(),
	})
	if err != nil {
		return nil, err
	}

	return &CustomerOutput{Body: toCustomerResponse(customer)}, nil
}

func (s *Server) handleDeleteCustomer(ctx context.Context, input *DeleteCustomerInput) (*MessageOutput, error) {
	if err := s.services.Customer.DeleteCustomer(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Customer deleted"}}, nil
}
