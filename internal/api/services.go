package api

import (
	"github.com/openshelf/openshelf-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Book     *service.BookService
	Customer *service.CustomerService
	Loan     *service.LoanService
	Admin    *service.AdminService
}
