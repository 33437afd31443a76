// Package store defines the persistence interface for the OpenShelf server.
package store

import (
	"context"

	"github.com/openshelf/openshelf-server/internal/domain"
)

// Store abstracts relational persistence for books, customers, and loans.
// Implementations must keep Book.IsAvailable consistent with loan state
// inside the same transaction as any loan mutation, and must perform
// cascade deletes atomically.
type Store interface {
	// Books.
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	// DeleteBook removes the book and every loan referencing it in one
	// transaction. Returns ErrBookNotFound if the book is absent.
	DeleteBook(ctx context.Context, id int64) error

	// Customers.
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	// DeleteCustomer removes the customer and every loan referencing them
	// in one transaction, recomputing availability for affected books.
	DeleteCustomer(ctx context.Context, id int64) error

	// Loans.
	CreateLoan(ctx context.Context, loan *domain.Loan) error
	GetLoan(ctx context.Context, id int64) (*domain.Loan, error)
	ListLoans(ctx context.Context) ([]*domain.Loan, error)
	ListLoansForBook(ctx context.Context, bookID int64) ([]*domain.Loan, error)
	UpdateLoan(ctx context.Context, loan *domain.Loan) error
	DeleteLoan(ctx context.Context, id int64) error

	// HasOpenLoan reports whether the book has an open loan other than
	// excludeLoanID (pass 0 to consider all loans).
	HasOpenLoan(ctx context.Context, bookID, excludeLoanID int64) (bool, error)

	// Reset drops all tables and recreates the schema. Used by the
	// fixture loader behind /initModels.
	Reset(ctx context.Context) error

	Close() error
}
