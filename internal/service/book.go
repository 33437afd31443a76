// Package service provides the business logic layer for books, customers, and loans.
package service

import (
	"context"
	"log/slog"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/errors"
	"github.com/openshelf/openshelf-server/internal/store"
	"github.com/openshelf/openshelf-server/internal/validation"
)

// BookService orchestrates book operations.
type BookService struct {
	store    store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, validate *validation.Validator, logger *slog.Logger) *BookService {
	return &BookService{
		store:    store,
		validate: validate,
		logger:   logger,
	}
}

// CreateBookParams carries the fields for creating a book.
type CreateBookParams struct {
	Name          string          `json:"name" validate:"required"`
	Author        string          `json:"author" validate:"required"`
	Term          domain.LoanTerm `json:"type" validate:"required"`
	YearPublished *int            `json:"year_published"`
}

// CreateBook validates and persists a new book. New books start available.
func (s *BookService) CreateBook(ctx context.Context, params CreateBookParams) (*domain.Book, error) {
	if err := s.validate.Validate(params); err != nil {
		return nil, err
	}

	book := &domain.Book{
		Name:          params.Name,
		Author:        params.Author,
		YearPublished: params.YearPublished,
		Term:          params.Term,
		IsAvailable:   true,
	}
	if err := book.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book created", "id", book.ID, "name", book.Name, "term", book.Term.String())
	return book, nil
}

// GetBook retrieves a single book by ID.
func (s *BookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.store.GetBook(ctx, id)
}

// ListBooks returns all books.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.store.ListBooks(ctx)
}

// UpdateBookParams carries the optional fields for a merge-patch update.
// Nil means "leave unchanged".
type UpdateBookParams struct {
	Name          *string          `json:"name"`
	Author        *string          `json:"author"`
	Term          *domain.LoanTerm `json:"type"`
	YearPublished *int             `json:"year_published"`
}

// UpdateBook applies a merge-patch update to a book. The term is validated
// before any other field is applied so an invalid term never reaches the
// store alongside otherwise-valid changes. Availability is derived state and
// cannot be set here.
func (s *BookService) UpdateBook(ctx context.Context, id int64, params UpdateBookParams) (*domain.Book, error) {
	if params.Term != nil && !params.Term.Valid() {
		return nil, errors.Validationf("invalid type %d: must be 1, 2, or 3", int(*params.Term))
	}

	book, err := s.store.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Term != nil {
		book.Term = *params.Term
	}
	if params.Name != nil {
		book.Name = *params.Name
	}
	if params.Author != nil {
		book.Author = *params.Author
	}
	if params.YearPublished != nil {
		book.YearPublished = params.YearPublished
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book updated", "id", book.ID)
	return book, nil
}

// DeleteBook removes a book and all loans referencing it, atomically.
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.store.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.logger.Info("book deleted", "id", id)
	return nil
}
