package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/createBook",
		Summary:       "Create book",
		Description:   "Creates a new book. New books start available.",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/listBooks",
		Summary:     "List books",
		Description: "Returns all books ordered by ID",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/updateBook/{id}",
		Summary:     "Update book",
		Description: "Applies the supplied fields to a book; omitted fields are left unchanged",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/deleteBook/{id}",
		Summary:     "Delete book",
		Description: "Deletes a book and every loan that references it",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID            int64  `json:"id" doc:"Book ID"`
	Name          string `json:"name" doc:"Title"`
	Author        string `json:"author" doc:"Author"`
	YearPublished *int   `json:"year_published" doc:"Year of publication"`
	Type          int    `json:"type" doc:"Loan term: 1, 2 or 3; caps the loan duration at 10, 5 or 2 days"`
	IsAvailable   bool   `json:"is_available" doc:"Whether the book can be loaned out"`
}

func toBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Name:          b.Name,
		Author:        b.Author,
		YearPublished: b.YearPublished,
		Type:          int(b.Term),
		IsAvailable:   b.IsAvailable,
	}
}

// CreateBookRequest is the request body for creating a book.
type CreateBookRequest struct {
	Name          string   `json:"name" doc:"Title"`
	Author        string   `json:"author" doc:"Author"`
	Type          FlexInt  `json:"type" doc:"Loan term: 1, 2 or 3. Numeric strings are accepted."`
	YearPublished *FlexInt `json:"year_published,omitempty" doc:"Year of publication"`
}

// CreateBookInput wraps the create book request for Huma.
type CreateBookInput struct {
	Body CreateBookRequest
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// ListBooksResponse contains a list of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"All books"`
}

// ListBooksOutput wraps the list books response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// UpdateBookRequest is the request body for updating a book.
// Availability is derived from open loans and cannot be set here.
type UpdateBookRequest struct {
	Name          *string  `json:"name,omitempty" doc:"Title"`
	Author        *string  `json:"author,omitempty" doc:"Author"`
	Type          *FlexInt `json:"type,omitempty" doc:"Loan term: 1, 2 or 3"`
	YearPublished *FlexInt `json:"year_published,omitempty" doc:"Year of publication"`
}

// UpdateBookInput wraps the update book request for Huma.
type UpdateBookInput struct {
	ID   int64 `path:"id" doc:"Book ID"`
	Body UpdateBookRequest
}

// DeleteBookInput contains parameters for deleting a book.
type DeleteBookInput struct {
	ID int64 `path:"id" doc:"Book ID"`
}

// === Handlers ===

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	book, err := s.services.Book.CreateBook(ctx, service.CreateBookParams{
		Name:          input.Body.Name,
		Author:        input.Body.Author,
		Term:          domain.LoanTerm(input.Body.Type.Int()),
		YearPublished: input.Body.YearPublished.IntPtr(),
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books, err := s.services.Book.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = toBookResponse(b)
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: resp}}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	params := service.UpdateBookParams{
		Name:          input.Body.Name,
		Author:        input.Body.Author,
		YearPublished: input.Body.YearPublished.IntPtr(),
	}
	if input.Body.Type != nil {
		term := domain.LoanTerm(input.Body.Type.Int())
		params.Term = &term
	}

	book, err := s.services.Book.UpdateBook(ctx, input.ID, params)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*MessageOutput, error) {
	if err := s.services.Book.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Book deleted"}}, nil
}
