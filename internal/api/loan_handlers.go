package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/service"
)

func (s *Server) registerLoanRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createLoan",
		Method:        http.MethodPost,
		Path:          "/createLoan",
		Summary:       "Create loan",
		Description:   "Creates a loan after checking that the customer and book exist, the dates are ordered within the book's term limit, and the book is not already out on an open loan",
		Tags:          []string{"Loans"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateLoan)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLoans",
		Method:      http.MethodGet,
		Path:        "/listLoans",
		Summary:     "List loans",
		Description: "Returns all loans ordered by ID",
		Tags:        []string{"Loans"},
	}, s.handleListLoans)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateLoan",
		Method:      http.MethodPut,
		Path:        "/updateLoan/{id}",
		Summary:     "Update loan",
		Description: "Applies the supplied fields to a loan and re-validates the merged result; omitted fields are left unchanged",
		Tags:        []string{"Loans"},
	}, s.handleUpdateLoan)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteLoan",
		Method:      http.MethodDelete,
		Path:        "/deleteLoan/{id}",
		Summary:     "Delete loan",
		Description: "Deletes a loan and recomputes the book's availability",
		Tags:        []string{"Loans"},
	}, s.handleDeleteLoan)
}

// === DTOs ===

// LoanResponse contains loan data in API responses. Dates are RFC 3339.
type LoanResponse struct {
	ID         int64      `json:"id" doc:"Loan ID"`
	CustomerID int64      `json:"customer_id" doc:"Borrowing customer"`
	BookID     int64      `json:"book_id" doc:"Loaned book"`
	LoanDate   time.Time  `json:"loan_date" doc:"When the loan started"`
	ReturnDate *time.Time `json:"return_date" doc:"When the book was returned, null while the loan is open"`
}

func toLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:         l.ID,
		CustomerID: l.CustomerID,
		BookID:     l.BookID,
		LoanDate:   l.LoanDate,
		ReturnDate: l.ReturnDate,
	}
}

// CreateLoanRequest is the request body for creating a loan.
type CreateLoanRequest struct {
	CustomerID FlexInt   `json:"customer_id" doc:"Borrowing customer"`
	BookID     FlexInt   `json:"book_id" doc:"Book to loan out"`
	LoanDate   FlexTime  `json:"loan_date" doc:"Loan start. Accepts RFC 3339 and 'YYYY-MM-DD HH:MM' forms."`
	ReturnDate *FlexTime `json:"return_date,omitempty" doc:"Return time; omit or null for an open loan"`
}

// CreateLoanInput wraps the create loan request for Huma.
type CreateLoanInput struct {
	Body CreateLoanRequest
}

// LoanOutput wraps a single loan response for Huma.
type LoanOutput struct {
	Body LoanResponse
}

// ListLoansResponse contains a list of loans.
type ListLoansResponse struct {
	Loans []LoanResponse `json:"loans" doc:"All loans"`
}

// ListLoansOutput wraps the list loans response for Huma.
type ListLoansOutput struct {
	Body ListLoansResponse
}

// UpdateLoanRequest is the request body for updating a loan.
type UpdateLoanRequest struct {
	CustomerID *FlexInt  `json:"customer_id,omitempty" doc:"Borrowing customer"`
	BookID     *FlexInt  `json:"book_id,omitempty" doc:"Loaned book"`
	LoanDate   *FlexTime `json:"loan_date,omitempty" doc:"Loan start"`
	ReturnDate *FlexTime `json:"return_date,omitempty" doc:"Return time"`
}

// UpdateLoanInput wraps the update loan request for Huma.
type UpdateLoanInput struct {
	ID   int64 `path:"id" doc:"Loan ID"`
	Body UpdateLoanRequest
}

// DeleteLoanInput contains parameters for deleting a loan.
type DeleteLoanInput struct {
	ID int64 `path:"id" doc:"Loan ID"`
}

// === Handlers ===

func (s *Server) handleCreateLoan(ctx context.Context, input *CreateLoanInput) (*LoanOutput, error) {
	loan, err := s.services.Loan.CreateLoan(ctx, service.CreateLoanParams{
		CustomerID: int64(input.Body.CustomerID.Int()),
		BookID:     int64(input.Body.BookID.Int()),
		LoanDate:   input.Body.LoanDate.ToTime(),
		ReturnDate: input.Body.ReturnDate.TimePtr(),
	})
	if err != nil {
		return nil, err
	}

	return &LoanOutput{Body: toLoanResponse(loan)}, nil
}

func (s *Server) handleListLoans(ctx context.Context, _ *struct{}) (*ListLoansOutput, error) {
	loans, err := s.services.Loan.ListLoans(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]LoanResponse, len(loans))
	for i, l := range loans {
		resp[i] = toLoanResponse(l)
	}

	return &ListLoansOutput{Body: ListLoansResponse{Loans: resp}}, nil
}

func (s *Server) handleUpdateLoan(ctx context.Context, input *UpdateLoanInput) (*LoanOutput, error) {
	params := service.UpdateLoanParams{
		LoanDate:   input.Body.LoanDate.TimePtr(),
		ReturnDate: input.Body.ReturnDate.TimePtr(),
	}
	if input.Body.CustomerID != nil {
		id := int64(input.Body.CustomerID.Int())
		params.CustomerID = &id
	}
	if input.Body.BookID != nil {
		id := int64(input.Body.BookID.Int())
		params.BookID = &id
	}

	loan, err := s.services.Loan.UpdateLoan(ctx, input.ID, params)
	if err != nil {
		return nil, err
	}

	return &LoanOutput{Body: toLoanResponse(loan)}, nil
}

func (s *Server) handleDeleteLoan(ctx context.Context, input *DeleteLoanInput) (*MessageOutput, error) {
	if err := s.services.Loan.DeleteLoan(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Loan deleted"}}, nil
}
