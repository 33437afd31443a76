package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/errors"
	"github.com/openshelf/openshelf-server/internal/store"
	"github.com/openshelf/openshelf-server/internal/validation"
)

// LoanService orchestrates loan operations. It is the only place loan
// policy runs: FK existence, date ordering, the per-term duration cap,
// and the one-open-loan-per-book rule.
type LoanService struct {
	store    store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewLoanService creates a new loan service.
func NewLoanService(store store.Store, validate *validation.Validator, logger *slog.Logger) *LoanService {
	return &LoanService{
		store:    store,
		validate: validate,
		logger:   logger,
	}
}

// CreateLoanParams carries the fields for creating a loan.
// A nil ReturnDate creates an open loan and marks the book unavailable.
type CreateLoanParams struct {
	CustomerID int64      `json:"customer_id" validate:"required,gt=0"`
	BookID     int64      `json:"book_id" validate:"required,gt=0"`
	LoanDate   time.Time  `json:"loan_date"`
	ReturnDate *time.Time `json:"return_date"`
}

// CreateLoan runs loan policy and persists the loan. The store recomputes
// the book's availability inside the insert transaction.
func (s *LoanService) CreateLoan(ctx context.Context, params CreateLoanParams) (*domain.Loan, error) {
	if err := s.validate.Validate(params); err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		CustomerID: params.CustomerID,
		BookID:     params.BookID,
		LoanDate:   params.LoanDate,
		ReturnDate: params.ReturnDate,
	}

	if err := s.validateLoan(ctx, loan, 0); err != nil {
		return nil, err
	}

	if err := s.store.CreateLoan(ctx, loan); err != nil {
		return nil, err
	}

	s.logger.Info("loan created",
		"id", loan.ID,
		"customer_id", loan.CustomerID,
		"book_id", loan.BookID,
		"open", loan.Open(),
	)
	return loan, nil
}

// GetLoan retrieves a single loan by ID.
func (s *LoanService) GetLoan(ctx context.Context, id int64) (*domain.Loan, error) {
	return s.store.GetLoan(ctx, id)
}

// ListLoans returns all loans.
func (s *LoanService) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	return s.store.ListLoans(ctx)
}

// UpdateLoanParams carries the optional fields for a merge-patch update.
// Supplying only one date still re-validates the resulting pair against
// the stored other date.
type UpdateLoanParams struct {
	CustomerID *int64     `json:"customer_id" validate:"omitempty,gt=0"`
	BookID     *int64     `json:"book_id" validate:"omitempty,gt=0"`
	LoanDate   *time.Time `json:"loan_date"`
	ReturnDate *time.Time `json:"return_date"`
}

// UpdateLoan merges the supplied fields over the stored loan and re-runs
// the full policy on the result before persisting.
func (s *LoanService) UpdateLoan(ctx context.Context, id int64, params UpdateLoanParams) (*domain.Loan, error) {
	if err := s.validate.Validate(params); err != nil {
		return nil, err
	}

	loan, err := s.store.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.CustomerID != nil {
		loan.CustomerID = *params.CustomerID
	}
	if params.BookID != nil {
		loan.BookID = *params.BookID
	}
	if params.LoanDate != nil {
		loan.LoanDate = *params.LoanDate
	}
	if params.ReturnDate != nil {
		loan.ReturnDate = params.ReturnDate
	}

	if err := s.validateLoan(ctx, loan, loan.ID); err != nil {
		return nil, err
	}

	if err := s.store.UpdateLoan(ctx, loan); err != nil {
		return nil, err
	}

	s.logger.Info("loan updated", "id", loan.ID, "open", loan.Open())
	return loan, nil
}

// DeleteLoan removes a loan; the store recomputes the affected book's
// availability in the delete transaction.
func (s *LoanService) DeleteLoan(ctx context.Context, id int64) error {
	if err := s.store.DeleteLoan(ctx, id); err != nil {
		return err
	}
	s.logger.Info("loan deleted", "id", id)
	return nil
}

// validateLoan is the loan policy engine. It runs before every loan
// creation and before any mutation of an existing loan:
//   - the referenced customer and book must exist (not found otherwise),
//   - the dates must be strictly ordered and within the book term's cap,
//   - an open loan requires the book to have no other open loan.
//
// excludeLoanID names the loan being updated so it does not conflict with
// itself; pass 0 on creation.
func (s *LoanService) validateLoan(ctx context.Context, loan *domain.Loan, excludeLoanID int64) error {
	if _, err := s.store.GetCustomer(ctx, loan.CustomerID); err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			return errors.NotFoundf("customer with id %d does not exist", loan.CustomerID)
		}
		return err
	}

	book, err := s.store.GetBook(ctx, loan.BookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return errors.NotFoundf("book with id %d does not exist", loan.BookID)
		}
		return err
	}

	if err := loan.ValidateDates(book.Term); err != nil {
		return err
	}

	if loan.Open() {
		busy, err := s.store.HasOpenLoan(ctx, loan.BookID, excludeLoanID)
		if err != nil {
			return err
		}
		if busy {
			return errors.Conflictf("book %d is already on loan", loan.BookID)
		}
	}

	return nil
}
