package domain

import (
	"time"

	"github.com/openshelf/openshelf-server/internal/errors"
)

// Loan records a book being lent to a customer.
// A nil ReturnDate means the book has not been returned yet (an open loan).
type Loan struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"customer_id"`
	BookID     int64      `json:"book_id"`
	LoanDate   time.Time  `json:"loan_date"`
	ReturnDate *time.Time `json:"return_date"`
}

// Open reports whether the book is still out.
func (l *Loan) Open() bool {
	return l.ReturnDate == nil
}

// ValidateDates checks the loan's date invariants against the book's term:
// the loan date must be present, strictly before the return date when one
// is set, and the span between the two must not exceed the term's limit.
func (l *Loan) ValidateDates(term LoanTerm) error {
	if l.LoanDate.IsZero() {
		return errors.Validation("loan_date is required")
	}
	if l.ReturnDate != nil {
		if !l.LoanDate.Before(*l.ReturnDate) {
			return errors.Conflict("loan date must be before the return date")
		}
		if term.Valid() && l.ReturnDate.Sub(l.LoanDate) > term.MaxDuration() {
			return errors.Conflictf("loan exceeds the %d-day limit for %s books", term.MaxDays(), term)
		}
	}
	return nil
}

// BookAvailable derives a book's availability from its loans.
// It is a pure function of open-loan existence, not a counter, so
// recomputing it is always safe.
func BookAvailable(loans []*Loan) bool {
	for _, l := range loans {
		if l.Open() {
			return false
		}
	}
	return true
}
