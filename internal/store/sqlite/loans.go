package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/store"
)

const loanColumns = `id, customer_id, book_id, loan_date, return_date`

// scanLoan scans a row into a domain.Loan.
func scanLoan(scanner interface{ Scan(dest ...any) error }) (*domain.Loan, error) {
	var l domain.Loan

	var (
		loanDate   string
		returnDate sql.NullString
	)

	if err := scanner.Scan(&l.ID, &l.CustomerID, &l.BookID, &loanDate, &returnDate); err != nil {
		return nil, err
	}

	var err error
	l.LoanDate, err = parseTime(loanDate)
	if err != nil {
		return nil, err
	}
	l.ReturnDate, err = parseNullableTime(returnDate)
	if err != nil {
		return nil, err
	}

	return &l, nil
}

// CreateLoan inserts a loan row and recomputes the book's availability in
// the same transaction. The assigned id is written back to loan.ID.
func (s *Store) CreateLoan(ctx context.Context, loan *domain.Loan) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO loans (id, customer_id, book_id, loan_date, return_date)
		VALUES (?, ?, ?, ?, ?)`,
		rowID(loan.ID),
		loan.CustomerID,
		loan.BookID,
		formatTime(loan.LoanDate),
		nullTimeString(loan.ReturnDate),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err := recomputeBookAvailability(ctx, tx, loan.BookID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	loan.ID = id
	return nil
}

// GetLoan retrieves a loan by ID. Returns store.ErrLoanNotFound if absent.
func (s *Store) GetLoan(ctx context.Context, id int64) (*domain.Loan, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = ?`, id)

	l, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLoanNotFound
		}
		return nil, err
	}
	return l, nil
}

// ListLoans returns all loans ordered by id.
func (s *Store) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	return s.queryLoans(ctx, `SELECT `+loanColumns+` FROM loans ORDER BY id`)
}

// ListLoansForBook returns all loans referencing the book, ordered by id.
func (s *Store) ListLoansForBook(ctx context.Context, bookID int64) ([]*domain.Loan, error) {
	return s.queryLoans(ctx, `SELECT `+loanColumns+` FROM loans WHERE book_id = ? ORDER BY id`, bookID)
}

func (s *Store) queryLoans(ctx context.Context, query string, args ...any) ([]*domain.Loan, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []*domain.Loan{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// UpdateLoan persists all fields and recomputes availability for the loan's
// book - and for its previous book when the loan moved - in one transaction.
func (s *Store) UpdateLoan(ctx context.Context, loan *domain.Loan) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var prevBookID int64
	err = tx.QueryRowContext(ctx, `SELECT book_id FROM loans WHERE id = ?`, loan.ID).Scan(&prevBookID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrLoanNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE loans
		SET customer_id = ?, book_id = ?, loan_date = ?, return_date = ?
		WHERE id = ?`,
		loan.CustomerID,
		loan.BookID,
		formatTime(loan.LoanDate),
		nullTimeString(loan.ReturnDate),
		loan.ID,
	)
	if err != nil {
		return err
	}

	if err := recomputeBookAvailability(ctx, tx, loan.BookID); err != nil {
		return err
	}
	if prevBookID != loan.BookID {
		if err := recomputeBookAvailability(ctx, tx, prevBookID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteLoan removes the loan and recomputes the affected book's
// availability in the same transaction.
func (s *Store) DeleteLoan(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var bookID int64
	err = tx.QueryRowContext(ctx, `SELECT book_id FROM loans WHERE id = ?`, id).Scan(&bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrLoanNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM loans WHERE id = ?`, id); err != nil {
		return err
	}

	if err := recomputeBookAvailability(ctx, tx, bookID); err != nil {
		return err
	}

	return tx.Commit()
}

// HasOpenLoan reports whether the book has an open loan other than
// excludeLoanID (pass 0 to consider all loans).
func (s *Store) HasOpenLoan(ctx context.Context, bookID, excludeLoanID int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM loans
		WHERE book_id = ? AND return_date IS NULL AND id != ?`,
		bookID, excludeLoanID,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
