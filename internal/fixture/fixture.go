// Package fixture provides the embedded seed dataset loaded by /initModels.
package fixture

import (
	"context"
	_ "embed"
	"encoding/json/v2"
	"fmt"
	"time"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/store"
)

//go:embed books.json
var booksJSON []byte

//go:embed customers.json
var customersJSON []byte

//go:embed loans.json
var loansJSON []byte

// loanDateLayout is the timestamp format used in the loan fixture files.
const loanDateLayout = "2006-01-02T15:04:05"

// bookRecord mirrors the legacy fixture shape; the id key is uppercase there.
type bookRecord struct {
	ID            int64  `json:"ID"`
	Name          string `json:"name"`
	Author        string `json:"author"`
	YearPublished *int   `json:"year_published"`
	Term          int    `json:"type"`
	IsAvailable   bool   `json:"is_available"`
}

type customerRecord struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	City *string `json:"city"`
	Age  *int    `json:"age"`
}

type loanRecord struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customer_id"`
	BookID     int64   `json:"book_id"`
	LoanDate   string  `json:"loan_date"`
	ReturnDate *string `json:"return_date"`
}

// Load resets the store's schema and loads the embedded fixtures in
// dependency order: books, customers, then loans. Loan inserts recompute
// book availability, so the dataset ends up internally consistent even if
// a fixture availability flag disagrees with its loans.
func Load(ctx context.Context, st store.Store) error {
	if err := st.Reset(ctx); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}

	if err := loadBooks(ctx, st); err != nil {
		return fmt.Errorf("load books: %w", err)
	}
	if err := loadCustomers(ctx, st); err != nil {
		return fmt.Errorf("load customers: %w", err)
	}
	if err := loadLoans(ctx, st); err != nil {
		return fmt.Errorf("load loans: %w", err)
	}
	return nil
}

func loadBooks(ctx context.Context, st store.Store) error {
	var records []bookRecord
	if err := json.Unmarshal(booksJSON, &records); err != nil {
		return err
	}

	for _, r := range records {
		book := &domain.Book{
			ID:            r.ID,
			Name:          r.Name,
			Author:        r.Author,
			YearPublished: r.YearPublished,
			Term:          domain.LoanTerm(r.Term),
			IsAvailable:   r.IsAvailable,
		}
		if err := book.Validate(); err != nil {
			return fmt.Errorf("book %d: %w", r.ID, err)
		}
		if err := st.CreateBook(ctx, book); err != nil {
			return fmt.Errorf("book %d: %w", r.ID, err)
		}
	}
	return nil
}

func loadCustomers(ctx context.Context, st store.Store) error {
	var records []customerRecord
	if err := json.Unmarshal(customersJSON, &records); err != nil {
		return err
	}

	for _, r := range records {
		customer := &domain.Customer{
			ID:   r.ID,
			Name: r.Name,
			City: r.City,
			Age:  r.Age,
		}
		if err := customer.Validate(); err != nil {
			return fmt.Errorf("customer %d: %w", r.ID, err)
		}
		if err := st.CreateCustomer(ctx, customer); err != nil {
			return fmt.Errorf("customer %d: %w", r.ID, err)
		}
	}
	return nil
}

func loadLoans(ctx context.Context, st store.Store) error {
	var records []loanRecord
	if err := json.Unmarshal(loansJSON, &records); err != nil {
		return err
	}

	for _, r := range records {
		loanDate, err := parseFixtureTime(r.LoanDate)
		if err != nil {
			return fmt.Errorf("loan %d: loan_date: %w", r.ID, err)
		}

		var returnDate *time.Time
		if r.ReturnDate != nil && *r.ReturnDate != "" {
			t, err := parseFixtureTime(*r.ReturnDate)
			if err != nil {
				return fmt.Errorf("loan %d: return_date: %w", r.ID, err)
			}
			returnDate = &t
		}

		loan := &domain.Loan{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			BookID:     r.BookID,
			LoanDate:   loanDate,
			ReturnDate: returnDate,
		}
		if err := st.CreateLoan(ctx, loan); err != nil {
			return fmt.Errorf("loan %d: %w", r.ID, err)
		}
	}
	return nil
}

func parseFixtureTime(s string) (time.Time, error) {
	if t, err := time.Parse(loanDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
