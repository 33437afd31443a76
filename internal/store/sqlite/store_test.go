package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf-server/internal/domain"
)

// newTestStore opens a store on a throwaway database file.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)

	t.Cleanup(func() { _ = st.Close() })
	return st
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// newTestBook inserts a book and returns it.
func newTestBook(t *testing.T, st *Store, name string) *domain.Book {
	t.Helper()

	book := &domain.Book{
		Name:        name,
		Author:      "Test Author",
		Term:        domain.MediumTerm,
		IsAvailable: true,
	}
	require.NoError(t, st.CreateBook(context.Background(), book))
	require.NotZero(t, book.ID)
	return book
}

// newTestCustomer inserts a customer and returns it.
func newTestCustomer(t *testing.T, st *Store, name string) *domain.Customer {
	t.Helper()

	customer := &domain.Customer{Name: name}
	require.NoError(t, st.CreateCustomer(context.Background(), customer))
	require.NotZero(t, customer.ID)
	return customer
}

func TestOpen_AppliesPragmas(t *testing.T) {
	st := newTestStore(t)

	var mode string
	require.NoError(t, st.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, st.db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpen_CreatesSchema(t *testing.T) {
	st := newTestStore(t)

	for _, table := range []string{"books", "customers", "loans"} {
		var name string
		err := st.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestReset_DropsAllRows(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	book := newTestBook(t, st, "Doomed Book")
	customer := newTestCustomer(t, st, "Doomed Customer")
	loan := &domain.Loan{
		CustomerID: customer.ID,
		BookID:     book.ID,
		LoanDate:   time.Now().UTC(),
	}
	require.NoError(t, st.CreateLoan(ctx, loan))

	require.NoError(t, st.Reset(ctx))

	books, err := st.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	customers, err := st.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)

	loans, err := st.ListLoans(ctx)
	require.NoError(t, err)
	assert.Empty(t, loans)

	// Schema survives the reset.
	newTestBook(t, st, "Fresh Book")
}
