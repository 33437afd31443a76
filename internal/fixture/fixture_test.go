package fixture

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestLoad_PopulatesAllTables(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Load(ctx, st))

	books, err := st.ListBooks(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, books)

	customers, err := st.ListCustomers(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, customers)

	loans, err := st.ListLoans(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, loans)
}

func TestLoad_KeepsFixtureIDs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Load(ctx, st))

	book, err := st.GetBook(ctx, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, book.Name)
	assert.True(t, book.Term.Valid())
}

func TestLoad_AvailabilityMatchesOpenLoans(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Load(ctx, st))

	books, err := st.ListBooks(ctx)
	require.NoError(t, err)

	for _, book := range books {
		loans, err := st.ListLoansForBook(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookAvailable(loans), book.IsAvailable,
			"book %d availability must be derived from its loans", book.ID)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Load(ctx, st))

	books, err := st.ListBooks(ctx)
	require.NoError(t, err)
	first := len(books)

	require.NoError(t, Load(ctx, st))

	books, err = st.ListBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, len(books))
}

func TestParseFixtureTime(t *testing.T) {
	got, err := parseFixtureTime("2024-03-01T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())

	got, err = parseFixtureTime("2024-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	_, err = parseFixtureTime("last tuesday")
	assert.Error(t, err)
}
