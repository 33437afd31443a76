package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, name, author, year_published, term, is_available`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		yearPublished sql.NullInt64
		term          int
		available     int
	)

	err := scanner.Scan(
		&b.ID,
		&b.Name,
		&b.Author,
		&yearPublished,
		&term,
		&available,
	)
	if err != nil {
		return nil, err
	}

	if yearPublished.Valid {
		year := int(yearPublished.Int64)
		b.YearPublished = &year
	}
	b.Term = domain.LoanTerm(term)
	b.IsAvailable = available != 0

	return &b, nil
}

// CreateBook inserts a book row. A zero ID lets SQLite assign the next one;
// the assigned id is written back to book.ID.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, name, author, year_published, term, is_available)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rowID(book.ID),
		book.Name,
		book.Author,
		nullableInt(book.YearPublished),
		int(book.Term),
		boolToInt(book.IsAvailable),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	book.ID = id
	return nil
}

// GetBook retrieves a book by ID. Returns store.ErrBookNotFound if absent.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBookNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListBooks returns all books ordered by id.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// UpdateBook persists all fields of the book. Returns store.ErrBookNotFound
// if no row matches book.ID.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET name = ?, author = ?, year_published = ?, term = ?, is_available = ?
		WHERE id = ?`,
		book.Name,
		book.Author,
		nullableInt(book.YearPublished),
		int(book.Term),
		boolToInt(book.IsAvailable),
		book.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// DeleteBook removes the book and every loan referencing it in one
// transaction. Both deletions commit together or neither does.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM books WHERE id = ?`, id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return store.ErrBookNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM loans WHERE book_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
