package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openshelf/openshelf-server/internal/domain"
	"github.com/openshelf/openshelf-server/internal/store"
)

const customerColumns = `id, name, city, age`

// scanCustomer scans a row into a domain.Customer.
func scanCustomer(scanner interface{ Scan(dest ...any) error }) (*domain.Customer, error) {
	var c domain.Customer

	var (
		city sql.NullString
		age  sql.NullInt64
	)

	if err := scanner.Scan(&c.ID, &c.Name, &city, &age); err != nil {
		return nil, err
	}

	if city.Valid {
		c.City = &city.String
	}
	if age.Valid {
		v := int(age.Int64)
		c.Age = &v
	}

	return &c, nil
}

// CreateCustomer inserts a customer row, writing the assigned id back.
func (s *Store) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, city, age)
		VALUES (?, ?, ?, ?)`,
		rowID(customer.ID),
		customer.Name,
		nullableString(customer.City),
		nullableInt(customer.Age),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	customer.ID = id
	return nil
}

// GetCustomer retrieves a customer by ID. Returns store.ErrCustomerNotFound if absent.
func (s *Store) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListCustomers returns all customers ordered by id.
func (s *Store) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// UpdateCustomer persists all fields. Returns store.ErrCustomerNotFound if absent.
func (s *Store) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE customers
		SET name = ?, city = ?, age = ?
		WHERE id = ?`,
		customer.Name,
		nullableString(customer.City),
		nullableInt(customer.Age),
		customer.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrCustomerNotFound
	}
	return nil
}

// DeleteCustomer removes the customer and every loan referencing them in one
// transaction. Books freed by deleted open loans get their availability
// recomputed inside the same transaction.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers WHERE id = ?`, id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return store.ErrCustomerNotFound
	}

	// Collect books touched by this customer's loans before deleting them.
	rows, err := tx.QueryContext(ctx, `SELECT DISTINCT book_id FROM loans WHERE customer_id = ?`, id)
	if err != nil {
		return err
	}
	var bookIDs []int64
	for rows.Next() {
		var bookID int64
		if err := rows.Scan(&bookID); err != nil {
			rows.Close()
			return err
		}
		bookIDs = append(bookIDs, bookID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, `DELETE FROM loans WHERE customer_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id); err != nil {
		return err
	}

	for _, bookID := range bookIDs {
		if err := recomputeBookAvailability(ctx, tx, bookID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
