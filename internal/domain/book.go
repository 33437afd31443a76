// Package domain contains the core business entities and domain logic for the OpenShelf library.
package domain

import (
	"github.com/openshelf/openshelf-server/internal/errors"
)

// Book represents a single title in the library catalog.
// IsAvailable is derived from loan state and never set by clients:
// a book is available iff it has no loan with a null return date.
type Book struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Author        string   `json:"author"`
	YearPublished *int     `json:"year_published"`
	Term          LoanTerm `json:"type"`
	IsAvailable   bool     `json:"is_available"`
}

// Validate checks field invariants before persistence.
func (b *Book) Validate() error {
	if b.Name == "" {
		return errors.Validation("book name is required")
	}
	if b.Author == "" {
		return errors.Validation("book author is required")
	}
	if !b.Term.Valid() {
		return errors.Validationf("invalid type %d: must be 1, 2, or 3", int(b.Term))
	}
	return nil
}
