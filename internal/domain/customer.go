package domain

import (
	"github.com/openshelf/openshelf-server/internal/errors"
)

// Customer is a registered library member.
// City and Age are optional. Age is an integer here even though older
// datasets carried it as free text; parsing happens at the API boundary.
type Customer struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	City *string `json:"city"`
	Age  *int    `json:"age"`
}

// Validate checks field invariants before persistence.
func (c *Customer) Validate() error {
	if c.Name == "" {
		return errors.Validation("customer name is required")
	}
	return nil
}
