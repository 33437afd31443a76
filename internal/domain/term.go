package domain

import (
	"fmt"
	"time"
)

// LoanTerm classifies how long a book may be lent out.
// The wire representation is the integer 1, 2, or 3.
type LoanTerm int

// Loan term values and their maximum loan durations.
const (
	ShortTerm  LoanTerm = 1 // up to 10 days
	MediumTerm LoanTerm = 2 // up to 5 days
	LongTerm   LoanTerm = 3 // up to 2 days
)

// Valid reports whether t is one of the defined terms.
func (t LoanTerm) Valid() bool {
	return t == ShortTerm || t == MediumTerm || t == LongTerm
}

// MaxDays returns the maximum number of days a book with this term
// may stay on loan. Returns 0 for undefined terms.
func (t LoanTerm) MaxDays() int {
	switch t {
	case ShortTerm:
		return 10
	case MediumTerm:
		return 5
	case LongTerm:
		return 2
	default:
		return 0
	}
}

// MaxDuration returns MaxDays as a time.Duration.
func (t LoanTerm) MaxDuration() time.Duration {
	return time.Duration(t.MaxDays()) * 24 * time.Hour
}

func (t LoanTerm) String() string {
	switch t {
	case ShortTerm:
		return "SHORT_TERM"
	case MediumTerm:
		return "MEDIUM_TERM"
	case LongTerm:
		return "LONG_TERM"
	default:
		return fmt.Sprintf("LoanTerm(%d)", int(t))
	}
}
