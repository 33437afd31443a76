package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf-server/internal/errors"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestLoan_Open(t *testing.T) {
	open := &Loan{LoanDate: time.Now()}
	assert.True(t, open.Open())

	closed := &Loan{LoanDate: time.Now(), ReturnDate: timePtr(time.Now().Add(24 * time.Hour))}
	assert.False(t, closed.Open())
}

func TestLoan_ValidateDates_Valid(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	loan := &Loan{
		LoanDate:   start,
		ReturnDate: timePtr(start.Add(3 * 24 * time.Hour)),
	}
	require.NoError(t, loan.ValidateDates(MediumTerm))
}

func TestLoan_ValidateDates_OpenLoanHasNoSpanCheck(t *testing.T) {
	loan := &Loan{LoanDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, loan.ValidateDates(LongTerm))
}

func TestLoan_ValidateDates_MissingLoanDate(t *testing.T) {
	loan := &Loan{}
	err := loan.ValidateDates(ShortTerm)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestLoan_ValidateDates_ReversedDates(t *testing.T) {
	start := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	loan := &Loan{
		LoanDate:   start,
		ReturnDate: timePtr(start.Add(-24 * time.Hour)),
	}
	err := loan.ValidateDates(ShortTerm)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestLoan_ValidateDates_EqualDatesRejected(t *testing.T) {
	start := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	loan := &Loan{LoanDate: start, ReturnDate: timePtr(start)}
	err := loan.ValidateDates(ShortTerm)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestLoan_ValidateDates_ExceedsTermLimit(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		term LoanTerm
		days int
		ok   bool
	}{
		{"short term at limit", ShortTerm, 10, true},
		{"short term over limit", ShortTerm, 11, false},
		{"medium term at limit", MediumTerm, 5, true},
		{"medium term over limit", MediumTerm, 6, false},
		{"long term at limit", LongTerm, 2, true},
		{"long term over limit", LongTerm, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := &Loan{
				LoanDate:   start,
				ReturnDate: timePtr(start.Add(time.Duration(tt.days) * 24 * time.Hour)),
			}
			err := loan.ValidateDates(tt.term)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrConflict))
			}
		})
	}
}

func TestBookAvailable(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	returned := timePtr(start.Add(24 * time.Hour))

	assert.True(t, BookAvailable(nil))
	assert.True(t, BookAvailable([]*Loan{
		{LoanDate: start, ReturnDate: returned},
	}))
	assert.False(t, BookAvailable([]*Loan{
		{LoanDate: start, ReturnDate: returned},
		{LoanDate: start},
	}))
}
