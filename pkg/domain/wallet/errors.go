package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientBalance is returned when a debit exceeds the current wallet balance.
	ErrInsufficientBalance = errors.New("insufficient points balance")

	// ErrDebitAmountMustBePositive is returned when a debit amount is zero or negative.
	ErrDebitAmountMustBePositive = errors.New("debit amount must be positive")

	// ErrCreditAmountMustBePositive is returned when a credit amount is zero or negative.
	ErrCreditAmountMustBePositive = errors.New("credit amount must be positive")
)

// InsufficientBalanceError carries the current balance and the requested
// amount so callers can display both. It unwraps to ErrInsufficientBalance.
type InsufficientBalanceError struct {
	Current   int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient points balance: have %d, requested %d", e.Current, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
