package workflow

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrMissingCounterparty is returned when submit is attempted before a
// counterparty has been selected.
var ErrMissingCounterparty = errors.New("workflow: no counterparty selected")

// ErrBlockedCounterparty is returned when the selected counterparty is
// blocked. Blocked entities stay listed but cannot receive or return funds.
var ErrBlockedCounterparty = errors.New("workflow: counterparty is blocked")

// ErrSubmitInFlight is returned when a submit arrives while another is
// pending. Exactly one network call may be in flight per workflow.
var ErrSubmitInFlight = errors.New("workflow: submit already in flight")

// InvalidAmountError is returned when the entered amount does not parse as
// a positive decimal with at most two fraction digits.
type InvalidAmountError struct {
	Input  string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("workflow: invalid amount %q: %s", e.Input, e.Reason)
}

// InsufficientBalanceError is the client-side advisory gate: the amount
// exceeds the known balance. It is a UX convenience, never a security
// boundary; the server's own rejection arrives as a *ledger.ServerError
// and must be surfaced distinctly.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

// Shortfall is the exact amount missing.
func (e *InsufficientBalanceError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("workflow: amount %s exceeds available balance %s (short by %s)",
		e.Requested.StringFixed(2), e.Available.StringFixed(2), e.Shortfall().StringFixed(2))
}
