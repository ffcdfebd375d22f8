package usecasees

import (
	"fmt"
	"time"
)

// UnsupportedPairError marks a conversion the routing table has no row
// for.
type UnsupportedPairError struct {
	From string
	To   string
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("unsupported currency pair %s->%s", e.From, e.To)
}

// LegFailedError identifies which leg of a bridged trade terminated
// without completing, so an operator can locate any stranded bridge
// balance.
type LegFailedError struct {
	Leg    int
	Status string
}

func (e *LegFailedError) Error() string {
	return fmt.Sprintf("trade leg %d failed with status %q", e.Leg, e.Status)
}

type TimeoutError struct {
	OrderID string
	MaxWait time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("order %s did not reach a terminal status within %s", e.OrderID, e.MaxWait)
}

type FillsUnavailableError struct {
	OrderID string
	Retries int
	MaxWait time.Duration
}

func (e *FillsUnavailableError) Error() string {
	return fmt.Sprintf("no fills for order %s after %d retries within %s", e.OrderID, e.Retries, e.MaxWait)
}

type InvalidAccountFormatError struct {
	Currency string
	Protocol string
	Expected string
}

func (e *InvalidAccountFormatError) Error() string {
	return fmt.Sprintf("invalid %s destination for %s withdrawal: expected %s", e.Protocol, e.Currency, e.Expected)
}

type UnsupportedCurrencyError struct {
	Currency string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("unsupported withdrawal currency %q", e.Currency)
}

type InsufficientFundsError struct {
	Currency  string
	Available float64
	Requested float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient %s balance: available %f, requested %f", e.Currency, e.Available, e.Requested)
}

// ActionNotAllowedError rejects a user action attempted from the wrong
// role or claim state.
type ActionNotAllowedError struct {
	Role   string
	Status string
}

func (e *ActionNotAllowedError) Error() string {
	return fmt.Sprintf("role %q may not act while claim status is %q", e.Role, e.Status)
}
