package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// Error kinds surfaced by the engines. Handlers translate kinds to HTTP
// status codes; the engines themselves never deal in transport concerns.
const (
	ErrKindInsufficientStock      = "insufficient_stock"
	ErrKindInvalidStateTransition = "invalid_state_transition"
	ErrKindNotFound               = "not_found"
	ErrKindImmutableInvoice       = "immutable_invoice"
	ErrKindValidation             = "validation_error"
)

// InsufficientStockError is returned when a reservation would drive a
// product's stock below zero. The whole parent operation must be rolled back
// before this reaches the caller.
type InsufficientStockError struct {
	ProductId   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d, requested: %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Kind() string { return ErrKindInsufficientStock }

type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

func (e *InvalidStateTransitionError) Kind() string { return ErrKindInvalidStateTransition }

type NotFoundError struct {
	Entity string
	Id     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Id)
}

func (e *NotFoundError) Kind() string { return ErrKindNotFound }

type ImmutableInvoiceError struct {
	Status string
}

func (e *ImmutableInvoiceError) Error() string {
	return fmt.Sprintf("invoice is %s and can no longer be modified", e.Status)
}

func (e *ImmutableInvoiceError) Kind() string { return ErrKindImmutableInvoice }

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Kind() string { return ErrKindValidation }

// Kinder is implemented by every error in the taxonomy above.
type Kinder interface {
	error
	Kind() string
}

// ErrorKind extracts the stable kind from an error chain, or "" when the
// error is not part of the taxonomy.
func ErrorKind(err error) string {
	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
