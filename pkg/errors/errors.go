package errors

import "fmt"

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates missing or invalid credentials
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrForbidden indicates the caller lacks the required role
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	return e.Message
}

// ErrValidation indicates invalid input on a specific field
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// ErrInvalidStateTransition indicates an illegal order status change
type ErrInvalidStateTransition struct {
	From interface{}
	To   interface{}
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %v to %v", e.From, e.To)
}

// ErrMinimumNotMet indicates the cart total is below the global order minimum
type ErrMinimumNotMet struct {
	Minimum   float64
	Total     float64
	Remaining float64
}

func (e *ErrMinimumNotMet) Error() string {
	return fmt.Sprintf("order minimum of %.2f not met: total %.2f, remaining %.2f", e.Minimum, e.Total, e.Remaining)
}

// ErrOutOfStock indicates a checkout line exceeds live stock
type ErrOutOfStock struct {
	ProductID string
	Requested int
	Available int
}

func (e *ErrOutOfStock) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}
