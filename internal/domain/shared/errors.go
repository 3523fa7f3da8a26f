// Package shared holds the types every storefront domain package uses:
// coded errors and the event contracts.
package shared

import (
	"errors"
	"fmt"
)

// DomainError is an error with a stable code the HTTP layer maps to a status.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on Code alone, so a sentinel matches its reworded copies.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	return errors.As(target, &other) && other.Code == e.Code
}

// WithMessage returns a copy of e carrying msg.
func (e *DomainError) WithMessage(msg string) *DomainError {
	return &DomainError{Code: e.Code, Message: msg}
}

// WithMessagef is WithMessage with formatting.
func (e *DomainError) WithMessagef(format string, args ...any) *DomainError {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrSelectionRequired = NewDomainError("SELECTION_REQUIRED", "A product option must be selected")
	ErrOutOfStock        = NewDomainError("OUT_OF_STOCK", "Product is out of stock")
	ErrQuantityLimit     = NewDomainError("QUANTITY_LIMIT", "Quantity limit reached")
	ErrUnavailable       = NewDomainError("UNAVAILABLE", "Service temporarily unavailable")
	// ErrInvalidProduct rejects malformed catalog data at load time.
	ErrInvalidProduct = NewDomainError("INVALID_PRODUCT", "Invalid product")
)
