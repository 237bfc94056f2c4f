// Package apperr holds the error taxonomy shared by the ordering flow and
// its mapping onto API error kinds and HTTP statuses.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrItemNotFound      = errors.New("menu item not found")
	ErrItemUnavailable   = errors.New("menu item is not available")
	ErrLineNotFound      = errors.New("item is not in the cart")
	ErrTableNotFound     = errors.New("table not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStep       = errors.New("action not allowed at this checkout step")
	ErrNotReady          = errors.New("order type selection is incomplete")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNegativeTip       = errors.New("tip cannot be negative")
	ErrTipTooLarge       = errors.New("tip exceeds the allowed maximum")
	ErrAmountOutOfRange  = errors.New("amount is out of range")
	ErrIdempotencyReuse  = errors.New("idempotency key was already used for a different order")
	ErrUnauthorized      = errors.New("invalid credentials")
)

// Violation codes reported by ValidationError.
const (
	MissingName    = "missing_name"
	MissingPhone   = "missing_phone"
	InvalidPhone   = "invalid_phone"
	MissingHostel  = "missing_hostel"
	MissingRoom    = "missing_room"
	InvalidRequest = "invalid_request"
)

// Violation is one field-level problem with user input.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries every violation found, not only the first.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add records a violation.
func (e *ValidationError) Add(field, code, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, Code: code, Message: message})
}

// Has reports whether a violation with the given code was recorded.
func (e *ValidationError) Has(code string) bool {
	for _, v := range e.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// OrNil returns e as an error only when it holds violations.
func (e *ValidationError) OrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// SelectionError is returned when a table that is not available is picked.
type SelectionError struct {
	TableNumber int
	Status      string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("table %d is %s and cannot be selected", e.TableNumber, e.Status)
}

func Kind(err error) string {
	var ve *ValidationError
	var se *SelectionError

	switch {
	case err == nil:
		return ""

	case errors.As(err, &ve):
		return "validation"

	case errors.As(err, &se):
		return "table_unavailable"

	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"

	case errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrLineNotFound),
		errors.Is(err, ErrTableNotFound),
		errors.Is(err, ErrOrderNotFound):
		return "not_found"

	case errors.Is(err, ErrItemUnavailable):
		return "item_unavailable"

	case errors.Is(err, ErrInvalidStep), errors.Is(err, ErrNotReady):
		return "invalid_step"

	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"

	case errors.Is(err, ErrNegativeTip),
		errors.Is(err, ErrTipTooLarge),
		errors.Is(err, ErrAmountOutOfRange):
		return "bad_request"

	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"

	case errors.Is(err, ErrIdempotencyReuse):
		return "idempotency_conflict"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"

	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch Kind(err) {
	case "":
		return http.StatusOK
	case "validation", "bad_request":
		return http.StatusBadRequest
	case "table_unavailable", "empty_cart", "invalid_step", "item_unavailable", "idempotency_conflict":
		return http.StatusConflict
	case "not_found":
		return http.StatusNotFound
	case "invalid_transition":
		return http.StatusUnprocessableEntity
	case "unauthorized":
		return http.StatusUnauthorized
	case "timeout":
		return http.StatusGatewayTimeout
	case "canceled":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
