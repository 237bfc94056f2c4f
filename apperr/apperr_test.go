package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindAndHTTPStatus(t *testing.T) {
	t.Parallel()

	ve := &ValidationError{}
	ve.Add("name", MissingName, "name is required")

	tests := []struct {
		name       string
		err        error
		wantKind   string
		wantStatus int
	}{
		{"nil", nil, "", http.StatusOK},
		{"validation", ve, "validation", http.StatusBadRequest},
		{"wrapped_validation", fmt.Errorf("place order: %w", ve), "validation", http.StatusBadRequest},
		{"selection", &SelectionError{TableNumber: 2, Status: "occupied"}, "table_unavailable", http.StatusConflict},
		{"empty_cart", ErrEmptyCart, "empty_cart", http.StatusConflict},
		{"order_not_found", fmt.Errorf("lookup: %w", ErrOrderNotFound), "not_found", http.StatusNotFound},
		{"invalid_transition", ErrInvalidTransition, "invalid_transition", http.StatusUnprocessableEntity},
		{"tip_too_large", fmt.Errorf("bill: %w", ErrTipTooLarge), "bad_request", http.StatusBadRequest},
		{"idempotency_reuse", ErrIdempotencyReuse, "idempotency_conflict", http.StatusConflict},
		{"timeout", context.DeadlineExceeded, "timeout", http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), "internal", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Kind(tt.err); got != tt.wantKind {
				t.Fatalf("Kind() = %q, want %q", got, tt.wantKind)
			}
			if got := HTTPStatus(tt.err); got != tt.wantStatus {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestValidationErrorOrNil(t *testing.T) {
	t.Parallel()

	ve := &ValidationError{}
	if ve.OrNil() != nil {
		t.Fatal("empty ValidationError should be nil")
	}
	ve.Add("phone", InvalidPhone, "phone must have 10 digits")
	if err := ve.OrNil(); err == nil || !ve.Has(InvalidPhone) {
		t.Fatalf("expected invalid_phone violation, got %v", err)
	}
}
