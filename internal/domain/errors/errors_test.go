package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"validation", ErrValidation},
		{"not found", ErrNotFound},
		{"already exists", ErrAlreadyExists},
		{"conflict", ErrConflict},
		{"invalid credentials", ErrInvalidCredentials},
		{"unauthorized", ErrUnauthorized},
		{"gateway unavailable", ErrGatewayUnavailable},
		{"gateway rejected", ErrGatewayRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestWrappedSentinelMatches(t *testing.T) {
	wrapped := fmt.Errorf("%w: quantity must be positive", ErrValidation)
	if !stdErrors.Is(wrapped, ErrValidation) {
		t.Fatalf("expected wrapped error to match sentinel, got %v", wrapped)
	}
	if stdErrors.Is(wrapped, ErrConflict) {
		t.Fatal("wrapped validation error must not match conflict sentinel")
	}
}
