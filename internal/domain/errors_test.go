package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{name: "nil", err: nil, want: CategoryNone},
		{name: "system disabled", err: ErrSystemDisabled, want: CategorySystemDisabled},
		{name: "wrapped system disabled", err: fmt.Errorf("manifest: %w", ErrSystemDisabled), want: CategorySystemDisabled},
		{name: "unavailable sentinel", err: ErrUnavailable, want: CategoryUnavailable},
		{name: "503 in message", err: errors.New("bungie: unexpected status 503"), want: CategoryUnavailable},
		{name: "anything else", err: errors.New("connection reset"), want: CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestAuthError_Unwrap(t *testing.T) {
	cause := errors.New("token expired")
	err := &AuthError{Err: cause}

	if !errors.Is(err, cause) {
		t.Error("AuthError should unwrap to its cause")
	}
	if err.Error() != "authentication failed: token expired" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
