package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/motormarket/go-mobile-sync/internal/service"
	"github.com/motormarket/go-mobile-sync/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid data", err: service.ErrInvalidDataProvided, want: http.StatusBadRequest},
		{name: "wrong password", err: service.ErrWrongPassword, want: http.StatusUnauthorized},
		{name: "expired token", err: service.ErrTokenIsExpiredOrInvalid, want: http.StatusUnauthorized},
		{name: "no conflicts", err: service.ErrNoConflictsProvided, want: http.StatusBadRequest},
		{name: "unsupported conflict entity", err: service.ErrUnsupportedConflictEntityType, want: http.StatusUnprocessableEntity},
		{name: "login taken", err: store.ErrLoginAlreadyExists, want: http.StatusConflict},
		{name: "user missing", err: store.ErrNoUserWasFound, want: http.StatusNotFound},
		{name: "query failure", err: store.ErrExecutingQuery, want: http.StatusInternalServerError},
		{name: "wrapped sentinel", err: fmt.Errorf("resolve conflicts: %w", service.ErrUnsupportedConflictEntityType), want: http.StatusUnprocessableEntity},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFromError(tt.err); got != tt.want {
				t.Errorf("statusFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
