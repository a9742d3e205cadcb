package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError_Error(t *testing.T) {
	err := NewFetchError("https://example.com/mod.sgmodule", 503, errors.New("HTTP 503"))
	assert.Contains(t, err.Error(), "https://example.com/mod.sgmodule")
	assert.Contains(t, err.Error(), "503")

	noStatus := NewFetchError("https://example.com", 0, errors.New("connection refused"))
	assert.Contains(t, noStatus.Error(), "connection refused")
	assert.NotContains(t, noStatus.Error(), "status")
}

func TestFetchError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := NewFetchError("https://example.com", 0, cause)
	assert.ErrorIs(t, err, cause)
}

func TestSourceError(t *testing.T) {
	err := NewSourceError("./rules/local.sgmodule", ErrNotFound)
	assert.Contains(t, err.Error(), "./rules/local.sgmodule")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"retryable wrapper", &RetryableError{Err: errors.New("HTTP 429")}, true},
		{"fetch error with status", NewFetchError("u", 500, errors.New("HTTP 500")), true},
		{"fetch error transport", NewFetchError("u", 0, errors.New("dial tcp: refused")), true},
		{"wrapped fetch error", fmt.Errorf("attempt: %w", NewFetchError("u", 404, errors.New("HTTP 404"))), true},
		{"source error", NewSourceError("./missing", ErrNotFound), false},
		{"cache miss", ErrCacheMiss, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
