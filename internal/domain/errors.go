package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNoRules indicates the manifest contained no usable rules
	ErrNoRules = errors.New("no usable rules in manifest")

	// ErrNotFound indicates a local source file does not exist
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrWriteFailed indicates writing the merged output failed
	ErrWriteFailed = errors.New("write failed")
)

// SourceError represents a local filesystem source that could not be read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError
func NewSourceError(path string, err error) *SourceError {
	return &SourceError{Path: path, Err: err}
}

// FetchError represents a network fetch that failed. After retries are
// exhausted it carries the last per-attempt error as its cause.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{URL: url, StatusCode: statusCode, Err: err}
}

// RetryableError marks an error as a failed attempt worth retrying.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error should be retried. Any transport error or
// non-2xx response counts as a failed attempt; local file and cache
// problems do not.
func IsRetryable(err error) bool {
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return true
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return true
	}

	return false
}
