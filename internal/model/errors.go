package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for user-input and state preconditions. Callers wrap these
// with context via fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrNoRenders         = errors.New("no renders")
	ErrDuplicateProfile  = errors.New("profile already exists")
	ErrInvalidName       = errors.New("name is not filesystem-safe")
	ErrEmptyInput        = errors.New("input is empty")
	ErrEmptyResult       = errors.New("collaborator returned empty content")
	ErrHasDependents     = errors.New("job posting has dependent renders")
	ErrCredentialMissing = errors.New("API credential not set")
)

// ProviderError wraps an LLM provider failure with its HTTP status code so
// retry logic can classify it.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider: HTTP %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s provider: HTTP %d", e.Provider, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ParseError reports that the parse collaborator returned output the core
// could not decode into the required fields.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse job posting: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CorruptRecordError marks a persisted record that failed to decode. Listing
// operations skip and report these rather than failing wholesale.
type CorruptRecordError struct {
	Path string
	Err  error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record %s: %v", e.Path, e.Err)
}

func (e *CorruptRecordError) Unwrap() error {
	return e.Err
}

// PDFError reports a failed PDF render. PDF output is best-effort: the
// markdown render commits regardless and the absence is recorded.
type PDFError struct {
	Err error
}

func (e *PDFError) Error() string {
	return fmt.Sprintf("render pdf: %v", e.Err)
}

func (e *PDFError) Unwrap() error {
	return e.Err
}
