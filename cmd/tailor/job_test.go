package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/amishk599/tailor/internal/model"
)

func TestDeleteJobError(t *testing.T) {
	blocked := fmt.Errorf("job posting %q: %w", "abc123", model.ErrHasDependents)
	err := deleteJobError(blocked)
	if !strings.Contains(err.Error(), "--cascade") {
		t.Errorf("expected cascade hint, got %q", err)
	}
	if !errors.Is(err, model.ErrHasDependents) {
		t.Errorf("hint lost the underlying error: %v", err)
	}

	missing := fmt.Errorf("job posting %q: %w", "abc123", model.ErrNotFound)
	if err := deleteJobError(missing); strings.Contains(err.Error(), "--cascade") {
		t.Errorf("cascade hint on a missing posting: %q", err)
	}
}
