package ai

import (
	"context"
	"fmt"

	"github.com/amishk599/tailor/internal/model"
)

// NopCollaborators is a stand-in used for dry runs: no LLM calls, canned
// output shaped like the real thing. Lets the archival path be exercised
// without credentials.
type NopCollaborators struct{}

var _ model.Collaborators = NopCollaborators{}

// NewNopCollaborators returns a NopCollaborators.
func NewNopCollaborators() NopCollaborators {
	return NopCollaborators{}
}

// ParseJobPosting returns a minimal posting without inspecting raw.
func (NopCollaborators) ParseJobPosting(_ context.Context, _ string) (model.JobPostingContent, error) {
	return model.JobPostingContent{
		Title:         "Untitled Role",
		Company:       "Unknown Company",
		ToneReasoning: "No analysis performed (dry run).",
		Industry:      "Unknown",
	}, nil
}

// GenerateResume returns a placeholder resume long enough to pass validation.
func (NopCollaborators) GenerateResume(_ context.Context, in model.GenerateInput) (string, string, error) {
	md := fmt.Sprintf(`# Dry Run Resume

## Summary

Placeholder resume for %s at %s. Generated without an LLM call; rerun without the dry-run flag for real output.

## Experience

- Placeholder entry
`, in.JobPosting.Title, in.JobPosting.Company)
	return md, fmt.Sprintf("Placeholder resume for %s at %s.", in.JobPosting.Title, in.JobPosting.Company), nil
}

// ReviseResume appends the feedback as a note instead of revising.
func (NopCollaborators) ReviseResume(_ context.Context, current, feedback string) (string, error) {
	return current + "\n\n<!-- dry run, feedback not applied: " + feedback + " -->\n", nil
}

// UpdateContent returns the content unchanged.
func (NopCollaborators) UpdateContent(_ context.Context, current, _ string) (string, error) {
	return current, nil
}
