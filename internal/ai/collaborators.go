package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amishk599/tailor/internal/content"
	"github.com/amishk599/tailor/internal/model"
)

// Generated resumes shorter than this are treated as failed generations and
// surfaced as retryable validation errors.
const minResumeLength = 100

// Suite implements every collaborator contract over one Provider bound to
// one resolved model configuration.
type Suite struct {
	provider    Provider
	temperature float64
}

var _ model.Collaborators = (*Suite)(nil)

// NewSuite builds the collaborator suite for a model configuration.
func NewSuite(mc model.ModelConfig) (*Suite, error) {
	provider, err := NewProvider(mc)
	if err != nil {
		return nil, err
	}
	return &Suite{provider: provider, temperature: mc.Temperature}, nil
}

// NewSuiteWithProvider binds the suite to an explicit provider. Used by tests
// and by callers that manage provider construction themselves.
func NewSuiteWithProvider(p Provider, temperature float64) *Suite {
	return &Suite{provider: p, temperature: temperature}
}

// ParseJobPosting extracts structured fields from raw posting text. Model
// output that is not valid JSON, or that lacks a title or company, fails
// with a parse error so the caller's retry policy can ask again.
func (s *Suite) ParseJobPosting(ctx context.Context, raw string) (model.JobPostingContent, error) {
	var buf bytes.Buffer
	if err := jobParseTemplate.Execute(&buf, struct{ RawContent string }{RawContent: raw}); err != nil {
		return model.JobPostingContent{}, fmt.Errorf("render prompt: %w", err)
	}

	out, err := s.provider.Complete(ctx, Request{
		System:       jobParseSystemPrompt,
		Prompt:       buf.String(),
		Temperature:  s.temperature,
		JSONResponse: true,
	})
	if err != nil {
		return model.JobPostingContent{}, err
	}

	var parsed model.JobPostingContent
	if err := json.Unmarshal([]byte(stripCodeFence(out)), &parsed); err != nil {
		return model.JobPostingContent{}, &model.ParseError{Err: fmt.Errorf("decode job posting: %w", err)}
	}
	if strings.TrimSpace(parsed.Title) == "" || strings.TrimSpace(parsed.Company) == "" {
		return model.JobPostingContent{}, &model.ParseError{Err: fmt.Errorf("missing title or company")}
	}
	return parsed, nil
}

// GenerateResume produces tailored resume markdown and its summary.
func (s *Suite) GenerateResume(ctx context.Context, in model.GenerateInput) (string, string, error) {
	var buf bytes.Buffer
	data := struct {
		Template     string
		Background   model.Background
		Job          model.JobPosting
		ToneGuidance string
		Feedback     string
	}{
		Template:     in.Template,
		Background:   in.Background,
		Job:          in.JobPosting,
		ToneGuidance: in.ToneGuidance,
		Feedback:     in.Feedback,
	}
	if err := resumeGenerateTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render prompt: %w", err)
	}

	out, err := s.provider.Complete(ctx, Request{
		System:      resumeGenerateSystemPrompt,
		Prompt:      buf.String(),
		Temperature: s.temperature,
	})
	if err != nil {
		return "", "", err
	}

	markdown := strings.TrimSpace(stripCodeFence(out))
	if len(markdown) < minResumeLength {
		return "", "", &model.ParseError{Err: fmt.Errorf("resume too short (%d chars)", len(markdown))}
	}
	if err := content.ValidateMarkdown(markdown); err != nil {
		return "", "", &model.ParseError{Err: fmt.Errorf("invalid resume markdown: %w", err)}
	}

	summary := content.ExtractSummary(markdown)
	if summary == "" {
		return "", "", &model.ParseError{Err: fmt.Errorf("resume has no summary section")}
	}
	return markdown, summary, nil
}

// ReviseResume applies user feedback to an existing resume.
func (s *Suite) ReviseResume(ctx context.Context, current, feedback string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Current, Feedback string }{Current: current, Feedback: feedback}
	if err := resumeReviseTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	out, err := s.provider.Complete(ctx, Request{
		System:      resumeReviseSystemPrompt,
		Prompt:      buf.String(),
		Temperature: s.temperature,
	})
	if err != nil {
		return "", err
	}

	markdown := strings.TrimSpace(stripCodeFence(out))
	if len(markdown) < minResumeLength {
		return "", &model.ParseError{Err: fmt.Errorf("revised resume too short (%d chars)", len(markdown))}
	}
	return markdown, nil
}

// UpdateContent applies an instruction to one background document.
func (s *Suite) UpdateContent(ctx context.Context, current, instruction string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Current, Instruction string }{Current: current, Instruction: instruction}
	if err := contentUpdateTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	out, err := s.provider.Complete(ctx, Request{
		System:      contentUpdateSystemPrompt,
		Prompt:      buf.String(),
		Temperature: s.temperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stripCodeFence(out)), nil
}

// stripCodeFence removes a wrapping markdown code fence some models add
// despite instructions.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if i := strings.Index(trimmed, "\n"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
