package model

import "context"

// GenerateInput is everything the resume-generation collaborator sees.
type GenerateInput struct {
	Background   Background
	JobPosting   JobPosting
	ToneGuidance string
	Template     string
	Feedback     string // incorporated into a fresh generation when no prior render exists
}

// JobParser extracts structured fields from raw job posting text.
type JobParser interface {
	ParseJobPosting(ctx context.Context, raw string) (JobPostingContent, error)
}

// ContentEditor rewrites a background section from a natural-language
// instruction. It returns the full replacement markdown.
type ContentEditor interface {
	UpdateContent(ctx context.Context, current, instruction string) (string, error)
}

// ResumeGenerator produces a tailored resume and its summary line.
type ResumeGenerator interface {
	GenerateResume(ctx context.Context, in GenerateInput) (markdown, summary string, err error)
}

// ResumeReviser applies user feedback to an existing resume and returns the
// full revised markdown.
type ResumeReviser interface {
	ReviseResume(ctx context.Context, current, feedback string) (string, error)
}

// Collaborators bundles the LLM-backed contracts bound to one resolved
// ModelConfig. The core never depends on a specific provider's shapes.
type Collaborators interface {
	JobParser
	ContentEditor
	ResumeGenerator
	ResumeReviser
}

// PDFRenderer converts markdown to PDF bytes. Pure from the core's point of
// view; failure never corrupts an already-committed markdown render.
type PDFRenderer interface {
	RenderPDF(markdown, template string) ([]byte, error)
}
