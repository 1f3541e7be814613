// Package pipeline composes the libraries, archives and collaborators into
// the resume generation flow. It is the only component allowed to touch the
// content library and the job posting archive in the same operation; no
// business logic of its own beyond orchestration order.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amishk599/tailor/internal/config"
	"github.com/amishk599/tailor/internal/content"
	"github.com/amishk599/tailor/internal/jobs"
	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/render"
	"github.com/amishk599/tailor/internal/retry"
	"github.com/amishk599/tailor/internal/tone"
)

// CollaboratorFactory builds the collaborator suite for a resolved model
// configuration. Indirection so tests and dry runs never construct real
// providers.
type CollaboratorFactory func(mc model.ModelConfig) (model.Collaborators, error)

// PDFRenderer matches the pdf package's renderer. Optional; a nil renderer
// skips PDF output entirely.
type PDFRenderer interface {
	RenderPDF(markdown, style string) ([]byte, error)
}

// Request describes one generation run.
type Request struct {
	JobPostingID  string
	Tone          string // named tone, empty means use the posting's tone analysis
	ModelOverride *config.ModelOverride
	Feedback      string
	Template      string // empty means the profile's default template
	PDFStyle      string // empty disables PDF output
}

// Pipeline wires one profile's stores to the LLM collaborators.
type Pipeline struct {
	profile      model.Profile
	defaultModel model.ModelConfig
	library      *content.Library
	jobArchive   *jobs.Archive
	renders      *render.Archive
	tones        *tone.Library
	factory      CollaboratorFactory
	pdf          PDFRenderer
	policy       retry.Policy
	logger       *slog.Logger
}

// New builds a Pipeline for the given profile.
func New(
	prof model.Profile,
	defaultModel model.ModelConfig,
	library *content.Library,
	jobArchive *jobs.Archive,
	renders *render.Archive,
	tones *tone.Library,
	factory CollaboratorFactory,
	pdfRenderer PDFRenderer,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		profile:      prof,
		defaultModel: defaultModel,
		library:      library,
		jobArchive:   jobArchive,
		renders:      renders,
		tones:        tones,
		factory:      factory,
		pdf:          pdfRenderer,
		policy:       retry.DefaultPolicy,
		logger:       logger,
	}
}

// Ingest parses and archives a raw job posting with the resolved model.
func (p *Pipeline) Ingest(ctx context.Context, raw string) (model.JobPosting, bool, error) {
	mc := config.ResolveModel(nil, p.profile, p.defaultModel)
	collab, err := p.factory(mc)
	if err != nil {
		return model.JobPosting{}, false, err
	}
	return p.jobArchive.Ingest(ctx, raw, collab, mc)
}

// UpdateSection applies an LLM-guided edit to one background section.
func (p *Pipeline) UpdateSection(ctx context.Context, sec model.Section, instruction string) (model.ContentSection, error) {
	mc := config.ResolveModel(nil, p.profile, p.defaultModel)
	collab, err := p.factory(mc)
	if err != nil {
		return model.ContentSection{}, err
	}
	return p.library.ApplyUpdate(ctx, sec, instruction, collab)
}

// Generate produces a new render for the job posting. With feedback and an
// existing render it revises the latest instead of generating from scratch.
func (p *Pipeline) Generate(ctx context.Context, req Request) (model.RenderRecord, error) {
	mc := config.ResolveModel(req.ModelOverride, p.profile, p.defaultModel)
	if err := config.ValidateModel(mc); err != nil {
		return model.RenderRecord{}, err
	}

	collab, err := p.factory(mc)
	if err != nil {
		return model.RenderRecord{}, err
	}

	if strings.TrimSpace(req.Feedback) != "" && p.renders.HasRenders(req.JobPostingID) {
		return p.renders.Iterate(ctx, req.JobPostingID, req.Feedback, collab)
	}

	posting, err := p.jobArchive.Get(req.JobPostingID)
	if err != nil {
		return model.RenderRecord{}, err
	}

	background, err := p.library.LoadBackground()
	if err != nil {
		return model.RenderRecord{}, err
	}

	toneGuidance, toneSnap, err := p.resolveTone(req.Tone, posting)
	if err != nil {
		return model.RenderRecord{}, err
	}

	templateName := req.Template
	if templateName == "" {
		templateName = p.profile.DefaultTemplate
	}
	tmpl, err := p.library.Template(templateName)
	if err != nil {
		return model.RenderRecord{}, err
	}

	rc, err := p.renders.Begin(req.JobPostingID)
	if err != nil {
		return model.RenderRecord{}, err
	}

	in := model.GenerateInput{
		Background:   background,
		JobPosting:   posting,
		ToneGuidance: toneGuidance,
		Template:     tmpl,
		Feedback:     req.Feedback,
	}

	type generated struct {
		markdown string
		summary  string
	}
	out, err := retry.Do(ctx, p.logger, p.policy, "generate resume", func(ctx context.Context) (generated, error) {
		md, summary, err := collab.GenerateResume(ctx, in)
		return generated{markdown: md, summary: summary}, err
	})
	if err != nil {
		return model.RenderRecord{}, err
	}

	var pdfBytes []byte
	if req.PDFStyle != "" && p.pdf != nil {
		pdfBytes, err = p.pdf.RenderPDF(out.markdown, req.PDFStyle)
		if err != nil {
			// PDF output never fails a commit; the markdown is the record.
			p.logger.Warn("pdf render failed", "job", req.JobPostingID, "style", req.PDFStyle, "error", err)
			pdfBytes = nil
		}
	}

	rec, err := p.renders.Commit(rc, render.CommitInput{
		ResumeMarkdown: out.markdown,
		Summary:        out.summary,
		Tone:           toneSnap,
		Model:          mc,
		PDF:            pdfBytes,
	})
	if err != nil {
		return model.RenderRecord{}, err
	}

	// Usage is bumped only after a successful commit so failed generations
	// never inflate the count.
	if toneSnap != nil {
		if err := p.tones.IncrementUsage(toneSnap.Name); err != nil {
			p.logger.Warn("tone usage not bumped", "tone", toneSnap.Name, "error", err)
		}
	}
	return rec, nil
}

// resolveTone maps a request's tone selection to prompt guidance plus the
// snapshot recorded in the render. Precedence: named tone, then the
// profile's default tone, then the posting's own tone analysis.
func (p *Pipeline) resolveTone(name string, posting model.JobPosting) (string, *model.ToneSnapshot, error) {
	if name == "" {
		name = p.profile.DefaultTone
	}
	if name != "" {
		tc, err := p.tones.Get(name)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("Use this tone: %s. %s", tc.Name, tc.Description), tone.Snapshot(tc), nil
	}
	if posting.ToneReasoning != "" {
		return "Tone guidance from job analysis: " + posting.ToneReasoning, nil, nil
	}
	return "Use a professional, standard tone.", nil, nil
}
