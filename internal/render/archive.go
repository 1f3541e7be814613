// Package render is the versioning core: every generated resume is an
// immutable, sequence-numbered record under its job posting, with a small
// atomically-replaced pointer naming the latest one. Records are append-only;
// iteration adds a record and advances the pointer, nothing is ever edited
// in place.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/tailor/internal/content"
	"github.com/amishk599/tailor/internal/fsutil"
	"github.com/amishk599/tailor/internal/jobs"
	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/profile"
	"github.com/amishk599/tailor/internal/retry"
)

// Context is an allocated render slot: a job posting plus the sequence
// number the next commit will occupy. Discarding a Context leaves at most a
// gap in the numbering, never a visible record.
type Context struct {
	JobPostingID string
	Seq          int
}

// CommitInput is everything Commit persists for a new render.
type CommitInput struct {
	ResumeMarkdown string
	Summary        string
	Tone           *model.ToneSnapshot
	Model          model.ModelConfig
	PDF            []byte
	Feedback       []string
}

// latestPointer is the content of latest.json: an indirection to a sequence
// directory, not a copy of render data, so advancing it is one small atomic
// write.
type latestPointer struct {
	Seq int `json:"seq"`
}

// Archive manages the render lineages of one profile.
type Archive struct {
	paths  profile.Paths
	jobs   *jobs.Archive
	policy retry.Policy
	logger *slog.Logger
}

// NewArchive creates an Archive over the given profile's paths.
func NewArchive(paths profile.Paths, jobArchive *jobs.Archive, logger *slog.Logger) *Archive {
	return &Archive{paths: paths, jobs: jobArchive, policy: retry.DefaultPolicy, logger: logger}
}

// Begin allocates the next render slot for a job posting. The sequence is
// max existing + 1, never a count, so numbers are monotonic and a deleted
// render's number is never reused.
func (a *Archive) Begin(jobPostingID string) (Context, error) {
	if _, err := a.jobs.Get(jobPostingID); err != nil {
		return Context{}, err
	}
	next, err := a.nextSeq(jobPostingID)
	if err != nil {
		return Context{}, err
	}
	return Context{JobPostingID: jobPostingID, Seq: next}, nil
}

func (a *Archive) nextSeq(jobPostingID string) (int, error) {
	entries, err := os.ReadDir(a.paths.RenderJobDir(jobPostingID))
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("read render dir: %w", err)
	}
	maxSeq := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		seq, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

// Commit persists the render and advances the latest pointer. The order is
// chosen so a crash mid-sequence leaves a previously-valid state: first the
// render directory is fully written (metadata last, marking it complete),
// only then is latest.json replaced, and only then is the parent posting's
// render counter bumped. A reader never observes a half-written render as
// latest.
func (a *Archive) Commit(rc Context, in CommitInput) (model.RenderRecord, error) {
	rec, err := a.writeRender(rc, in)
	if err != nil {
		return model.RenderRecord{}, err
	}
	if err := a.advanceLatest(rc); err != nil {
		return model.RenderRecord{}, err
	}
	if err := a.jobs.IncrementRenderCount(rc.JobPostingID); err != nil {
		a.logger.Warn("render committed but render_count not bumped", "job", rc.JobPostingID, "error", err)
	}
	a.logger.Info("committed render", "job", rc.JobPostingID, "seq", rc.Seq, "pdf", rec.PDFPath != "")
	return rec, nil
}

// writeRender builds the render directory. The directory name comes from the
// allocation rule, so it can never collide with an existing render.
func (a *Archive) writeRender(rc Context, in CommitInput) (model.RenderRecord, error) {
	if strings.TrimSpace(in.ResumeMarkdown) == "" {
		return model.RenderRecord{}, fmt.Errorf("resume markdown: %w", model.ErrEmptyResult)
	}
	dir := a.paths.RenderDir(rc.JobPostingID, rc.Seq)
	if fsutil.Exists(a.paths.RenderMetadata(rc.JobPostingID, rc.Seq)) {
		return model.RenderRecord{}, fmt.Errorf("render %s/%04d already exists", rc.JobPostingID, rc.Seq)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.RenderRecord{}, fmt.Errorf("create render dir: %w", err)
	}

	if err := fsutil.WriteFileAtomic(a.paths.RenderResume(rc.JobPostingID, rc.Seq), []byte(in.ResumeMarkdown), 0o644); err != nil {
		return model.RenderRecord{}, fmt.Errorf("write resume.md: %w", err)
	}

	rec := model.RenderRecord{
		Seq:             rc.Seq,
		JobPostingID:    rc.JobPostingID,
		CreatedAt:       time.Now().UTC(),
		ToneUsed:        in.Tone,
		Model:           in.Model,
		Summary:         in.Summary,
		FeedbackApplied: in.Feedback,
		ResumeMarkdown:  in.ResumeMarkdown,
	}

	if len(in.PDF) > 0 {
		pdfPath := a.paths.RenderPDF(rc.JobPostingID, rc.Seq)
		if err := fsutil.WriteFileAtomic(pdfPath, in.PDF, 0o644); err != nil {
			// PDF is best-effort; the markdown render still commits.
			a.logger.Warn("failed to write resume.pdf", "job", rc.JobPostingID, "seq", rc.Seq, "error", err)
		} else {
			rec.PDFPath = pdfPath
		}
	}

	if err := fsutil.WriteJSONAtomic(a.paths.RenderMetadata(rc.JobPostingID, rc.Seq), rec); err != nil {
		return model.RenderRecord{}, fmt.Errorf("write metadata.json: %w", err)
	}
	return rec, nil
}

// advanceLatest atomically repoints latest.json at the new render.
func (a *Archive) advanceLatest(rc Context) error {
	if err := fsutil.WriteJSONAtomic(a.paths.LatestPointer(rc.JobPostingID), latestPointer{Seq: rc.Seq}); err != nil {
		return fmt.Errorf("advance latest pointer: %w", err)
	}
	return nil
}

// Get loads one render by sequence number.
func (a *Archive) Get(jobPostingID string, seq int) (model.RenderRecord, error) {
	var rec model.RenderRecord
	err := fsutil.ReadJSON(a.paths.RenderMetadata(jobPostingID, seq), &rec)
	if fsutil.IsNotExist(err) {
		return model.RenderRecord{}, fmt.Errorf("render %s/%04d: %w", jobPostingID, seq, model.ErrNotFound)
	}
	if err != nil {
		return model.RenderRecord{}, err
	}

	md, err := os.ReadFile(a.paths.RenderResume(jobPostingID, seq))
	if err != nil {
		return model.RenderRecord{}, &model.CorruptRecordError{
			Path: a.paths.RenderResume(jobPostingID, seq),
			Err:  err,
		}
	}
	rec.ResumeMarkdown = string(md)
	return rec, nil
}

// Latest returns the render the latest pointer names. A job posting that has
// never been rendered fails with NoRenders.
func (a *Archive) Latest(jobPostingID string) (model.RenderRecord, error) {
	if _, err := a.jobs.Get(jobPostingID); err != nil {
		return model.RenderRecord{}, err
	}
	var ptr latestPointer
	err := fsutil.ReadJSON(a.paths.LatestPointer(jobPostingID), &ptr)
	if fsutil.IsNotExist(err) {
		return model.RenderRecord{}, fmt.Errorf("job posting %q: %w", jobPostingID, model.ErrNoRenders)
	}
	if err != nil {
		return model.RenderRecord{}, err
	}
	return a.Get(jobPostingID, ptr.Seq)
}

// List returns all renders for a job posting, oldest first. Corrupt entries
// are skipped and reported, never fatal to the listing.
func (a *Archive) List(jobPostingID string) ([]model.RenderRecord, error) {
	entries, err := os.ReadDir(a.paths.RenderJobDir(jobPostingID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read render dir: %w", err)
	}

	var recs []model.RenderRecord
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		seq, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		rec, err := a.Get(jobPostingID, seq)
		if err != nil {
			a.logger.Warn("skipping unreadable render", "job", jobPostingID, "seq", seq, "error", err)
			continue
		}
		recs = append(recs, rec)
	}
	// ReadDir sorts lexically and directory names are zero-padded, so recs
	// is already oldest-first.
	return recs, nil
}

// Iterate produces the next render in a lineage: the revise collaborator is
// given the latest resume and the user's feedback, and the new record
// accumulates the full feedback trail that produced it.
func (a *Archive) Iterate(ctx context.Context, jobPostingID, feedback string, reviser model.ResumeReviser) (model.RenderRecord, error) {
	if strings.TrimSpace(feedback) == "" {
		return model.RenderRecord{}, fmt.Errorf("feedback: %w", model.ErrEmptyInput)
	}
	latest, err := a.Latest(jobPostingID)
	if err != nil {
		return model.RenderRecord{}, err
	}

	revised, err := retry.Do(ctx, a.logger, a.policy, "revise resume", func(ctx context.Context) (string, error) {
		md, err := reviser.ReviseResume(ctx, latest.ResumeMarkdown, feedback)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(md) == "" {
			return "", model.ErrEmptyResult
		}
		return md, nil
	})
	if err != nil {
		return model.RenderRecord{}, err
	}

	rc, err := a.Begin(jobPostingID)
	if err != nil {
		return model.RenderRecord{}, err
	}

	trail := make([]string, 0, len(latest.FeedbackApplied)+1)
	trail = append(trail, latest.FeedbackApplied...)
	trail = append(trail, feedback)

	return a.Commit(rc, CommitInput{
		ResumeMarkdown: revised,
		Summary:        content.ExtractSummary(revised),
		Tone:           latest.ToneUsed,
		Model:          latest.Model,
		Feedback:       trail,
	})
}

// HasRenders reports whether the posting has at least one committed render.
func (a *Archive) HasRenders(jobPostingID string) bool {
	return fsutil.Exists(a.paths.LatestPointer(jobPostingID))
}
