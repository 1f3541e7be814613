package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amishk599/tailor/internal/jobs"
	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/profile"
)

type stubParser struct{}

func (stubParser) ParseJobPosting(_ context.Context, _ string) (model.JobPostingContent, error) {
	return model.JobPostingContent{Title: "Backend Engineer", Company: "Initech"}, nil
}

type stubReviser struct {
	fn func(current, feedback string) (string, error)
}

func (s *stubReviser) ReviseResume(_ context.Context, current, feedback string) (string, error) {
	return s.fn(current, feedback)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestArchive(t *testing.T) (*Archive, *jobs.Archive, string) {
	t.Helper()
	paths := profile.NewPaths(t.TempDir(), "alice")
	ja := jobs.NewArchive(paths, discardLogger())
	posting, _, err := ja.Ingest(context.Background(), "hiring backend engineer", stubParser{}, model.ModelConfig{Provider: model.ProviderOpenAI, ModelName: "gpt-4o"})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	return NewArchive(paths, ja, discardLogger()), ja, posting.ID
}

func commitRender(t *testing.T, a *Archive, jobID, md string) model.RenderRecord {
	t.Helper()
	rc, err := a.Begin(jobID)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	rec, err := a.Commit(rc, CommitInput{
		ResumeMarkdown: md,
		Model:          model.ModelConfig{Provider: model.ProviderOpenAI, ModelName: "gpt-4o"},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return rec
}

func TestCommitAndLatest(t *testing.T) {
	a, ja, jobID := newTestArchive(t)

	rec := commitRender(t, a, jobID, "# Resume\n\nfirst")
	if rec.Seq != 1 {
		t.Fatalf("first render seq = %d, want 1", rec.Seq)
	}

	latest, err := a.Latest(jobID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Seq != 1 || latest.ResumeMarkdown != "# Resume\n\nfirst" {
		t.Fatalf("Latest = seq %d, markdown %q", latest.Seq, latest.ResumeMarkdown)
	}

	posting, err := ja.Get(jobID)
	if err != nil {
		t.Fatalf("Get posting: %v", err)
	}
	if posting.RenderCount != 1 {
		t.Fatalf("render_count = %d, want 1", posting.RenderCount)
	}
}

func TestSeqMonotonicAfterDeletion(t *testing.T) {
	a, _, jobID := newTestArchive(t)

	for i := 1; i <= 3; i++ {
		commitRender(t, a, jobID, fmt.Sprintf("# Resume %d", i))
	}

	// Remove the newest render out of band; its number must not be reused.
	if err := os.RemoveAll(a.paths.RenderDir(jobID, 3)); err != nil {
		t.Fatalf("remove render: %v", err)
	}

	rec := commitRender(t, a, jobID, "# Resume 4")
	if rec.Seq != 3 {
		// max existing is now 2, so the next slot is 3
		t.Fatalf("seq after deletion = %d, want 3", rec.Seq)
	}

	if err := os.RemoveAll(a.paths.RenderDir(jobID, 1)); err != nil {
		t.Fatalf("remove render: %v", err)
	}
	rec = commitRender(t, a, jobID, "# Resume 5")
	if rec.Seq != 4 {
		t.Fatalf("seq after gap at front = %d, want 4", rec.Seq)
	}
}

func TestLatestSurvivesCrashBeforePointerUpdate(t *testing.T) {
	a, _, jobID := newTestArchive(t)

	commitRender(t, a, jobID, "# Resume\n\nstable")

	// Simulate a crash after the render directory is written but before
	// latest.json is replaced: run only the first half of Commit.
	rc, err := a.Begin(jobID)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := a.writeRender(rc, CommitInput{ResumeMarkdown: "# Resume\n\norphaned"}); err != nil {
		t.Fatalf("writeRender: %v", err)
	}

	latest, err := a.Latest(jobID)
	if err != nil {
		t.Fatalf("Latest after simulated crash: %v", err)
	}
	if latest.Seq != 1 || latest.ResumeMarkdown != "# Resume\n\nstable" {
		t.Fatalf("Latest = seq %d, markdown %q; want the pre-crash render", latest.Seq, latest.ResumeMarkdown)
	}
}

func TestLatestNoRenders(t *testing.T) {
	a, _, jobID := newTestArchive(t)

	_, err := a.Latest(jobID)
	if !errors.Is(err, model.ErrNoRenders) {
		t.Fatalf("Latest error = %v, want ErrNoRenders", err)
	}
	if a.HasRenders(jobID) {
		t.Fatal("HasRenders = true for unrendered posting")
	}
}

func TestLatestUnknownPosting(t *testing.T) {
	a, _, _ := newTestArchive(t)

	_, err := a.Latest("ffffffffffff")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Latest error = %v, want ErrNotFound", err)
	}
}

func TestBeginUnknownPosting(t *testing.T) {
	a, _, _ := newTestArchive(t)

	_, err := a.Begin("ffffffffffff")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Begin error = %v, want ErrNotFound", err)
	}
}

func TestListOldestFirstAndSkipsCorrupt(t *testing.T) {
	a, _, jobID := newTestArchive(t)

	for i := 1; i <= 3; i++ {
		commitRender(t, a, jobID, fmt.Sprintf("# Resume %d", i))
	}

	// Corrupt the middle render's metadata.
	metaPath := a.paths.RenderMetadata(jobID, 2)
	if err := os.WriteFile(metaPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt metadata: %v", err)
	}

	recs, err := a.List(jobID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List returned %d renders, want 2", len(recs))
	}
	if recs[0].Seq != 1 || recs[1].Seq != 3 {
		t.Fatalf("List order = [%d %d], want [1 3]", recs[0].Seq, recs[1].Seq)
	}
}

func TestIterateAccumulatesFeedbackTrail(t *testing.T) {
	a, ja, jobID := newTestArchive(t)

	commitRender(t, a, jobID, "# Resume\n\n## Summary\n\noriginal")

	reviser := &stubReviser{fn: func(current, feedback string) (string, error) {
		return current + "\n\nrevised for: " + feedback, nil
	}}

	first, err := a.Iterate(context.Background(), jobID, "shorter bullets", reviser)
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if first.Seq != 2 {
		t.Fatalf("first iteration seq = %d, want 2", first.Seq)
	}
	if len(first.FeedbackApplied) != 1 || first.FeedbackApplied[0] != "shorter bullets" {
		t.Fatalf("feedback trail = %v", first.FeedbackApplied)
	}

	second, err := a.Iterate(context.Background(), jobID, "add metrics", reviser)
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	want := []string{"shorter bullets", "add metrics"}
	if len(second.FeedbackApplied) != 2 || second.FeedbackApplied[0] != want[0] || second.FeedbackApplied[1] != want[1] {
		t.Fatalf("feedback trail = %v, want %v", second.FeedbackApplied, want)
	}
	if !strings.Contains(second.ResumeMarkdown, "revised for: add metrics") {
		t.Fatalf("revised markdown missing new feedback: %q", second.ResumeMarkdown)
	}

	latest, err := a.Latest(jobID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Seq != 3 {
		t.Fatalf("Latest seq = %d, want 3", latest.Seq)
	}

	posting, err := ja.Get(jobID)
	if err != nil {
		t.Fatalf("Get posting: %v", err)
	}
	if posting.RenderCount != 3 {
		t.Fatalf("render_count = %d, want 3", posting.RenderCount)
	}
}

func TestIterateBlankFeedback(t *testing.T) {
	a, _, jobID := newTestArchive(t)
	commitRender(t, a, jobID, "# Resume")

	_, err := a.Iterate(context.Background(), jobID, "   ", &stubReviser{})
	if !errors.Is(err, model.ErrEmptyInput) {
		t.Fatalf("Iterate error = %v, want ErrEmptyInput", err)
	}
}

func TestIterateReviserFailureLeavesLineageIntact(t *testing.T) {
	a, _, jobID := newTestArchive(t)
	commitRender(t, a, jobID, "# Resume")

	boom := &model.ProviderError{Provider: "openai", StatusCode: 401, Err: errors.New("bad key")}
	reviser := &stubReviser{fn: func(_, _ string) (string, error) { return "", boom }}

	_, err := a.Iterate(context.Background(), jobID, "try again", reviser)
	if !errors.Is(err, boom) {
		t.Fatalf("Iterate error = %v, want wrapped provider error", err)
	}

	recs, err := a.List(jobID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("failed iteration left %d renders, want 1", len(recs))
	}
}

func TestCommitStoresPDF(t *testing.T) {
	a, _, jobID := newTestArchive(t)

	rc, err := a.Begin(jobID)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	rec, err := a.Commit(rc, CommitInput{
		ResumeMarkdown: "# Resume",
		PDF:            []byte("%PDF-1.4 fake"),
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if rec.PDFPath == "" {
		t.Fatal("PDFPath empty after committing PDF bytes")
	}
	data, err := os.ReadFile(rec.PDFPath)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatalf("pdf file content = %q", data)
	}
	if filepath.Dir(rec.PDFPath) != a.paths.RenderDir(jobID, rec.Seq) {
		t.Fatalf("pdf stored outside render dir: %s", rec.PDFPath)
	}
}
