// Package jobs is the job posting archive: ingestion with content-fingerprint
// deduplication, lookup, listing and search over one profile's postings.
package jobs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/amishk599/tailor/internal/fsutil"
	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/profile"
	"github.com/amishk599/tailor/internal/retry"
)

// idLen is how many fingerprint hex digits form the posting id.
const idLen = 12

// Archive stores job postings for one profile.
type Archive struct {
	paths  profile.Paths
	policy retry.Policy
	logger *slog.Logger
}

// NewArchive creates an Archive over the given profile's paths.
func NewArchive(paths profile.Paths, logger *slog.Logger) *Archive {
	return &Archive{paths: paths, policy: retry.DefaultPolicy, logger: logger}
}

// Fingerprint is the content identity of a posting: SHA-256 of the raw text
// with surrounding whitespace trimmed, lowercase hex.
func Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}

// IDFor derives the posting id from raw text.
func IDFor(raw string) string {
	return Fingerprint(raw)[:idLen]
}

// Ingest archives raw posting text. Identical raw content maps to the same
// id, so re-pasting a posting returns the existing record (existing=true)
// instead of duplicating it. New content goes through the parse collaborator
// under the retry policy before being persisted atomically.
func (a *Archive) Ingest(ctx context.Context, raw string, parser model.JobParser, mc model.ModelConfig) (posting model.JobPosting, existing bool, err error) {
	if strings.TrimSpace(raw) == "" {
		return model.JobPosting{}, false, fmt.Errorf("job posting text: %w", model.ErrEmptyInput)
	}

	fingerprint := Fingerprint(raw)
	id := fingerprint[:idLen]

	if prior, err := a.Get(id); err == nil {
		a.logger.Info("posting already archived", "id", id, "company", prior.Company)
		return prior, true, nil
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.JobPosting{}, false, err
	}

	parsed, err := retry.Do(ctx, a.logger, a.policy, "parse job posting", func(ctx context.Context) (model.JobPostingContent, error) {
		return parser.ParseJobPosting(ctx, raw)
	})
	if err != nil {
		return model.JobPosting{}, false, err
	}

	posting = model.JobPosting{
		ID:                id,
		Fingerprint:       fingerprint,
		JobPostingContent: parsed,
		CreatedAt:         time.Now().UTC(),
		RawContent:        raw,
		ModelProvider:     mc.Provider,
		ModelName:         mc.ModelName,
	}
	if err := fsutil.WriteJSONAtomic(a.paths.JobPosting(id), posting); err != nil {
		return model.JobPosting{}, false, fmt.Errorf("persist posting %s: %w", id, err)
	}
	a.logger.Info("archived job posting", "id", id, "company", posting.Company, "title", posting.Title)
	return posting, false, nil
}

// Get loads one posting by id.
func (a *Archive) Get(id string) (model.JobPosting, error) {
	var posting model.JobPosting
	err := fsutil.ReadJSON(a.paths.JobPosting(id), &posting)
	if fsutil.IsNotExist(err) {
		return model.JobPosting{}, fmt.Errorf("job posting %q: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.JobPosting{}, err
	}
	return posting, nil
}

// List returns all postings, most recently created first, ties broken by id.
// Corrupt records are skipped and reported via the logger, never fatal to
// the listing.
func (a *Archive) List() ([]model.JobPosting, error) {
	entries, err := os.ReadDir(a.paths.JobPostingsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read postings dir: %w", err)
	}

	postings := make([]model.JobPosting, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		posting, err := a.Get(id)
		if err != nil {
			a.logger.Warn("skipping unreadable posting", "file", e.Name(), "error", err)
			continue
		}
		postings = append(postings, posting)
	}

	sort.Slice(postings, func(i, j int) bool {
		if !postings[i].CreatedAt.Equal(postings[j].CreatedAt) {
			return postings[i].CreatedAt.After(postings[j].CreatedAt)
		}
		return postings[i].ID < postings[j].ID
	})
	return postings, nil
}

// Search returns postings whose title, company or keywords contain the query,
// case-insensitively. Output order matches List, so identical inputs give
// identical results.
func (a *Archive) Search(query string) ([]model.JobPosting, error) {
	postings, err := a.List()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return postings, nil
	}

	var matched []model.JobPosting
	for _, p := range postings {
		if matches(p, q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func matches(p model.JobPosting, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Company), q) {
		return true
	}
	for _, kw := range p.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

// Delete removes a posting. When renders depend on it the default is to
// refuse; cascade deletes the render lineage as well.
func (a *Archive) Delete(id string, cascade bool) error {
	if _, err := a.Get(id); err != nil {
		return err
	}

	renderDir := a.paths.RenderJobDir(id)
	if hasRenders(renderDir) {
		if !cascade {
			return fmt.Errorf("job posting %q: %w", id, model.ErrHasDependents)
		}
		if err := os.RemoveAll(renderDir); err != nil {
			return fmt.Errorf("remove renders for %s: %w", id, err)
		}
	}

	if err := os.Remove(a.paths.JobPosting(id)); err != nil {
		return fmt.Errorf("remove posting %s: %w", id, err)
	}
	return nil
}

func hasRenders(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			return true
		}
	}
	return false
}

// SetNotes updates the posting's free-text notes, its only user-editable
// field besides the render counter.
func (a *Archive) SetNotes(id, notes string) error {
	posting, err := a.Get(id)
	if err != nil {
		return err
	}
	posting.Notes = notes
	return fsutil.WriteJSONAtomic(a.paths.JobPosting(id), posting)
}

// IncrementRenderCount bumps the posting's render counter. Called by the
// render archive after a successful commit.
func (a *Archive) IncrementRenderCount(id string) error {
	posting, err := a.Get(id)
	if err != nil {
		return err
	}
	posting.RenderCount++
	return fsutil.WriteJSONAtomic(a.paths.JobPosting(id), posting)
}
