// Package tone manages a profile's named tone configurations. Each tone is
// one YAML file; renders snapshot the tone they used so later edits never
// rewrite historical provenance.
package tone

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/tailor/internal/fsutil"
	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/profile"
)

// Library reads and writes one profile's tone files.
type Library struct {
	paths  profile.Paths
	logger *slog.Logger
}

// NewLibrary creates a Library over the given profile's paths.
func NewLibrary(paths profile.Paths, logger *slog.Logger) *Library {
	return &Library{paths: paths, logger: logger}
}

// Get loads a tone by name.
func (l *Library) Get(name string) (model.ToneConfiguration, error) {
	data, err := os.ReadFile(l.paths.Tone(name))
	if os.IsNotExist(err) {
		return model.ToneConfiguration{}, fmt.Errorf("tone %q: %w", name, model.ErrNotFound)
	}
	if err != nil {
		return model.ToneConfiguration{}, fmt.Errorf("read tone %q: %w", name, err)
	}

	var tc model.ToneConfiguration
	if err := yaml.Unmarshal(data, &tc); err != nil {
		return model.ToneConfiguration{}, &model.CorruptRecordError{Path: l.paths.Tone(name), Err: err}
	}
	if tc.Name == "" {
		tc.Name = name
	}
	return tc, nil
}

// List returns every readable tone, sorted by name. Unreadable files are
// skipped and reported.
func (l *Library) List() ([]model.ToneConfiguration, error) {
	entries, err := os.ReadDir(l.paths.TonesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tones dir: %w", err)
	}

	var tones []model.ToneConfiguration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".yaml")
		tc, err := l.Get(name)
		if err != nil {
			l.logger.Warn("skipping unreadable tone", "name", name, "error", err)
			continue
		}
		tones = append(tones, tc)
	}
	sort.Slice(tones, func(i, j int) bool { return tones[i].Name < tones[j].Name })
	return tones, nil
}

// Save writes a tone. A zero CreatedAt is stamped with the current time.
func (l *Library) Save(tc model.ToneConfiguration) error {
	if strings.TrimSpace(tc.Name) == "" {
		return fmt.Errorf("tone name: %w", model.ErrInvalidName)
	}
	if tc.CreatedAt.IsZero() {
		tc.CreatedAt = time.Now().UTC()
	}
	if err := os.MkdirAll(l.paths.TonesDir(), 0o755); err != nil {
		return fmt.Errorf("create tones dir: %w", err)
	}
	data, err := yaml.Marshal(tc)
	if err != nil {
		return fmt.Errorf("marshal tone %q: %w", tc.Name, err)
	}
	return fsutil.WriteFileAtomic(l.paths.Tone(tc.Name), data, 0o644)
}

// Delete removes a tone file.
func (l *Library) Delete(name string) error {
	err := os.Remove(l.paths.Tone(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("tone %q: %w", name, model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete tone %q: %w", name, err)
	}
	return nil
}

// IncrementUsage bumps a tone's usage counter. Best effort from callers'
// point of view; the tone content itself is never touched.
func (l *Library) IncrementUsage(name string) error {
	tc, err := l.Get(name)
	if err != nil {
		return err
	}
	tc.UsageCount++
	return l.Save(tc)
}

// Snapshot freezes a tone's content for embedding in a render record.
func Snapshot(tc model.ToneConfiguration) *model.ToneSnapshot {
	return &model.ToneSnapshot{
		Name:          tc.Name,
		Description:   tc.Description,
		ModelProvider: tc.ModelProvider,
		ModelName:     tc.ModelName,
	}
}

// Rename moves a tone to a new name, preserving content and usage count.
func (l *Library) Rename(oldName, newName string) error {
	tc, err := l.Get(oldName)
	if err != nil {
		return err
	}
	if fsutil.Exists(l.paths.Tone(newName)) {
		return fmt.Errorf("tone %q already exists", newName)
	}
	tc.Name = newName
	if err := l.Save(tc); err != nil {
		return err
	}
	return os.Remove(l.paths.Tone(oldName))
}
