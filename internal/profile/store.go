// Package profile manages the set of named profiles and the global
// current-profile pointer. Each profile owns an isolated directory tree;
// switching profiles changes path resolution for every other component and
// never touches another profile's data.
package profile

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/amishk599/tailor/internal/config"
	"github.com/amishk599/tailor/internal/fsutil"
	"github.com/amishk599/tailor/internal/model"
)

//go:embed seeds
var seedFS embed.FS

// seedFiles maps embedded seed files to their in-profile destinations.
var seedFiles = map[string]func(Paths) string{
	"seeds/experience.md":       func(p Paths) string { return p.Section(model.SectionExperience) },
	"seeds/education.md":        func(p Paths) string { return p.Section(model.SectionEducation) },
	"seeds/contact.md":          func(p Paths) string { return p.Section(model.SectionContact) },
	"seeds/reference.md":        func(p Paths) string { return p.Section(model.SectionReference) },
	"seeds/template_default.md": func(p Paths) string { return p.Template("default") },
	"seeds/tone_technical.yaml": func(p Paths) string {
		return filepath.Join(p.TonesDir(), "technical_professional.yaml")
	},
	"seeds/tone_creative.yaml": func(p Paths) string {
		return filepath.Join(p.TonesDir(), "creative_engaging.yaml")
	},
}

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// DefaultTemplateSeed returns the embedded seed content for the "default"
// resume template, used to restore it after out-of-band deletion.
func DefaultTemplateSeed() []byte {
	data, err := seedFS.ReadFile("seeds/template_default.md")
	if err != nil {
		panic(fmt.Sprintf("embedded seed: %v", err))
	}
	return data
}

// Store manages profiles under one data directory and keeps the global
// config's profile registry in sync.
type Store struct {
	dataDir string
	cfg     *config.Config
}

// NewStore creates a Store over dataDir backed by the loaded global config.
func NewStore(dataDir string, cfg *config.Config) *Store {
	return &Store{dataDir: dataDir, cfg: cfg}
}

// Paths returns the path resolver for the named profile.
func (s *Store) Paths(name string) Paths {
	return NewPaths(s.dataDir, name)
}

// Create registers a new profile and builds its directory skeleton. The
// skeleton build is idempotent: an interrupted create completes on retry
// instead of corrupting.
func (s *Store) Create(name, displayName string) (model.Profile, error) {
	if !validName.MatchString(name) {
		return model.Profile{}, fmt.Errorf("profile %q: %w", name, model.ErrInvalidName)
	}
	if _, exists := s.cfg.Profiles[name]; exists {
		return model.Profile{}, fmt.Errorf("profile %q: %w", name, model.ErrDuplicateProfile)
	}
	if displayName == "" {
		displayName = name
	}

	if err := s.EnsureSkeleton(name); err != nil {
		return model.Profile{}, err
	}

	paths := s.Paths(name)
	prof := model.Profile{
		Name:            name,
		DisplayName:     displayName,
		CreatedAt:       time.Now().UTC(),
		DefaultTemplate: "default",
	}
	// A previous interrupted create may have left a config behind; adopt it
	// rather than resetting created_at.
	if fsutil.Exists(paths.Config()) {
		existing, err := s.Get(name)
		if err == nil {
			prof = existing
		}
	} else if err := fsutil.WriteJSONAtomic(paths.Config(), prof); err != nil {
		return model.Profile{}, fmt.Errorf("write profile config: %w", err)
	}

	s.cfg.Profiles[name] = config.ProfileSummary{
		DisplayName: prof.DisplayName,
		CreatedAt:   prof.CreatedAt,
	}
	if s.cfg.CurrentProfile == "" {
		s.cfg.CurrentProfile = name
	}
	if err := s.cfg.Save(s.dataDir); err != nil {
		return model.Profile{}, err
	}
	return prof, nil
}

// EnsureSkeleton creates any missing directories and seed files for the
// named profile. Existing files are never overwritten, so a repeated init
// detects and completes a partial skeleton.
func (s *Store) EnsureSkeleton(name string) error {
	paths := s.Paths(name)
	dirs := []string{
		paths.BackgroundDir(),
		paths.TemplatesDir(),
		paths.TonesDir(),
		paths.JobPostingsDir(),
		paths.RendersDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	for src, dst := range seedFiles {
		target := dst(paths)
		if fsutil.Exists(target) {
			continue
		}
		data, err := seedFS.ReadFile(src)
		if err != nil {
			return fmt.Errorf("read seed %s: %w", src, err)
		}
		if err := fsutil.WriteFileAtomic(target, data, 0o644); err != nil {
			return fmt.Errorf("seed %s: %w", target, err)
		}
	}
	return nil
}

// Get loads a profile's config.
func (s *Store) Get(name string) (model.Profile, error) {
	var prof model.Profile
	err := fsutil.ReadJSON(s.Paths(name).Config(), &prof)
	if fsutil.IsNotExist(err) {
		return model.Profile{}, fmt.Errorf("profile %q: %w", name, model.ErrNotFound)
	}
	if err != nil {
		return model.Profile{}, err
	}
	return prof, nil
}

// Current loads the current profile per the global config.
func (s *Store) Current() (model.Profile, error) {
	if s.cfg.CurrentProfile == "" {
		return model.Profile{}, fmt.Errorf("no current profile: %w", model.ErrNotFound)
	}
	return s.Get(s.cfg.CurrentProfile)
}

// List returns all registered profiles sorted by name. Profiles whose config
// fails to load are skipped.
func (s *Store) List() []model.Profile {
	names := make([]string, 0, len(s.cfg.Profiles))
	for name := range s.cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	profs := make([]model.Profile, 0, len(names))
	for _, name := range names {
		prof, err := s.Get(name)
		if err != nil {
			continue
		}
		profs = append(profs, prof)
	}
	return profs
}

// Switch updates the global current-profile pointer. The change is a single
// atomic config write: a crash mid-switch leaves the previous pointer intact.
func (s *Store) Switch(name string) error {
	if _, exists := s.cfg.Profiles[name]; !exists {
		return fmt.Errorf("profile %q: %w", name, model.ErrNotFound)
	}
	s.cfg.CurrentProfile = name
	return s.cfg.Save(s.dataDir)
}

// Delete removes a profile and all its data. The current profile and the
// last remaining profile are refused; switch away first.
func (s *Store) Delete(name string) error {
	if _, exists := s.cfg.Profiles[name]; !exists {
		return fmt.Errorf("profile %q: %w", name, model.ErrNotFound)
	}
	if name == s.cfg.CurrentProfile {
		return fmt.Errorf("profile %q is the current profile; switch away before deleting", name)
	}
	if len(s.cfg.Profiles) == 1 {
		return fmt.Errorf("profile %q is the only profile; refusing to delete", name)
	}
	if err := os.RemoveAll(s.Paths(name).Root()); err != nil {
		return fmt.Errorf("remove profile %q: %w", name, err)
	}
	delete(s.cfg.Profiles, name)
	return s.cfg.Save(s.dataDir)
}

// SaveProfile persists changes to a profile's own config (preferred model,
// default tone, default template).
func (s *Store) SaveProfile(prof model.Profile) error {
	if _, exists := s.cfg.Profiles[prof.Name]; !exists {
		return fmt.Errorf("profile %q: %w", prof.Name, model.ErrNotFound)
	}
	if err := fsutil.WriteJSONAtomic(s.Paths(prof.Name).Config(), prof); err != nil {
		return fmt.Errorf("write profile config: %w", err)
	}
	return nil
}
