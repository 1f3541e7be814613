// Package content manages the user's background markdown sections and the
// resume templates they feed into generation.
package content

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/amishk599/tailor/internal/fsutil"
	"github.com/amishk599/tailor/internal/model"
	"github.com/amishk599/tailor/internal/profile"
)

// Library reads and writes one profile's content files.
type Library struct {
	paths profile.Paths
}

// NewLibrary creates a Library over the given profile's paths.
func NewLibrary(paths profile.Paths) *Library {
	return &Library{paths: paths}
}

// LoadBackground reads all background sections. Missing files load as empty
// sections, not errors, so a freshly initialized profile is usable at once.
func (l *Library) LoadBackground() (model.Background, error) {
	bg := make(model.Background, len(model.Sections()))
	for _, sec := range model.Sections() {
		cs, err := l.Section(sec)
		if err != nil {
			return nil, err
		}
		bg[sec] = cs
	}
	return bg, nil
}

// Section reads one background section. A missing file is an empty section.
func (l *Library) Section(sec model.Section) (model.ContentSection, error) {
	if !model.ValidSection(sec) {
		return model.ContentSection{}, fmt.Errorf("section %q: %w", sec, model.ErrNotFound)
	}
	path := l.paths.Section(sec)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.ContentSection{Section: sec}, nil
		}
		return model.ContentSection{}, fmt.Errorf("read %s: %w", path, err)
	}
	cs := model.ContentSection{Section: sec, Content: string(data)}
	if info, err := os.Stat(path); err == nil {
		cs.LastModified = info.ModTime()
	}
	return cs, nil
}

// Write replaces a background section's content atomically.
func (l *Library) Write(sec model.Section, content string) error {
	if !model.ValidSection(sec) {
		return fmt.Errorf("section %q: %w", sec, model.ErrNotFound)
	}
	if err := fsutil.WriteFileAtomic(l.paths.Section(sec), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write section %s: %w", sec, err)
	}
	return nil
}

// ApplyUpdate hands the current section content and a natural-language
// instruction to the edit collaborator and commits the full replacement it
// returns. Blank or invalid replacements are rejected before any write, so
// the user's existing content is never silently dropped.
func (l *Library) ApplyUpdate(ctx context.Context, sec model.Section, instruction string, editor model.ContentEditor) (model.ContentSection, error) {
	if strings.TrimSpace(instruction) == "" {
		return model.ContentSection{}, fmt.Errorf("instruction: %w", model.ErrEmptyInput)
	}
	current, err := l.Section(sec)
	if err != nil {
		return model.ContentSection{}, err
	}

	updated, err := editor.UpdateContent(ctx, current.Content, instruction)
	if err != nil {
		return model.ContentSection{}, fmt.Errorf("update %s: %w", sec, err)
	}
	if strings.TrimSpace(updated) == "" {
		return model.ContentSection{}, fmt.Errorf("update %s: %w", sec, model.ErrEmptyResult)
	}
	if err := ValidateMarkdown(updated); err != nil {
		return model.ContentSection{}, fmt.Errorf("update %s: %w", sec, err)
	}

	if err := l.Write(sec, updated); err != nil {
		return model.ContentSection{}, err
	}
	return l.Section(sec)
}

// Template loads a resume template by name. A missing "default" template is
// recreated from the profile seed; other missing names are NotFound.
func (l *Library) Template(name string) (string, error) {
	path := l.paths.Template(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if name == "default" {
				return l.restoreDefaultTemplate(path)
			}
			return "", fmt.Errorf("template %q: %w", name, model.ErrNotFound)
		}
		return "", fmt.Errorf("read template %s: %w", path, err)
	}
	return string(data), nil
}

// restoreDefaultTemplate rewrites the default template from the profile seed
// after it has been deleted out of band.
func (l *Library) restoreDefaultTemplate(path string) (string, error) {
	seed := profile.DefaultTemplateSeed()
	if err := fsutil.WriteFileAtomic(path, seed, 0o644); err != nil {
		return "", fmt.Errorf("restore default template: %w", err)
	}
	return string(seed), nil
}

// Templates lists available template names.
func (l *Library) Templates() ([]string, error) {
	entries, err := os.ReadDir(l.paths.TemplatesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read templates dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	return names, nil
}
