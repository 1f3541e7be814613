package profile

import (
	"fmt"
	"path/filepath"

	"github.com/amishk599/tailor/internal/model"
)

// Paths resolves every location inside one profile's directory tree. It is a
// pure value: no method touches the filesystem. All other components go
// through it so nothing else hardcodes the layout.
type Paths struct {
	root string
}

// NewPaths returns the resolver for the named profile under dataDir.
func NewPaths(dataDir, name string) Paths {
	return Paths{root: filepath.Join(dataDir, "profiles", name)}
}

// Root is the profile's directory.
func (p Paths) Root() string { return p.root }

// Config is the profile's own config.json.
func (p Paths) Config() string { return filepath.Join(p.root, "config.json") }

// BackgroundDir holds the user's background markdown sections.
func (p Paths) BackgroundDir() string { return filepath.Join(p.root, "background") }

// Section is one background markdown file.
func (p Paths) Section(s model.Section) string {
	return filepath.Join(p.BackgroundDir(), string(s)+".md")
}

// TemplatesDir holds resume templates.
func (p Paths) TemplatesDir() string { return filepath.Join(p.root, "templates") }

// Template is one resume template file.
func (p Paths) Template(name string) string {
	return filepath.Join(p.TemplatesDir(), name+".md")
}

// TonesDir holds tone configuration files.
func (p Paths) TonesDir() string { return filepath.Join(p.root, "tones") }

// Tone is one tone configuration file.
func (p Paths) Tone(name string) string {
	return filepath.Join(p.TonesDir(), name+".yaml")
}

// JobPostingsDir holds archived job posting records.
func (p Paths) JobPostingsDir() string { return filepath.Join(p.root, "job_postings") }

// JobPosting is one archived posting record.
func (p Paths) JobPosting(id string) string {
	return filepath.Join(p.JobPostingsDir(), id+".json")
}

// RendersDir holds all render lineages.
func (p Paths) RendersDir() string { return filepath.Join(p.root, "renders") }

// RenderJobDir holds all renders for one job posting.
func (p Paths) RenderJobDir(jobID string) string {
	return filepath.Join(p.RendersDir(), jobID)
}

// RenderDir is the directory of one render, named by its zero-padded
// sequence number so lexical order equals creation order.
func (p Paths) RenderDir(jobID string, seq int) string {
	return filepath.Join(p.RenderJobDir(jobID), fmt.Sprintf("%04d", seq))
}

// RenderMetadata is a render's metadata record.
func (p Paths) RenderMetadata(jobID string, seq int) string {
	return filepath.Join(p.RenderDir(jobID, seq), "metadata.json")
}

// RenderResume is a render's markdown content.
func (p Paths) RenderResume(jobID string, seq int) string {
	return filepath.Join(p.RenderDir(jobID, seq), "resume.md")
}

// RenderPDF is a render's optional PDF output.
func (p Paths) RenderPDF(jobID string, seq int) string {
	return filepath.Join(p.RenderDir(jobID, seq), "resume.pdf")
}

// LatestPointer is the small record naming which render of a job posting is
// current. It is replaced atomically, never edited in place.
func (p Paths) LatestPointer(jobID string) string {
	return filepath.Join(p.RenderJobDir(jobID), "latest.json")
}
