package model

import "time"

// Provider identifiers accepted in ModelConfig.Provider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ModelConfig names the LLM used for a generation call.
// Resolution order: explicit request override > profile preferred model >
// global default. It must be fully populated before any collaborator call.
type ModelConfig struct {
	Provider    string  `json:"provider"`
	ModelName   string  `json:"model_name"`
	Temperature float64 `json:"temperature"`
}

// Profile is an isolated namespace of background content, job postings and
// renders. Exactly one profile is current per data directory.
type Profile struct {
	Name            string       `json:"name"`
	DisplayName     string       `json:"display_name"`
	CreatedAt       time.Time    `json:"created_at"`
	PreferredModel  *ModelConfig `json:"preferred_model,omitempty"`
	DefaultTone     string       `json:"default_tone,omitempty"`
	DefaultTemplate string       `json:"default_template"`
}

// Section names one of the user's background markdown files.
type Section string

const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionContact    Section = "contact"
	SectionReference  Section = "reference"
)

// Sections returns all background sections in their canonical order.
func Sections() []Section {
	return []Section{SectionExperience, SectionEducation, SectionContact, SectionReference}
}

// ValidSection reports whether s names a known background section.
func ValidSection(s Section) bool {
	switch s {
	case SectionExperience, SectionEducation, SectionContact, SectionReference:
		return true
	}
	return false
}

// ContentSection is the raw markdown of one background file.
type ContentSection struct {
	Section      Section
	Content      string
	LastModified time.Time
}

// Background holds all background sections keyed by name. Missing files load
// as empty sections, so a fresh profile is immediately usable.
type Background map[Section]ContentSection

// JobPostingContent is what the parse collaborator extracts from raw posting
// text. No system metadata; the archive adds that on ingestion.
type JobPostingContent struct {
	Title                string   `json:"title"`
	Company              string   `json:"company"`
	Location             string   `json:"location,omitempty"`
	Requirements         []string `json:"requirements"`
	Responsibilities     []string `json:"responsibilities"`
	Keywords             []string `json:"keywords"`
	ToneReasoning        string   `json:"tone_reasoning"`
	Pay                  string   `json:"pay,omitempty"`
	Industry             string   `json:"industry"`
	PracticalDescription string   `json:"practical_description"`
}

// JobPosting is an archived posting. Immutable once stored except for
// RenderCount and Notes. ID is derived from the content fingerprint, so
// re-ingesting identical raw text resolves to the same record.
type JobPosting struct {
	ID          string `json:"id"`
	Fingerprint string `json:"fingerprint"`
	JobPostingContent
	CreatedAt     time.Time `json:"created_at"`
	RawContent    string    `json:"raw_content"` // verbatim input, never altered
	ModelProvider string    `json:"model_provider"`
	ModelName     string    `json:"model_name"`
	RenderCount   int       `json:"render_count"`
	Notes         string    `json:"notes,omitempty"`
}

// ToneConfiguration is a named prompt/style configuration. Stored as a YAML
// file per tone; renders snapshot the content they used so later edits do not
// rewrite historical provenance.
type ToneConfiguration struct {
	Name          string    `yaml:"name" json:"name"`
	Description   string    `yaml:"description" json:"description"`
	ModelProvider string    `yaml:"model_provider" json:"model_provider"`
	ModelName     string    `yaml:"model_name" json:"model_name"`
	CreatedAt     time.Time `yaml:"created_at" json:"created_at"`
	UsageCount    int       `yaml:"usage_count" json:"usage_count"`
}

// ToneSnapshot is the frozen tone content recorded inside a render.
type ToneSnapshot struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	ModelProvider string `json:"model_provider,omitempty"`
	ModelName     string `json:"model_name,omitempty"`
}

// RenderRecord is one immutable generated resume tied to a job posting.
// Records are append-only; iteration produces a new record, never an edit.
// ResumeMarkdown lives in resume.md next to the metadata file and is
// populated on load, so it is excluded from the metadata JSON.
type RenderRecord struct {
	Seq             int           `json:"seq"`
	JobPostingID    string        `json:"job_posting_id"`
	CreatedAt       time.Time     `json:"created_at"`
	ToneUsed        *ToneSnapshot `json:"tone_used,omitempty"`
	Model           ModelConfig   `json:"model_config"`
	Summary         string        `json:"summary"`
	PDFPath         string        `json:"pdf_path,omitempty"`
	FeedbackApplied []string      `json:"user_feedback_applied,omitempty"`
	ResumeMarkdown  string        `json:"-"`
}
