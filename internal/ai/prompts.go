package ai

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed prompts/job_parse.md
var jobParsePromptRaw string

//go:embed prompts/resume_generate.md
var resumeGeneratePromptRaw string

//go:embed prompts/resume_revise.md
var resumeRevisePromptRaw string

//go:embed prompts/content_update.md
var contentUpdatePromptRaw string

// Prompt templates are parsed once at package init and reused on every call.
var (
	jobParseTemplate = template.Must(template.New("job_parse").Parse(jobParsePromptRaw))

	resumeGenerateTemplate = template.Must(
		template.New("resume_generate").
			Funcs(template.FuncMap{"join": strings.Join}).
			Parse(resumeGeneratePromptRaw))

	resumeReviseTemplate = template.Must(template.New("resume_revise").Parse(resumeRevisePromptRaw))

	contentUpdateTemplate = template.Must(template.New("content_update").Parse(contentUpdatePromptRaw))
)

// System prompts pairing with the templates above.
const (
	jobParseSystemPrompt = "You are an expert at parsing job postings and extracting comprehensive structured information for resume optimization. Be exhaustive, preserve technical precision, and respond only with the requested JSON object."

	resumeGenerateSystemPrompt = "You are an expert resume writer who creates tailored resumes for specific job postings. You follow the provided template structure exactly and respond only with resume Markdown."

	resumeReviseSystemPrompt = "You are an expert resume editor. You apply the user's feedback to an existing resume without degrading the rest of it, and respond only with resume Markdown."

	contentUpdateSystemPrompt = "You are a careful editor of career background documents. You apply the requested change and nothing else, and respond only with the updated Markdown document."
)
