package pdf

import (
	"errors"
	"strings"
	"testing"

	"github.com/amishk599/tailor/internal/model"
)

const sampleResume = `# Jane Smith

jane@example.com | San Francisco, CA

## Summary

Senior backend engineer with eight years building payment infrastructure.

## Experience

### Initech - Senior Engineer

- Led the rewrite of the settlement pipeline
- Cut p99 checkout latency by 40%
  - Profiling and query tuning
- Mentored four engineers

## Skills

Go, Postgres, Kafka, Kubernetes
`

func TestRenderPDF(t *testing.T) {
	r := NewRenderer()

	for _, styleName := range Styles() {
		t.Run(styleName, func(t *testing.T) {
			out, err := r.RenderPDF(sampleResume, styleName)
			if err != nil {
				t.Fatalf("RenderPDF: %v", err)
			}
			if !strings.HasPrefix(string(out), "%PDF") {
				t.Fatalf("output does not start with %%PDF: %q", out[:min(len(out), 8)])
			}
			if len(out) < 1000 {
				t.Fatalf("suspiciously small PDF: %d bytes", len(out))
			}
		})
	}
}

func TestRenderPDFUnknownStyle(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderPDF(sampleResume, "baroque")
	var pdfErr *model.PDFError
	if !errors.As(err, &pdfErr) {
		t.Fatalf("error = %v, want PDFError", err)
	}
	if !strings.Contains(err.Error(), "baroque") {
		t.Errorf("error does not name the style: %v", err)
	}
}

func TestRenderPDFUnicode(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderPDF("# Zoë Müller\n\n## Summary\n\nRésumé with non-ASCII characters.", "professional")
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Fatal("output is not a PDF")
	}
}

func TestRenderPDFEmptyDocument(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderPDF("", "modern")
	if err != nil {
		t.Fatalf("RenderPDF on empty input: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Fatal("output is not a PDF")
	}
}
