package content

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// ValidateMarkdown is the sanity check applied to collaborator-produced
// markdown before it is committed anywhere: the text must be valid UTF-8 and
// must survive a goldmark render.
func ValidateMarkdown(src string) error {
	if !utf8.ValidString(src) {
		return fmt.Errorf("markdown is not valid UTF-8")
	}
	if err := md.Convert([]byte(src), io.Discard); err != nil {
		return fmt.Errorf("markdown failed to parse: %w", err)
	}
	return nil
}

// ExtractSummary pulls the body of the "## Summary" section out of a resume,
// joined into a single line. Empty when the resume has no summary section.
func ExtractSummary(markdown string) string {
	var (
		inSummary bool
		lines     []string
	)
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.EqualFold(trimmed, "## summary"):
			inSummary = true
		case inSummary && strings.HasPrefix(trimmed, "##"):
			return strings.Join(lines, " ")
		case inSummary && trimmed != "":
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, " ")
}
