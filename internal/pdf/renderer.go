// Package pdf renders resume markdown to PDF. Output is best effort: the
// markdown render is the artifact of record and a PDF failure never blocks a
// commit.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/amishk599/tailor/internal/model"
)

// style is one named visual treatment. Sizes are in points.
type style struct {
	font         string
	bodySize     float64
	nameSize     float64
	headingSize  float64
	subHeadSize  float64
	bodyColor    [3]int
	headingColor [3]int
	accentColor  [3]int
	headingRule  bool
}

// styles keys are the template names accepted by Render.
var styles = map[string]style{
	"professional": {
		font:         "Helvetica",
		bodySize:     10.5,
		nameSize:     22,
		headingSize:  13,
		subHeadSize:  11.5,
		bodyColor:    [3]int{51, 51, 51},
		headingColor: [3]int{26, 26, 26},
		accentColor:  [3]int{221, 221, 221},
		headingRule:  true,
	},
	"modern": {
		font:         "Helvetica",
		bodySize:     10.5,
		nameSize:     24,
		headingSize:  13,
		subHeadSize:  11.5,
		bodyColor:    [3]int{45, 55, 72},
		headingColor: [3]int{26, 54, 93},
		accentColor:  [3]int{49, 130, 206},
		headingRule:  true,
	},
}

const (
	pageMargin = 54 // 0.75in
	lineHeight = 14
)

// Renderer converts resume markdown into a styled PDF document.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// Styles lists the accepted style names.
func Styles() []string {
	return []string{"modern", "professional"}
}

// RenderPDF converts markdown to PDF bytes in the named style.
func (r *Renderer) RenderPDF(markdown, styleName string) ([]byte, error) {
	st, ok := styles[styleName]
	if !ok {
		return nil, &model.PDFError{Err: fmt.Errorf("unknown style %q (have: %s)", styleName, strings.Join(Styles(), ", "))}
	}

	source := []byte(markdown)
	doc := r.md.Parser().Parse(text.NewReader(source))

	p := fpdf.New("P", "pt", "Letter", "")
	p.SetMargins(pageMargin, pageMargin, pageMargin)
	p.SetAutoPageBreak(true, pageMargin)
	p.AddPage()
	tr := p.UnicodeTranslatorFromDescriptor("")

	w := &writer{pdf: p, tr: tr, style: st, source: source}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, &model.PDFError{Err: err}
	}
	return buf.Bytes(), nil
}

// writer walks block nodes and emits them into the PDF.
type writer struct {
	pdf       *fpdf.Fpdf
	tr        func(string) string
	style     style
	source    []byte
	afterName bool
}

func (w *writer) block(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		w.heading(node)
	case *ast.Paragraph, *ast.TextBlock:
		w.paragraph(n)
	case *ast.List:
		w.list(node, 0)
	case *ast.ThematicBreak:
		w.rule()
	default:
		// Block types a resume never uses (tables, code) fall back to
		// plain text so nothing silently disappears.
		if txt := nodeText(n, w.source); txt != "" {
			w.paragraph(n)
		}
	}
}

func (w *writer) heading(h *ast.Heading) {
	txt := nodeText(h, w.source)
	st := w.style

	switch {
	case h.Level == 1:
		w.pdf.SetFont(st.font, "B", st.nameSize)
		w.pdf.SetTextColor(st.headingColor[0], st.headingColor[1], st.headingColor[2])
		w.pdf.MultiCell(0, st.nameSize+4, w.tr(txt), "", "L", false)
		w.pdf.Ln(4)
		w.afterName = true
		return
	case h.Level == 2:
		w.pdf.Ln(8)
		w.pdf.SetFont(st.font, "B", st.headingSize)
		w.pdf.SetTextColor(st.headingColor[0], st.headingColor[1], st.headingColor[2])
		w.pdf.MultiCell(0, st.headingSize+3, w.tr(txt), "", "L", false)
		if st.headingRule {
			w.pdf.SetDrawColor(st.accentColor[0], st.accentColor[1], st.accentColor[2])
			pageW, _ := w.pdf.GetPageSize()
			y := w.pdf.GetY() + 2
			w.pdf.Line(pageMargin, y, pageW-pageMargin, y)
			w.pdf.Ln(6)
		} else {
			w.pdf.Ln(4)
		}
	default:
		w.pdf.Ln(6)
		w.pdf.SetFont(st.font, "B", st.subHeadSize)
		w.pdf.SetTextColor(st.bodyColor[0], st.bodyColor[1], st.bodyColor[2])
		w.pdf.MultiCell(0, st.subHeadSize+3, w.tr(txt), "", "L", false)
		w.pdf.Ln(2)
	}
	w.afterName = false
}

func (w *writer) paragraph(n ast.Node) {
	txt := nodeText(n, w.source)
	if txt == "" {
		return
	}
	st := w.style
	size := st.bodySize
	if w.afterName {
		// Contact line directly under the name renders smaller and muted.
		size = st.bodySize - 1
		w.pdf.SetTextColor(102, 102, 102)
	} else {
		w.pdf.SetTextColor(st.bodyColor[0], st.bodyColor[1], st.bodyColor[2])
	}
	w.pdf.SetFont(st.font, "", size)
	w.pdf.MultiCell(0, lineHeight, w.tr(txt), "", "L", false)
	w.pdf.Ln(4)
	w.afterName = false
}

func (w *writer) list(l *ast.List, depth int) {
	st := w.style
	indent := float64(14 * (depth + 1))

	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				w.list(nested, depth+1)
				continue
			}
			txt := nodeText(child, w.source)
			if txt == "" {
				continue
			}
			w.pdf.SetFont(st.font, "", st.bodySize)
			w.pdf.SetTextColor(st.bodyColor[0], st.bodyColor[1], st.bodyColor[2])
			w.pdf.SetX(pageMargin + indent)
			w.pdf.MultiCell(0, lineHeight, w.tr("• "+txt), "", "L", false)
		}
	}
	w.pdf.Ln(4)
	w.afterName = false
}

func (w *writer) rule() {
	st := w.style
	w.pdf.SetDrawColor(st.accentColor[0], st.accentColor[1], st.accentColor[2])
	pageW, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY() + 4
	w.pdf.Line(pageMargin, y, pageW-pageMargin, y)
	w.pdf.Ln(10)
}

// nodeText flattens a node's inline content to plain text. Styling spans are
// dropped; soft line breaks become spaces.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
