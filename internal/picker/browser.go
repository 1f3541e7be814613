package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/tailor/internal/model"
)

const timeLayout = "Jan 2 2006 15:04"

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("35"))

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	browserHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	renderRowStyle = lipgloss.NewStyle()

	selectedRenderRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("29"))

	renderMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

type browserModel struct {
	jobTitle string
	renders  []model.RenderRecord
	latest   int

	cursor     int
	activePane int // 0=list, 1=content
	viewport   viewport.Model
	width      int
	height     int
	ready      bool
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) setContent() {
	rec := m.renders[m.cursor]
	var b strings.Builder
	b.WriteString(rec.ResumeMarkdown)
	if len(rec.FeedbackApplied) > 0 {
		b.WriteString("\n\n---\nFeedback applied:\n")
		for _, fb := range rec.FeedbackApplied {
			b.WriteString("  - " + fb + "\n")
		}
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentWidth := m.width - m.listWidth() - 6
		if !m.ready {
			m.viewport = viewport.New(contentWidth, m.height-5)
			m.ready = true
			m.setContent()
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = m.height - 5
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.activePane = 1 - m.activePane
			return m, nil
		case "up", "k":
			if m.activePane == 0 {
				if m.cursor > 0 {
					m.cursor--
					m.setContent()
				}
				return m, nil
			}
		case "down", "j":
			if m.activePane == 0 {
				if m.cursor < len(m.renders)-1 {
					m.cursor++
					m.setContent()
				}
				return m, nil
			}
		}
	}

	if m.activePane == 1 && m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m browserModel) listWidth() int {
	return 34
}

func (m browserModel) renderRow(i int) string {
	rec := m.renders[i]
	marker := " "
	if rec.Seq == m.latest {
		marker = "*"
	}
	label := fmt.Sprintf("%s %04d  %s", marker, rec.Seq, rec.CreatedAt.Local().Format(timeLayout))
	if i == m.cursor {
		return selectedRenderRowStyle.Render(label)
	}
	return renderRowStyle.Render(label)
}

func (m browserModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var list strings.Builder
	for i := range m.renders {
		list.WriteString(m.renderRow(i) + "\n")
		tone := "auto tone"
		if m.renders[i].ToneUsed != nil {
			tone = m.renders[i].ToneUsed.Name
		}
		list.WriteString(renderMetaStyle.Render("   "+tone) + "\n")
	}

	leftStyle, rightStyle := inactiveBorderStyle, activeBorderStyle
	if m.activePane == 0 {
		leftStyle, rightStyle = activeBorderStyle, inactiveBorderStyle
	}

	left := leftStyle.Width(m.listWidth()).Height(m.height - 4).Render(list.String())
	right := rightStyle.Width(m.viewport.Width + 2).Height(m.height - 4).Render(m.viewport.View())

	header := browserHeaderStyle.Render(fmt.Sprintf("Renders — %s (* latest)", m.jobTitle))
	status := statusBarStyle.Render("tab switch pane  ↑/↓/j/k move  q quit")

	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n" + status
}

// RunBrowser opens a two-pane render history browser: the lineage on the
// left, the selected render's markdown on the right.
func RunBrowser(jobTitle string, renders []model.RenderRecord, latestSeq int) error {
	if len(renders) == 0 {
		return fmt.Errorf("no renders to browse")
	}
	m := browserModel{
		jobTitle: jobTitle,
		renders:  renders,
		latest:   latestSeq,
		cursor:   len(renders) - 1,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
