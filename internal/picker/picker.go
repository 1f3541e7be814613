// Package picker holds the small interactive terminal surfaces: a list
// picker for choosing among postings, tones or profiles, a spinner shown
// during LLM calls, and a render history browser.
package picker

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("35")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 0, 0, 6)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("35")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

// Item is one selectable row. Desc is optional.
type Item struct {
	Label string
	Desc  string
}

type pickerModel struct {
	title  string
	items  []Item
	cursor int
	chosen int // -1 = no choice yet, -2 = quit
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.chosen = -2
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := pickerTitleStyle.Render(m.title)
	s += "\n"

	for i, it := range m.items {
		if i == m.cursor {
			s += pickerSelectedStyle.Render("> "+it.Label) + "\n"
		} else {
			s += pickerItemStyle.Render(it.Label) + "\n"
		}
		if it.Desc != "" {
			s += pickerDescStyle.Render(it.Desc) + "\n"
		}
	}

	s += pickerHintStyle.Render("↑/↓/j/k navigate  enter select  q quit")
	return s
}

// RunPicker shows an interactive selector over items.
// Returns the index of the chosen item, or -1 if the user quit.
func RunPicker(title string, items []Item) (int, error) {
	m := pickerModel{
		title:  title,
		items:  items,
		chosen: -1,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return -1, err
	}

	final := result.(pickerModel)
	if final.chosen == -2 {
		return -1, nil
	}
	return final.chosen, nil
}
