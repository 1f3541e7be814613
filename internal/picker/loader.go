package picker

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type workDoneMsg struct {
	result any
	err    error
}

type loaderModel struct {
	label   string
	spinner spinner.Model
	workFn  func(ctx context.Context) (any, error)
	result  any
	err     error
	done    bool
}

func newLoaderModel(label string, workFn func(ctx context.Context) (any, error)) loaderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	return loaderModel{label: label, spinner: s, workFn: workFn}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doWork(), m.spinner.Tick)
}

func (m loaderModel) doWork() tea.Cmd {
	workFn := m.workFn
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		result, err := workFn(ctx)
		return workDoneMsg{result: result, err: err}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.result = msg.result
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s...\n", m.spinner.View(), m.label)
}

// RunLoader shows a spinner while workFn runs. It renders inline (no alt
// screen). LLM calls are slow; the spinner is the only feedback the user
// gets until the collaborator answers.
func RunLoader[T any](label string, workFn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	m := newLoaderModel(label, func(ctx context.Context) (any, error) {
		return workFn(ctx)
	})

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return zero, err
	}
	final := result.(loaderModel)
	if final.err != nil {
		return zero, final.err
	}
	if final.result == nil {
		return zero, nil
	}
	return final.result.(T), nil
}
