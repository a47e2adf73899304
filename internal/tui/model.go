package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AntoineGS/deskforge/internal/form"
)

// Model is the bubbletea model driving one form session.
type Model struct {
	form   *form.Form
	err    error
	width  int
	height int
}

// NewModel wraps f in a bubbletea model.
func NewModel(f *form.Form) Model {
	return Model{form: f}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Key events go to the form; the program quits
// once the form is done or a save failed.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.SetWidth(inputWidth(msg.Width))
		return m, nil

	case tea.KeyMsg:
		cmd, err := m.form.Apply(msg)
		if err != nil {
			slog.Debug("form apply failed", slog.String("error", err.Error()))
			m.err = err
			return m, tea.Quit
		}
		if m.form.Done() {
			return m, tea.Quit
		}
		return m, cmd
	}

	return m, m.form.Forward(msg)
}

// inputWidth is the text buffer width that fits a terminal width columns wide.
func inputWidth(width int) int {
	return max(width-RowOverhead, MinInputWidth)
}

// Form returns the form the model drives.
func (m Model) Form() *form.Form {
	return m.form
}

// Err returns the persistence error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) tooSmall() bool {
	// Size is unknown until the first WindowSizeMsg.
	if m.width == 0 && m.height == 0 {
		return false
	}
	return m.width < MinWidth || m.height < MinHeight
}
