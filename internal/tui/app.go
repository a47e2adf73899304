// Package tui provides the terminal user interface.
package tui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/AntoineGS/deskforge/internal/desktop"
	"github.com/AntoineGS/deskforge/internal/form"
)

// Options configures a form session.
type Options struct {
	// Before holds the edited file's content, used for the change diff.
	Before  []byte
	Form    form.Options
	NoColor bool
}

// Result describes what a finished session persisted.
type Result struct {
	FileName string
	Record   desktop.Record
	Before   []byte
	Saved    bool
	Edited   bool
}

// Run shows the form until the user saves, cancels or quits. A failed save
// ends the session with an error.
func Run(opts Options) (Result, error) {
	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model := NewModel(form.New(opts.Form))

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("TUI error: %w", err)
	}

	m, ok := finalModel.(Model)
	if !ok {
		return Result{}, errors.New("unexpected model type")
	}

	return m.Result(opts.Before)
}

// Result reports the outcome of the session driven by m.
func (m Model) Result(before []byte) (Result, error) {
	if m.err != nil {
		return Result{}, m.err
	}

	f := m.form
	return Result{
		FileName: f.FileName(),
		Record:   f.Record(),
		Before:   before,
		Saved:    f.Saved(),
		Edited:   f.Editing(),
	}, nil
}

// Summary renders a one-line description of the result followed, for saved
// edits, by a diff of the record.
func Summary(r Result) string {
	if !r.Saved {
		return MutedTextStyle.Render("No changes saved.")
	}

	if !r.Edited {
		return SuccessStyle.Render("Created " + r.FileName)
	}

	diff := desktop.Diff(r.Before, r.Record.Bytes())
	if diff == "" {
		return SuccessStyle.Render("Saved " + r.FileName + " (unchanged)")
	}
	return SuccessStyle.Render("Updated "+r.FileName) + "\n" + diff
}

// IsTerminal checks if stdout is a terminal
func IsTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
