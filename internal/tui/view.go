package tui

import (
	"fmt"
	"strings"

	"github.com/AntoineGS/deskforge/internal/form"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.form.Done() || m.err != nil {
		return ""
	}

	if m.tooSmall() {
		return m.viewTooSmall()
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title()))
	b.WriteString("\n")

	var required, optional, actions []form.FieldID
	for _, field := range form.Fields() {
		switch {
		case field.Required():
			required = append(required, field)
		case field.Kind() == form.KindAction:
			actions = append(actions, field)
		default:
			optional = append(optional, field)
		}
	}

	b.WriteString(SectionStyle.Render("Required"))
	b.WriteString("\n")
	m.writeRows(&b, required)
	b.WriteString("\n")

	b.WriteString(SectionStyle.Render("Optional"))
	b.WriteString("\n")
	m.writeRows(&b, optional)
	b.WriteString("\n")

	m.writeRows(&b, actions)
	b.WriteString("\n")

	b.WriteString(m.renderStatus())

	return BaseStyle.Render(b.String())
}

func (m Model) title() string {
	if m.form.Editing() {
		return "deskforge - Editing " + m.form.FileName()
	}
	return "deskforge - New launcher"
}

// writeRows renders fields in order, each followed by its open dropdown.
func (m Model) writeRows(b *strings.Builder, fields []form.FieldID) {
	for _, field := range fields {
		b.WriteString(m.renderRow(field))
		b.WriteString("\n")

		if ov, ok := m.form.Overlay(); ok && ov.Target == field {
			b.WriteString(renderOverlay(ov))
		}
	}
}

func (m Model) renderRow(field form.FieldID) string {
	focused := m.form.Focus() == field

	cursor := NoCursor
	if focused {
		cursor = FocusedStyle.Render(CursorMarker)
	}

	switch field.Kind() {
	case form.KindToggle:
		box := UncheckedStyle.Render(CheckboxUnchecked)
		if m.form.Toggle(field) {
			box = CheckedStyle.Render(CheckboxChecked)
		}
		return cursor + box + " " + m.label(field, focused)

	case form.KindAction:
		button := CancelButton
		if field == form.FieldSave {
			button = SaveButton
			if !m.form.CanSave() {
				return cursor + MutedTextStyle.Render(button)
			}
		}
		if focused {
			return cursor + FocusedStyle.Render(button)
		}
		return cursor + button

	case form.KindText, form.KindPath, form.KindChoice:
	}

	verdict := m.form.Verdict(field)
	row := cursor + m.label(field, focused) + verdictStyle(verdict).Render(verdict.Suffix()) + ": "

	if focused && m.form.Mode() == form.ModeInsert && field.HasBuffer() {
		return row + m.form.BufferView(field)
	}
	return row + m.form.Value(field)
}

func (m Model) label(field form.FieldID, focused bool) string {
	label := m.form.Label(field)
	if focused {
		return FocusedStyle.Render(label)
	}
	return label
}

func renderOverlay(ov form.Overlay) string {
	var b strings.Builder
	for i, option := range ov.Options {
		b.WriteString(OverlayIndent)
		if i == ov.Highlighted {
			b.WriteString(FocusedStyle.Render(CursorMarker + option))
		} else {
			b.WriteString(NoCursor + option)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatus() string {
	mode := m.form.Mode()
	if mode == form.ModeInsert {
		_, overlay := m.form.Overlay()
		return InsertModeStyle.Render(mode.String()) + " " + RenderHelp(form.InsertHelp(overlay)...)
	}
	return ModeStyle.Render(mode.String()) + " " + RenderHelp(form.NormalHelp()...)
}

func (m Model) viewTooSmall() string {
	return ErrorStyle.Render("Terminal too small") + "\n" +
		fmt.Sprintf("Need at least %dx%d, have %dx%d", MinWidth, MinHeight, m.width, m.height)
}
