package form

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AntoineGS/deskforge/internal/desktop"
	"github.com/AntoineGS/deskforge/internal/tui/components"
)

// Mode is the input mode of the form.
type Mode int

// Input modes
const (
	ModeNormal Mode = iota
	ModeInsert
)

func (m Mode) String() string {
	if m == ModeInsert {
		return "INSERT"
	}
	return "NORMAL"
}

// LaunchKind tells which buffer backs the launch row.
type LaunchKind int

// Launch kinds
const (
	LaunchExec LaunchKind = iota
	LaunchURL
)

// Options configures a new Form.
type Options struct {
	Probe Probe
	Store Store
	// Entry seeds the form when editing an existing launcher.
	Entry *desktop.Entry
	// Name pre-fills the Name field when creating.
	Name string
	// FileName is the launcher being edited.
	FileName       string
	ExecPrefix     string
	SearchPath     []string
	IconExtensions []string
	Editing        bool
}

// Overlay describes an open dropdown.
type Overlay struct {
	Options     []string
	Preview     string
	Target      FieldID
	Highlighted int
}

type overlay struct {
	list   components.Dropdown
	target FieldID
}

// Form is the launcher form state. It is mutated only through Apply.
type Form struct {
	probe          Probe
	store          Store
	overlay        *overlay
	name           components.TextField
	exec           components.TextField
	url            components.TextField
	icon           components.TextField
	version        components.TextField
	comment        components.TextField
	actions        components.TextField
	typ            desktop.EntryType
	category       string
	fileName       string
	execPrefix     string
	searchPath     []string
	iconExtensions []string
	record         desktop.Record
	focus          FieldID
	mode           Mode
	pending        Pending
	noDisplay      bool
	startupNotify  bool
	terminal       bool
	// cmd collects the buffer commands produced while handling one event.
	cmd            tea.Cmd
	editing        bool
	done           bool
	saved          bool
}

// New creates a form in Normal mode. Focus starts on the launch row when a
// name was supplied or an entry is being edited.
func New(opts Options) *Form {
	if opts.Probe == nil || opts.Store == nil {
		panic("form: Options.Probe and Options.Store are required")
	}

	entry := desktop.DefaultEntry()
	if opts.Entry != nil {
		entry = *opts.Entry
	}
	if !opts.Editing && opts.Name != "" {
		entry.Name = opts.Name
	}

	f := &Form{
		probe:          opts.Probe,
		store:          opts.Store,
		name:           components.NewTextField(FieldName.String(), "Launcher name", entry.Name),
		exec:           components.NewTextField("Exec", "/path/to/executable", entry.Exec),
		url:            components.NewTextField("URL", "https://", entry.URL),
		icon:           components.NewTextField(FieldIcon.String(), "/path/to/icon.png", entry.Icon),
		version:        components.NewTextField(FieldVersion.String(), "", entry.Version),
		comment:        components.NewTextField(FieldComment.String(), "", entry.Comment),
		actions:        components.NewTextField(FieldAction.String(), "", entry.Actions),
		typ:            entry.Type,
		category:       entry.Category,
		noDisplay:      entry.NoDisplay,
		startupNotify:  entry.StartupNotify,
		terminal:       entry.Terminal,
		editing:        opts.Editing,
		searchPath:     opts.SearchPath,
		iconExtensions: opts.IconExtensions,
	}

	if opts.Editing {
		f.fileName = opts.FileName
		if f.fileName == "" {
			f.fileName = desktop.NormalizeName(entry.Name)
		}
	} else {
		// Edited records already carry their composed Exec line.
		f.execPrefix = opts.ExecPrefix
	}

	f.focus = FieldName
	if opts.Editing || opts.Name != "" {
		f.focus = FieldLaunch
	}
	if b := f.buffer(f.focus); b != nil {
		b.Focus()
	}

	return f
}

// Apply feeds one key event to the form and returns the command the text
// buffers asked for, such as cursor blinking. The only errors are persistence
// failures from Save.
func (f *Form) Apply(msg tea.KeyMsg) (tea.Cmd, error) {
	if f.done {
		return nil, nil
	}

	var err error
	if f.mode == ModeInsert {
		err = f.applyInsert(msg)
	} else {
		err = f.applyNormal(msg)
	}

	cmd := f.cmd
	f.cmd = nil
	return cmd, err
}

// Forward passes a non-key message, such as a cursor blink, to the buffer
// being edited.
func (f *Form) Forward(msg tea.Msg) tea.Cmd {
	if f.done || f.mode != ModeInsert {
		return nil
	}
	if b := f.buffer(f.focus); b != nil {
		return b.Update(msg)
	}
	return nil
}

// SetWidth sets the visible width of every text buffer.
func (f *Form) SetWidth(width int) {
	for _, b := range []*components.TextField{&f.name, &f.exec, &f.url, &f.icon, &f.version, &f.comment, &f.actions} {
		b.SetWidth(width)
	}
}

func (f *Form) queue(cmd tea.Cmd) {
	f.cmd = tea.Batch(f.cmd, cmd)
}

func (f *Form) applyNormal(msg tea.KeyMsg) error {
	if key.Matches(msg, Keys.ForceQuit, Keys.Quit) {
		f.done = true
		return nil
	}

	var seq Sequence
	f.pending, seq = f.pending.Feed(msg.String())

	switch seq {
	case SeqTop:
		f.setFocus(FieldName)
		return nil
	case SeqClear:
		if b := f.buffer(f.focus); b != nil {
			b.Clear()
		}
		return nil
	case SeqNone:
	}

	switch {
	case key.Matches(msg, Keys.Down):
		f.moveFocus(1)
	case key.Matches(msg, Keys.Up):
		f.moveFocus(-1)
	case key.Matches(msg, Keys.Bottom):
		f.setFocus(FieldSave)
	case key.Matches(msg, Keys.Activate):
		return f.activate()
	}

	return nil
}

func (f *Form) activate() error {
	switch f.focus.Kind() {
	case KindToggle:
		f.flip(f.focus)
		f.moveFocus(1)
	case KindChoice:
		f.openOverlay()
	case KindAction:
		if f.focus == FieldCancel {
			f.done = true
			return nil
		}
		return f.save()
	case KindText, KindPath:
		f.mode = ModeInsert
		f.queue(f.buffer(f.focus).EnterEditMode())
	}
	return nil
}

func (f *Form) openOverlay() {
	options := desktop.Types
	if f.focus == FieldCategory {
		options = desktop.Categories
	}

	f.overlay = &overlay{
		target: f.focus,
		list:   components.NewDropdown(options),
	}
	f.mode = ModeInsert
}

func (f *Form) applyInsert(msg tea.KeyMsg) error {
	if key.Matches(msg, Keys.ForceQuit) {
		f.done = true
		return nil
	}

	if f.overlay != nil {
		f.applyOverlay(msg)
		return nil
	}

	switch {
	case key.Matches(msg, Keys.Escape):
		f.toNormal()
	case key.Matches(msg, Keys.Submit):
		switch f.focus {
		case FieldComment:
			f.submit()
			f.toNormal()
		case FieldType, FieldCategory:
		default:
			f.submit()
		}
	default:
		if b := f.buffer(f.focus); b != nil {
			f.queue(b.Update(msg))
		}
	}

	return nil
}

func (f *Form) applyOverlay(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, Keys.Down):
		f.overlay.list.Next()
	case key.Matches(msg, Keys.Up):
		f.overlay.list.Prev()
	case key.Matches(msg, Keys.Activate):
		value := f.overlay.list.Preview()
		if f.overlay.target == FieldType {
			f.typ = desktop.EntryType(value)
		} else {
			f.category = value
		}
		f.overlay = nil
		f.submit()
		f.toNormal()
	case key.Matches(msg, Keys.Escape):
		f.overlay = nil
		f.toNormal()
	}
}

// submit finishes the focused row and moves to the next one. Leaving a
// toggle row flips it.
func (f *Form) submit() {
	if f.focus.Kind() == KindToggle {
		f.flip(f.focus)
	}
	f.moveFocus(1)
	if f.mode == ModeInsert {
		if b := f.buffer(f.focus); b != nil {
			f.queue(b.EnterEditMode())
		}
	}
}

func (f *Form) toNormal() {
	f.mode = ModeNormal
	if b := f.buffer(f.focus); b != nil {
		b.ExitEditMode()
	}
}

func (f *Form) moveFocus(delta int) {
	next := int(f.focus) + delta
	next = max(next, int(FieldName))
	next = min(next, int(FieldCancel))
	f.setFocus(FieldID(next))
}

func (f *Form) setFocus(field FieldID) {
	if !field.Valid() {
		panic(fmt.Sprintf("form: focus out of range: %d", int(field)))
	}
	if b := f.buffer(f.focus); b != nil {
		b.Blur()
	}
	f.focus = field
	if b := f.buffer(field); b != nil {
		b.Focus()
	}
}

func (f *Form) flip(field FieldID) {
	switch field {
	case FieldNoDisplay:
		f.noDisplay = !f.noDisplay
	case FieldStartupNotify:
		f.startupNotify = !f.startupNotify
	case FieldTerminal:
		f.terminal = !f.terminal
	default:
		panic(fmt.Sprintf("form: %s is not a toggle", field))
	}
}

func (f *Form) save() error {
	if !f.CanSave() {
		slog.Debug("save blocked", slog.String("name", f.name.Value()))
		return nil
	}

	fileName := f.FileName()
	record := desktop.Serialize(f.Entry())
	write := f.store.Create
	if f.editing {
		write = f.store.Write
	}
	if err := write(fileName, record); err != nil {
		return fmt.Errorf("saving %s: %w", fileName, err)
	}

	slog.Debug("launcher saved",
		slog.String("file", fileName),
		slog.Bool("editing", f.editing))

	f.record = record
	f.saved = true
	f.done = true
	return nil
}

// buffer returns the text buffer backing field, or nil for fields without one.
func (f *Form) buffer(field FieldID) *components.TextField {
	switch field {
	case FieldName:
		return &f.name
	case FieldLaunch:
		if f.LaunchKind() == LaunchURL {
			return &f.url
		}
		return &f.exec
	case FieldIcon:
		return &f.icon
	case FieldVersion:
		return &f.version
	case FieldComment:
		return &f.comment
	case FieldAction:
		return &f.actions
	}
	return nil
}

func (f *Form) context() Context {
	return Context{
		Probe:          f.probe,
		Store:          f.store,
		Type:           f.typ,
		Name:           f.name.Value(),
		Launch:         f.buffer(FieldLaunch).Value(),
		SearchPath:     f.searchPath,
		IconExtensions: f.iconExtensions,
		Focus:          f.focus,
		Editing:        f.editing,
	}
}

// LaunchKind returns which buffer the launch row uses for the committed type.
func (f *Form) LaunchKind() LaunchKind {
	if f.typ.IsLink() {
		return LaunchURL
	}
	return LaunchExec
}

// Label returns the display label of field.
func (f *Form) Label(field FieldID) string {
	if field == FieldLaunch {
		return f.buffer(FieldLaunch).Label
	}
	return field.String()
}

// Value returns the text shown for field. An open dropdown shows its preview
// in place of the committed value.
func (f *Form) Value(field FieldID) string {
	if b := f.buffer(field); b != nil {
		return b.Value()
	}

	if f.overlay != nil && f.overlay.target == field {
		return f.overlay.list.Preview()
	}

	switch field {
	case FieldType:
		return string(f.typ)
	case FieldCategory:
		return f.category
	}
	return ""
}

// BufferView renders the text buffer of field including its cursor.
func (f *Form) BufferView(field FieldID) string {
	if b := f.buffer(field); b != nil {
		return b.View()
	}
	return f.Value(field)
}

// Toggle returns the state of a toggle field.
func (f *Form) Toggle(field FieldID) bool {
	switch field {
	case FieldNoDisplay:
		return f.noDisplay
	case FieldStartupNotify:
		return f.startupNotify
	case FieldTerminal:
		return f.terminal
	}
	return false
}

// Verdict validates field against the current state.
func (f *Form) Verdict(field FieldID) Verdict {
	return Validate(field, f.Value(field), f.context())
}

// CanSave reports whether Save would persist the form.
func (f *Form) CanSave() bool {
	return CanSave(f.context())
}

// Overlay returns the open dropdown, if any.
func (f *Form) Overlay() (Overlay, bool) {
	if f.overlay == nil {
		return Overlay{}, false
	}
	return Overlay{
		Options:     f.overlay.list.Options(),
		Preview:     f.overlay.list.Preview(),
		Target:      f.overlay.target,
		Highlighted: f.overlay.list.Highlighted(),
	}, true
}

// Entry returns the launcher described by the form.
func (f *Form) Entry() desktop.Entry {
	return desktop.Entry{
		Name:          strings.TrimSpace(f.name.Value()),
		Exec:          strings.TrimSpace(f.exec.Value()),
		URL:           strings.TrimSpace(f.url.Value()),
		Icon:          strings.TrimSpace(f.icon.Value()),
		Version:       strings.TrimSpace(f.version.Value()),
		Comment:       strings.TrimSpace(f.comment.Value()),
		Actions:       strings.TrimSpace(f.actions.Value()),
		Type:          f.typ,
		Category:      f.category,
		ExecPrefix:    f.execPrefix,
		NoDisplay:     f.noDisplay,
		StartupNotify: f.startupNotify,
		Terminal:      f.terminal,
	}
}

// FileName returns the launcher file the form saves to.
func (f *Form) FileName() string {
	if f.editing {
		return f.fileName
	}
	return desktop.NormalizeName(f.name.Value())
}

// Focus returns the focused field.
func (f *Form) Focus() FieldID { return f.focus }

// Mode returns the input mode.
func (f *Form) Mode() Mode { return f.mode }

// Pending returns the state of the sequence recognizer.
func (f *Form) Pending() Pending { return f.pending }

// Editing reports whether an existing launcher is being edited.
func (f *Form) Editing() bool { return f.editing }

// Done reports whether the session is over.
func (f *Form) Done() bool { return f.done }

// Saved reports whether the form was written.
func (f *Form) Saved() bool { return f.saved }

// Record returns the record written by Save.
func (f *Form) Record() desktop.Record { return f.record }
