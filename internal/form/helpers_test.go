package form

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/AntoineGS/deskforge/internal/desktop"
)

// fakeProbe maps existing paths to their executable bit.
type fakeProbe map[string]bool

func (p fakeProbe) Exists(path string) bool {
	_, ok := p[path]
	return ok
}

func (p fakeProbe) IsExecutable(path string) bool {
	return p[path]
}

type fakeStore struct {
	files map[string]desktop.Record
	err   error
}

func newFakeStore(existing ...string) *fakeStore {
	s := &fakeStore{files: map[string]desktop.Record{}}
	for _, name := range existing {
		s.files[name] = nil
	}
	return s
}

func (s *fakeStore) Exists(fileName string) bool {
	_, ok := s.files[fileName]
	return ok
}

func (s *fakeStore) Create(fileName string, r desktop.Record) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.files[fileName]; ok {
		return desktop.ErrExists
	}
	s.files[fileName] = r
	return nil
}

func (s *fakeStore) Write(fileName string, r desktop.Record) error {
	if s.err != nil {
		return s.err
	}
	s.files[fileName] = r
	return nil
}

var errDiskFull = errors.New("disk full")

func testProbe() fakeProbe {
	return fakeProbe{
		"/bin/foo":          true,
		"/usr/bin/tool":     true,
		"/usr/bin/data":     false,
		"/etc/notes":        false,
		"/srv/site/index":   false,
		"/icons/app.png":    false,
		"/opt/app/bin/app":  true,
		"/opt/app/app.svg":  false,
		"/home/me/page.htm": false,
		"/srv/projects":     false,
	}
}

func testOptions() Options {
	return Options{
		Probe:          testProbe(),
		Store:          newFakeStore(),
		SearchPath:     []string{"/usr/local/bin", "/usr/bin"},
		IconExtensions: []string{"png", "svg", "jpg"},
	}
}

func newTestForm(t *testing.T, mutate ...func(*Options)) *Form {
	t.Helper()
	opts := testOptions()
	for _, m := range mutate {
		m(&opts)
	}
	return New(opts)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, f *Form, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, err := f.Apply(keyMsg(k))
		require.NoError(t, err, "key %q", k)
	}
}

// typeText sends each rune of s as its own key event.
func typeText(t *testing.T, f *Form, s string) {
	t.Helper()
	for _, r := range s {
		_, err := f.Apply(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		require.NoError(t, err)
	}
}

// focusOn moves focus to field from the top in Normal mode.
func focusOn(t *testing.T, f *Form, field FieldID) {
	t.Helper()
	press(t, f, "g", "g")
	for f.Focus() != field {
		press(t, f, "j")
	}
}

// setText replaces the buffer of field with s and returns to Normal mode.
func setText(t *testing.T, f *Form, field FieldID, s string) {
	t.Helper()
	focusOn(t, f, field)
	press(t, f, "d", "d", "i")
	typeText(t, f, s)
	press(t, f, "esc")
}

// chooseType commits typ through the Type dropdown.
func chooseType(t *testing.T, f *Form, typ desktop.EntryType) {
	t.Helper()
	focusOn(t, f, FieldType)
	press(t, f, "i")
	for f.Value(FieldType) != string(typ) {
		press(t, f, "j")
	}
	press(t, f, "enter")
}

func recValue(r desktop.Record, key string) string {
	v, _ := r.Value(key)
	return v
}
