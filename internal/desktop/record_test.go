package desktop

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_Golden(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{
			name: "application_record",
			entry: Entry{
				Name:          "Firefox",
				Exec:          "/usr/bin/firefox %u",
				Icon:          "/usr/share/icons/firefox.png",
				Comment:       "Web browser",
				Type:          TypeApplication,
				Category:      "Network",
				StartupNotify: true,
			},
		},
		{
			name: "link_record",
			entry: Entry{
				Name:      "Docs",
				URL:       "https://example.com/docs",
				Exec:      "/usr/bin/ignored",
				Icon:      "docs.svg",
				Version:   "1.5",
				Actions:   "Open;Share",
				NoDisplay: true,
				Type:      TypeLink,
				Category:  CategoryNone,
			},
		},
		{
			name: "prefixed_exec_record",
			entry: Entry{
				Name:          "Tracker",
				Exec:          "env MOZ_X=1 /opt/app/bin/app --new-window",
				ExecPrefix:    "env GDK_BACKEND=x11 prime-run",
				Comment:       "Issue tracker",
				Type:          TypeApplicationOther,
				Category:      "Development",
				StartupNotify: true,
				Terminal:      true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := goldie.New(t)
			g.Assert(t, tt.name, Serialize(tt.entry).Bytes())
		})
	}
}

func TestSerialize_LinkUsesURLLine(t *testing.T) {
	e := DefaultEntry()
	e.Name = "Example"
	e.Type = TypeLink
	e.URL = "https://example"

	lines := Serialize(e).Lines()

	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, "Name=Example", lines[1])
	assert.Equal(t, "URL=https://example", lines[2])
	for _, line := range lines {
		assert.False(t, strings.HasPrefix(line, "Exec="), "unexpected Exec line %q", line)
	}
}

func TestSerialize_NoDisplayAndNoneCategory(t *testing.T) {
	e := DefaultEntry()
	e.Name = "Hidden"
	e.NoDisplay = true

	lines := Serialize(e).Lines()

	assert.Contains(t, lines, "NoDisplay=true")
	assert.Contains(t, lines, "Category=")
	assert.NotContains(t, lines, "Category=None")
}

func TestSerialize_OptionalLines(t *testing.T) {
	e := DefaultEntry()
	e.Name = "Plain"

	r := Serialize(e)

	_, hasVersion := r.Value(KeyVersion)
	_, hasActions := r.Value(KeyActions)
	assert.False(t, hasVersion, "empty Version should be omitted")
	assert.False(t, hasActions, "empty Actions should be omitted")

	startup, ok := r.Value(KeyStartupNotify)
	require.True(t, ok)
	assert.Equal(t, "true", startup)
}

func TestComposeExec(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		exec   string
		want   string
	}{
		{"no_prefix", "", "/usr/bin/app", "/usr/bin/app"},
		{"plain_prefix", "prime-run", "/usr/bin/app %U", "prime-run /usr/bin/app %U"},
		{"already_prefixed", "prime-run", "prime-run /usr/bin/app", "prime-run /usr/bin/app"},
		{"already_prefixed_multiword", "flatpak run", "flatpak run org.app", "flatpak run org.app"},
		{"prefix_word_is_not_text_prefix", "flatpak run", "flatpak runner", "flatpak run flatpak runner"},
		{"env_prefix_is_not_text_prefix", "env", "envsubst --help", "env envsubst --help"},
		{"empty_exec", "prime-run", "", ""},
		{"env_prefix_only_assignments", "env A=1", "/usr/bin/app", "env A=1 /usr/bin/app"},
		{"env_prefix_with_flags", "env A=1 -u B", "/usr/bin/app", "env A=1 -u B /usr/bin/app"},
		{"env_prefix_merges_exec_env", "env A=1 wrapper", "env B=2 /usr/bin/app -x", "env A=1 B=2 wrapper /usr/bin/app -x"},
		{"env_prefix_merges_bare_assignments", "env A=1", "B=2 /usr/bin/app", "env A=1 B=2 /usr/bin/app"},
		{"trims_whitespace", "  prime-run ", "  /usr/bin/app ", "prime-run /usr/bin/app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeExec(tt.prefix, tt.exec))
		})
	}
}

func TestParse_IgnoresHeaderAndKeepsEquals(t *testing.T) {
	input := "[Desktop Entry]\nName=Foo\nExec=/bin/foo --opt=a=b\nbogus line\r\n"

	values, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "Foo", values["Name"])
	assert.Equal(t, "/bin/foo --opt=a=b", values["Exec"])
	assert.Len(t, values, 2)
}

func TestEntryFromValues_Defaults(t *testing.T) {
	e := EntryFromValues(map[string]string{
		"Name":    "Foo",
		"Exec":    "/bin/foo",
		"Type":    "Application",
		"Unknown": "ignored",
	})

	assert.Equal(t, "Foo", e.Name)
	assert.Equal(t, "/bin/foo", e.Exec)
	assert.Equal(t, TypeApplication, e.Type)
	assert.Equal(t, CategoryNone, e.Category)
	assert.Empty(t, e.Icon)
	assert.Empty(t, e.Comment)
	assert.False(t, e.NoDisplay)
	assert.True(t, e.StartupNotify)
	assert.False(t, e.Terminal)
}

func TestEntryFromValues_UnknownEnumsFallBack(t *testing.T) {
	e := EntryFromValues(map[string]string{
		"Type":     "Service",
		"Category": "Games",
	})

	assert.Equal(t, TypeApplication, e.Type)
	assert.Equal(t, CategoryNone, e.Category)
}

func TestEntryFromValues_EmptyCategoryIsNone(t *testing.T) {
	e := EntryFromValues(map[string]string{"Category": ""})
	assert.Equal(t, CategoryNone, e.Category)
}

func TestSerialize_RoundTrip(t *testing.T) {
	entries := []Entry{
		{
			Name: "Editor", Exec: "/usr/bin/editor %F", Icon: "editor.svg",
			Comment: "Edit text", Type: TypeApplication, Category: "Office",
			NoDisplay: true, StartupNotify: false, Terminal: true,
		},
		{
			Name: "Home", URL: "file:///home/user", Icon: "home.png",
			Version: "2", Actions: "Open", Type: TypeLink, Category: CategoryNone,
			StartupNotify: true,
		},
		{
			Name: "Projects", Exec: "/srv/projects", Type: TypeDirectory,
			Category: "System",
		},
	}

	for _, want := range entries {
		t.Run(want.Name, func(t *testing.T) {
			values, err := Parse(strings.NewReader(string(Serialize(want).Bytes())))
			require.NoError(t, err)

			got := EntryFromValues(values)
			if want.Type.IsLink() {
				assert.Equal(t, want.URL, got.URL)
			} else {
				assert.Equal(t, want.Exec, got.Exec)
			}
			assert.Equal(t, want.Name, got.Name)
			assert.Equal(t, want.Icon, got.Icon)
			assert.Equal(t, want.Version, got.Version)
			assert.Equal(t, want.Comment, got.Comment)
			assert.Equal(t, want.Actions, got.Actions)
			assert.Equal(t, want.Type, got.Type)
			assert.Equal(t, want.Category, got.Category)
			assert.Equal(t, want.NoDisplay, got.NoDisplay)
			assert.Equal(t, want.StartupNotify, got.StartupNotify)
			assert.Equal(t, want.Terminal, got.Terminal)
		})
	}
}
