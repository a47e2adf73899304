// Package desktop models launcher entries and their on-disk records.
package desktop

// EntryType is the value of the Type key of a launcher record.
type EntryType string

// Launcher types offered by the form.
const (
	TypeApplication      EntryType = "Application"
	TypeApplicationOther EntryType = "Application (other)"
	TypeLink             EntryType = "Link"
	TypeDirectory        EntryType = "Directory"
)

// CategoryNone is the sentinel category serialized as an empty value.
const CategoryNone = "None"

// Types lists the launcher types in dropdown order.
var Types = []string{
	string(TypeApplication),
	string(TypeApplicationOther),
	string(TypeLink),
	string(TypeDirectory),
}

// Categories lists the launcher categories in dropdown order.
var Categories = []string{
	CategoryNone,
	"Audio",
	"Video",
	"Development",
	"Education",
	"Graphics",
	"Network",
	"Office",
	"Settings",
	"System",
}

// IsLink reports whether entries of this type carry a URL instead of an Exec line.
func (t EntryType) IsLink() bool {
	return t == TypeLink
}

// ToleratesMissingPath reports whether unresolvable paths are acceptable for this type.
func (t EntryType) ToleratesMissingPath() bool {
	return t == TypeApplicationOther || t == TypeDirectory
}

// ParseEntryType returns the type matching s, or false if s is not a known type.
func ParseEntryType(s string) (EntryType, bool) {
	for _, t := range Types {
		if t == s {
			return EntryType(t), true
		}
	}
	return "", false
}

// IsCategory reports whether s is one of the known categories.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// Entry holds every value the form collects for one launcher.
type Entry struct {
	Name     string
	Exec     string
	URL      string
	Icon     string
	Version  string
	Comment  string
	Actions  string
	Type     EntryType
	Category string
	// ExecPrefix is a launcher command composed in front of Exec when serialized.
	ExecPrefix    string
	NoDisplay     bool
	StartupNotify bool
	Terminal      bool
}

// DefaultEntry returns an entry with the form's default values.
func DefaultEntry() Entry {
	return Entry{
		Type:          TypeApplication,
		Category:      CategoryNone,
		StartupNotify: true,
	}
}
