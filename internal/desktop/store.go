package desktop

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileExt is the extension of launcher files.
const FileExt = ".desktop"

// Store reads and writes launcher records in a single directory.
type Store struct {
	Dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// NormalizeName trims name and appends the launcher extension unless present.
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if strings.HasSuffix(trimmed, FileExt) {
		return trimmed
	}
	return trimmed + FileExt
}

// ValidateFileName rejects names that would escape the store directory.
func ValidateFileName(fileName string) error {
	base := strings.TrimSuffix(fileName, FileExt)
	if strings.TrimSpace(base) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.ContainsAny(fileName, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, fileName)
	}
	return nil
}

// Path returns the absolute location of fileName inside the store.
func (s *Store) Path(fileName string) string {
	return filepath.Join(s.Dir, fileName)
}

// Exists reports whether a launcher file with this name is present.
func (s *Store) Exists(fileName string) bool {
	if ValidateFileName(fileName) != nil {
		return false
	}
	_, err := os.Stat(s.Path(fileName))
	return err == nil
}

// Load reads and parses a launcher file. The raw bytes are returned alongside
// the entry so callers can diff them against a later write.
func (s *Store) Load(fileName string) (Entry, []byte, error) {
	path := s.Path(fileName)

	data, err := os.ReadFile(path) //nolint:gosec // path is inside the applications directory
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, nil, NewPathError("load", path, ErrNotFound)
		}
		return Entry{}, nil, NewPathError("load", path, err)
	}

	values, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		return Entry{}, nil, NewPathError("parse", path, err)
	}

	slog.Debug("loaded launcher",
		slog.String("path", path),
		slog.Int("keys", len(values)))

	return EntryFromValues(values), data, nil
}

// Write truncates or creates fileName and writes the record to it.
func (s *Store) Write(fileName string, r Record) error {
	if err := ValidateFileName(fileName); err != nil {
		return err
	}

	path := s.Path(fileName)
	if err := os.WriteFile(path, r.Bytes(), 0644); err != nil { //nolint:gosec // launchers must be readable by the desktop session
		return NewPathError("write", path, err)
	}

	slog.Debug("wrote launcher",
		slog.String("path", path),
		slog.Int("lines", len(r)+1))

	return nil
}

// Create writes the record to a new file. It fails with ErrExists when
// fileName is already present, so a launcher appearing after validation is
// never overwritten.
func (s *Store) Create(fileName string, r Record) error {
	if err := ValidateFileName(fileName); err != nil {
		return err
	}

	path := s.Path(fileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644) //nolint:gosec // launchers must be readable by the desktop session
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return NewPathError("create", path, ErrExists)
		}
		return NewPathError("create", path, err)
	}

	if _, err := f.Write(r.Bytes()); err != nil {
		_ = f.Close()
		return NewPathError("create", path, err)
	}
	if err := f.Close(); err != nil {
		return NewPathError("create", path, err)
	}

	slog.Debug("created launcher",
		slog.String("path", path),
		slog.Int("lines", len(r)+1))

	return nil
}

// List returns the launcher file names in the store, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewPathError("list", s.Dir, ErrNotFound)
		}
		return nil, NewPathError("list", s.Dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != FileExt {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)

	return names, nil
}

// Remove deletes fileName from the store.
func (s *Store) Remove(fileName string) error {
	if err := ValidateFileName(fileName); err != nil {
		return err
	}

	path := s.Path(fileName)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewPathError("remove", path, ErrNotFound)
		}
		return NewPathError("remove", path, err)
	}

	slog.Debug("removed launcher", slog.String("path", path))

	return nil
}
