package desktop

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Header is the first line of every launcher record.
const Header = "[Desktop Entry]"

// Record keys, in the order they are written.
const (
	KeyName          = "Name"
	KeyExec          = "Exec"
	KeyURL           = "URL"
	KeyIcon          = "Icon"
	KeyVersion       = "Version"
	KeyComment       = "Comment"
	KeyActions       = "Actions"
	KeyNoDisplay     = "NoDisplay"
	KeyStartupNotify = "StartupNotify"
	KeyTerminal      = "Terminal"
	KeyType          = "Type"
	KeyCategory      = "Category"
)

// Line is a single Key=Value pair of a record.
type Line struct {
	Key   string
	Value string
}

func (l Line) String() string {
	return l.Key + "=" + l.Value
}

// Record is the ordered key/value representation of a launcher file.
// The header line is implied and not stored.
type Record []Line

// Lines returns the record as text lines, header first.
func (r Record) Lines() []string {
	lines := make([]string, 0, len(r)+1)
	lines = append(lines, Header)
	for _, l := range r {
		lines = append(lines, l.String())
	}
	return lines
}

// Bytes renders the record with a trailing newline after every line.
func (r Record) Bytes() []byte {
	var b strings.Builder
	for _, line := range r.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Value returns the value of key and whether the record contains it.
func (r Record) Value(key string) (string, bool) {
	for _, l := range r {
		if l.Key == key {
			return l.Value, true
		}
	}
	return "", false
}

// Serialize converts an entry into its record. The line order is part of the
// file format and must not change.
func Serialize(e Entry) Record {
	r := Record{{KeyName, e.Name}}

	if e.Type.IsLink() {
		r = append(r, Line{KeyURL, e.URL})
	} else {
		r = append(r, Line{KeyExec, ComposeExec(e.ExecPrefix, e.Exec)})
	}

	r = append(r, Line{KeyIcon, e.Icon})
	if e.Version != "" {
		r = append(r, Line{KeyVersion, e.Version})
	}
	r = append(r, Line{KeyComment, e.Comment})
	if e.Actions != "" {
		r = append(r, Line{KeyActions, e.Actions})
	}

	category := e.Category
	if category == CategoryNone {
		category = ""
	}

	return append(r,
		Line{KeyNoDisplay, formatBool(e.NoDisplay)},
		Line{KeyStartupNotify, formatBool(e.StartupNotify)},
		Line{KeyTerminal, formatBool(e.Terminal)},
		Line{KeyType, string(e.Type)},
		Line{KeyCategory, category},
	)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ComposeExec prepends a launcher prefix to an Exec command line.
//
// A prefix starting with the env command is merged with the command rather
// than simply prepended: all VAR=value assignments (the prefix's first, then
// the command's own leading ones) follow env directly, ahead of the remaining
// prefix tokens such as flags or wrapper commands.
func ComposeExec(prefix, exec string) string {
	prefix = strings.TrimSpace(prefix)
	exec = strings.TrimSpace(exec)

	if prefix == "" || exec == "" {
		return exec
	}

	prefixFields := strings.Fields(prefix)
	if hasWordPrefix(strings.Fields(exec), prefixFields) {
		return exec
	}

	if prefixFields[0] != "env" {
		return prefix + " " + exec
	}

	prefixAssigns, prefixRest := splitAssignments(prefixFields[1:])

	execFields := strings.Fields(exec)
	if len(execFields) > 0 && execFields[0] == "env" {
		execFields = execFields[1:]
	}
	execAssigns, execRest := splitAssignments(execFields)

	parts := make([]string, 0, 1+len(prefixAssigns)+len(execAssigns)+len(prefixRest)+len(execRest))
	parts = append(parts, "env")
	parts = append(parts, prefixAssigns...)
	parts = append(parts, execAssigns...)
	parts = append(parts, prefixRest...)
	parts = append(parts, execRest...)

	return strings.Join(parts, " ")
}

// hasWordPrefix reports whether fields starts with every word of prefix.
func hasWordPrefix(fields, prefix []string) bool {
	if len(fields) < len(prefix) {
		return false
	}
	for i, word := range prefix {
		if fields[i] != word {
			return false
		}
	}
	return true
}

// splitAssignments splits leading VAR=value tokens from the rest.
func splitAssignments(fields []string) (assigns, rest []string) {
	i := 0
	for ; i < len(fields); i++ {
		if !isAssignment(fields[i]) {
			break
		}
	}
	return fields[:i], fields[i:]
}

func isAssignment(token string) bool {
	if strings.HasPrefix(token, "-") {
		return false
	}
	name, _, ok := strings.Cut(token, "=")
	return ok && name != "" && !strings.ContainsAny(name, `/\`)
}

// Parse reads Key=Value lines into a lookup by key. Lines without '=' (such
// as the header) are skipped. The value keeps everything after the first '='.
func Parse(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}

	return values, nil
}

// EntryFromValues builds an entry from parsed record values. Unknown keys are
// ignored and missing keys keep their defaults.
func EntryFromValues(values map[string]string) Entry {
	e := DefaultEntry()

	for key, value := range values {
		switch key {
		case KeyName:
			e.Name = value
		case KeyExec:
			e.Exec = value
		case KeyURL:
			e.URL = value
		case KeyIcon:
			e.Icon = value
		case KeyVersion:
			e.Version = value
		case KeyComment:
			e.Comment = value
		case KeyActions:
			e.Actions = value
		case KeyNoDisplay:
			e.NoDisplay = parseBool(value, e.NoDisplay)
		case KeyStartupNotify:
			e.StartupNotify = parseBool(value, e.StartupNotify)
		case KeyTerminal:
			e.Terminal = parseBool(value, e.Terminal)
		case KeyType:
			if t, ok := ParseEntryType(value); ok {
				e.Type = t
			}
		case KeyCategory:
			if IsCategory(value) {
				e.Category = value
			}
		}
	}

	return e
}

func parseBool(s string, fallback bool) bool {
	switch strings.TrimSpace(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return fallback
}
