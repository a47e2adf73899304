package form

import (
	"path/filepath"
	"strings"

	"github.com/AntoineGS/deskforge/internal/desktop"
)

// Verdict is the validation result shown next to a field.
type Verdict int

// Verdicts, from "nothing to show" to "valid".
const (
	Blank Verdict = iota
	Empty
	NotFound
	WrongType
	InvalidScheme
	Ignored
	Exists
	Ok
)

// Level groups verdicts for coloring.
type Level int

// Verdict levels
const (
	LevelNone Level = iota
	LevelGood
	LevelWarn
	LevelBad
)

// Suffix returns the text appended to the field label.
func (v Verdict) Suffix() string {
	switch v {
	case Empty:
		return " - Empty"
	case NotFound:
		return " - Not found"
	case WrongType:
		return " - Unexpected type"
	case InvalidScheme:
		return " - Invalid scheme"
	case Ignored:
		return " - Ignored"
	case Exists:
		return " - Already exists"
	case Ok:
		return " - OK"
	}
	return ""
}

// Level returns how the verdict should be highlighted.
func (v Verdict) Level() Level {
	switch v {
	case Ok, Ignored:
		return LevelGood
	case WrongType, InvalidScheme:
		return LevelWarn
	case Empty, NotFound, Exists:
		return LevelBad
	}
	return LevelNone
}

// Acceptable reports whether the verdict lets the form be saved.
func (v Verdict) Acceptable() bool {
	return v == Ok || v == Ignored
}

// URLSchemes are the prefixes a Link URL may start with.
var URLSchemes = []string{
	"file://",
	"https://",
	"http://",
	"mailto:",
	"smb://",
	"trash:///",
	"recent:///",
}

const fileScheme = "file://"

// Context is the form state validation reads.
type Context struct {
	Probe          Probe
	Store          Store
	Type           desktop.EntryType
	Name           string
	Launch         string
	SearchPath     []string
	IconExtensions []string
	Focus          FieldID
	Editing        bool
}

// Validate returns the verdict for field holding text. Only the focused field
// gets a verdict; every other field is Blank.
func Validate(field FieldID, text string, ctx Context) Verdict {
	if field != ctx.Focus {
		return Blank
	}
	return check(field, text, ctx)
}

// CanSave reports whether the form may be persisted. It has no side effects.
func CanSave(ctx Context) bool {
	name := strings.TrimSpace(ctx.Name)
	if name == "" {
		return false
	}

	fileName := desktop.NormalizeName(name)
	if desktop.ValidateFileName(fileName) != nil {
		return false
	}

	if !ctx.Editing && ctx.Store.Exists(fileName) {
		return false
	}

	return check(FieldLaunch, ctx.Launch, ctx).Acceptable()
}

func check(field FieldID, text string, ctx Context) Verdict {
	trimmed := strings.TrimSpace(text)

	switch field {
	case FieldName:
		return checkName(trimmed, ctx)
	case FieldLaunch:
		if ctx.Type.IsLink() {
			return checkURL(trimmed, ctx.Probe)
		}
		candidate := execCandidate(trimmed)
		if ignorable(candidate, ctx) {
			return Ignored
		}
		// Directory launchers accept any existing path, not only programs.
		if ctx.Type == desktop.TypeDirectory {
			return Ok
		}
		return checkExec(trimmed, ctx)
	case FieldIcon:
		if ignorable(trimmed, ctx) {
			return Ignored
		}
		return checkIcon(trimmed, ctx.IconExtensions)
	}

	return Blank
}

func checkName(name string, ctx Context) Verdict {
	if ctx.Editing {
		return Ignored
	}

	if name == "" {
		return Empty
	}

	if hasSeparator(name) {
		return WrongType
	}

	if ctx.Store.Exists(desktop.NormalizeName(name)) {
		return Exists
	}

	return Ok
}

func checkURL(url string, probe Probe) Verdict {
	if url == "" {
		return Empty
	}

	if !hasScheme(url) {
		return InvalidScheme
	}

	if local, ok := strings.CutPrefix(url, fileScheme); ok && !probe.Exists(local) {
		return NotFound
	}

	return Ok
}

func hasScheme(url string) bool {
	for _, scheme := range URLSchemes {
		if strings.HasPrefix(url, scheme) {
			return true
		}
	}
	return false
}

// ignorable reports whether a missing path is tolerated by the entry type.
func ignorable(candidate string, ctx Context) bool {
	return ctx.Type.ToleratesMissingPath() && !ctx.Probe.Exists(candidate)
}

func checkIcon(icon string, exts []string) Verdict {
	if icon == "" {
		return Empty
	}

	ext := strings.TrimPrefix(filepath.Ext(icon), ".")
	if ext != "" {
		for _, allowed := range exts {
			if strings.EqualFold(ext, allowed) {
				return Ok
			}
		}
	}

	return WrongType
}

func checkExec(exec string, ctx Context) Verdict {
	if exec == "" {
		return Empty
	}

	tokens := strings.Fields(exec)
	for _, tok := range tokens {
		if strings.Contains(tok, "//") {
			return Ok
		}
	}

	for _, tok := range tokens {
		if hasSeparator(tok) {
			return checkExecutable(tok, ctx.Probe)
		}
	}

	return lookPath(tokens[0], ctx)
}

func checkExecutable(path string, probe Probe) Verdict {
	if !probe.Exists(path) {
		return NotFound
	}
	if !probe.IsExecutable(path) {
		return WrongType
	}
	return Ok
}

// lookPath resolves a bare command through the search path.
func lookPath(cmd string, ctx Context) Verdict {
	found := false
	for _, dir := range ctx.SearchPath {
		path := filepath.Join(dir, cmd)
		if !ctx.Probe.Exists(path) {
			continue
		}
		if ctx.Probe.IsExecutable(path) {
			return Ok
		}
		found = true
	}

	if found {
		return WrongType
	}
	return NotFound
}

// execCandidate returns the token of exec naming a file, or exec itself.
func execCandidate(exec string) string {
	for _, tok := range strings.Fields(exec) {
		if hasSeparator(tok) {
			return tok
		}
	}
	return exec
}

func hasSeparator(s string) bool {
	return strings.ContainsAny(s, `/\`)
}
