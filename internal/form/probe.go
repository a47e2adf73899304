package form

import "github.com/AntoineGS/deskforge/internal/desktop"

// Probe answers filesystem questions for validation.
type Probe interface {
	Exists(path string) bool
	IsExecutable(path string) bool
}

// Store is the persistence collaborator the form saves through. New
// launchers go through Create, edits through Write.
type Store interface {
	Exists(fileName string) bool
	Create(fileName string, r desktop.Record) error
	Write(fileName string, r desktop.Record) error
}
