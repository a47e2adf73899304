// Package form implements the launcher form: its fixed field list, the
// Normal/Insert key handling, the dropdown overlay and the save gate.
package form

import "fmt"

// FieldID identifies one row of the form. The order is the display and
// navigation order.
type FieldID int

// Form fields, top to bottom.
const (
	FieldName FieldID = iota
	FieldLaunch
	FieldIcon
	FieldVersion
	FieldComment
	FieldAction
	FieldNoDisplay
	FieldStartupNotify
	FieldTerminal
	FieldType
	FieldCategory
	FieldSave
	FieldCancel
)

// FieldCount is the number of form fields.
const FieldCount = int(FieldCancel) + 1

// Kind classifies how a field is edited.
type Kind int

// Field kinds
const (
	KindText Kind = iota
	KindPath
	KindChoice
	KindToggle
	KindAction
)

var fieldLabels = [FieldCount]string{
	FieldName:          "Name",
	FieldLaunch:        "Exec",
	FieldIcon:          "Icon",
	FieldVersion:       "Version",
	FieldComment:       "Comment",
	FieldAction:        "Actions",
	FieldNoDisplay:     "NoDisplay",
	FieldStartupNotify: "StartupNotify",
	FieldTerminal:      "Terminal",
	FieldType:          "Type",
	FieldCategory:      "Category",
	FieldSave:          "Save",
	FieldCancel:        "Cancel",
}

// Fields returns every field in order.
func Fields() []FieldID {
	ids := make([]FieldID, FieldCount)
	for i := range ids {
		ids[i] = FieldID(i)
	}
	return ids
}

// Valid reports whether f is one of the form fields.
func (f FieldID) Valid() bool {
	return f >= FieldName && f <= FieldCancel
}

func (f FieldID) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FieldID(%d)", int(f))
	}
	return fieldLabels[f]
}

// Kind returns how the field is edited.
func (f FieldID) Kind() Kind {
	switch f {
	case FieldLaunch, FieldIcon:
		return KindPath
	case FieldType, FieldCategory:
		return KindChoice
	case FieldNoDisplay, FieldStartupNotify, FieldTerminal:
		return KindToggle
	case FieldSave, FieldCancel:
		return KindAction
	case FieldName, FieldVersion, FieldComment, FieldAction:
		return KindText
	}
	panic(fmt.Sprintf("form: unknown field %d", int(f)))
}

// HasBuffer reports whether the field is backed by a text buffer.
func (f FieldID) HasBuffer() bool {
	k := f.Kind()
	return k == KindText || k == KindPath
}

// Required reports whether the field is shown in the required section.
func (f FieldID) Required() bool {
	return f == FieldName || f == FieldLaunch
}
