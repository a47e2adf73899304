package tui

// Smallest terminal the form is drawn in
const (
	MinWidth  = 41
	MinHeight = 18
)

// UI element constants
const (
	CursorMarker      = "> "
	NoCursor          = "  "
	OverlayIndent     = "    "
	CheckboxUnchecked = "[ ]"
	CheckboxChecked   = "[x]"
	SaveButton        = "[ Save ]"
	CancelButton      = "[ Cancel ]"
)

// Text buffer sizing. RowOverhead covers the padding, cursor, label and
// verdict suffix drawn before a buffer.
const (
	RowOverhead   = 40
	MinInputWidth = 10
)
