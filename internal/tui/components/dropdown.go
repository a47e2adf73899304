package components

// Dropdown is a scrollable list of fixed candidates with a highlighted entry.
// Moving the highlight only changes the preview; the caller decides when to
// commit it.
type Dropdown struct {
	options []string
	cursor  int
}

// NewDropdown creates a Dropdown highlighting the first option.
// It panics when options is empty.
func NewDropdown(options []string) Dropdown {
	if len(options) == 0 {
		panic("components: dropdown needs at least one option")
	}

	return Dropdown{options: options}
}

// Options returns the candidate list.
func (d *Dropdown) Options() []string {
	return d.options
}

// Highlighted returns the index of the highlighted candidate.
func (d *Dropdown) Highlighted() int {
	return d.cursor
}

// Preview returns the text of the highlighted candidate.
func (d *Dropdown) Preview() string {
	return d.options[d.cursor]
}

// Next moves the highlight down, wrapping to the first candidate.
func (d *Dropdown) Next() {
	d.cursor = (d.cursor + 1) % len(d.options)
}

// Prev moves the highlight up, stopping at the first candidate.
// Returns false when already at the top.
func (d *Dropdown) Prev() bool {
	if d.cursor > 0 {
		d.cursor--
		return true
	}
	return false
}
