package form

// Pending is the state of the two-key sequence recognizer.
type Pending int

// Recognizer states
const (
	PendingIdle Pending = iota
	PendingG
	PendingD
)

// Sequence is a completed two-key command.
type Sequence int

// Recognized sequences
const (
	SeqNone Sequence = iota
	// SeqTop is gg
	SeqTop
	// SeqClear is dd
	SeqClear
)

// Feed advances the recognizer with one key. A key that does not complete the
// pending sequence drops it and may start a new one.
func (p Pending) Feed(k string) (Pending, Sequence) {
	switch {
	case p == PendingG && k == "g":
		return PendingIdle, SeqTop
	case p == PendingD && k == "d":
		return PendingIdle, SeqClear
	}

	switch k {
	case "g":
		return PendingG, SeqNone
	case "d":
		return PendingD, SeqNone
	}

	return PendingIdle, SeqNone
}
