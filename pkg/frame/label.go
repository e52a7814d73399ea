package frame

// Label is an on-screen overlay text item, keyed by id. Setting the same
// id again replaces its prior text/font.
type Label struct {
	ID    uint16
	Text  string
	Font  string
	X, Y  float64
	Size  float64
	Color uint32 // packed RGB with alpha in the high byte
}

// Labels holds the pending label writes awaiting emission. A label set
// twice before a flush keeps only the latest value — there is no
// coalescing subtlety here since each id has exactly one live entry by
// construction.
type Labels struct {
	pending map[uint16]*Label
}

// Set stores or replaces the label with the given id.
func (l *Labels) Set(label Label) {
	if l.pending == nil {
		l.pending = make(map[uint16]*Label)
	}
	cp := label
	l.pending[label.ID] = &cp
}

// Drain returns every pending label and clears the set, for the frame
// writer to emit.
func (l *Labels) Drain() []Label {
	if len(l.pending) == 0 {
		return nil
	}
	out := make([]Label, 0, len(l.pending))
	for _, lb := range l.pending {
		out = append(out, *lb)
	}
	l.pending = nil
	return out
}
