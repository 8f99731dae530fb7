// Package layout owns the split between the document pane and the chat pane.
package layout

const (
	// DefaultRatio is the document pane's starting width percentage.
	DefaultRatio = 50
	// MinRatio and MaxRatio clamp every mutation.
	MinRatio = 20
	MaxRatio = 80
	// NudgeStep is the keyboard resize increment.
	NudgeStep = 5
)

// Direction selects which pane a nudge favors.
type Direction int

const (
	ShrinkDocument Direction = iota
	GrowDocument
)

// Splitter tracks the document pane's percentage width and the drag state
// machine (Idle -> Dragging -> Idle). Pointer motion is only effective while
// dragging is armed, which scopes the "listener" to the drag lifetime.
type Splitter struct {
	ratio    int
	dragging bool
}

func NewSplitter() *Splitter {
	return &Splitter{ratio: DefaultRatio}
}

// Ratio reports the document pane width as a percentage in [MinRatio, MaxRatio].
func (s *Splitter) Ratio() int {
	return s.ratio
}

// Dragging reports whether a drag is armed.
func (s *Splitter) Dragging() bool {
	return s.dragging
}

// BeginDrag arms the drag state.
func (s *Splitter) BeginDrag() {
	s.dragging = true
}

// EndDrag disarms the drag state.
func (s *Splitter) EndDrag() {
	s.dragging = false
}

// PointerMove recomputes the ratio from an absolute pointer position. It is a
// no-op unless a drag is armed or the viewport width is unusable.
func (s *Splitter) PointerMove(x, width int) {
	if !s.dragging || width <= 0 {
		return
	}
	s.ratio = clamp(x * 100 / width)
}

// Nudge steps the ratio by NudgeStep in the given direction. Disabled entirely
// while no document is active.
func (s *Splitter) Nudge(dir Direction, documentActive bool) {
	if !documentActive {
		return
	}
	switch dir {
	case ShrinkDocument:
		s.ratio = clamp(s.ratio - NudgeStep)
	case GrowDocument:
		s.ratio = clamp(s.ratio + NudgeStep)
	}
}

// Reset returns the splitter to the session default.
func (s *Splitter) Reset() {
	s.ratio = DefaultRatio
	s.dragging = false
}

func clamp(ratio int) int {
	if ratio < MinRatio {
		return MinRatio
	}
	if ratio > MaxRatio {
		return MaxRatio
	}
	return ratio
}
