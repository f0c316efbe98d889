package engine

// Timing window offsets around a stroke's arrival time, in seconds.
const (
	DefaultWindowBefore = 0.75
	DefaultWindowAfter  = 0.5
)

type WindowState uint8

const (
	WindowPending WindowState = iota // before the window opens
	WindowOpen
	WindowExpired
)

// Window is the interval around one stroke's beat time during which an
// attempt counts as on-time. Expiry alone does not resolve the stroke; the
// session tick detects expiry-without-attempt and forces a miss.
type Window struct {
	Arrival float64
	Before  float64
	After   float64
}

func (w Window) Start() float64 { return w.Arrival - w.Before }
func (w Window) End() float64   { return w.Arrival + w.After }

// IsActive reports whether now falls inside the window, inclusive at both
// ends.
func (w Window) IsActive(now float64) bool {
	return now >= w.Start() && now <= w.End()
}

func (w Window) State(now float64) WindowState {
	switch {
	case now < w.Start():
		return WindowPending
	case now > w.End():
		return WindowExpired
	}
	return WindowOpen
}

// Progress is 0 at the window start and 1 at the end, clamped once expired.
// Feedback intensity only; scoring never consults it.
func (w Window) Progress(now float64) float64 {
	span := w.End() - w.Start()
	if span <= 0 {
		return 1
	}
	p := (now - w.Start()) / span
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
