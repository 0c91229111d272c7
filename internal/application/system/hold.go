package system

import "time"

// HoldKey is a key tracked by HoldTracker
type HoldKey int

const (
	HoldLeft HoldKey = iota
	HoldRight
	HoldJump
)

// HoldTracker derives held keys from press events alone. Terminals report
// key repeats but no releases, so a key counts as held until no repeat has
// arrived for the timeout.
type HoldTracker struct {
	timeout time.Duration
	last    [3]time.Time
}

// NewHoldTracker creates a tracker with the given release timeout
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	return &HoldTracker{timeout: timeout}
}

// Press records a press or repeat of k. A direction press releases the
// opposite direction at once.
func (h *HoldTracker) Press(k HoldKey, now time.Time) {
	h.last[k] = now
	switch k {
	case HoldLeft:
		h.last[HoldRight] = time.Time{}
	case HoldRight:
		h.last[HoldLeft] = time.Time{}
	}
}

// Keys returns the keys held at now
func (h *HoldTracker) Keys(now time.Time) Keys {
	return Keys{
		Left:  h.held(HoldLeft, now),
		Right: h.held(HoldRight, now),
		Jump:  h.held(HoldJump, now),
	}
}

// Clear releases every key
func (h *HoldTracker) Clear() {
	h.last = [3]time.Time{}
}

func (h *HoldTracker) held(k HoldKey, now time.Time) bool {
	t := h.last[k]
	return !t.IsZero() && now.Sub(t) < h.timeout
}
