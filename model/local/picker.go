package local

import (
	"sync/atomic"
	"time"
)

// Picker chooses an index in [0, n) for template and phrasing variety. It is
// not a source of randomness and must not be treated as one.
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts an ordinary function to the Picker interface.
type PickerFunc func(n int) int

// Pick implements Picker.
func (f PickerFunc) Pick(n int) int { return f(n) }

// ClockPicker selects by wall-clock epoch seconds modulo n, so the choice is
// stable within a second.
type ClockPicker struct {
	Now func() time.Time
}

// Pick implements Picker.
func (c ClockPicker) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return int(now().Unix() % int64(n))
}

// CounterPicker walks indices deterministically: the k-th call returns
// (start+k) mod n. Safe for concurrent use.
type CounterPicker struct {
	next atomic.Int64
}

// NewCounterPicker starts the sequence at start.
func NewCounterPicker(start int) *CounterPicker {
	p := &CounterPicker{}
	p.next.Store(int64(start))
	return p
}

// Pick implements Picker.
func (c *CounterPicker) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	v := c.next.Add(1) - 1
	idx := int(v % int64(n))
	if idx < 0 {
		idx += n
	}
	return idx
}

// FixedPicker always returns the same index (clamped into range).
type FixedPicker int

// Pick implements Picker.
func (f FixedPicker) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(f) % n
	if idx < 0 {
		idx += n
	}
	return idx
}
