package ingest

import (
	"sync"
	"time"
)

// DefaultURLDebounce is the quiet period applied to URL input before
// adaptation fires.
const DefaultURLDebounce = 800 * time.Millisecond

// Debouncer delivers only the last value seen after a quiet period, so URL
// adaptation does not fire on every keystroke. An empty update cancels any
// pending delivery.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func(string)
}

// NewDebouncer builds a debouncer that calls fn with the settled value.
// A non-positive delay falls back to DefaultURLDebounce.
func NewDebouncer(delay time.Duration, fn func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultURLDebounce
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Update records the latest input value and restarts the quiet period.
func (d *Debouncer) Update(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if value == "" {
		return
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.fn(value)
	})
}

// Stop cancels any pending delivery.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
