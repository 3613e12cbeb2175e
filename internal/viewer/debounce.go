package viewer

import (
	"sync"
	"time"
)

// DefaultQuiet is the debounce quiet window for search input.
const DefaultQuiet = 300 * time.Millisecond

// Debouncer coalesces rapid search input into one evaluation per quiet
// window. Every input bumps a generation counter; when the window
// elapses the deliver callback fires with the settled term and its
// generation. Consumers must treat the generation as the commit token:
// a result is applied only while its generation is still current, which
// gives last-write-wins by term recency without depending on timer
// cancellation racing the clock.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	gen     uint64
	timer   *time.Timer
	deliver func(term string, gen uint64)
	stopped bool
}

// NewDebouncer returns a Debouncer with the given quiet window. A
// non-positive window delivers synchronously on every input, which is
// the behavior tests and the immediate-apply path rely on.
func NewDebouncer(quiet time.Duration, deliver func(term string, gen uint64)) *Debouncer {
	return &Debouncer{quiet: quiet, deliver: deliver}
}

// Input records one keystroke worth of term text and (re)arms the quiet
// window. It returns the generation assigned to this input.
func (d *Debouncer) Input(term string) uint64 {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return 0
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.quiet <= 0 {
		d.mu.Unlock()
		d.deliver(term, gen)
		return gen
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.deliver(term, gen)
	})
	d.mu.Unlock()
	return gen
}

// Current returns the latest generation handed out.
func (d *Debouncer) Current() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

// Stop cancels any pending delivery. Further Input calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
