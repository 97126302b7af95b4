package settings

import (
	"sync"
	"time"

	"territory/internal/core"
)

type pendingWrite struct {
	snapshot core.TargetSettings
	timer    *time.Timer
}

// WriteCoalescer holds at most one pending settings write per owner per
// short time window, so rapid successive edits collapse into a single
// store call. The latest enqueued snapshot wins; earlier ones within the
// window are discarded. Coalescing only affects how often the store is
// called, never the in-memory model: callers read pending snapshots back
// through Pending.
type WriteCoalescer struct {
	mu      sync.Mutex
	pending map[string]*pendingWrite
	delay   time.Duration
	write   func(core.TargetSettings)
}

// NewWriteCoalescer builds a coalescer that calls write after delay has
// elapsed without a newer enqueue for the same owner. A non-positive
// delay writes through immediately.
func NewWriteCoalescer(delay time.Duration, write func(core.TargetSettings)) *WriteCoalescer {
	return &WriteCoalescer{
		pending: make(map[string]*pendingWrite),
		delay:   delay,
		write:   write,
	}
}

// Enqueue replaces the owner's pending write and restarts its window.
// Other owners' windows are untouched.
func (c *WriteCoalescer) Enqueue(s core.TargetSettings) {
	if c.delay <= 0 {
		c.write(s)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	owner := s.OwnerID
	if p, ok := c.pending[owner]; ok {
		p.timer.Stop()
		p.snapshot = s
		p.timer = time.AfterFunc(c.delay, func() { c.fire(owner) })
		return
	}
	c.pending[owner] = &pendingWrite{
		snapshot: s,
		timer:    time.AfterFunc(c.delay, func() { c.fire(owner) }),
	}
}

// Pending returns the owner's enqueued-but-unwritten snapshot, if any.
func (c *WriteCoalescer) Pending(ownerID string) (core.TargetSettings, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[ownerID]
	if !ok {
		return core.TargetSettings{}, false
	}
	return p.snapshot, true
}

func (c *WriteCoalescer) fire(owner string) {
	c.mu.Lock()
	p, ok := c.pending[owner]
	delete(c.pending, owner)
	c.mu.Unlock()

	if ok {
		c.write(p.snapshot)
	}
}

// Flush writes every pending snapshot immediately. Used on shutdown so
// edits caught inside their windows are not lost.
func (c *WriteCoalescer) Flush() {
	c.mu.Lock()
	snapshots := make([]core.TargetSettings, 0, len(c.pending))
	for owner, p := range c.pending {
		p.timer.Stop()
		snapshots = append(snapshots, p.snapshot)
		delete(c.pending, owner)
	}
	c.mu.Unlock()

	for _, s := range snapshots {
		c.write(s)
	}
}

// Discard drops one owner's pending write without executing it and
// reports whether one was queued.
func (c *WriteCoalescer) Discard(ownerID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[ownerID]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(c.pending, ownerID)
	return true
}

// Cancel drops all pending writes without executing them.
func (c *WriteCoalescer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for owner, p := range c.pending {
		p.timer.Stop()
		delete(c.pending, owner)
	}
}
