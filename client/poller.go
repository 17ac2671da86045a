package client

import (
	"context"
	"errors"
	"sync"
	"time"
)

// FailureThreshold is how many consecutive failed cycles a poller
// tolerates before Err reports a degraded state. The cadence never
// changes; the poller keeps retrying and recovers on the first success.
const FailureThreshold = 3

// FetchFunc performs one poll cycle and returns the fresh snapshot.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Poller periodically re-fetches one resource and replaces its cached
// snapshot wholesale. Every fetch is stamped with a monotonically
// increasing sequence at issue time; a result only lands if no
// later-issued fetch has landed before it, so a slow stale response can
// never overwrite fresher data.
type Poller struct {
	name     string
	interval time.Duration
	fetch    FetchFunc
	onUpdate func(interface{})

	mu       sync.Mutex
	snapshot interface{}
	issued   uint64
	applied  uint64
	failures int
	lastErr  error

	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(name string, interval time.Duration, fetch FetchFunc) *Poller {
	return &Poller{name: name, interval: interval, fetch: fetch}
}

// OnUpdate registers a callback invoked (outside the poller lock) each
// time a fresh snapshot lands. Must be set before Start.
func (p *Poller) OnUpdate(fn func(interface{})) { p.onUpdate = fn }

func (p *Poller) Name() string { return p.name }

// Start begins polling with an immediate first fetch, then one per
// interval. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.run(ctx)
}

// Stop cancels the poll loop and any in-flight fetch, then waits for the
// loop to exit. Safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

// cycle issues one fetch in its own goroutine so a slow response never
// delays the next tick. Each in-flight fetch carries the sequence number
// it was issued under.
func (p *Poller) cycle(ctx context.Context) {
	p.mu.Lock()
	p.issued++
	seq := p.issued
	p.mu.Unlock()

	go func() {
		data, err := p.fetch(ctx)
		p.apply(ctx, seq, data, err)
	}()
}

func (p *Poller) apply(ctx context.Context, seq uint64, data interface{}, err error) {
	if ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	if seq <= p.applied {
		// A later-issued fetch already landed; this result is stale.
		p.mu.Unlock()
		return
	}
	p.applied = seq

	if err != nil {
		p.failures++
		p.lastErr = err
		p.mu.Unlock()
		return
	}

	p.failures = 0
	p.lastErr = nil
	p.snapshot = data
	fn := p.onUpdate
	p.mu.Unlock()

	if fn != nil {
		fn(data)
	}
}

// Snapshot returns the last successfully fetched value, or nil before
// the first success. During degraded periods the last good snapshot is
// retained.
func (p *Poller) Snapshot() interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Err reports the degraded state: non-nil once FailureThreshold
// consecutive cycles have failed, and immediately on session expiry.
// It clears on the next successful cycle.
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastErr != nil && errors.Is(p.lastErr, ErrSessionExpired) {
		return p.lastErr
	}
	if p.failures >= FailureThreshold {
		return p.lastErr
	}
	return nil
}

// Healthy is a convenience for badge rendering.
func (p *Poller) Healthy() bool { return p.Err() == nil }
