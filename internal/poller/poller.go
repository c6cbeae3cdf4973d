package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"cakestory-client/internal/model"
)

const defaultInterval = 5 * time.Second

// StatusFunc queries the remote payment status for one order.
type StatusFunc func(ctx context.Context, orderID string) (model.PaymentStatus, error)

// Poller watches a single payment session: it probes the backend at a
// fixed interval until the status turns terminal or the poller is
// stopped. Queries run strictly one at a time; a tick that fires while
// a probe is still in flight is skipped, never stacked.
type Poller struct {
	query       StatusFunc
	interval    time.Duration
	maxAttempts int

	mu      sync.Mutex
	status  model.PaymentStatus
	stopped bool
	started bool
	firing  bool
	cancel  context.CancelFunc
	done    chan struct{}

	// serializes onChange against Stop; acquired before mu, never
	// while holding it
	cbMu sync.Mutex
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides the 5s probe interval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithMaxAttempts bounds the number of probes; 0 means unbounded.
func WithMaxAttempts(n int) Option {
	return func(p *Poller) { p.maxAttempts = n }
}

func New(query StatusFunc, opts ...Option) *Poller {
	p := &Poller{
		query:    query,
		interval: defaultInterval,
		status:   model.PaymentPending,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start probes once immediately, then on every interval tick, until the
// status turns terminal, the context is cancelled, or Stop is called.
// onChange fires once per genuine transition: a probe returning the
// already-known status is silent. Start may be called at most once.
func (p *Poller) Start(ctx context.Context, orderID string, onChange func(model.PaymentStatus)) {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	go p.run(ctx, orderID, onChange)
}

func (p *Poller) run(ctx context.Context, orderID string, onChange func(model.PaymentStatus)) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	attempts := 0
	for {
		attempts++
		if p.probe(ctx, orderID, onChange) {
			return
		}
		if p.maxAttempts > 0 && attempts >= p.maxAttempts {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// probe runs one status query and applies the result. It returns true
// when polling should end. Query errors are transient by policy: log,
// keep the current status, retry on the next tick.
func (p *Poller) probe(ctx context.Context, orderID string, onChange func(model.PaymentStatus)) bool {
	status, err := p.query(ctx, orderID)

	p.cbMu.Lock()
	defer p.cbMu.Unlock()

	p.mu.Lock()

	// A response from a probe issued before Stop is a stale write.
	if p.stopped {
		p.mu.Unlock()
		return true
	}
	if err != nil {
		p.mu.Unlock()
		if ctx.Err() != nil {
			return true
		}
		log.Printf("payment status probe failed for order %s: %v", orderID, err)
		return false
	}

	changed := status != p.status
	if changed {
		p.status = status
		p.firing = onChange != nil
	}
	p.mu.Unlock()

	// The callback runs without p.mu held so it is free to call
	// Status or Stop on this poller.
	if changed && onChange != nil {
		onChange(status)

		p.mu.Lock()
		p.firing = false
		p.mu.Unlock()
	}
	return status.Terminal()
}

// Stop halts polling. Idempotent and safe to call before Start, from
// inside the onChange callback, or when polling already finished. Once
// Stop returns, no new onChange invocation can begin for this session.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel := p.cancel
	neverStarted := !p.started
	firing := p.firing
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	// No run goroutine exists to close done, so Done must still
	// become observable after Stop.
	if neverStarted {
		close(p.done)
		return
	}

	// Wait out a callback currently in flight, so a caller returning
	// from Stop will not race one. Skipped when the callback itself
	// is what called Stop.
	if !firing {
		p.cbMu.Lock()
		p.cbMu.Unlock()
	}
}

// Status returns the last known status for this session.
func (p *Poller) Status() model.PaymentStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Done is closed when the polling goroutine has exited, or when Stop
// is called on a poller that never started one.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}
