package probe

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/revumeapp/revume-cli/internal/logging"
)

var errNotReady = errors.New("backend not ready")

// Prober polls the health endpoint until the backend wakes up.
//
// The schedule is deliberately fixed, not exponential: 1s between the first
// three attempts, then 1.5s, for at most Attempts tries. That bounds the
// polling window at roughly the cold-start time of the backing service.
type Prober struct {
	ready func(ctx context.Context) bool
	state *State
	log   logging.Logger

	attempts   uint64
	shortDelay time.Duration
	longDelay  time.Duration

	inFlight atomic.Bool
}

// Options tune the probe schedule; zero values fall back to production
// defaults (12 attempts, 1s/1.5s delays).
type Options struct {
	Attempts   uint64
	ShortDelay time.Duration
	LongDelay  time.Duration
}

func NewProber(ready func(ctx context.Context) bool, state *State, opts Options, log logging.Logger) *Prober {
	if opts.Attempts == 0 {
		opts.Attempts = 12
	}
	if opts.ShortDelay == 0 {
		opts.ShortDelay = time.Second
	}
	if opts.LongDelay == 0 {
		opts.LongDelay = 1500 * time.Millisecond
	}
	return &Prober{
		ready:      ready,
		state:      state,
		log:        log,
		attempts:   opts.Attempts,
		shortDelay: opts.ShortDelay,
		longDelay:  opts.LongDelay,
	}
}

// Run executes one probe sequence and reports whether it newly reached
// readiness. At most one sequence runs at a time; a trigger while another is
// in flight is a no-op returning false.
func (p *Prober) Run(ctx context.Context) bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer p.inFlight.Store(false)

	p.state.Set(Booting)

	var tries int
	err := retry.Do(ctx, retry.WithMaxRetries(p.attempts-1, p.backoff()), func(ctx context.Context) error {
		tries++
		if p.ready(ctx) {
			return nil
		}
		return retry.RetryableError(errNotReady)
	})
	if err != nil {
		p.log.Warn(ctx, "backend did not come up", "attempts", tries)
		p.state.Set(Error)
		return false
	}

	p.log.Info(ctx, "backend is ready", "attempts", tries)
	p.state.Set(Ready)
	return true
}

// backoff yields the fixed cold-start schedule: shortDelay for the first
// three waits, longDelay after.
func (p *Prober) backoff() retry.Backoff {
	var waits int
	return retry.BackoffFunc(func() (time.Duration, bool) {
		d := p.shortDelay
		if waits >= 3 {
			d = p.longDelay
		}
		waits++
		return d, false
	})
}
