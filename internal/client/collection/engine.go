package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/revumeapp/revume-cli/internal/client/api"
	"github.com/revumeapp/revume-cli/internal/client/models"
	"github.com/revumeapp/revume-cli/internal/client/probe"
	"github.com/revumeapp/revume-cli/internal/logging"
)

// ErrServiceWaking tells the user the backend is cold-starting and the
// operation should be retried in a moment. It is informational, not fatal.
var ErrServiceWaking = errors.New("the service is waking up, try again in a moment")

// Session is the slice of the session manager the engine needs: the auth
// gate and the teardown hook for 401 responses.
type Session interface {
	IsAuthenticated() bool
	Invalidate(ctx context.Context)
}

// Engine owns the authoritative review sequence for the current session.
// Every successful fetch replaces the collection wholesale; there is no
// merging, so there is nothing to reconcile.
type Engine struct {
	mu       sync.Mutex
	reviews  []models.Review
	criteria Criteria

	client api.Client
	sess   Session
	avail  *probe.State
	prober *probe.Prober
	sched  *probe.RetryScheduler
	log    logging.Logger

	// fetchSeq orders overlapping fetches so a slow early response cannot
	// overwrite a fresher one.
	fetchSeq atomic.Uint64
}

func NewEngine(client api.Client, sess Session, avail *probe.State, prober *probe.Prober,
	sched *probe.RetryScheduler, log logging.Logger) *Engine {
	return &Engine{client: client, sess: sess, avail: avail, prober: prober, sched: sched, log: log}
}

// Refresh re-fetches the collection. Unauthenticated, it clears the
// collection and parks availability at idle. A cold-start failure engages
// the prober and, if the backend newly comes up, schedules exactly one
// debounced retry; the caller sees nil and a warming-up availability state.
func (e *Engine) Refresh(ctx context.Context) error {
	if !e.sess.IsAuthenticated() {
		e.mu.Lock()
		e.reviews = nil
		e.mu.Unlock()
		e.avail.Set(probe.Idle)
		return nil
	}

	seq := e.fetchSeq.Add(1)
	list, err := e.client.ListReviews(ctx)
	if err != nil {
		switch {
		case api.IsUnauthorized(err):
			e.teardown(ctx)
			return fmt.Errorf("session expired: %w", err)
		case api.IsUnavailable(err):
			e.recover(func() { _ = e.Refresh(context.Background()) })
			return nil
		default:
			e.avail.Set(probe.Error)
			return err
		}
	}

	if seq != e.fetchSeq.Load() {
		e.log.Debug(ctx, "discarding stale fetch", "seq", seq)
		return nil
	}

	e.mu.Lock()
	e.reviews = list
	e.mu.Unlock()
	e.avail.Set(probe.Ready)
	return nil
}

// Delete removes a review and then refreshes unconditionally, so the local
// collection reflects whatever the server now holds. Confirmation is the
// caller's job.
func (e *Engine) Delete(ctx context.Context, id string) error {
	defer func() { _ = e.Refresh(ctx) }()

	err := e.client.DeleteReview(ctx, id)
	if err == nil {
		return nil
	}

	switch {
	case api.IsUnauthorized(err):
		e.teardown(ctx)
		return fmt.Errorf("session expired: %w", err)
	case api.IsUnavailable(err):
		// No automatic retry for destructive calls; wake the backend and
		// let the user decide.
		go e.prober.Run(context.Background())
		return ErrServiceWaking
	default:
		return err
	}
}

// teardown handles a 401: exactly one session invalidation, never a retry.
func (e *Engine) teardown(ctx context.Context) {
	e.sess.Invalidate(ctx)
	e.Reset()
}

// recover engages the prober asynchronously and schedules a single debounced
// retry of the failed operation once the backend newly reports ready.
func (e *Engine) recover(retry func()) {
	go func() {
		if e.prober.Run(context.Background()) {
			e.sched.Schedule(retry)
		}
	}()
}

// Reset clears the collection and all view criteria, e.g. on logout.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.reviews = nil
	e.criteria = Criteria{}
	e.mu.Unlock()
}

// Reviews returns a copy of the raw, unfiltered collection.
func (e *Engine) Reviews() []models.Review {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Review, len(e.reviews))
	copy(out, e.reviews)
	return out
}

// View returns the filtered and sorted collection for the current criteria.
func (e *Engine) View() []models.Review {
	e.mu.Lock()
	reviews := e.reviews
	cr := e.criteria
	e.mu.Unlock()
	return FilterSort(reviews, cr)
}

// Categories returns the distinct tags across the whole collection.
func (e *Engine) Categories() []string {
	e.mu.Lock()
	reviews := e.reviews
	e.mu.Unlock()
	return Categories(reviews)
}

func (e *Engine) Criteria() Criteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.criteria
}

func (e *Engine) SetSearchTerm(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria.SearchTerm = term
}

func (e *Engine) SetTypeFilter(t string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria.TypeFilter = t
}

func (e *Engine) SetCategoryFilter(c string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria.CategoryFilter = c
}

func (e *Engine) SetSortKey(k SortKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria.SortKey = k
}
