package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/revumeapp/revume-cli/internal/client/api"
	"github.com/revumeapp/revume-cli/internal/client/collection"
	"github.com/revumeapp/revume-cli/internal/client/config"
	"github.com/revumeapp/revume-cli/internal/client/prefs"
	"github.com/revumeapp/revume-cli/internal/client/probe"
	"github.com/revumeapp/revume-cli/internal/client/session"
	"github.com/revumeapp/revume-cli/internal/logging"
)

// App wires the client layers together and backs the REPL commands.
type App struct {
	config  *config.Config
	log     logging.Logger
	client  api.Client
	store   prefs.Store
	session *session.Manager
	avail   *probe.State
	prober  *probe.Prober
	sched   *probe.RetryScheduler
	engine  *collection.Engine

	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	detailID string
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) *App {
	store := prefs.Open(ctx, cfg.PrefsPath, log)
	avail := probe.NewState()

	client := api.NewHTTPClient(cfg.BaseURL, cfg.RequestTimeout, log)
	sess := session.NewManager(client, store, avail, log)
	client.SetTokenSource(sess.Token)

	prober := probe.NewProber(client.Ready, avail, probe.Options{
		Attempts:   cfg.ProbeAttempts,
		ShortDelay: cfg.ProbeShortDelay,
		LongDelay:  cfg.ProbeLongDelay,
	}, log)
	sched := probe.NewRetryScheduler(cfg.RetryDebounce)
	engine := collection.NewEngine(client, sess, avail, prober, sched, log)

	return &App{
		config:  cfg,
		log:     log,
		client:  client,
		store:   store,
		session: sess,
		avail:   avail,
		prober:  prober,
		sched:   sched,
		engine:  engine,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run restores a persisted session, fetches the collection in the background
// when one hydrates, and drives the REPL until exit.
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.store.Close() }()

	a.session.Hydrate(ctx)

	a.avail.OnChange(func(av probe.Availability) {
		switch av {
		case probe.Booting:
			printlnFn("The service is warming up, hold on...")
		case probe.Error:
			printlnFn("The service did not come up; try again later.")
		}
	})

	g, ctx := errgroup.WithContext(ctx)

	if a.session.IsAuthenticated() {
		g.Go(func() error {
			if err := a.engine.Refresh(ctx); err != nil {
				a.log.Warn(ctx, "initial refresh failed", "err", api.UserMessage(err))
			}
			return nil
		})
	}

	g.Go(func() error {
		a.root(ctx)
		a.sched.Cancel()
		return nil
	})

	return g.Wait()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus renders the prompt suffix: signed-in identity plus availability.
func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Email + " "
	} else if a.isLoggedIn() {
		s = "signed-in "
	}
	s += a.avail.Get().String()
	return "(" + s + ")"
}

func (a *App) setDetail(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detailID = id
}

func (a *App) detail() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.detailID
}

// retryWhenReady engages the prober in the background and schedules a single
// debounced retry of the failed operation once the backend newly comes up.
func (a *App) retryWhenReady(fn func()) {
	go func() {
		if a.prober.Run(context.Background()) {
			a.sched.Schedule(fn)
		}
	}()
}

// handleUnauthorized performs the client side of a 401: full teardown and a
// user-visible explanation.
func (a *App) handleUnauthorized(ctx context.Context) {
	a.session.Invalidate(ctx)
	a.engine.Reset()
	a.setDetail("")
	printlnFn("Your session has expired, please sign in again.")
}
