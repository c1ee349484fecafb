package application

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"powerboard/internal/domain"
	"powerboard/internal/ports"
)

// Throttle windows and the polling cadence. Calls inside a window are
// dropped, not queued (leading-edge throttle).
const (
	authThrottle     = 100 * time.Millisecond
	manifestThrottle = 500 * time.Millisecond
	refreshThrottle  = 500 * time.Millisecond
	pollInterval     = 15 * time.Second
	retryInterval    = time.Second
)

// Controller keeps authentication, the manifest, and character data fresh
// without overlapping redundant requests, and derives the status line.
//
// It is an explicit per-program object: all throttle state lives on the
// struct, never in package-level singletons, so two controllers (one real,
// one under test) cannot interfere with each other.
type Controller struct {
	auth      ports.AuthGateway
	manifest  ports.ManifestService
	source    ports.CharacterSource
	analytics ports.AnalyticsSink
	log       *zap.Logger

	authLimit     *rate.Limiter
	manifestLimit *rate.Limiter
	refreshLimit  *rate.Limiter

	mu            sync.Mutex
	authed        bool
	manifestData  *domain.Manifest
	manifestStage domain.ManifestStage
	snapshots     domain.SnapshotSet
	haveSnapshots bool
	inFlight      bool // character-data mutual exclusion, checked-then-set under mu
	fetching      bool // network round trip reported by the source

	authErr        stickyError
	manifestErr    stickyError
	systemDisabled stickyError
	unavailable    stickyError

	// Monotonic sequence guard: a slow early request completing after a
	// later one must not overwrite newer state with stale data.
	manifestSeq     uint64
	manifestApplied uint64
	refreshSeq      uint64
	refreshApplied  uint64

	poll     time.Duration
	onChange func() // optional notification hook, called outside mu
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithPollInterval overrides the character-data poll cadence.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.poll = d
		}
	}
}

// WithOnChange registers a hook invoked after any state transition, which
// the TUI uses to repaint without polling the controller.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// NewController creates a refresh controller over the given collaborators.
func NewController(auth ports.AuthGateway, manifest ports.ManifestService, source ports.CharacterSource, analytics ports.AnalyticsSink, opts ...Option) *Controller {
	c := &Controller{
		auth:          auth,
		manifest:      manifest,
		source:        source,
		analytics:     analytics,
		log:           zap.NewNop(),
		authLimit:     rate.NewLimiter(rate.Every(authThrottle), 1),
		manifestLimit: rate.NewLimiter(rate.Every(manifestThrottle), 1),
		refreshLimit:  rate.NewLimiter(rate.Every(refreshThrottle), 1),
		poll:          pollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run drives the controller until ctx is cancelled: one unconditional
// manifest fetch on start, a 15s character-data poll, a 1s pass that picks
// up the initial fetch and auth retries, and manifest stage events.
func (c *Controller) Run(ctx context.Context) {
	stages := c.manifest.Subscribe()

	c.EnsureAuthed(ctx)
	c.EnsureManifest(ctx)

	poll := time.NewTicker(c.poll)
	defer poll.Stop()
	retry := time.NewTicker(retryInterval)
	defer retry.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case stage := <-stages:
			c.onManifestStage(ctx, stage)
		case <-poll.C:
			c.pollTick(ctx)
		case <-retry.C:
			c.retryTick(ctx)
		}
	}
}

// pollTick fires the interval refresh when the gates allow it. The global
// service flags suppress polling entirely until a manifest fetch succeeds.
func (c *Controller) pollTick(ctx context.Context) {
	c.mu.Lock()
	ok := c.authed && c.auth.HasSelectedMembership() && !c.inFlight &&
		!c.systemDisabled.IsSet() && !c.unavailable.IsSet()
	c.mu.Unlock()
	if ok {
		c.RefreshCharacterData(ctx)
	}
}

// retryTick re-establishes auth when it lapsed and fires the one immediate
// refresh owed while no snapshot set has ever been received.
func (c *Controller) retryTick(ctx context.Context) {
	c.mu.Lock()
	needAuth := !c.authed
	needData := !c.haveSnapshots && !c.inFlight &&
		!c.systemDisabled.IsSet() && !c.unavailable.IsSet()
	c.mu.Unlock()

	if needAuth {
		c.EnsureAuthed(ctx)
	}
	if needData {
		c.RefreshCharacterData(ctx)
	}
}

// onManifestStage records the current pipeline stage. A ready stage clears
// a sticky manifest error; an error stage triggers a throttled re-fetch.
func (c *Controller) onManifestStage(ctx context.Context, stage domain.ManifestStage) {
	c.mu.Lock()
	c.manifestStage = stage
	if stage == domain.StageReady {
		c.manifestErr.Clear()
	}
	c.mu.Unlock()
	c.notify()

	if stage == domain.StageError {
		c.EnsureManifest(ctx)
	}
}

// EnsureAuthed authenticates when needed, at most once per 100ms window.
func (c *Controller) EnsureAuthed(ctx context.Context) {
	c.mu.Lock()
	if c.authed && c.auth.HasValidAuth() {
		c.mu.Unlock()
		return
	}
	if !c.authLimit.Allow() {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	ok, err := c.auth.Auth(ctx)

	c.mu.Lock()
	if err != nil || !ok {
		c.authed = false
		c.authErr.Set(&domain.AuthError{Err: err})
		c.mu.Unlock()
		c.log.Warn("auth failed", zap.Error(err))
		c.notify()
		return
	}
	c.authed = true
	c.authErr.Clear()
	c.mu.Unlock()
	c.notify()
}

// ManualStartAuth hands off to the gateway's interactive login. This is the
// user-facing retry affordance for a sticky auth error.
func (c *Controller) ManualStartAuth() error {
	c.analytics.ReportEvent("auth", "manual_start", "")
	return c.auth.ManualStartAuth()
}

// EnsureManifest fetches the manifest, at most once per 500ms window.
func (c *Controller) EnsureManifest(ctx context.Context) {
	if !c.manifestLimit.Allow() {
		return
	}

	c.mu.Lock()
	c.manifestSeq++
	seq := c.manifestSeq
	c.mu.Unlock()

	m, err := c.manifest.GetManifest(ctx)

	c.mu.Lock()
	if seq <= c.manifestApplied {
		// A newer request already completed; this result is stale.
		c.mu.Unlock()
		return
	}
	c.manifestApplied = seq

	if err != nil {
		switch domain.Classify(err) {
		case domain.CategorySystemDisabled:
			c.systemDisabled.Set(err)
		case domain.CategoryUnavailable:
			c.unavailable.Set(err)
		default:
			c.manifestErr.Set(err)
		}
		c.mu.Unlock()
		c.log.Warn("manifest fetch failed", zap.Error(err))
		c.notify()
		return
	}

	c.manifestData = m
	c.manifestErr.Clear()
	c.systemDisabled.Clear()
	c.unavailable.Clear()
	c.mu.Unlock()
	c.log.Info("manifest ready", zap.String("version", m.Version))
	c.notify()
}

// RefreshCharacterData fetches a fresh snapshot set, at most once per 500ms
// window and never while a fetch is in flight. On success the aggregate
// power metrics go to analytics before the set is published.
func (c *Controller) RefreshCharacterData(ctx context.Context) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return
	}
	if !c.refreshLimit.Allow() {
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.refreshSeq++
	seq := c.refreshSeq
	c.mu.Unlock()

	err := c.source.GetCharacterData(ctx,
		func(set domain.SnapshotSet) {
			c.mu.Lock()
			if seq <= c.refreshApplied {
				c.mu.Unlock()
				return
			}
			c.refreshApplied = seq
			agg := set.Aggregates()
			c.mu.Unlock()

			c.analytics.Report(agg)

			c.mu.Lock()
			c.snapshots = set
			c.haveSnapshots = true
			c.mu.Unlock()
			c.notify()
		},
		func(fetching bool) {
			c.mu.Lock()
			c.fetching = fetching
			c.mu.Unlock()
			c.notify()
		},
	)

	c.mu.Lock()
	c.inFlight = false
	if err != nil {
		switch domain.Classify(err) {
		case domain.CategorySystemDisabled:
			c.systemDisabled.Set(err)
		case domain.CategoryUnavailable:
			c.unavailable.Set(err)
		default:
			// Generic failures surface in the status line only; the next
			// poll retries.
			c.log.Warn("character fetch failed", zap.Error(err))
		}
	}
	c.mu.Unlock()
	c.notify()
}

// Snapshots returns the latest published set and whether one exists.
func (c *Controller) Snapshots() (domain.SnapshotSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshots, c.haveSnapshots
}

// Manifest returns the stored manifest, or nil before the first success.
func (c *Controller) Manifest() *domain.Manifest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.manifestData
}

// Authed reports whether the last auth attempt succeeded.
func (c *Controller) Authed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authed
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
