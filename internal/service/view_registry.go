package service

import (
	"context"
	"sync"
	"time"

	"github.com/bloggify-frontend/internal/config"
	"github.com/bloggify-frontend/internal/debounce"
	"github.com/rs/zerolog"
)

// SessionPruner removes stored sessions last written before a cutoff
type SessionPruner interface {
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

type viewEntry struct {
	blog     *BlogView
	admin    *AdminView
	lastSeen time.Time
}

// ViewRegistry keeps each session's blog and admin views alive between requests
// and evicts the ones that have been idle for longer than the configured TTL.
// Its janitor also prunes stored session flags that outlived the session cookie.
type ViewRegistry struct {
	api   BlogAPI
	cfg   config.ViewConfig
	clock debounce.Clock
	log   zerolog.Logger

	pruner     SessionPruner
	sessionTTL time.Duration

	// base scopes fetches started by debounced search commits
	base       context.Context
	cancelBase context.CancelFunc

	mu      sync.Mutex
	entries map[string]*viewEntry

	janitorMu sync.Mutex
	running   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewViewRegistry creates an empty registry
func NewViewRegistry(api BlogAPI, cfg config.ViewConfig, clock debounce.Clock, log zerolog.Logger) *ViewRegistry {
	base, cancel := context.WithCancel(context.Background())
	return &ViewRegistry{
		api:        api,
		cfg:        cfg,
		clock:      clock,
		log:        log.With().Str("service", "views").Logger(),
		base:       base,
		cancelBase: cancel,
		entries:    make(map[string]*viewEntry),
	}
}

// PruneSessions makes every sweep delete stored sessions older than maxAge.
// Call it before StartJanitor.
func (r *ViewRegistry) PruneSessions(p SessionPruner, maxAge time.Duration) {
	r.pruner = p
	r.sessionTTL = maxAge
}

// Blog returns the session's blog view, creating it on first use
func (r *ViewRegistry) Blog(sessionID string) *BlogView {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.touchLocked(sessionID)
	if e.blog == nil {
		e.blog = NewBlogView(r.base, r.api, r.cfg.PageSize, debounce.New(r.cfg.SearchDebounce, r.clock),
			r.log.With().Str("session_id", sessionID).Logger())
	}
	return e.blog
}

// Admin returns the session's admin view, creating it on first use
func (r *ViewRegistry) Admin(sessionID string) *AdminView {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.touchLocked(sessionID)
	if e.admin == nil {
		e.admin = NewAdminView(r.api, r.cfg.PageSize, r.log.With().Str("session_id", sessionID).Logger())
	}
	return e.admin
}

// Drop discards a session's views, e.g. on logout
func (r *ViewRegistry) Drop(sessionID string) {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	r.mu.Unlock()

	if ok {
		e.close()
	}
}

// Len returns the number of sessions holding views
func (r *ViewRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// EvictIdle drops views not touched within the idle TTL before now
func (r *ViewRegistry) EvictIdle(now time.Time) int {
	if r.cfg.IdleTTL <= 0 {
		return 0
	}

	var idle []*viewEntry
	r.mu.Lock()
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.cfg.IdleTTL {
			idle = append(idle, e)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, e := range idle {
		e.close()
	}
	return len(idle)
}

// Sweep evicts idle views and prunes expired sessions as of now
func (r *ViewRegistry) Sweep(ctx context.Context, now time.Time) {
	if n := r.EvictIdle(now); n > 0 {
		r.log.Debug().Int("evicted", n).Int("remaining", r.Len()).Msg("Evicted idle views")
	}

	if r.pruner == nil || r.sessionTTL <= 0 {
		return
	}
	n, err := r.pruner.Prune(ctx, now.Add(-r.sessionTTL))
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to prune expired sessions")
		return
	}
	if n > 0 {
		r.log.Debug().Int64("pruned", n).Dur("max_age", r.sessionTTL).Msg("Pruned expired sessions")
	}
}

// StartJanitor sweeps idle views until ctx is done or StopJanitor is called.
// It blocks, so run it in its own goroutine.
func (r *ViewRegistry) StartJanitor(ctx context.Context) {
	r.janitorMu.Lock()
	if r.running || r.cfg.SweepInterval <= 0 {
		r.janitorMu.Unlock()
		return
	}
	r.running = true
	ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(1)
	r.janitorMu.Unlock()

	defer r.wg.Done()

	r.log.Info().Dur("interval", r.cfg.SweepInterval).Dur("idle_ttl", r.cfg.IdleTTL).Msg("View janitor started")

	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("View janitor stopping")
			return
		case now := <-ticker.C:
			r.Sweep(ctx, now)
		}
	}
}

// StopJanitor stops the sweep loop, cancels in-flight search fetches and closes every view
func (r *ViewRegistry) StopJanitor() {
	r.janitorMu.Lock()
	if r.running {
		r.cancel()
		r.wg.Wait()
		r.running = false
	}
	r.janitorMu.Unlock()

	r.cancelBase()

	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*viewEntry)
	r.mu.Unlock()

	for _, e := range entries {
		e.close()
	}
	r.log.Info().Int("closed", len(entries)).Msg("View registry stopped")
}

func (r *ViewRegistry) touchLocked(sessionID string) *viewEntry {
	e, ok := r.entries[sessionID]
	if !ok {
		e = &viewEntry{}
		r.entries[sessionID] = e
	}
	e.lastSeen = time.Now()
	return e
}

func (e *viewEntry) close() {
	if e.blog != nil {
		e.blog.Close()
	}
}
