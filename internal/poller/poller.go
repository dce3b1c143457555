// Package poller drives periodic snapshot fetches into a bounded history.
//
// A Poller moves Idle → Polling → Stopped. Every activation carries a cycle
// token; fetch completions apply only while the poller is still Polling under
// the token they started with, so results arriving after Stop are dropped.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vesaa/sysdash/internal/history"
	"github.com/vesaa/sysdash/internal/models"
	"go.uber.org/zap"
)

// DefaultInterval is the time between ticks.
const DefaultInterval = 5 * time.Second

// State is the poller lifecycle state.
type State int

const (
	StateIdle State = iota
	StatePolling
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

var (
	ErrAlreadyStarted = errors.New("poller already started")
	ErrStopped        = errors.New("poller stopped")

	errEmptySnapshot = errors.New("empty snapshot")
)

// View is what a renderer sees. History is a private copy.
type View struct {
	State   State
	Current *models.Snapshot
	Err     string
	History []models.HistoryEntry
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the tick period.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithHistorySize sets the ring capacity.
func WithHistorySize(n int) Option {
	return func(p *Poller) { p.ring = history.NewRing[models.HistoryEntry](n) }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.log = l
		}
	}
}

// WithUpdateHandler registers fn to receive the view after every applied
// outcome. Calls are serialized, always carry the latest state and never
// happen once Stop has returned. fn must not call Stop.
func WithUpdateHandler(fn func(View)) Option {
	return func(p *Poller) { p.onUpdate = fn }
}

// Poller keeps a live feed of snapshots while active.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	log      *zap.Logger
	onUpdate func(View)

	mu      sync.Mutex
	state   State
	token   uint64
	current *models.Snapshot
	errMsg  string
	ring    *history.Ring[models.HistoryEntry]
	cancel  context.CancelFunc

	// render serializes onUpdate calls; taken before mu, never inside it.
	render sync.Mutex
	loop   sync.WaitGroup
}

// New creates an idle Poller.
func New(f Fetcher, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  f,
		interval: DefaultInterval,
		log:      zap.NewNop(),
		ring:     history.NewRing[models.HistoryEntry](history.DefaultCapacity),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start moves the poller to Polling, fetches immediately and then on every
// interval. Cancelling ctx halts the ticks; call Stop to finish the
// lifecycle.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	switch p.state {
	case StatePolling:
		p.mu.Unlock()
		return ErrAlreadyStarted
	case StateStopped:
		p.mu.Unlock()
		return ErrStopped
	}
	p.state = StatePolling
	p.token++
	tok := p.token
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	p.log.Debug("polling started", zap.Duration("interval", p.interval))
	p.loop.Add(1)
	go p.run(ctx, tok)
	return nil
}

// Stop ends the lifecycle. Outstanding fetches are cancelled and their
// results discarded. Stop is idempotent and terminal.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.state == StateStopped {
		p.mu.Unlock()
		return
	}
	p.state = StateStopped
	p.token++
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.loop.Wait()
	// Wait out a render in progress; later ones see StateStopped.
	p.render.Lock()
	p.render.Unlock()
	p.log.Debug("polling stopped")
}

// Run starts the poller, blocks until ctx is done, then stops it.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	p.Stop()
	return nil
}

// State returns the current lifecycle state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// View returns a read-only copy of the current display state.
func (p *Poller) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewLocked()
}

func (p *Poller) viewLocked() View {
	return View{
		State:   p.state,
		Current: p.current.Clone(),
		Err:     p.errMsg,
		History: p.ring.Entries(),
	}
}

// run owns the ticker. Each tick fetches on its own goroutine so a hung
// request never delays the schedule.
func (p *Poller) run(ctx context.Context, tok uint64) {
	defer p.loop.Done()

	go p.tick(ctx, tok)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.tick(ctx, tok)
		}
	}
}

func (p *Poller) tick(ctx context.Context, tok uint64) {
	snap, err := p.fetcher.Fetch(ctx)
	if ctx.Err() != nil {
		p.log.Debug("fetch cancelled", zap.Uint64("token", tok))
		return
	}
	if err == nil && snap == nil {
		err = errEmptySnapshot
	}
	p.apply(tok, snap, err)
}

// apply records a fetch outcome unless it is stale.
func (p *Poller) apply(tok uint64, snap *models.Snapshot, err error) {
	p.mu.Lock()
	if p.state != StatePolling || tok != p.token {
		p.mu.Unlock()
		p.log.Debug("discarding stale result", zap.Uint64("token", tok))
		return
	}

	if err != nil {
		p.current = nil
		p.errMsg = err.Error()
		p.log.Warn("fetch failed", zap.Error(err))
	} else {
		p.current = snap
		p.errMsg = ""
		p.ring.Append(models.NewHistoryEntry(snap))
	}
	p.mu.Unlock()

	p.notify(tok)
}

// notify hands the current view to onUpdate. The view is taken under the
// render lock so an older outcome never prints over a newer one.
func (p *Poller) notify(tok uint64) {
	if p.onUpdate == nil {
		return
	}
	p.render.Lock()
	defer p.render.Unlock()

	p.mu.Lock()
	if p.state != StatePolling || tok != p.token {
		p.mu.Unlock()
		return
	}
	view := p.viewLocked()
	p.mu.Unlock()

	p.onUpdate(view)
}
