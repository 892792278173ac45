package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog/log"

	"github.com/RyShoe8/fantasyfootball/db"
	"github.com/RyShoe8/fantasyfootball/localcache"
	"github.com/RyShoe8/fantasyfootball/model"
	"github.com/RyShoe8/fantasyfootball/sleeper"
)

const (
	// Per-fetch bound for league-scoped data. Catalog fetches get longer
	// because the payload is thousands of players.
	defaultFetchTimeout   = 5 * time.Second
	defaultCatalogTimeout = 15 * time.Second

	// catalogWindow is how long a cached player catalog is trusted without
	// re-validation. There is no delta mechanism; the window is the only
	// staleness signal.
	catalogWindow = 24 * time.Hour

	maxWeek = 18
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// C is the data synchronization controller. It owns the session state and
// brings league/roster/user/player data to the freshest available snapshot
// on every selection change, tolerating partial remote failure. Identity
// resolution is the only hard prerequisite: everything after a successful
// login degrades instead of failing.
type C interface {
	Login(ctx context.Context, handle string) error
	Logout() error
	SelectLeague(ctx context.Context, leagueID string) error
	SelectSeason(ctx context.Context, year string) error
	// SelectWeek only moves the selection; rosters are not week-scoped.
	// Cached stats for the new week are invalidated so the next read
	// refetches them.
	SelectWeek(week int)
	// Retry replays exactly the fetches that failed for the current
	// selection, not the whole session bootstrap.
	Retry(ctx context.Context) error

	// Session returns a copy of the current session snapshot.
	Session() model.SessionState

	GetPlayerCatalog(ctx context.Context) (map[string]model.Player, error)
	GetPlayerStats(ctx context.Context, season string, week int) (map[string]model.PlayerStats, error)
	GetDraftPicks(ctx context.Context, leagueID string) ([]model.DraftPick, error)
	EvaluateTrade(ctx context.Context, sideA, sideB []string) (model.TradeEvaluation, error)

	RunPeriodicCatalogUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)
}

type controller struct {
	clock   clock.Clock
	sleeper sleeper.Client
	store   db.Store
	local   *localcache.Cache
	scorer  model.TradeScoreFunc

	fetchTimeout   time.Duration
	catalogTimeout time.Duration

	// mu guards session, gen and statsCache. The controller is the only
	// writer, but fetch results arrive on goroutines.
	mu      sync.Mutex
	session model.SessionState
	// gen is the selection generation. Every in-flight fetch carries the
	// generation it was started under; results from a superseded selection
	// are discarded instead of clobbering newer state.
	gen        uint64
	statsCache map[statsKey]map[string]model.PlayerStats
}

type statsKey struct {
	season string
	week   int
}

type Option func(*controller)

// WithFetchTimeout overrides the per-fetch bound, mainly for tests.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *controller) {
		c.fetchTimeout = d
	}
}

func WithCatalogTimeout(d time.Duration) Option {
	return func(c *controller) {
		c.catalogTimeout = d
	}
}

// WithTradeScorer swaps the trade evaluator's scoring function.
func WithTradeScorer(fn model.TradeScoreFunc) Option {
	return func(c *controller) {
		c.scorer = fn
	}
}

func New(clock clock.Clock, sleeper sleeper.Client, store db.Store, local *localcache.Cache, opts ...Option) (C, error) {
	c := &controller{
		clock:          clock,
		sleeper:        sleeper,
		store:          store,
		local:          local,
		scorer:         model.DefaultTradeScore,
		fetchTimeout:   defaultFetchTimeout,
		catalogTimeout: defaultCatalogTimeout,
		statsCache:     make(map[statsKey]map[string]model.PlayerStats),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.session = model.SessionState{
		Status: model.SessionUnauthenticated,
		Year:   c.currentYear(),
		Week:   c.currentWeek(),
	}

	// Pick up where the last session left off, if there was one. Identity
	// still has to be re-resolved through Login.
	if sel, err := local.Selection(); err == nil {
		c.session.Year = sel.Year
		if sel.Week > 0 {
			c.session.Week = sel.Week
		}
		log.Debug().Str("user", sel.Username).Str("year", sel.Year).Msg("restored previous selection")
	}

	return c, nil
}

func (c *controller) Session() model.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// snapshotLocked deep-copies the parts of the session that handlers could
// otherwise race on. Callers must hold mu.
func (c *controller) snapshotLocked() model.SessionState {
	s := c.session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	if s.League != nil {
		l := *s.League
		s.League = &l
	}
	s.Leagues = append([]model.League(nil), c.session.Leagues...)
	s.Rosters = append([]model.Roster(nil), c.session.Rosters...)
	s.Users = append([]model.User(nil), c.session.Users...)
	s.Failed = append([]model.FetchOp(nil), c.session.Failed...)
	return s
}

func (c *controller) currentYear() string {
	return c.clock.Now().UTC().Format("2006")
}

// currentWeek approximates the NFL week from days elapsed since September 1,
// capped at week 18. This is a heuristic, not a schedule: replacing it with
// real arithmetic requires an authoritative season calendar.
func (c *controller) currentWeek() int {
	now := c.clock.Now().UTC()
	anchor := time.Date(now.Year(), time.September, 1, 0, 0, 0, 0, time.UTC)
	if now.Before(anchor) {
		anchor = anchor.AddDate(-1, 0, 0)
	}
	week := int(now.Sub(anchor).Hours()/(24*7)) + 1
	if week > maxWeek {
		week = maxWeek
	}
	return week
}

// bumpGenLocked starts a new selection generation. Callers must hold mu.
func (c *controller) bumpGenLocked() uint64 {
	c.gen++
	return c.gen
}

// current reports whether the generation is still the live one.
func (c *controller) current(gen uint64) bool {
	return gen == c.gen
}

// recordFailureLocked marks a fetch as failed for the current selection and
// moves the session to Degraded. Callers must hold mu.
func (c *controller) recordFailureLocked(gen uint64, op model.FetchOp, err error) {
	if !c.current(gen) {
		return
	}
	for _, f := range c.session.Failed {
		if f == op {
			c.session.LastError = err.Error()
			return
		}
	}
	c.session.Failed = append(c.session.Failed, op)
	c.session.LastError = err.Error()
	if c.session.Authenticated() {
		c.session.Status = model.SessionDegraded
	}
}

// clearFailureLocked removes a fetch from the failed set. Callers must hold mu.
func (c *controller) clearFailureLocked(op model.FetchOp) {
	failed := c.session.Failed[:0]
	for _, f := range c.session.Failed {
		if f != op {
			failed = append(failed, f)
		}
	}
	c.session.Failed = failed
	if len(failed) == 0 {
		c.session.LastError = ""
		if c.session.Status == model.SessionDegraded {
			c.session.Status = model.SessionReady
		}
	}
}

func (c *controller) persistSelection() {
	c.mu.Lock()
	sel := &localcache.Selection{
		Year: c.session.Year,
		Week: c.session.Week,
	}
	if c.session.User != nil {
		sel.UserID = c.session.User.ID
		sel.Username = c.session.User.Username
	}
	if c.session.League != nil {
		sel.LeagueID = c.session.League.ID
	}
	c.mu.Unlock()

	if err := c.local.SaveSelection(sel); err != nil {
		log.Warn().Err(err).Msg("error persisting selection")
	}
}
