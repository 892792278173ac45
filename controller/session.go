package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RyShoe8/fantasyfootball/model"
	"github.com/RyShoe8/fantasyfootball/sleeper"
)

const yearOnlyFormat = "2006"

// Login resolves the handle to a user and bootstraps the session. Identity
// resolution failing is fatal to the login; failures loading leagues,
// rosters or users leave the session logged in but Degraded, recoverable
// with Retry.
func (c *controller) Login(ctx context.Context, handle string) error {
	c.mu.Lock()
	c.session.Status = model.SessionAuthenticating
	gen := c.bumpGenLocked()
	year := c.session.Year
	c.mu.Unlock()

	uctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	user, err := c.sleeper.GetUser(uctx, handle)
	if err != nil {
		c.mu.Lock()
		if c.current(gen) {
			c.session.Status = model.SessionUnauthenticated
		}
		c.mu.Unlock()

		if errors.Is(err, sleeper.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", handle, ErrUserNotFound)
		}
		return fmt.Errorf("error resolving user %s: %w", handle, err)
	}

	if err := c.store.SaveUser(ctx, user); err != nil {
		log.Warn().Err(err).Str("user", user.ID).Msg("error caching user")
	}

	c.mu.Lock()
	if !c.current(gen) {
		c.mu.Unlock()
		return nil
	}
	c.session.User = user
	c.session.Status = model.SessionLoading
	c.mu.Unlock()
	c.persistSelection()

	log.Info().Str("user", user.ID).Str("handle", handle).Msg("logged in")

	return c.loadLeagues(ctx, gen, user.ID, year, "")
}

// Logout drops all in-memory state and the locally cached selection. The
// persistent cache is retained.
func (c *controller) Logout() error {
	c.mu.Lock()
	c.bumpGenLocked()
	c.session = model.SessionState{
		Status: model.SessionUnauthenticated,
		Year:   c.currentYear(),
		Week:   c.currentWeek(),
	}
	c.statsCache = make(map[statsKey]map[string]model.PlayerStats)
	c.mu.Unlock()

	log.Info().Msg("logged out")
	return c.local.ClearSelection()
}

// SelectLeague makes the league current immediately, then brings its rosters
// and users up to date. The two fetches are independent: one failing does
// not roll back the other, and a failure keeps the previous value on screen.
func (c *controller) SelectLeague(ctx context.Context, leagueID string) error {
	c.mu.Lock()
	if c.session.User == nil {
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	gen := c.bumpGenLocked()
	for i := range c.session.Leagues {
		if c.session.Leagues[i].ID == leagueID {
			l := c.session.Leagues[i]
			c.session.League = &l
			break
		}
	}
	if c.session.Status == model.SessionReady || c.session.Status == model.SessionDegraded {
		c.session.Status = model.SessionLoading
	}
	c.mu.Unlock()
	c.persistSelection()

	type result struct {
		op      model.FetchOp
		rosters []model.Roster
		users   []model.User
		err     error
	}
	results := make(chan result, 2)

	go func() {
		rosters, err := c.fetchRosters(ctx, leagueID)
		results <- result{op: model.OpRosters, rosters: rosters, err: err}
	}()
	go func() {
		users, err := c.fetchLeagueUsers(ctx, leagueID)
		results <- result{op: model.OpUsers, users: users, err: err}
	}()

	for i := 0; i < 2; i++ {
		r := <-results

		c.mu.Lock()
		if !c.current(gen) {
			c.mu.Unlock()
			log.Debug().Str("league", leagueID).Str("op", string(r.op)).Msg("discarding result for superseded selection")
			continue
		}
		if r.err != nil {
			c.recordFailureLocked(gen, r.op, r.err)
			c.mu.Unlock()
			log.Warn().Err(r.err).Str("league", leagueID).Str("op", string(r.op)).Msg("fetch failed, keeping previous state")
			continue
		}
		switch r.op {
		case model.OpRosters:
			c.session.Rosters = r.rosters
		case model.OpUsers:
			c.session.Users = r.users
		}
		c.clearFailureLocked(r.op)
		c.mu.Unlock()
	}

	c.mu.Lock()
	if c.current(gen) && c.session.Status == model.SessionLoading {
		c.session.Status = model.SessionReady
	}
	c.mu.Unlock()
	return nil
}

// SelectSeason re-resolves the league list at the new year. A league with
// the same display name as the current one continues the franchise across
// seasons; a year with no leagues is a valid empty state, not an error.
func (c *controller) SelectSeason(ctx context.Context, year string) error {
	if _, err := time.Parse(yearOnlyFormat, year); err != nil {
		return fmt.Errorf("year parameter must be in the YYYY format, got: %s", year)
	}

	c.mu.Lock()
	if c.session.User == nil {
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	gen := c.bumpGenLocked()
	userID := c.session.User.ID
	prevName := ""
	if c.session.League != nil {
		prevName = c.session.League.Name
	}
	c.session.Year = year
	c.statsCache = make(map[statsKey]map[string]model.PlayerStats) // stats are season-scoped
	c.mu.Unlock()
	c.persistSelection()

	return c.loadLeagues(ctx, gen, userID, year, prevName)
}

// SelectWeek moves the week selection only. Roster and league data are not
// week-scoped, so nothing is refetched; cached stats for the new week are
// dropped so the next read goes back to the remote.
func (c *controller) SelectWeek(week int) {
	c.mu.Lock()
	c.session.Week = week
	delete(c.statsCache, statsKey{season: c.session.Year, week: week})
	c.mu.Unlock()
	c.persistSelection()
}

// Retry replays only the fetches recorded as failed for the current
// selection.
func (c *controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.session.User == nil {
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	gen := c.gen // retrying is not a new selection
	failed := append([]model.FetchOp(nil), c.session.Failed...)
	userID := c.session.User.ID
	year := c.session.Year
	leagueID := ""
	prevName := ""
	if c.session.League != nil {
		leagueID = c.session.League.ID
		prevName = c.session.League.Name
	}
	c.mu.Unlock()

	for _, op := range failed {
		switch op {
		case model.OpLeagues:
			if err := c.loadLeagues(ctx, gen, userID, year, prevName); err != nil {
				return err
			}
		case model.OpRosters:
			rosters, err := c.fetchRosters(ctx, leagueID)
			c.applyFetch(gen, op, err, func() { c.session.Rosters = rosters })
		case model.OpUsers:
			users, err := c.fetchLeagueUsers(ctx, leagueID)
			c.applyFetch(gen, op, err, func() { c.session.Users = users })
		case model.OpCatalog:
			if _, err := c.GetPlayerCatalog(ctx); err != nil {
				log.Warn().Err(err).Msg("catalog retry failed")
			}
		case model.OpStats:
			// Stats are refetched lazily on the next read.
			c.mu.Lock()
			c.clearFailureLocked(op)
			c.mu.Unlock()
		}
	}

	c.mu.Lock()
	if c.current(gen) && c.session.Status == model.SessionLoading {
		c.session.Status = model.SessionReady
	}
	c.mu.Unlock()
	return nil
}

// applyFetch applies a single fetch result under the generation guard.
func (c *controller) applyFetch(gen uint64, op model.FetchOp, err error, apply func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(gen) {
		return
	}
	if err != nil {
		c.recordFailureLocked(gen, op, err)
		return
	}
	apply()
	c.clearFailureLocked(op)
}

// loadLeagues fetches the user's league list for the year and selects the
// continuing league (by display name) or the first one. An empty list
// clears league-scoped state and is a valid terminal state.
func (c *controller) loadLeagues(ctx context.Context, gen uint64, userID, year, prevName string) error {
	lctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	leagues, err := c.sleeper.GetLeaguesForUser(lctx, userID, year)
	if err != nil {
		c.mu.Lock()
		c.recordFailureLocked(gen, model.OpLeagues, err)
		c.mu.Unlock()
		log.Warn().Err(err).Str("year", year).Msg("error loading leagues")
		return nil
	}

	for i := range leagues {
		if err := c.store.SaveLeague(ctx, &leagues[i]); err != nil {
			log.Warn().Err(err).Str("league", leagues[i].ID).Msg("error caching league")
		}
	}

	c.mu.Lock()
	if !c.current(gen) {
		c.mu.Unlock()
		return nil
	}
	c.session.Leagues = leagues
	c.clearFailureLocked(model.OpLeagues)

	if len(leagues) == 0 {
		// "No leagues this year" is normal, e.g. before the user joined.
		c.session.League = nil
		c.session.Rosters = nil
		c.session.Users = nil
		c.session.Status = model.SessionReady
		c.mu.Unlock()
		c.persistSelection()
		log.Info().Str("year", year).Msg("no leagues for year")
		return nil
	}

	chosen := leagues[0]
	if prevName != "" {
		for _, l := range leagues {
			if l.Name == prevName {
				chosen = l
				break
			}
		}
	}
	c.mu.Unlock()

	return c.SelectLeague(ctx, chosen.ID)
}

// fetchRosters is the read-through path for a league's rosters: a
// persistent-cache hit skips the remote call entirely, a miss fetches
// remotely and writes back.
func (c *controller) fetchRosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	cached, err := c.store.GetRosters(ctx, leagueID)
	if err != nil {
		log.Warn().Err(err).Str("league", leagueID).Msg("error reading cached rosters")
	} else if len(cached) > 0 {
		return cached, nil
	}

	fctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	rosters, err := c.sleeper.GetRosters(fctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error fetching rosters for %s: %w", leagueID, err)
	}

	for i := range rosters {
		if err := c.store.SaveRoster(ctx, &rosters[i]); err != nil {
			log.Warn().Err(err).Str("league", leagueID).Int("roster", rosters[i].ID).Msg("error caching roster")
		}
	}
	return rosters, nil
}

func (c *controller) fetchLeagueUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	cached, err := c.store.GetLeagueUsers(ctx, leagueID)
	if err != nil {
		log.Warn().Err(err).Str("league", leagueID).Msg("error reading cached league users")
	} else if len(cached) > 0 {
		return cached, nil
	}

	fctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	users, err := c.sleeper.GetLeagueUsers(fctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error fetching users for %s: %w", leagueID, err)
	}

	for i := range users {
		if err := c.store.SaveLeagueUser(ctx, leagueID, &users[i]); err != nil {
			log.Warn().Err(err).Str("league", leagueID).Str("user", users[i].ID).Msg("error caching league user")
		}
	}
	return users, nil
}
