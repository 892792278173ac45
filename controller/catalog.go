package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RyShoe8/fantasyfootball/model"
	"github.com/RyShoe8/fantasyfootball/sleeper"
)

// GetPlayerCatalog serves the player catalog from the local cache while it
// is inside the freshness window, refetching otherwise. A failed refetch
// falls back to the stale copy; the error surfaces only when there is no
// cached copy at all.
func (c *controller) GetPlayerCatalog(ctx context.Context) (map[string]model.Player, error) {
	if c.local.CatalogFresh(catalogWindow) {
		players, _, err := c.local.Catalog()
		if err == nil {
			return players, nil
		}
		log.Warn().Err(err).Msg("error reading fresh catalog, refetching")
	}

	fctx, cancel := context.WithTimeout(ctx, c.catalogTimeout)
	defer cancel()

	players, err := c.sleeper.LoadPlayers(fctx)
	if err != nil {
		stale, fetchedAt, cacheErr := c.local.Catalog()
		if cacheErr == nil {
			log.Warn().Err(err).Time("fetched_at", fetchedAt).Msg("catalog refresh failed, serving stale copy")
			c.mu.Lock()
			c.recordFailureLocked(c.gen, model.OpCatalog, err)
			c.mu.Unlock()
			return stale, nil
		}
		c.mu.Lock()
		c.recordFailureLocked(c.gen, model.OpCatalog, err)
		c.mu.Unlock()
		return nil, fmt.Errorf("error loading player catalog: %w", err)
	}

	if err := c.local.SaveCatalog(players); err != nil {
		log.Warn().Err(err).Msg("error caching player catalog")
	}
	c.mu.Lock()
	c.clearFailureLocked(model.OpCatalog)
	c.mu.Unlock()

	log.Info().Int("players", len(players)).Msg("refreshed player catalog")
	return players, nil
}

// GetPlayerStats returns per-player stat lines for a season and week. Weeks
// that have not been played yet resolve to an empty map without touching the
// network; the remote has nothing for them and never will until the games
// happen. Failures are non-fatal: the caller gets an empty map and the
// session goes Degraded.
func (c *controller) GetPlayerStats(ctx context.Context, season string, week int) (map[string]model.PlayerStats, error) {
	if week < 1 || c.futureWeek(season, week) {
		return map[string]model.PlayerStats{}, nil
	}

	key := statsKey{season: season, week: week}
	c.mu.Lock()
	if cached, ok := c.statsCache[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	gen := c.gen
	c.mu.Unlock()

	fctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	stats, err := c.sleeper.GetStats(fctx, season, week)
	if err != nil {
		var se *sleeper.StatusError
		if errors.As(err, &se) && !se.ServerError() {
			// The remote has no stats for this week. Not an outage.
			return map[string]model.PlayerStats{}, nil
		}
		c.mu.Lock()
		c.recordFailureLocked(gen, model.OpStats, err)
		c.mu.Unlock()
		log.Warn().Err(err).Str("season", season).Int("week", week).Msg("error fetching stats")
		return map[string]model.PlayerStats{}, nil
	}

	c.mu.Lock()
	c.statsCache[key] = stats
	c.clearFailureLocked(model.OpStats)
	c.mu.Unlock()
	return stats, nil
}

// futureWeek reports whether (season, week) is beyond the wall clock: a
// future season, or a later week of the current one.
func (c *controller) futureWeek(season string, week int) bool {
	seasonYear, err := strconv.Atoi(season)
	if err != nil {
		return false
	}
	nowYear, _ := strconv.Atoi(c.currentYear())
	if seasonYear > nowYear {
		return true
	}
	return seasonYear == nowYear && week > c.currentWeek()
}

// GetDraftPicks is a read-through for a league's draft results.
func (c *controller) GetDraftPicks(ctx context.Context, leagueID string) ([]model.DraftPick, error) {
	cached, err := c.store.GetDraftPicks(ctx, leagueID)
	if err != nil {
		log.Warn().Err(err).Str("league", leagueID).Msg("error reading cached draft picks")
	} else if len(cached) > 0 {
		return cached, nil
	}

	fctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	picks, err := c.sleeper.GetDraftPicks(fctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error fetching draft picks for %s: %w", leagueID, err)
	}

	for i := range picks {
		if err := c.store.SaveDraftPick(ctx, &picks[i]); err != nil {
			log.Warn().Err(err).Str("league", leagueID).Msg("error caching draft pick")
		}
	}
	return picks, nil
}

// EvaluateTrade scores both sides of a proposed trade against the player
// catalog and the current selection's stats.
func (c *controller) EvaluateTrade(ctx context.Context, sideA, sideB []string) (model.TradeEvaluation, error) {
	catalog, err := c.GetPlayerCatalog(ctx)
	if err != nil {
		return model.TradeEvaluation{}, err
	}

	c.mu.Lock()
	season := c.session.Year
	week := c.session.Week
	c.mu.Unlock()

	stats, err := c.GetPlayerStats(ctx, season, week)
	if err != nil {
		return model.TradeEvaluation{}, err
	}

	return model.EvaluateTrade(c.scorer, catalog, stats, sideA, sideB), nil
}

// RunPeriodicCatalogUpdates refreshes the player catalog on a timer until
// told to shut down.
func (c *controller) RunPeriodicCatalogUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(frequency)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			log.Info().Msg("stopping periodic catalog updates")
			return
		case <-ticker.C:
			if _, err := c.GetPlayerCatalog(context.Background()); err != nil {
				log.Warn().Err(err).Msg("periodic catalog update failed")
			}
		}
	}
}
