package model

import (
	"fmt"
	"slices"
)

type Roster struct {
	ID       int
	LeagueID string
	OwnerID  string
	// Players is every player id on the roster. Starters, Taxi and Reserve
	// are disjoint subsets of it; whatever is left over is the bench.
	Players  []string
	Starters []string
	Taxi     []string
	Reserve  []string // IR
	Settings RosterSettings
}

// RosterSettings are the season aggregates reported with each roster.
// Points are split into an integer part and a decimal part (hundredths).
type RosterSettings struct {
	Wins               int
	Losses             int
	Ties               int
	FPTS               int
	FPTSDecimal        int
	FPTSAgainst        int
	FPTSAgainstDecimal int
}

func (r *Roster) PointsFor() float64 {
	return float64(r.Settings.FPTS) + float64(r.Settings.FPTSDecimal)/100
}

func (r *Roster) PointsAgainst() float64 {
	return float64(r.Settings.FPTSAgainst) + float64(r.Settings.FPTSAgainstDecimal)/100
}

func (r *Roster) Record() string {
	if r.Settings.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Settings.Wins, r.Settings.Losses, r.Settings.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Settings.Wins, r.Settings.Losses)
}

// Bench returns the player ids that are rostered but not starting and not
// stashed on the taxi squad or IR.
func (r *Roster) Bench() []string {
	bench := make([]string, 0, len(r.Players))
	for _, id := range r.Players {
		if slices.Contains(r.Starters, id) ||
			slices.Contains(r.Taxi, id) ||
			slices.Contains(r.Reserve, id) {
			continue
		}
		bench = append(bench, id)
	}
	return bench
}

// Validate checks the roster invariants: starters must be rostered players,
// and a player can only fill one of starters/taxi/IR at a time.
func (r *Roster) Validate() error {
	for _, id := range r.Starters {
		if id == "0" || id == "" { // empty lineup slot
			continue
		}
		if !slices.Contains(r.Players, id) {
			return fmt.Errorf("starter %s is not on the roster", id)
		}
	}

	seen := make(map[string]string)
	check := func(list []string, name string) error {
		for _, id := range list {
			if id == "0" || id == "" {
				continue
			}
			if prev, ok := seen[id]; ok {
				return fmt.Errorf("player %s is in both %s and %s", id, prev, name)
			}
			seen[id] = name
		}
		return nil
	}

	if err := check(r.Starters, "starters"); err != nil {
		return err
	}
	if err := check(r.Taxi, "taxi"); err != nil {
		return err
	}
	return check(r.Reserve, "reserve")
}
