package model

import (
	"slices"
)

// Standing pairs a roster with its owner for the standings view.
type Standing struct {
	Rank      int
	Roster    Roster
	OwnerName string
}

// ComputeStandings orders rosters by wins, breaking ties on points-for,
// the conventional fantasy standings sort.
func ComputeStandings(rosters []Roster, users []User) []Standing {
	byID := make(map[string]string, len(users))
	for _, u := range users {
		byID[u.ID] = u.Name()
	}

	standings := make([]Standing, 0, len(rosters))
	for _, r := range rosters {
		name := byID[r.OwnerID]
		if name == "" {
			name = "(unowned)"
		}
		standings = append(standings, Standing{Roster: r, OwnerName: name})
	}

	slices.SortFunc(standings, func(a, b Standing) int {
		if a.Roster.Settings.Wins != b.Roster.Settings.Wins {
			return b.Roster.Settings.Wins - a.Roster.Settings.Wins
		}
		pa, pb := a.Roster.PointsFor(), b.Roster.PointsFor()
		switch {
		case pa > pb:
			return -1
		case pa < pb:
			return 1
		default:
			return 0
		}
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
