package model

import (
	"fmt"
)

type Player struct {
	ID           string
	FirstName    string
	LastName     string
	Position     Position
	Team         NFLTeam
	Status       string // e.g. "Active", "Injured Reserve", "Questionable"
	Active       bool
	YearsExp     int
	Jersey       int
	DepthChart   int
	College      string
}

func (p *Player) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

// PlayerStats holds the scoring for one player in a single week. Points are
// reported under the three common scoring variants plus the projection.
type PlayerStats struct {
	PlayerID      string
	Points        float64 // standard scoring
	PointsPPR     float64
	PointsHalfPPR float64
	Projected     float64
}
