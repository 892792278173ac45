package model

import (
	"strings"
)

type NFLTeam string

// TEAM_FA is used for free agents and retired players.
const TEAM_FA NFLTeam = "FA"

var nflTeams = map[NFLTeam]string{
	// NFC
	"ARI": "Arizona Cardinals",
	"ATL": "Atlanta Falcons",
	"CAR": "Carolina Panthers",
	"CHI": "Chicago Bears",
	"DAL": "Dallas Cowboys",
	"DET": "Detroit Lions",
	"GB":  "Green Bay Packers",
	"LAR": "Los Angeles Rams",
	"MIN": "Minnesota Vikings",
	"NO":  "New Orleans Saints",
	"NYG": "New York Giants",
	"PHI": "Philadelphia Eagles",
	"SEA": "Seattle Seahawks",
	"SF":  "San Francisco 49ers",
	"TB":  "Tampa Bay Buccaneers",
	"WAS": "Washington Commanders",

	// AFC
	"BAL": "Baltimore Ravens",
	"BUF": "Buffalo Bills",
	"CIN": "Cincinnati Bengals",
	"CLE": "Cleveland Browns",
	"DEN": "Denver Broncos",
	"HOU": "Houston Texans",
	"IND": "Indianapolis Colts",
	"JAX": "Jacksonville Jaguars",
	"KC":  "Kansas City Chiefs",
	"LAC": "Los Angeles Chargers",
	"LV":  "Las Vegas Raiders",
	"MIA": "Miami Dolphins",
	"NE":  "New England Patriots",
	"NYJ": "New York Jets",
	"PIT": "Pittsburgh Steelers",
	"TEN": "Tennessee Titans",
}

// A few abbreviations show up in other forms in various data sources.
var teamAliases = map[string]NFLTeam{
	"GBP": "GB",
	"JAC": "JAX",
	"KCC": "KC",
	"LVR": "LV",
	"NEP": "NE",
	"NOS": "NO",
	"SFO": "SF",
	"TBB": "TB",
	"WSH": "WAS",
	"OAK": "LV",
	"SD":  "LAC",
	"STL": "LAR",
}

// ParseTeam returns the canonical team for an abbreviation, or TEAM_FA if
// the abbreviation isn't recognized.
func ParseTeam(t string) NFLTeam {
	t = strings.ToUpper(strings.TrimSpace(t))
	if t == "" {
		return TEAM_FA
	}
	if alias, ok := teamAliases[t]; ok {
		return alias
	}
	if _, ok := nflTeams[NFLTeam(t)]; ok {
		return NFLTeam(t)
	}
	return TEAM_FA
}

func (t NFLTeam) String() string {
	return string(t)
}

func (t NFLTeam) Friendly() string {
	if name, ok := nflTeams[t]; ok {
		return name
	}
	return "Free Agent"
}
