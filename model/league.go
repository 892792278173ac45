package model

import (
	"strings"
)

type LeagueStatus string

const (
	StatusPreDraft  LeagueStatus = "pre_draft"
	StatusDrafting  LeagueStatus = "drafting"
	StatusInSeason  LeagueStatus = "in_season"
	StatusComplete  LeagueStatus = "complete"
	StatusOffSeason LeagueStatus = "off_season"
)

func ParseLeagueStatus(s string) LeagueStatus {
	switch strings.ToLower(s) {
	case "pre_draft":
		return StatusPreDraft
	case "drafting":
		return StatusDrafting
	case "in_season":
		return StatusInSeason
	case "complete":
		return StatusComplete
	default:
		return StatusOffSeason
	}
}

// LeagueSettings are the numeric knobs a commissioner can configure.
type LeagueSettings struct {
	NumTeams      int
	PlayoffTeams  int
	TradeDeadline int // week number, 99 means no deadline
	TaxiSlots     int
	ReserveSlots  int
}

type League struct {
	ID     string
	Name   string
	Season string // year as its natural string key, e.g. "2025"
	Status LeagueStatus
	Avatar string
	// RosterPositions is the ordered slot template for lineups,
	// e.g. QB, RB, RB, WR, WR, TE, FLEX, BN, BN, IR, TAXI.
	RosterPositions []string
	Settings        LeagueSettings
}
