package model

type DraftPick struct {
	DraftID  string
	LeagueID string
	Season   string
	Round    int
	Pick     int
	RosterID int
	PlayerID string // empty until the pick has been made
}
