package sleeper

import (
	"github.com/RyShoe8/fantasyfootball/model"
)

// Wire types for the Sleeper JSON payloads. Each one converts itself into
// the corresponding model type; anything the dashboard doesn't use is left
// out of the struct so the decoder skips it.

type sleeperUser struct {
	ID          string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

func (u *sleeperUser) toUser() *model.User {
	return &model.User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
}

type sleeperLeague struct {
	ID              string         `json:"league_id"`
	Name            string         `json:"name"`
	Season          string         `json:"season"`
	Status          string         `json:"status"`
	Avatar          string         `json:"avatar"`
	RosterPositions []string       `json:"roster_positions"`
	Settings        leagueSettings `json:"settings"`
}

type leagueSettings struct {
	NumTeams      int `json:"num_teams"`
	PlayoffTeams  int `json:"playoff_teams"`
	TradeDeadline int `json:"trade_deadline"`
	TaxiSlots     int `json:"taxi_slots"`
	ReserveSlots  int `json:"reserve_slots"`
}

func (l *sleeperLeague) toLeague() *model.League {
	return &model.League{
		ID:              l.ID,
		Name:            l.Name,
		Season:          l.Season,
		Status:          model.ParseLeagueStatus(l.Status),
		Avatar:          l.Avatar,
		RosterPositions: l.RosterPositions,
		Settings: model.LeagueSettings{
			NumTeams:      l.Settings.NumTeams,
			PlayoffTeams:  l.Settings.PlayoffTeams,
			TradeDeadline: l.Settings.TradeDeadline,
			TaxiSlots:     l.Settings.TaxiSlots,
			ReserveSlots:  l.Settings.ReserveSlots,
		},
	}
}

type sleeperRoster struct {
	ID       int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Players  []string       `json:"players"`
	Starters []string       `json:"starters"`
	Taxi     []string       `json:"taxi"`
	Reserve  []string       `json:"reserve"`
	Settings rosterSettings `json:"settings"`
}

type rosterSettings struct {
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	Ties               int `json:"ties"`
	FPTS               int `json:"fpts"`
	FPTSDecimal        int `json:"fpts_decimal"`
	FPTSAgainst        int `json:"fpts_against"`
	FPTSAgainstDecimal int `json:"fpts_against_decimal"`
}

func (r *sleeperRoster) toRoster(leagueID string) *model.Roster {
	return &model.Roster{
		ID:       r.ID,
		LeagueID: leagueID,
		OwnerID:  r.OwnerID,
		Players:  r.Players,
		Starters: r.Starters,
		Taxi:     r.Taxi,
		Reserve:  r.Reserve,
		Settings: model.RosterSettings{
			Wins:               r.Settings.Wins,
			Losses:             r.Settings.Losses,
			Ties:               r.Settings.Ties,
			FPTS:               r.Settings.FPTS,
			FPTSDecimal:        r.Settings.FPTSDecimal,
			FPTSAgainst:        r.Settings.FPTSAgainst,
			FPTSAgainstDecimal: r.Settings.FPTSAgainstDecimal,
		},
	}
}

type sleeperPlayer struct {
	ID         string `json:"player_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Position   string `json:"position"`
	Team       string `json:"team"`
	Status     string `json:"status"`
	Active     bool   `json:"active"`
	YearsExp   int    `json:"years_exp"`
	Jersey     int    `json:"number"`
	DepthChart int    `json:"depth_chart_order"`
	College    string `json:"college"`
}

func (p *sleeperPlayer) toPlayer() *model.Player {
	return &model.Player{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Position:   model.ParsePosition(p.Position),
		Team:       model.ParseTeam(p.Team),
		Status:     p.Status,
		Active:     p.Active,
		YearsExp:   p.YearsExp,
		Jersey:     p.Jersey,
		DepthChart: p.DepthChart,
		College:    p.College,
	}
}

type sleeperStatLine struct {
	PtsStd     float64 `json:"pts_std"`
	PtsPPR     float64 `json:"pts_ppr"`
	PtsHalfPPR float64 `json:"pts_half_ppr"`
	PtsProj    float64 `json:"pts_proj"`
}

func (s *sleeperStatLine) toStats(playerID string) *model.PlayerStats {
	return &model.PlayerStats{
		PlayerID:      playerID,
		Points:        s.PtsStd,
		PointsPPR:     s.PtsPPR,
		PointsHalfPPR: s.PtsHalfPPR,
		Projected:     s.PtsProj,
	}
}

type sleeperDraftPick struct {
	DraftID  string `json:"draft_id"`
	Season   string `json:"season"`
	Round    int    `json:"round"`
	Pick     int    `json:"pick_no"`
	RosterID int    `json:"roster_id"`
	PlayerID string `json:"player_id"`
}

func (p *sleeperDraftPick) toDraftPick(leagueID string) *model.DraftPick {
	return &model.DraftPick{
		DraftID:  p.DraftID,
		LeagueID: leagueID,
		Season:   p.Season,
		Round:    p.Round,
		Pick:     p.Pick,
		RosterID: p.RosterID,
		PlayerID: p.PlayerID,
	}
}
