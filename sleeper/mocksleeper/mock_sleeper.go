package mocksleeper

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RyShoe8/fantasyfootball/model"
)

type Client struct {
	mock.Mock
}

func (c *Client) GetUser(ctx context.Context, handle string) (*model.User, error) {
	args := c.Called(ctx, handle)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (c *Client) GetLeaguesForUser(ctx context.Context, userID, year string) ([]model.League, error) {
	args := c.Called(ctx, userID, year)

	var l []model.League
	if args.Get(0) != nil {
		l = args.Get(0).([]model.League)
	}
	return l, args.Error(1)
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	args := c.Called(ctx, leagueID)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *Client) GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	args := c.Called(ctx, leagueID)

	var r []model.Roster
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Roster)
	}
	return r, args.Error(1)
}

func (c *Client) GetLeagueUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	args := c.Called(ctx, leagueID)

	var u []model.User
	if args.Get(0) != nil {
		u = args.Get(0).([]model.User)
	}
	return u, args.Error(1)
}

func (c *Client) LoadPlayers(ctx context.Context) (map[string]model.Player, error) {
	args := c.Called(ctx)

	var p map[string]model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(map[string]model.Player)
	}
	return p, args.Error(1)
}

func (c *Client) GetStats(ctx context.Context, season string, week int) (map[string]model.PlayerStats, error) {
	args := c.Called(ctx, season, week)

	var s map[string]model.PlayerStats
	if args.Get(0) != nil {
		s = args.Get(0).(map[string]model.PlayerStats)
	}
	return s, args.Error(1)
}

func (c *Client) GetDraftPicks(ctx context.Context, leagueID string) ([]model.DraftPick, error) {
	args := c.Called(ctx, leagueID)

	var p []model.DraftPick
	if args.Get(0) != nil {
		p = args.Get(0).([]model.DraftPick)
	}
	return p, args.Error(1)
}
