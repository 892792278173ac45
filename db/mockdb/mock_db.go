package mockdb

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RyShoe8/fantasyfootball/model"
)

type Store struct {
	mock.Mock
}

func (s *Store) GetLeague(ctx context.Context, id, season string) (*model.League, error) {
	args := s.Called(ctx, id, season)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (s *Store) SaveLeague(ctx context.Context, l *model.League) error {
	args := s.Called(ctx, l)
	return args.Error(0)
}

func (s *Store) GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	args := s.Called(ctx, leagueID)

	var r []model.Roster
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Roster)
	}
	return r, args.Error(1)
}

func (s *Store) SaveRoster(ctx context.Context, r *model.Roster) error {
	args := s.Called(ctx, r)
	return args.Error(0)
}

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := s.Called(ctx, id)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (s *Store) SaveUser(ctx context.Context, u *model.User) error {
	args := s.Called(ctx, u)
	return args.Error(0)
}

func (s *Store) GetLeagueUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	args := s.Called(ctx, leagueID)

	var u []model.User
	if args.Get(0) != nil {
		u = args.Get(0).([]model.User)
	}
	return u, args.Error(1)
}

func (s *Store) SaveLeagueUser(ctx context.Context, leagueID string, u *model.User) error {
	args := s.Called(ctx, leagueID, u)
	return args.Error(0)
}

func (s *Store) GetDraftPicks(ctx context.Context, leagueID string) ([]model.DraftPick, error) {
	args := s.Called(ctx, leagueID)

	var p []model.DraftPick
	if args.Get(0) != nil {
		p = args.Get(0).([]model.DraftPick)
	}
	return p, args.Error(1)
}

func (s *Store) SaveDraftPick(ctx context.Context, p *model.DraftPick) error {
	args := s.Called(ctx, p)
	return args.Error(0)
}

func (s *Store) Close() {
	s.Called()
}
