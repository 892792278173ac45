package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RyShoe8/fantasyfootball/model"
)

var ErrNotFound = errors.New("not found")

func New(ctx context.Context, connString string, clock clock.Clock) (Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresStore{pool: pool, clock: clock}, nil
}

type postgresStore struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (s *postgresStore) Close() {
	s.pool.Close()
}

func (s *postgresStore) GetLeague(ctx context.Context, id, season string) (*model.League, error) {
	const query = `SELECT id, season, name, status, avatar, roster_positions,
						num_teams, playoff_teams, trade_deadline, taxi_slots, reserve_slots
					FROM leagues WHERE id=@id AND season=@season`

	args := pgx.NamedArgs{
		"id":     id,
		"season": season,
	}
	row := s.pool.QueryRow(ctx, query, args)
	l, err := scanLeague(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning league %s/%s: %w", id, season, err)
	}
	return l, nil
}

func (s *postgresStore) SaveLeague(ctx context.Context, l *model.League) error {
	if l == nil {
		return errors.New("SaveLeague - league is nil")
	}
	const query = `INSERT INTO leagues (
			id, season, name, status, avatar, roster_positions,
			num_teams, playoff_teams, trade_deadline, taxi_slots, reserve_slots,
			last_updated
		) VALUES (
			@id, @season, @name, @status, @avatar, @rosterPositions,
			@numTeams, @playoffTeams, @tradeDeadline, @taxiSlots, @reserveSlots,
			@lastUpdated
		)
		ON CONFLICT (id, season) DO UPDATE SET
			name=EXCLUDED.name,
			status=EXCLUDED.status,
			avatar=EXCLUDED.avatar,
			roster_positions=EXCLUDED.roster_positions,
			num_teams=EXCLUDED.num_teams,
			playoff_teams=EXCLUDED.playoff_teams,
			trade_deadline=EXCLUDED.trade_deadline,
			taxi_slots=EXCLUDED.taxi_slots,
			reserve_slots=EXCLUDED.reserve_slots,
			last_updated=EXCLUDED.last_updated`

	args := pgx.NamedArgs{
		"id":              l.ID,
		"season":          l.Season,
		"name":            l.Name,
		"status":          string(l.Status),
		"avatar":          l.Avatar,
		"rosterPositions": emptyIfNil(l.RosterPositions),
		"numTeams":        l.Settings.NumTeams,
		"playoffTeams":    l.Settings.PlayoffTeams,
		"tradeDeadline":   l.Settings.TradeDeadline,
		"taxiSlots":       l.Settings.TaxiSlots,
		"reserveSlots":    l.Settings.ReserveSlots,
		"lastUpdated":     s.now(),
	}
	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving league (%s/%s): %w", l.ID, l.Season, err)
	}
	return nil
}

func (s *postgresStore) GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	const query = `SELECT league_id, id, owner_id, players, starters, taxi, reserve,
						wins, losses, ties, fpts, fpts_decimal, fpts_against, fpts_against_decimal
					FROM rosters WHERE league_id=@leagueID ORDER BY id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying rosters for %s: %w", leagueID, err)
	}
	defer rows.Close()

	rosters := make([]model.Roster, 0, 12)
	for rows.Next() {
		var r model.Roster
		err := rows.Scan(&r.LeagueID, &r.ID, &r.OwnerID,
			&r.Players, &r.Starters, &r.Taxi, &r.Reserve,
			&r.Settings.Wins, &r.Settings.Losses, &r.Settings.Ties,
			&r.Settings.FPTS, &r.Settings.FPTSDecimal,
			&r.Settings.FPTSAgainst, &r.Settings.FPTSAgainstDecimal)
		if err != nil {
			return nil, fmt.Errorf("error scanning roster: %w", err)
		}
		rosters = append(rosters, r)
	}
	return rosters, rows.Err()
}

func (s *postgresStore) SaveRoster(ctx context.Context, r *model.Roster) error {
	if r == nil {
		return errors.New("SaveRoster - roster is nil")
	}
	const query = `INSERT INTO rosters (
			league_id, id, owner_id, players, starters, taxi, reserve,
			wins, losses, ties, fpts, fpts_decimal, fpts_against, fpts_against_decimal,
			last_updated
		) VALUES (
			@leagueID, @id, @ownerID, @players, @starters, @taxi, @reserve,
			@wins, @losses, @ties, @fpts, @fptsDecimal, @fptsAgainst, @fptsAgainstDecimal,
			@lastUpdated
		)
		ON CONFLICT (league_id, id) DO UPDATE SET
			owner_id=EXCLUDED.owner_id,
			players=EXCLUDED.players,
			starters=EXCLUDED.starters,
			taxi=EXCLUDED.taxi,
			reserve=EXCLUDED.reserve,
			wins=EXCLUDED.wins,
			losses=EXCLUDED.losses,
			ties=EXCLUDED.ties,
			fpts=EXCLUDED.fpts,
			fpts_decimal=EXCLUDED.fpts_decimal,
			fpts_against=EXCLUDED.fpts_against,
			fpts_against_decimal=EXCLUDED.fpts_against_decimal,
			last_updated=EXCLUDED.last_updated`

	args := pgx.NamedArgs{
		"leagueID":           r.LeagueID,
		"id":                 r.ID,
		"ownerID":            r.OwnerID,
		"players":            emptyIfNil(r.Players),
		"starters":           emptyIfNil(r.Starters),
		"taxi":               emptyIfNil(r.Taxi),
		"reserve":            emptyIfNil(r.Reserve),
		"wins":               r.Settings.Wins,
		"losses":             r.Settings.Losses,
		"ties":               r.Settings.Ties,
		"fpts":               r.Settings.FPTS,
		"fptsDecimal":        r.Settings.FPTSDecimal,
		"fptsAgainst":        r.Settings.FPTSAgainst,
		"fptsAgainstDecimal": r.Settings.FPTSAgainstDecimal,
		"lastUpdated":        s.now(),
	}
	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving roster (%s/%d): %w", r.LeagueID, r.ID, err)
	}
	return nil
}

func (s *postgresStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, username, display_name, avatar FROM users WHERE id=@id`

	row := s.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Avatar); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user %s: %w", id, err)
	}
	return &u, nil
}

func (s *postgresStore) SaveUser(ctx context.Context, u *model.User) error {
	if u == nil {
		return errors.New("SaveUser - user is nil")
	}
	const query = `INSERT INTO users (id, username, display_name, avatar, last_updated)
		VALUES (@id, @username, @displayName, @avatar, @lastUpdated)
		ON CONFLICT (id) DO UPDATE SET
			username=EXCLUDED.username,
			display_name=EXCLUDED.display_name,
			avatar=EXCLUDED.avatar,
			last_updated=EXCLUDED.last_updated`

	args := pgx.NamedArgs{
		"id":          u.ID,
		"username":    u.Username,
		"displayName": u.DisplayName,
		"avatar":      u.Avatar,
		"lastUpdated": s.now(),
	}
	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving user (%s): %w", u.ID, err)
	}
	return nil
}

func (s *postgresStore) GetLeagueUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	const query = `SELECT u.id, u.username, u.display_name, u.avatar
					FROM users u
					JOIN league_users lu ON lu.user_id = u.id
					WHERE lu.league_id=@leagueID
					ORDER BY u.username`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying league users for %s: %w", leagueID, err)
	}
	defer rows.Close()

	users := make([]model.User, 0, 12)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Avatar); err != nil {
			return nil, fmt.Errorf("error scanning league user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *postgresStore) SaveLeagueUser(ctx context.Context, leagueID string, u *model.User) error {
	if err := s.SaveUser(ctx, u); err != nil {
		return err
	}

	const query = `INSERT INTO league_users (league_id, user_id)
		VALUES (@leagueID, @userID)
		ON CONFLICT (league_id, user_id) DO NOTHING`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"userID":   u.ID,
	}
	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving league user (%s/%s): %w", leagueID, u.ID, err)
	}
	return nil
}

func (s *postgresStore) GetDraftPicks(ctx context.Context, leagueID string) ([]model.DraftPick, error) {
	const query = `SELECT draft_id, pick_no, league_id, season, round, roster_id, player_id
					FROM draft_picks WHERE league_id=@leagueID ORDER BY pick_no`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying draft picks for %s: %w", leagueID, err)
	}
	defer rows.Close()

	picks := make([]model.DraftPick, 0, 48)
	for rows.Next() {
		var p model.DraftPick
		err := rows.Scan(&p.DraftID, &p.Pick, &p.LeagueID, &p.Season, &p.Round, &p.RosterID, &p.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("error scanning draft pick: %w", err)
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

func (s *postgresStore) SaveDraftPick(ctx context.Context, p *model.DraftPick) error {
	if p == nil {
		return errors.New("SaveDraftPick - pick is nil")
	}
	const query = `INSERT INTO draft_picks (
			draft_id, pick_no, league_id, season, round, roster_id, player_id, last_updated
		) VALUES (
			@draftID, @pickNo, @leagueID, @season, @round, @rosterID, @playerID, @lastUpdated
		)
		ON CONFLICT (draft_id, pick_no) DO UPDATE SET
			league_id=EXCLUDED.league_id,
			season=EXCLUDED.season,
			round=EXCLUDED.round,
			roster_id=EXCLUDED.roster_id,
			player_id=EXCLUDED.player_id,
			last_updated=EXCLUDED.last_updated`

	args := pgx.NamedArgs{
		"draftID":     p.DraftID,
		"pickNo":      p.Pick,
		"leagueID":    p.LeagueID,
		"season":      p.Season,
		"round":       p.Round,
		"rosterID":    p.RosterID,
		"playerID":    p.PlayerID,
		"lastUpdated": s.now(),
	}
	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving draft pick (%s/%d): %w", p.DraftID, p.Pick, err)
	}
	return nil
}

func (s *postgresStore) now() pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             s.clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}

func scanLeague(row pgx.Row) (*model.League, error) {
	var l model.League
	var status string
	err := row.Scan(&l.ID, &l.Season, &l.Name, &status, &l.Avatar, &l.RosterPositions,
		&l.Settings.NumTeams, &l.Settings.PlayoffTeams, &l.Settings.TradeDeadline,
		&l.Settings.TaxiSlots, &l.Settings.ReserveSlots)
	if err != nil {
		return nil, err
	}
	l.Status = model.LeagueStatus(status)
	return &l, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
