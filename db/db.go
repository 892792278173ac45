package db

import (
	"context"

	"github.com/RyShoe8/fantasyfootball/model"
)

// Store is the persistent cache for entities fetched from the remote API.
// It holds no business logic: lookups are by natural key and writes are
// idempotent upserts, so re-saving the same entity never creates a
// duplicate. The last_updated column is observability only; staleness
// decisions are presence-based and belong to the controller.
type Store interface {
	GetLeague(ctx context.Context, id, season string) (*model.League, error)
	SaveLeague(ctx context.Context, l *model.League) error

	// Rosters are keyed by league id plus roster id; roster ids are only
	// unique within a league.
	GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error)
	SaveRoster(ctx context.Context, r *model.Roster) error

	GetUser(ctx context.Context, id string) (*model.User, error)
	SaveUser(ctx context.Context, u *model.User) error
	GetLeagueUsers(ctx context.Context, leagueID string) ([]model.User, error)
	SaveLeagueUser(ctx context.Context, leagueID string, u *model.User) error

	GetDraftPicks(ctx context.Context, leagueID string) ([]model.DraftPick, error)
	SaveDraftPick(ctx context.Context, p *model.DraftPick) error

	Close()
}
