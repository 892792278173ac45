package sleeper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/RyShoe8/fantasyfootball/model"
)

const SleeperURL = "https://api.sleeper.app"

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPayload means the response was valid HTTP but semantically
	// unusable, e.g. an empty player catalog.
	ErrInvalidPayload = errors.New("invalid payload")
)

// StatusError is returned for any non-2xx response. The client performs no
// retries; retry policy belongs to the caller.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

func (e *StatusError) ServerError() bool {
	return e.StatusCode >= 500
}

// Client is a thin request/response mapping over the Sleeper API, one method
// per endpoint. All methods honor context cancellation, so a caller-imposed
// timeout aborts the underlying request.
type Client interface {
	GetUser(ctx context.Context, handle string) (*model.User, error)
	GetLeaguesForUser(ctx context.Context, userID, year string) ([]model.League, error)
	GetLeague(ctx context.Context, leagueID string) (*model.League, error)
	GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error)
	GetLeagueUsers(ctx context.Context, leagueID string) ([]model.User, error)
	LoadPlayers(ctx context.Context) (map[string]model.Player, error)
	GetStats(ctx context.Context, season string, week int) (map[string]model.PlayerStats, error)
	GetDraftPicks(ctx context.Context, leagueID string) ([]model.DraftPick, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New() (Client, error) {
	return NewForTest(SleeperURL), nil
}

// NewForTest returns a client pointed at a different base URL, typically a
// testutils.FakeSleeperServer.
func NewForTest(url string) Client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func (c *client) GetUser(ctx context.Context, handle string) (*model.User, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/v1/user/%s", c.url, handle))
	if err != nil {
		return nil, err
	}

	// Sleeper returns a 200 with "null" as the body for unknown users.
	if isNull(body) {
		return nil, ErrUserNotFound
	}

	var parsed sleeperUser
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing user response: %w", err)
	}
	if parsed.ID == "" {
		return nil, ErrUserNotFound
	}
	return parsed.toUser(), nil
}

func (c *client) GetLeaguesForUser(ctx context.Context, userID, year string) ([]model.League, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/v1/user/%s/leagues/nfl/%s", c.url, userID, year))
	if err != nil {
		return nil, err
	}

	var parsed []sleeperLeague
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing leagues response: %w", err)
	}

	leagues := make([]model.League, 0, len(parsed))
	for _, l := range parsed {
		leagues = append(leagues, *l.toLeague())
	}
	return leagues, nil
}

func (c *client) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/v1/league/%s", c.url, leagueID))
	if err != nil {
		return nil, err
	}
	if isNull(body) {
		return nil, fmt.Errorf("league %s: %w", leagueID, ErrInvalidPayload)
	}

	var parsed sleeperLeague
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing league response: %w", err)
	}
	return parsed.toLeague(), nil
}

func (c *client) GetRosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/v1/league/%s/rosters", c.url, leagueID))
	if err != nil {
		return nil, err
	}

	var parsed []sleeperRoster
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing rosters response: %w", err)
	}

	rosters := make([]model.Roster, 0, len(parsed))
	for _, r := range parsed {
		rosters = append(rosters, *r.toRoster(leagueID))
	}
	return rosters, nil
}

func (c *client) GetLeagueUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/v1/league/%s/users", c.url, leagueID))
	if err != nil {
		return nil, err
	}

	var parsed []sleeperUser
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing league users response: %w", err)
	}

	users := make([]model.User, 0, len(parsed))
	for _, u := range parsed {
		users = append(users, *u.toUser())
	}
	return users, nil
}

func (c *client) LoadPlayers(ctx context.Context) (map[string]model.Player, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/v1/players/nfl", c.url))
	if err != nil {
		return nil, err
	}

	var parsed map[string]sleeperPlayer
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing players response: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("player catalog is empty: %w", ErrInvalidPayload)
	}

	result := make(map[string]model.Player, len(parsed))
	for id, p := range parsed {
		pos := model.ParsePosition(p.Position)
		if pos == model.POS_UNKNOWN || (p.FirstName == "Player" && p.LastName == "Invalid") {
			continue
		}
		result[id] = *p.toPlayer()
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("player catalog had no usable entries: %w", ErrInvalidPayload)
	}
	return result, nil
}

func (c *client) GetStats(ctx context.Context, season string, week int) (map[string]model.PlayerStats, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/v1/stats/nfl/regular/%s/%d", c.url, season, week))
	if err != nil {
		return nil, err
	}
	if isNull(body) || len(bytes.TrimSpace(body)) == 0 {
		return map[string]model.PlayerStats{}, nil
	}

	var parsed map[string]sleeperStatLine
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing stats response: %w", err)
	}

	result := make(map[string]model.PlayerStats, len(parsed))
	for id, s := range parsed {
		result[id] = *s.toStats(id)
	}
	return result, nil
}

func (c *client) GetDraftPicks(ctx context.Context, leagueID string) ([]model.DraftPick, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/v1/league/%s/draft_picks", c.url, leagueID))
	if err != nil {
		return nil, err
	}

	var parsed []sleeperDraftPick
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing draft picks response: %w", err)
	}

	picks := make([]model.DraftPick, 0, len(parsed))
	for _, p := range parsed {
		picks = append(picks, *p.toDraftPick(leagueID))
	}
	return picks, nil
}

func (c *client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	return body, nil
}

func isNull(body []byte) bool {
	return bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}
