package sleeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/RyShoe8/fantasyfootball/model"
	"github.com/RyShoe8/fantasyfootball/testutils"
)

func TestGetUser(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())
	ctx := context.Background()

	tests := []struct {
		handle   string
		expected *model.User
		err      error
	}{
		{handle: "sleeperuser", expected: &model.User{
			ID:          "12345678",
			Username:    "sleeperuser",
			DisplayName: "SleeperUser",
			Avatar:      "cc12ec49965eb7856f84d71cf85306af",
		}},
		{handle: "badusername", err: ErrUserNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.handle, func(t *testing.T) {
			u, err := c.GetUser(ctx, tc.handle)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Errorf("expected err to be: '%v', got '%v' instead", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("error was not nil, was %v", err)
			}
			if !reflect.DeepEqual(u, tc.expected) {
				t.Errorf("user was not as expected, got: %+v", u)
			}
		})
	}
}

func TestGetLeaguesForUser(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())
	ctx := context.Background()

	leagues, err := c.GetLeaguesForUser(ctx, "12345678", "2025")
	if err != nil {
		t.Fatalf("error getting leagues: %v", err)
	}
	if len(leagues) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(leagues))
	}
	if leagues[0].ID != "924039165950484480" || leagues[0].Name != "Footclan & Friends Dynasty" {
		t.Errorf("first league not as expected: %+v", leagues[0])
	}
	if leagues[0].Status != model.StatusInSeason {
		t.Errorf("expected in_season status, got %s", leagues[0].Status)
	}
	if leagues[0].Settings.NumTeams != 12 || leagues[0].Settings.TaxiSlots != 2 {
		t.Errorf("league settings not as expected: %+v", leagues[0].Settings)
	}
	if len(leagues[0].RosterPositions) != 15 {
		t.Errorf("expected 15 roster positions, got %d", len(leagues[0].RosterPositions))
	}

	// Unknown users have no leagues.
	leagues, err = c.GetLeaguesForUser(ctx, "98765432", "2025")
	if err != nil {
		t.Fatalf("error getting leagues for unknown user: %v", err)
	}
	if len(leagues) != 0 {
		t.Errorf("expected no leagues, got %d", len(leagues))
	}
}

func TestGetRosters(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	rosters, err := c.GetRosters(context.Background(), "924039165950484480")
	if err != nil {
		t.Fatalf("error getting rosters: %v", err)
	}
	if len(rosters) != 2 {
		t.Fatalf("expected 2 rosters, got %d", len(rosters))
	}

	r := rosters[0]
	if r.ID != 1 || r.OwnerID != "12345678" || r.LeagueID != "924039165950484480" {
		t.Errorf("roster identity not as expected: %+v", r)
	}
	if !reflect.DeepEqual(r.Starters, []string{"6904", "9509", "2374"}) {
		t.Errorf("starters not as expected: %v", r.Starters)
	}
	if !reflect.DeepEqual(r.Reserve, []string{"1379"}) {
		t.Errorf("reserve not as expected: %v", r.Reserve)
	}
	if r.Settings.Wins != 9 || r.PointsFor() != 1540.25 {
		t.Errorf("settings not as expected: %+v", r.Settings)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("fixture roster should be valid: %v", err)
	}
}

func TestGetLeagueUsers(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	users, err := c.GetLeagueUsers(context.Background(), "924039165950484480")
	if err != nil {
		t.Fatalf("error getting league users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[1].ID != "87654321" || users[1].DisplayName != "The Rival" {
		t.Errorf("second user not as expected: %+v", users[1])
	}
}

func TestLoadPlayers(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	players, err := c.LoadPlayers(context.Background())
	if err != nil {
		t.Fatalf("error loading players: %v", err)
	}

	// The fixture has 9 entries; the invalid placeholder and the unknown
	// position entry are filtered out.
	if len(players) != 7 {
		t.Fatalf("expected 7 players, got %d", len(players))
	}
	if _, found := players["0000"]; found {
		t.Errorf("invalid placeholder player should have been filtered")
	}
	if _, found := players["9999"]; found {
		t.Errorf("unknown position player should have been filtered")
	}

	hurts := players["6904"]
	if hurts.FullName() != "Jalen Hurts" || hurts.Position != model.POS_QB || hurts.Team != model.NFLTeam("PHI") {
		t.Errorf("player 6904 not as expected: %+v", hurts)
	}
	jusz := players["1379"]
	if jusz.Position != model.POS_RB || jusz.Team != model.NFLTeam("SF") {
		t.Errorf("player 1379 not as expected: %+v", jusz)
	}
}

func TestLoadPlayersEmptyCatalog(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	}))
	defer fake.Close()

	c := NewForTest(fake.URL)

	players, err := c.LoadPlayers(context.Background())
	if !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("expected ErrInvalidPayload, got %v", err)
	}
	if players != nil {
		t.Errorf("players should have been nil")
	}
}

func TestGetStats(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	stats, err := c.GetStats(context.Background(), "2025", 1)
	if err != nil {
		t.Fatalf("error getting stats: %v", err)
	}
	if len(stats) != 5 {
		t.Fatalf("expected 5 stat lines, got %d", len(stats))
	}

	s := stats["6904"]
	if s.PlayerID != "6904" || s.Points != 24.3 || s.PointsPPR != 24.3 || s.Projected != 21.0 {
		t.Errorf("stat line for 6904 not as expected: %+v", s)
	}
}

func TestGetDraftPicks(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	picks, err := c.GetDraftPicks(context.Background(), "924039165950484480")
	if err != nil {
		t.Fatalf("error getting draft picks: %v", err)
	}
	if len(picks) != 4 {
		t.Fatalf("expected 4 picks, got %d", len(picks))
	}
	if picks[0].Round != 1 || picks[0].Pick != 1 || picks[0].PlayerID != "9509" {
		t.Errorf("first pick not as expected: %+v", picks[0])
	}
	if picks[2].PlayerID != "" {
		t.Errorf("unmade pick should have no player, got %s", picks[2].PlayerID)
	}
	if picks[0].LeagueID != "924039165950484480" {
		t.Errorf("pick league id not filled in: %+v", picks[0])
	}
}

func TestStatusError(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer fake.Close()

	c := NewForTest(fake.URL)

	_, err := c.GetRosters(context.Background(), "1")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected a StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusBadGateway || !se.ServerError() {
		t.Errorf("status error not as expected: %+v", se)
	}
}

func TestContextCancellation(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()
	fakeSleeper.Hang(testutils.EndpointRosters)

	c := NewForTest(fakeSleeper.URL())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetRosters(ctx, "924039165950484480")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}
