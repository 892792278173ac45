package db_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/RyShoe8/fantasyfootball/db"
	"github.com/RyShoe8/fantasyfootball/model"
	"github.com/RyShoe8/fantasyfootball/testutils"
)

// A global testStore instance to use for all of the tests instead of setting
// up a new one each time.
var testStore *testutils.TestStore

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testStore != nil {
				testStore.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	testStore = testutils.NewTestStore()
	defer testStore.Shutdown()
	code := m.Run()
	os.Exit(code)
}

func TestSaveAndGetLeague(t *testing.T) {
	ctx := context.Background()

	l := *testutils.FootclanLeague
	if err := testStore.Store.SaveLeague(ctx, &l); err != nil {
		t.Fatalf("error saving league: %v", err)
	}

	got, err := testStore.Store.GetLeague(ctx, l.ID, l.Season)
	if err != nil {
		t.Fatalf("error getting league: %v", err)
	}
	if !reflect.DeepEqual(&l, got) {
		t.Errorf("league round trip mismatch, got: %+v", got)
	}

	// The same league in a different season is a different document.
	if _, err := testStore.Store.GetLeague(ctx, l.ID, "2024"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for other season, got %v", err)
	}
}

// Saving the same document twice must leave exactly one stored record for
// its natural key.
func TestSaveLeagueIdempotent(t *testing.T) {
	ctx := context.Background()

	l := &model.League{ID: "L-idem", Name: "Idempotent", Season: "2025", Status: model.StatusInSeason}
	for i := 0; i < 2; i++ {
		if err := testStore.Store.SaveLeague(ctx, l); err != nil {
			t.Fatalf("error saving league (attempt %d): %v", i, err)
		}
	}

	got, err := testStore.Store.GetLeague(ctx, l.ID, l.Season)
	if err != nil {
		t.Fatalf("error getting league: %v", err)
	}
	if got.Name != "Idempotent" {
		t.Errorf("league name mismatch: %s", got.Name)
	}

	// An updated save supersedes, it doesn't duplicate.
	l.Name = "Renamed"
	if err := testStore.Store.SaveLeague(ctx, l); err != nil {
		t.Fatalf("error re-saving league: %v", err)
	}
	got, err = testStore.Store.GetLeague(ctx, l.ID, l.Season)
	if err != nil {
		t.Fatalf("error getting league after rename: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("expected renamed league, got: %s", got.Name)
	}
}

func TestSaveAndGetRosters(t *testing.T) {
	ctx := context.Background()

	r1 := &model.Roster{
		ID:       1,
		LeagueID: "L-rosters",
		OwnerID:  "12345678",
		Players:  []string{"2374", "6904"},
		Starters: []string{"6904"},
		Taxi:     []string{},
		Reserve:  []string{"2374"},
		Settings: model.RosterSettings{Wins: 9, Losses: 4, FPTS: 1540, FPTSDecimal: 25},
	}
	r2 := &model.Roster{
		ID:       2,
		LeagueID: "L-rosters",
		OwnerID:  "87654321",
		Players:  []string{"8155"},
		Starters: []string{"8155"},
		Taxi:     []string{},
		Reserve:  []string{},
		Settings: model.RosterSettings{Wins: 11, Losses: 2},
	}

	for _, r := range []*model.Roster{r1, r2, r1} { // save r1 twice to confirm the upsert
		if err := testStore.Store.SaveRoster(ctx, r); err != nil {
			t.Fatalf("error saving roster %d: %v", r.ID, err)
		}
	}

	rosters, err := testStore.Store.GetRosters(ctx, "L-rosters")
	if err != nil {
		t.Fatalf("error getting rosters: %v", err)
	}
	if len(rosters) != 2 {
		t.Fatalf("expected 2 rosters, got %d", len(rosters))
	}
	if !reflect.DeepEqual(*r1, rosters[0]) {
		t.Errorf("roster 1 mismatch, got: %+v", rosters[0])
	}
	if !reflect.DeepEqual(*r2, rosters[1]) {
		t.Errorf("roster 2 mismatch, got: %+v", rosters[1])
	}

	// Rosters from another league don't leak in.
	rosters, err = testStore.Store.GetRosters(ctx, "L-unknown")
	if err != nil {
		t.Fatalf("error getting rosters for unknown league: %v", err)
	}
	if len(rosters) != 0 {
		t.Errorf("expected no rosters, got %d", len(rosters))
	}
}

func TestSaveAndGetUsers(t *testing.T) {
	ctx := context.Background()

	u := *testutils.SleeperUser
	if err := testStore.Store.SaveUser(ctx, &u); err != nil {
		t.Fatalf("error saving user: %v", err)
	}

	got, err := testStore.Store.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("error getting user: %v", err)
	}
	if !reflect.DeepEqual(&u, got) {
		t.Errorf("user round trip mismatch, got: %+v", got)
	}

	if _, err := testStore.Store.GetUser(ctx, "no-such-user"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueUsers(t *testing.T) {
	ctx := context.Background()

	leagueID := "L-members"
	members := []*model.User{testutils.SleeperUser, testutils.RivalUser}
	for _, u := range members {
		// Saved twice: membership rows must not duplicate.
		for i := 0; i < 2; i++ {
			if err := testStore.Store.SaveLeagueUser(ctx, leagueID, u); err != nil {
				t.Fatalf("error saving league user: %v", err)
			}
		}
	}

	got, err := testStore.Store.GetLeagueUsers(ctx, leagueID)
	if err != nil {
		t.Fatalf("error getting league users: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 league users, got %d", len(got))
	}
	// Ordered by username: rivalmanager, sleeperuser.
	if got[0].ID != testutils.RivalUser.ID || got[1].ID != testutils.SleeperUser.ID {
		t.Errorf("league users not as expected: %+v", got)
	}
}

func TestDraftPicks(t *testing.T) {
	ctx := context.Background()

	picks := []model.DraftPick{
		{DraftID: "D1", LeagueID: "L-draft", Season: "2025", Round: 1, Pick: 1, RosterID: 2, PlayerID: "9509"},
		{DraftID: "D1", LeagueID: "L-draft", Season: "2025", Round: 1, Pick: 2, RosterID: 1, PlayerID: ""},
	}
	for i := range picks {
		if err := testStore.Store.SaveDraftPick(ctx, &picks[i]); err != nil {
			t.Fatalf("error saving draft pick: %v", err)
		}
	}

	// Re-save the second pick after the pick was made.
	picks[1].PlayerID = "8155"
	if err := testStore.Store.SaveDraftPick(ctx, &picks[1]); err != nil {
		t.Fatalf("error re-saving draft pick: %v", err)
	}

	got, err := testStore.Store.GetDraftPicks(ctx, "L-draft")
	if err != nil {
		t.Fatalf("error getting draft picks: %v", err)
	}
	if !reflect.DeepEqual(picks, got) {
		t.Errorf("draft picks mismatch, got: %+v", got)
	}
}
