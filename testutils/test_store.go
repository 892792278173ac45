package testutils

import (
	"context"
	"log"

	"github.com/itbasis/go-clock"

	"github.com/RyShoe8/fantasyfootball/containers"
	"github.com/RyShoe8/fantasyfootball/db"
	"github.com/RyShoe8/fantasyfootball/model"
)

// Fixture entities matching the data served by FakeSleeperServer.
var (
	SleeperUser = &model.User{
		ID:          "12345678",
		Username:    "sleeperuser",
		DisplayName: "SleeperUser",
		Avatar:      "cc12ec49965eb7856f84d71cf85306af",
	}
	RivalUser = &model.User{
		ID:          "87654321",
		Username:    "rivalmanager",
		DisplayName: "The Rival",
	}
	FootclanLeague = &model.League{
		ID:     "924039165950484480",
		Name:   "Footclan & Friends Dynasty",
		Season: "2025",
		Status: model.StatusInSeason,
		Avatar: "ef2b37f1e6d4f8a7a1c02b3a9a8e1c7d",
		RosterPositions: []string{
			"QB", "RB", "RB", "WR", "WR", "TE", "FLEX", "FLEX",
			"BN", "BN", "BN", "BN", "IR", "TAXI", "TAXI",
		},
		Settings: model.LeagueSettings{
			NumTeams:      12,
			PlayoffTeams:  6,
			TradeDeadline: 12,
			TaxiSlots:     2,
			ReserveSlots:  1,
		},
	}
)

// TestStore wraps a postgres testcontainer and a Store connected to it, for
// sharing across the tests in a package via TestMain.
type TestStore struct {
	container *containers.DBContainer
	Store     db.Store
	Clock     *clock.Mock
}

func NewTestStore() *TestStore {
	container := containers.NewDBContainer()
	clk := clock.NewMock()

	store, err := db.New(context.Background(), container.ConnectionString(), clk)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestStore{
		container: container,
		Store:     store,
		Clock:     clk,
	}
}

func (s *TestStore) Shutdown() {
	s.Store.Close()
	s.container.Shutdown()
}
