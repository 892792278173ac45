package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

// Endpoint keys used for failure injection and request counting.
const (
	EndpointUser       = "user"
	EndpointLeagues    = "leagues"
	EndpointLeague     = "league"
	EndpointRosters    = "rosters"
	EndpointUsers      = "users"
	EndpointPlayers    = "players"
	EndpointStats      = "stats"
	EndpointDraftPicks = "draft_picks"
)

// FakeSleeperServer serves canned Sleeper API responses for tests. Any
// endpoint can be made to fail with a chosen status code or to hang until
// the request is canceled, and every request is counted per endpoint.
type FakeSleeperServer struct {
	s *httptest.Server

	mu       sync.Mutex
	statuses map[string]int
	hangs    map[string]bool
	requests map[string]int
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{
		statuses: make(map[string]int),
		hangs:    make(map[string]bool),
		requests: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", f.handle(EndpointPlayers, nflPlayersHandler))
		r.Get("/stats/nfl/regular/{season}/{week}", f.handle(EndpointStats, statsHandler))

		r.Route("/user", func(r chi.Router) {
			r.Get("/{userID}/leagues/nfl/{year}", f.handle(EndpointLeagues, userLeaguesHandler))
			r.Get("/{username}", f.handle(EndpointUser, sleeperUserHandler))
		})

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/", f.handle(EndpointLeague, leagueHandler))
			r.Get("/rosters", f.handle(EndpointRosters, rostersHandler))
			r.Get("/users", f.handle(EndpointUsers, leagueUsersHandler))
			r.Get("/draft_picks", f.handle(EndpointDraftPicks, draftPicksHandler))
		})
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

// SetStatus makes every subsequent request to the endpoint return the given
// HTTP status with an empty body. Pass 0 to restore normal behavior.
func (f *FakeSleeperServer) SetStatus(endpoint string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code == 0 {
		delete(f.statuses, endpoint)
	} else {
		f.statuses[endpoint] = code
	}
}

// Hang makes the endpoint block until the client gives up, for timeout tests.
func (f *FakeSleeperServer) Hang(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hangs[endpoint] = true
}

// RequestCount reports how many requests the endpoint has received.
func (f *FakeSleeperServer) RequestCount(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[endpoint]
}

func (f *FakeSleeperServer) handle(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests[endpoint]++
		code := f.statuses[endpoint]
		hang := f.hangs[endpoint]
		f.mu.Unlock()

		if hang {
			<-r.Context().Done()
			return
		}
		if code != 0 {
			w.WriteHeader(code)
			return
		}
		h(w, r)
	}
}

func nflPlayersHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "players.json")
}

func statsHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "stats.json")
}

func sleeperUserHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "sleeperuser" {
		serveFile(w, "sleeperuser.json")
	} else {
		// requesting a user that doesn't exist returns a 200 with "null" as
		// the response body as of 2024-08-12
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
	}
}

func userLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	year := chi.URLParam(r, "year")

	if userID != "12345678" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
		return
	}

	switch year {
	case "2025":
		serveFile(w, "user_leagues_2025.json")
	case "2024":
		serveFile(w, "user_leagues_2024.json")
	default:
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func leagueHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") == "924039165950484480" {
		serveFile(w, "league.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
	}
}

func rostersHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") == "924039165950484480" {
		serveFile(w, "rosters.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func leagueUsersHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") == "924039165950484480" {
		serveFile(w, "league_users.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func draftPicksHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") == "924039165950484480" {
		serveFile(w, "draft_picks.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
