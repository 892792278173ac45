package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"

	"github.com/RyShoe8/fantasyfootball/controller"
	"github.com/RyShoe8/fantasyfootball/model"
)

// playerRow is one rendered line of a roster or draft table: a player id
// resolved against the catalog and the selected week's stats.
type playerRow struct {
	ID        string
	Name      string
	Position  model.Position
	Team      model.NFLTeam
	Points    float64
	Projected float64
}

func dashboardHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := ctrl.Session()
		if !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		data := map[string]any{
			"session":   sess,
			"standings": model.ComputeStandings(sess.Rosters, sess.Users),
			"years":     seasonOptions(sess.Year),
			"weeks":     weekOptions(),
		}
		render.HTML(w, http.StatusOK, "dashboard", data)
	}
}

func loginFormHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess := ctrl.Session(); sess.Authenticated() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		render.HTML(w, http.StatusOK, "login", nil)
	}
}

func loginHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		username := strings.TrimSpace(r.PostForm.Get("username"))
		if username == "" {
			render.HTML(w, http.StatusBadRequest, "400", "username is required")
			return
		}

		if err := ctrl.Login(r.Context(), username); err != nil {
			if errors.Is(err, controller.ErrUserNotFound) {
				data := map[string]any{
					"username": username,
					"error":    fmt.Sprintf("no Sleeper account found for %q", username),
				}
				render.HTML(w, http.StatusNotFound, "login", data)
				return
			}
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func logoutHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Logout(); err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// retryHandler replays the fetches that failed for the current selection and
// sends the user back to the dashboard.
func retryHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Retry(r.Context()); err != nil {
			if errors.Is(err, controller.ErrNotLoggedIn) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func selectLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		leagueID := r.PostForm.Get("league_id")
		if leagueID == "" {
			render.HTML(w, http.StatusBadRequest, "400", "league_id is required")
			return
		}

		if err := ctrl.SelectLeague(r.Context(), leagueID); err != nil {
			if errors.Is(err, controller.ErrNotLoggedIn) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func selectSeasonHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		if err := ctrl.SelectSeason(r.Context(), r.PostForm.Get("year")); err != nil {
			if errors.Is(err, controller.ErrNotLoggedIn) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func selectWeekHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		week, err := strconv.Atoi(r.PostForm.Get("week"))
		if err != nil || week < 1 || week > 18 {
			render.HTML(w, http.StatusBadRequest, "400", fmt.Sprintf("week must be between 1 and 18, got: %s", r.PostForm.Get("week")))
			return
		}

		ctrl.SelectWeek(week)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func rosterHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := ctrl.Session()
		if !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		rosterID, err := strconv.Atoi(chi.URLParam(r, "rosterID"))
		if err != nil {
			render.HTML(w, http.StatusBadRequest, "400", fmt.Sprintf("error parsing roster id: %v", err))
			return
		}

		var roster *model.Roster
		for i := range sess.Rosters {
			if sess.Rosters[i].ID == rosterID {
				roster = &sess.Rosters[i]
				break
			}
		}
		if roster == nil {
			render.HTML(w, http.StatusNotFound, "404", "roster not found")
			return
		}

		catalog, err := ctrl.GetPlayerCatalog(r.Context())
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}
		stats, err := ctrl.GetPlayerStats(r.Context(), sess.Year, sess.Week)
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		ownerName := "(unowned)"
		if owner := sess.UserByID(roster.OwnerID); owner != nil {
			ownerName = owner.Name()
		}

		data := map[string]any{
			"session":  sess,
			"roster":   roster,
			"owner":    ownerName,
			"starters": buildRows(roster.Starters, catalog, stats),
			"bench":    buildRows(roster.Bench(), catalog, stats),
			"taxi":     buildRows(roster.Taxi, catalog, stats),
			"reserve":  buildRows(roster.Reserve, catalog, stats),
		}
		render.HTML(w, http.StatusOK, "roster", data)
	}
}

func draftHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := ctrl.Session()
		if !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if sess.League == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		picks, err := ctrl.GetDraftPicks(r.Context(), sess.League.ID)
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}
		catalog, err := ctrl.GetPlayerCatalog(r.Context())
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		type pickRow struct {
			Pick   model.DraftPick
			Player string
			Owner  string
		}
		rows := make([]pickRow, 0, len(picks))
		for _, p := range picks {
			row := pickRow{Pick: p, Player: "(on the clock)"}
			if pl, ok := catalog[p.PlayerID]; ok {
				row.Player = pl.FullName()
			}
			if roster := rosterByID(sess.Rosters, p.RosterID); roster != nil {
				if owner := sess.UserByID(roster.OwnerID); owner != nil {
					row.Owner = owner.Name()
				}
			}
			rows = append(rows, row)
		}

		data := map[string]any{
			"session": sess,
			"picks":   rows,
		}
		render.HTML(w, http.StatusOK, "draft", data)
	}
}

func tradeFormHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := ctrl.Session()
		if !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		render.HTML(w, http.StatusOK, "trade", map[string]any{"session": sess})
	}
}

func tradeHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := ctrl.Session()
		if !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			render.HTML(w, http.StatusBadRequest, "400", err.Error())
			return
		}

		sideA := splitIDs(r.PostForm.Get("side_a"))
		sideB := splitIDs(r.PostForm.Get("side_b"))
		if len(sideA) == 0 || len(sideB) == 0 {
			render.HTML(w, http.StatusBadRequest, "400", "both sides of the trade need at least one player id")
			return
		}

		ev, err := ctrl.EvaluateTrade(r.Context(), sideA, sideB)
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		data := map[string]any{
			"session": sess,
			"sideA":   strings.Join(sideA, ", "),
			"sideB":   strings.Join(sideB, ", "),
			"result":  ev,
		}
		render.HTML(w, http.StatusOK, "trade", data)
	}
}

func buildRows(ids []string, catalog map[string]model.Player, stats map[string]model.PlayerStats) []playerRow {
	rows := make([]playerRow, 0, len(ids))
	for _, id := range ids {
		if id == "0" || id == "" { // empty lineup slot
			rows = append(rows, playerRow{Name: "(empty)"})
			continue
		}

		row := playerRow{ID: id, Name: fmt.Sprintf("Unknown (%s)", id)}
		if p, ok := catalog[id]; ok {
			row.Name = p.FullName()
			row.Position = p.Position
			row.Team = p.Team
		}
		if s, ok := stats[id]; ok {
			row.Points = s.Points
			row.Projected = s.Projected
		}
		rows = append(rows, row)
	}
	return rows
}

func rosterByID(rosters []model.Roster, id int) *model.Roster {
	for i := range rosters {
		if rosters[i].ID == id {
			return &rosters[i]
		}
	}
	return nil
}

// splitIDs parses a user-entered list of player ids separated by commas or
// whitespace.
func splitIDs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// seasonOptions lists the selectable years, newest first, back to Sleeper's
// first season.
func seasonOptions(current string) []string {
	year, err := strconv.Atoi(current)
	if err != nil || year < 2017 {
		return []string{current}
	}

	years := make([]string, 0, year-2017+1)
	for y := year; y >= 2017; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

func weekOptions() []int {
	weeks := make([]int, 18)
	for i := range weeks {
		weeks[i] = i + 1
	}
	return weeks
}
