package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"github.com/RyShoe8/fantasyfootball/controller"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", dashboardHandler(ctrl, render))

	r.Get("/login", loginFormHandler(ctrl, render))
	r.Post("/login", loginHandler(ctrl, render))
	r.Post("/logout", logoutHandler(ctrl, render))
	r.Post("/retry", retryHandler(ctrl, render))

	r.Route("/select", func(r chi.Router) {
		r.Post("/league", selectLeagueHandler(ctrl, render))
		r.Post("/season", selectSeasonHandler(ctrl, render))
		r.Post("/week", selectWeekHandler(ctrl, render))
	})

	r.Get("/rosters/{rosterID:\\d+}", rosterHandler(ctrl, render))
	r.Get("/draft", draftHandler(ctrl, render))

	r.Get("/trade", tradeFormHandler(ctrl, render))
	r.Post("/trade", tradeHandler(ctrl, render))

	return r
}
