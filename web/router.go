package web

import (
	"time"

	"github.com/dsimpson1980/yff/controller"
	"github.com/dsimpson1980/yff/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, teams []*model.Team, week int, tracker *HighlightTracker, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", dashboardHandler(teams, week, render))
	r.Get("/players/{playerID:\\d+}/scores", playerScoresHandler(ctrl, teams, render))

	r.Route("/api", func(r chi.Router) {
		r.Get("/points", pointsHandler(teams, tracker, render))
		r.Get("/highlights", highlightsHandler(tracker, render))
		r.Get("/categories", categoriesHandler(ctrl, render))
	})

	return r
}
