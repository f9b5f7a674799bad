package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"

	"github.com/mortenhouring/guess-the-steeler/controller"
)

func getRouter(ctrl controller.C, render *render.Render, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped. Long enough for a cold roster load with
	// retries.
	r.Use(middleware.Timeout(45 * time.Second))

	r.Get("/", rootHandler(render))

	r.Route("/api", func(r chi.Router) {
		r.Get("/roster", rosterHandler(ctrl, render))
		r.Get("/leaderboard", leaderboardHandler(ctrl, render))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", startSessionHandler(ctrl, render))
			r.Get("/{sessionID}/question", nextQuestionHandler(ctrl, render))
			r.Post("/{sessionID}/answer", submitAnswerHandler(ctrl, render))
			r.Delete("/{sessionID}", endSessionHandler(ctrl, render))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Timeout(2 * time.Minute)) // Set a longer timeout for /admin actions

		r.Post("/roster", refreshRosterHandler(ctrl, render, log))
	})

	return r
}
