package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)
		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/ping", h.ping)
	})

	// routes behind JWT authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout-all", h.logoutAll)

		r.Route("/api/habits", func(r chi.Router) {
			r.Post("/", h.createHabit)
			r.Get("/", h.listHabits)

			r.Route("/{habitID}", func(r chi.Router) {
				r.Get("/", h.getHabit)
				r.Put("/", h.updateHabit)
				r.Delete("/", h.deleteHabit)

				r.Post("/track", h.trackHabit)
				r.Get("/history", h.habitHistory)
				r.Get("/streak", h.habitStreak)

				r.Post("/goals", h.createGoal)
				r.Get("/goals", h.listGoals)
				r.Get("/goals/{goalType}/progress", h.goalProgress)
			})
		})

		r.Route("/api/goals/{goalID}", func(r chi.Router) {
			r.Put("/", h.updateGoal)
			r.Delete("/", h.deleteGoal)
		})

		r.Delete("/api/tracking/{trackingID}", h.deleteTracking)
	})

	return router
}
