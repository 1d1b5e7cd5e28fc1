package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the public API surface. Registration and the feed
// are open, everything that acts on behalf of a user requires a token.
func NewRouter(handler *Handler, auth *Authenticator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Recover(logger))
	r.Use(RequestLogger(logger))

	r.Get("/healthz", handler.Health)
	r.Get("/readyz", handler.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/users", handler.RegisterUser)
		r.Get("/posts", handler.ListFeed)
		r.Get("/posts/{post_id}", handler.GetPost)
		r.Get("/users/{user_id}", handler.GetUserProfile)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/users/me", handler.GetOwnProfile)
			r.Post("/posts", handler.CreatePost)
			r.Post("/posts/{post_id}/votes", handler.CastVote)
			r.Post("/posts/{post_id}/reports", handler.SubmitReport)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/reports/{report_id}/confirm", handler.ConfirmReport)
				r.Post("/reports/{report_id}/reject", handler.RejectReport)
				r.Post("/users/{user_id}/promote", handler.PromoteToDelegate)
				r.Post("/sync", handler.TriggerSync)
			})
		})
	})

	return r
}
