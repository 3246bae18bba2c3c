package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(h *Implementation, sugarLogger *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		AddLoggerToContextMiddleware(sugarLogger),
		RequestMiddleware(),
		ResponseMiddleware(),
		middleware.Recoverer,
	)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
	})
	r.Get("/methods", h.ListMethods)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/all", h.ListSessions)
		r.Get("/{"+sessionIDParam+"}", h.GetSession)
		r.Delete("/{"+sessionIDParam+"}", h.DeleteSession)
	})

	return r
}
