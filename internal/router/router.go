// Package router регистрирует маршруты API на chi.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rirush/RTest/internal/handler"
	"github.com/Rirush/RTest/internal/session"
)

// New собирает маршрутизатор с четырьмя методами API и /health.
// Middleware (логирование, CORS, recover) передаёт services/api/main.go:
// chi требует регистрировать их до маршрутов.
func New(users handler.UserStore, sessions *session.Store, mw ...func(http.Handler) http.Handler) *chi.Mux {
	authH := handler.NewAuthHandler(users, sessions)
	profileH := handler.NewProfileHandler(users, sessions)
	dirH := handler.NewDirectoryHandler(users, sessions)

	r := chi.NewRouter()
	r.Use(mw...)
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.NotFound)

	r.Post("/connect/", authH.Connect)
	r.Post("/disconnect/{uuid}/", authH.Disconnect)
	r.Get("/me/{uuid}/", profileH.GetMe)
	r.Post("/me/{uuid}/", profileH.PostMe)
	r.Get("/users/{uuid}/", dirH.ListUsers)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
