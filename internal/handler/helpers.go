package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Rirush/RTest/internal/logger"
	"github.com/Rirush/RTest/internal/model"
	"github.com/Rirush/RTest/internal/session"
)

type successResponse struct {
	Success bool `json:"success"`
}

type failResponse struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	UUID    string `json:"uuid"`
}

type userResponse struct {
	Success bool             `json:"success"`
	User    model.UserPublic `json:"user"`
}

type usersResponse struct {
	Success bool               `json:"success"`
	Users   []model.UserPublic `json:"users"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("writeJSON encode: %v", err)
	}
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func writeFail(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, failResponse{Success: false, Reason: reason})
}

// NotFound отвечает единым конвертом на несуществующий маршрут или метод.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeFail(w, http.StatusNotFound, "No such method found")
}

// maskToken маскирует токен сессии в логах (полный токен не светим).
func maskToken(token uuid.UUID) string {
	s := token.String()
	return s[:8] + "***"
}

// queryBool трактует присутствие query-параметра как true,
// кроме явных "false"/"0"/"no".
func queryBool(r *http.Request, key string) bool {
	q := r.URL.Query()
	if !q.Has(key) {
		return false
	}
	switch strings.ToLower(q.Get(key)) {
	case "false", "0", "no":
		return false
	}
	return true
}

// resolveSession разбирает токен из path и находит сессию.
// Кривой токен — это не ошибка маршрутизации, а невалидная сессия.
// При неудаче пишет ответ и возвращает ok=false.
func resolveSession(w http.ResponseWriter, r *http.Request, sessions *session.Store) (uuid.UUID, model.Session, bool) {
	token, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid session")
		return uuid.UUID{}, model.Session{}, false
	}
	sess, ok := sessions.Find(token)
	if !ok {
		writeFail(w, http.StatusNotFound, "Invalid session")
		return uuid.UUID{}, model.Session{}, false
	}
	return token, sess, true
}
