package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Rirush/RTest/internal/logger"
	"github.com/Rirush/RTest/internal/password"
	"github.com/Rirush/RTest/internal/repository"
	"github.com/Rirush/RTest/internal/session"
)

type AuthHandler struct {
	users    UserStore
	sessions *session.Store
}

func NewAuthHandler(users UserStore, sessions *session.Store) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

type ConnectRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Connect проверяет пару username/password и выдаёт токен новой сессии.
func (h *AuthHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeFail(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeFail(w, http.StatusNotFound, "No such user")
			return
		}
		logger.Errorf("connect: GetByUsername %q: %v", req.Username, err)
		writeFail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		writeFail(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	token := h.sessions.Create(user.ToPublic())
	logger.Debugf("connect: выдан токен %s для %s", maskToken(token), user.Username)
	writeJSON(w, http.StatusOK, tokenResponse{Success: true, UUID: token.String()})
}

// Disconnect отзывает сессию. Повторный вызов с тем же токеном — ошибка
// "Invalid session", а не молчаливый успех.
func (h *AuthHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	token, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid session")
		return
	}
	if err := h.sessions.Revoke(token); err != nil {
		writeFail(w, http.StatusNotFound, "Invalid session")
		return
	}
	writeSuccess(w)
}
