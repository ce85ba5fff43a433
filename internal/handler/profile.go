package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Rirush/RTest/internal/logger"
	"github.com/Rirush/RTest/internal/model"
	"github.com/Rirush/RTest/internal/repository"
	"github.com/Rirush/RTest/internal/session"
)

type ProfileHandler struct {
	users    UserStore
	sessions *session.Store
}

func NewProfileHandler(users UserStore, sessions *session.Store) *ProfileHandler {
	return &ProfileHandler{users: users, sessions: sessions}
}

// loadSessionUser возвращает актуальную строку пользователя сессии.
// Если учётная запись уже удалена, сессия осиротела: отзываем её
// (self-heal) и отвечаем ошибкой. При неудаче пишет ответ и возвращает
// ok=false.
func loadSessionUser(w http.ResponseWriter, r *http.Request, users UserStore, sessions *session.Store, token uuid.UUID, sess model.Session) (*model.User, bool) {
	row, err := users.GetByID(r.Context(), sess.User.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Отзыв best-effort: сессию мог уже убрать конкурентный disconnect.
			if revokeErr := sessions.Revoke(token); revokeErr != nil {
				logger.Debugf("self-heal: сессия %s уже отозвана", maskToken(token))
			}
			writeFail(w, http.StatusNotFound, "User account no longer exists")
			return nil, false
		}
		logger.Errorf("session %s: GetByID %s: %v", maskToken(token), sess.User.ID, err)
		writeFail(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return row, true
}

// GetMe возвращает профиль владельца сессии (свежая строка из БД, не кеш).
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	token, sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}
	row, ok := loadSessionUser(w, r, h.users, h.sessions, token, sess)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: row.ToPublic()})
}

// UpdateMeRequest — частичное обновление профиля. nil-поле означает
// «не менять»; id и student через этот путь не меняются никогда.
type UpdateMeRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// PostMe применяет частичное обновление: сначала к снимку в сессии, затем
// к строке в БД. Если токен отозвали между resolve и Update — отдельная
// ошибка, сессию не воскрешаем. Ошибку БД после обновления сессии не
// компенсируем (окно рассинхронизации принято).
func (h *ProfileHandler) PostMe(w http.ResponseWriter, r *http.Request) {
	token, sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	row, ok := loadSessionUser(w, r, h.users, h.sessions, token, sess)
	if !ok {
		return
	}

	username := row.Username
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
		if username == "" {
			writeFail(w, http.StatusBadRequest, "Username cannot be empty")
			return
		}
	}
	firstName := row.FirstName
	if req.FirstName != nil {
		firstName = strings.TrimSpace(*req.FirstName)
	}
	lastName := row.LastName
	if req.LastName != nil {
		lastName = strings.TrimSpace(*req.LastName)
	}

	merged := model.UserPublic{
		ID:        row.ID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Student:   row.Student,
	}
	if err := h.sessions.Update(token, merged); err != nil {
		writeFail(w, http.StatusNotFound, "Session was revoked while this request was processed")
		return
	}

	if err := h.users.UpdateProfile(r.Context(), row.ID, username, firstName, lastName); err != nil {
		logger.Errorf("postMe: UpdateProfile %s: %v", row.ID, err)
		writeFail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeSuccess(w)
}
