package handler

import (
	"net/http"
	"strings"

	"github.com/Rirush/RTest/internal/logger"
	"github.com/Rirush/RTest/internal/model"
	"github.com/Rirush/RTest/internal/repository"
	"github.com/Rirush/RTest/internal/session"
)

type DirectoryHandler struct {
	users    UserStore
	sessions *session.Store
}

func NewDirectoryHandler(users UserStore, sessions *session.Store) *DirectoryHandler {
	return &DirectoryHandler{users: users, sessions: sessions}
}

// ListUsers — каталог пользователей, только для преподавателей.
// Роль берётся из свежей строки БД, а не из кеша сессии: снимок мог
// устареть, а доверять устаревшей роли нельзя.
func (h *DirectoryHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	token, sess, ok := resolveSession(w, r, h.sessions)
	if !ok {
		return
	}
	caller, ok := loadSessionUser(w, r, h.users, h.sessions, token, sess)
	if !ok {
		return
	}
	if caller.Student {
		writeFail(w, http.StatusForbidden, "Students are not allowed to use this method")
		return
	}

	filter := repository.UserFilter{
		OnlyStudents: queryBool(r, "onlyStudents"),
		OnlyTeachers: queryBool(r, "onlyTeachers"),
		Grade:        strings.TrimSpace(r.URL.Query().Get("grade")),
	}
	if filter.OnlyStudents && filter.OnlyTeachers {
		writeFail(w, http.StatusBadRequest, "onlyStudents and onlyTeachers are mutually exclusive")
		return
	}

	users, err := h.users.List(r.Context(), filter)
	if err != nil {
		logger.Errorf("users: List %+v: %v", filter, err)
		writeFail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := make([]model.UserPublic, 0, len(users))
	for i := range users {
		result = append(result, users[i].ToPublic())
	}
	writeJSON(w, http.StatusOK, usersResponse{Success: true, Users: result})
}
