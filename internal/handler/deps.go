package handler

import (
	"context"

	"github.com/Rirush/RTest/internal/model"
	"github.com/Rirush/RTest/internal/repository"
)

// UserStore — операции над хранилищем пользователей, нужные handlers.
// Реализуется repository.UserRepository; в тестах подменяется фейком.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id, username, firstName, lastName string) error
	List(ctx context.Context, f repository.UserFilter) ([]model.User, error)
}
