package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rirush/RTest/internal/model"
	"github.com/Rirush/RTest/internal/password"
	"github.com/Rirush/RTest/internal/repository"
	"github.com/Rirush/RTest/internal/router"
	"github.com/Rirush/RTest/internal/session"
)

// fakeUserStore — реализация handler.UserStore в памяти.
// failNext заставляет следующий вызов вернуть ошибку (имитация отказа БД).
type fakeUserStore struct {
	mu       sync.Mutex
	users    map[string]*model.User // по id
	failNext error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) add(u model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := u
	f.users[u.ID] = &cp
}

func (f *fakeUserStore) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func (f *fakeUserStore) get(id string) model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.users[id]
}

func (f *fakeUserStore) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id, username, firstName, lastName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	u, ok := f.users[id]
	if !ok {
		return nil
	}
	u.Username = username
	u.FirstName = firstName
	u.LastName = lastName
	return nil
}

func (f *fakeUserStore) List(_ context.Context, filter repository.UserFilter) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	var out []model.User
	for _, u := range f.users {
		if filter.OnlyStudents && !u.Student {
			continue
		}
		if filter.OnlyTeachers && u.Student {
			continue
		}
		if filter.Grade != "" && !filter.OnlyTeachers {
			if !u.Student || !strings.HasPrefix(u.Grade, filter.Grade) {
				continue
			}
		}
		out = append(out, *u)
	}
	return out, nil
}

var errDBDown = errors.New("db down")

// envelope — единый конверт ответа API.
type envelope struct {
	Success bool               `json:"success"`
	Reason  string             `json:"reason"`
	UUID    string             `json:"uuid"`
	User    *model.UserPublic  `json:"user"`
	Users   []model.UserPublic `json:"users"`
}

type env struct {
	store    *fakeUserStore
	sessions *session.Store
	srv      *httptest.Server
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := password.Hash(plain, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

// newEnv поднимает httptest-сервер с боевой маршрутизацией и набором
// пользователей: alice — преподаватель, bob и charlie — ученики.
func newEnv(t *testing.T) *env {
	t.Helper()
	store := newFakeUserStore()
	store.add(model.User{
		ID: uuid.New().String(), Username: "alice", PasswordHash: mustHash(t, "correct-pw"),
		FirstName: "Alice", LastName: "Smith", Student: false,
	})
	store.add(model.User{
		ID: uuid.New().String(), Username: "bob", PasswordHash: mustHash(t, "bob-pw"),
		FirstName: "Bob", LastName: "Jones", Student: true, Grade: "11A",
	})
	store.add(model.User{
		ID: uuid.New().String(), Username: "charlie", PasswordHash: mustHash(t, "charlie-pw"),
		FirstName: "Charlie", LastName: "Brown", Student: true, Grade: "9B",
	})

	sessions := session.NewStore()
	srv := httptest.NewServer(router.New(store, sessions))
	t.Cleanup(srv.Close)
	return &env{store: store, sessions: sessions, srv: srv}
}

func (e *env) userID(t *testing.T, username string) string {
	t.Helper()
	u, err := e.store.GetByUsername(context.Background(), username)
	if err != nil {
		t.Fatalf("seed user %q missing: %v", username, err)
	}
	return u.ID
}

func (e *env) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := e.srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out envelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response of %s %s: %v", method, path, err)
	}
	return resp.StatusCode, out
}

// connect выполняет успешный вход и возвращает токен.
func (e *env) connect(t *testing.T, username, pass string) string {
	t.Helper()
	status, out := e.do(t, http.MethodPost, "/connect/", map[string]string{
		"username": username, "password": pass,
	})
	if status != http.StatusOK || !out.Success || out.UUID == "" {
		t.Fatalf("connect %s failed: status=%d resp=%+v", username, status, out)
	}
	return out.UUID
}
