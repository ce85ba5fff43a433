// Package session хранит активные сессии процесса: токен -> снимок профиля.
// Хранилище намеренно «глупое» — без паролей, ролей и обращений к БД;
// это единственное разделяемое состояние, которое мутируют конкурентные запросы.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Rirush/RTest/internal/model"
)

var (
	// ErrTokenConflict возвращается при попытке привязать уже занятый токен.
	ErrTokenConflict = errors.New("session token already in use")
	// ErrSessionNotFound возвращается при операции над несуществующим токеном.
	ErrSessionNotFound = errors.New("session not found")
)

// Store — реестр сессий в памяти. Все операции синхронные; каждая
// мутация выполняет свою проверку и запись под одной блокировкой,
// поэтому create/update/revoke не гоняются между собой.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]model.Session
}

// NewStore создаёт пустой реестр. Экземпляр создаётся при старте процесса
// и передаётся в handlers явно (без глобального состояния).
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]model.Session)}
}

// CreateWithToken привязывает заданный токен к пользователю.
// Занятый токен — ошибка, молчаливой перезаписи нет. Используется в
// детерминированных сценариях; боевой путь — Create.
func (s *Store) CreateWithToken(token uuid.UUID, user model.UserPublic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; ok {
		return ErrTokenConflict
	}
	s.sessions[token] = model.Session{User: user}
	return nil
}

// Create генерирует случайный токен, привязывает его и возвращает.
// Коллизии в 128-битном пространстве не проверяются — принятый риск.
func (s *Store) Create(user model.UserPublic) uuid.UUID {
	token := uuid.New()
	s.mu.Lock()
	s.sessions[token] = model.Session{User: user}
	s.mu.Unlock()
	return token
}

// Find возвращает сессию токена без побочных эффектов.
func (s *Store) Find(token uuid.UUID) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

// FindAllForUser возвращает токены всех сессий пользователя (линейный
// проход, сравнение по ключу username). Порядок не определён.
func (s *Store) FindAllForUser(key model.Username) []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tokens []uuid.UUID
	for token, sess := range s.sessions {
		if sess.Key() == key {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Update заменяет снимок профиля привязанной сессии. Непривязанный токен —
// ошибка: update никогда не создаёт сессию (иначе конкурентный disconnect
// «воскресил» бы её).
func (s *Store) Update(token uuid.UUID, user model.UserPublic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return ErrSessionNotFound
	}
	s.sessions[token] = model.Session{User: user}
	return nil
}

// Revoke удаляет привязку. Повторный Revoke того же токена возвращает
// ErrSessionNotFound — идемпотентность сознательно не гарантируется.
func (s *Store) Revoke(token uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, token)
	return nil
}

// Exists сообщает, привязан ли токен.
func (s *Store) Exists(token uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[token]
	return ok
}

// Len возвращает число активных сессий (для логов при остановке).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
