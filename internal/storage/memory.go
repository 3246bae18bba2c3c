package storage

import (
	"context"
	"sort"
	"sync"

	"encryption-service/internal/models"
)

type Memory struct {
	mu sync.RWMutex

	users      map[string]models.User
	userOrder  []string
	methods    map[int]models.Method
	sessions   []models.Session
	sessionSeq int64
}

func NewMemory() *Memory {
	m := &Memory{
		users:   make(map[string]models.User),
		methods: make(map[int]models.Method),
	}
	for _, method := range models.DefaultMethods() {
		m.methods[method.ID] = method
	}
	return m
}

func (m *Memory) AddUser(_ context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Login]; ok {
		return ErrAlreadyExists
	}
	m.users[user.Login] = user
	m.userOrder = append(m.userOrder, user.Login)
	return nil
}

func (m *Memory) GetUser(_ context.Context, login string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[login]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.userOrder))
	for _, login := range m.userOrder {
		users = append(users, m.users[login])
	}
	return users, nil
}

func (m *Memory) GetMethod(_ context.Context, id int) (models.Method, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	method, ok := m.methods[id]
	if !ok {
		return models.Method{}, ErrNotFound
	}
	return method, nil
}

func (m *Memory) ListMethods(_ context.Context) ([]models.Method, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	methods := make([]models.Method, 0, len(m.methods))
	for _, method := range m.methods {
		methods = append(methods, method)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].ID < methods[j].ID })
	return methods, nil
}

func (m *Memory) AddSession(_ context.Context, session models.Session) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessionSeq++
	session.Seq = m.sessionSeq
	session.ID = len(m.sessions) + 1
	m.sessions = append(m.sessions, session)
	return session, nil
}

func (m *Memory) GetSession(_ context.Context, id int) (models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Session{}, ErrNotFound
}

func (m *Memory) DeleteSession(_ context.Context, seq int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.sessions {
		if s.Seq == seq {
			m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListSessions(_ context.Context) ([]models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]models.Session, len(m.sessions))
	copy(sessions, m.sessions)
	return sessions, nil
}

func (m *Memory) Close() error {
	return nil
}
