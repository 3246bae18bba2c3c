package storage

import (
	"context"
	"errors"

	"encryption-service/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Store holds users, methods and sessions. Implementations are safe for
// concurrent use.
type Store interface {
	AddUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, login string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	GetMethod(ctx context.Context, id int) (models.Method, error)
	ListMethods(ctx context.Context) ([]models.Method, error)

	// AddSession assigns session.ID = number of stored sessions + 1 and a
	// unique Seq, stores it and returns the stored record.
	AddSession(ctx context.Context, session models.Session) (models.Session, error)
	// GetSession returns the earliest stored session with the given id.
	GetSession(ctx context.Context, id int) (models.Session, error)
	DeleteSession(ctx context.Context, seq int64) error
	ListSessions(ctx context.Context) ([]models.Session, error)

	Close() error
}

const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

// New opens a store of the given kind. SQLite runs on a private in-memory
// database, so neither kind outlives the process.
func New(kind string) (Store, error) {
	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindSQLite:
		s, err := NewSQLite("file::memory:")
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.New("unknown storage kind: " + kind)
	}
}
