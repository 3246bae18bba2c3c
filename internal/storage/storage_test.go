package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encryption-service/internal/models"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	sqliteStore, err := NewSQLite("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]Store{
		KindMemory: NewMemory(),
		KindSQLite: sqliteStore,
	}
}

func newSession(user string, text string) models.Session {
	return models.Session{
		UserID:    user,
		MethodID:  models.CaesarMethodID,
		DataIn:    text,
		Params:    map[string]any{"shift": float64(3)},
		DataOut:   text,
		Status:    models.StatusCompleted,
		CreatedAt: time.Now(),
	}
}

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.AddUser(ctx, models.User{Login: "BOB", SecretHash: "h1"}))
			require.NoError(t, s.AddUser(ctx, models.User{Login: "ALICE", SecretHash: "h2"}))

			err := s.AddUser(ctx, models.User{Login: "BOB", SecretHash: "other"})
			assert.ErrorIs(t, err, ErrAlreadyExists)

			user, err := s.GetUser(ctx, "BOB")
			require.NoError(t, err)
			assert.Equal(t, "h1", user.SecretHash)

			_, err = s.GetUser(ctx, "bob")
			assert.ErrorIs(t, err, ErrNotFound)

			users, err := s.ListUsers(ctx)
			require.NoError(t, err)
			require.Len(t, users, 2)
			assert.Equal(t, "BOB", users[0].Login)
			assert.Equal(t, "ALICE", users[1].Login)
		})
	}
}

func TestStore_Methods(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			methods, err := s.ListMethods(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.DefaultMethods(), methods)

			m, err := s.GetMethod(ctx, models.VigenereMethodID)
			require.NoError(t, err)
			assert.Equal(t, "Vigenere Cipher", m.Caption)
			assert.Equal(t, map[string]string{"key": "string"}, m.JSONParams)

			_, err = s.GetMethod(ctx, 99)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SessionIDs(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i, text := range []string{"А", "Б", "В"} {
				got, err := s.AddSession(ctx, newSession("BOB", text))
				require.NoError(t, err)
				assert.Equal(t, i+1, got.ID)
			}

			second, err := s.GetSession(ctx, 2)
			require.NoError(t, err)
			assert.Equal(t, "Б", second.DataIn)
			assert.Equal(t, map[string]any{"shift": float64(3)}, second.Params)

			require.NoError(t, s.DeleteSession(ctx, second.Seq))
			_, err = s.GetSession(ctx, 2)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, s.DeleteSession(ctx, second.Seq), ErrNotFound)

			// count+1 hands out id 3 again, the old session 3 stays first
			fourth, err := s.AddSession(ctx, newSession("BOB", "Г"))
			require.NoError(t, err)
			assert.Equal(t, 3, fourth.ID)

			third, err := s.GetSession(ctx, 3)
			require.NoError(t, err)
			assert.Equal(t, "В", third.DataIn)

			all, err := s.ListSessions(ctx)
			require.NoError(t, err)
			require.Len(t, all, 3)
			var texts []string
			for _, session := range all {
				texts = append(texts, session.DataIn)
			}
			assert.Equal(t, []string{"А", "В", "Г"}, texts)
		})
	}
}

func TestStore_ConcurrentAddSession(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			const n = 50
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := s.AddSession(ctx, newSession("BOB", "Д"))
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			all, err := s.ListSessions(ctx)
			require.NoError(t, err)
			require.Len(t, all, n)

			seen := make(map[int]bool, n)
			for _, session := range all {
				assert.False(t, seen[session.ID], "duplicate id %d", session.ID)
				seen[session.ID] = true
			}
		})
	}
}

func TestNew(t *testing.T) {
	s, err := New(KindMemory)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = New(KindSQLite)
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = New("postgres")
	assert.Error(t, err)
}
