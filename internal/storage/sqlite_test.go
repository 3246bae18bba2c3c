package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encryption-service/internal/models"
)

func TestSQLite_Schema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cipher.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	_, err = s.AddSession(context.Background(), newSession("BOB", "ПРИВЕТ"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var methods int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM methods").Scan(&methods))
	assert.Equal(t, 2, methods)

	var id int
	var params string
	err = db.QueryRow("SELECT id, params FROM sessions WHERE user_id = ?", "BOB").Scan(&id, &params)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.JSONEq(t, `{"shift":3}`, params)

	// reopening does not duplicate methods
	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	all, err := s.ListMethods(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(models.DefaultMethods()))
}
