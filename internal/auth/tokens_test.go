package auth

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthDB(t *testing.T) *Repository {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE tokens (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			token_hash TEXT NOT NULL UNIQUE,
			label TEXT NOT NULL,
			expires_at DATETIME,
			revoked_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	require.NoError(t, err)
	return NewRepository(db)
}

func TestGenerateTokenFormat(t *testing.T) {
	store := NewTokenStore(newTestAuthDB(t))

	raw, hash, err := store.GenerateToken()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, TokenPrefix))
	assert.Len(t, hash, 64) // hex sha256
	assert.Equal(t, hashToken(raw), hash)

	raw2, _, err := store.GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
}

func TestCreateAndValidateToken(t *testing.T) {
	repo := newTestAuthDB(t)
	store := NewTokenStore(repo)

	user, err := repo.CreateUser("admin@campus.edu", "Canteen Admin")
	require.NoError(t, err)

	created, err := store.CreateToken(user.ID, "console", nil)
	require.NoError(t, err)
	assert.Equal(t, "console", created.Label)

	validated, err := store.ValidateToken(created.RawToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.User.ID)
	assert.Equal(t, created.ID, validated.Token.ID)
}

func TestValidateTokenRejectsBadInput(t *testing.T) {
	repo := newTestAuthDB(t)
	store := NewTokenStore(repo)

	_, err := store.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = store.ValidateToken(TokenPrefix + "unknownvalue")
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	repo := newTestAuthDB(t)
	store := NewTokenStore(repo)

	user, err := repo.CreateUser("admin@campus.edu", "Canteen Admin")
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	created, err := store.CreateToken(user.ID, "expired", &past)
	require.NoError(t, err)

	_, err = store.ValidateToken(created.RawToken)
	assert.ErrorContains(t, err, "expired")
}

func TestRevokeToken(t *testing.T) {
	repo := newTestAuthDB(t)
	store := NewTokenStore(repo)

	user, err := repo.CreateUser("admin@campus.edu", "Canteen Admin")
	require.NoError(t, err)
	created, err := store.CreateToken(user.ID, "console", nil)
	require.NoError(t, err)

	require.NoError(t, store.RevokeToken(created.ID, user.ID))

	_, err = store.ValidateToken(created.RawToken)
	assert.ErrorContains(t, err, "revoked")

	// Revoking twice fails
	assert.Error(t, store.RevokeToken(created.ID, user.ID))

	// A different user cannot revoke someone else's token
	other, err := repo.CreateUser("other@campus.edu", "Other Admin")
	require.NoError(t, err)
	created2, err := store.CreateToken(user.ID, "second", nil)
	require.NoError(t, err)
	assert.Error(t, store.RevokeToken(created2.ID, other.ID))
}

func TestCreateTokenRequiresLabel(t *testing.T) {
	repo := newTestAuthDB(t)
	store := NewTokenStore(repo)

	user, err := repo.CreateUser("admin@campus.edu", "Canteen Admin")
	require.NoError(t, err)

	_, err = store.CreateToken(user.ID, "   ", nil)
	assert.Error(t, err)
}
