package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/session"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := session.NewFileStore(path)

	_, err := store.Load()
	require.ErrorIs(t, err, session.ErrNoSession)

	require.Error(t, store.Save(session.Session{UserID: "7"}), "сессия без токена не сохраняется")

	want := session.Session{Token: "tok", UserID: "7"}
	require.NoError(t, store.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	require.ErrorIs(t, err, session.ErrNoSession)
	require.NoError(t, store.Clear(), "повторный выход не ошибка")
}

func TestFileStore_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := session.NewFileStore(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNoSession)
}

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestInspect(t *testing.T) {
	exp := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		token  string
		userID string
	}{
		{
			name:   "Числовой user_id",
			token:  sign(t, jwt.MapClaims{"user_id": 42, "exp": exp.Unix()}),
			userID: "42",
		},
		{
			name:   "Строковый user_id",
			token:  sign(t, jwt.MapClaims{"user_id": "u-1", "exp": exp.Unix()}),
			userID: "u-1",
		},
		{
			name:   "Только sub",
			token:  sign(t, jwt.MapClaims{"sub": "9", "exp": exp.Unix()}),
			userID: "9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := session.Inspect(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, info.UserID)
			assert.True(t, info.ExpiresAt.Equal(exp))
			assert.False(t, info.Expired(exp.Add(-time.Hour)))
			assert.True(t, info.Expired(exp.Add(time.Hour)))
		})
	}

	_, err := session.Inspect("not-a-jwt")
	require.Error(t, err)
}
