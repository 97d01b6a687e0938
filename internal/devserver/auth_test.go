package devserver_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/devserver"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/session"
)

const testSecret = "test-secret"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewAuthenticator_EmptySecret(t *testing.T) {
	_, err := devserver.NewAuthenticator("", time.Hour, nil)
	require.ErrorIs(t, err, devserver.ErrEmptySecret)
}

func TestAuthenticator_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	auth, err := devserver.NewAuthenticator(testSecret, time.Hour, fixedClock(now))
	require.NoError(t, err)

	token, err := auth.IssueToken(42)
	require.NoError(t, err)

	userID, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	// Клиент при входе читает user_id из токена без проверки подписи.
	info, err := session.Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "42", info.UserID)
}

func TestAuthenticator_VerifyRejects(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	issuer, err := devserver.NewAuthenticator(testSecret, time.Hour, fixedClock(now))
	require.NoError(t, err)
	token, err := issuer.IssueToken(1)
	require.NoError(t, err)

	later, err := devserver.NewAuthenticator(testSecret, time.Hour, fixedClock(now.Add(2*time.Hour)))
	require.NoError(t, err)
	other, err := devserver.NewAuthenticator("other-secret", time.Hour, fixedClock(now))
	require.NoError(t, err)

	tests := []struct {
		name  string
		auth  *devserver.Authenticator
		token string
	}{
		{name: "истекший токен", auth: later, token: token},
		{name: "чужой ключ подписи", auth: other, token: token},
		{name: "мусор вместо токена", auth: issuer, token: "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.auth.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestAuthenticator_Middleware(t *testing.T) {
	auth, err := devserver.NewAuthenticator(testSecret, time.Hour, nil)
	require.NoError(t, err)
	token, err := auth.IssueToken(7)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := devserver.UserIDFromContext(r.Context())
		assert.True(t, ok)
		_, _ = w.Write([]byte(strconv.FormatInt(userID, 10)))
	})
	handler := auth.Middleware(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "нет заголовка", wantStatus: http.StatusUnauthorized,
			wantBody: `{"message":"Authentication required"}`},
		{name: "нет схемы Bearer", header: token, wantStatus: http.StatusUnauthorized,
			wantBody: `{"message":"Invalid token format"}`},
		{name: "другая схема", header: "Basic " + token, wantStatus: http.StatusUnauthorized,
			wantBody: `{"message":"Invalid token format"}`},
		{name: "невалидный токен", header: "Bearer broken", wantStatus: http.StatusUnauthorized,
			wantBody: `{"message":"Invalid token"}`},
		{name: "валидный токен", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/passwords", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := devserver.UserIDFromContext(req.Context())
	assert.False(t, ok)
}
