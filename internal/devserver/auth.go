package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Тип для ключа контекста.
type contextKey string

// UserIDKey - ключ ID пользователя в контексте запроса.
const UserIDKey contextKey = "userID"

const (
	defaultTokenTTL = 24 * time.Hour
	tokenIssuer     = "brotherscloud-devserver"
)

// ErrEmptySecret - не задан ключ подписи токенов.
var ErrEmptySecret = errors.New("пустой ключ подписи JWT")

// claims - полезная нагрузка токена. user_id читает клиент при входе.
type claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Authenticator выпускает и проверяет токены HS256.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthenticator создает аутентификатор. ttl <= 0 - сутки.
func NewAuthenticator(secret string, ttl time.Duration, now func() time.Time) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Authenticator{secret: []byte(secret), ttl: ttl, now: now}, nil
}

// IssueToken создает и подписывает токен для пользователя.
func (a *Authenticator) IssueToken(userID int64) (string, error) {
	now := a.now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи JWT: %w", err)
	}
	return signed, nil
}

// Verify проверяет токен и возвращает ID пользователя.
func (a *Authenticator) Verify(token string) (int64, error) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return 0, fmt.Errorf("невалидный токен: %w", err)
	}
	if !parsed.Valid {
		return 0, errors.New("невалидный токен")
	}
	return c.UserID, nil
}

// Middleware пропускает только запросы с действительным токеном Bearer.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			slog.Debug("Заголовок Authorization отсутствует", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			slog.Debug("Неверный формат заголовка Authorization", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		userID, err := a.Verify(token)
		if err != nil {
			slog.Info("Отклонен токен", "error", err)
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext извлекает ID пользователя из контекста запроса.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// writeJSON пишет ответ с кодом status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Ошибка кодирования ответа", "error", err)
	}
}

// writeError пишет ошибку в формате {"message": "..."}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
