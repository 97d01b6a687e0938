// Package api - HTTP-клиент REST API BrothersCloud.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// ErrAuthorization сигнализирует об ошибке авторизации (401).
var ErrAuthorization = errors.New("ошибка авторизации")

// ErrNoToken - запрос не отправлен, так как токен не установлен.
var ErrNoToken = errors.New("токен аутентификации отсутствует")

// maxErrorBody ограничивает чтение тела ответа с ошибкой.
const maxErrorBody = 64 << 10

// Error - ответ сервера с кодом вне 2xx.
type Error struct {
	StatusCode int
	Message    string // Текст из поля message или error тела ответа, может быть пустым
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("сервер вернул статус %d", e.StatusCode)
	}
	return fmt.Sprintf("сервер вернул статус %d: %s", e.StatusCode, e.Message)
}

// ServerMessage возвращает текст ошибки от сервера для показа пользователю.
func (e *Error) ServerMessage() string { return e.Message }

// Unwrap позволяет проверять 401 через errors.Is(err, ErrAuthorization).
func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrAuthorization
	}
	return nil
}

// Client определяет интерфейс для взаимодействия с API BrothersCloud.
type Client interface {
	RecordsAPI
	PasswordsAPI
	EventsAPI
	// SetAuthToken устанавливает JWT токен для аутентифицированных запросов.
	SetAuthToken(token string)
}

// httpClient реализует интерфейс Client по HTTP.
type httpClient struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.RWMutex
	authToken string
}

// NewHTTPClient создает новый экземпляр API клиента.
// baseURL включает префикс /api, например "https://brotherscloud-1.onrender.com/api".
func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetAuthToken устанавливает токен аутентификации для клиента.
func (c *httpClient) SetAuthToken(token string) {
	c.mu.Lock()
	c.authToken = token
	c.mu.Unlock()
}

func (c *httpClient) setAuthHeader(req *http.Request) error {
	c.mu.RLock()
	token := c.authToken
	c.mu.RUnlock()
	if token == "" {
		return ErrNoToken
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// request описывает один вызов API.
type request struct {
	method      string
	path        []string // Сегменты пути относительно baseURL, экранируются
	query       url.Values
	body        io.Reader
	contentType string
	out         any // Куда декодировать JSON успешного ответа, nil - тело игнорируется
}

// jsonBody кодирует v в тело запроса.
func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования тела запроса: %w", err)
	}
	return bytes.NewReader(data), nil
}

func (c *httpClient) endpoint(segments []string, query url.Values) (string, error) {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u, err := url.JoinPath(c.baseURL, escaped...)
	if err != nil {
		return "", fmt.Errorf("ошибка формирования URL: %w", err)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u, nil
}

// do выполняет запрос: заголовки авторизации и трассировки, разбор ошибок, декодирование ответа.
func (c *httpClient) do(ctx context.Context, r request) error {
	endpoint, err := c.endpoint(r.path, r.query)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, r.body)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса %s %s: %w", r.method, endpoint, err)
	}
	if err = c.setAuthHeader(req); err != nil {
		return err
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("Ошибка выполнения запроса",
			"method", r.method, "url", endpoint, "request_id", requestID, "error", err)
		return fmt.Errorf("ошибка выполнения запроса %s %s: %w", r.method, endpoint, err)
	}
	defer resp.Body.Close()

	slog.Debug("Ответ API",
		"method", r.method,
		"url", endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if r.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(r.out); err != nil {
		return fmt.Errorf("ошибка декодирования ответа %s %s: %w", r.method, endpoint, err)
	}
	return nil
}

// decodeError читает {message}|{error} из тела ответа. Тело может быть не JSON.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}
	var body models.ErrorResponse
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Text()
	}
	return apiErr
}
