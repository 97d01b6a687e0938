package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

const passwordsPrefix = "passwords"

// PasswordsAPI - эндпоинты менеджера паролей (/passwords/...).
type PasswordsAPI interface {
	ListCredentials(ctx context.Context, query url.Values) (*models.CredentialPage, error)
	GetCredential(ctx context.Context, id string) (*models.Credential, error)
	CreateCredential(ctx context.Context, in models.CredentialInput) error
	UpdateCredential(ctx context.Context, id string, in models.CredentialInput) error
	DeleteCredential(ctx context.Context, id string) error
	// DecryptCredential возвращает расшифрованный пароль. Сервер хранит его только зашифрованным.
	DecryptCredential(ctx context.Context, id string) (string, error)
	ListCategories(ctx context.Context) ([]string, error)
	CredentialStats(ctx context.Context) (*models.CredentialStats, error)
}

func (c *httpClient) ListCredentials(ctx context.Context, query url.Values) (*models.CredentialPage, error) {
	var page models.CredentialPage
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{passwordsPrefix},
		query:  query,
		out:    &page,
	}); err != nil {
		return nil, fmt.Errorf("ошибка загрузки паролей: %w", err)
	}
	return &page, nil
}

func (c *httpClient) GetCredential(ctx context.Context, id string) (*models.Credential, error) {
	var cred models.Credential
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{passwordsPrefix, id},
		out:    &cred,
	}); err != nil {
		return nil, fmt.Errorf("ошибка загрузки пароля %s: %w", id, err)
	}
	return &cred, nil
}

func (c *httpClient) CreateCredential(ctx context.Context, in models.CredentialInput) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	if err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        []string{passwordsPrefix},
		body:        body,
		contentType: "application/json",
	}); err != nil {
		return fmt.Errorf("ошибка создания пароля: %w", err)
	}
	return nil
}

func (c *httpClient) UpdateCredential(ctx context.Context, id string, in models.CredentialInput) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	if err = c.do(ctx, request{
		method:      http.MethodPut,
		path:        []string{passwordsPrefix, id},
		body:        body,
		contentType: "application/json",
	}); err != nil {
		return fmt.Errorf("ошибка обновления пароля %s: %w", id, err)
	}
	return nil
}

func (c *httpClient) DeleteCredential(ctx context.Context, id string) error {
	if err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   []string{passwordsPrefix, id},
	}); err != nil {
		return fmt.Errorf("ошибка удаления пароля %s: %w", id, err)
	}
	return nil
}

func (c *httpClient) DecryptCredential(ctx context.Context, id string) (string, error) {
	var resp models.DecryptResponse
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   []string{passwordsPrefix, id, "decrypt"},
		out:    &resp,
	}); err != nil {
		return "", fmt.Errorf("ошибка расшифровки пароля %s: %w", id, err)
	}
	if resp.DecryptedPassword == "" {
		return "", errors.New("сервер вернул пустой пароль")
	}
	return resp.DecryptedPassword, nil
}

func (c *httpClient) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{passwordsPrefix, "categories"},
		out:    &categories,
	}); err != nil {
		return nil, fmt.Errorf("ошибка загрузки категорий: %w", err)
	}
	return categories, nil
}

func (c *httpClient) CredentialStats(ctx context.Context) (*models.CredentialStats, error) {
	var stats models.CredentialStats
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{passwordsPrefix, "stats"},
		out:    &stats,
	}); err != nil {
		return nil, fmt.Errorf("ошибка загрузки статистики паролей: %w", err)
	}
	return &stats, nil
}
