package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

const fbscPrefix = "fbsc"

// RecordsAPI - эндпоинты продаж FBSC (/fbsc/...).
type RecordsAPI interface {
	// ListRecords возвращает страницу записей по параметрам search, product, from, to, user_id, limit, offset.
	ListRecords(ctx context.Context, query url.Values) (*models.RecordPage, error)
	GetRecord(ctx context.Context, id string) (*models.Record, error)
	CreateRecord(ctx context.Context, in models.RecordInput) error
	UpdateRecord(ctx context.Context, id string, in models.RecordInput) error
	DeleteRecord(ctx context.Context, id string) error
	// ListProducts возвращает известные названия продуктов.
	ListProducts(ctx context.Context) ([]string, error)
	// RecordStats возвращает агрегаты выручки, начиная с даты from.
	RecordStats(ctx context.Context, from string) (*models.RecordStats, error)
}

func (c *httpClient) ListRecords(ctx context.Context, query url.Values) (*models.RecordPage, error) {
	var page models.RecordPage
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{fbscPrefix, "records"},
		query:  query,
		out:    &page,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки записей: %w", err)
	}
	return &page, nil
}

func (c *httpClient) GetRecord(ctx context.Context, id string) (*models.Record, error) {
	var rec models.Record
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{fbscPrefix, "records", id},
		out:    &rec,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки записи %s: %w", id, err)
	}
	return &rec, nil
}

func (c *httpClient) CreateRecord(ctx context.Context, in models.RecordInput) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	if err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        []string{fbscPrefix, "records"},
		body:        body,
		contentType: "application/json",
	}); err != nil {
		return fmt.Errorf("ошибка создания записи: %w", err)
	}
	return nil
}

func (c *httpClient) UpdateRecord(ctx context.Context, id string, in models.RecordInput) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	if err = c.do(ctx, request{
		method:      http.MethodPut,
		path:        []string{fbscPrefix, "records", id},
		body:        body,
		contentType: "application/json",
	}); err != nil {
		return fmt.Errorf("ошибка обновления записи %s: %w", id, err)
	}
	return nil
}

func (c *httpClient) DeleteRecord(ctx context.Context, id string) error {
	if err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   []string{fbscPrefix, "records", id},
	}); err != nil {
		return fmt.Errorf("ошибка удаления записи %s: %w", id, err)
	}
	return nil
}

func (c *httpClient) ListProducts(ctx context.Context) ([]string, error) {
	var products []string
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{fbscPrefix, "products"},
		out:    &products,
	}); err != nil {
		return nil, fmt.Errorf("ошибка загрузки продуктов: %w", err)
	}
	return products, nil
}

func (c *httpClient) RecordStats(ctx context.Context, from string) (*models.RecordStats, error) {
	var stats models.RecordStats
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{fbscPrefix, "stats"},
		query:  query,
		out:    &stats,
	}); err != nil {
		return nil, fmt.Errorf("ошибка загрузки статистики: %w", err)
	}
	return &stats, nil
}
