package records_test

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// MockAPI is a mock for records.API.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListRecords(ctx context.Context, query url.Values) (*models.RecordPage, error) {
	args := m.Called(ctx, query)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	//nolint:errcheck // Ошибки кастования в моках приемлемы
	return ret.(*models.RecordPage), args.Error(1)
}

func (m *MockAPI) GetRecord(ctx context.Context, id string) (*models.Record, error) {
	args := m.Called(ctx, id)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	//nolint:errcheck // Ошибки кастования в моках приемлемы
	return ret.(*models.Record), args.Error(1)
}

func (m *MockAPI) CreateRecord(ctx context.Context, in models.RecordInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockAPI) UpdateRecord(ctx context.Context, id string, in models.RecordInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockAPI) DeleteRecord(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ListProducts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	//nolint:errcheck // Ошибки кастования в моках приемлемы
	return ret.([]string), args.Error(1)
}

func (m *MockAPI) RecordStats(ctx context.Context, from string) (*models.RecordStats, error) {
	args := m.Called(ctx, from)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	//nolint:errcheck // Ошибки кастования в моках приемлемы
	return ret.(*models.RecordStats), args.Error(1)
}

// pageQuery совпадает с запросом страницы списка (с limit/offset и фильтром продукта).
func pageQuery(offset string) any {
	return mock.MatchedBy(func(q url.Values) bool {
		return q.Has("product") && q.Get("offset") == offset
	})
}

// todayQuery совпадает с запросом количества сегодняшних записей.
func todayQuery(day string) any {
	return mock.MatchedBy(func(q url.Values) bool {
		return !q.Has("product") && q.Get("from") == day && q.Get("to") == day
	})
}

// exportQuery совпадает с запросом выгрузки (фильтр без пагинации).
func exportQuery() any {
	return mock.MatchedBy(func(q url.Values) bool {
		return q.Has("product") && !q.Has("limit") && !q.Has("offset")
	})
}
