package credentials_test

import (
	"context"
	"net/url"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// MockAPI is a mock for credentials.API.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListCredentials(ctx context.Context, query url.Values) (*models.CredentialPage, error) {
	args := m.Called(ctx, query)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	//nolint:errcheck // Ошибки кастования в моках приемлемы
	return ret.(*models.CredentialPage), args.Error(1)
}

func (m *MockAPI) GetCredential(ctx context.Context, id string) (*models.Credential, error) {
	args := m.Called(ctx, id)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	//nolint:errcheck // Ошибки кастования в моках приемлемы
	return ret.(*models.Credential), args.Error(1)
}

func (m *MockAPI) CreateCredential(ctx context.Context, in models.CredentialInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockAPI) UpdateCredential(ctx context.Context, id string, in models.CredentialInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockAPI) DeleteCredential(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) DecryptCredential(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	//nolint:errcheck // Ошибки кастования в моках приемлемы
	return ret.([]string), args.Error(1)
}

func (m *MockAPI) CredentialStats(ctx context.Context) (*models.CredentialStats, error) {
	args := m.Called(ctx)
	ret := args.Get(0)
	if ret == nil {
		return nil, args.Error(1)
	}
	//nolint:errcheck // Ошибки кастования в моках приемлемы
	return ret.(*models.CredentialStats), args.Error(1)
}

// fakeClipboard запоминает последнее записанное значение.
type fakeClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func (f *fakeClipboard) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// listQuery совпадает с запросом страницы списка.
func listQuery(offset string) any {
	return mock.MatchedBy(func(q url.Values) bool {
		return q.Has("category") && q.Get("offset") == offset && q.Get("limit") == "20"
	})
}

// exportQuery совпадает с запросом выгрузки.
func exportQuery() any {
	return mock.MatchedBy(func(q url.Values) bool {
		return q.Has("category") && q.Get("limit") == "1000" && !q.Has("offset")
	})
}
