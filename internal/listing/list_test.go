package listing_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/listing"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// fakeSource отдает числа 1..total страницами и запоминает запросы.
type fakeSource struct {
	total int
	fail  bool
	calls []listing.Cursor
}

func (s *fakeSource) fetch(_ context.Context, _ listing.Filter, c listing.Cursor) ([]int, models.Pagination, error) {
	s.calls = append(s.calls, c)
	if s.fail {
		return nil, models.Pagination{}, errors.New("offline")
	}
	var items []int
	for i := c.Offset(); i < min(c.Offset()+c.Limit(), s.total); i++ {
		items = append(items, i+1)
	}
	return items, models.Pagination{
		Total:  models.Count(s.total),
		Limit:  models.Count(c.Limit()),
		Offset: models.Count(c.Offset()),
	}, nil
}

func TestList_Paging(t *testing.T) {
	src := &fakeSource{total: 25}
	l := listing.NewList("numbers", 10, src.fetch)
	ctx := context.Background()

	require.NoError(t, l.Load(ctx))
	snap := l.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, snap.Items)

	require.NoError(t, l.Next(ctx))
	require.NoError(t, l.Next(ctx))
	snap = l.Snapshot()
	assert.Equal(t, 3, snap.Page)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, snap.Items)
	assert.False(t, snap.Window.HasNext)

	require.NoError(t, l.Next(ctx))
	assert.Len(t, src.calls, 3, "за последней страницей запрос не отправляется")

	require.NoError(t, l.Prev(ctx))
	assert.Equal(t, 2, l.Snapshot().Page)
}

func TestList_ApplyResetsPage(t *testing.T) {
	src := &fakeSource{total: 50}
	l := listing.NewList("numbers", 10, src.fetch)
	ctx := context.Background()

	require.NoError(t, l.Load(ctx))
	require.NoError(t, l.Next(ctx))
	require.NoError(t, l.Apply(ctx, listing.Filter{Search: " x "}))
	snap := l.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, "x", snap.Filter.Search)
	assert.Equal(t, listing.All, snap.Filter.Category)

	require.NoError(t, l.Reset(ctx))
	assert.True(t, l.Filter().IsDefault())
}

func TestList_FailureKeepsState(t *testing.T) {
	src := &fakeSource{total: 30}
	l := listing.NewList("numbers", 10, src.fetch)
	ctx := context.Background()
	require.NoError(t, l.Load(ctx))

	src.fail = true
	require.Error(t, l.Next(ctx))
	require.Error(t, l.Apply(ctx, listing.Filter{Search: "y"}))

	snap := l.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.Empty(t, snap.Filter.Search)
	assert.Len(t, snap.Items, 10)

	src.fail = false
	require.NoError(t, l.Next(ctx))
	assert.Equal(t, 2, l.Snapshot().Page, "после ошибки навигация идет от показанной страницы")
}

func TestList_RapidNextCountsPendingRequest(t *testing.T) {
	src := &fakeSource{total: 50}
	var (
		mu      sync.Mutex
		gate    chan struct{}
		started = make(chan int, 2)
	)
	fetch := func(ctx context.Context, f listing.Filter, c listing.Cursor) ([]int, models.Pagination, error) {
		if gate != nil {
			started <- c.Page
			<-gate
		}
		mu.Lock()
		defer mu.Unlock()
		return src.fetch(ctx, f, c)
	}
	l := listing.NewList("numbers", 10, fetch)
	ctx := context.Background()
	require.NoError(t, l.Load(ctx))

	gate = make(chan struct{})
	errs := make(chan error, 2)
	go func() { errs <- l.Next(ctx) }()
	first := <-started
	go func() { errs <- l.Next(ctx) }()
	second := <-started
	close(gate)

	stale := 0
	for range 2 {
		if err := <-errs; errors.Is(err, listing.ErrStale) {
			stale++
		} else {
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 2, first)
	assert.Equal(t, 3, second, "второй Next считается от еще не пришедшей страницы")
	assert.Equal(t, 1, stale)
	assert.Equal(t, 3, l.Snapshot().Page)
	assert.Equal(t, []int{21, 22, 23, 24, 25, 26, 27, 28, 29, 30}, l.Snapshot().Items)
}

func TestList_InvalidFilterSkipsFetch(t *testing.T) {
	src := &fakeSource{total: 30}
	l := listing.NewList("numbers", 10, src.fetch)
	err := l.Apply(context.Background(), listing.Filter{From: "bad"})
	require.Error(t, err)
	assert.Empty(t, src.calls)
}
