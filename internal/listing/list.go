package listing

import (
	"context"
	"log/slog"
	"sync"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// FetchFunc запрашивает одну страницу списка.
type FetchFunc[T any] func(ctx context.Context, f Filter, c Cursor) ([]T, models.Pagination, error)

// Snapshot - копия состояния списка для отрисовки.
type Snapshot[T any] struct {
	Items  []T
	Window Window
	Page   int
	Filter Filter
	Loaded bool
}

// List - постраничный список с серверной фильтрацией.
// Фильтр и курсор фиксируются только вместе с успешным и актуальным ответом:
// неудачная или устаревшая загрузка оставляет на экране прежнюю страницу.
// Навигация отсчитывается от последнего отправленного запроса, поэтому
// два быстрых Next подряд приводят на две страницы вперед.
type List[T any] struct {
	name  string
	fetch FetchFunc[T]
	seq   Sequencer

	mu     sync.Mutex
	filter Filter
	cursor Cursor
	items  []T
	window Window
	loaded bool

	// последний отправленный запрос
	wantFilter Filter
	wantCursor Cursor
}

// NewList создает пустой список. name используется в логах.
func NewList[T any](name string, pageSize int, fetch FetchFunc[T]) *List[T] {
	l := &List[T]{
		name:   name,
		fetch:  fetch,
		filter: DefaultFilter(),
		cursor: NewCursor(pageSize),
	}
	l.wantFilter, l.wantCursor = l.filter, l.cursor
	return l
}

// Snapshot возвращает копию текущего состояния.
func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot[T]{
		Items:  append([]T(nil), l.items...),
		Window: l.window,
		Page:   l.cursor.Page,
		Filter: l.filter,
		Loaded: l.loaded,
	}
}

// Filter возвращает примененный фильтр.
func (l *List[T]) Filter() Filter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// wanted возвращает фильтр и курсор последнего отправленного запроса
// и общее число элементов по последнему примененному ответу.
func (l *List[T]) wanted() (Filter, Cursor, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.wantFilter, l.wantCursor, l.window.Total
}

// Load перезапрашивает текущую страницу.
func (l *List[T]) Load(ctx context.Context) error {
	f, c, _ := l.wanted()
	return l.load(ctx, f, c)
}

// Apply проверяет и применяет фильтр, возвращаясь на первую страницу.
func (l *List[T]) Apply(ctx context.Context, f Filter) error {
	if err := f.Validate(); err != nil {
		return err
	}
	_, c, _ := l.wanted()
	c.Reset()
	return l.load(ctx, f.Normalized(), c)
}

// Reset сбрасывает фильтр.
func (l *List[T]) Reset(ctx context.Context) error {
	return l.Apply(ctx, DefaultFilter())
}

// Next переходит на следующую страницу. Если ее нет, ничего не делает.
func (l *List[T]) Next(ctx context.Context) error {
	f, c, total := l.wanted()
	if c.Offset()+c.Limit() >= total {
		return nil
	}
	c.Next()
	return l.load(ctx, f, c)
}

// Prev переходит на предыдущую страницу. На первой странице ничего не делает.
func (l *List[T]) Prev(ctx context.Context) error {
	f, c, _ := l.wanted()
	if !c.Prev() {
		return nil
	}
	return l.load(ctx, f, c)
}

func (l *List[T]) load(ctx context.Context, f Filter, c Cursor) error {
	l.mu.Lock()
	seq := l.seq.Next()
	l.wantFilter, l.wantCursor = f, c
	l.mu.Unlock()

	items, pg, err := l.fetch(ctx, f, c)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.seq.IsLatest(seq) {
		slog.Debug("Отброшен устаревший ответ", "list", l.name, "page", c.Page)
		return ErrStale
	}
	if err != nil {
		l.wantFilter, l.wantCursor = l.filter, l.cursor
		slog.Error("Ошибка загрузки списка", "list", l.name, "page", c.Page, "error", err)
		return err
	}
	l.filter = f
	l.cursor = c
	l.items = items
	l.window = NewWindow(c, pg)
	l.loaded = true
	return nil
}
