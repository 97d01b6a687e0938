// Package records - контроллер продаж FBSC: список с фильтром и пагинацией,
// форма создания/редактирования, удаление с подтверждением, статистика и выгрузка в CSV.
package records

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/listing"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/suggest"
)

// ProductKey - имя параметра фильтра по продукту.
const ProductKey = "product"

// FallbackProducts дополняют список продуктов с сервера.
//
//nolint:gochecknoglobals // Неизменяемый словарь
var FallbackProducts = []string{"Sports Shoes", "T-Shirts", "Track Pants", "Socks", "Caps", "Water Bottles"}

// Тексты уведомлений загрузки списка.
const (
	MsgListRejected = "Error loading records"
	MsgListFailed   = "Failed to load records"
)

// ErrNoPendingDelete - подтверждение удаления без предварительного запроса.
var ErrNoPendingDelete = errors.New("нет записи, ожидающей удаления")

// API - эндпоинты, которые использует контроллер.
type API interface {
	ListRecords(ctx context.Context, query url.Values) (*models.RecordPage, error)
	GetRecord(ctx context.Context, id string) (*models.Record, error)
	CreateRecord(ctx context.Context, in models.RecordInput) error
	UpdateRecord(ctx context.Context, id string, in models.RecordInput) error
	DeleteRecord(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]string, error)
	RecordStats(ctx context.Context, from string) (*models.RecordStats, error)
}

// Stats - сводка за сегодня.
type Stats struct {
	TotalOrders   int
	TotalRevenue  models.Money
	AvgOrderValue models.Money
	TodayOrders   int
}

// View - снимок состояния для отрисовки.
type View struct {
	Records       []models.Record
	Window        listing.Window
	Page          int
	Filter        listing.Filter
	Stats         Stats
	Products      []string
	Modal         listing.ModalMode
	PendingDelete string
	Loaded        bool
}

// Controller управляет экраном продаж. Методы безопасны для вызова из разных горутин:
// состояние читается под блокировкой, сетевой вызов идет без нее, а результат
// применяется, только если за это время не был выпущен более новый запрос той же операции.
type Controller struct {
	api    API
	userID string
	now    func() time.Time
	list   *listing.List[models.Record]

	mu            sync.Mutex
	stats         Stats
	products      *suggest.Vocabulary
	modal         listing.Modal
	pendingDelete string

	statsSeq    listing.Sequencer
	productsSeq listing.Sequencer
}

// Option настраивает Controller.
type Option func(*Controller)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New создает контроллер. userID передается в запросы списка как user_id.
func New(api API, userID string, pageSize int, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		userID:   userID,
		now:      time.Now,
		products: suggest.New(FallbackProducts...),
	}
	c.list = listing.NewList("records", pageSize, c.fetchPage)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Today - текущая дата по часам контроллера.
func (c *Controller) Today() models.Date {
	return models.Today(c.now())
}

// View возвращает снимок текущего состояния.
func (c *Controller) View() View {
	snap := c.list.Snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Records:       snap.Items,
		Window:        snap.Window,
		Page:          snap.Page,
		Filter:        snap.Filter,
		Stats:         c.stats,
		Products:      c.products.Items(),
		Modal:         c.modal.Mode(),
		PendingDelete: c.pendingDelete,
		Loaded:        snap.Loaded,
	}
}

// Init загружает продукты, статистику и первую страницу.
// Ошибки продуктов и статистики только логируются, ошибка списка возвращается.
func (c *Controller) Init(ctx context.Context) error {
	_ = c.LoadProducts(ctx)
	_ = c.LoadStats(ctx)
	return c.Load(ctx)
}

// Load перезапрашивает текущую страницу с текущим фильтром.
func (c *Controller) Load(ctx context.Context) error {
	return c.list.Load(ctx)
}

// ApplyFilter применяет фильтр, возвращается на первую страницу и обновляет статистику.
func (c *Controller) ApplyFilter(ctx context.Context, f listing.Filter) error {
	if err := c.list.Apply(ctx, f); err != nil {
		return err
	}
	_ = c.LoadStats(ctx)
	return nil
}

// ResetFilter сбрасывает фильтр к значениям по умолчанию.
func (c *Controller) ResetFilter(ctx context.Context) error {
	return c.ApplyFilter(ctx, listing.DefaultFilter())
}

// NextPage переходит на следующую страницу. На последней странице ничего не делает.
func (c *Controller) NextPage(ctx context.Context) error {
	return c.list.Next(ctx)
}

// PrevPage переходит на предыдущую страницу. На первой странице ничего не делает.
func (c *Controller) PrevPage(ctx context.Context) error {
	return c.list.Prev(ctx)
}

func (c *Controller) fetchPage(
	ctx context.Context,
	f listing.Filter,
	cursor listing.Cursor,
) ([]models.Record, models.Pagination, error) {
	page, err := c.api.ListRecords(ctx, listing.Merge(c.filterQuery(f), cursor.Values()))
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return page.Records, page.Pagination, nil
}

// filterQuery - параметры фильтра и user_id, без пагинации.
func (c *Controller) filterQuery(f listing.Filter) url.Values {
	query := f.Values(ProductKey)
	if c.userID != "" {
		query.Set("user_id", c.userID)
	}
	return query
}

// LoadStats загружает сводку за сегодня и количество сегодняшних записей.
// При ошибке остается предыдущая сводка.
func (c *Controller) LoadStats(ctx context.Context) error {
	seq := c.statsSeq.Next()
	today := c.Today().String()

	resp, err := c.api.RecordStats(ctx, today)
	if err != nil {
		slog.Warn("Ошибка загрузки статистики", "error", err)
		return err
	}

	todayQuery := url.Values{}
	todayQuery.Set("from", today)
	todayQuery.Set("to", today)
	todayQuery.Set("limit", "1")
	todayPage, todayErr := c.api.ListRecords(ctx, todayQuery)
	if todayErr != nil {
		slog.Warn("Ошибка загрузки сегодняшних записей", "error", todayErr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.statsSeq.IsLatest(seq) {
		return listing.ErrStale
	}
	todayOrders := c.stats.TodayOrders
	if todayErr == nil {
		todayOrders = todayPage.Pagination.Total.Int()
	}
	c.stats = Stats{
		TotalOrders:   resp.Revenue.TotalOrders.Int(),
		TotalRevenue:  resp.Revenue.TotalRevenue,
		AvgOrderValue: resp.Revenue.AvgOrderValue,
		TodayOrders:   todayOrders,
	}
	return todayErr
}

// LoadProducts загружает названия продуктов. Без ответа сервера используется запасной набор.
func (c *Controller) LoadProducts(ctx context.Context) error {
	seq := c.productsSeq.Next()
	products, err := c.api.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.productsSeq.IsLatest(seq) {
		return listing.ErrStale
	}
	if err != nil {
		slog.Warn("Ошибка загрузки продуктов, используется запасной список", "error", err)
		c.products.UseFallback()
		return err
	}
	c.products.Replace(products)
	return nil
}

// QuickProducts - варианты быстрого выбора продукта.
func (c *Controller) QuickProducts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products.Quick(suggest.QuickPickSize)
}

// SuggestProducts - подсказки по введенному тексту.
func (c *Controller) SuggestProducts(query string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products.Match(query)
}
