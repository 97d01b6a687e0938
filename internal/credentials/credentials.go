// Package credentials - контроллер семейного менеджера паролей: список, форма,
// карточка с расшифровкой по запросу, копирование в буфер обмена и выгрузка без секретов.
package credentials

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

// CategoryKey - имя параметра фильтра по категории.
const CategoryKey = "category"

// FallbackCategories дополняют список категорий с сервера.
//
//nolint:gochecknoglobals // Неизменяемый словарь
var FallbackCategories = []string{
	"social", "banking", "email", "work", "entertainment", "shopping", "education", "other",
}

// Тексты уведомлений загрузки списка.
const (
	MsgListRejected = "Error loading passwords"
	MsgListFailed   = "Failed to load passwords"
	MsgLoadRejected = "Error loading password"
)

// ErrNoPendingDelete - подтверждение удаления без предварительного запроса.
var ErrNoPendingDelete = errors.New("нет пароля, ожидающего удаления")

// API - эндпоинты, которые использует контроллер.
type API interface {
	ListCredentials(ctx context.Context, query url.Values) (*models.CredentialPage, error)
	GetCredential(ctx context.Context, id string) (*models.Credential, error)
	CreateCredential(ctx context.Context, in models.CredentialInput) error
	UpdateCredential(ctx context.Context, id string, in models.CredentialInput) error
	DeleteCredential(ctx context.Context, id string) error
	DecryptCredential(ctx context.Context, id string) (string, error)
	ListCategories(ctx context.Context) ([]string, error)
	CredentialStats(ctx context.Context) (*models.CredentialStats, error)
}

// Clipboard - системный буфер обмена.
type Clipboard interface {
	WriteAll(text string) error
}

// Stats - сводка по паролям.
type Stats struct {
	TotalPasswords   int
	TotalCategories  int
	ExpiredPasswords int
	ExpiringSoon     int
}

// Row - строка таблицы с вычисленным статусом срока действия.
type Row struct {
	models.Credential
	Expiry Expiry
}

// View - снимок состояния для отрисовки.
type View struct {
	Rows          []Row
	Window        listing.Window
	Page          int
	Filter        listing.Filter
	Stats         Stats
	Categories    []string
	Modal         listing.ModalMode
	PendingDelete string
	Loaded        bool
}

// Controller управляет экраном паролей. Секрет хранится только в состоянии открытой карточки
// и удаляется при ее закрытии.
type Controller struct {
	api       API
	clipboard Clipboard
	now       func() time.Time
	list      *listing.List[models.Credential]

	mu            sync.Mutex
	stats         Stats
	categories    *suggest.Vocabulary
	modal         listing.Modal
	pendingDelete string
	detail        detailState

	statsSeq      listing.Sequencer
	categoriesSeq listing.Sequencer
	detailSeq     listing.Sequencer
}

// Option настраивает Controller.
type Option func(*Controller)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New создает контроллер.
func New(api API, clipboard Clipboard, pageSize int, opts ...Option) *Controller {
	c := &Controller{
		api:        api,
		clipboard:  clipboard,
		now:        time.Now,
		categories: suggest.New(FallbackCategories...),
	}
	c.list = listing.NewList("passwords", pageSize, c.fetchPage)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Today - текущая дата по часам контроллера.
func (c *Controller) Today() models.Date {
	return models.Today(c.now())
}

// View возвращает снимок состояния. Статус срока действия вычисляется заново при каждом вызове.
func (c *Controller) View() View {
	snap := c.list.Snapshot()
	today := c.Today()
	rows := make([]Row, len(snap.Items))
	for i, cred := range snap.Items {
		rows[i] = Row{Credential: cred, Expiry: Classify(cred, today)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Rows:          rows,
		Window:        snap.Window,
		Page:          snap.Page,
		Filter:        snap.Filter,
		Stats:         c.stats,
		Categories:    c.categories.Items(),
		Modal:         c.modal.Mode(),
		PendingDelete: c.pendingDelete,
		Loaded:        snap.Loaded,
	}
}

// Init загружает категории, статистику и первую страницу.
func (c *Controller) Init(ctx context.Context) error {
	_ = c.LoadCategories(ctx)
	_ = c.LoadStats(ctx)
	return c.Load(ctx)
}

// Load перезапрашивает текущую страницу.
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

// ResetFilter сбрасывает фильтр.
func (c *Controller) ResetFilter(ctx context.Context) error {
	return c.ApplyFilter(ctx, listing.DefaultFilter())
}

func (c *Controller) NextPage(ctx context.Context) error { return c.list.Next(ctx) }

func (c *Controller) PrevPage(ctx context.Context) error { return c.list.Prev(ctx) }

func (c *Controller) fetchPage(
	ctx context.Context,
	f listing.Filter,
	cursor listing.Cursor,
) ([]models.Credential, models.Pagination, error) {
	page, err := c.api.ListCredentials(ctx, listing.Merge(f.Values(CategoryKey), cursor.Values()))
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return page.Passwords, page.Pagination, nil
}

// LoadStats загружает сводку. При ошибке остается предыдущая.
func (c *Controller) LoadStats(ctx context.Context) error {
	seq := c.statsSeq.Next()
	resp, err := c.api.CredentialStats(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.statsSeq.IsLatest(seq) {
		return listing.ErrStale
	}
	if err != nil {
		slog.Warn("Ошибка загрузки статистики паролей", "error", err)
		return err
	}
	c.stats = Stats{
		TotalPasswords:   resp.TotalPasswords.Int(),
		TotalCategories:  resp.TotalCategories.Int(),
		ExpiredPasswords: resp.ExpiredPasswords.Int(),
		ExpiringSoon:     resp.ExpiringSoon.Int(),
	}
	return nil
}

// LoadCategories загружает категории. Без ответа сервера используется запасной набор.
func (c *Controller) LoadCategories(ctx context.Context) error {
	seq := c.categoriesSeq.Next()
	cats, err := c.api.ListCategories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.categoriesSeq.IsLatest(seq) {
		return listing.ErrStale
	}
	if err != nil {
		slog.Warn("Ошибка загрузки категорий, используется запасной список", "error", err)
		c.categories.UseFallback()
		return err
	}
	c.categories.Replace(cats)
	return nil
}

// QuickCategories - варианты быстрого выбора категории.
func (c *Controller) QuickCategories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories.Quick(suggest.QuickPickSize)
}

// SuggestCategories - подсказки по введенному тексту.
func (c *Controller) SuggestCategories(query string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories.Match(query)
}

// refresh перезагружает список и статистику после изменения данных.
func (c *Controller) refresh(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		slog.Warn("Не удалось обновить список паролей после изменения", "error", err)
	}
	_ = c.LoadStats(ctx)
}
