// Package listing содержит общую для контроллеров логику списков:
// фильтр, курсор страницы, расчет окна пагинации и защиту от устаревших ответов.
package listing

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// DefaultPageSize - размер страницы по умолчанию.
const DefaultPageSize = 20

// All - значение фильтра категории/продукта "без фильтра".
const All = "all"

// ErrStale возвращается, когда ответ пришел после более нового запроса той же операции.
var ErrStale = errors.New("ответ устарел: выполнен более новый запрос")

// Filter - критерии сужения списка. Применяются на сервере.
type Filter struct {
	Search   string
	Category string // Продукт (записи) или категория (пароли); All - без фильтра
	From     string // 2006-01-02
	To       string // 2006-01-02
}

// DefaultFilter возвращает пустой фильтр.
func DefaultFilter() Filter {
	return Filter{Category: All}
}

// Normalized обрезает пробелы и подставляет All вместо пустой категории.
func (f Filter) Normalized() Filter {
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)
	if f.Category == "" {
		f.Category = All
	}
	f.From = strings.TrimSpace(f.From)
	f.To = strings.TrimSpace(f.To)
	return f
}

// IsDefault сообщает, что фильтр ничего не сужает.
func (f Filter) IsDefault() bool {
	return f.Normalized() == DefaultFilter()
}

// Validate проверяет диапазон дат.
func (f Filter) Validate() error {
	from, err := models.ParseDate(f.From)
	if err != nil {
		return feedback.Invalid("Invalid start date, use YYYY-MM-DD")
	}
	to, err := models.ParseDate(f.To)
	if err != nil {
		return feedback.Invalid("Invalid end date, use YYYY-MM-DD")
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return feedback.Invalid("End date must not be before start date")
	}
	return nil
}

// Values кодирует фильтр в параметры запроса. categoryKey - "product" или "category".
// Сентинел All отправляется как есть, пустые поля опускаются.
func (f Filter) Values(categoryKey string) url.Values {
	f = f.Normalized()
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	v.Set(categoryKey, f.Category)
	if f.From != "" {
		v.Set("from", f.From)
	}
	if f.To != "" {
		v.Set("to", f.To)
	}
	return v
}

// Cursor - номер текущей страницы (с 1) и фиксированный размер страницы.
type Cursor struct {
	Page int
	Size int
}

// NewCursor возвращает курсор на первую страницу.
func NewCursor(size int) Cursor {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Cursor{Page: 1, Size: size}
}

// Offset = (Page-1) * Size.
func (c Cursor) Offset() int {
	if c.Page < 1 {
		return 0
	}
	return (c.Page - 1) * c.Size
}

func (c Cursor) Limit() int { return c.Size }

// Values кодирует курсор в limit/offset.
func (c Cursor) Values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(c.Limit()))
	v.Set("offset", strconv.Itoa(c.Offset()))
	return v
}

// Next переходит на следующую страницу.
func (c *Cursor) Next() { c.Page++ }

// Prev переходит на предыдущую страницу. На первой странице ничего не делает и возвращает false.
func (c *Cursor) Prev() bool {
	if c.Page <= 1 {
		return false
	}
	c.Page--
	return true
}

// Reset возвращает курсор на первую страницу.
func (c *Cursor) Reset() { c.Page = 1 }

// Window - видимое окно списка: "Showing Start-End of Total".
type Window struct {
	Start   int
	End     int
	Total   int
	HasPrev bool
	HasNext bool
}

// NewWindow считает окно по курсору и ответу сервера.
// Если сервер не вернул limit, используются значения курсора.
func NewWindow(c Cursor, p models.Pagination) Window {
	total := p.Total.Int()
	limit, offset := p.Limit.Int(), p.Offset.Int()
	if limit <= 0 {
		limit, offset = c.Limit(), c.Offset()
	}
	end := min(offset+limit, total)
	start := offset + 1
	if total == 0 {
		start = 0
	}
	return Window{
		Start:   start,
		End:     end,
		Total:   total,
		HasPrev: c.Page > 1,
		HasNext: end < total,
	}
}

// Merge объединяет параметры запросов (фильтр, курсор, user_id и т.п.).
func Merge(sets ...url.Values) url.Values {
	out := url.Values{}
	for _, set := range sets {
		for k, vs := range set {
			for _, v := range vs {
				out.Add(k, v)
			}
		}
	}
	return out
}

// Sequencer выдает возрастающие номера запросов одной операции.
// Ответ применяется, только если его номер все еще последний выданный.
type Sequencer struct {
	last atomic.Uint64
}

// Next регистрирует новый запрос и возвращает его номер.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// IsLatest сообщает, что после запроса n новых запросов не было.
func (s *Sequencer) IsLatest(n uint64) bool {
	return s.last.Load() == n
}
