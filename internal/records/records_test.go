package records_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/api"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/csvexport"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/listing"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/records"
)

const (
	testUserID = "7"
	testToday  = "2026-10-18"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
}

func newController(m *MockAPI) *records.Controller {
	return records.New(m, testUserID, listing.DefaultPageSize, records.WithClock(fixedClock))
}

// makePage возвращает страницу из n записей при общем количестве total.
func makePage(n, total, offset int) *models.RecordPage {
	page := &models.RecordPage{
		Pagination: models.Pagination{
			Total:  models.Count(total),
			Limit:  models.Count(listing.DefaultPageSize),
			Offset: models.Count(offset),
		},
	}
	for i := range n {
		page.Records = append(page.Records, models.Record{
			ID:           models.ID(fmt.Sprint(offset + i + 1)),
			CustomerName: fmt.Sprintf("Customer %d", offset+i+1),
			Product:      "Socks",
			Price:        10,
			RecordDate:   models.MustParseDate(testToday),
		})
	}
	return page
}

func expectStats(m *MockAPI, today int) {
	m.On("RecordStats", mock.Anything, testToday).Return(&models.RecordStats{
		Revenue: models.Revenue{TotalOrders: 4, TotalRevenue: 114, AvgOrderValue: 28.5},
	}, nil)
	m.On("ListRecords", mock.Anything, todayQuery(testToday)).
		Return(&models.RecordPage{Pagination: models.Pagination{Total: models.Count(today)}}, nil)
}

func TestController_Init(t *testing.T) {
	m := new(MockAPI)
	m.On("ListProducts", mock.Anything).Return([]string{"Boots", "Socks"}, nil)
	expectStats(m, 2)
	m.On("ListRecords", mock.Anything, mock.MatchedBy(func(q url.Values) bool {
		return q.Get("product") == "all" && q.Get("user_id") == testUserID &&
			q.Get("limit") == "20" && q.Get("offset") == "0" && !q.Has("search")
	})).Return(makePage(20, 45, 0), nil)

	c := newController(m)
	require.NoError(t, c.Init(context.Background()))

	v := c.View()
	assert.True(t, v.Loaded)
	assert.Len(t, v.Records, 20)
	assert.Equal(t, listing.Window{Start: 1, End: 20, Total: 45, HasNext: true}, v.Window)
	assert.Equal(t, records.Stats{TotalOrders: 4, TotalRevenue: 114, AvgOrderValue: 28.5, TodayOrders: 2}, v.Stats)
	assert.Equal(t, []string{"Boots", "Socks", "Sports Shoes", "T-Shirts", "Track Pants", "Caps", "Water Bottles"}, v.Products)
	m.AssertExpectations(t)
}

func TestController_ProductsFallback(t *testing.T) {
	m := new(MockAPI)
	m.On("ListProducts", mock.Anything).Return(nil, errors.New("offline"))

	c := newController(m)
	require.Error(t, c.LoadProducts(context.Background()))
	assert.Equal(t, records.FallbackProducts, c.View().Products)
	assert.Len(t, c.QuickProducts(), len(records.FallbackProducts))
	assert.Equal(t, []string{"Track Pants"}, c.SuggestProducts("pants"))
}

func TestController_StatsFailure(t *testing.T) {
	m := new(MockAPI)
	m.On("RecordStats", mock.Anything, testToday).Return(nil, errors.New("down"))

	c := newController(m)
	require.Error(t, c.LoadStats(context.Background()))
	assert.Equal(t, records.Stats{}, c.View().Stats)
	m.AssertNotCalled(t, "ListRecords", mock.Anything, mock.Anything)
}

func TestController_Pagination(t *testing.T) {
	m := new(MockAPI)
	m.On("ListRecords", mock.Anything, pageQuery("0")).Return(makePage(20, 25, 0), nil)
	m.On("ListRecords", mock.Anything, pageQuery("20")).Return(makePage(5, 25, 20), nil)
	ctx := context.Background()

	c := newController(m)
	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.PrevPage(ctx), "на первой странице назад - ничего не делает")
	assert.Equal(t, 1, c.View().Page)

	require.NoError(t, c.NextPage(ctx))
	v := c.View()
	assert.Equal(t, 2, v.Page)
	assert.Equal(t, listing.Window{Start: 21, End: 25, Total: 25, HasPrev: true}, v.Window)

	require.NoError(t, c.NextPage(ctx), "на последней странице вперед - ничего не делает")
	assert.Equal(t, 2, c.View().Page)
	m.AssertNumberOfCalls(t, "ListRecords", 2)

	require.NoError(t, c.PrevPage(ctx))
	assert.Equal(t, 1, c.View().Page)
}

func TestController_FailedPageKeepsState(t *testing.T) {
	m := new(MockAPI)
	m.On("ListRecords", mock.Anything, pageQuery("0")).Return(makePage(20, 40, 0), nil)
	m.On("ListRecords", mock.Anything, pageQuery("20")).Return(nil, &api.Error{StatusCode: 500})
	ctx := context.Background()

	c := newController(m)
	require.NoError(t, c.Load(ctx))
	err := c.NextPage(ctx)
	require.Error(t, err)
	assert.Equal(t, "Error loading records", feedback.Message(err, "Error loading records"))
	assert.Equal(t, 1, c.View().Page)
	assert.Len(t, c.View().Records, 20)
}

func TestController_EmptyList(t *testing.T) {
	m := new(MockAPI)
	m.On("ListRecords", mock.Anything, mock.Anything).Return(&models.RecordPage{}, nil)

	c := newController(m)
	require.NoError(t, c.Load(context.Background()))
	v := c.View()
	assert.True(t, v.Loaded)
	assert.Empty(t, v.Records)
	assert.Equal(t, listing.Window{}, v.Window)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	m := new(MockAPI)
	release := make(chan struct{})
	started := make(chan struct{})

	// Первый запрос (search=old) зависает, пока второй (search=new) не завершится.
	m.On("ListRecords", mock.Anything, mock.MatchedBy(func(q url.Values) bool {
		return q.Get("search") == "old"
	})).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(makePage(1, 1, 0), nil)
	m.On("ListRecords", mock.Anything, mock.MatchedBy(func(q url.Values) bool {
		return q.Get("search") == "new"
	})).Return(makePage(3, 3, 0), nil)
	m.On("RecordStats", mock.Anything, testToday).Return(nil, errors.New("skip"))

	c := newController(m)
	ctx := context.Background()

	errCh := make(chan error, 1)
	go func() { errCh <- c.ApplyFilter(ctx, listing.Filter{Search: "old"}) }()
	<-started

	require.NoError(t, c.ApplyFilter(ctx, listing.Filter{Search: "new"}))
	close(release)
	require.ErrorIs(t, <-errCh, listing.ErrStale)

	v := c.View()
	assert.Len(t, v.Records, 3)
	assert.Equal(t, "new", v.Filter.Search)
}

func TestController_ApplyAndResetFilter(t *testing.T) {
	m := new(MockAPI)
	m.On("ListRecords", mock.Anything, mock.MatchedBy(func(q url.Values) bool {
		return q.Get("product") == "Caps" && q.Get("from") == "2026-10-01" && q.Get("offset") == "0"
	})).Return(makePage(2, 2, 0), nil)
	m.On("ListRecords", mock.Anything, mock.MatchedBy(func(q url.Values) bool {
		return q.Get("product") == "all" && !q.Has("from") && q.Has("limit")
	})).Return(makePage(5, 5, 0), nil)
	expectStats(m, 1)
	ctx := context.Background()

	c := newController(m)
	err := c.ApplyFilter(ctx, listing.Filter{From: "2026-10-05", To: "2026-10-01"})
	require.True(t, feedback.IsValidation(err))
	m.AssertNotCalled(t, "ListRecords", mock.Anything, mock.Anything)

	require.NoError(t, c.ApplyFilter(ctx, listing.Filter{Category: "Caps", From: "2026-10-01"}))
	assert.Len(t, c.View().Records, 2)
	assert.Equal(t, 1, c.View().Stats.TodayOrders)

	require.NoError(t, c.ResetFilter(ctx))
	assert.True(t, c.View().Filter.IsDefault())
	assert.Len(t, c.View().Records, 5)
}

func TestValidate(t *testing.T) {
	valid := records.Form{CustomerName: " Ann ", Product: "Caps", Price: "12.5", RecordDate: testToday}

	tests := []struct {
		name    string
		mutate  func(f *records.Form)
		wantErr string
	}{
		{"Нет имени клиента", func(f *records.Form) { f.CustomerName = "  " }, records.MsgRequired},
		{"Нет продукта", func(f *records.Form) { f.Product = "" }, records.MsgRequired},
		{"Нет даты", func(f *records.Form) { f.RecordDate = "" }, records.MsgRequired},
		{"Нет цены", func(f *records.Form) { f.Price = "" }, records.MsgRequired},
		{"Нулевая цена", func(f *records.Form) { f.Price = "0" }, records.MsgRequired},
		{"Цена не число", func(f *records.Form) { f.Price = "abc" }, records.MsgRequired},
		{"Отрицательная цена", func(f *records.Form) { f.Price = "-3" }, records.MsgPricePositive},
		{"Неверная дата", func(f *records.Form) { f.RecordDate = "18/10/2026" }, records.MsgInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			_, err := records.Validate(f)
			require.Error(t, err)
			assert.True(t, feedback.IsValidation(err))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}

	in, err := records.Validate(valid)
	require.NoError(t, err)
	assert.Equal(t, models.RecordInput{
		CustomerName: "Ann", Product: "Caps", Pair: 1, Price: 12.5, RecordDate: testToday,
	}, in)

	valid.Pair = "3"
	in, err = records.Validate(valid)
	require.NoError(t, err)
	assert.Equal(t, 3, in.Pair)

	valid.Pair = "-2"
	in, err = records.Validate(valid)
	require.NoError(t, err)
	assert.Equal(t, 1, in.Pair)
}

func TestController_SubmitInvalidDoesNotCallAPI(t *testing.T) {
	m := new(MockAPI)
	c := newController(m)
	c.OpenCreate()

	notice, err := c.Submit(context.Background(), records.Form{CustomerName: "Ann", Product: "Caps", Price: "-1", RecordDate: testToday})
	require.Error(t, err)
	assert.Equal(t, feedback.Warn(records.MsgPricePositive), notice)
	m.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything)
	assert.Equal(t, listing.ModalCreate, c.View().Modal, "форма остается открытой")
}

func TestController_SubmitCreate(t *testing.T) {
	m := new(MockAPI)
	want := models.RecordInput{CustomerName: "Ann", Product: "Hoodies", Pair: 2, Price: 40, RecordDate: testToday, Notes: "gift"}
	m.On("CreateRecord", mock.Anything, want).Return(nil).Once()
	m.On("ListRecords", mock.Anything, pageQuery("0")).Return(makePage(1, 1, 0), nil)
	expectStats(m, 1)

	c := newController(m)
	form := c.OpenCreate()
	assert.Equal(t, testToday, form.RecordDate)
	assert.Equal(t, "1", form.Pair)

	form.CustomerName, form.Product, form.Pair, form.Price, form.Notes = "Ann", "Hoodies", "2", "40", " gift "
	notice, err := c.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, feedback.Ok(records.MsgCreated), notice)

	v := c.View()
	assert.Equal(t, listing.ModalClosed, v.Modal)
	assert.Contains(t, v.Products, "Hoodies")
	assert.Equal(t, "Hoodies", v.Products[len(v.Products)-1])
	assert.Len(t, v.Records, 1)
	m.AssertExpectations(t)
}

func TestController_SubmitEdit(t *testing.T) {
	m := new(MockAPI)
	m.On("GetRecord", mock.Anything, "5").Return(&models.Record{
		ID: "5", CustomerName: "Bob", Product: "Caps", Price: 7.5, RecordDate: models.MustParseDate("2026-10-01"),
	}, nil)
	m.On("UpdateRecord", mock.Anything, "5", mock.MatchedBy(func(in models.RecordInput) bool {
		return in.CustomerName == "Bobby" && in.Price == 7.5 && in.Pair == 1
	})).Return(nil)
	m.On("ListRecords", mock.Anything, mock.Anything).Return(makePage(1, 1, 0), nil)
	m.On("RecordStats", mock.Anything, testToday).Return(&models.RecordStats{}, nil)

	c := newController(m)
	form, err := c.OpenEdit(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, records.Form{CustomerName: "Bob", Product: "Caps", Pair: "1", Price: "7.5", RecordDate: "2026-10-01"}, form)
	id, editing := c.EditingID()
	assert.True(t, editing)
	assert.Equal(t, "5", id)

	form.CustomerName = "Bobby"
	notice, err := c.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, feedback.Ok(records.MsgUpdated), notice)
	_, editing = c.EditingID()
	assert.False(t, editing, "после успешного сохранения режим редактирования сбрасывается")
	m.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything)
}

func TestController_SubmitFailures(t *testing.T) {
	form := records.Form{CustomerName: "Ann", Product: "Caps", Price: "5", RecordDate: testToday}
	tests := []struct {
		name string
		err  error
		want feedback.Notice
	}{
		{"Сообщение сервера", &api.Error{StatusCode: 400, Message: "Duplicate record"}, feedback.Fail("Duplicate record")},
		{"Ответ без сообщения", &api.Error{StatusCode: 500}, feedback.Fail(records.MsgSaveRejected)},
		{"Сеть недоступна", errors.New("connection refused"), feedback.Fail(records.MsgSaveFailed)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockAPI)
			m.On("CreateRecord", mock.Anything, mock.Anything).Return(tt.err)

			c := newController(m)
			c.OpenCreate()
			notice, err := c.Submit(context.Background(), form)
			require.Error(t, err)
			assert.Equal(t, tt.want, notice)
			assert.Equal(t, listing.ModalCreate, c.View().Modal)
			m.AssertNotCalled(t, "ListRecords", mock.Anything, mock.Anything)
		})
	}
}

func TestController_CloseFormClearsEditing(t *testing.T) {
	m := new(MockAPI)
	m.On("GetRecord", mock.Anything, "9").Return(&models.Record{ID: "9"}, nil)
	c := newController(m)

	_, err := c.OpenEdit(context.Background(), "9")
	require.NoError(t, err)
	c.CloseForm()
	_, editing := c.EditingID()
	assert.False(t, editing)

	m2 := new(MockAPI)
	m2.On("GetRecord", mock.Anything, "404").Return(nil, &api.Error{StatusCode: 404, Message: "Record not found"})
	c2 := newController(m2)
	_, err = c2.OpenEdit(context.Background(), "404")
	require.Error(t, err)
	assert.Equal(t, listing.ModalClosed, c2.View().Modal)
}

func TestController_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Подтверждение без запроса", func(t *testing.T) {
		m := new(MockAPI)
		c := newController(m)
		_, err := c.ConfirmDelete(ctx)
		require.ErrorIs(t, err, records.ErrNoPendingDelete)
		m.AssertNotCalled(t, "DeleteRecord", mock.Anything, mock.Anything)
	})

	t.Run("Отмена", func(t *testing.T) {
		m := new(MockAPI)
		c := newController(m)
		c.RequestDelete("3")
		assert.Equal(t, "3", c.PendingDelete())
		c.CancelDelete()
		assert.Empty(t, c.PendingDelete())
		_, err := c.ConfirmDelete(ctx)
		require.ErrorIs(t, err, records.ErrNoPendingDelete)
	})

	t.Run("Успех", func(t *testing.T) {
		m := new(MockAPI)
		m.On("DeleteRecord", mock.Anything, "3").Return(nil).Once()
		m.On("ListRecords", mock.Anything, pageQuery("0")).Return(makePage(0, 0, 0), nil)
		expectStats(m, 0)

		c := newController(m)
		c.RequestDelete("3")
		notice, err := c.ConfirmDelete(ctx)
		require.NoError(t, err)
		assert.Equal(t, feedback.Ok(records.MsgDeleted), notice)
		assert.Empty(t, c.PendingDelete())
		m.AssertExpectations(t)
	})

	t.Run("Ошибка сервера", func(t *testing.T) {
		m := new(MockAPI)
		m.On("DeleteRecord", mock.Anything, "3").Return(&api.Error{StatusCode: 403, Message: "Not allowed"})
		c := newController(m)
		c.RequestDelete("3")
		notice, err := c.ConfirmDelete(ctx)
		require.Error(t, err)
		assert.Equal(t, feedback.Fail("Not allowed"), notice)
	})

	t.Run("Ошибка без сообщения", func(t *testing.T) {
		m := new(MockAPI)
		m.On("DeleteRecord", mock.Anything, "3").Return(&api.Error{StatusCode: 500})
		c := newController(m)
		c.RequestDelete("3")
		notice, _ := c.ConfirmDelete(ctx)
		assert.Equal(t, feedback.Fail(records.MsgDeleteRejected), notice)
	})
}

func TestController_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("Пустая выборка", func(t *testing.T) {
		dir := t.TempDir()
		m := new(MockAPI)
		m.On("ListRecords", mock.Anything, exportQuery()).Return(&models.RecordPage{}, nil)

		c := newController(m)
		path, notice, err := c.Export(ctx, dir)
		require.ErrorIs(t, err, csvexport.ErrNothingToExport)
		assert.True(t, records.IsEmptyExport(err))
		assert.Empty(t, path)
		assert.Equal(t, feedback.Warn(records.MsgNothingFound), notice)
		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})

	t.Run("N записей - N+1 строк", func(t *testing.T) {
		dir := t.TempDir()
		page := makePage(3, 3, 0)
		page.Records[0].FirstName, page.Records[0].LastName = "Said", "Ali"
		page.Records[1].Notes = `say "hi"`
		m := new(MockAPI)
		m.On("ListRecords", mock.Anything, exportQuery()).Return(page, nil)

		c := newController(m)
		path, notice, err := c.Export(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, feedback.Ok(records.MsgExported), notice)
		assert.Equal(t, filepath.Join(dir, "records-export-2026-10-18.csv"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(string(data), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "Date,Customer,Product,Pair,Price,Added By,Notes", lines[0])
		assert.Equal(t, `2026-10-18,"Customer 1","Socks",1,10.00,"Said Ali",""`, lines[1])
		assert.Equal(t, `2026-10-18,"Customer 2","Socks",1,10.00,"","say ""hi"""`, lines[2])
	})

	t.Run("Ошибка запроса", func(t *testing.T) {
		m := new(MockAPI)
		m.On("ListRecords", mock.Anything, exportQuery()).Return(nil, errors.New("offline"))
		c := newController(m)
		_, notice, err := c.Export(ctx, t.TempDir())
		require.Error(t, err)
		assert.Equal(t, feedback.Fail(records.MsgExportFailed), notice)
	})
}
