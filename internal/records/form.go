package records

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// Тексты уведомлений формы.
const (
	MsgRequired      = "Please fill all required fields"
	MsgPricePositive = "Price must be greater than 0"
	MsgInvalidDate   = "Please enter a valid date (YYYY-MM-DD)"
	MsgCreated       = "Record created successfully"
	MsgUpdated       = "Record updated successfully"
	MsgSaveRejected  = "Error saving record"
	MsgSaveFailed    = "Failed to save record"
	MsgLoadRejected  = "Error loading record"
)

// Form - значения полей формы в том виде, в котором их ввел пользователь.
type Form struct {
	CustomerName string
	Product      string
	Pair         string
	Price        string
	RecordDate   string
	Notes        string
}

// FormFromRecord заполняет форму значениями существующей записи.
func FormFromRecord(r models.Record) Form {
	return Form{
		CustomerName: r.CustomerName,
		Product:      r.Product,
		Pair:         strconv.Itoa(r.Pairs()),
		Price:        strconv.FormatFloat(float64(r.Price), 'f', -1, 64),
		RecordDate:   r.RecordDate.String(),
		Notes:        r.Notes,
	}
}

// Validate проверяет форму и собирает тело запроса.
// Количество пар по умолчанию 1.
func Validate(f Form) (models.RecordInput, error) {
	in := models.RecordInput{
		CustomerName: strings.TrimSpace(f.CustomerName),
		Product:      strings.TrimSpace(f.Product),
		Pair:         1,
		RecordDate:   strings.TrimSpace(f.RecordDate),
		Notes:        strings.TrimSpace(f.Notes),
	}
	if pair, err := strconv.Atoi(strings.TrimSpace(f.Pair)); err == nil && pair > 1 {
		in.Pair = pair
	}

	price, priceErr := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if in.CustomerName == "" || in.Product == "" || in.RecordDate == "" || priceErr != nil || price == 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return models.RecordInput{}, feedback.Invalid(MsgRequired)
	}
	if price < 0 {
		return models.RecordInput{}, feedback.Invalid(MsgPricePositive)
	}
	in.Price = price

	date, err := models.ParseDate(in.RecordDate)
	if err != nil {
		return models.RecordInput{}, feedback.Invalid(MsgInvalidDate)
	}
	in.RecordDate = date.String()
	return in, nil
}

// OpenCreate открывает пустую форму с сегодняшней датой.
func (c *Controller) OpenCreate() Form {
	c.mu.Lock()
	c.modal.OpenCreate()
	c.mu.Unlock()
	return Form{Pair: "1", RecordDate: c.Today().String()}
}

// OpenEdit загружает запись и открывает форму редактирования.
func (c *Controller) OpenEdit(ctx context.Context, id string) (Form, error) {
	rec, err := c.api.GetRecord(ctx, id)
	if err != nil {
		slog.Error("Ошибка загрузки записи", "id", id, "error", err)
		return Form{}, err
	}
	c.mu.Lock()
	c.modal.OpenEdit(id)
	c.mu.Unlock()
	return FormFromRecord(*rec), nil
}

// CloseForm закрывает форму и сбрасывает режим редактирования.
func (c *Controller) CloseForm() {
	c.mu.Lock()
	c.modal.Close()
	c.mu.Unlock()
}

// EditingID возвращает идентификатор редактируемой записи.
func (c *Controller) EditingID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal.EditingID()
}

// Submit проверяет форму и создает или обновляет запись в зависимости от режима формы.
// При ошибке валидации запрос не отправляется. После успеха форма закрывается,
// список и статистика перезагружаются, новый продукт добавляется в подсказки.
func (c *Controller) Submit(ctx context.Context, f Form) (feedback.Notice, error) {
	in, err := Validate(f)
	if err != nil {
		return feedback.FromError(err, MsgSaveFailed), err
	}

	id, editing := c.EditingID()
	if editing {
		err = c.api.UpdateRecord(ctx, id, in)
	} else {
		err = c.api.CreateRecord(ctx, in)
	}
	if err != nil {
		slog.Error("Ошибка сохранения записи", "id", id, "error", err)
		return feedback.FromResponse(err, MsgSaveRejected, MsgSaveFailed), err
	}

	c.mu.Lock()
	c.modal.Close()
	c.products.Add(in.Product)
	c.mu.Unlock()

	c.refresh(ctx)

	if editing {
		return feedback.Ok(MsgUpdated), nil
	}
	return feedback.Ok(MsgCreated), nil
}

// refresh перезагружает список и статистику после изменения данных.
func (c *Controller) refresh(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		slog.Warn("Не удалось обновить список после изменения", "error", err)
	}
	_ = c.LoadStats(ctx)
}
