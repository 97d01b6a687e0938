// Package upload - форма загрузки файлов и создания событий, список событий пользователя.
package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/api"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/listing"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

const (
	MsgUploaded     = "Upload successful!"
	MsgUploadFailed = "Upload failed"
	MsgServerError  = "Server error"

	MsgNoEvents        = "No events yet."
	MsgEventsServerErr = "Server error while loading events."
	msgEventsErrorFmt  = "Error loading events: %s"
	msgUnknownError    = "Unknown error"
)

// ErrNoUser - нет идентификатора пользователя в сессии.
var ErrNoUser = errors.New("пользователь не авторизован")

// API - эндпоинты, которые использует контроллер.
type API interface {
	ListEvents(ctx context.Context, userID string) ([]models.Event, error)
	CreateEvent(ctx context.Context, in models.EventInput) error
	UploadFile(ctx context.Context, up api.FileUpload) (*models.FileMeta, error)
}

// Events - состояние списка событий. Если Message не пуст, он показывается вместо списка.
type Events struct {
	Items   []models.Event
	Message string
	Loaded  bool
}

// Controller управляет формой загрузки.
type Controller struct {
	api    API
	userID string
	now    func() time.Time

	mu        sync.Mutex
	events    Events
	eventsSeq listing.Sequencer
}

// Option настраивает Controller.
type Option func(*Controller)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New создает контроллер для пользователя userID.
func New(api API, userID string, opts ...Option) *Controller {
	c := &Controller{api: api, userID: userID, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Today - текущая дата по часам контроллера.
func (c *Controller) Today() models.Date {
	return models.Today(c.now())
}

// Events возвращает снимок списка событий.
func (c *Controller) Events() Events {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events
}

// LoadEvents загружает события пользователя. Ошибка загрузки превращается в сообщение списка.
func (c *Controller) LoadEvents(ctx context.Context) error {
	if c.userID == "" {
		c.setEvents(Events{Message: MsgUnauthorized, Loaded: true})
		return ErrNoUser
	}

	seq := c.eventsSeq.Next()
	items, err := c.api.ListEvents(ctx, c.userID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.eventsSeq.IsLatest(seq) {
		return listing.ErrStale
	}
	if err != nil {
		slog.Error("Ошибка загрузки событий", "user_id", c.userID, "error", err)
		c.events = Events{Message: eventsError(err), Loaded: true}
		return err
	}
	if len(items) == 0 {
		c.events = Events{Message: MsgNoEvents, Loaded: true}
		return nil
	}
	c.events = Events{Items: items, Loaded: true}
	return nil
}

func (c *Controller) setEvents(e Events) {
	c.mu.Lock()
	c.events = e
	c.mu.Unlock()
}

func eventsError(err error) string {
	var sm feedback.ServerMessager
	if !errors.As(err, &sm) {
		return MsgEventsServerErr
	}
	msg := sm.ServerMessage()
	if msg == "" {
		msg = msgUnknownError
	}
	return fmt.Sprintf(msgEventsErrorFmt, msg)
}

// Submit проверяет форму и отправляет файл или событие.
// При успехе возвращает форму в исходном состоянии, иначе - переданную без изменений.
func (c *Controller) Submit(ctx context.Context, f Form) (Form, feedback.Notice, error) {
	if c.userID == "" {
		return f, feedback.Warn(MsgUnauthorized), ErrNoUser
	}
	target, err := f.Validate(c.Today())
	if err != nil {
		return f, feedback.FromError(err, MsgUploadFailed), err
	}

	name := strings.TrimSpace(f.Name)
	desc := strings.TrimSpace(f.Description)

	switch t := target.(type) {
	case EventTarget:
		err = c.api.CreateEvent(ctx, models.EventInput{
			UserID:           c.userID,
			EventName:        name,
			EventDescription: desc,
			EventDate:        t.Date.String(),
			Repetition:       string(t.Repetition),
		})
	case FileTarget:
		err = c.uploadFile(ctx, t, name, desc)
	}
	if err != nil {
		slog.Error("Ошибка загрузки", "choice", f.Choice, "error", err)
		return f, feedback.FromResponse(err, MsgUploadFailed, MsgServerError), err
	}

	slog.Info("Загрузка выполнена", "choice", f.Choice, "name", name)
	if _, ok := target.(EventTarget); ok {
		if lerr := c.LoadEvents(ctx); lerr != nil {
			slog.Warn("Не удалось обновить список событий", "error", lerr)
		}
	}
	return DefaultForm(), feedback.Ok(MsgUploaded), nil
}

func (c *Controller) uploadFile(ctx context.Context, t FileTarget, name, desc string) error {
	file, err := os.Open(t.Path)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла %s: %w", t.Path, err)
	}
	defer file.Close() //nolint:errcheck // Файл открыт только на чтение

	meta, err := c.api.UploadFile(ctx, api.FileUpload{
		UserID:       c.userID,
		FileType:     string(t.Type),
		Name:         name,
		Description:  desc,
		OriginalName: filepath.Base(t.Path),
		Content:      file,
	})
	if err != nil {
		return err
	}
	slog.Debug("Файл загружен", "file_id", meta.ID, "size", meta.SizeBytes)
	return nil
}
