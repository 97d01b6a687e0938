package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/credentials"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/records"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/upload"
)

// loadedMsg - список экрана перезагружен (err != nil - не перезагружен).
type loadedMsg struct {
	screen screenState
	err    error
}

// actionMsg - результат действия: сохранения, удаления, выгрузки, копирования.
type actionMsg struct {
	screen screenState
	notice feedback.Notice
	err    error
	// done - действие завершило форму или подтверждение, нужно вернуться к списку.
	done bool
}

// formOpenedMsg - данные для формы редактирования загружены.
type formOpenedMsg struct {
	screen screenState
	values []string
	err    error
}

// detailMsg - карточка пароля открыта или обновлена.
type detailMsg struct {
	detail credentials.Detail
	err    error
}

// uploadedMsg - результат отправки формы загрузки.
type uploadedMsg struct {
	form   upload.Form
	notice feedback.Notice
	err    error
}

// eventsMsg - список событий перезагружен.
type eventsMsg struct {
	err error
}

// clearStatusMsg очищает статус, если после него не было нового.
type clearStatusMsg struct {
	id int
}

// clearStatusCmd возвращает команду, которая отправит clearStatusMsg через delay.
func clearStatusCmd(delay time.Duration, id int) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func loadCmd(ctx context.Context, screen screenState, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{screen: screen, err: fn(ctx)}
	}
}

func noticeCmd(
	ctx context.Context,
	screen screenState,
	done bool,
	fn func(context.Context) (feedback.Notice, error),
) tea.Cmd {
	return func() tea.Msg {
		notice, err := fn(ctx)
		return actionMsg{screen: screen, notice: notice, err: err, done: done}
	}
}

func exportCmd(
	ctx context.Context,
	screen screenState,
	dir string,
	fn func(context.Context, string) (string, feedback.Notice, error),
) tea.Cmd {
	return func() tea.Msg {
		path, notice, err := fn(ctx, dir)
		if err == nil {
			notice.Text = fmt.Sprintf("%s: %s", notice.Text, path)
		}
		return actionMsg{screen: screen, notice: notice, err: err}
	}
}

func openRecordCmd(ctx context.Context, c *records.Controller, id string) tea.Cmd {
	return func() tea.Msg {
		form, err := c.OpenEdit(ctx, id)
		return formOpenedMsg{screen: recordFormScreen, values: recordValues(form), err: err}
	}
}

func openPasswordCmd(ctx context.Context, c *credentials.Controller, id string) tea.Cmd {
	return func() tea.Msg {
		form, err := c.OpenEdit(ctx, id)
		return formOpenedMsg{screen: passwordFormScreen, values: passwordValues(form), err: err}
	}
}

func detailCmd(ctx context.Context, fn func(context.Context) (credentials.Detail, error)) tea.Cmd {
	return func() tea.Msg {
		d, err := fn(ctx)
		return detailMsg{detail: d, err: err}
	}
}

func uploadCmd(ctx context.Context, c *upload.Controller, f upload.Form) tea.Cmd {
	return func() tea.Msg {
		form, notice, err := c.Submit(ctx, f)
		return uploadedMsg{form: form, notice: notice, err: err}
	}
}

func eventsCmd(ctx context.Context, c *upload.Controller) tea.Cmd {
	return func() tea.Msg {
		return eventsMsg{err: c.LoadEvents(ctx)}
	}
}
