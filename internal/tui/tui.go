// Package tui - терминальный интерфейс: главное меню, экраны продаж, паролей и загрузки.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/listing"
)

const (
	statusMessageTimeout = 3 * time.Second // Время отображения уведомлений
	chromeHeight         = 10              // Строки под заголовок, сводку, помощь и статус
	minTableHeight       = 5
)

// newModel создает модель, стартующую с экрана start.
func newModel(ctx context.Context, deps Deps, start screenState) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	m := &model{
		ctx:       ctx,
		deps:      deps,
		state:     start,
		menu:      newMenu(),
		records:   newRecordsTable(),
		passwords: newPasswordsTable(),
		upload:    newUploadModel(),
		spinner:   s,
	}
	return m
}

// Init запускает загрузку данных стартового экрана.
func (m *model) Init() tea.Cmd {
	return m.enter(m.state)
}

// enter переключает экран и запускает первичную загрузку его данных.
func (m *model) enter(screen screenState) tea.Cmd {
	m.state = screen
	switch screen {
	case recordsScreen:
		if !m.deps.Records.View().Loaded {
			return m.run(loadCmd(m.ctx, recordsScreen, m.deps.Records.Init))
		}
		m.syncRecords()
	case passwordsScreen:
		if !m.deps.Credentials.View().Loaded {
			return m.run(loadCmd(m.ctx, passwordsScreen, m.deps.Credentials.Init))
		}
		m.syncPasswords()
	case uploadScreen:
		if !m.deps.Upload.Events().Loaded {
			return m.run(eventsCmd(m.ctx, m.deps.Upload))
		}
	}
	return nil
}

// run отмечает начало запроса: пока есть незавершенные запросы, показывается спиннер.
func (m *model) run(cmd tea.Cmd) tea.Cmd {
	m.busy++
	if m.busy == 1 {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

// settle отмечает завершение запроса.
func (m *model) settle() {
	if m.busy > 0 {
		m.busy--
	}
}

// setStatus показывает уведомление и запускает таймер для его очистки.
func (m *model) setStatus(n feedback.Notice) tea.Cmd {
	if n.Text == "" {
		return nil
	}
	m.statusID++
	m.status = n
	return clearStatusCmd(statusMessageTimeout, m.statusID)
}

// failed показывает ошибку загрузки, кроме устаревших ответов.
func (m *model) failed(err error, rejected, failed string) tea.Cmd {
	if err == nil || errors.Is(err, listing.ErrStale) {
		return nil
	}
	slog.Debug("Ошибка запроса", "screen", m.state, "error", err)
	return m.setStatus(feedback.FromResponse(err, rejected, failed))
}

// View отрисовывает пользовательский интерфейс.
func (m *model) View() string {
	content, help := m.screenView()

	var footer strings.Builder
	if m.busy > 0 {
		footer.WriteString("\n")
		footer.WriteString(m.spinner.View())
		footer.WriteString(" Loading...")
	}
	if m.status.Text != "" {
		footer.WriteString("\n")
		footer.WriteString(renderNotice(m.status))
	}
	return docStyle.Render(fmt.Sprintf("%s\n%s%s", content, helpStyle.Render(help), footer.String()))
}

func (m *model) screenView() (string, string) {
	switch m.state {
	case dashboardScreen:
		return m.menu.View(), "enter: open • q: quit"
	case recordsScreen:
		return m.viewRecords(), "a: add • e: edit • d: delete • /: filter • r: reset • x: export • ←/→: page • b: back"
	case recordFormScreen, passwordFormScreen:
		return modalStyle.Render(m.form.View()), m.formHelp()
	case passwordsScreen:
		return m.viewPasswords(), "enter: view • a: add • e: edit • d: delete • /: filter • r: reset • x: export • ←/→: page • b: back"
	case passwordDetailScreen:
		return modalStyle.Render(m.viewDetail()), "v: reveal/hide • c: copy • e: edit • d: delete • esc: close"
	case filterScreen:
		return modalStyle.Render(m.form.View()), "tab: next field • enter: apply • esc: cancel"
	case confirmScreen:
		return modalStyle.Render(m.confirm), "y: confirm • n/esc: cancel"
	case uploadScreen:
		return m.viewUpload(), "←/→: change type or repetition • tab: next field • enter: submit • esc: back"
	default:
		return "Unknown screen", ""
	}
}

func (m *model) formHelp() string {
	if m.state == passwordFormScreen {
		return "tab: next field • ctrl+g: generate password • enter: save • esc: cancel"
	}
	return "tab: next field • enter: save • esc: cancel"
}

// tableHeight - высота таблицы с учетом размеров окна.
func (m *model) tableHeight() int {
	h := m.height - chromeHeight
	if h < minTableHeight {
		return minTableHeight
	}
	return h
}

// Screen - стартовый экран программы.
type Screen string

const (
	ScreenDashboard Screen = "dashboard"
	ScreenRecords   Screen = "records"
	ScreenPasswords Screen = "passwords"
	ScreenUpload    Screen = "upload"
)

func (s Screen) state() screenState {
	switch s {
	case ScreenRecords:
		return recordsScreen
	case ScreenPasswords:
		return passwordsScreen
	case ScreenUpload:
		return uploadScreen
	default:
		return dashboardScreen
	}
}

// Start запускает TUI приложение и блокируется до выхода из него.
func Start(ctx context.Context, deps Deps, start Screen) error {
	m := newModel(ctx, deps, start.state())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	slog.Info("Запуск TUI", "screen", start)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ошибка TUI: %w", err)
	}
	return nil
}
