package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/credentials"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/records"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/upload"
)

// Состояния (экраны) приложения.
type screenState int

const (
	dashboardScreen      screenState = iota // Главное меню
	recordsScreen                           // Таблица продаж
	recordFormScreen                        // Форма записи о продаже
	passwordsScreen                         // Таблица паролей
	passwordFormScreen                      // Форма пароля
	passwordDetailScreen                    // Карточка пароля
	filterScreen                            // Фильтр списка
	confirmScreen                           // Подтверждение удаления
	uploadScreen                            // Загрузка файла или события
)

func (s screenState) String() string {
	switch s {
	case dashboardScreen:
		return "dashboard"
	case recordsScreen:
		return "records"
	case recordFormScreen:
		return "record-form"
	case passwordsScreen:
		return "passwords"
	case passwordFormScreen:
		return "password-form"
	case passwordDetailScreen:
		return "password-detail"
	case filterScreen:
		return "filter"
	case confirmScreen:
		return "confirm"
	case uploadScreen:
		return "upload"
	default:
		return "unknown"
	}
}

// Клавиши.
const (
	keyEnter    = "enter"
	keyQuit     = "q"
	keyBack     = "b"
	keyEsc      = "esc"
	keyEdit     = "e"
	keyAdd      = "a"
	keyDelete   = "d"
	keyView     = "v"
	keyCopy     = "c"
	keyFilter   = "/"
	keyReset    = "r"
	keyExport   = "x"
	keyLeft     = "left"
	keyRight    = "right"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyUp       = "up"
	keyDown     = "down"
	keyYes      = "y"
	keyNo       = "n"
	keyGenerate = "ctrl+g"
)

// Deps - контроллеры экранов.
type Deps struct {
	Records     *records.Controller
	Credentials *credentials.Controller
	Upload      *upload.Controller
	// ExportDir - каталог для CSV-выгрузок.
	ExportDir string
}

// model представляет состояние TUI приложения.
type model struct {
	ctx    context.Context
	deps   Deps
	state  screenState
	parent screenState // Экран списка, к которому относятся форма, фильтр и подтверждение

	width  int
	height int

	menu        list.Model
	records     table.Model
	recordIDs   []string
	passwords   table.Model
	passwordIDs []string
	form        formModel
	confirm     string
	detail      credentials.Detail
	upload      uploadModel

	spinner  spinner.Model
	busy     int
	status   feedback.Notice
	statusID int
}
