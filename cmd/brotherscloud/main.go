// Command brotherscloud - терминальный клиент BrothersCloud: продажи FBSC,
// семейный менеджер паролей, загрузка файлов и событий.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/api"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/config"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/credentials"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/records"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/session"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/tui"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/upload"
)

// Значения подставляются при сборке через -ldflags "-X main.buildVersion=...".
//
//nolint:gochecknoglobals // Переменные сборки
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2

	loginHint = "You are not logged in. Run `brotherscloud login` first."
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.LookupEnv, newTerminal())
	stop()
	os.Exit(code)
}

// app - собранное окружение одной команды.
type app struct {
	cfg   *config.Config
	store session.Store
	term  terminal
	now   func() time.Time
	// startTUI подменяется в тестах.
	startTUI func(ctx context.Context, deps tui.Deps, start tui.Screen) error
}

// run разбирает аргументы и выполняет подкоманду. Возвращает код выхода.
func run(ctx context.Context, args []string, lookupEnv func(string) (string, bool), term terminal) int {
	cfg, rest, err := config.Load(args, lookupEnv, term.stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(term.stderr, "Configuration error: %v\n", err)
		return exitUsage
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(term.stderr, "Logging setup failed: %v\n", err)
		return exitError
	}
	defer closeLog()

	a := &app{
		cfg:      cfg,
		store:    session.NewFileStore(cfg.SessionFile),
		term:     term,
		now:      time.Now,
		startTUI: tui.Start,
	}
	return a.dispatch(ctx, rest)
}

func (a *app) dispatch(ctx context.Context, args []string) int {
	command := "dashboard"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}
	slog.Debug("Выполнение команды", "command", command)

	var err error
	switch command {
	case "dashboard":
		err = a.page(ctx, tui.ScreenDashboard)
	case "records":
		err = a.page(ctx, tui.ScreenRecords)
	case "passwords":
		err = a.page(ctx, tui.ScreenPasswords)
	case "upload":
		err = a.page(ctx, tui.ScreenUpload)
	case "login":
		err = a.login(args)
	case "logout":
		err = a.logout()
	case "version":
		a.version()
	default:
		fmt.Fprintf(a.term.stderr, "Unknown command %q\n", command)
		a.usage()
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, session.ErrNoSession):
		fmt.Fprintln(a.term.stderr, loginHint)
		return exitError
	default:
		slog.Error("Команда завершилась с ошибкой", "command", command, "error", err)
		fmt.Fprintf(a.term.stderr, "Error: %v\n", err)
		return exitError
	}
}

func (a *app) usage() {
	fmt.Fprintln(a.term.stderr, "Usage: brotherscloud [flags] [dashboard|records|passwords|upload|login|logout|version]")
}

func (a *app) version() {
	fmt.Fprintf(a.term.stdout, "Build version: %s\n", buildVersion)
	fmt.Fprintf(a.term.stdout, "Build date: %s\n", buildDate)
	fmt.Fprintf(a.term.stdout, "Build commit: %s\n", buildCommit)
}

// page открывает экран TUI. Без сессии экран не открывается.
func (a *app) page(ctx context.Context, screen tui.Screen) error {
	sess, err := a.store.Load()
	if err != nil {
		return err
	}

	client := api.NewHTTPClient(a.cfg.BaseURL, a.cfg.RequestTimeout)
	client.SetAuthToken(sess.Token)

	deps := tui.Deps{
		Records:     records.New(client, sess.UserID, a.cfg.PageSize, records.WithClock(a.now)),
		Credentials: credentials.New(client, credentials.SystemClipboard{}, a.cfg.PageSize, credentials.WithClock(a.now)),
		Upload:      upload.New(client, sess.UserID, upload.WithClock(a.now)),
		ExportDir:   a.cfg.ExportDir,
	}
	slog.Info("Открытие экрана", "screen", screen, "base_url", a.cfg.BaseURL, "user_id", sess.UserID)
	return a.startTUI(ctx, deps, screen)
}
