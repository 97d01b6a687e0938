// Command devserver - локальный бэкенд BrothersCloud для разработки клиента.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/devserver"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.LookupEnv, os.Stdout)
	stop()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		slog.Error("Ошибка выполнения сервера", "error", err)
		os.Exit(1)
	}
}

// run собирает сервер и блокируется до отмены ctx.
func run(ctx context.Context, args []string, lookupEnv func(string) (string, bool), out io.Writer) error {
	cfg, err := parseFlags(args, lookupEnv, out)
	if err != nil {
		return err
	}
	if cfg.GeneratedSecret {
		slog.Warn("Ключ JWT сгенерирован случайно, выданные токены не переживут перезапуск")
	}

	srv, err := devserver.New(devserver.Config{JWTSecret: cfg.JWTSecret})
	if err != nil {
		return fmt.Errorf("ошибка инициализации сервера: %w", err)
	}
	if err = srv.Seed(); err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("ошибка запуска слушателя %s: %w", cfg.Addr, err)
	}

	token, err := srv.Auth.IssueToken(devserver.DemoUser.ID)
	if err != nil {
		_ = listener.Close()
		return err
	}
	printBanner(out, baseURL(listener.Addr(), cfg.TLS()), token)

	server := &http.Server{
		Handler:      srv.Router(),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Запуск сервера", "addr", listener.Addr().String(), "tls", cfg.TLS())
		if cfg.TLS() {
			errCh <- server.ServeTLS(listener, cfg.CertFile, cfg.KeyFile)
		} else {
			errCh <- server.Serve(listener)
		}
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ошибка работы сервера: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	return nil
}

// baseURL строит адрес API для клиента. Пустой хост заменяется на localhost.
func baseURL(addr net.Addr, tls bool) string {
	scheme := "http"
	if tls {
		scheme = "https"
	}
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return scheme + "://" + addr.String() + "/api"
	}
	if host == "" || host == "::" || host == "0.0.0.0" {
		host = "localhost"
	}
	return scheme + "://" + net.JoinHostPort(host, port) + "/api"
}

func printBanner(out io.Writer, api, token string) {
	var b strings.Builder
	fmt.Fprintf(&b, "BrothersCloud dev server: %s\n", api)
	fmt.Fprintf(&b, "Demo user: %s %s (id %d)\n", devserver.DemoUser.FirstName, devserver.DemoUser.LastName,
		devserver.DemoUser.ID)
	fmt.Fprintf(&b, "Log in with:\n  brotherscloud -base-url %s login -token %s\n", api, token)
	_, _ = io.WriteString(out, b.String())
}
