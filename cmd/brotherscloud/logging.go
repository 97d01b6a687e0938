package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/config"
)

const (
	logFilePermissions = 0o600
	logDirPermissions  = 0o750
)

// setupLogging направляет slog в файл: stdout занят TUI.
func setupLogging(cfg *config.Config) (func(), error) {
	if dir := filepath.Dir(cfg.LogFile); dir != "" {
		if err := os.MkdirAll(dir, logDirPermissions); err != nil {
			return nil, fmt.Errorf("ошибка создания каталога логов: %w", err)
		}
	}
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть лог-файл: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	slog.Info("Логгер инициализирован", "file", cfg.LogFile, "level", level.String())

	return func() { _ = logFile.Close() }, nil
}
