// Package config собирает настройки клиента из значений по умолчанию,
// YAML-файла, переменных окружения и флагов (в порядке возрастания приоритета).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/listing"
)

const (
	// DefaultBaseURL - адрес API по умолчанию.
	DefaultBaseURL = "https://brotherscloud-1.onrender.com/api"
	// DefaultRequestTimeout - таймаут одного HTTP-запроса.
	DefaultRequestTimeout = 30 * time.Second

	appDir          = "brotherscloud"
	sessionFileName = "session.json"
	configFileName  = "config.yaml"
	defaultLogFile  = "logs/brotherscloud.log"

	// Переменные окружения.
	EnvConfigFile  = "BROTHERSCLOUD_CONFIG"
	EnvBaseURL     = "BROTHERSCLOUD_BASE_URL"
	EnvSessionFile = "BROTHERSCLOUD_SESSION_FILE"
	EnvLogFile     = "BROTHERSCLOUD_LOG_FILE"
	EnvExportDir   = "BROTHERSCLOUD_EXPORT_DIR"
)

// Config - настройки клиента.
type Config struct {
	BaseURL        string
	SessionFile    string
	LogFile        string
	ExportDir      string
	PageSize       int
	RequestTimeout time.Duration
	Debug          bool

	// ConfigFile - путь к прочитанному YAML-файлу или пустая строка.
	ConfigFile string
}

// Default возвращает настройки по умолчанию.
// Файл сессии лежит в пользовательском каталоге настроек.
func Default() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		SessionFile:    filepath.Join(userDir(), sessionFileName),
		LogFile:        defaultLogFile,
		ExportDir:      ".",
		PageSize:       listing.DefaultPageSize,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// DefaultConfigFile - путь к YAML-файлу, который читается, если путь не задан явно.
func DefaultConfigFile() string {
	return filepath.Join(userDir(), configFileName)
}

func userDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + appDir
	}
	return filepath.Join(dir, appDir)
}

// applyEnv переопределяет поля из переменных окружения.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if value, ok := lookup(EnvBaseURL); ok && value != "" {
		c.BaseURL = value
	}
	if value, ok := lookup(EnvSessionFile); ok && value != "" {
		c.SessionFile = value
	}
	if value, ok := lookup(EnvLogFile); ok && value != "" {
		c.LogFile = value
	}
	if value, ok := lookup(EnvExportDir); ok && value != "" {
		c.ExportDir = value
	}
}

// Validate проверяет итоговые настройки.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("неверный адрес API %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("адрес API должен начинаться с http:// или https://: %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("в адресе API не указан хост: %q", c.BaseURL)
	}
	if c.SessionFile == "" {
		return errors.New("путь к файлу сессии не может быть пустым")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("размер страницы должен быть положительным: %d", c.PageSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("таймаут запроса должен быть положительным: %s", c.RequestTimeout)
	}
	return nil
}
