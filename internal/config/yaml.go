package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig - содержимое YAML-файла. Пустые поля не переопределяют значения по умолчанию.
type fileConfig struct {
	BaseURL        string `yaml:"base_url"`
	SessionFile    string `yaml:"session_file"`
	LogFile        string `yaml:"log_file"`
	ExportDir      string `yaml:"export_dir"`
	PageSize       int    `yaml:"page_size"`
	RequestTimeout string `yaml:"request_timeout"`
	Debug          *bool  `yaml:"debug"`
}

// loadFile читает YAML-файл и накладывает его на cfg.
// Если required == false, отсутствие файла не считается ошибкой.
func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path) //nolint:gosec // путь задает пользователь
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("ошибка чтения файла настроек %s: %w", path, err)
	}

	var fc fileConfig
	if err = yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("ошибка разбора файла настроек %s: %w", path, err)
	}

	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.SessionFile != "" {
		c.SessionFile = fc.SessionFile
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	if fc.ExportDir != "" {
		c.ExportDir = fc.ExportDir
	}
	if fc.PageSize != 0 {
		c.PageSize = fc.PageSize
	}
	if fc.RequestTimeout != "" {
		d, parseErr := time.ParseDuration(fc.RequestTimeout)
		if parseErr != nil {
			return fmt.Errorf("неверный request_timeout %q в %s: %w", fc.RequestTimeout, path, parseErr)
		}
		c.RequestTimeout = d
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	c.ConfigFile = path
	return nil
}
