package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Load разбирает глобальные флаги из args и собирает итоговую конфигурацию.
// Возвращает оставшиеся аргументы (подкоманду и ее флаги).
func Load(args []string, lookupEnv func(string) (string, bool), output io.Writer) (*Config, []string, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	fs := flag.NewFlagSet("brotherscloud", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	var (
		configFile  string
		baseURL     string
		sessionFile string
		logFile     string
		exportDir   string
		pageSize    int
		timeout     time.Duration
		debug       bool
	)
	fs.StringVar(&configFile, "config", "",
		fmt.Sprintf("Путь к YAML-файлу настроек (env: %s, default: %s)", EnvConfigFile, DefaultConfigFile()))
	fs.StringVar(&baseURL, "base-url", "",
		fmt.Sprintf("Адрес API (env: %s, default: %s)", EnvBaseURL, DefaultBaseURL))
	fs.StringVar(&sessionFile, "session", "",
		fmt.Sprintf("Путь к файлу сессии (env: %s)", EnvSessionFile))
	fs.StringVar(&logFile, "log", "",
		fmt.Sprintf("Путь к лог-файлу (env: %s, default: %s)", EnvLogFile, defaultLogFile))
	fs.StringVar(&exportDir, "export-dir", "",
		fmt.Sprintf("Каталог для CSV-выгрузок (env: %s)", EnvExportDir))
	fs.IntVar(&pageSize, "page-size", 0, "Размер страницы списков")
	fs.DurationVar(&timeout, "timeout", 0, "Таймаут HTTP-запроса")
	fs.BoolVar(&debug, "debug", false, "Подробное логирование")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg := Default()

	// 1. YAML-файл: явно указанный обязан существовать, файл по умолчанию - нет.
	path, required := DefaultConfigFile(), false
	if value, ok := lookupEnv(EnvConfigFile); ok && value != "" {
		path, required = value, true
	}
	if configFile != "" {
		path, required = configFile, true
	}
	if err := cfg.loadFile(path, required); err != nil {
		return nil, nil, err
	}

	// 2. Переменные окружения.
	cfg.applyEnv(lookupEnv)

	// 3. Явно заданные флаги.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "base-url":
			cfg.BaseURL = baseURL
		case "session":
			cfg.SessionFile = sessionFile
		case "log":
			cfg.LogFile = logFile
		case "export-dir":
			cfg.ExportDir = exportDir
		case "page-size":
			cfg.PageSize = pageSize
		case "timeout":
			cfg.RequestTimeout = timeout
		case "debug":
			cfg.Debug = debug
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}
