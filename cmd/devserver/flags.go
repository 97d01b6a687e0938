package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
)

const (
	defaultAddr = ":8080"
	secretBytes = 32

	// Переменные окружения.
	envAddr        = "DEVSERVER_ADDR"
	envJWTSecret   = "DEVSERVER_JWT_SECRET" //nolint:gosec // Имя переменной окружения, не секрет
	envTLSCertFile = "TLS_CERT_FILE"
	envTLSKeyFile  = "TLS_KEY_FILE"
)

// config хранит конфигурацию сервера разработки.
type config struct {
	Addr      string
	JWTSecret string
	CertFile  string
	KeyFile   string
	// GeneratedSecret - ключ создан при запуске, токены не переживут перезапуск.
	GeneratedSecret bool
}

// TLS сообщает, что заданы сертификат и ключ.
func (c *config) TLS() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// parseFlags разбирает флаги и переменные окружения, возвращает config или ошибку.
func parseFlags(args []string, lookupEnv func(string) (string, bool), output io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Addr, "addr", "",
		fmt.Sprintf("Адрес для запуска сервера (env: %s, default: %s)", envAddr, defaultAddr))
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "",
		fmt.Sprintf("Ключ подписи JWT (env: %s, по умолчанию случайный)", envJWTSecret))
	fs.StringVar(&cfg.CertFile, "cert-file", "",
		fmt.Sprintf("Путь к файлу TLS-сертификата (env: %s)", envTLSCertFile))
	fs.StringVar(&cfg.KeyFile, "key-file", "",
		fmt.Sprintf("Путь к файлу TLS-ключа (env: %s)", envTLSKeyFile))

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Применяем переменные окружения, если флаги не заданы
	fallback := func(value *string, env, def string) {
		if *value != "" {
			return
		}
		if v, ok := lookupEnv(env); ok && v != "" {
			*value = v
			return
		}
		*value = def
	}
	fallback(&cfg.Addr, envAddr, defaultAddr)
	fallback(&cfg.JWTSecret, envJWTSecret, "")
	fallback(&cfg.CertFile, envTLSCertFile, "")
	fallback(&cfg.KeyFile, envTLSKeyFile, "")

	if (cfg.CertFile == "") != (cfg.KeyFile == "") {
		return nil, errors.New("сертификат и ключ TLS задаются только вместе (--cert-file и --key-file)")
	}

	if cfg.JWTSecret == "" {
		secret := make([]byte, secretBytes)
		if _, err := io.ReadFull(rand.Reader, secret); err != nil {
			return nil, fmt.Errorf("ошибка генерации ключа JWT: %w", err)
		}
		cfg.JWTSecret = hex.EncodeToString(secret)
		cfg.GeneratedSecret = true
	}
	return cfg, nil
}
