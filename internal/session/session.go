// Package session хранит токен и идентификатор пользователя между запусками.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/golang-jwt/jwt/v5"
)

const (
	filePermissions = 0o600
	dirPermissions  = 0o700
)

// ErrNoSession - пользователь не вошел в систему.
var ErrNoSession = errors.New("сессия не найдена")

// Session - данные аутентификации. Токен передается как Bearer, UserID - параметром user_id.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Valid сообщает, что токен задан.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != ""
}

// Store - хранилище сессии.
type Store interface {
	Load() (Session, error)
	Save(s Session) error
	Clear() error
}

// FileStore хранит сессию в JSON-файле. Доступ сериализуется файловой блокировкой,
// чтобы параллельно запущенные клиенты не портили файл.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore создает хранилище в файле path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path возвращает путь к файлу сессии.
func (s *FileStore) Path() string { return s.path }

// Load читает сессию. Отсутствующий файл или пустой токен - ErrNoSession.
func (s *FileStore) Load() (Session, error) {
	if err := s.ensureDir(); err != nil {
		return Session{}, err
	}
	if err := s.lock.RLock(); err != nil {
		return Session{}, fmt.Errorf("ошибка блокировки файла сессии: %w", err)
	}
	defer s.lock.Unlock() //nolint:errcheck // снятие блокировки на чтение

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("ошибка чтения файла сессии: %w", err)
	}

	var sess Session
	if err = json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("ошибка разбора файла сессии %s: %w", s.path, err)
	}
	if !sess.Valid() {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Save атомарно записывает сессию (через временный файл и rename).
func (s *FileStore) Save(sess Session) error {
	if !sess.Valid() {
		return errors.New("нельзя сохранить сессию без токена")
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("ошибка блокировки файла сессии: %w", err)
	}
	defer s.lock.Unlock() //nolint:errcheck // снятие эксклюзивной блокировки

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка кодирования сессии: %w", err)
	}
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, data, filePermissions); err != nil {
		return fmt.Errorf("ошибка записи файла сессии: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("ошибка сохранения файла сессии: %w", err)
	}
	return nil
}

// Clear удаляет сессию (выход). Отсутствие файла ошибкой не считается.
func (s *FileStore) Clear() error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("ошибка блокировки файла сессии: %w", err)
	}
	defer s.lock.Unlock() //nolint:errcheck // снятие эксклюзивной блокировки

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ошибка удаления файла сессии: %w", err)
	}
	return nil
}

func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPermissions); err != nil {
		return fmt.Errorf("ошибка создания каталога сессии: %w", err)
	}
	return nil
}

// TokenInfo - данные, извлеченные из токена без проверки подписи.
type TokenInfo struct {
	UserID    string
	ExpiresAt time.Time // нулевое значение, если срок не указан
}

// Expired сообщает, что срок действия токена истек к моменту now.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Inspect разбирает JWT без проверки подписи: ключа у клиента нет,
// подпись проверяет сервер. Идентификатор берется из user_id, затем из sub.
func Inspect(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), claims); err != nil {
		return TokenInfo{}, fmt.Errorf("ошибка разбора токена: %w", err)
	}

	var info TokenInfo
	switch v := claims["user_id"].(type) {
	case string:
		info.UserID = v
	case float64:
		info.UserID = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if info.UserID == "" {
		if sub, err := claims.GetSubject(); err == nil {
			info.UserID = sub
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
