package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/session"
)

var (
	errEmptyToken = errors.New("токен не задан")
	errNoUserID   = errors.New("не удалось определить ID пользователя из токена, укажите -user-id")
)

// terminal - ввод и вывод команды.
type terminal struct {
	stdout io.Writer
	stderr io.Writer
	// readSecret читает строку без эха, если ввод - терминал.
	readSecret func(prompt string) (string, error)
}

func newTerminal() terminal {
	return terminal{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		readSecret: readStdinSecret,
	}
}

func readStdinSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // дескриптор stdin помещается в int
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения токена: %w", err)
		}
		return string(secret), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("ошибка чтения токена: %w", err)
	}
	return line, nil
}

// login сохраняет сессию. ID пользователя по умолчанию берется из user_id токена.
func (a *app) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.term.stderr)
	tokenFlag := fs.String("token", "", "JWT токен (если не задан, читается из терминала)")
	userFlag := fs.String("user-id", "", "ID пользователя (по умолчанию из токена)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token := strings.TrimSpace(*tokenFlag)
	if token == "" {
		read, err := a.term.readSecret("Token: ")
		if err != nil {
			return err
		}
		token = strings.TrimSpace(read)
	}
	if token == "" {
		return errEmptyToken
	}

	userID := strings.TrimSpace(*userFlag)
	info, err := session.Inspect(token)
	if err != nil {
		slog.Warn("Токен не разобран как JWT", "error", err)
	} else {
		if userID == "" {
			userID = info.UserID
		}
		if info.Expired(a.now()) {
			fmt.Fprintln(a.term.stderr, "Warning: this token has already expired.")
		}
	}
	if userID == "" {
		return errNoUserID
	}

	if err = a.store.Save(session.Session{Token: token, UserID: userID}); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	slog.Info("Сессия сохранена", "user_id", userID)
	fmt.Fprintf(a.term.stdout, "Logged in as user %s.\n", userID)
	return nil
}

func (a *app) logout() error {
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	slog.Info("Сессия удалена")
	fmt.Fprintln(a.term.stdout, "Logged out.")
	return nil
}
