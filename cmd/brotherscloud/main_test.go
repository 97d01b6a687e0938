package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/config"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/devserver"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/session"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/tui"
)

// testEnv - изолированные файлы настроек, сессии и логов.
type testEnv struct {
	dir         string
	sessionFile string
	stdout      *bytes.Buffer
	stderr      *bytes.Buffer
	secret      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:         dir,
		sessionFile: filepath.Join(dir, "session.json"),
		stdout:      &bytes.Buffer{},
		stderr:      &bytes.Buffer{},
	}
	yaml := "base_url: http://localhost:8080/api\n" +
		"session_file: " + env.sessionFile + "\n" +
		"log_file: " + filepath.Join(dir, "logs", "client.log") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	return env
}

func (e *testEnv) lookup(key string) (string, bool) {
	if key == config.EnvConfigFile {
		return filepath.Join(e.dir, "config.yaml"), true
	}
	return "", false
}

func (e *testEnv) terminal() terminal {
	return terminal{
		stdout: e.stdout,
		stderr: e.stderr,
		readSecret: func(string) (string, error) {
			return e.secret, nil
		},
	}
}

func (e *testEnv) run(args ...string) int {
	return run(context.Background(), args, e.lookup, e.terminal())
}

func issueToken(t *testing.T, userID int64) string {
	t.Helper()
	auth, err := devserver.NewAuthenticator("test-secret", time.Hour, nil)
	require.NoError(t, err)
	token, err := auth.IssueToken(userID)
	require.NoError(t, err)
	return token
}

func TestRun_Version(t *testing.T) {
	env := newTestEnv(t)

	code := env.run("version")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, env.stdout.String(), "Build version: N/A")

	data, err := os.ReadFile(filepath.Join(env.dir, "logs", "client.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=INFO", "лог пишется в текстовом формате slog")
	assert.NotContains(t, string(data), `"level":`)
}

func TestRun_UnknownCommand(t *testing.T) {
	env := newTestEnv(t)

	code := env.run("shop")

	assert.Equal(t, exitUsage, code)
	assert.Contains(t, env.stderr.String(), `Unknown command "shop"`)
}

func TestRun_InvalidConfig(t *testing.T) {
	env := newTestEnv(t)

	code := env.run("-base-url", "ftp://example.com", "version")

	assert.Equal(t, exitUsage, code)
	assert.Contains(t, env.stderr.String(), "Configuration error")
}

func TestRun_PageWithoutSession(t *testing.T) {
	for _, page := range []string{"dashboard", "records", "passwords", "upload"} {
		t.Run(page, func(t *testing.T) {
			env := newTestEnv(t)

			code := env.run(page)

			assert.Equal(t, exitError, code)
			assert.Contains(t, env.stderr.String(), loginHint)
		})
	}
}

func TestRun_LoginLogout(t *testing.T) {
	t.Run("ID пользователя из токена", func(t *testing.T) {
		env := newTestEnv(t)
		token := issueToken(t, 7)

		require.Equal(t, exitOK, env.run("login", "-token", token))
		assert.Contains(t, env.stdout.String(), "Logged in as user 7.")

		sess, err := session.NewFileStore(env.sessionFile).Load()
		require.NoError(t, err)
		assert.Equal(t, session.Session{Token: token, UserID: "7"}, sess)

		require.Equal(t, exitOK, env.run("logout"))
		_, err = session.NewFileStore(env.sessionFile).Load()
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("токен из терминала и явный ID", func(t *testing.T) {
		env := newTestEnv(t)
		env.secret = "opaque-token\n"

		require.Equal(t, exitOK, env.run("login", "-user-id", "12"))

		sess, err := session.NewFileStore(env.sessionFile).Load()
		require.NoError(t, err)
		assert.Equal(t, session.Session{Token: "opaque-token", UserID: "12"}, sess)
	})

	t.Run("непрозрачный токен без ID", func(t *testing.T) {
		env := newTestEnv(t)

		code := env.run("login", "-token", "opaque-token")

		assert.Equal(t, exitError, code)
		_, err := session.NewFileStore(env.sessionFile).Load()
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("пустой токен", func(t *testing.T) {
		env := newTestEnv(t)

		assert.Equal(t, exitError, env.run("login"))
	})
}

func TestApp_PageStartsTUI(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.SessionFile = filepath.Join(dir, "session.json")
	cfg.ExportDir = dir
	store := session.NewFileStore(cfg.SessionFile)
	require.NoError(t, store.Save(session.Session{Token: "token", UserID: "3"}))

	var (
		gotScreen tui.Screen
		gotDeps   tui.Deps
	)
	a := &app{
		cfg:   cfg,
		store: store,
		term:  terminal{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}},
		now:   time.Now,
		startTUI: func(_ context.Context, deps tui.Deps, start tui.Screen) error {
			gotScreen, gotDeps = start, deps
			return nil
		},
	}

	require.Equal(t, exitOK, a.dispatch(context.Background(), []string{"passwords"}))
	assert.Equal(t, tui.ScreenPasswords, gotScreen)
	assert.NotNil(t, gotDeps.Records)
	assert.NotNil(t, gotDeps.Credentials)
	assert.NotNil(t, gotDeps.Upload)
	assert.Equal(t, dir, gotDeps.ExportDir)

	a.startTUI = func(context.Context, tui.Deps, tui.Screen) error {
		return errors.New("терминал недоступен")
	}
	assert.Equal(t, exitError, a.dispatch(context.Background(), nil))
}
