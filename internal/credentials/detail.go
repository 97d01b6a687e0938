package credentials

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/listing"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// Mask - как показывается скрытый пароль.
const Mask = "••••••••"

const (
	MsgDetailFailed  = "Error loading password details"
	MsgDecryptFailed = "Failed to decrypt password"
	MsgCopied        = "Password copied to clipboard!"
	MsgCopyFailed    = "Failed to copy password"
)

// ErrNoDetail - карточка не открыта.
var ErrNoDetail = errors.New("карточка пароля не открыта")

// detailState - открытая карточка. secret заполняется после первой расшифровки
// и живет до закрытия карточки.
type detailState struct {
	gen      uint64
	open     bool
	cred     models.Credential
	secret   string
	revealed bool
}

// Detail - снимок открытой карточки для отрисовки.
type Detail struct {
	Credential models.Credential
	Expiry     Expiry
	Revealed   bool
	// Password - открытый текст при Revealed, иначе Mask.
	Password string
}

// OpenDetail загружает учетную запись и открывает карточку. Пароль скрыт.
func (c *Controller) OpenDetail(ctx context.Context, id string) (Detail, error) {
	seq := c.detailSeq.Next()
	cred, err := c.api.GetCredential(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.detailSeq.IsLatest(seq) {
		return Detail{}, listing.ErrStale
	}
	if err != nil {
		slog.Error("Ошибка загрузки карточки пароля", "id", id, "error", err)
		return Detail{}, err
	}
	c.detail = detailState{gen: seq, open: true, cred: *cred}
	return c.detailLocked(), nil
}

// CloseDetail закрывает карточку и забывает расшифрованный пароль.
func (c *Controller) CloseDetail() {
	c.detailSeq.Next()
	c.mu.Lock()
	c.detail = detailState{}
	c.mu.Unlock()
}

// Detail возвращает снимок открытой карточки.
func (c *Controller) Detail() (Detail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.detail.open {
		return Detail{}, false
	}
	return c.detailLocked(), true
}

func (c *Controller) detailLocked() Detail {
	d := Detail{
		Credential: c.detail.cred,
		Expiry:     Classify(c.detail.cred, c.Today()),
		Revealed:   c.detail.revealed,
		Password:   Mask,
	}
	if c.detail.revealed {
		d.Password = c.detail.secret
	}
	return d
}

// ToggleReveal показывает или скрывает пароль. Первый показ расшифровывает пароль на сервере,
// последующие используют сохраненное значение.
func (c *Controller) ToggleReveal(ctx context.Context) (Detail, error) {
	c.mu.Lock()
	if !c.detail.open {
		c.mu.Unlock()
		return Detail{}, ErrNoDetail
	}
	if c.detail.revealed {
		c.detail.revealed = false
		d := c.detailLocked()
		c.mu.Unlock()
		return d, nil
	}
	c.mu.Unlock()

	if _, err := c.secret(ctx); err != nil {
		return Detail{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.detail.open {
		return Detail{}, ErrNoDetail
	}
	c.detail.revealed = true
	return c.detailLocked(), nil
}

// Copy копирует пароль в буфер обмена, при необходимости расшифровав его один раз.
func (c *Controller) Copy(ctx context.Context) (feedback.Notice, error) {
	secret, err := c.secret(ctx)
	if err != nil {
		return feedback.Fail(MsgDecryptFailed), err
	}
	if err = c.clipboard.WriteAll(secret); err != nil {
		slog.Warn("Ошибка записи в буфер обмена", "error", err)
		return feedback.Fail(MsgCopyFailed), err
	}
	return feedback.Ok(MsgCopied), nil
}

// secret возвращает сохраненный пароль открытой карточки или расшифровывает его.
// Результат сохраняется, только если карточка не была закрыта или заменена за время запроса.
func (c *Controller) secret(ctx context.Context) (string, error) {
	c.mu.Lock()
	if !c.detail.open {
		c.mu.Unlock()
		return "", ErrNoDetail
	}
	if c.detail.secret != "" {
		s := c.detail.secret
		c.mu.Unlock()
		return s, nil
	}
	id := c.detail.cred.ID.String()
	gen := c.detail.gen
	c.mu.Unlock()

	plain, err := c.api.DecryptCredential(ctx, id)
	if err != nil {
		slog.Error("Ошибка расшифровки пароля", "id", id, "error", err)
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.detail.open || c.detail.gen != gen {
		return "", ErrNoDetail
	}
	c.detail.secret = plain
	return plain, nil
}
