package credentials

import (
	"context"
	"log/slog"
	"strings"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// Тексты уведомлений формы.
const (
	MsgServiceRequired = "Service name is required"
	MsgPasswordMissing = "Password is required"
	MsgDateRequired    = "Password date is required"
	MsgInvalidDate     = "Please enter a valid date (YYYY-MM-DD)"
	MsgSaved           = "Password saved successfully"
	MsgUpdated         = "Password updated successfully"
	MsgSaveRejected    = "Error saving password"
	MsgSaveFailed      = "Failed to save password"
)

// Form - значения полей формы.
type Form struct {
	ServiceName  string
	ServiceURL   string
	Username     string
	Email        string
	Password     string
	Category     string
	PasswordDate string
	ExpiryDate   string
	Notes        string
}

// FormFromCredential заполняет форму для редактирования. Поле пароля всегда пустое.
func FormFromCredential(cred models.Credential) Form {
	return Form{
		ServiceName:  cred.ServiceName,
		ServiceURL:   cred.ServiceURL,
		Username:     cred.Username,
		Email:        cred.Email,
		Category:     cred.CategoryOrDefault(),
		PasswordDate: cred.PasswordDate.String(),
		ExpiryDate:   cred.ExpiryDate.String(),
		Notes:        cred.Notes,
	}
}

// Validate проверяет форму. Пароль обязателен только при создании (creating == true);
// при редактировании пустой пароль не отправляется и сервер сохраняет прежний.
func Validate(f Form, creating bool) (models.CredentialInput, error) {
	in := models.CredentialInput{
		ServiceName:  strings.TrimSpace(f.ServiceName),
		ServiceURL:   models.Nullable(f.ServiceURL),
		Username:     models.Nullable(f.Username),
		Email:        models.Nullable(f.Email),
		Password:     strings.TrimSpace(f.Password),
		Category:     strings.TrimSpace(f.Category),
		PasswordDate: strings.TrimSpace(f.PasswordDate),
		Notes:        models.Nullable(f.Notes),
	}
	if in.Category == "" {
		in.Category = models.DefaultCategory
	}

	if in.ServiceName == "" {
		return models.CredentialInput{}, feedback.Invalid(MsgServiceRequired)
	}
	if in.Password == "" && creating {
		return models.CredentialInput{}, feedback.Invalid(MsgPasswordMissing)
	}
	if in.PasswordDate == "" {
		return models.CredentialInput{}, feedback.Invalid(MsgDateRequired)
	}

	date, err := models.ParseDate(in.PasswordDate)
	if err != nil {
		return models.CredentialInput{}, feedback.Invalid(MsgInvalidDate)
	}
	in.PasswordDate = date.String()

	expiry, err := models.ParseDate(f.ExpiryDate)
	if err != nil {
		return models.CredentialInput{}, feedback.Invalid(MsgInvalidDate)
	}
	in.ExpiryDate = models.Nullable(expiry.String())
	return in, nil
}

// OpenCreate открывает пустую форму с сегодняшней датой и категорией по умолчанию.
func (c *Controller) OpenCreate() Form {
	c.mu.Lock()
	c.modal.OpenCreate()
	c.mu.Unlock()
	return Form{Category: models.DefaultCategory, PasswordDate: c.Today().String()}
}

// OpenEdit загружает учетную запись и открывает форму редактирования.
func (c *Controller) OpenEdit(ctx context.Context, id string) (Form, error) {
	cred, err := c.api.GetCredential(ctx, id)
	if err != nil {
		slog.Error("Ошибка загрузки пароля", "id", id, "error", err)
		return Form{}, err
	}
	c.mu.Lock()
	c.modal.OpenEdit(id)
	c.mu.Unlock()
	return FormFromCredential(*cred), nil
}

// CloseForm закрывает форму и сбрасывает режим редактирования.
func (c *Controller) CloseForm() {
	c.mu.Lock()
	c.modal.Close()
	c.mu.Unlock()
}

// EditingID возвращает идентификатор редактируемой записи.
func (c *Controller) EditingID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal.EditingID()
}

// Submit проверяет форму и создает или обновляет учетную запись.
func (c *Controller) Submit(ctx context.Context, f Form) (feedback.Notice, error) {
	id, editing := c.EditingID()
	in, err := Validate(f, !editing)
	if err != nil {
		return feedback.FromError(err, MsgSaveFailed), err
	}

	if editing {
		err = c.api.UpdateCredential(ctx, id, in)
	} else {
		err = c.api.CreateCredential(ctx, in)
	}
	if err != nil {
		slog.Error("Ошибка сохранения пароля", "id", id, "error", err)
		return feedback.FromResponse(err, MsgSaveRejected, MsgSaveFailed), err
	}

	c.mu.Lock()
	c.modal.Close()
	c.categories.Add(in.Category)
	c.mu.Unlock()

	c.refresh(ctx)

	if editing {
		return feedback.Ok(MsgUpdated), nil
	}
	return feedback.Ok(MsgSaved), nil
}
