package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// EventsAPI - события календаря и загрузка файлов.
type EventsAPI interface {
	ListEvents(ctx context.Context, userID string) ([]models.Event, error)
	CreateEvent(ctx context.Context, in models.EventInput) error
	UploadFile(ctx context.Context, up FileUpload) (*models.FileMeta, error)
}

// FileUpload - поля multipart-формы POST /files.
type FileUpload struct {
	UserID      string
	FileType    string // image, document или video
	Name        string
	Description string
	// OriginalName - имя файла на диске, передается в заголовке части "file".
	OriginalName string
	Content      io.Reader
}

func (c *httpClient) ListEvents(ctx context.Context, userID string) ([]models.Event, error) {
	var events []models.Event
	query := url.Values{}
	query.Set("user_id", userID)
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{"events"},
		query:  query,
		out:    &events,
	}); err != nil {
		return nil, fmt.Errorf("ошибка загрузки событий: %w", err)
	}
	return events, nil
}

func (c *httpClient) CreateEvent(ctx context.Context, in models.EventInput) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	if err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        []string{"events"},
		body:        body,
		contentType: "application/json",
	}); err != nil {
		return fmt.Errorf("ошибка создания события: %w", err)
	}
	return nil
}

// UploadFile отправляет файл потоково, не загружая его целиком в память.
func (c *httpClient) UploadFile(ctx context.Context, up FileUpload) (*models.FileMeta, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadForm(form, up))
	}()

	var meta models.FileMeta
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        []string{"files"},
		body:        pr,
		contentType: form.FormDataContentType(),
		out:         &meta,
	})
	// Разблокируем писателя, если запрос завершился раньше, чем форма была дочитана.
	_ = pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки файла %s: %w", up.OriginalName, err)
	}
	return &meta, nil
}

func writeUploadForm(form *multipart.Writer, up FileUpload) error {
	fields := []struct{ name, value string }{
		{"user_id", up.UserID},
		{"file_type", up.FileType},
		{"file_name", up.Name},
		{"file_description", up.Description},
	}
	for _, f := range fields {
		if err := form.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("ошибка записи поля %s: %w", f.name, err)
		}
	}
	part, err := form.CreateFormFile("file", up.OriginalName)
	if err != nil {
		return fmt.Errorf("ошибка создания части file: %w", err)
	}
	if _, err = io.Copy(part, up.Content); err != nil {
		return fmt.Errorf("ошибка чтения файла: %w", err)
	}
	return form.Close()
}
