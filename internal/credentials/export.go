package credentials

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/csvexport"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/listing"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

const (
	MsgExported     = "Export completed"
	MsgNothingFound = "No data to export"
	MsgExportFailed = "Failed to export data"

	// ExportLimit - максимум записей в одной выгрузке.
	ExportLimit = 1000

	exportResource = "passwords"
)

//nolint:gochecknoglobals // Заголовок выгрузки
var exportHeader = []string{"Service", "URL", "Username", "Email", "Category", "Date", "Expiry", "Notes"}

// Export выгружает учетные записи под текущим фильтром в CSV. Пароли в файл не попадают.
func (c *Controller) Export(ctx context.Context, dir string) (string, feedback.Notice, error) {
	query := listing.Merge(
		c.list.Filter().Values(CategoryKey),
		url.Values{"limit": {strconv.Itoa(ExportLimit)}},
	)

	page, err := c.api.ListCredentials(ctx, query)
	if err != nil {
		slog.Error("Ошибка выгрузки паролей", "error", err)
		return "", feedback.FromError(err, MsgExportFailed), err
	}
	if len(page.Passwords) == 0 {
		return "", feedback.Warn(MsgNothingFound), csvexport.ErrNothingToExport
	}

	name := csvexport.FileName(exportResource, c.Today())
	path, err := csvexport.WriteFile(dir, name, func(w *csvexport.Writer) error {
		return WriteCSV(w, page.Passwords)
	})
	if err != nil {
		slog.Error("Ошибка записи файла выгрузки", "name", name, "error", err)
		return "", feedback.Fail(MsgExportFailed), err
	}
	slog.Info("Пароли выгружены", "path", path, "count", len(page.Passwords))
	return path, feedback.Ok(MsgExported), nil
}

// WriteCSV пишет заголовок и по строке на учетную запись.
func WriteCSV(w *csvexport.Writer, creds []models.Credential) error {
	if err := w.Header(exportHeader...); err != nil {
		return err
	}
	for _, cred := range creds {
		err := w.Write(
			csvexport.Text(cred.ServiceName),
			csvexport.Text(cred.ServiceURL),
			csvexport.Text(cred.Username),
			csvexport.Text(cred.Email),
			csvexport.Text(cred.CategoryOrDefault()),
			csvexport.Raw(cred.PasswordDate.String()),
			csvexport.Raw(cred.ExpiryDate.String()),
			csvexport.Text(cred.Notes),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
