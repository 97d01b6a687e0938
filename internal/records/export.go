package records

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/csvexport"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

const (
	MsgExported     = "Export completed"
	MsgNothingFound = "No data to export"
	MsgExportFailed = "Failed to export data"

	exportResource = "records"
)

//nolint:gochecknoglobals // Заголовок выгрузки
var exportHeader = []string{"Date", "Customer", "Product", "Pair", "Price", "Added By", "Notes"}

// Export выгружает все записи, подходящие под текущий фильтр (без пагинации), в CSV-файл в каталоге dir.
// Пустая выборка - предупреждение и csvexport.ErrNothingToExport, файл не создается.
func (c *Controller) Export(ctx context.Context, dir string) (string, feedback.Notice, error) {
	query := c.filterQuery(c.list.Filter())

	page, err := c.api.ListRecords(ctx, query)
	if err != nil {
		slog.Error("Ошибка выгрузки записей", "error", err)
		return "", feedback.FromError(err, MsgExportFailed), err
	}
	if len(page.Records) == 0 {
		return "", feedback.Warn(MsgNothingFound), csvexport.ErrNothingToExport
	}

	name := csvexport.FileName(exportResource, c.Today())
	path, err := csvexport.WriteFile(dir, name, func(w *csvexport.Writer) error {
		return WriteCSV(w, page.Records)
	})
	if err != nil {
		slog.Error("Ошибка записи файла выгрузки", "name", name, "error", err)
		return "", feedback.Fail(MsgExportFailed), err
	}
	slog.Info("Записи выгружены", "path", path, "count", len(page.Records))
	return path, feedback.Ok(MsgExported), nil
}

// WriteCSV пишет заголовок и по строке на запись.
func WriteCSV(w *csvexport.Writer, records []models.Record) error {
	if err := w.Header(exportHeader...); err != nil {
		return err
	}
	for _, r := range records {
		err := w.Write(
			csvexport.Raw(r.RecordDate.String()),
			csvexport.Text(r.CustomerName),
			csvexport.Text(r.Product),
			csvexport.Raw(strconv.Itoa(r.Pairs())),
			csvexport.Raw(r.Price.String()),
			csvexport.Text(r.AddedBy()),
			csvexport.Text(r.Notes),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// IsEmptyExport сообщает, что выгрузка не создана из-за пустой выборки.
func IsEmptyExport(err error) bool {
	return errors.Is(err, csvexport.ErrNothingToExport)
}
