// Package csvexport пишет CSV в формате выгрузок: строка заголовка,
// строки через "\n", текстовые поля всегда в двойных кавычках.
package csvexport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// ErrNothingToExport - выборка пуста, файл не создается.
var ErrNothingToExport = errors.New("нет данных для экспорта")

// Field - значение ячейки.
type Field struct {
	Value  string
	Quoted bool
}

// Text - текстовое поле, всегда в кавычках.
func Text(s string) Field { return Field{Value: s, Quoted: true} }

// Raw - поле без кавычек (даты, числа). Кавычки все равно ставятся,
// если значение содержит разделитель, кавычку или перевод строки.
func Raw(s string) Field { return Field{Value: s} }

// Writer пишет строки CSV.
type Writer struct {
	w    *bufio.Writer
	rows int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Header пишет строку заголовка без кавычек.
func (w *Writer) Header(names ...string) error {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Raw(n)
	}
	return w.Write(fields...)
}

// Write пишет одну строку.
func (w *Writer) Write(fields ...Field) error {
	var b strings.Builder
	if w.rows > 0 {
		b.WriteByte('\n')
	}
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.encode())
	}
	if _, err := w.w.WriteString(b.String()); err != nil {
		return fmt.Errorf("ошибка записи строки CSV: %w", err)
	}
	w.rows++
	return nil
}

// Rows - количество записанных строк, включая заголовок.
func (w *Writer) Rows() int { return w.rows }

// Flush сбрасывает буфер.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("ошибка записи CSV: %w", err)
	}
	return nil
}

func (f Field) encode() string {
	if !f.Quoted && !strings.ContainsAny(f.Value, ",\"\r\n") {
		return f.Value
	}
	return `"` + strings.ReplaceAll(f.Value, `"`, `""`) + `"`
}

// FileName возвращает имя файла выгрузки: <resource>-export-<YYYY-MM-DD>.csv.
func FileName(resource string, day models.Date) string {
	return fmt.Sprintf("%s-export-%s.csv", resource, day)
}

// WriteFile создает файл name в каталоге dir и заполняет его через fill.
// При ошибке частично записанный файл удаляется. Возвращает путь к файлу.
func WriteFile(dir, name string, fill func(*Writer) error) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:mnd // права каталога
		return "", fmt.Errorf("ошибка создания каталога %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path) //nolint:gosec // путь собран из настроек пользователя
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла %s: %w", path, err)
	}

	w := NewWriter(f)
	err = fill(w)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("ошибка закрытия файла %s: %w", path, cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}
