package csvexport_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/csvexport"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.Header("Date", "Customer", "Price"))
	require.NoError(t, w.Write(csvexport.Raw("2026-10-18"), csvexport.Text(`Ann "A" Lee`), csvexport.Raw("12.5")))
	require.NoError(t, w.Write(csvexport.Raw(""), csvexport.Text(""), csvexport.Raw("1,5")))
	require.NoError(t, w.Flush())

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Customer,Price", lines[0])
	assert.Equal(t, `2026-10-18,"Ann ""A"" Lee",12.5`, lines[1])
	assert.Equal(t, `,"","1,5"`, lines[2])
	assert.Equal(t, 3, w.Rows())
}

func TestFileName(t *testing.T) {
	day := models.MustParseDate("2026-10-18")
	assert.Equal(t, "records-export-2026-10-18.csv", csvexport.FileName("records", day))
	assert.Equal(t, "passwords-export-2026-10-18.csv", csvexport.FileName("passwords", day))
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := csvexport.WriteFile(dir, "out.csv", func(w *csvexport.Writer) error {
		if err := w.Header("A", "B"); err != nil {
			return err
		}
		return w.Write(csvexport.Text("x"), csvexport.Raw("1"))
	})
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A,B\n\"x\",1", string(data))

	boom := errors.New("boom")
	_, err = csvexport.WriteFile(dir, "broken.csv", func(*csvexport.Writer) error { return boom })
	require.ErrorIs(t, err, boom)
	_, statErr := os.Stat(filepath.Join(dir, "broken.csv"))
	assert.True(t, os.IsNotExist(statErr), "частично записанный файл должен быть удален")
}
