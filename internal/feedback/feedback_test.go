package feedback

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type serverErr struct{ msg string }

func (e serverErr) Error() string         { return "server: " + e.msg }
func (e serverErr) ServerMessage() string { return e.msg }

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     Notice
	}{
		{"Нет ошибки", nil, "Failed", Notice{}},
		{"Валидация", Invalid("Price must be greater than 0"), "Failed", Warn("Price must be greater than 0")},
		{"Обернутая валидация", fmt.Errorf("submit: %w", Invalid("x")), "Failed", Warn("x")},
		{"Сообщение сервера", fmt.Errorf("api: %w", serverErr{"Record not found"}), "Error deleting record", Fail("Record not found")},
		{"Пустое сообщение сервера", serverErr{}, "Error deleting record", Fail("Error deleting record")},
		{"Сетевая ошибка", errors.New("dial tcp: connection refused"), "Failed to delete record", Fail("Failed to delete record")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err, tt.fallback))
		})
	}
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(fmt.Errorf("wrap: %w", Invalid("bad"))))
	assert.False(t, IsValidation(errors.New("bad")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "error", Error.String())
}

func TestFromResponse(t *testing.T) {
	const rejected, failed = "Error saving record", "Failed to save record"

	assert.Equal(t, Notice{}, FromResponse(nil, rejected, failed))
	assert.Equal(t, Fail("Duplicate"), FromResponse(serverErr{"Duplicate"}, rejected, failed))
	assert.Equal(t, Fail(rejected), FromResponse(fmt.Errorf("api: %w", serverErr{}), rejected, failed))
	assert.Equal(t, Fail(failed), FromResponse(errors.New("timeout"), rejected, failed))
	assert.Equal(t, Warn("bad"), FromResponse(Invalid("bad"), rejected, failed))
}
