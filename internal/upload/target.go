package upload

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

// Choice - значение переключателя типа загрузки.
type Choice string

const (
	ChoiceImage    Choice = "image"
	ChoiceDocument Choice = "document"
	ChoiceVideo    Choice = "video"
	ChoiceEvent    Choice = "event"
	// ChoicePassword не создает данных: это переход на экран паролей.
	ChoicePassword Choice = "password"
)

// Choices - варианты переключателя в порядке показа.
//
//nolint:gochecknoglobals // Неизменяемый набор
var Choices = []Choice{ChoiceImage, ChoiceDocument, ChoiceVideo, ChoiceEvent, ChoicePassword}

// FileType - тип загружаемого файла.
type FileType string

const (
	FileImage    FileType = "image"
	FileDocument FileType = "document"
	FileVideo    FileType = "video"
)

//nolint:gochecknoglobals // Неизменяемые списки расширений
var allowedExtensions = map[FileType][]string{
	FileImage:    {"jpg", "jpeg", "png", "gif", "webp"},
	FileDocument: {"pdf", "doc", "docx"},
	FileVideo:    {"mp4", "mkv", "avi", "webm"},
}

// Extensions возвращает допустимые расширения типа без точки.
func (t FileType) Extensions() []string {
	return slices.Clone(allowedExtensions[t])
}

// Allows сообщает, что расширение файла name (без учета регистра) допустимо для типа.
func (t FileType) Allows(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return ext != "" && slices.Contains(allowedExtensions[t], ext)
}

// Repetition - периодичность события.
type Repetition string

const (
	RepeatNone    Repetition = "none"
	RepeatDaily   Repetition = "daily"
	RepeatWeekly  Repetition = "weekly"
	RepeatMonthly Repetition = "monthly"
	RepeatYearly  Repetition = "yearly"
)

// Repetitions - варианты периодичности в порядке показа.
//
//nolint:gochecknoglobals // Неизменяемый набор
var Repetitions = []Repetition{RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly}

// Target - то, что будет отправлено: файл или событие.
type Target interface {
	target()
}

// FileTarget - загрузка файла с диска.
type FileTarget struct {
	Type FileType
	Path string
}

// EventTarget - событие календаря.
type EventTarget struct {
	Date       models.Date
	Repetition Repetition
}

func (FileTarget) target()  {}
func (EventTarget) target() {}

// FileType возвращает тип файла для варианта переключателя.
func (c Choice) FileType() (FileType, bool) {
	switch c {
	case ChoiceImage:
		return FileImage, true
	case ChoiceDocument:
		return FileDocument, true
	case ChoiceVideo:
		return FileVideo, true
	default:
		return "", false
	}
}

// Valid сообщает, что значение входит в Choices.
func (c Choice) Valid() bool {
	return slices.Contains(Choices, c)
}
