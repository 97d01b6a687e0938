package upload

import (
	"fmt"
	"strings"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/models"
)

const (
	MsgRequired      = "Please fill all required fields."
	MsgSelectFile    = "Please select a file."
	MsgSelectDate    = "Please select a date for the event."
	MsgPastDate      = "Event date cannot be in the past."
	MsgInvalidDate   = "Please enter a valid date (YYYY-MM-DD)."
	MsgUnauthorized  = "User not authenticated. Please log in."
	msgInvalidFileFm = "Invalid file type. Allowed: %s"
)

// Form - значения формы загрузки.
type Form struct {
	Choice      Choice
	Name        string
	Description string
	FilePath    string
	EventDate   string
	Repetition  Repetition
}

// DefaultForm - форма в исходном состоянии: изображение, поле файла видно.
func DefaultForm() Form {
	return Form{Choice: ChoiceImage, Repetition: RepeatNone}
}

// ShowsFile сообщает, что в текущем режиме показывается поле выбора файла.
func (f Form) ShowsFile() bool {
	_, ok := f.Choice.FileType()
	return ok
}

// ShowsEvent сообщает, что показываются поля события.
func (f Form) ShowsEvent() bool {
	return f.Choice == ChoiceEvent
}

// Action - что делать после переключения режима.
type Action int

const (
	// Stay - остаться на форме.
	Stay Action = iota
	// OpenPasswords - перейти на экран паролей, ничего не отправляя.
	OpenPasswords
)

// Switch меняет режим формы. Выбранный файл сбрасывается при любом переключении.
// Выбор "password" форму не меняет и возвращает OpenPasswords.
func Switch(f Form, c Choice) (Form, Action) {
	if c == ChoicePassword {
		return f, OpenPasswords
	}
	if !c.Valid() {
		return f, Stay
	}
	f.Choice = c
	f.FilePath = ""
	return f, Stay
}

// Validate проверяет форму и возвращает цель отправки.
func (f Form) Validate(today models.Date) (Target, error) {
	if strings.TrimSpace(f.Name) == "" || !f.Choice.Valid() || f.Choice == ChoicePassword {
		return nil, feedback.Invalid(MsgRequired)
	}

	if f.Choice == ChoiceEvent {
		if strings.TrimSpace(f.EventDate) == "" {
			return nil, feedback.Invalid(MsgSelectDate)
		}
		date, err := models.ParseDate(f.EventDate)
		if err != nil {
			return nil, feedback.Invalid(MsgInvalidDate)
		}
		if date.Before(today) {
			return nil, feedback.Invalid(MsgPastDate)
		}
		rep := f.Repetition
		if rep == "" {
			rep = RepeatNone
		}
		return EventTarget{Date: date, Repetition: rep}, nil
	}

	ft, _ := f.Choice.FileType()
	path := strings.TrimSpace(f.FilePath)
	if path == "" {
		return nil, feedback.Invalid(MsgSelectFile)
	}
	if !ft.Allows(path) {
		return nil, feedback.Invalid(fmt.Sprintf(msgInvalidFileFm, strings.Join(ft.Extensions(), ", ")))
	}
	return FileTarget{Type: ft, Path: path}, nil
}
