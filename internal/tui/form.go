package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const formInputWidth = 40

// formField описывает поле формы.
type formField struct {
	label  string
	secret bool
}

// formModel - форма из нескольких текстовых полей с переключением фокуса.
type formModel struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	// hints возвращает подсказки для поля i по текущему значению.
	hints func(i int, value string) []string
}

func newForm(title string, fields []formField, values []string) formModel {
	f := formModel{title: title}
	for i, field := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Width = formInputWidth
		in.Placeholder = field.label
		if field.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		if i < len(values) {
			in.SetValue(values[i])
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, in)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Value возвращает значение поля i.
func (f formModel) Value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return f.inputs[i].Value()
}

// SetValue заменяет значение поля i.
func (f *formModel) SetValue(i int, v string) {
	if i >= 0 && i < len(f.inputs) {
		f.inputs[i].SetValue(v)
	}
}

// Focused - индекс поля в фокусе.
func (f formModel) Focused() int { return f.focus }

// move переносит фокус на delta полей по кругу.
func (f *formModel) move(delta int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// Update обрабатывает навигацию и ввод в активном поле.
func (f *formModel) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyTab, keyDown:
			return f.move(1)
		case keyShiftTab, keyUp:
			return f.move(-1)
		}
	}
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f formModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := fmt.Sprintf("%-16s", f.labels[i]+":")
		if i == f.focus {
			label = focusedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString(in.View())
		b.WriteString("\n")
		if i == f.focus && f.hints != nil {
			if hints := f.hints(i, in.Value()); len(hints) > 0 {
				b.WriteString(hintStyle.Render("  " + strings.Join(hints, " · ")))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
