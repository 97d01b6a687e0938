package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/upload"
)

// uploadFocus - активный элемент формы загрузки.
type uploadFocus int

const (
	focusChoice uploadFocus = iota
	focusName
	focusDesc
	focusFile
	focusDate
	focusRepetition
)

// uploadModel - форма загрузки. Значения полей ввода переносятся в form при отправке.
type uploadModel struct {
	form  upload.Form
	name  textinput.Model
	desc  textinput.Model
	file  textinput.Model
	date  textinput.Model
	focus uploadFocus
}

func newUploadModel() uploadModel {
	input := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Prompt = ""
		in.Width = formInputWidth
		in.Placeholder = placeholder
		return in
	}
	return uploadModel{
		form: upload.DefaultForm(),
		name: input("Name"),
		desc: input("Description"),
		file: input("/path/to/file"),
		date: input("YYYY-MM-DD"),
	}
}

// visible - элементы, показанные в текущем режиме, в порядке обхода.
func (u *uploadModel) visible() []uploadFocus {
	fields := []uploadFocus{focusChoice, focusName, focusDesc}
	if u.form.ShowsFile() {
		fields = append(fields, focusFile)
	}
	if u.form.ShowsEvent() {
		fields = append(fields, focusDate, focusRepetition)
	}
	return fields
}

func (u *uploadModel) input(f uploadFocus) *textinput.Model {
	switch f {
	case focusName:
		return &u.name
	case focusDesc:
		return &u.desc
	case focusFile:
		return &u.file
	case focusDate:
		return &u.date
	default:
		return nil
	}
}

func (u *uploadModel) move(delta int) tea.Cmd {
	fields := u.visible()
	i := slices.Index(fields, u.focus)
	if in := u.input(u.focus); in != nil {
		in.Blur()
	}
	u.focus = fields[(i+delta+len(fields))%len(fields)]
	if in := u.input(u.focus); in != nil {
		return in.Focus()
	}
	return nil
}

// values переносит введенный текст в форму.
func (u *uploadModel) values() upload.Form {
	f := u.form
	f.Name = u.name.Value()
	f.Description = u.desc.Value()
	f.FilePath = u.file.Value()
	f.EventDate = u.date.Value()
	return f
}

// reset заполняет поля из формы f.
func (u *uploadModel) reset(f upload.Form) {
	u.form = f
	u.name.SetValue(f.Name)
	u.desc.SetValue(f.Description)
	u.file.SetValue(f.FilePath)
	u.date.SetValue(f.EventDate)
	if !slices.Contains(u.visible(), u.focus) {
		if in := u.input(u.focus); in != nil {
			in.Blur()
		}
		u.focus = focusChoice
	}
}

func (m *model) updateUpload(msg tea.Msg) tea.Cmd {
	u := &m.upload
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.state = dashboardScreen
			return nil
		case keyTab, keyDown:
			return u.move(1)
		case keyShiftTab, keyUp:
			return u.move(-1)
		case keyEnter:
			return m.run(uploadCmd(m.ctx, m.deps.Upload, u.values()))
		case keyLeft, keyRight:
			delta := 1
			if keyMsg.String() == keyLeft {
				delta = -1
			}
			switch u.focus {
			case focusChoice:
				next, action := upload.Switch(u.values(), cycle(upload.Choices, u.form.Choice, delta))
				if action == upload.OpenPasswords {
					return m.enter(passwordsScreen)
				}
				u.reset(next)
				return nil
			case focusRepetition:
				u.form.Repetition = cycle(upload.Repetitions, u.form.Repetition, delta)
				return nil
			}
		}
	}
	in := u.input(u.focus)
	if in == nil {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (m *model) handleUploaded(msg uploadedMsg) tea.Cmd {
	if msg.err == nil {
		m.upload.reset(msg.form)
	}
	return m.setStatus(msg.notice)
}

func (m *model) viewUpload() string {
	u := &m.upload
	var b strings.Builder
	b.WriteString(titleStyle.Render("Upload"))
	b.WriteString("\n\n")

	label := func(f uploadFocus, text string) string {
		text = fmt.Sprintf("%-14s", text+":")
		if u.focus == f {
			return focusedStyle.Render(text)
		}
		return text
	}

	choices := make([]string, len(upload.Choices))
	for i, c := range upload.Choices {
		choices[i] = string(c)
		if c == u.form.Choice {
			choices[i] = "[" + choices[i] + "]"
		}
	}
	b.WriteString(label(focusChoice, "Type") + strings.Join(choices, " ") + "\n")
	b.WriteString(label(focusName, "Name") + u.name.View() + "\n")
	b.WriteString(label(focusDesc, "Description") + u.desc.View() + "\n")
	if u.form.ShowsFile() {
		b.WriteString(label(focusFile, "File") + u.file.View() + "\n")
		if ft, ok := u.form.Choice.FileType(); ok {
			b.WriteString(hintStyle.Render("  allowed: "+strings.Join(ft.Extensions(), ", ")) + "\n")
		}
	}
	if u.form.ShowsEvent() {
		b.WriteString(label(focusDate, "Date") + u.date.View() + "\n")
		b.WriteString(label(focusRepetition, "Repetition") + "‹ " + string(u.form.Repetition) + " ›\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Your events"))
	b.WriteString("\n")
	b.WriteString(viewEvents(m.deps.Upload.Events()))
	return b.String()
}

func viewEvents(e upload.Events) string {
	if e.Message != "" {
		return hintStyle.Render(e.Message)
	}
	var b strings.Builder
	for _, ev := range e.Items {
		b.WriteString(fmt.Sprintf("• %s (%s)\n", ev.EventName, ev.DisplayDate()))
		if ev.EventDescription != "" {
			b.WriteString("  " + ev.EventDescription + "\n")
		}
		b.WriteString(hintStyle.Render("  Repetition: "+ev.Repetition) + "\n")
	}
	return b.String()
}
