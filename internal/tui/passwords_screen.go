package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/credentials"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
)

// Поля формы пароля.
const (
	passwordFieldService = iota
	passwordFieldURL
	passwordFieldUsername
	passwordFieldEmail
	passwordFieldPassword
	passwordFieldCategory
	passwordFieldDate
	passwordFieldExpiry
	passwordFieldNotes
)

//nolint:gochecknoglobals // Описание полей формы
var passwordFields = []formField{
	{label: "Service"},
	{label: "URL"},
	{label: "Username"},
	{label: "Email"},
	{label: "Password", secret: true},
	{label: "Category"},
	{label: "Password date"},
	{label: "Expiry date"},
	{label: "Notes"},
}

func newPasswordsTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Service", Width: 18},
			{Title: "Login", Width: 22},
			{Title: "Category", Width: 13},
			{Title: "Date", Width: 12},
			{Title: "Expiry", Width: 16},
			{Title: "Added By", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(minTableHeight),
	)
}

// syncPasswords переносит состояние контроллера в таблицу.
// Срок действия пересчитывается на текущий день при каждом вызове.
func (m *model) syncPasswords() credentials.View {
	v := m.deps.Credentials.View()
	rows := make([]table.Row, len(v.Rows))
	m.passwordIDs = make([]string, len(v.Rows))
	for i, r := range v.Rows {
		m.passwordIDs[i] = r.ID.String()
		rows[i] = table.Row{
			r.ServiceName,
			r.Login(),
			r.CategoryOrDefault(),
			r.PasswordDate.Display(),
			expiryCell(r.Expiry),
			r.AddedBy(),
		}
	}
	m.passwords.SetRows(rows)
	if m.passwords.Cursor() >= len(rows) {
		m.passwords.SetCursor(max(len(rows)-1, 0))
	}
	return v
}

func (m *model) selectedPassword() (string, bool) {
	i := m.passwords.Cursor()
	if i < 0 || i >= len(m.passwordIDs) {
		return "", false
	}
	return m.passwordIDs[i], true
}

func (m *model) viewPasswords() string {
	v := m.syncPasswords()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Family Passwords"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statStyle.Render(fmt.Sprintf("Passwords\n%d", v.Stats.TotalPasswords)),
		statStyle.Render(fmt.Sprintf("Categories\n%d", v.Stats.TotalCategories)),
		statStyle.Render(fmt.Sprintf("Expired\n%d", v.Stats.ExpiredPasswords)),
		statStyle.Render(fmt.Sprintf("Expiring soon\n%d", v.Stats.ExpiringSoon)),
	))
	b.WriteString("\n")
	if v.Loaded && len(v.Rows) == 0 {
		b.WriteString(hintStyle.Render("No passwords found"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.passwords.View())
		b.WriteString("\n")
	}
	b.WriteString(windowLine(v.Window.Start, v.Window.End, v.Window.Total, v.Page, v.Filter.IsDefault()))
	return b.String()
}

func (m *model) updatePasswords(msg tea.Msg) tea.Cmd {
	c := m.deps.Credentials
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyBack, keyEsc:
			m.state = dashboardScreen
			return nil
		case keyEnter, keyView:
			if id, found := m.selectedPassword(); found {
				return m.run(detailCmd(m.ctx, func(ctx context.Context) (credentials.Detail, error) {
					return c.OpenDetail(ctx, id)
				}))
			}
			return nil
		case keyAdd:
			m.openPasswordForm("Add Password", passwordValues(c.OpenCreate()))
			return nil
		case keyEdit:
			if id, found := m.selectedPassword(); found {
				return m.run(openPasswordCmd(m.ctx, c, id))
			}
			return nil
		case keyDelete:
			if id, found := m.selectedPassword(); found {
				c.RequestDelete(id)
				m.askConfirm(passwordsScreen, credentials.MsgDeleteConfirm)
			}
			return nil
		case keyFilter:
			m.openFilter(passwordsScreen, "Category", c.View().Filter)
			return nil
		case keyReset:
			return m.run(loadCmd(m.ctx, passwordsScreen, c.ResetFilter))
		case keyExport:
			return m.run(exportCmd(m.ctx, passwordsScreen, m.deps.ExportDir, c.Export))
		case keyLeft:
			if c.View().Window.HasPrev {
				return m.run(loadCmd(m.ctx, passwordsScreen, c.PrevPage))
			}
			return nil
		case keyRight:
			if c.View().Window.HasNext {
				return m.run(loadCmd(m.ctx, passwordsScreen, c.NextPage))
			}
			return nil
		}
	}
	var cmd tea.Cmd
	m.passwords, cmd = m.passwords.Update(msg)
	return cmd
}

func (m *model) openPasswordForm(title string, values []string) {
	m.form = newForm(title, passwordFields, values)
	m.form.hints = func(i int, value string) []string {
		switch {
		case i == passwordFieldCategory && strings.TrimSpace(value) == "":
			return m.deps.Credentials.QuickCategories()
		case i == passwordFieldCategory:
			hints := m.deps.Credentials.SuggestCategories(value)
			if len(hints) > maxHints {
				hints = hints[:maxHints]
			}
			return hints
		case i == passwordFieldPassword:
			if _, editing := m.deps.Credentials.EditingID(); editing {
				return []string{"leave empty to keep the current password"}
			}
		}
		return nil
	}
	m.parent = passwordsScreen
	m.state = passwordFormScreen
}

func (m *model) updatePasswordForm(msg tea.Msg) tea.Cmd {
	c := m.deps.Credentials
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			c.CloseForm()
			m.state = passwordsScreen
			return nil
		case keyGenerate:
			p, err := credentials.Generate(credentials.GeneratedLength)
			if err != nil {
				return m.setStatus(feedback.Fail(err.Error()))
			}
			m.form.SetValue(passwordFieldPassword, p)
			return nil
		case keyEnter:
			form := passwordForm(m.form)
			return m.run(noticeCmd(m.ctx, passwordsScreen, true, func(ctx context.Context) (feedback.Notice, error) {
				return c.Submit(ctx, form)
			}))
		}
	}
	return m.form.Update(msg)
}

func passwordValues(f credentials.Form) []string {
	return []string{
		f.ServiceName, f.ServiceURL, f.Username, f.Email, f.Password,
		f.Category, f.PasswordDate, f.ExpiryDate, f.Notes,
	}
}

func passwordForm(f formModel) credentials.Form {
	return credentials.Form{
		ServiceName:  f.Value(passwordFieldService),
		ServiceURL:   f.Value(passwordFieldURL),
		Username:     f.Value(passwordFieldUsername),
		Email:        f.Value(passwordFieldEmail),
		Password:     f.Value(passwordFieldPassword),
		Category:     f.Value(passwordFieldCategory),
		PasswordDate: f.Value(passwordFieldDate),
		ExpiryDate:   f.Value(passwordFieldExpiry),
		Notes:        f.Value(passwordFieldNotes),
	}
}
