package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/credentials"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/records"
)

func (m *model) handleDetail(msg detailMsg) tea.Cmd {
	if errors.Is(msg.err, credentials.ErrNoDetail) {
		return nil
	}
	if msg.err != nil {
		if m.state == passwordDetailScreen {
			return m.failed(msg.err, credentials.MsgDecryptFailed, credentials.MsgDecryptFailed)
		}
		return m.failed(msg.err, credentials.MsgDetailFailed, credentials.MsgDetailFailed)
	}
	m.detail = msg.detail
	m.state = passwordDetailScreen
	return nil
}

func (m *model) updateDetail(msg tea.Msg) tea.Cmd {
	c := m.deps.Credentials
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case keyEsc, keyBack:
		c.CloseDetail()
		m.state = passwordsScreen
	case keyView:
		return m.run(detailCmd(m.ctx, c.ToggleReveal))
	case keyCopy:
		return m.run(noticeCmd(m.ctx, passwordDetailScreen, false, c.Copy))
	case keyEdit:
		id := m.detail.Credential.ID.String()
		c.CloseDetail()
		m.state = passwordsScreen
		return m.run(openPasswordCmd(m.ctx, c, id))
	case keyDelete:
		id := m.detail.Credential.ID.String()
		c.CloseDetail()
		c.RequestDelete(id)
		m.askConfirm(passwordsScreen, credentials.MsgDeleteConfirm)
	}
	return nil
}

func (m *model) viewDetail() string {
	d := m.detail
	cred := d.Credential
	rows := [][2]string{
		{"Service", cred.ServiceName},
		{"URL", orDash(cred.ServiceURL)},
		{"Username", orDash(cred.Username)},
		{"Email", orDash(cred.Email)},
		{"Password", d.Password},
		{"Category", cred.CategoryOrDefault()},
		{"Password date", cred.PasswordDate.Display()},
		{"Expiry", renderExpiry(d.Expiry)},
		{"Added by", cred.AddedBy()},
		{"Notes", orDash(cred.Notes)},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(cred.ServiceName))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-15s %s\n", r[0]+":", r[1]))
	}
	return b.String()
}

// handleFormOpened открывает форму редактирования, загруженную с сервера.
func (m *model) handleFormOpened(msg formOpenedMsg) tea.Cmd {
	switch msg.screen {
	case recordFormScreen:
		if msg.err != nil {
			return m.setStatus(feedback.FromError(msg.err, records.MsgLoadRejected))
		}
		m.openRecordForm("Edit Record", msg.values)
	case passwordFormScreen:
		if msg.err != nil {
			return m.setStatus(feedback.FromError(msg.err, credentials.MsgLoadRejected))
		}
		m.openPasswordForm("Edit Password", msg.values)
	}
	return nil
}
