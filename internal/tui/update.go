package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/credentials"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/records"
)

// Update обрабатывает входящие сообщения.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		m.menu.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.records.SetHeight(m.tableHeight())
		m.passwords.SetHeight(m.tableHeight())
		return m, nil

	case spinner.TickMsg:
		if m.busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status.Text = ""
		}
		return m, nil

	case loadedMsg:
		m.settle()
		return m, m.handleLoaded(msg)

	case actionMsg:
		m.settle()
		return m, m.handleAction(msg)

	case formOpenedMsg:
		m.settle()
		return m, m.handleFormOpened(msg)

	case detailMsg:
		m.settle()
		return m, m.handleDetail(msg)

	case uploadedMsg:
		m.settle()
		return m, m.handleUploaded(msg)

	case eventsMsg:
		m.settle()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case dashboardScreen:
		return m, m.updateDashboard(msg)
	case recordsScreen:
		return m, m.updateRecords(msg)
	case recordFormScreen:
		return m, m.updateRecordForm(msg)
	case passwordsScreen:
		return m, m.updatePasswords(msg)
	case passwordFormScreen:
		return m, m.updatePasswordForm(msg)
	case passwordDetailScreen:
		return m, m.updateDetail(msg)
	case filterScreen:
		return m, m.updateFilter(msg)
	case confirmScreen:
		return m, m.updateConfirm(msg)
	case uploadScreen:
		return m, m.updateUpload(msg)
	}
	return m, nil
}

func (m *model) handleLoaded(msg loadedMsg) tea.Cmd {
	switch msg.screen {
	case recordsScreen:
		m.syncRecords()
		return m.failed(msg.err, records.MsgListRejected, records.MsgListFailed)
	case passwordsScreen:
		m.syncPasswords()
		return m.failed(msg.err, credentials.MsgListRejected, credentials.MsgListFailed)
	}
	return nil
}

// handleAction показывает результат действия и, если оно завершено, возвращает к списку.
func (m *model) handleAction(msg actionMsg) tea.Cmd {
	switch msg.screen {
	case recordsScreen:
		m.syncRecords()
	case passwordsScreen:
		m.syncPasswords()
	}
	if msg.done && msg.err == nil && m.state != msg.screen {
		m.state = msg.screen
	}
	return m.setStatus(msg.notice)
}
