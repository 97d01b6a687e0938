package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/credentials"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
)

//nolint:gochecknoglobals // Стили интерфейса
var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2) //nolint:mnd // отступы
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2) //nolint:mnd // отступы

	noticeStyles = map[feedback.Kind]lipgloss.Style{
		feedback.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		feedback.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		feedback.Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		feedback.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}

	expiryStyles = map[credentials.ExpiryClass]lipgloss.Style{
		credentials.ExpiryExpired: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		credentials.ExpiringSoon:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}

	// Ячейки таблицы обрезаются по ширине без учета ANSI, поэтому класс срока в таблице - префикс, а не цвет.
	expiryMarks = map[credentials.ExpiryClass]string{
		credentials.ExpiryExpired: "✗ ",
		credentials.ExpiringSoon:  "! ",
	}
)

// renderNotice оформляет уведомление в цвет его вида.
func renderNotice(n feedback.Notice) string {
	if n.Text == "" {
		return ""
	}
	style, ok := noticeStyles[n.Kind]
	if !ok {
		return n.Text
	}
	return style.Render(n.Text)
}

// renderExpiry оформляет срок действия по классу.
func renderExpiry(e credentials.Expiry) string {
	if style, ok := expiryStyles[e.Class]; ok {
		return style.Render(e.Text)
	}
	return e.Text
}

// expiryCell - срок действия для ячейки таблицы.
func expiryCell(e credentials.Expiry) string {
	return expiryMarks[e.Class] + e.Text
}
