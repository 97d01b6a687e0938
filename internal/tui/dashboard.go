package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	menuWidth  = 60
	menuHeight = 14
)

// menuItem - пункт главного меню. Реализует list.DefaultItem.
type menuItem struct {
	title  string
	desc   string
	target screenState
	quit   bool
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

func newMenu() list.Model {
	items := []list.Item{
		menuItem{title: "Records", desc: "FBSC sales records, stats and export", target: recordsScreen},
		menuItem{title: "Passwords", desc: "Family password manager", target: passwordsScreen},
		menuItem{title: "Upload", desc: "Upload images, documents, videos or add events", target: uploadScreen},
		menuItem{title: "Quit", desc: "Exit BrothersCloud", quit: true},
	}
	l := list.New(items, list.NewDefaultDelegate(), menuWidth, menuHeight)
	l.Title = "BrothersCloud"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	return l
}

func (m *model) updateDashboard(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit:
			return tea.Quit
		case keyEnter:
			item, isMenuItem := m.menu.SelectedItem().(menuItem)
			if !isMenuItem {
				return nil
			}
			if item.quit {
				return tea.Quit
			}
			return m.enter(item.target)
		}
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return cmd
}
