package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/listing"
)

// Поля формы фильтра.
const (
	filterFieldSearch = iota
	filterFieldCategory
	filterFieldFrom
	filterFieldTo
)

// openFilter открывает фильтр списка parent. categoryLabel - "Product" или "Category".
func (m *model) openFilter(parent screenState, categoryLabel string, current listing.Filter) {
	fields := []formField{
		{label: "Search"},
		{label: categoryLabel},
		{label: "From"},
		{label: "To"},
	}
	m.form = newForm("Filter", fields, []string{current.Search, current.Category, current.From, current.To})
	m.form.hints = func(i int, _ string) []string {
		switch i {
		case filterFieldCategory:
			return []string{listing.All}
		case filterFieldFrom, filterFieldTo:
			return []string{"YYYY-MM-DD"}
		}
		return nil
	}
	m.parent = parent
	m.state = filterScreen
}

func (m *model) updateFilter(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.state = m.parent
			return nil
		case keyEnter:
			f := listing.Filter{
				Search:   m.form.Value(filterFieldSearch),
				Category: m.form.Value(filterFieldCategory),
				From:     m.form.Value(filterFieldFrom),
				To:       m.form.Value(filterFieldTo),
			}
			if err := f.Validate(); err != nil {
				return m.setStatus(feedback.FromError(err, err.Error()))
			}
			parent := m.parent
			m.state = parent
			return m.run(loadCmd(m.ctx, parent, func(ctx context.Context) error {
				if parent == passwordsScreen {
					return m.deps.Credentials.ApplyFilter(ctx, f)
				}
				return m.deps.Records.ApplyFilter(ctx, f)
			}))
		}
	}
	return m.form.Update(msg)
}

// askConfirm показывает запрос подтверждения удаления для списка parent.
func (m *model) askConfirm(parent screenState, question string) {
	m.confirm = question
	m.parent = parent
	m.state = confirmScreen
}

func (m *model) updateConfirm(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	parent := m.parent
	switch keyMsg.String() {
	case keyYes:
		m.state = parent
		if parent == passwordsScreen {
			return m.run(noticeCmd(m.ctx, parent, true, m.deps.Credentials.ConfirmDelete))
		}
		return m.run(noticeCmd(m.ctx, parent, true, m.deps.Records.ConfirmDelete))
	case keyNo, keyEsc:
		if parent == passwordsScreen {
			m.deps.Credentials.CancelDelete()
		} else {
			m.deps.Records.CancelDelete()
		}
		m.state = parent
	}
	return nil
}
