package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MohammedShehe/BrothersCloud-frontend/internal/feedback"
	"github.com/MohammedShehe/BrothersCloud-frontend/internal/records"
)

const maxHints = 8

// Поля формы записи.
const (
	recordFieldCustomer = iota
	recordFieldProduct
	recordFieldPair
	recordFieldPrice
	recordFieldDate
	recordFieldNotes
)

//nolint:gochecknoglobals // Описание полей формы
var recordFields = []formField{
	{label: "Customer"},
	{label: "Product"},
	{label: "Pair"},
	{label: "Price"},
	{label: "Date"},
	{label: "Notes"},
}

func newRecordsTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Customer", Width: 18},
			{Title: "Product", Width: 14},
			{Title: "Pair", Width: 5},
			{Title: "Price", Width: 10},
			{Title: "Added By", Width: 12},
			{Title: "Notes", Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(minTableHeight),
	)
}

// syncRecords переносит состояние контроллера в таблицу.
func (m *model) syncRecords() {
	v := m.deps.Records.View()
	rows := make([]table.Row, len(v.Records))
	m.recordIDs = make([]string, len(v.Records))
	for i, r := range v.Records {
		m.recordIDs[i] = r.ID.String()
		rows[i] = table.Row{
			r.RecordDate.Display(),
			r.CustomerName,
			r.Product,
			strconv.Itoa(r.Pairs()),
			r.Price.Display(),
			r.Author(),
			r.Notes,
		}
	}
	m.records.SetRows(rows)
	if m.records.Cursor() >= len(rows) {
		m.records.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *model) selectedRecord() (string, bool) {
	i := m.records.Cursor()
	if i < 0 || i >= len(m.recordIDs) {
		return "", false
	}
	return m.recordIDs[i], true
}

func (m *model) viewRecords() string {
	v := m.deps.Records.View()
	var b strings.Builder
	b.WriteString(titleStyle.Render("FBSC Records"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statStyle.Render(fmt.Sprintf("Today's orders\n%d", v.Stats.TodayOrders)),
		statStyle.Render(fmt.Sprintf("Total orders\n%d", v.Stats.TotalOrders)),
		statStyle.Render("Revenue\n"+v.Stats.TotalRevenue.Display()),
		statStyle.Render("Avg order\n"+v.Stats.AvgOrderValue.Display()),
	))
	b.WriteString("\n")
	if v.Loaded && len(v.Records) == 0 {
		b.WriteString(hintStyle.Render("No records found"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.records.View())
		b.WriteString("\n")
	}
	b.WriteString(windowLine(v.Window.Start, v.Window.End, v.Window.Total, v.Page, v.Filter.IsDefault()))
	return b.String()
}

// windowLine - строка "Showing 1-20 of 45" под таблицей.
func windowLine(start, end, total, page int, unfiltered bool) string {
	line := fmt.Sprintf("Showing %d-%d of %d • Page %d", start, end, total, page)
	if !unfiltered {
		line += " • filtered"
	}
	return hintStyle.Render(line)
}

func (m *model) updateRecords(msg tea.Msg) tea.Cmd {
	c := m.deps.Records
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyBack, keyEsc:
			m.state = dashboardScreen
			return nil
		case keyAdd:
			m.openRecordForm("Add Record", recordValues(c.OpenCreate()))
			return nil
		case keyEdit:
			if id, found := m.selectedRecord(); found {
				return m.run(openRecordCmd(m.ctx, c, id))
			}
			return nil
		case keyDelete:
			if id, found := m.selectedRecord(); found {
				c.RequestDelete(id)
				m.askConfirm(recordsScreen, records.MsgDeleteConfirm)
			}
			return nil
		case keyFilter:
			m.openFilter(recordsScreen, "Product", c.View().Filter)
			return nil
		case keyReset:
			return m.run(loadCmd(m.ctx, recordsScreen, c.ResetFilter))
		case keyExport:
			return m.run(exportCmd(m.ctx, recordsScreen, m.deps.ExportDir, c.Export))
		case keyLeft:
			if c.View().Window.HasPrev {
				return m.run(loadCmd(m.ctx, recordsScreen, c.PrevPage))
			}
			return nil
		case keyRight:
			if c.View().Window.HasNext {
				return m.run(loadCmd(m.ctx, recordsScreen, c.NextPage))
			}
			return nil
		}
	}
	var cmd tea.Cmd
	m.records, cmd = m.records.Update(msg)
	return cmd
}

func (m *model) openRecordForm(title string, values []string) {
	m.form = newForm(title, recordFields, values)
	m.form.hints = func(i int, value string) []string {
		if i != recordFieldProduct {
			return nil
		}
		var hints []string
		if strings.TrimSpace(value) == "" {
			hints = m.deps.Records.QuickProducts()
		} else {
			hints = m.deps.Records.SuggestProducts(value)
		}
		if len(hints) > maxHints {
			hints = hints[:maxHints]
		}
		return hints
	}
	m.parent = recordsScreen
	m.state = recordFormScreen
}

func (m *model) updateRecordForm(msg tea.Msg) tea.Cmd {
	c := m.deps.Records
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			c.CloseForm()
			m.state = recordsScreen
			return nil
		case keyEnter:
			form := recordForm(m.form)
			return m.run(noticeCmd(m.ctx, recordsScreen, true, func(ctx context.Context) (feedback.Notice, error) {
				return c.Submit(ctx, form)
			}))
		}
	}
	return m.form.Update(msg)
}

func recordValues(f records.Form) []string {
	return []string{f.CustomerName, f.Product, f.Pair, f.Price, f.RecordDate, f.Notes}
}

func recordForm(f formModel) records.Form {
	return records.Form{
		CustomerName: f.Value(recordFieldCustomer),
		Product:      f.Value(recordFieldProduct),
		Pair:         f.Value(recordFieldPair),
		Price:        f.Value(recordFieldPrice),
		RecordDate:   f.Value(recordFieldDate),
		Notes:        f.Value(recordFieldNotes),
	}
}
