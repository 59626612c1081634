package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/structlayout/record"
)

type interactiveModel struct {
	probed  map[string]error
	err     error
	layouts []record.Layout
	table   table.Model
	active  int
	probing bool
}

type probedMsg struct {
	err     error
	results map[string]error
}

func newInteractiveModel(layouts []record.Layout) *interactiveModel {
	cols := make([]table.Column, len(columnTitles))
	for i, title := range columnTitles {
		width := 7
		if i == 0 {
			width = 10
		}
		cols[i] = table.Column{Title: title, Width: width}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4"))
	t.SetStyles(s)

	m := &interactiveModel{
		layouts: layouts,
		table:   t,
	}
	m.showActive()
	return m
}

func (m *interactiveModel) showActive() {
	raw := fieldRows(m.layouts[m.active])
	rows := make([]table.Row, len(raw))
	for i, r := range raw {
		rows[i] = table.Row(r)
	}
	m.table.SetRows(rows)
	m.table.SetHeight(len(rows) + 1)
	m.table.SetCursor(0)
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) runProbe() tea.Msg {
	results, err := probeLayouts(context.Background(), m.layouts)
	return probedMsg{results: results, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab", "right", "l":
			m.active = (m.active + 1) % len(m.layouts)
			m.showActive()
			return m, nil

		case "shift+tab", "left", "h":
			m.active = (m.active + len(m.layouts) - 1) % len(m.layouts)
			m.showActive()
			return m, nil

		case "p":
			if m.probing {
				return m, nil
			}
			m.probing = true
			return m, m.runProbe
		}

	case probedMsg:
		m.probing = false
		m.err = msg.err
		m.probed = msg.results
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Record Layout"))
	b.WriteString("\n\n")

	for i, l := range m.layouts {
		if i == m.active {
			b.WriteString(activeTabStyle.Render(l.Name))
		} else {
			b.WriteString(tabStyle.Render(l.Name))
		}
	}
	b.WriteString("\n\n")

	l := m.layouts[m.active]
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(summary(l))
	b.WriteString("\n")

	switch {
	case m.probing:
		b.WriteString(helpStyle.Render("probing..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.probed != nil:
		b.WriteString(probeStatus(m.probed[l.Name]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ layout • ↑/↓ field • p probe • q quit"))
	return b.String()
}

func runInteractive(layouts []record.Layout, withProbe bool) error {
	m := newInteractiveModel(layouts)
	if withProbe {
		m.probed, m.err = probeLayouts(context.Background(), layouts)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
