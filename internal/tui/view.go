// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	label    lipgloss.Style
	active   lipgloss.Style
	inactive lipgloss.Style
	focused  lipgloss.Style
	pane     lipgloss.Style
	status   lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		label:    lipgloss.NewStyle().Bold(true),
		active:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f6be00")).Bold(true),
		inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0")),
		pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

const chromeHeight = 4

func (m *Model) resize() {
	w := m.width / 2
	if w < 24 {
		w = m.width
	}
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	m.list.SetSize(w, h)
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.typeBar())
	b.WriteString("\n")
	b.WriteString(m.dateBar())
	b.WriteString("\n\n")

	body := m.list.View()
	if detail := m.detailView(); detail != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, detail)
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.footer())

	return b.String()
}

func (m *Model) marker(f focus) string {
	if m.focus == f {
		return m.styles.focused.Render("> ")
	}
	return "  "
}

func (m *Model) typeBar() string {
	parts := make([]string, 0, len(m.state.Types))
	for _, t := range m.state.Types {
		if t == m.state.Live.Type {
			parts = append(parts, m.styles.active.Render("["+t+"]"))
		} else {
			parts = append(parts, m.styles.inactive.Render(" "+t+" "))
		}
	}
	return m.marker(focusType) + m.styles.label.Render("Type: ") + strings.Join(parts, " ")
}

func (m *Model) dateBar() string {
	s := m.marker(focusDate) + m.styles.label.Render("Date: ") + m.date.View()
	if m.state.DateMax != "" {
		s += m.styles.inactive.Render(" (latest " + m.state.DateMax + ")")
	}
	if m.Busy() {
		s += " " + m.spinner.View()
	}
	return s
}

func (m *Model) detailView() string {
	d := m.state.Detail
	if d == nil {
		return ""
	}
	lines := []string{
		m.styles.label.Render(d.Image),
		d.Caption,
		"",
		fmt.Sprintf("%s %s", m.styles.label.Render("Type:"), d.Type),
		fmt.Sprintf("%s %s", m.styles.label.Render("Date:"), d.Date),
		fmt.Sprintf("%s %s", m.styles.label.Render("URL: "), d.URL),
	}
	pane := m.styles.pane
	if w := m.width - m.list.Width() - 2; w > 10 {
		pane = pane.Width(w)
	}
	return pane.Render(strings.Join(lines, "\n"))
}

func (m *Model) footer() string {
	help := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	s := m.styles.help.Render(strings.Join(help, " • "))
	if m.status != "" {
		s = m.styles.status.Render(m.status) + "  " + s
	}
	return s
}
