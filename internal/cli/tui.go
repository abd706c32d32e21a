package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/edalab/pinwire/pkg/schematic"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ComponentListModel - Interactive component browser
// =============================================================================

// ComponentListModel is the bubbletea model for browsing extracted
// components. Enter drills into a component's pin list, esc goes back.
type ComponentListModel struct {
	Components []schematic.Component
	Cursor     int
	Height     int
	Offset     int

	// open is the component whose pins are being shown, nil for the list.
	open *schematic.Component
}

// NewComponentListModel creates a new component list model.
func NewComponentListModel(components []schematic.Component) ComponentListModel {
	return ComponentListModel{
		Components: components,
		Height:     15,
	}
}

func (m ComponentListModel) Init() tea.Cmd {
	return nil
}

func (m ComponentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.open != nil {
				m.open = nil
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.open == nil && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.open == nil && m.Cursor < len(m.Components)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if m.open == nil && len(m.Components) > 0 {
				m.open = &m.Components[m.Cursor]
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ComponentListModel) View() string {
	if m.open != nil {
		return m.pinView()
	}
	return m.listView()
}

func (m ComponentListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Components"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ pins  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Components) {
		end = len(m.Components)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Components[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor, c.ID, c.Name, c.Type, c.Value, fmt.Sprintf("%d", len(c.Pins)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Type", "Value", "Pins").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Components))))

	return b.String()
}

func (m ComponentListModel) pinView() string {
	var b strings.Builder

	c := m.open
	b.WriteString(StyleTitle.Render(c.ID + " · " + c.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(c.Type + "  " + c.Value))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	for _, p := range c.Pins {
		line := "  " + p.Name
		if p.Net != "" {
			line += listDimStyle.Render("  net=" + p.Net)
		}
		b.WriteString(listNormalStyle.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
