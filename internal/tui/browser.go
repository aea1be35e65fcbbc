package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/benchchart/internal/dataset"
)

// viewState represents the current screen of the browser.
type viewState int

const (
	// viewTable shows the data set rows.
	viewTable viewState = iota
	// viewSource shows the generated document.
	viewSource
)

const (
	headerHeight = 2
	footerHeight = 2
	minColWidth  = 6
	maxColWidth  = 32
)

// model is the Bubble Tea model of the data set browser.
type model struct {
	title         string
	data          *dataset.DataSet
	source        string
	state         viewState
	table         table.Model
	viewport      viewport.Model
	width, height int
}

// initialModel creates a browser for ds. source is the generated document
// shown on the second screen; it may be empty.
func initialModel(title string, ds *dataset.DataSet, source string) *model {
	rows := cells(ds)
	columns := make([]table.Column, 0, ds.Cols())
	for i, name := range headers(ds) {
		w := lipgloss.Width(name)
		for _, r := range rows {
			if i < len(r) {
				w = max(w, lipgloss.Width(r[i]))
			}
		}
		columns = append(columns, table.Column{Title: name, Width: min(max(w, minColWidth), maxColWidth)})
	}
	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row(r))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(min(len(tableRows)+1, 20)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	vp := viewport.New(100, 20)
	vp.SetContent(source)

	return &model{
		title:    title,
		data:     ds,
		source:   source,
		state:    viewTable,
		table:    t,
		viewport: vp,
	}
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab":
			if m.source == "" {
				return m, nil
			}
			if m.state == viewTable {
				m.state = viewSource
			} else {
				m.state = viewTable
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		bodyHeight := max(msg.Height-headerHeight-footerHeight, 1)
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(bodyHeight)
		m.viewport.Width = msg.Width
		m.viewport.Height = bodyHeight
		return m, nil
	}

	switch m.state {
	case viewTable:
		m.table, cmd = m.table.Update(msg)
	case viewSource:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// selectedKey returns the key cell of the highlighted row.
func (m *model) selectedKey() string {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

// View renders the browser based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.data.Empty() {
		return errorStyle.Render("No rows to display. (q to quit)")
	}

	var b strings.Builder
	header := titleStyle.Render(m.title)
	status := helpStyle.Render(fmt.Sprintf(" %d series, %d rows", m.data.Cols()-1, m.data.Rows()))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header, status) + "\n\n")

	switch m.state {
	case viewTable:
		b.WriteString(m.table.View())
		b.WriteString("\n" + helpStyle.Render(fmt.Sprintf(" key: %s", m.selectedKey())))
	case viewSource:
		b.WriteString(m.viewport.View())
		b.WriteString("\n" + helpStyle.Render(fmt.Sprintf(" %3.f%%", m.viewport.ScrollPercent()*100)))
	}

	help := " (↑/↓ to move, q to quit)"
	if m.source != "" {
		help = " (↑/↓ to move, tab to toggle document, q to quit)"
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}

// Run opens the interactive browser and blocks until the user quits.
func Run(title string, ds *dataset.DataSet, source string) error {
	p := tea.NewProgram(initialModel(title, ds, source), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}
	return nil
}
