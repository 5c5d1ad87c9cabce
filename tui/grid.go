package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"mtgcards/browse"
)

// cellHeight is the rendered height of one grid cell: border, name, number,
// border.
const cellHeight = 4

// updateGrid handles keys on the grid screen.
func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyDown, tea.KeyTab, tea.KeyEnter:
			// Move focus into the grid when there is something to select
			if m.vm.Len() > 0 {
				m.searchFocused = false
				m.searchInput.Blur()
				m.gridCursor = 0
			}
			return m, nil
		}
		return m.updateSearch(msg)
	}

	count := m.vm.Len()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		return m.focusSearch()

	case key.Matches(msg, m.keys.Up):
		// Move up a row, back to the search bar from the top row
		if m.gridCursor < m.columns {
			return m.focusSearch()
		}
		m.gridCursor -= m.columns

	case key.Matches(msg, m.keys.Down):
		if m.gridCursor+m.columns < count {
			m.gridCursor += m.columns
		}

	case key.Matches(msg, m.keys.Left):
		if m.gridCursor > 0 {
			m.gridCursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.gridCursor < count-1 {
			m.gridCursor++
		}

	case key.Matches(msg, m.keys.Open):
		if _, err := m.vm.Select(m.gridCursor); err != nil {
			m.logger.Debug("open card ignored", "error", err)
			return m, nil
		}
		m.screen = screenDetail
		return m, m.loadCurrentImage()

	case key.Matches(msg, m.keys.SortName):
		m.vm.SetSortKey(browse.SortByName)

	case key.Matches(msg, m.keys.SortNumber):
		m.vm.SetSortKey(browse.SortByCollectorNumber)

	case key.Matches(msg, m.keys.FlipName):
		m.vm.ToggleDirection(browse.SortByName)

	case key.Matches(msg, m.keys.FlipNumber):
		m.vm.ToggleDirection(browse.SortByCollectorNumber)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) focusSearch() (tea.Model, tea.Cmd) {
	m.searchFocused = true
	cmd := m.searchInput.Focus()
	return m, cmd
}

// updateSearch feeds msg to the search input and refilters when its value
// changes.
func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Store the previous value to detect changes
	previousValue := m.searchInput.Value()

	m.searchInput, cmd = m.searchInput.Update(msg)

	// If the search input value changed, refilter the grid
	if currentValue := m.searchInput.Value(); currentValue != previousValue {
		m.vm.SetSearchText(currentValue)
		m.gridCursor = 0
	}

	return m, cmd
}

// viewGrid renders the search bar, sort line and card grid.
func (m Model) viewGrid() string {
	var builder strings.Builder

	barStyle := searchBarStyle
	if m.searchFocused {
		barStyle = focusedSearchBarStyle
	}
	builder.WriteString(barStyle.Width(max(m.width-4, 20)).Render(m.searchInput.View()))
	builder.WriteString("\n")
	builder.WriteString(m.viewSortLine())
	builder.WriteString("\n")

	// Tabs, search bar (3 lines), sort line and help take the rest
	availableLines := max(m.height-7, cellHeight)

	count := m.vm.Len()
	if count == 0 {
		message := "No cards loaded."
		if m.vm.SearchText() != "" {
			message = fmt.Sprintf("No cards match %q.", m.vm.SearchText())
		}
		builder.WriteString(lipgloss.NewStyle().Height(availableLines).Render(mutedStyle.PaddingLeft(2).Render(message)))
		return builder.String()
	}

	cards := m.vm.Cards()
	cellWidth := max((m.width-2)/m.columns-2, 12)
	visibleRows := max(availableLines/cellHeight, 1)

	// Scroll so the cursor row stays visible
	cursorRow := m.gridCursor / m.columns
	firstRow := max(cursorRow-visibleRows+1, 0)

	rows := make([]string, 0, visibleRows)
	for row := firstRow; row < firstRow+visibleRows; row++ {
		start := row * m.columns
		if start >= count {
			break
		}
		end := min(start+m.columns, count)

		cells := make([]string, 0, m.columns)
		for i := start; i < end; i++ {
			style := cellStyle
			if !m.searchFocused && i == m.gridCursor {
				style = selectedCellStyle
			}
			name := runewidth.Truncate(cards[i].Name, cellWidth-2, "…")
			number := mutedStyle.Render("#" + cards[i].CollectorNumber)
			cells = append(cells, style.Width(cellWidth).Render(name+"\n"+number))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	// Use lipgloss to set a fixed height for the grid area to clear stale content
	builder.WriteString(lipgloss.NewStyle().Height(availableLines).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return builder.String()
}

// viewSortLine shows both sort keys with their directions, highlighting the
// active one.
func (m Model) viewSortLine() string {
	render := func(label string, sortKey browse.SortKey) string {
		arrow := "↑"
		if m.vm.Direction(sortKey) == browse.Descending {
			arrow = "↓"
		}
		text := label + " " + arrow
		if m.vm.SortKey() == sortKey {
			return activeSortStyle.Render(text)
		}
		return mutedStyle.Render(text)
	}

	return fmt.Sprintf("  Sort: %s  %s  %s",
		render("name", browse.SortByName),
		render("number", browse.SortByCollectorNumber),
		mutedStyle.Render(fmt.Sprintf("%d cards", m.vm.Len())),
	)
}
