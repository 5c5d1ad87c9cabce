package tui

import "github.com/charmbracelet/lipgloss"

// searchBarStyle defines the styling for the search bar container.
var searchBarStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 1)

// focusedSearchBarStyle highlights the search bar border while it has focus.
var focusedSearchBarStyle = searchBarStyle.
	BorderForeground(lipgloss.Color("205"))

// cellStyle defines the styling for unselected grid cells (light grey).
var cellStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240")).
	Foreground(lipgloss.Color("247")).
	Padding(0, 1)

// selectedCellStyle defines the styling for the selected grid cell (white).
var selectedCellStyle = cellStyle.
	BorderForeground(lipgloss.Color("205")).
	Foreground(lipgloss.Color("255")).
	Bold(true)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	activeSortStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	oracleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	selectedButtonStyle = buttonStyle.
				BorderForeground(lipgloss.Color("205")).
				Foreground(lipgloss.Color("205"))

	legalBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42")).
			Padding(0, 1)

	notLegalBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("160")).
				Padding(0, 1)

	priceBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("221")).
			Padding(0, 1)

	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	loadedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 2)
)
