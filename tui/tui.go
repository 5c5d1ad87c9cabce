// Package tui provides the terminal card browser using bubbletea.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mtgcards/browse"
	"mtgcards/images"
	"mtgcards/store"
)

// screen is the view shown inside the Cards tab.
type screen int

const (
	screenGrid screen = iota
	screenDetail
)

// tab is one of the top-level sections. Only tabCards is implemented.
type tab int

const (
	tabCards tab = iota
	tabCollection
	tabDecks
	tabScan
)

var tabNames = []string{"Cards", "Collection", "Decks", "Scan"}

// imageLoadedMsg reports a finished image fetch.
type imageLoadedMsg struct {
	url    string
	result images.Result
}

// Options configures a Model.
type Options struct {
	Store         *store.Store
	Loader        *images.Loader
	Logger        *slog.Logger
	Columns       int
	DragThreshold float64
	DefaultSort   browse.SortKey
}

// Model represents the main TUI application state. Card state lives in the
// view-model; Model only keeps presentation state such as focus and cursor.
type Model struct {
	store  *store.Store
	vm     *browse.ViewModel
	loader *images.Loader
	logger *slog.Logger
	keys   keyMap

	searchInput textinput.Model
	spinner     spinner.Model
	help        help.Model

	tab           tab
	screen        screen
	searchFocused bool
	gridCursor    int
	columns       int

	dragging   bool
	dragStartX int

	width  int
	height int
}

// New creates a Model over the cards in options.Store.
func New(options Options) Model {
	if options.Store == nil {
		panic("store cannot be nil")
	}

	loader := options.Loader
	if loader == nil {
		loader = images.Disabled()
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	columns := options.Columns
	if columns < 1 {
		columns = 3
	}

	vm := browse.New(options.Store.Cards())
	vm.SetSortKey(options.DefaultSort)
	if options.DragThreshold > 0 {
		vm.SetDragThreshold(options.DragThreshold)
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Search cards..."
	searchInput.Focus()
	searchInput.CharLimit = 256
	searchInput.Width = 50

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		store:         options.Store,
		vm:            vm,
		loader:        loader,
		logger:        logger,
		keys:          defaultKeyMap(),
		searchInput:   searchInput,
		spinner:       spin,
		help:          help.New(),
		searchFocused: true,
		columns:       columns,
		width:         80,
		height:        24,
	}
}

// Init implements tea.Model and returns the initial command.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model and handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Update search input width to span most of the terminal width
		m.searchInput.Width = msg.Width - 6 // Account for border and padding
		if m.searchInput.Width < 20 {
			m.searchInput.Width = 20
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case imageLoadedMsg:
		// The loader keeps the result; this only triggers a redraw.
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.tab != tabCards || !m.searchFocused {
			if switched, ok := m.switchTab(msg); ok {
				return switched, nil
			}
		}
		if m.tab != tabCards {
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.screen == screenDetail {
			return m.updateDetail(msg)
		}
		return m.updateGrid(msg)
	}

	if m.searchFocused && m.screen == screenGrid {
		return m.updateSearch(msg)
	}

	return m, nil
}

// switchTab handles the 1-4 tab keys.
func (m Model) switchTab(msg tea.KeyMsg) (Model, bool) {
	if !key.Matches(msg, m.keys.Tabs) {
		return m, false
	}
	switch msg.String() {
	case "1":
		m.tab = tabCards
	case "2":
		m.tab = tabCollection
	case "3":
		m.tab = tabDecks
	case "4":
		m.tab = tabScan
	}
	return m, true
}

// updateMouse turns a press/release pair on the detail screen into a drag.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.tab != tabCards || m.screen != screenDetail {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.dragStartX = msg.X
		}
	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		translation := float64(msg.X - m.dragStartX)
		if m.vm.HandleDrag(translation) != browse.DragIgnored {
			return m, m.loadCurrentImage()
		}
	}

	return m, nil
}

// loadCurrentImage starts fetching the large image of the current card
// unless its state is already known or a fetch is in flight.
func (m Model) loadCurrentImage() tea.Cmd {
	card, ok := m.vm.Current()
	if !ok {
		return nil
	}

	imageURL := card.LargeImageURL()
	if !m.loader.Claim(imageURL) {
		return nil
	}

	loader := m.loader
	return func() tea.Msg {
		return imageLoadedMsg{url: imageURL, result: loader.Fetch(context.Background(), imageURL)}
	}
}

// View implements tea.Model and renders the TUI.
func (m Model) View() string {
	var builder strings.Builder

	builder.WriteString(m.viewTabs())
	builder.WriteString("\n")

	var body, helpView string
	switch {
	case m.tab != tabCards:
		body = m.viewPlaceholder()
	case m.screen == screenDetail:
		body = m.viewDetail()
		helpView = m.help.View(m.keys.detailHelp())
	default:
		body = m.viewGrid()
		helpView = m.help.View(m.keys.gridHelp())
	}

	builder.WriteString(body)
	if helpView != "" {
		builder.WriteString("\n")
		builder.WriteString(helpView)
	}

	return builder.String()
}

func (m Model) viewTabs() string {
	rendered := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewPlaceholder() string {
	return mutedStyle.
		Padding(1, 2).
		Render(tabNames[m.tab] + " is not available yet. Press 1 to go back to Cards.")
}

// Run starts the TUI with the given options and returns any error that
// occurs. The program stops when ctx is canceled.
func Run(ctx context.Context, options Options) error {
	if options.Store == nil {
		return errors.New("store cannot be nil")
	}

	program := tea.NewProgram(
		New(options),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
