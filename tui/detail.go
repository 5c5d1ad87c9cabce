package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mtgcards/badges"
	"mtgcards/browse"
	"mtgcards/images"
	"mtgcards/models"
)

// updateDetail handles keys on the detail screen.
func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		// Close the zoomed image first, then the detail view
		if m.vm.ImagePopupVisible() {
			m.vm.ToggleImagePopup()
			return m, nil
		}
		m.vm.Return()
		m.screen = screenGrid
		m.gridCursor = m.vm.CurrentIndex()
		return m, nil

	case key.Matches(msg, m.keys.Previous):
		m.vm.Previous()
		return m, m.loadCurrentImage()

	case key.Matches(msg, m.keys.Next):
		m.vm.Next()
		return m, m.loadCurrentImage()

	case key.Matches(msg, m.keys.Rulings):
		m.vm.SetPanelMode(browse.PanelRulings)

	case key.Matches(msg, m.keys.Versions):
		m.vm.SetPanelMode(browse.PanelVersions)

	case key.Matches(msg, m.keys.Zoom):
		m.vm.ToggleImagePopup()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// viewDetail renders the current card, its panel and the zoom popup.
func (m Model) viewDetail() string {
	detail := m.vm.Detail()
	if detail.Count == 0 {
		return mutedStyle.Padding(1, 2).Render("No cards.")
	}

	card := detail.Card
	contentWidth := max(m.width-4, 20)

	if detail.ImagePopupVisible {
		return m.viewPopup(card, contentWidth)
	}

	var builder strings.Builder

	builder.WriteString(m.viewPager(detail))
	builder.WriteString("\n\n")

	title := titleStyle.Render(card.Name)
	if card.ManaCost != "" {
		title += "  " + mutedStyle.Render(card.ManaCost)
	}
	builder.WriteString("  " + title + "\n")
	builder.WriteString("  " + m.viewImageState(card.LargeImageURL()) + "\n\n")
	builder.WriteString("  Type: " + card.TypeLine + "\n")
	builder.WriteString(oracleStyle.Width(contentWidth).Render("Oracle Text: "+card.OracleText) + "\n")
	if card.SetName != "" || card.Artist != "" {
		builder.WriteString(mutedStyle.PaddingLeft(2).Render(strings.Trim(card.SetName+" · "+card.Artist, " ·")) + "\n")
	}
	builder.WriteString("\n")

	builder.WriteString(m.viewPanelButtons(detail.PanelMode))
	builder.WriteString("\n")

	switch detail.PanelMode {
	case browse.PanelRulings:
		builder.WriteString(viewLegalities(card, contentWidth))
	case browse.PanelVersions:
		builder.WriteString(m.viewVersions(card, contentWidth))
	}

	return builder.String()
}

// viewPager shows the position of the card with previous/next hints.
func (m Model) viewPager(detail browse.DetailView) string {
	previous := mutedStyle.Render("‹ prev")
	if detail.HasPrevious {
		previous = "‹ prev"
	}
	next := mutedStyle.Render("next ›")
	if detail.HasNext {
		next = "next ›"
	}
	return fmt.Sprintf("  %s   Card %d of %d   %s", previous, detail.Index+1, detail.Count, next)
}

// viewImageState maps the loader state to a spinner, the cached file, or a
// warning placeholder.
func (m Model) viewImageState(imageURL string) string {
	result := m.loader.Status(imageURL)
	switch result.State {
	case images.StateLoading:
		return m.spinner.View() + " loading image"
	case images.StateLoaded:
		return loadedStyle.Render("▣ image: " + result.Path)
	default:
		return warningStyle.Render("⚠ image unavailable")
	}
}

func (m Model) viewPanelButtons(mode browse.PanelMode) string {
	rulings := buttonStyle.Render("Rulings")
	if mode == browse.PanelRulings {
		rulings = selectedButtonStyle.Render("Rulings")
	}
	versions := buttonStyle.Render("Versions")
	if mode == browse.PanelVersions {
		versions = selectedButtonStyle.Render("Versions")
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Top, rulings, " ", versions)
}

// viewLegalities renders one badge per format, wrapping to width.
func viewLegalities(card models.Card, width int) string {
	legalities := badges.Legalities(card.Legalities)
	if len(legalities) == 0 {
		return mutedStyle.PaddingLeft(2).Render("No legality information.")
	}

	rendered := make([]string, 0, len(legalities))
	for _, badge := range legalities {
		style := notLegalBadgeStyle
		if badge.Legal() {
			style = legalBadgeStyle
		}
		rendered = append(rendered, style.Render(badge.Label+": "+badge.Value))
	}
	return wrapBadges(rendered, width)
}

// viewVersions lists every printing sharing the card's name and the prices
// of the current one.
func (m Model) viewVersions(card models.Card, width int) string {
	var builder strings.Builder

	for _, printing := range m.store.Printings(card.Name) {
		marker := "  "
		if printing.ID == card.ID {
			marker = "▸ "
		}
		line := fmt.Sprintf("%s%s #%s %s", marker, strings.ToUpper(printing.Set), printing.CollectorNumber, printing.Artist)
		builder.WriteString("  " + strings.TrimRight(line, " ") + "\n")
	}

	prices := badges.Prices(card.Prices)
	if len(prices) == 0 {
		builder.WriteString(mutedStyle.PaddingLeft(2).Render("No prices."))
		return builder.String()
	}

	rendered := make([]string, 0, len(prices))
	for _, badge := range prices {
		rendered = append(rendered, priceBadgeStyle.Render(badge.Label+": "+badge.Value))
	}
	builder.WriteString(wrapBadges(rendered, width))
	return builder.String()
}

// wrapBadges joins rendered badges into lines no wider than width.
func wrapBadges(rendered []string, width int) string {
	var (
		lines   []string
		current []string
		used    int
	)
	for _, badge := range rendered {
		badgeWidth := lipgloss.Width(badge) + 1
		if used+badgeWidth > width && len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = nil
			used = 0
		}
		current = append(current, badge)
		used += badgeWidth
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines, "\n"))
}

// viewPopup renders the zoomed image overlay.
func (m Model) viewPopup(card models.Card, width int) string {
	lines := []string{
		titleStyle.Render(card.Name),
		"",
		m.viewImageState(card.LargeImageURL()),
	}
	if artCrop := card.ArtCropURL(); artCrop != "" {
		lines = append(lines, mutedStyle.Render("art: "+artCrop))
	}
	lines = append(lines, "", mutedStyle.Render("z or esc to close"))

	return popupStyle.Width(min(width, 100)).Render(strings.Join(lines, "\n"))
}
