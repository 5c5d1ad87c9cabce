package browse

import (
	"strings"

	"mtgcards/models"
)

// FilterCards returns the cards whose name contains searchText, compared
// case-insensitively, in their original relative order. An empty searchText
// returns every card.
func FilterCards(all []models.Card, searchText string) []models.Card {
	if searchText == "" {
		filtered := make([]models.Card, len(all))
		copy(filtered, all)
		return filtered
	}

	needle := strings.ToLower(searchText)
	filtered := make([]models.Card, 0, len(all))
	for _, card := range all {
		if strings.Contains(strings.ToLower(card.Name), needle) {
			filtered = append(filtered, card)
		}
	}

	return filtered
}
