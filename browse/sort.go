package browse

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"mtgcards/models"
)

// SortKey selects which card field orders the displayed list.
type SortKey int

const (
	SortByName SortKey = iota
	SortByCollectorNumber
)

// String returns the flag/config spelling of the key.
func (k SortKey) String() string {
	switch k {
	case SortByName:
		return "name"
	case SortByCollectorNumber:
		return "number"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// ParseSortKey parses "name" or "number" (also "collector_number").
func ParseSortKey(value string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "name":
		return SortByName, nil
	case "number", "collector_number":
		return SortByCollectorNumber, nil
	default:
		return SortByName, fmt.Errorf("unknown sort key %q", value)
	}
}

// Direction is the order applied for one sort key.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseCollectorNumber returns the collector number as an integer. Values
// that are not plain integers (for example "45s") count as 0.
func ParseCollectorNumber(value string) int {
	number, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return number
}

// SortCards returns a sorted copy of cards. Sorting by name compares names
// lexicographically. Sorting by collector number first applies the name sort
// and then a stable sort on the parsed number, so cards sharing a number keep
// their name order.
func SortCards(cards []models.Card, key SortKey, nameDirection, numberDirection Direction) []models.Card {
	sorted := make([]models.Card, len(cards))
	copy(sorted, cards)

	sortByName(sorted, nameDirection)
	if key == SortByCollectorNumber {
		sortByCollectorNumber(sorted, numberDirection)
	}

	return sorted
}

// sortByName sorts ascending and reverses for descending, so the descending
// order is exactly the ascending order read backwards, duplicates included.
func sortByName(cards []models.Card, direction Direction) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Name < cards[j].Name
	})
	if direction == Descending {
		slices.Reverse(cards)
	}
}

func sortByCollectorNumber(cards []models.Card, direction Direction) {
	sort.SliceStable(cards, func(i, j int) bool {
		left := ParseCollectorNumber(cards[i].CollectorNumber)
		right := ParseCollectorNumber(cards[j].CollectorNumber)
		if direction == Descending {
			return left > right
		}
		return left < right
	})
}
