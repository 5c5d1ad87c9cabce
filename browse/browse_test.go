package browse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtgcards/browse"
	"mtgcards/models"
)

// card builds a card with the given name and collector number.
func card(name, number string) models.Card {
	return models.Card{ID: name + "#" + number, Name: name, CollectorNumber: number}
}

// names returns the card names in order.
func names(cards []models.Card) []string {
	result := make([]string, len(cards))
	for i, c := range cards {
		result[i] = c.Name
	}
	return result
}

// numbers returns the collector numbers in order.
func numbers(cards []models.Card) []string {
	result := make([]string, len(cards))
	for i, c := range cards {
		result[i] = c.CollectorNumber
	}
	return result
}

var collection = []models.Card{
	card("Smothering Tithe", "8"),
	card("Rhystic Study", "16"),
	card("Doubling Season", "40"),
	card("Land Tax", "6"),
	card("Sneak Attack", "30"),
}

func TestFilterCards_EmptySearch_ReturnsAllInOrder(t *testing.T) {
	filtered := browse.FilterCards(collection, "")

	assert.Equal(t, collection, filtered)
}

func TestFilterCards_CaseInsensitiveSubstring(t *testing.T) {
	filtered := browse.FilterCards(collection, "TA")

	assert.Equal(t, []string{"Land Tax", "Sneak Attack"}, names(filtered))
}

func TestFilterCards_MatchesExactlyLowercasedContains(t *testing.T) {
	for _, query := range []string{"s", "St", "ou", "study", "x", "zzz", " "} {
		filtered := browse.FilterCards(collection, query)

		var expected []string
		for _, c := range collection {
			if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
				expected = append(expected, c.Name)
			}
		}

		if expected == nil {
			assert.Empty(t, filtered, "query %q", query)
			continue
		}
		assert.Equal(t, expected, names(filtered), "query %q", query)
	}
}

func TestFilterCards_NoMatches_ReturnsEmpty(t *testing.T) {
	assert.Empty(t, browse.FilterCards(collection, "lotus"))
}

func TestFilterCards_DoesNotModifyInput(t *testing.T) {
	input := []models.Card{card("B", "1"), card("A", "2")}

	filtered := browse.FilterCards(input, "")
	filtered[0].Name = "changed"

	assert.Equal(t, "B", input[0].Name)
}

func TestSortCards_ByNameAscending(t *testing.T) {
	sorted := browse.SortCards(collection, browse.SortByName, browse.Ascending, browse.Ascending)

	assert.Equal(t, []string{"Doubling Season", "Land Tax", "Rhystic Study", "Smothering Tithe", "Sneak Attack"}, names(sorted))
}

func TestSortCards_NameDescendingIsReverseOfAscending(t *testing.T) {
	withDuplicates := []models.Card{
		{ID: "a", Name: "Rhystic Study", CollectorNumber: "16"},
		{ID: "b", Name: "Land Tax", CollectorNumber: "6"},
		{ID: "c", Name: "Rhystic Study", CollectorNumber: "79"},
	}

	for name, input := range map[string][]models.Card{
		"unique names":    collection,
		"duplicate names": withDuplicates,
	} {
		t.Run(name, func(t *testing.T) {
			ascending := browse.SortCards(input, browse.SortByName, browse.Ascending, browse.Ascending)
			descending := browse.SortCards(input, browse.SortByName, browse.Descending, browse.Ascending)

			reversed := make([]models.Card, len(ascending))
			for i, c := range ascending {
				reversed[len(ascending)-1-i] = c
			}

			assert.Equal(t, reversed, descending)
		})
	}
}

func TestSortCards_CollectorNumberUnparsableCountsAsZero(t *testing.T) {
	input := []models.Card{card("Twelve", "12"), card("Foo", "foo"), card("Three", "3")}

	sorted := browse.SortCards(input, browse.SortByCollectorNumber, browse.Ascending, browse.Ascending)

	assert.Equal(t, []string{"foo", "3", "12"}, numbers(sorted))
}

func TestSortCards_CollectorNumberDescending(t *testing.T) {
	sorted := browse.SortCards(collection, browse.SortByCollectorNumber, browse.Ascending, browse.Descending)

	assert.Equal(t, []string{"40", "30", "16", "8", "6"}, numbers(sorted))
}

func TestSortCards_EqualCollectorNumbersKeepNameOrder(t *testing.T) {
	input := []models.Card{
		card("Zephyr", "5"),
		card("Alpha", "5"),
		card("Mid", "1"),
		card("Beta", "5"),
	}

	ascendingNames := browse.SortCards(input, browse.SortByCollectorNumber, browse.Ascending, browse.Ascending)
	assert.Equal(t, []string{"Mid", "Alpha", "Beta", "Zephyr"}, names(ascendingNames))

	descendingNames := browse.SortCards(input, browse.SortByCollectorNumber, browse.Descending, browse.Ascending)
	assert.Equal(t, []string{"Mid", "Zephyr", "Beta", "Alpha"}, names(descendingNames))
}

func TestSortCards_DoesNotModifyInput(t *testing.T) {
	input := []models.Card{card("B", "1"), card("A", "2")}

	browse.SortCards(input, browse.SortByName, browse.Ascending, browse.Ascending)

	assert.Equal(t, []string{"B", "A"}, names(input))
}

func TestParseCollectorNumber(t *testing.T) {
	tests := map[string]int{
		"12":  12,
		"0":   0,
		"foo": 0,
		"45s": 0,
		"":    0,
		"-3":  -3,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, browse.ParseCollectorNumber(input), "input %q", input)
	}
}

func TestParseSortKey(t *testing.T) {
	key, err := browse.ParseSortKey("Number")
	require.NoError(t, err)
	assert.Equal(t, browse.SortByCollectorNumber, key)

	key, err = browse.ParseSortKey("name")
	require.NoError(t, err)
	assert.Equal(t, browse.SortByName, key)

	_, err = browse.ParseSortKey("rarity")
	assert.ErrorContains(t, err, "unknown sort key")
}

func TestDirection_Toggle(t *testing.T) {
	assert.Equal(t, browse.Descending, browse.Ascending.Toggle())
	assert.Equal(t, browse.Ascending, browse.Descending.Toggle())
	assert.Equal(t, "asc", browse.Ascending.String())
	assert.Equal(t, "desc", browse.Descending.String())
}
