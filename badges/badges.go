// Package badges turns card legalities and prices into display-ready labels.
package badges

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mtgcards/models"
)

const (
	statusLegal    = "legal"
	statusNotLegal = "not_legal"
)

// Badge is one label pair shown in the detail view.
type Badge struct {
	Label string
	Value string
}

// Legal reports whether the badge value is the "legal" status.
func (b Badge) Legal() bool {
	return b.Value == statusLegal
}

// Legalities lists the format legalities in mapping order. Format names are
// title-cased and "not_legal" reads "not legal"; other statuses are kept
// verbatim.
func Legalities(legalities models.Mapping) []Badge {
	titleCaser := cases.Title(language.English)
	badges := make([]Badge, 0, legalities.Len())
	for _, entry := range legalities.Entries() {
		status := entry.Value
		if status == statusNotLegal {
			status = "not legal"
		}
		badges = append(badges, Badge{
			Label: titleCaser.String(entry.Key),
			Value: status,
		})
	}
	return badges
}

// Prices lists the price channels in mapping order. Underscores in channel
// names become spaces and the result is title-cased. A card without prices
// yields an empty list.
func Prices(prices models.Mapping) []Badge {
	titleCaser := cases.Title(language.English)
	badges := make([]Badge, 0, prices.Len())
	for _, entry := range prices.Entries() {
		badges = append(badges, Badge{
			Label: titleCaser.String(strings.ReplaceAll(entry.Key, "_", " ")),
			Value: entry.Value,
		})
	}
	return badges
}
