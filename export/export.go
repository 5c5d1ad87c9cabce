// Package export writes a card list as CSV or as a plain text table.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"

	"mtgcards/models"
)

// Format selects the output format.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

// ParseFormat parses "table" or "csv".
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q", value)
	}
}

// toRows converts cards to CSV rows, keeping their order.
func toRows(cards []models.Card) []*models.CardCSV {
	rows := make([]*models.CardCSV, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, &models.CardCSV{
			CollectorNumber: card.CollectorNumber,
			Name:            card.Name,
			TypeLine:        card.TypeLine,
			Set:             card.Set,
			Rarity:          card.Rarity,
			ID:              card.ID,
		})
	}
	return rows
}

// Write writes cards to writer in the given format.
func Write(writer io.Writer, cards []models.Card, format Format) error {
	if writer == nil {
		return errors.New("writer must not be nil")
	}

	switch format {
	case FormatCSV:
		return writeCSV(writer, cards)
	case FormatTable:
		return writeTable(writer, cards)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeCSV(writer io.Writer, cards []models.Card) error {
	if err := gocsv.Marshal(toRows(cards), writer); err != nil {
		return fmt.Errorf("marshal CSV: %w", err)
	}
	return nil
}

func writeTable(writer io.Writer, cards []models.Card) error {
	table := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "#\tNAME\tTYPE\tSET")
	for _, row := range toRows(cards) {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\n", row.CollectorNumber, row.Name, row.TypeLine, strings.ToUpper(row.Set))
	}
	if err := table.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
