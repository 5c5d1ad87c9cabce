// Package store loads the card collection from a JSON card file and answers
// read-only queries over it.
package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"mtgcards/models"
)

// ErrLoad is wrapped by every error returned while loading a card file.
var ErrLoad = errors.New("load card file")

//go:embed data/cards.json
var bundledCards []byte

// Load reads the card file at filepath. A missing file or a payload that does
// not decode as a card list returns an error wrapping ErrLoad.
func Load(filepath string) (*Store, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("%w: read file %q: %w", ErrLoad, filepath, err)
	}

	return decode(data, filepath)
}

// LoadBundled decodes the card file embedded in the binary.
func LoadBundled() (*Store, error) {
	return decode(bundledCards, "bundled")
}

// Open loads the card file at filepath, or the bundled card file when
// filepath is empty. Load failures are logged and produce an empty store, so
// the caller always gets a usable value.
func Open(filepath string, logger *slog.Logger) *Store {
	var (
		store *Store
		err   error
	)
	if filepath == "" {
		store, err = LoadBundled()
	} else {
		store, err = Load(filepath)
	}

	if err != nil {
		if logger != nil {
			logger.Error("card file could not be loaded, continuing with no cards",
				"path", filepath, "error", err)
		}
		return New(nil)
	}

	if logger != nil {
		logger.Info("card file loaded", "source", store.source, "cards", store.Len())
	}
	return store
}

// New creates a store over an in-memory collection.
func New(collection []models.Card) *Store {
	store := new(Store)
	store.source = "memory"
	store.collection = make([]models.Card, len(collection))
	copy(store.collection, collection)
	store.refreshNames()
	return store
}

func decode(data []byte, source string) (*Store, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s card file is empty", ErrLoad, source)
	}

	var list models.CardList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: unmarshal %s card file: %w", ErrLoad, source, err)
	}

	if list.Data == nil {
		return nil, fmt.Errorf("%w: %s card file has no data array", ErrLoad, source)
	}

	store := New(list.Data)
	store.source = source
	return store, nil
}

// Store holds the loaded collection. It is never modified after loading.
type Store struct {
	source     string
	collection []models.Card
	names      []string
}

// Cards returns the collection in file order. The returned slice is a copy.
func (s *Store) Cards() []models.Card {
	cards := make([]models.Card, len(s.collection))
	copy(cards, s.collection)
	return cards
}

// Len returns the number of cards in the collection.
func (s *Store) Len() int {
	return len(s.collection)
}

// Source describes where the collection was loaded from.
func (s *Store) Source() string {
	return s.source
}

func (s *Store) refreshNames() {
	s.names = make([]string, len(s.collection))
	for i, c := range s.collection {
		s.names[i] = c.Name
	}
}

// Printings returns every card whose name equals name, in file order.
func (s *Store) Printings(name string) []models.Card {
	var printings []models.Card
	for _, c := range s.collection {
		if c.Name == name {
			printings = append(printings, c)
		}
	}
	return printings
}

// Search ranks the collection by fuzzy similarity between query and the card
// names, closest first. Every printing of a matching name is returned.
func (s *Store) Search(query string) []models.Card {
	results := make([]models.Card, 0, len(s.names))
	matches := fuzzy.RankFindNormalizedFold(query, s.names)
	sort.Stable(matches)
	for _, m := range matches {
		results = append(results, s.collection[m.OriginalIndex])
	}

	return results
}
