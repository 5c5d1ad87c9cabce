// Package models defines the shared data structures used across the application.
package models

// Card represents a single card record decoded from the bundled card file.
// Cards are never modified after they are loaded.
type Card struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	TypeLine        string     `json:"type_line"`
	OracleText      string     `json:"oracle_text"`
	CollectorNumber string     `json:"collector_number"`
	ImageURIs       *ImageURIs `json:"image_uris,omitempty"`
	Legalities      Mapping    `json:"legalities"`
	Prices          Mapping    `json:"prices"`

	Set      string `json:"set,omitempty"`
	SetName  string `json:"set_name,omitempty"`
	Rarity   string `json:"rarity,omitempty"`
	ManaCost string `json:"mana_cost,omitempty"`
	Artist   string `json:"artist,omitempty"`
}

// LargeImageURL returns the large image URL, or an empty string when the card
// has no image URIs.
func (c Card) LargeImageURL() string {
	if c.ImageURIs == nil {
		return ""
	}
	return c.ImageURIs.Large
}

// ArtCropURL returns the art crop URL, or an empty string when the card has
// no image URIs.
func (c Card) ArtCropURL() string {
	if c.ImageURIs == nil {
		return ""
	}
	return c.ImageURIs.ArtCrop
}

// ImageURIs contains URLs for card images in various sizes. Any of them may
// be empty.
type ImageURIs struct {
	Small      string `json:"small,omitempty"`
	Normal     string `json:"normal,omitempty"`
	Large      string `json:"large,omitempty"`
	PNG        string `json:"png,omitempty"`
	ArtCrop    string `json:"art_crop,omitempty"`
	BorderCrop string `json:"border_crop,omitempty"`
}

// CardList is the top-level shape of the card file.
type CardList struct {
	Data []Card `json:"data"`
}

// CardCSV represents a single row of a card list export.
// The fields map directly to the CSV column headers.
type CardCSV struct {
	CollectorNumber string `csv:"Collector Number"`
	Name            string `csv:"Name"`
	TypeLine        string `csv:"Type"`
	Set             string `csv:"Set"`
	Rarity          string `csv:"Rarity"`
	ID              string `csv:"ID"`
}
