package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value string
}

// Mapping is an ordered string-to-string mapping. It decodes from a JSON
// object and keeps the keys in document order, so legalities and prices can be
// listed without reflecting over struct fields.
type Mapping struct {
	entries []Entry
}

// NewMapping builds a Mapping from the given entries. Later duplicates of a
// key replace the earlier value in place.
func NewMapping(entries ...Entry) Mapping {
	var mapping Mapping
	for _, e := range entries {
		mapping.set(e.Key, e.Value)
	}
	return mapping
}

// Len returns the number of entries.
func (m Mapping) Len() int {
	return len(m.entries)
}

// Get returns the value stored under key.
func (m Mapping) Get(key string) (string, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Entries returns a copy of the entries in order.
func (m Mapping) Entries() []Entry {
	entries := make([]Entry, len(m.entries))
	copy(entries, m.entries)
	return entries
}

func (m *Mapping) set(key, value string) {
	for i, e := range m.entries {
		if e.Key == key {
			m.entries[i].Value = value
			return
		}
	}
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// UnmarshalJSON decodes a JSON object of string values. Null values are
// skipped, which is how the card file marks a price channel without a price.
// A JSON null for the whole object yields an empty mapping.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	m.entries = nil

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("read mapping: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errors.New("mapping must be a JSON object")
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("read mapping key: %w", err)
		}
		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("mapping key %v is not a string", token)
		}

		var value *string
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("read mapping value for %q: %w", key, err)
		}
		if value == nil {
			continue
		}
		m.set(key, *value)
	}

	if _, err := decoder.Token(); err != nil {
		return fmt.Errorf("read mapping end: %w", err)
	}

	return nil
}

// MarshalJSON encodes the mapping as a JSON object in entry order.
func (m Mapping) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, fmt.Errorf("marshal mapping key: %w", err)
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal mapping value: %w", err)
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}
