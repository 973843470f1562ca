package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedColumnMap is a JSON object of column descriptors that remembers the
// order keys appeared on the wire. The describe catalogs are ordered and the
// engine's error messages enumerate fields in catalog order, so a plain map
// is not enough.
type OrderedColumnMap struct {
	Keys    []string
	Entries map[string]ColumnInfo
}

// Get returns the column for a key, if present.
func (m OrderedColumnMap) Get(key string) (ColumnInfo, bool) {
	info, ok := m.Entries[key]
	return info, ok
}

// Len returns the number of columns.
func (m OrderedColumnMap) Len() int {
	return len(m.Keys)
}

func (m *OrderedColumnMap) UnmarshalJSON(data []byte) error {
	m.Keys = nil
	m.Entries = make(map[string]ColumnInfo)

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("column map: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("column map: non-string key %v", keyTok)
		}
		var info ColumnInfo
		if err := dec.Decode(&info); err != nil {
			return fmt.Errorf("column map: entry %q: %w", key, err)
		}
		if _, exists := m.Entries[key]; !exists {
			m.Keys = append(m.Keys, key)
		}
		m.Entries[key] = info
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func (m OrderedColumnMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valBytes, err := json.Marshal(m.Entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
