package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FileEntry is one manifest line: a source path and its destination descriptor.
type FileEntry struct {
	Source      string
	Destination string
}

// FileMap is the manifest mapping. It keeps the key order of the JSON document so
// copy operations run in the order the user wrote them.
type FileMap []FileEntry

// Len returns the number of entries.
func (m FileMap) Len() int { return len(m) }

// Get returns the destination configured for source.
func (m FileMap) Get(source string) (string, bool) {
	for _, e := range m {
		if e.Source == source {
			return e.Destination, true
		}
	}
	return "", false
}

// Set returns a map with source mapped to destination. An existing entry is
// updated in place; a new one is appended.
func (m FileMap) Set(source, destination string) FileMap {
	for i := range m {
		if m[i].Source == source {
			m[i].Destination = destination
			return m
		}
	}
	return append(m, FileEntry{Source: source, Destination: destination})
}

// Clone returns an independent copy.
func (m FileMap) Clone() FileMap {
	out := make(FileMap, len(m))
	copy(out, m)
	return out
}

// UnmarshalJSON decodes a JSON object of string values preserving key order.
// A repeated key keeps its first position and takes the last value.
func (m *FileMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected an object of source to destination paths, got %s", tokenKind(tok))
	}
	out := FileMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		dest, ok := value.(string)
		if !ok {
			return fmt.Errorf("destination for %q must be a string, got %s", key, tokenKind(value))
		}
		out = out.Set(key, dest)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalJSON encodes the map as a JSON object in entry order.
func (m FileMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Source)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Destination)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func tokenKind(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case json.Delim:
		if t == '[' {
			return "array"
		}
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
