package tsconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PathMapping is one compilerOptions.paths entry: an alias pattern such as "@/*"
// and its candidate target templates in priority order.
type PathMapping struct {
	Pattern string
	Targets []string
}

// PathMap is compilerOptions.paths in document order.
type PathMap []PathMapping

// UnmarshalJSON decodes the paths object preserving key order.
func (m *PathMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("paths must be an object")
	}
	var out PathMap
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var targets []string
		if err := dec.Decode(&targets); err != nil {
			return fmt.Errorf("paths[%q]: %w", key, err)
		}
		out = append(out, PathMapping{Pattern: key, Targets: targets})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}
