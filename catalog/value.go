package catalog

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// LoadValue decodes a JSON value document into the map form every engine
// operation consumes.
func LoadValue(data []byte) (map[string]any, error) {
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("catalog: value document: %w", err)
	}
	return v, nil
}

// LoadValueFile reads and decodes a JSON value document file.
func LoadValueFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadValue(data)
}
