package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lexaindex/lexbuild/internal/model"
)

// WriteDataset serializes one dataset to its output file.
func WriteDataset(path string, ds *model.Dataset) error {
	data, err := encodeCompact(ds)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// WriteIndex writes the global inventory next to the datasets. A nil
// inventory still produces a valid empty array so the dashboard never
// sees "null".
func WriteIndex(path string, inventory []model.InventoryEntry) error {
	if inventory == nil {
		inventory = []model.InventoryEntry{}
	}
	data, err := encodeCompact(inventory)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// encodeCompact produces whitespace-free JSON with HTML escaping off,
// so surface forms keep their non-ASCII characters literally. Output is
// deterministic for a given value, which keeps reruns byte-identical.
func encodeCompact(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
