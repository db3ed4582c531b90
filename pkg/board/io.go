package board

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadItems decodes a JSON array of items from r.
// Items are returned as decoded; call [Item.Normalized] or [SizeOf] to apply
// defaults.
func ReadItems(r io.Reader) ([]Item, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// ReadItemsFile reads a JSON item list from path.
func ReadItemsFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadItems(f)
}

// WriteItems encodes items as indented JSON to w.
func WriteItems(items []Item, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return nil
}

// WriteItemsFile writes items as JSON to path.
func WriteItemsFile(items []Item, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteItems(items, f)
}
