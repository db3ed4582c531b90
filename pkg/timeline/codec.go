package timeline

import (
	"encoding/json"
	"fmt"
	"io"
)

// Encode writes snaps as a JSON array to w.
func Encode(snaps []Snapshot, w io.Writer) error {
	if snaps == nil {
		snaps = []Snapshot{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snaps); err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	return nil
}

// Decode reads a JSON array of snapshots from r.
func Decode(r io.Reader) ([]Snapshot, error) {
	var snaps []Snapshot
	if err := json.NewDecoder(r).Decode(&snaps); err != nil {
		return nil, fmt.Errorf("decode timeline: %w", err)
	}
	return snaps, nil
}

// MarshalSnapshot encodes a single snapshot.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot decodes a single snapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
