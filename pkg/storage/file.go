package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/moodboard/pkg/timeline"
)

// FileStore keeps each board's timeline as a JSON array in
// <dir>/<boardID>.json.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/moodboard/boards/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "moodboard", "boards")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create board dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the directory boards are stored in.
func (s *FileStore) Dir() string { return s.baseDir }

func (s *FileStore) boardPath(boardID string) string {
	return filepath.Join(s.baseDir, boardID+".json")
}

func (s *FileStore) Load(ctx context.Context, boardID string) ([]timeline.Snapshot, error) {
	if err := ValidateBoardID(boardID); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	snaps, err := s.read(boardID)
	if err != nil {
		return nil, storageErr("load", boardID, err)
	}
	return snaps, nil
}

func (s *FileStore) Append(ctx context.Context, boardID string, snap timeline.Snapshot) error {
	if err := ValidateBoardID(boardID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snaps, err := s.read(boardID)
	if err != nil {
		return storageErr("append to", boardID, err)
	}
	snaps = append(snaps, snap.Clone())

	var buf bytes.Buffer
	if err := timeline.Encode(snaps, &buf); err != nil {
		return storageErr("append to", boardID, err)
	}
	if err := writeAtomic(s.boardPath(boardID), buf.Bytes()); err != nil {
		return storageErr("append to", boardID, err)
	}
	return nil
}

// Boards lists the IDs of stored boards, sorted.
func (s *FileStore) Boards() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read board dir: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read(boardID string) ([]timeline.Snapshot, error) {
	f, err := os.Open(s.boardPath(boardID))
	if os.IsNotExist(err) {
		return []timeline.Snapshot{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return timeline.Decode(f)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".board-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var _ Store = (*FileStore)(nil)
