package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/moodboard/pkg/board"
	"github.com/matzehuels/moodboard/pkg/errors"
	"github.com/matzehuels/moodboard/pkg/timeline"
)

func sampleSnapshot(ts int64, x float64) timeline.Snapshot {
	items := []board.Item{
		{ID: "a", Weight: 0.1, Position: board.Position{X: x, Y: 10}, Style: "opacity:0.5"},
		{ID: "b", Weight: 0.2, Position: board.Position{X: x + 100, Y: 20}},
	}
	return timeline.NewSnapshot(items, time.UnixMilli(ts))
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Load(ctx, "empty")
	if err != nil {
		t.Fatalf("Load unknown board: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load unknown board = %d snapshots, want 0", len(got))
	}

	first := sampleSnapshot(1000, 5)
	second := sampleSnapshot(2000, 50)
	if err := s.Append(ctx, "board-1", first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, "board-1", second); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, "board-2", first); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err = s.Load(ctx, "board-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []timeline.Snapshot{first.Clone(), second.Clone()}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	got, _ = s.Load(ctx, "board-2")
	if len(got) != 1 {
		t.Errorf("board-2 has %d snapshots, want 1", len(got))
	}

	if err := s.Append(ctx, "../escape", first); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Append with bad id: got %v, want INVALID_INPUT", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStore(t, s)

	if ids := s.Boards(); len(ids) != 2 {
		t.Errorf("Boards() = %v, want 2 ids", ids)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	snap := sampleSnapshot(1, 1)
	s.Append(ctx, "b", snap)
	snap.Positions["a"] = board.Position{X: 999}

	got, _ := s.Load(ctx, "b")
	if got[0].Positions["a"].X == 999 {
		t.Error("store retained caller's map")
	}
	got[0].Positions["a"] = board.Position{X: 777}
	again, _ := s.Load(ctx, "b")
	if again[0].Positions["a"].X == 777 {
		t.Error("Load returned internal map")
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	testStore(t, s)

	ids, err := s.Boards()
	if err != nil {
		t.Fatalf("Boards: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"board-1", "board-2"}) {
		t.Errorf("Boards() = %v", ids)
	}

	// A second store over the same directory sees the same data.
	s2, _ := NewFileStore(dir)
	got, err := s2.Load(context.Background(), "board-1")
	if err != nil || len(got) != 2 {
		t.Errorf("reopened Load = %d, %v; want 2 snapshots", len(got), err)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := s.Load(context.Background(), "bad")
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("Load corrupt = %v, want STORAGE_ERROR", err)
	}
}

func TestValidateBoardID(t *testing.T) {
	tests := []struct {
		id string
		ok bool
	}{
		{"board-1", true},
		{"2f1c6a1e-0c4e-4a5b-9d62-5b7f6f1d2a90", true},
		{"my.board_2", true},
		{"", false},
		{"..", false},
		{"../x", false},
		{"a/b", false},
		{".hidden", false},
		{"with space", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateBoardID(tt.id)
			if (err == nil) != tt.ok {
				t.Errorf("ValidateBoardID(%q) = %v, want ok=%v", tt.id, err, tt.ok)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{})
	if err != nil {
		t.Fatalf("Open default: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open default = %T, want *MemoryStore", s)
	}

	s, err = Open(ctx, Options{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open file: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("Open file = %T, want *FileStore", s)
	}

	if _, err := Open(ctx, Options{Backend: "sqlite"}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Open unknown = %v, want INVALID_CONFIG", err)
	}
}

func TestRedisKey(t *testing.T) {
	if got := RedisKey("abc"); got != "moodboard:board:abc:snapshots" {
		t.Errorf("RedisKey = %q", got)
	}
}
