// Package storage persists board timelines outside the process.
//
// A [Store] is an append-only log of snapshots per board ID. The in-memory
// [timeline.Store] stays the source of truth for navigation; a Store only
// records what was saved so a board can be reloaded later.
//
// # Backends
//
//   - [MemoryStore]: process-local, for tests and throwaway servers
//   - [FileStore]: one JSON file per board, for the CLI
//   - [RedisStore]: one Redis list per board
//   - [MongoStore]: one document per snapshot in a MongoDB collection
//
// Use [Open] to build a backend from [Options].
package storage

import (
	"context"
	"path/filepath"
	"regexp"

	"github.com/matzehuels/moodboard/pkg/errors"
	"github.com/matzehuels/moodboard/pkg/timeline"
)

// Store persists snapshots per board.
type Store interface {
	// Load returns every snapshot saved for boardID in append order.
	// An unknown board yields an empty slice.
	Load(ctx context.Context, boardID string) ([]timeline.Snapshot, error)

	// Append records snap at the end of boardID's log, at most once. A
	// backend never retries a write whose outcome is unknown.
	Append(ctx context.Context, boardID string, snap timeline.Snapshot) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Options select and configure a backend.
type Options struct {
	Backend       string
	Dir           string // file
	RedisAddr     string // redis
	MongoURI      string // mongo
	MongoDatabase string // mongo
}

// Open builds the backend named by opts.Backend. An empty backend means
// memory.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(opts.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisAddr)
	case BackendMongo:
		return NewMongoStore(ctx, opts.MongoURI, opts.MongoDatabase)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown storage backend %q", opts.Backend)
	}
}

var boardIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateBoardID rejects IDs that are empty or could escape a directory or
// key namespace.
func ValidateBoardID(id string) error {
	if !boardIDPattern.MatchString(id) || id != filepath.Base(id) || len(id) > 128 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid board id %q", id)
	}
	return nil
}

func storageErr(op, boardID string, err error) error {
	return errors.Wrap(errors.ErrCodeStorage, err, "%s board %s", op, boardID)
}

func cloneAll(snaps []timeline.Snapshot) []timeline.Snapshot {
	out := make([]timeline.Snapshot, len(snaps))
	for i, s := range snaps {
		out[i] = s.Clone()
	}
	return out
}

