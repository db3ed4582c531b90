package storage

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/moodboard/pkg/timeline"
)

// RedisKeyPrefix namespaces board lists in a shared Redis.
const RedisKeyPrefix = "moodboard:board:"

// RedisStore keeps each board as a Redis list of JSON snapshots.
type RedisStore struct {
	client  redis.UniversalClient
	owned   bool
	backoff Backoff
}

// NewRedisStore connects to addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisStore{client: client, owned: true, backoff: DefaultBackoff}, nil
}

// NewRedisStoreFromClient wraps an existing client. Close does not close it.
func NewRedisStoreFromClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, backoff: DefaultBackoff}
}

// RedisKey returns the list key for boardID.
func RedisKey(boardID string) string {
	return RedisKeyPrefix + boardID + ":snapshots"
}

func (s *RedisStore) Load(ctx context.Context, boardID string) ([]timeline.Snapshot, error) {
	if err := ValidateBoardID(boardID); err != nil {
		return nil, err
	}

	var raw []string
	err := s.backoff.Do(ctx, func() error {
		var err error
		raw, err = s.client.LRange(ctx, RedisKey(boardID), 0, -1).Result()
		return redisRetryable(err)
	})
	if err != nil {
		return nil, storageErr("load", boardID, err)
	}

	snaps := make([]timeline.Snapshot, 0, len(raw))
	for i, r := range raw {
		snap, err := timeline.UnmarshalSnapshot([]byte(r))
		if err != nil {
			return nil, storageErr("load", boardID, fmt.Errorf("entry %d: %w", i, err))
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Append pushes snap onto the board's list. Only failures that happen before
// the push reaches the server are retried. When the reply is lost after the
// push was sent, the list is checked to see whether the snapshot landed.
func (s *RedisStore) Append(ctx context.Context, boardID string, snap timeline.Snapshot) error {
	if err := ValidateBoardID(boardID); err != nil {
		return err
	}
	data, err := timeline.MarshalSnapshot(snap.Clone())
	if err != nil {
		return storageErr("append to", boardID, err)
	}

	key := RedisKey(boardID)
	err = s.backoff.Do(ctx, func() error {
		n, err := s.client.LLen(ctx, key).Result()
		if err != nil {
			return redisRetryable(err)
		}
		err = s.client.RPush(ctx, key, data).Err()
		switch {
		case err == nil:
			return nil
		case redisUnsent(err):
			return Retryable(err)
		}
		if landed, lerr := s.landed(ctx, key, n, data); lerr == nil && landed {
			return nil
		}
		return err
	})
	if err != nil {
		return storageErr("append to", boardID, err)
	}
	return nil
}

// landed reports whether data sits at index n of the list at key.
func (s *RedisStore) landed(ctx context.Context, key string, n int64, data []byte) (bool, error) {
	got, err := s.client.LIndex(ctx, key, n).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return got == string(data), nil
}

// Close closes the client if this store created it.
func (s *RedisStore) Close() error {
	if s.owned {
		return s.client.Close()
	}
	return nil
}

// redisRetryable marks everything but context cancellation as transient. It
// is only used for reads.
func redisRetryable(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return Retryable(err)
}

var _ Store = (*RedisStore)(nil)

// redisUnsent reports whether err happened before a command was written to
// the server: the connection could not be dialed or taken from the pool.
func redisUnsent(err error) bool {
	if errors.Is(err, redis.ErrPoolTimeout) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
