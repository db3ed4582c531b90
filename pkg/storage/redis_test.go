package storage

import (
	"context"
	stderrors "errors"
	"net"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/moodboard/pkg/errors"
)

// listServer answers list commands from memory through a client hook, so
// no connection is ever dialed.
type listServer struct {
	mu    sync.Mutex
	lists map[string][]string
	calls map[string]int

	// beforePush fails the next RPUSH calls without applying them.
	beforePush []error
	// afterPush applies the next RPUSH calls, then fails them.
	afterPush []error
}

func newTestRedisStore(t *testing.T, srv *listServer) *RedisStore {
	t.Helper()
	srv.lists = make(map[string][]string)
	srv.calls = make(map[string]int)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	client.AddHook(srv)
	t.Cleanup(func() { client.Close() })

	s := NewRedisStoreFromClient(client)
	s.backoff = Backoff{Attempts: 3, Delay: time.Millisecond}
	return s
}

func (srv *listServer) DialHook(next redis.DialHook) redis.DialHook { return next }

func (srv *listServer) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (srv *listServer) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := srv.apply(cmd)
		cmd.SetErr(err)
		return err
	}
}

func (srv *listServer) apply(cmd redis.Cmder) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	args := cmd.Args()
	key, _ := args[1].(string)
	list := srv.lists[key]
	srv.calls[cmd.Name()]++

	switch cmd.Name() {
	case "llen":
		cmd.(*redis.IntCmd).SetVal(int64(len(list)))
	case "rpush":
		if len(srv.beforePush) > 0 {
			err := srv.beforePush[0]
			srv.beforePush = srv.beforePush[1:]
			return err
		}
		for _, v := range args[2:] {
			switch v := v.(type) {
			case []byte:
				list = append(list, string(v))
			case string:
				list = append(list, v)
			}
		}
		srv.lists[key] = list
		cmd.(*redis.IntCmd).SetVal(int64(len(list)))
		if len(srv.afterPush) > 0 {
			err := srv.afterPush[0]
			srv.afterPush = srv.afterPush[1:]
			return err
		}
	case "lindex":
		i, _ := args[2].(int64)
		if i < 0 {
			i += int64(len(list))
		}
		if i < 0 || i >= int64(len(list)) {
			return redis.Nil
		}
		cmd.(*redis.StringCmd).SetVal(list[i])
	case "lrange":
		cmd.(*redis.StringSliceCmd).SetVal(append([]string(nil), list...))
	default:
		return stderrors.New("unexpected command " + cmd.Name())
	}
	return nil
}

func readTimeout() error {
	return &net.OpError{Op: "read", Net: "tcp", Err: os.ErrDeadlineExceeded}
}

func dialRefused() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
}

func TestRedisStore(t *testing.T) {
	testStore(t, newTestRedisStore(t, &listServer{}))
}

func TestRedisStoreLostReplyNotDuplicated(t *testing.T) {
	srv := &listServer{afterPush: []error{readTimeout()}}
	s := newTestRedisStore(t, srv)
	ctx := context.Background()

	if err := s.Append(ctx, "b1", sampleSnapshot(1000, 5)); err != nil {
		t.Fatalf("Append after lost reply: %v", err)
	}
	if srv.calls["rpush"] != 1 {
		t.Errorf("RPUSH sent %d times, want 1", srv.calls["rpush"])
	}

	got, err := s.Load(ctx, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("Load = %d snapshots, want 1", len(got))
	}
}

func TestRedisStoreRetriesUnsentPush(t *testing.T) {
	srv := &listServer{beforePush: []error{dialRefused(), redis.ErrPoolTimeout}}
	s := newTestRedisStore(t, srv)
	ctx := context.Background()

	if err := s.Append(ctx, "b1", sampleSnapshot(1000, 5)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if srv.calls["rpush"] != 3 {
		t.Errorf("RPUSH sent %d times, want 3", srv.calls["rpush"])
	}
	got, err := s.Load(ctx, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("Load = %d snapshots, want 1", len(got))
	}
}

func TestRedisStoreUnknownOutcomeNotRetried(t *testing.T) {
	srv := &listServer{beforePush: []error{readTimeout(), readTimeout()}}
	s := newTestRedisStore(t, srv)
	ctx := context.Background()

	err := s.Append(ctx, "b1", sampleSnapshot(1000, 5))
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Fatalf("Append = %v, want STORAGE_ERROR", err)
	}
	if srv.calls["rpush"] != 1 {
		t.Errorf("RPUSH sent %d times, want 1", srv.calls["rpush"])
	}
	got, err := s.Load(ctx, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Load = %d snapshots, want 0", len(got))
	}
}
