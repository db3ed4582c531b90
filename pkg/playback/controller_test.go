package playback

import (
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/moodboard/pkg/board"
	"github.com/matzehuels/moodboard/pkg/errors"
	"github.com/matzehuels/moodboard/pkg/timeline"
)

func newTestStore(n int) *timeline.Store {
	s := timeline.NewStore()
	for i := range n {
		items := []board.Item{{ID: "a", Position: board.Position{X: float64(i * 10)}}}
		s.Append(timeline.NewSnapshot(items, time.UnixMilli(int64(i))))
	}
	return s
}

func newTestController(n int) (*Controller, *timeline.Store, *ManualScheduler) {
	store := newTestStore(n)
	sched := &ManualScheduler{}
	c := New(store, &Options{Scheduler: sched, Period: time.Second})
	return c, store, sched
}

func TestStartEmptyTimeline(t *testing.T) {
	c, _, sched := newTestController(0)

	if c.Start() {
		t.Error("Start() on empty timeline = true, want false")
	}
	if c.IsPlaying() {
		t.Error("IsPlaying() = true after Start on empty timeline")
	}
	if sched.Started() != 0 {
		t.Errorf("scheduler started %d triggers, want 0", sched.Started())
	}
}

func TestStartFromLiveAppliesFirstSnapshot(t *testing.T) {
	c, store, sched := newTestController(3)

	var seen []int
	c.Subscribe(func(v timeline.View) { seen = append(seen, v.Index) })

	if !c.Start() {
		t.Fatal("Start() = false, want true")
	}
	if !c.IsPlaying() {
		t.Error("IsPlaying() = false after Start")
	}
	if store.Pointer() != 0 {
		t.Errorf("Pointer() = %d, want 0", store.Pointer())
	}
	if len(seen) != 1 || seen[0] != 0 {
		t.Errorf("listeners saw %v, want [0]", seen)
	}
	if sched.Period() != time.Second {
		t.Errorf("scheduler period = %v, want 1s", sched.Period())
	}
}

func TestStartWhilePlayingIsNoop(t *testing.T) {
	c, _, sched := newTestController(3)

	c.Start()
	if c.Start() {
		t.Error("second Start() = true, want false")
	}
	if sched.Started() != 1 {
		t.Errorf("scheduler started %d triggers, want 1", sched.Started())
	}
}

func TestStartFromLastSnapshotRestarts(t *testing.T) {
	c, store, _ := newTestController(3)
	c.Seek(2)

	c.Start()
	if store.Pointer() != 0 {
		t.Errorf("Pointer() = %d, want 0", store.Pointer())
	}
}

func TestStartResumesFromMiddle(t *testing.T) {
	c, store, sched := newTestController(4)
	c.Seek(1)

	applied := 0
	c.Subscribe(func(timeline.View) { applied++ })
	c.Start()

	if store.Pointer() != 1 {
		t.Errorf("Pointer() = %d, want 1", store.Pointer())
	}
	if applied != 0 {
		t.Errorf("Start() from middle applied %d views, want 0", applied)
	}

	sched.Fire()
	if store.Pointer() != 2 {
		t.Errorf("Pointer() after tick = %d, want 2", store.Pointer())
	}
}

func TestFullLoopThenReset(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		c, store, sched := newTestController(n)

		var seen []int
		c.Subscribe(func(v timeline.View) { seen = append(seen, v.Index) })

		c.Start()
		for i := 0; i < n; i++ {
			if !c.IsPlaying() {
				t.Fatalf("n=%d: stopped early after %d ticks", n, i)
			}
			sched.Fire()
		}

		if c.IsPlaying() {
			t.Errorf("n=%d: still playing after %d ticks", n, n)
		}
		if store.Pointer() != timeline.Live {
			t.Errorf("n=%d: Pointer() = %d, want %d", n, store.Pointer(), timeline.Live)
		}
		if sched.Active() {
			t.Errorf("n=%d: trigger still active after loop finished", n)
		}

		want := make([]int, 0, n+1)
		for i := range n {
			want = append(want, i)
		}
		want = append(want, timeline.Live)
		if len(seen) != len(want) {
			t.Fatalf("n=%d: listeners saw %v, want %v", n, seen, want)
		}
		for i := range want {
			if seen[i] != want[i] {
				t.Errorf("n=%d: listeners saw %v, want %v", n, seen, want)
				break
			}
		}
	}
}

func TestStopIdempotent(t *testing.T) {
	c, store, sched := newTestController(3)

	c.Stop()
	c.Start()
	sched.Fire()
	c.Stop()
	c.Stop()

	if c.IsPlaying() {
		t.Error("IsPlaying() = true after Stop")
	}
	if sched.Active() {
		t.Error("trigger still active after Stop")
	}
	if store.Pointer() != 1 {
		t.Errorf("Stop() moved pointer to %d, want 1", store.Pointer())
	}
}

func TestNoTicksAfterStop(t *testing.T) {
	store := newTestStore(3)

	var (
		mu      sync.Mutex
		trigger func()
	)
	sched := SchedulerFunc(func(_ time.Duration, fn func()) func() {
		mu.Lock()
		trigger = fn
		mu.Unlock()
		return func() {}
	})
	c := New(store, &Options{Scheduler: sched})

	c.Start()
	c.Stop()

	// A trigger that ignores cancellation still must not advance playback.
	mu.Lock()
	fn := trigger
	mu.Unlock()
	fn()

	if store.Pointer() != 0 {
		t.Errorf("stale tick moved pointer to %d", store.Pointer())
	}

	// A new Start gets a fresh trigger; the stale one stays dead.
	c.Seek(0)
	c.Start()
	fn()
	if store.Pointer() != 0 {
		t.Errorf("stale tick after restart moved pointer to %d", store.Pointer())
	}
}

func TestTickWhileStopped(t *testing.T) {
	c, store, _ := newTestController(3)
	if c.Tick() {
		t.Error("Tick() while stopped = true, want false")
	}
	if store.Pointer() != timeline.Live {
		t.Errorf("Tick() while stopped moved pointer to %d", store.Pointer())
	}
}

func TestTickDirect(t *testing.T) {
	c, store, _ := newTestController(2)
	c.Start()

	if !c.Tick() {
		t.Fatal("Tick() = false while playing")
	}
	if store.Pointer() != 1 {
		t.Errorf("Pointer() = %d, want 1", store.Pointer())
	}
	c.Tick()
	if c.IsPlaying() || store.Pointer() != timeline.Live {
		t.Errorf("after final tick: playing=%v pointer=%d", c.IsPlaying(), store.Pointer())
	}
}

func TestSeek(t *testing.T) {
	c, store, _ := newTestController(3)

	var got timeline.View
	c.Subscribe(func(v timeline.View) { got = v })

	v, err := c.Seek(2)
	if err != nil {
		t.Fatalf("Seek(2) error: %v", err)
	}
	if v.Index != 2 || got.Index != 2 {
		t.Errorf("Seek(2) view=%d listener=%d, want 2", v.Index, got.Index)
	}
	if got.Snapshot.Positions["a"].X != 20 {
		t.Errorf("listener got position %v, want x=20", got.Snapshot.Positions["a"])
	}
	if c.IsPlaying() {
		t.Error("Seek() started playback")
	}

	for _, idx := range []int{3, -2} {
		if _, err := c.Seek(idx); !errors.Is(err, errors.ErrCodeOutOfRange) {
			t.Errorf("Seek(%d) error = %v, want OUT_OF_RANGE", idx, err)
		}
		if store.Pointer() != 2 {
			t.Errorf("Seek(%d) moved pointer to %d", idx, store.Pointer())
		}
	}
}

func TestSeekWhilePlaying(t *testing.T) {
	c, store, sched := newTestController(4)
	c.Start()

	if _, err := c.Seek(2); err != nil {
		t.Fatalf("Seek(2) error: %v", err)
	}
	if !c.IsPlaying() {
		t.Error("Seek() stopped playback")
	}
	sched.Fire()
	if store.Pointer() != 3 {
		t.Errorf("Pointer() after tick = %d, want 3", store.Pointer())
	}
}

func TestUnsubscribe(t *testing.T) {
	c, _, _ := newTestController(2)

	calls := 0
	unsubscribe := c.Subscribe(func(timeline.View) { calls++ })
	c.Seek(0)
	unsubscribe()
	c.Seek(1)

	if calls != 1 {
		t.Errorf("listener called %d times, want 1", calls)
	}
}

func TestClose(t *testing.T) {
	c, _, sched := newTestController(2)
	calls := 0
	c.Subscribe(func(timeline.View) { calls++ })

	c.Start()
	c.Close()
	if sched.Active() || c.IsPlaying() {
		t.Error("Close() left playback running")
	}
	c.Seek(1)
	if calls != 1 {
		t.Errorf("listener called %d times after Close, want 1", calls)
	}
}

func TestDefaults(t *testing.T) {
	c := New(timeline.NewStore(), nil)
	if c.Period() != DefaultPeriod {
		t.Errorf("Period() = %v, want %v", c.Period(), DefaultPeriod)
	}
	if c.State() != Stopped || c.State().String() != "stopped" {
		t.Errorf("State() = %v", c.State())
	}
	if Playing.String() != "playing" {
		t.Errorf("Playing.String() = %q", Playing.String())
	}
}

func TestTickerScheduler(t *testing.T) {
	store := newTestStore(2)
	c := New(store, &Options{Scheduler: TickerScheduler{}, Period: 5 * time.Millisecond})

	done := make(chan struct{})
	var once sync.Once
	c.Subscribe(func(v timeline.View) {
		if v.IsLive() {
			once.Do(func() { close(done) })
		}
	})

	c.Start()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("playback did not finish")
	}
	if c.IsPlaying() {
		t.Error("still playing after loop finished")
	}
}
