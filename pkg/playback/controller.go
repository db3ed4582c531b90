package playback

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/moodboard/pkg/observability"
	"github.com/matzehuels/moodboard/pkg/timeline"
)

// DefaultPeriod is the time between playback ticks.
const DefaultPeriod = 2 * time.Second

// State is the playback state.
type State int

const (
	Stopped State = iota
	Playing
)

// String returns the state name.
func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Timeline is the navigation surface the controller drives.
// *timeline.Store satisfies it.
type Timeline interface {
	Len() int
	Pointer() int
	JumpTo(index int) (timeline.View, error)
}

// Listener receives the view applied by a tick or seek.
type Listener func(timeline.View)

// Options configures a Controller.
type Options struct {
	// Period is the tick period. Default: [DefaultPeriod].
	Period time.Duration

	// Scheduler supplies the repeating trigger. Default: [TickerScheduler].
	Scheduler Scheduler

	// Logger receives debug events. Default: discard.
	Logger *log.Logger
}

// Controller plays a timeline back one snapshot per tick.
// It is safe for concurrent use; listeners are called without the internal
// lock held.
type Controller struct {
	mu        sync.Mutex
	tl        Timeline
	state     State
	cancel    func()
	gen       uint64
	listeners map[int]Listener
	nextID    int

	period    time.Duration
	scheduler Scheduler
	logger    *log.Logger
}

// New creates a stopped controller over tl. Pass nil opts for defaults.
func New(tl Timeline, opts *Options) *Controller {
	c := &Controller{
		tl:        tl,
		listeners: make(map[int]Listener),
		period:    DefaultPeriod,
		scheduler: TickerScheduler{},
	}
	if opts != nil {
		if opts.Period > 0 {
			c.period = opts.Period
		}
		if opts.Scheduler != nil {
			c.scheduler = opts.Scheduler
		}
		c.logger = opts.Logger
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return c
}

// Subscribe registers fn to receive every applied view. The returned
// function removes the subscription.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsPlaying reports whether playback is running.
func (c *Controller) IsPlaying() bool { return c.State() == Playing }

// Period returns the tick period.
func (c *Controller) Period() time.Duration { return c.period }

// Start begins playback and reports whether it did. Start is a no-op on an
// empty timeline or while already playing. From the live board or the last
// snapshot, playback restarts at the first snapshot, which is applied
// immediately; otherwise it resumes from the current pointer.
func (c *Controller) Start() bool {
	c.mu.Lock()
	n := c.tl.Len()
	if n == 0 || c.state == Playing {
		c.mu.Unlock()
		return false
	}

	var (
		view    timeline.View
		applied bool
	)
	if p := c.tl.Pointer(); p == timeline.Live || p == n-1 {
		v, err := c.tl.JumpTo(0)
		if err != nil {
			c.mu.Unlock()
			return false
		}
		view, applied = v, true
	}

	c.state = Playing
	c.gen++
	gen := c.gen
	c.cancel = c.scheduler.Every(c.period, func() { c.tick(gen) })
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.logger.Debug("playback started", "snapshots", n, "period", c.period)
	observability.Playback().OnPlaybackStart(n)
	if applied {
		notify(listeners, view)
	}
	return true
}

// Stop halts playback. It always cancels the trigger, is safe to call
// repeatedly, and leaves the pointer where it is.
func (c *Controller) Stop() {
	c.mu.Lock()
	wasPlaying := c.state == Playing
	c.stopLocked()
	p := c.tl.Pointer()
	c.mu.Unlock()

	if wasPlaying {
		c.logger.Debug("playback stopped", "pointer", p)
		observability.Playback().OnPlaybackStop(p)
	}
}

// Close stops playback and drops all listeners.
func (c *Controller) Close() {
	c.Stop()
	c.mu.Lock()
	clear(c.listeners)
	c.mu.Unlock()
}

// Tick advances playback by one step and reports whether anything happened.
// It does nothing while stopped. Past the last snapshot, playback stops and
// the pointer returns to the live board; listeners then receive the live
// view.
func (c *Controller) Tick() bool {
	c.mu.Lock()
	return c.advanceLocked()
}

// tick is the scheduler callback; ticks from a cancelled trigger are dropped.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.advanceLocked()
}

// advanceLocked runs one step. It is entered with c.mu held and releases it.
func (c *Controller) advanceLocked() bool {
	if c.state != Playing {
		c.mu.Unlock()
		return false
	}

	next := c.tl.Pointer() + 1
	finished := next >= c.tl.Len()
	if finished {
		c.stopLocked()
		next = timeline.Live
	}
	view, err := c.tl.JumpTo(next)
	if err != nil {
		// The timeline shrank underneath us; stop rather than spin.
		c.stopLocked()
		c.mu.Unlock()
		return false
	}
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	if finished {
		c.logger.Debug("playback finished")
		observability.Playback().OnPlaybackStop(timeline.Live)
	} else {
		observability.Playback().OnPlaybackTick(next)
	}
	notify(listeners, view)
	return true
}

// Seek moves the pointer to index in either state and applies the view
// synchronously. Out-of-range indexes return an OUT_OF_RANGE error and
// change nothing. Seek does not start or stop playback.
func (c *Controller) Seek(index int) (timeline.View, error) {
	c.mu.Lock()
	view, err := c.tl.JumpTo(index)
	if err != nil {
		c.mu.Unlock()
		return timeline.View{}, err
	}
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, view)
	return view, nil
}

func (c *Controller) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = Stopped
	c.gen++
}

func (c *Controller) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(c.listeners))
	for id := range c.nextID {
		if fn, ok := c.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []Listener, v timeline.View) {
	for _, fn := range listeners {
		fn(v)
	}
}
