package arrange

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/moodboard/pkg/board"
	"github.com/matzehuels/moodboard/pkg/board/layout"
	"github.com/matzehuels/moodboard/pkg/cache"
	"github.com/matzehuels/moodboard/pkg/errors"
	"github.com/matzehuels/moodboard/pkg/observability"
	"github.com/matzehuels/moodboard/pkg/storage"
	"github.com/matzehuels/moodboard/pkg/timeline"
)

// Save mode values for [Orchestrator.Arrange].
const (
	NoSave = false
	Save   = true
)

// NotSaved is the snapshot index reported when nothing was appended.
const NotSaved = -1

// Options configures an Orchestrator. Every field is optional.
type Options struct {
	// Solver overrides the layout coefficients. Zero fields use defaults.
	Solver layout.Options

	// Cache stores solved layouts. Nil disables caching.
	Cache cache.Cache

	// Keyer builds cache keys. Default: [cache.NewDefaultKeyer].
	Keyer cache.Keyer

	// CacheTTL is the layout entry lifetime. Default: [cache.DefaultTTL].
	CacheTTL time.Duration

	// Store persists saved snapshots. Nil keeps snapshots in memory only.
	Store storage.Store

	// Logger receives progress. Default: discard.
	Logger *log.Logger

	// Now stamps snapshots. Default: time.Now.
	Now func() time.Time
}

// Orchestrator runs arrangements and saves snapshots.
type Orchestrator struct {
	solver   layout.Options
	cache    cache.Cache
	keyer    cache.Keyer
	cacheTTL time.Duration
	store    storage.Store
	logger   *log.Logger
	now      func() time.Time
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		solver:   opts.Solver,
		cache:    opts.Cache,
		keyer:    opts.Keyer,
		cacheTTL: opts.CacheTTL,
		store:    opts.Store,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if o.cache == nil {
		o.cache = cache.NewNullCache()
	}
	if o.keyer == nil {
		o.keyer = cache.NewDefaultKeyer()
	}
	if o.cacheTTL <= 0 {
		o.cacheTTL = cache.DefaultTTL
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// Result is the outcome of one arrangement.
type Result struct {
	// Items are the normalized input items with solved positions merged in.
	Items []board.Item

	// Positions holds one top-left position per distinct item ID.
	Positions map[string]board.Position

	// Cached reports whether the layout came from the cache.
	Cached bool

	// Index is the appended snapshot index, or [NotSaved].
	Index int

	Duration time.Duration
}

// ArrangeNow lays out items in frame and returns them with positions merged
// in. It never fails for malformed items; the only error is an invalid
// frame (INVALID_CONTAINER).
func (o *Orchestrator) ArrangeNow(ctx context.Context, items []board.Item, frame layout.Frame) (Result, error) {
	start := time.Now()
	observability.Arrange().OnArrangeStart(ctx, len(items))

	if err := frame.Validate(); err != nil {
		observability.Arrange().OnArrangeComplete(ctx, len(items), time.Since(start), err)
		return Result{Index: NotSaved}, err
	}

	normalized := make([]board.Item, len(items))
	for i, it := range items {
		normalized[i] = it.Normalized()
	}

	positions, cached := o.solve(ctx, normalized, frame)
	res := Result{
		Items:     board.WithPositions(normalized, positions),
		Positions: positions,
		Cached:    cached,
		Index:     NotSaved,
		Duration:  time.Since(start),
	}

	o.logger.Debug("arranged", "items", len(items), "positions", len(positions), "cached", cached, "took", res.Duration)
	observability.Arrange().OnArrangeComplete(ctx, len(items), res.Duration, nil)
	return res, nil
}

// Arrange lays out the board's live items in its canvas, replaces the live
// items with the result and, when save is true, appends a snapshot.
func (o *Orchestrator) Arrange(ctx context.Context, b *Board, save bool) (Result, error) {
	res, err := o.ArrangeNow(ctx, b.Items(), b.Canvas())
	if err != nil {
		return res, err
	}
	b.SetItems(res.Items)

	if save {
		idx, err := o.Save(ctx, b)
		if err != nil {
			return res, err
		}
		res.Index = idx
	}
	return res, nil
}

// Save captures the board's live items as a snapshot, persists it when a
// store is configured, and appends it to the board's timeline. A storage
// failure leaves the timeline untouched.
func (o *Orchestrator) Save(ctx context.Context, b *Board) (int, error) {
	snap := timeline.NewSnapshot(b.Items(), o.now())

	if o.store != nil {
		if err := o.store.Append(ctx, b.ID(), snap); err != nil {
			o.logger.Error("snapshot not saved", "board", b.ID(), "err", err)
			return NotSaved, err
		}
	}
	idx := b.append(snap)

	o.logger.Info("snapshot saved", "board", b.ID(), "index", idx, "items", len(snap.Items))
	observability.Arrange().OnSnapshotSaved(ctx, b.ID(), idx)
	return idx, nil
}

// LoadBoard creates a board whose timeline is read from the store. The live
// items start as the latest snapshot's items; the pointer is live.
func (o *Orchestrator) LoadBoard(ctx context.Context, id string, canvas layout.Frame) (*Board, error) {
	if o.store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no snapshot store configured")
	}
	snaps, err := o.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	var live []board.Item
	if n := len(snaps); n > 0 {
		live = snaps[n-1].Items
	}
	b := NewBoard(id, canvas, live)
	b.Load(snaps)

	o.logger.Debug("board loaded", "board", id, "snapshots", len(snaps))
	return b, nil
}

// solve returns positions for items, consulting the cache when the run is
// reproducible (no injected generator or observer).
func (o *Orchestrator) solve(ctx context.Context, items []board.Item, frame layout.Frame) (map[string]board.Position, bool) {
	opts := o.solver
	cacheable := opts.Rand == nil && opts.Observer == nil

	var key string
	if cacheable {
		key = o.layoutKey(items, frame)
		if key != "" {
			if data, hit, err := o.cache.Get(ctx, key); err == nil && hit {
				var pos map[string]board.Position
				if json.Unmarshal(data, &pos) == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					return pos, true
				}
			} else if err != nil {
				o.logger.Warn("layout cache read failed", "err", err)
			}
			observability.Cache().OnCacheMiss(ctx, "layout")
		}
	}

	positions := layout.Solve(items, frame, &opts)

	if key != "" {
		if data, err := json.Marshal(positions); err == nil {
			if err := o.cache.Set(ctx, key, data, o.cacheTTL); err != nil {
				o.logger.Warn("layout cache write failed", "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}
	return positions, false
}

// layoutKey hashes what the solver reads: IDs and sizing fields, in order.
func (o *Orchestrator) layoutKey(items []board.Item, frame layout.Frame) string {
	type sized struct {
		ID      string  `json:"id"`
		W       float64 `json:"w"`
		H       float64 `json:"h"`
		Weight  float64 `json:"weight"`
		Special bool    `json:"special"`
	}
	in := make([]sized, len(items))
	for i, it := range items {
		in[i] = sized{it.ID, it.BaseWidth, it.BaseHeight, it.Weight, it.IsSpecial}
	}
	hash, err := cache.HashJSON(in)
	if err != nil {
		return ""
	}

	opts := o.solver.Resolved()
	return o.keyer.LayoutKey(hash, cache.LayoutKeyOpts{
		Width:      frame.Width,
		Height:     frame.Height,
		TopMargin:  frame.TopMargin,
		Iterations: opts.Iterations,
		Gravity:    opts.Gravity,
		Repulsion:  opts.Repulsion,
		Damping:    opts.Damping,
		Spacing:    opts.Spacing,
		Jitter:     opts.Jitter,
		MaxSpeed:   opts.MaxSpeed,
		Seed:       opts.Seed,
	})
}
