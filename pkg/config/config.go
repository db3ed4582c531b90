// Package config loads moodboard settings from a TOML file.
//
// Every setting has a default, so an absent file or an empty one is valid.
// Fields present in the file override defaults; CLI flags override both.
//
//	[solver]
//	seed = 42
//
//	[board]
//	width = 1600
//	height = 1200
//	top_margin = 60
//
//	[playback]
//	period = "1500ms"
//
//	[storage]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/moodboard/pkg/board/layout"
	"github.com/matzehuels/moodboard/pkg/cache"
	"github.com/matzehuels/moodboard/pkg/errors"
	"github.com/matzehuels/moodboard/pkg/playback"
	"github.com/matzehuels/moodboard/pkg/storage"
)

// Config is the full settings tree.
type Config struct {
	Solver   Solver   `toml:"solver"`
	Board    Board    `toml:"board"`
	Playback Playback `toml:"playback"`
	Storage  Storage  `toml:"storage"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
}

// Solver holds layout coefficients. Zero means "use the solver default" for
// every coefficient, so jitter cannot be switched off; fix Seed to get
// repeatable layouts instead. Negative values are rejected.
type Solver struct {
	Iterations int     `toml:"iterations"`
	Gravity    float64 `toml:"gravity"`
	Repulsion  float64 `toml:"repulsion"`
	Damping    float64 `toml:"damping"`
	Spacing    float64 `toml:"spacing"`
	Jitter     float64 `toml:"jitter"`
	MaxSpeed   float64 `toml:"max_speed"`
	Seed       uint64  `toml:"seed"`
}

// Board is the default canvas.
type Board = layout.Frame

// Playback configures the player.
type Playback struct {
	Period Duration `toml:"period"`
}

// Storage selects the snapshot backend.
type Storage struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Cache configures the layout cache.
type Cache struct {
	Enabled   bool     `toml:"enabled"`
	Backend   string   `toml:"backend"` // file or redis
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	dir := defaultDataDir()
	o := layout.DefaultOptions()
	return Config{
		Solver: Solver{
			Iterations: o.Iterations,
			Gravity:    o.Gravity,
			Repulsion:  o.Repulsion,
			Damping:    o.Damping,
			Spacing:    o.Spacing,
			Jitter:     o.Jitter,
			MaxSpeed:   o.MaxSpeed,
		},
		Board:    Board{Width: 1600, Height: 1200, TopMargin: 60},
		Playback: Playback{Period: Duration{playback.DefaultPeriod}},
		Storage: Storage{
			Backend:       storage.BackendFile,
			Dir:           filepath.Join(dir, "boards"),
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "moodboard",
		},
		Cache: Cache{
			Enabled:   true,
			Backend:   "file",
			Dir:       filepath.Join(dir, "cache"),
			RedisAddr: "localhost:6379",
			TTL:       Duration{cache.DefaultTTL},
		},
		Server: Server{Addr: ":8080"},
	}
}

func defaultDataDir() string {
	if d, err := os.UserCacheDir(); err == nil {
		return filepath.Join(d, "moodboard")
	}
	return filepath.Join(os.TempDir(), "moodboard")
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg, keeping fields the data does not set,
// and validates the result. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate checks settings that cannot be defaulted away.
func (c Config) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[board]")
	}
	if c.Playback.Period.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[playback] period must not be negative")
	}
	if err := c.Solver.validate(); err != nil {
		return err
	}
	switch c.Storage.Backend {
	case "", storage.BackendMemory, storage.BackendFile, storage.BackendRedis, storage.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "[storage] unknown backend %q", c.Storage.Backend)
	}
	switch c.Cache.Backend {
	case "", "file", "redis":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "[cache] unknown backend %q", c.Cache.Backend)
	}
	return nil
}

func (s Solver) validate() error {
	if s.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[solver] iterations must not be negative")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"gravity", s.Gravity},
		{"repulsion", s.Repulsion},
		{"damping", s.Damping},
		{"spacing", s.Spacing},
		{"jitter", s.Jitter},
		{"max_speed", s.MaxSpeed},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "[solver] %s %g must be a finite value >= 0 (0 selects the default)", f.name, f.value)
		}
	}
	if s.Damping > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "[solver] damping %g outside [0, 1]", s.Damping)
	}
	return nil
}

// LayoutOptions converts the solver section.
func (c Config) LayoutOptions() layout.Options {
	s := c.Solver
	return layout.Options{
		Iterations: s.Iterations,
		Gravity:    s.Gravity,
		Repulsion:  s.Repulsion,
		Damping:    s.Damping,
		Spacing:    s.Spacing,
		Jitter:     s.Jitter,
		MaxSpeed:   s.MaxSpeed,
		Seed:       s.Seed,
	}
}

// StorageOptions converts the storage section.
func (c Config) StorageOptions() storage.Options {
	s := c.Storage
	return storage.Options{
		Backend:       s.Backend,
		Dir:           s.Dir,
		RedisAddr:     s.RedisAddr,
		MongoURI:      s.MongoURI,
		MongoDatabase: s.MongoDatabase,
	}
}

// Encode writes cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
