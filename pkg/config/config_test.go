package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/moodboard/pkg/errors"
	"github.com/matzehuels/moodboard/pkg/storage"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Playback.Period.Duration != 2*time.Second {
		t.Errorf("Playback.Period = %v, want 2s", cfg.Playback.Period)
	}
	if cfg.Solver.Iterations != 120 || cfg.Solver.Spacing != 20 {
		t.Errorf("Solver = %+v", cfg.Solver)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if cfg != Default() {
		t.Error("Load(\"\") differs from Default()")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moodboard.toml")
	data := `
[solver]
seed = 42
iterations = 200

[board]
width = 800
height = 600
top_margin = 40

[playback]
period = "1500ms"

[storage]
backend = "redis"
redis_addr = "redis:6379"

[cache]
enabled = false
ttl = "1h"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Solver.Seed != 42 || cfg.Solver.Iterations != 200 {
		t.Errorf("Solver = %+v", cfg.Solver)
	}
	// Unset solver fields keep their defaults.
	if cfg.Solver.Gravity != 0.015 {
		t.Errorf("Solver.Gravity = %g, want default", cfg.Solver.Gravity)
	}
	if cfg.Board.Width != 800 || cfg.Board.Height != 600 || cfg.Board.TopMargin != 40 {
		t.Errorf("Board = %+v", cfg.Board)
	}
	if cfg.Playback.Period.Duration != 1500*time.Millisecond {
		t.Errorf("Period = %v", cfg.Playback.Period)
	}
	if cfg.Storage.Backend != storage.BackendRedis || cfg.Storage.RedisAddr != "redis:6379" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Cache.Enabled || cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}

	opts := cfg.LayoutOptions()
	if opts.Seed != 42 || opts.Iterations != 200 {
		t.Errorf("LayoutOptions() = %+v", opts)
	}
	if so := cfg.StorageOptions(); so.Backend != "redis" || so.RedisAddr != "redis:6379" {
		t.Errorf("StorageOptions() = %+v", so)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[solver\nseed = 1"},
		{"unknown key", "[solver]\nspeed = 1"},
		{"bad duration", "[playback]\nperiod = \"soon\""},
		{"bad board", "[board]\nwidth = 0"},
		{"margin too big", "[board]\nheight = 100\ntop_margin = 100"},
		{"bad backend", "[storage]\nbackend = \"s3\""},
		{"bad cache backend", "[cache]\nbackend = \"memcached\""},
		{"bad damping", "[solver]\ndamping = 2.0"},
		{"negative damping", "[solver]\ndamping = -0.1"},
		{"negative jitter", "[solver]\njitter = -1.0"},
		{"negative iterations", "[solver]\niterations = -5"},
		{"nan gravity", "[solver]\ngravity = nan"},
		{"infinite spacing", "[solver]\nspacing = inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			os.WriteFile(path, []byte(tt.data), 0o644)
			_, err := Load(path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestZeroSolverValuesSelectDefaults(t *testing.T) {
	var cfg Config
	if err := Parse([]byte("[board]\nwidth = 800\nheight = 600\n[solver]\ndamping = 0.0\njitter = 0.0"), &cfg); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := cfg.LayoutOptions().Resolved()
	if got.Damping != 0.85 || got.Jitter != 25 {
		t.Errorf("Resolved damping=%v jitter=%v, want defaults 0.85 and 25", got.Damping, got.Jitter)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) err = %v, want INVALID_CONFIG", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Solver.Seed = 9
	cfg.Playback.Period = Duration{750 * time.Millisecond}

	data, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var got Config
	if err := Parse(data, &got); err != nil {
		t.Fatalf("Parse: %v\n%s", err, data)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
