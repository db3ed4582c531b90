package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/moodboard/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		printed bool
	}{
		{"success", nil, 0, false},
		{"interrupted", fmt.Errorf("arrange: %w", context.Canceled), 130, false},
		{"bad config", errors.New(errors.ErrCodeInvalidConfig, "unknown config key"), 2, true},
		{"bad board", errors.New(errors.ErrCodeInvalidContainer, "width 0"), 2, true},
		{"storage", errors.New(errors.ErrCodeStorage, "redis down"), 1, true},
		{"plain", fmt.Errorf("boom"), 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := exitCode(tt.err, &buf); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
			if printed := strings.HasPrefix(buf.String(), "moodboard: "); printed != tt.printed {
				t.Errorf("output = %q, printed %v, want %v", buf.String(), printed, tt.printed)
			}
		})
	}
}
