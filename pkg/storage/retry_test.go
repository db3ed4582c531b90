package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	base := errors.New("boom")
	err := Retryable(base)
	if !IsRetryable(err) {
		t.Error("IsRetryable should detect wrapped error")
	}
	if !errors.Is(err, base) {
		t.Error("Retryable should unwrap to the original error")
	}
	if IsRetryable(base) {
		t.Error("plain error should not be retryable")
	}
}

func TestBackoffDo(t *testing.T) {
	fast := Backoff{Attempts: 3, Delay: time.Millisecond}
	ctx := context.Background()

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{"success", []error{nil}, 1, false},
		{"transient then success", []error{Retryable(errors.New("x")), nil}, 2, false},
		{"permanent", []error{errors.New("x")}, 1, true},
		{"exhausted", []error{Retryable(errors.New("1")), Retryable(errors.New("2")), Retryable(errors.New("3"))}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fast.Do(ctx, func() error {
				e := tt.errs[calls]
				calls++
				return e
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	slow := Backoff{Attempts: 3, Delay: time.Hour}
	err := slow.Do(ctx, func() error { return Retryable(errors.New("x")) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
