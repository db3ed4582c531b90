package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/moodboard/pkg/errors"
)

func TestFrameValidate(t *testing.T) {
	tests := []struct {
		name    string
		frame   Frame
		wantErr bool
	}{
		{"valid", Frame{Width: 800, Height: 600}, false},
		{"valid margin", Frame{Width: 800, Height: 600, TopMargin: 100}, false},
		{"zero width", Frame{Width: 0, Height: 600}, true},
		{"negative height", Frame{Width: 800, Height: -1}, true},
		{"nan width", Frame{Width: math.NaN(), Height: 600}, true},
		{"inf height", Frame{Width: 800, Height: math.Inf(1)}, true},
		{"margin too large", Frame{Width: 800, Height: 600, TopMargin: 600}, true},
		{"negative margin", Frame{Width: 800, Height: 600, TopMargin: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frame.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidContainer) {
				t.Errorf("Validate() code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidContainer)
			}
		})
	}
}

func TestFrameCenter(t *testing.T) {
	x, y := Frame{Width: 800, Height: 600, TopMargin: 100}.Center()
	if x != 400 || y != 350 {
		t.Errorf("Center() = (%v, %v), want (400, 350)", x, y)
	}
}
