package layout_test

import (
	"fmt"

	"github.com/matzehuels/moodboard/pkg/board"
	"github.com/matzehuels/moodboard/pkg/board/layout"
)

func ExampleSolve() {
	items := []board.Item{
		{ID: "ceramics", Weight: 0.12},
		{ID: "trail-running", Weight: 0.08},
		{ID: "future-self", Weight: 0.9, IsSpecial: true},
	}
	frame := layout.Frame{Width: 1200, Height: 900, TopMargin: 60}

	pos := layout.Solve(items, frame, &layout.Options{Seed: 42})
	for _, id := range board.IDs(pos) {
		fmt.Println(id)
	}
	// Output:
	// ceramics
	// future-self
	// trail-running
}

func ExampleSolve_empty() {
	pos := layout.Solve(nil, layout.Frame{Width: 100, Height: 100}, nil)
	fmt.Println(len(pos))
	// Output: 0
}
