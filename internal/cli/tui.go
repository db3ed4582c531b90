package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/moodboard/pkg/arrange"
	"github.com/matzehuels/moodboard/pkg/playback"
	"github.com/matzehuels/moodboard/pkg/render"
	"github.com/matzehuels/moodboard/pkg/timeline"
)

// Player styles
var (
	playerFrameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	playerPlayingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	playerStoppedStyle = lipgloss.NewStyle().Foreground(colorGray)
	playerSpecialStyle = lipgloss.NewStyle().Foreground(colorYellow)
	playerDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlayerModel - Interactive timeline playback
// =============================================================================

// playTickMsg is one scheduler beat. The model fires the controller's
// trigger from it, so ticks run on the bubbletea event loop. seq ties a beat
// to the tick chain that produced it; beats from an abandoned chain are
// dropped.
type playTickMsg struct{ seq int }

// PlayerModel is the bubbletea model for scrubbing and replaying a board.
type PlayerModel struct {
	board *arrange.Board
	ctrl  *playback.Controller
	sched *playback.ManualScheduler

	frame  render.Frame
	seq    int
	width  int
	height int
	err    error
}

// NewPlayerModel creates a player over b. Playback ticks every period.
func NewPlayerModel(b *arrange.Board, period time.Duration) PlayerModel {
	sched := &playback.ManualScheduler{}
	ctrl := playback.New(b, &playback.Options{Period: period, Scheduler: sched})
	return PlayerModel{
		board:  b,
		ctrl:   ctrl,
		sched:  sched,
		frame:  b.CurrentFrame(),
		width:  80,
		height: 24,
	}
}

func (m PlayerModel) Init() tea.Cmd {
	return nil
}

func (m PlayerModel) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.ctrl.Period(), func(time.Time) tea.Msg { return playTickMsg{seq: seq} })
}

func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.ctrl.Close()
			return m, tea.Quit
		case " ", "p":
			if m.ctrl.IsPlaying() {
				m.ctrl.Stop()
			} else if m.ctrl.Start() {
				m.seq++
				m.frame = m.board.CurrentFrame()
				return m, m.tick()
			}
		case "right", "l":
			m.seek(m.board.Pointer() + 1)
		case "left", "h":
			if p := m.board.Pointer(); p != timeline.Live {
				m.seek(p - 1)
			}
		case "home", "0":
			m.seek(0)
		case "end", "L":
			m.seek(timeline.Live)
		}
		m.frame = m.board.CurrentFrame()

	case playTickMsg:
		if msg.seq != m.seq || !m.sched.Active() {
			return m, nil
		}
		m.sched.Fire()
		m.frame = m.board.CurrentFrame()
		if m.sched.Active() {
			return m, m.tick()
		}

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
		m.height = max(msg.Height, 10)
	}
	return m, nil
}

func (m *PlayerModel) seek(index int) {
	if _, err := m.ctrl.Seek(index); err != nil {
		m.err = err
	}
}

func (m PlayerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Moodboard " + m.board.ID()))
	b.WriteString("  ")
	b.WriteString(m.status())
	b.WriteString("\n")

	cols := max(m.width-2, 10)
	rows := max(m.height-6, 4)
	b.WriteString(playerFrameStyle.Render(asciiFrame(m.frame, cols, rows)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(playerDimStyle.Render("space play/pause  ←/→ step  0 first  L live  q quit"))
	return b.String()
}

func (m PlayerModel) status() string {
	state := playerStoppedStyle.Render("■ stopped")
	if m.ctrl.IsPlaying() {
		state = playerPlayingStyle.Render("▶ playing")
	}
	n := m.board.Len()
	if m.frame.Index == timeline.Live {
		return state + StyleDim.Render(fmt.Sprintf(" · live · %d snapshots", n))
	}
	saved := time.UnixMilli(m.frame.Timestamp).Local().Format("Jan 2 15:04:05")
	return state + StyleDim.Render(fmt.Sprintf(" · %d/%d · %s", m.frame.Index+1, n, saved))
}

// =============================================================================
// Terminal rendering
// =============================================================================

// asciiFrame draws the frame's blocks scaled into a cols x rows character
// grid. Blocks are outlined with box-drawing characters and labelled with as
// much of their ID as fits.
func asciiFrame(f render.Frame, cols, rows int) string {
	grid := make([][]rune, rows)
	special := make([][]bool, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
		special[r] = make([]bool, cols)
	}

	w, h := f.Bounds()
	if w <= 0 || h <= 0 {
		return joinGrid(grid, special)
	}
	sx, sy := float64(cols)/w, float64(rows)/h

	for _, blk := range f.Blocks() {
		x0 := clampInt(int(blk.X*sx), 0, cols-1)
		y0 := clampInt(int(blk.Y*sy), 0, rows-1)
		x1 := clampInt(int((blk.X+blk.W)*sx)-1, x0, cols-1)
		y1 := clampInt(int((blk.Y+blk.H)*sy)-1, y0, rows-1)

		for x := x0; x <= x1; x++ {
			grid[y0][x], grid[y1][x] = '─', '─'
			special[y0][x], special[y1][x] = blk.Special, blk.Special
		}
		for y := y0; y <= y1; y++ {
			grid[y][x0], grid[y][x1] = '│', '│'
			special[y][x0], special[y][x1] = blk.Special, blk.Special
		}
		grid[y0][x0], grid[y0][x1], grid[y1][x0], grid[y1][x1] = '┌', '┐', '└', '┘'

		if inner := x1 - x0 - 1; inner > 0 && y1-y0 > 1 {
			label := []rune(blk.ID)
			if len(label) > inner {
				label = label[:inner]
			}
			for i, r := range label {
				grid[y0+1][x0+1+i] = r
				special[y0+1][x0+1+i] = blk.Special
			}
		}
	}
	return joinGrid(grid, special)
}

func joinGrid(grid [][]rune, special [][]bool) string {
	lines := make([]string, len(grid))
	for r, row := range grid {
		var b strings.Builder
		for c, ch := range row {
			if special[r][c] {
				b.WriteString(playerSpecialStyle.Render(string(ch)))
			} else {
				b.WriteRune(ch)
			}
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
