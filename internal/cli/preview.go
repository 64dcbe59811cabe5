package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/viewmorph/viewmorph/pkg/pipeline"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	pipelineFlags
	fps int // playback rate
}

// previewCommand creates the preview command for terminal playback.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{fps: 30}

	cmd := &cobra.Command{
		Use:   "preview [dataset.json]",
		Short: "Play a transition in the terminal",
		Long: `Play a transition in the terminal.

The preview command samples the transition and plays it back as a
braille scatter plot. Space pauses, the arrow keys step frame by
frame, and q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.fps < 1 || opts.fps > 120 {
				return fmt.Errorf("invalid fps: %d (must be between 1 and 120)", opts.fps)
			}
			return c.runPreview(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	opts.registerFrames(cmd)
	cmd.Flags().IntVar(&opts.fps, "fps", opts.fps, "playback rate in frames per second")

	return cmd
}

// runPreview samples the transition and hands the frames to the playback
// model.
func (c *CLI) runPreview(ctx context.Context, input string, opts *previewOpts) error {
	pOpts, err := opts.options(input)
	if err != nil {
		return err
	}
	pOpts.Logger = c.Logger

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Sampling frames...")
	spinner.Start()
	result, err := runner.Execute(ctx, pOpts)
	if err != nil {
		spinner.StopWithError("Sampling failed")
		return err
	}
	spinner.Stop()

	printStats(result.Stats.PointCount, len(result.Frames.Frames), result.CacheInfo.FramesHit)
	printNewline()

	m := previewModel{
		frames:  result.Frames.Frames,
		playing: true,
		fps:     opts.fps,
		width:   80,
		height:  20,
	}
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// frameTickMsg advances playback by one frame.
type frameTickMsg time.Time

// previewModel is the bubbletea model for transition playback.
type previewModel struct {
	frames  []pipeline.Frame
	cur     int
	playing bool
	fps     int
	width   int
	height  int
}

func (m previewModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func (m previewModel) Init() tea.Cmd {
	return m.tick()
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			if m.playing {
				return m, m.tick()
			}
		case "left", "h":
			m.playing = false
			if m.cur > 0 {
				m.cur--
			}
		case "right", "l":
			m.playing = false
			if m.cur < len(m.frames)-1 {
				m.cur++
			}
		case "0":
			m.cur = 0
		}
	case frameTickMsg:
		if !m.playing {
			return m, nil
		}
		m.cur = (m.cur + 1) % len(m.frames)
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - 4
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	if len(m.frames) == 0 {
		return ""
	}
	f := m.frames[m.cur]

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Preview"))
	b.WriteString("\n")
	b.WriteString(renderBraille(f.Positions, m.width, m.height))

	state := StyleSuccess.Render("▶")
	if !m.playing {
		state = StyleWarning.Render("⏸")
	}
	b.WriteString(state + StyleValue.Render(fmt.Sprintf(" t=%.2f  frame %d/%d", f.T, m.cur+1, len(m.frames))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space play/pause  ←/→ step  0 rewind  q quit"))
	b.WriteString("\n")
	return b.String()
}

// brailleBits maps a subpixel (dy, dx) inside one terminal cell to its
// braille dot bit. A cell carries a 2x4 dot grid.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// renderBraille plots normalized positions onto a cols x rows braille
// canvas. The y axis points up, so rows are flipped for the screen.
func renderBraille(positions []pipeline.Position, cols, rows int) string {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	cells := make([]rune, cols*rows)
	px, py := cols*2, rows*4

	for _, p := range positions {
		x := int(math.Round(p.X * float64(px-1)))
		y := int(math.Round(p.Y * float64(py-1)))
		x = clampIndex(x, px)
		y = py - 1 - clampIndex(y, py)
		cells[(y/4)*cols+x/2] |= brailleBits[y%4][x%2]
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			bits := cells[r*cols+c]
			if bits == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteRune(0x2800 | bits)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// clampIndex bounds i into [0, n).
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
