package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/causeview/pkg/driver"
	"github.com/matzehuels/causeview/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const sliderWidth = 40

// tuiCommand creates the terminal step scrubber.
func (c *CLI) tuiCommand() *cobra.Command {
	var lf layoutFlags

	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Scrub through steps of a causality tree in the terminal",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: completeInputFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig(args)
			if err != nil {
				return err
			}
			if err := lf.apply(cmd, &cfg); err != nil {
				return err
			}
			rt, err := newRuntime(ctx, cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			// Keep layout warnings out of the alt screen; the model shows them.
			loggerFromContext(ctx).SetLevel(LogError)

			_, err = tea.NewProgram(NewStepModel(ctx, rt.driver), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
	lf.register(cmd)
	return cmd
}

// =============================================================================
// StepModel - Interactive step scrubber
// =============================================================================

// frameMsg carries the result of one render.
type frameMsg struct {
	frame *driver.Frame
	err   error
}

// StepModel is the bubbletea model driving a [driver.Driver] from the keyboard.
type StepModel struct {
	ctx    context.Context
	driver *driver.Driver
	target int // most recently requested step
	frame  *driver.Frame
	err    error
	height int
}

// NewStepModel creates a model positioned at the driver's current step.
func NewStepModel(ctx context.Context, d *driver.Driver) StepModel {
	return StepModel{ctx: ctx, driver: d, target: d.Step(), height: 20}
}

func (m StepModel) Init() tea.Cmd {
	return m.renderCmd(m.target)
}

func (m StepModel) renderCmd(step int) tea.Cmd {
	return func() tea.Msg {
		f, err := m.driver.SetStep(m.ctx, step)
		return frameMsg{frame: f, err: err}
	}
}

func (m StepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	lo, hi := m.driver.Range()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		next := m.target
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			next--
		case "right", "l":
			next++
		case "home", "g":
			next = lo
		case "end", "G":
			next = hi
		default:
			return m, nil
		}
		next = m.driver.State().Clamp(next)
		if next == m.target && m.frame != nil {
			return m, nil
		}
		m.target = next
		return m, m.renderCmd(next)
	case frameMsg:
		// Drop stale frames from superseded key presses.
		if msg.err == nil && msg.frame.Step != m.target {
			return m, nil
		}
		m.frame, m.err = msg.frame, msg.err
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m StepModel) View() string {
	var b strings.Builder
	lo, hi := m.driver.Range()

	title := driver.Title(m.target)
	if m.frame != nil {
		title = m.frame.Title
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ step  home/end bounds  q quit"))
	b.WriteString("\n\n")
	b.WriteString(sliderBar(m.target, lo, hi, sliderWidth))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
		return b.String()
	}
	if m.frame == nil {
		b.WriteString(listDimStyle.Render("rendering..."))
		return b.String()
	}
	if m.frame.Warning != "" {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render("using spring layout: "+m.frame.Warning) + "\n\n")
	}

	lines := layerLines(m.frame.Scene.Points)
	if len(lines) > m.height {
		hidden := len(lines) - m.height
		lines = append(lines[:m.height], listDimStyle.Render(fmt.Sprintf("  … %d more steps", hidden)))
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d nodes · %d edges · %s layout", m.frame.Nodes, m.frame.Edges, m.frame.Strategy)))
	return b.String()
}

// sliderBar draws a horizontal track with a knob at step.
func sliderBar(step, lo, hi, width int) string {
	pos := 0
	if hi > lo {
		pos = (step - lo) * (width - 1) / (hi - lo)
	}
	track := listDimStyle.Render(strings.Repeat("─", pos)) +
		listSelectedStyle.Render("●") +
		listDimStyle.Render(strings.Repeat("─", width-1-pos))
	return fmt.Sprintf("%s %s %s  %s", listDimStyle.Render(fmt.Sprint(lo)), track, listDimStyle.Render(fmt.Sprint(hi)),
		StyleNumber.Render(fmt.Sprintf("step %d", step)))
}

// layerLines lists visible nodes grouped by the step at which they appear.
func layerLines(points []scene.Point) []string {
	byStep := make(map[int][]scene.Point)
	for _, p := range points {
		byStep[p.Step] = append(byStep[p.Step], p)
	}
	steps := make([]int, 0, len(byStep))
	for s := range byStep {
		steps = append(steps, s)
	}
	slices.Sort(steps)

	lines := make([]string, 0, len(steps))
	for _, s := range steps {
		parts := make([]string, len(byStep[s]))
		for i, p := range byStep[s] {
			parts[i] = swatch(p.Color) + " " + p.Label + listDimStyle.Render(fmt.Sprintf("×%d", p.Count))
		}
		lines = append(lines, listDimStyle.Render(fmt.Sprintf("  %3d │ ", s))+strings.Join(parts, "  "))
	}
	return lines
}
