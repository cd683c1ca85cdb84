package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/concurrentcube"
	"github.com/SeamusWaldron/concurrentcube/internal/stress"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a cube being rotated by concurrent workers",
	Long: `Start background workers that rotate one cube at random while the view
takes a snapshot every tick and redraws the net.

Controls:
  q / esc / ctrl+c   Stop the workers and quit`,
	RunE: runWatch,
}

var (
	watchWorkers  int
	watchInterval time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchWorkers, "workers", 4, "Number of rotating workers")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 200*time.Millisecond, "Snapshot interval")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model := newWatchModel(ctx, cancel, cfg.Size, watchWorkers, watchInterval)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch error: %w", err)
	}

	cancel()
	return <-model.done
}

// Messages
type tickMsg time.Time

type snapshotMsg struct {
	snap  concurrentcube.Snapshot
	stats concurrentcube.Stats
	err   error
}

type watchModel struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cube     *concurrentcube.Cube
	checker  *stress.Checker
	interval time.Duration
	workers  int
	started  time.Time
	done     chan error

	snap    concurrentcube.Snapshot
	stats   concurrentcube.Stats
	err     error
	hasSnap bool
}

func newWatchModel(ctx context.Context, cancel context.CancelFunc, size, workers int, interval time.Duration) *watchModel {
	checker := stress.NewChecker(size)
	return &watchModel{
		ctx:      ctx,
		cancel:   cancel,
		cube:     concurrentcube.New(size, concurrentcube.WithHooks(checker.Hooks()), concurrentcube.WithLogger(logger)),
		checker:  checker,
		interval: interval,
		workers:  workers,
		done:     make(chan error, 1),
	}
}

func (m *watchModel) Init() tea.Cmd {
	m.started = time.Now()
	go func() {
		_, err := stress.Run(m.ctx, m.cube, stress.Workload{
			Workers:      m.workers,
			OpsPerWorker: int(^uint(0) >> 1),
			Seed:         m.started.UnixNano(),
			Checker:      m.checker,
		})
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		m.done <- err
	}()
	return m.takeSnapshot
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *watchModel) takeSnapshot() tea.Msg {
	snap, err := m.cube.Show(m.ctx)
	return snapshotMsg{snap: snap, stats: m.cube.Stats(), err: err}
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}

	case tickMsg:
		return m, m.takeSnapshot

	case snapshotMsg:
		if msg.err != nil {
			if errors.Is(msg.err, concurrentcube.ErrCancelled) {
				return m, nil
			}
			m.err = msg.err
			return m, tea.Quit
		}
		m.snap = msg.snap
		m.stats = msg.stats
		m.hasSnap = true
		return m, m.tick()
	}

	return m, nil
}

func (m *watchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Watching %d×%d×%d cube, %d workers", m.cube.Size(), m.cube.Size(), m.cube.Size(), m.workers)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if !m.hasSnap {
		b.WriteString(statusStyle.Render("waiting for first snapshot..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(renderNet(m.snap))
	b.WriteString("\n")

	elapsed := time.Since(m.started).Seconds()
	rotations := m.checker.Rotations()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(rotations) / elapsed
	}
	b.WriteString(statusStyle.Render(fmt.Sprintf("Rotations: %d (%.0f/s)  Snapshots: %d  Max handovers: %d",
		rotations, rate, m.checker.Shows(), m.stats.MaxHandoversWaited)))
	b.WriteString("\n")

	v := m.checker.Violations()
	if v.Total() == 0 && m.snap.IsConserved() {
		b.WriteString(okStyle.Render("no violations, colors conserved"))
	} else {
		b.WriteString(errorStyle.Render(fmt.Sprintf("violations: %+v conserved=%t", v, m.snap.IsConserved())))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("q: quit"))
	b.WriteString("\n")

	return b.String()
}
