package stress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/concurrentcube"
)

// Workload describes a fuzzed run: Workers goroutines each issue
// OpsPerWorker random requests against one cube.
type Workload struct {
	Workers      int
	OpsPerWorker int
	// ShowEvery makes every n-th request of a worker a snapshot. Zero
	// disables snapshots.
	ShowEvery int
	// CancelRatio is the fraction of requests issued with a context that
	// is already cancelled or expires almost immediately.
	CancelRatio float64
	Seed        int64
	// Checker, when set, must be installed as the cube's hooks. Its
	// counters are copied into the report.
	Checker *Checker
	Logger  *slog.Logger
}

// Report summarizes a finished run.
type Report struct {
	StartedAt time.Time
	Duration  time.Duration
	Size      int
	Workload  Workload

	Rotations int64 // rotations that ran
	Shows     int64 // snapshots that ran
	Cancelled int64 // requests that returned ErrCancelled

	Violations         Violations
	MaxHandoversWaited uint64
	Conserved          bool
	Final              string
}

// OK reports whether the run saw no violations and ended with every color
// conserved.
func (r Report) OK() bool {
	return r.Violations.Total() == 0 && r.Conserved
}

// Run executes the workload against c and waits for every worker. If ctx is
// cancelled the workers stop early and the partial report is returned with
// ctx's error.
func Run(ctx context.Context, c *concurrentcube.Cube, w Workload) (Report, error) {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	report := Report{
		StartedAt: time.Now().UTC(),
		Size:      c.Size(),
		Workload:  w,
	}

	var rotations, shows, cancelledOps atomic.Int64

	logger.Info("stress run starting",
		slog.Int("size", c.Size()),
		slog.Int("workers", w.Workers),
		slog.Int("ops_per_worker", w.OpsPerWorker),
		slog.Float64("cancel_ratio", w.CancelRatio))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < w.Workers; i++ {
		i := i
		rng := rand.New(rand.NewSource(w.Seed + int64(i)))
		g.Go(func() error {
			for op := 1; op <= w.OpsPerWorker; op++ {
				if err := gctx.Err(); err != nil {
					return err
				}

				opCtx, cancel := operationContext(gctx, rng, w.CancelRatio)
				var err error
				if w.ShowEvery > 0 && op%w.ShowEvery == 0 {
					_, err = c.Show(opCtx)
					if err == nil {
						shows.Add(1)
					}
				} else {
					err = c.Rotate(opCtx, rng.Intn(concurrentcube.NumFaces), rng.Intn(c.Size()))
					if err == nil {
						rotations.Add(1)
					}
				}
				cancel()

				switch {
				case err == nil:
				case errors.Is(err, concurrentcube.ErrCancelled):
					cancelledOps.Add(1)
				default:
					return fmt.Errorf("worker %d: %w", i, err)
				}
			}
			return nil
		})
	}
	runErr := g.Wait()

	report.Duration = time.Since(report.StartedAt)
	report.Rotations = rotations.Load()
	report.Shows = shows.Load()
	report.Cancelled = cancelledOps.Load()
	if w.Checker != nil {
		report.Violations = w.Checker.Violations()
	}
	report.MaxHandoversWaited = c.Stats().MaxHandoversWaited

	snap, err := c.Show(context.WithoutCancel(ctx))
	if err != nil {
		return report, fmt.Errorf("final snapshot: %w", err)
	}
	report.Conserved = snap.IsConserved()
	report.Final = snap.String()

	logger.Info("stress run finished",
		slog.Int64("rotations", report.Rotations),
		slog.Int64("shows", report.Shows),
		slog.Int64("cancelled", report.Cancelled),
		slog.Int64("violations", report.Violations.Total()),
		slog.Bool("conserved", report.Conserved),
		slog.Duration("duration", report.Duration))

	return report, runErr
}

// operationContext returns the context for one request. With probability
// ratio it is either already cancelled or carries a deadline a few
// microseconds away.
func operationContext(parent context.Context, rng *rand.Rand, ratio float64) (context.Context, context.CancelFunc) {
	if ratio <= 0 || rng.Float64() >= ratio {
		return parent, func() {}
	}
	if rng.Intn(2) == 0 {
		ctx, cancel := context.WithCancel(parent)
		cancel()
		return ctx, cancel
	}
	return context.WithTimeout(parent, time.Duration(rng.Intn(50)+1)*time.Microsecond)
}
