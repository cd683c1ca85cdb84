package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/concurrentcube"
	"github.com/SeamusWaldron/concurrentcube/internal/storage"
	"github.com/SeamusWaldron/concurrentcube/internal/stress"
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Run a fuzzed concurrent workload against one cube",
	Long: `Start --workers goroutines that each issue --ops random rotations and
snapshots against a single cube, with an invariant checker installed on its
hooks. A fraction of requests (--cancel-ratio) use a context that is already
cancelled or expires within microseconds.

The run fails if the checker saw conflicting work overlap or a color was
lost. Reports are stored in the run database unless --no-store is given.`,
	RunE: runStress,
}

var (
	stressSeed    int64
	stressNoStore bool
)

func init() {
	rootCmd.AddCommand(stressCmd)
	stressCmd.Flags().Int("workers", 8, "Number of concurrent workers")
	stressCmd.Flags().Int("ops", 1000, "Requests per worker")
	stressCmd.Flags().Int("show-every", 10, "Make every n-th request of a worker a snapshot (0: never)")
	stressCmd.Flags().Float64("cancel-ratio", 0.05, "Fraction of requests issued with a cancelled or expiring context")
	stressCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address during the run, e.g. :9090")
	stressCmd.Flags().Int64Var(&stressSeed, "seed", 0, "Random seed (default: current time)")
	stressCmd.Flags().BoolVar(&stressNoStore, "no-store", false, "Do not store the report")
}

func runStress(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	seed := stressSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	checker := stress.NewChecker(cfg.Size)
	cube := concurrentcube.New(cfg.Size,
		concurrentcube.WithHooks(checker.Hooks()),
		concurrentcube.WithLogger(logger))

	report, err := stress.Run(ctx, cube, stress.Workload{
		Workers:      cfg.Workers,
		OpsPerWorker: cfg.Ops,
		ShowEvery:    cfg.ShowEvery,
		CancelRatio:  cfg.CancelRatio,
		Seed:         seed,
		Checker:      checker,
		Logger:       logger,
	})
	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}

	printReport(report)
	if interrupted {
		fmt.Println(statusStyle.Render("interrupted: partial report"))
	}

	if !stressNoStore {
		id, err := storeReport(report)
		if err != nil {
			return err
		}
		fmt.Println(statusStyle.Render("stored as run " + id))
	}

	if !report.OK() {
		return fmt.Errorf("stress run failed: %d violations, conserved=%t", report.Violations.Total(), report.Conserved)
	}
	return nil
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.String("addr", addr), slog.Any("error", err))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", addr))
	return srv
}

func storeReport(report stress.Report) (string, error) {
	db, err := openDB()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return storage.NewRunRepository(db).Create(report)
}

func openDB() (*storage.DB, error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		if path, err = storage.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	return storage.Open(path)
}

func printReport(r stress.Report) {
	w := r.Workload
	fmt.Println(titleStyle.Render(fmt.Sprintf("Stress run: %d×%d×%d cube, %d workers × %d ops", r.Size, r.Size, r.Size, w.Workers, w.OpsPerWorker)))
	fmt.Printf("  Seed:             %d\n", w.Seed)
	fmt.Printf("  Duration:         %s\n", r.Duration.Round(time.Millisecond))
	fmt.Printf("  Rotations:        %d\n", r.Rotations)
	fmt.Printf("  Snapshots:        %d\n", r.Shows)
	fmt.Printf("  Cancelled:        %d\n", r.Cancelled)
	fmt.Printf("  Max handovers:    %d\n", r.MaxHandoversWaited)
	fmt.Printf("  Axis overlaps:    %d\n", r.Violations.AxisOverlap)
	fmt.Printf("  Layer overlaps:   %d\n", r.Violations.LayerOverlap)
	fmt.Printf("  Rotate/show:      %d / %d\n", r.Violations.RotateWhileShowing, r.Violations.ShowWhileRotating)
	fmt.Printf("  Colors conserved: %t\n", r.Conserved)

	if r.OK() {
		fmt.Println(okStyle.Render("OK"))
	} else {
		fmt.Println(errorStyle.Render("FAILED"))
	}
}
