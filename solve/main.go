// Command solve drives the Gobblet Gobblers solver: it loads a
// checkpointed transposition table (if one exists), solves a position,
// persists the result, and optionally keeps running as a small daemon
// that periodically re-solves every key in a worklist file (one base64
// canonical key per line).
//
// Usage:
//
//	solve -config solve.yaml -position <base64>
//	solve -config solve.yaml -serve -worklist keys.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/anthropics/gobbletsolve/engine"
	"github.com/anthropics/gobbletsolve/notation"
	"github.com/anthropics/gobbletsolve/store"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	position   = flag.String("position", "", "base64 canonical key to solve; empty solves the start position")
	serve      = flag.Bool("serve", false, "run as a long-lived daemon, periodically re-checkpointing")
	worklist   = flag.String("worklist", "", "path to a newline-separated file of base64 canonical keys (serve mode)")
)

func main() {
	flag.Parse()

	runID := uuid.New().String()
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar().With("run_id", runID)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		sugar.Fatalw("loading config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg)
	if err != nil {
		sugar.Fatalw("opening checkpoint store", "error", err)
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	m := newMetrics(reg)
	stopMetrics := serveMetrics(cfg, reg, sugar)
	if stopMetrics != nil {
		defer stopMetrics(ctx)
	}

	var solver *engine.Solver
	solver = engine.NewSolver(
		engine.WithTableCapacity(cfg.TableCapacity),
		engine.WithLogger(newZapAdapter(sugar)),
		engine.WithWallClockBudget(time.Duration(cfg.SolveBudget)),
		engine.WithCheckpoint(func(table *engine.Table) {
			if err := checkpoint(ctx, st, table); err != nil {
				sugar.Errorw("periodic checkpoint failed", "error", err)
				return
			}
			sugar.Infow("periodic checkpoint", "entries", table.Len())
			m.sample(solver)
		}),
	)
	if err := restoreTable(ctx, st, solver.Table()); err != nil {
		sugar.Fatalw("restoring table from checkpoint", "error", err)
	}
	sugar.Infow("restored checkpoint", "entries", solver.Table().Len())

	c := startCheckpointCron(sugar, solver, cfg)
	defer stopCron(c)

	if *serve {
		runServe(ctx, sugar, solver, st, m, cfg, c)
		return
	}

	runOnce(ctx, sugar, solver, st, m, *position)
}

// startCheckpointCron schedules solver.RequestCheckpoint on
// cfg.CheckpointCron, so the request flag Solve's frame loop polls
// gets set periodically regardless of run mode: a single long
// -position solve gets the same incremental checkpointing a -serve
// worklist run does, not just a checkpoint at the end.
func startCheckpointCron(sugar *zap.SugaredLogger, solver *engine.Solver, cfg Config) *cron.Cron {
	schedule := cfg.CheckpointCron
	if schedule == "" {
		schedule = "@every 5m"
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, solver.RequestCheckpoint); err != nil {
		sugar.Fatalw("invalid checkpoint_cron expression", "expr", schedule, "error", err)
	}
	c.Start()
	return c
}

func stopCron(c *cron.Cron) {
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
}

func openStore(cfg Config) (store.CheckpointStore, error) {
	if cfg.StorePath == "" {
		return store.NewMemStore(), nil
	}
	return store.OpenBadgerStore(cfg.StorePath)
}

func serveMetrics(cfg Config, reg *prometheus.Registry, sugar *zap.SugaredLogger) func(context.Context) {
	if cfg.MetricsAddr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Errorw("metrics server stopped", "error", err)
		}
	}()
	sugar.Infow("serving metrics", "addr", cfg.MetricsAddr)
	return func(ctx context.Context) { srv.Shutdown(ctx) }
}

func rootPosition(base64Key string) (*engine.Position, error) {
	if base64Key == "" {
		return engine.NewPosition(), nil
	}
	key, err := notation.DecodeKey(base64Key)
	if err != nil {
		return nil, err
	}
	return engine.Decode(key)
}

func runOnce(ctx context.Context, sugar *zap.SugaredLogger, solver *engine.Solver, st store.CheckpointStore, m *metrics, posArg string) {
	pos, err := rootPosition(posArg)
	if err != nil {
		sugar.Fatalw("decoding position", "error", err)
	}

	outcome, err := solver.Solve(ctx, pos)
	m.sample(solver)
	if err != nil {
		sugar.Errorw("solve did not complete", "error", err)
		if checkpointErr := checkpoint(ctx, st, solver.Table()); checkpointErr != nil {
			sugar.Errorw("final checkpoint failed", "error", checkpointErr)
		}
		os.Exit(1)
	}

	sugar.Infow("solved", "outcome", outcome.String(), "frames_visited", solver.Stats().FramesVisited)
	fmt.Println(outcome)

	if err := checkpoint(ctx, st, solver.Table()); err != nil {
		sugar.Errorw("checkpoint failed", "error", err)
	}
}

// runServe re-solves every key in the worklist file on the same cron
// schedule used for checkpoint requests, until ctx is cancelled. Each
// solve within a pass still gets its own frame-boundary checkpoints
// via the solver's RequestCheckpoint flag; this pass-level job is a
// safety net that also picks up worklist file edits.
func runServe(ctx context.Context, sugar *zap.SugaredLogger, solver *engine.Solver, st store.CheckpointStore, m *metrics, cfg Config, c *cron.Cron) {
	schedule := cfg.CheckpointCron
	if schedule == "" {
		schedule = "@every 5m"
	}
	if _, err := c.AddFunc(schedule, func() {
		solveWorklist(ctx, sugar, solver, st, m)
	}); err != nil {
		sugar.Fatalw("invalid checkpoint_cron expression", "expr", schedule, "error", err)
	}

	sugar.Infow("serving", "schedule", schedule, "worklist", *worklist)
	<-ctx.Done()
	sugar.Infow("shutting down, final checkpoint")
	solveWorklist(context.Background(), sugar, solver, st, m)
}

func solveWorklist(ctx context.Context, sugar *zap.SugaredLogger, solver *engine.Solver, st store.CheckpointStore, m *metrics) {
	keys, err := readWorklist(*worklist)
	if err != nil {
		sugar.Errorw("reading worklist", "error", err)
		return
	}
	for _, base64Key := range keys {
		pos, err := rootPosition(base64Key)
		if err != nil {
			sugar.Errorw("decoding worklist entry", "entry", base64Key, "error", err)
			continue
		}
		if _, err := solver.Solve(ctx, pos); err != nil {
			sugar.Warnw("worklist solve interrupted", "entry", base64Key, "error", err)
			break
		}
	}
	m.sample(solver)
	if err := checkpoint(ctx, st, solver.Table()); err != nil {
		sugar.Errorw("checkpoint failed", "error", err)
	}
}

func readWorklist(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var keys []string
	start := 0
	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := string(data[start:i])
			start = i + 1
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			if line != "" {
				keys = append(keys, line)
			}
		}
	}
	return keys, nil
}
