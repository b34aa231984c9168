package lns

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/cpkernel/metrics"
	"github.com/katalvlaran/cpkernel/search"
)

// runner holds the state shared by the workers of one Run.
type runner struct {
	cfg    Config
	logger *slog.Logger
	rec    metrics.Recorder

	mu  sync.Mutex
	res Result
}

// Run builds cfg.Workers workers with factory and runs them in parallel.
// The first worker error cancels the others and is returned together with
// the best incumbent found so far.
func Run(ctx context.Context, factory Factory, cfg Config, opts ...Option) (Result, error) {
	// 1. Validate configuration
	if cfg.Workers < 1 {
		return Result{}, ErrNoWorkers
	}
	r := &runner{cfg: cfg, logger: slog.Default(), rec: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(r)
	}

	// 2. Build workers up front so a factory error starts nothing
	workers := make([]*Worker, cfg.Workers)
	for id := range workers {
		w, err := factory(id)
		if err != nil {
			return Result{}, fmt.Errorf("lns: worker %d: %w", id, err)
		}
		if w == nil || w.Search == nil || w.Snapshot == nil || w.Objective == nil || w.Neighborhood == nil {
			return Result{}, fmt.Errorf("%w: worker %d", ErrNilWorker, id)
		}
		workers[id] = w
	}

	// 3. Run them
	g, gctx := errgroup.WithContext(ctx)
	for id, w := range workers {
		g.Go(func() error { return r.work(gctx, id, w) })
	}
	err := g.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger.Info("lns finished",
		"workers", cfg.Workers,
		"iterations", r.res.Iterations,
		"improvements", r.res.Improvements,
		"cost", r.res.Cost,
		"found", r.res.Best != nil)

	return r.res, err
}

// work runs one worker: a first solve for an initial incumbent, then
// cfg.Iterations neighborhoods.
func (r *runner) work(ctx context.Context, id int, w *Worker) error {
	var (
		rng      = rand.New(rand.NewPCG(r.cfg.Seed, uint64(id)))
		sm       = w.Search.StateManager()
		base     = sm.Level()
		iterBest []int
		iterCost int
		log      = r.logger.With("worker", id)
	)

	// Keep the best solution seen during the current search call.
	w.Search.OnSolution(func() {
		sol := w.Snapshot()
		if c := w.Objective(sol); iterBest == nil || c < iterCost {
			iterBest, iterCost = slices.Clone(sol), c
		}
	})
	metrics.Attach(w.Search, r.rec)

	start := time.Now()
	stats, err := w.Search.Solve(search.AnyLimit(search.SolutionLimit(1), search.ContextLimit(ctx)))
	if err != nil {
		return fmt.Errorf("lns: worker %d initial search: %w", id, err)
	}
	r.rec.ObserveSearch(w.Strategy, stats, time.Since(start))
	r.offer(iterBest, iterCost, stats, false)

	var limit search.Limit
	for it := 0; it < r.cfg.Iterations && ctx.Err() == nil; it++ {
		iterBest = nil
		var setup func() error
		if inc, ok := r.incumbent(); ok {
			setup = w.Neighborhood(rng, inc)
		}
		limit = search.ContextLimit(ctx)
		if r.cfg.FailureLimit > 0 {
			limit = search.AnyLimit(search.FailureLimit(r.cfg.FailureLimit), limit)
		}

		start = time.Now()
		stats, err = w.Search.SolveSubjectTo(limit, setup)
		if err != nil {
			return fmt.Errorf("lns: worker %d iteration %d: %w", id, it, err)
		}
		if lvl := sm.Level(); lvl != base {
			return fmt.Errorf("%w: worker %d level %d, want %d", ErrLeakedState, id, lvl, base)
		}
		r.rec.ObserveSearch(w.Strategy, stats, time.Since(start))

		improved := r.offer(iterBest, iterCost, stats, true)
		r.rec.ObserveIteration(improved)
		if improved {
			log.Debug("incumbent improved", "iteration", it, "cost", iterCost)
		}
	}

	return nil
}

// incumbent returns a copy of the shared best solution.
func (r *runner) incumbent() ([]int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.res.Best == nil {
		return nil, false
	}

	return slices.Clone(r.res.Best), true
}

// offer records the counters of one search call and installs sol when it
// beats the incumbent.
func (r *runner) offer(sol []int, cost int, stats search.Statistics, iteration bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.res.Stats.Nodes += stats.Nodes
	r.res.Stats.Failures += stats.Failures
	r.res.Stats.Solutions += stats.Solutions
	if iteration {
		r.res.Iterations++
	}
	if sol == nil || (r.res.Best != nil && cost >= r.res.Cost) {
		return false
	}
	r.res.Best, r.res.Cost = sol, cost
	if iteration {
		r.res.Improvements++
	}

	return true
}
