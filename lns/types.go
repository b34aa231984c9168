package lns

import (
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/katalvlaran/cpkernel/metrics"
	"github.com/katalvlaran/cpkernel/search"
)

var (
	// ErrNoWorkers is returned when Config.Workers is below one.
	ErrNoWorkers = errors.New("lns: at least one worker required")

	// ErrNilWorker is returned when the factory yields a nil worker or search.
	ErrNilWorker = errors.New("lns: factory returned an incomplete worker")

	// ErrLeakedState is returned when an iteration leaves checkpoints open.
	ErrLeakedState = errors.New("lns: state leaked across iterations")
)

// Worker is one independent search session.
type Worker struct {
	// Search drives the worker's own model.
	Search *search.DFSearch

	// Snapshot reads the current solution; it is called from a solution listener.
	Snapshot func() []int

	// Objective scores a solution; lower is better.
	Objective func(sol []int) int

	// Neighborhood builds the setup of one iteration from the incumbent.
	// The setup may return search.ErrInconsistency.
	Neighborhood func(rng *rand.Rand, incumbent []int) func() error

	// Strategy labels the worker's metrics, e.g. "trail" or "copy".
	Strategy string
}

// Factory builds the worker with the given index.
type Factory func(id int) (*Worker, error)

// Config bounds a run.
type Config struct {
	// Workers is the number of parallel workers.
	Workers int

	// Iterations is the number of neighborhoods each worker explores.
	Iterations int

	// FailureLimit stops one iteration after that many failures; 0 disables it.
	FailureLimit int

	// Seed makes neighborhood selection reproducible; worker i uses stream i.
	Seed uint64
}

// Result is the outcome of Run.
type Result struct {
	// Best is the incumbent; nil when no solution was found.
	Best []int

	// Cost is Objective(Best).
	Cost int

	// Iterations counts completed iterations across workers.
	Iterations int

	// Improvements counts iterations that replaced the incumbent.
	Improvements int

	// Stats sums the search counters of every run; Completed is unused.
	Stats search.Statistics
}

// Option configures Run.
type Option func(*runner)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder; the default records nothing.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *runner) {
		if rec != nil {
			r.rec = rec
		}
	}
}
