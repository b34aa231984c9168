// Command cpkernel runs the N-Queens workload on the reversible-state kernel.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/cpkernel/internal/config"
	"github.com/katalvlaran/cpkernel/internal/queens"
	"github.com/katalvlaran/cpkernel/lns"
	"github.com/katalvlaran/cpkernel/metrics"
	"github.com/katalvlaran/cpkernel/search"
)

// CLI is the command line of cpkernel. Flags override the configuration file.
type CLI struct {
	Config      string `short:"c" help:"Configuration file path (built-in defaults when empty)"`
	Verbose     bool   `short:"v" help:"Enable verbose logging"`
	Strategy    string `short:"s" help:"State strategy: trail or copy"`
	N           int    `help:"Board size"`
	Discrepancy int    `help:"Maximum discrepancy; negative keeps the configured value" default:"-1"`
	MetricsAddr string `help:"Serve Prometheus metrics on this address while running"`

	Queens struct {
		Solutions int `help:"Stop after this many solutions"`
	} `cmd:"" help:"Enumerate N-Queens solutions by depth-first search"`

	LNS struct {
		Workers    int    `short:"w" help:"Parallel workers"`
		Iterations int    `short:"i" help:"Iterations per worker"`
		Seed       uint64 `help:"Random seed"`
	} `cmd:"" name:"lns" help:"Minimize queen displacement by large neighborhood search"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("cpkernel failed", "error", err)
		os.Exit(1)
	}
}

// run parses args, executes the selected command and writes its report to stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("cpkernel"),
		kong.Description("Reversible-state backtracking kernel."),
		kong.Writers(stdout, stderr))
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(&cli)
	if err != nil {
		return err
	}

	// Set up logging
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	if cli.MetricsAddr != "" {
		srv := &http.Server{Addr: cli.MetricsAddr, Handler: metrics.HTTPHandler(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	// Execute command
	switch kctx.Command() {
	case "queens":
		if cli.Queens.Solutions > 0 {
			cfg.Limits.Solutions = cli.Queens.Solutions
		}
		return runQueens(ctx, cfg, rec, stdout)
	case "lns":
		if cli.LNS.Workers > 0 {
			cfg.LNS.Workers = cli.LNS.Workers
		}
		if cli.LNS.Iterations > 0 {
			cfg.LNS.Iterations = cli.LNS.Iterations
		}
		if cli.LNS.Seed > 0 {
			cfg.LNS.Seed = cli.LNS.Seed
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runLNS(ctx, cfg, rec, logger, stdout)
	default:
		return fmt.Errorf("unknown command %q", kctx.Command())
	}
}

// loadConfig reads the configuration file, if any, and applies the global flags.
func loadConfig(cli *CLI) (*config.Config, error) {
	cfg := config.Default()
	if cli.Config != "" {
		var err error
		if cfg, err = config.Load(cli.Config); err != nil {
			return nil, err
		}
	}
	if cli.Strategy != "" {
		cfg.Strategy = cli.Strategy
	}
	if cli.N > 0 {
		cfg.Queens.N = cli.N
	}
	if cli.Discrepancy >= 0 {
		cfg.Discrepancy = cli.Discrepancy
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func runQueens(ctx context.Context, cfg *config.Config, rec metrics.Recorder, out io.Writer) error {
	sm, err := config.NewManager(cfg.Strategy)
	if err != nil {
		return err
	}
	model, err := queens.New(sm, cfg.Queens.N)
	if err != nil {
		return err
	}
	b := model.Branching()
	if cfg.Discrepancy >= 0 {
		b = search.LimitedDiscrepancy(b, cfg.Discrepancy)
	}
	s := search.NewDFSearch(sm, b)

	var first []int
	s.OnSolution(func() {
		if first == nil {
			first = model.Solution()
		}
	})
	metrics.Attach(s, rec)

	limit := search.ContextLimit(ctx)
	if l := cfg.Limits.Limit(); l != nil {
		limit = search.AnyLimit(l, limit)
	}
	start := time.Now()
	stats, err := s.Solve(limit)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	rec.ObserveSearch(cfg.Strategy, stats, elapsed)
	slog.Info("queens finished",
		"n", cfg.Queens.N,
		"strategy", cfg.Strategy,
		"nodes", stats.Nodes,
		"solutions", stats.Solutions,
		"completed", stats.Completed,
		"duration", elapsed)

	fmt.Fprintln(out, stats)
	if first != nil {
		fmt.Fprintf(out, "first %v\n", first)
	}

	return nil
}

func runLNS(ctx context.Context, cfg *config.Config, rec metrics.Recorder, logger *slog.Logger, out io.Writer) error {
	factory := func(id int) (*lns.Worker, error) {
		sm, err := config.NewManager(cfg.Strategy)
		if err != nil {
			return nil, err
		}
		model, err := queens.New(sm, cfg.Queens.N)
		if err != nil {
			return nil, err
		}

		return &lns.Worker{
			Search:    search.NewDFSearch(sm, model.Branching()),
			Snapshot:  model.Solution,
			Objective: queens.Displacement,
			Neighborhood: func(rng *rand.Rand, incumbent []int) func() error {
				return model.Neighborhood(rng, incumbent, cfg.LNS.Relax)
			},
			Strategy: cfg.Strategy,
		}, nil
	}

	res, err := lns.Run(ctx, factory, lns.Config{
		Workers:      cfg.LNS.Workers,
		Iterations:   cfg.LNS.Iterations,
		FailureLimit: cfg.LNS.FailureLimit,
		Seed:         cfg.LNS.Seed,
	}, lns.WithLogger(logger), lns.WithRecorder(rec))
	if err != nil {
		return err
	}
	if res.Best == nil {
		fmt.Fprintln(out, "no solution")
		return nil
	}
	fmt.Fprintf(out, "best cost=%d %v\n", res.Cost, res.Best)
	fmt.Fprintf(out, "iterations=%d improvements=%d %s\n", res.Iterations, res.Improvements, res.Stats)

	return nil
}
