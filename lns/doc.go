// Package lns runs large-neighborhood search on top of search.DFSearch.
//
// Each iteration takes the best solution found so far (the incumbent),
// re-imposes it except for a relaxed subset through SolveSubjectTo, and
// searches briefly. SolveSubjectTo rolls every iteration back, so no
// iteration leaks state into the next one.
//
// Parallelism:
//
// Run starts Config.Workers workers with errgroup. Each Worker owns its
// manager, cells and driver; the factory must never share them between
// workers. Only the incumbent is shared, under a mutex.
//
//	res, err := lns.Run(ctx, factory, lns.Config{Workers: 4, Iterations: 200, FailureLimit: 100})
//
// Cancelling ctx ends the run cooperatively at the next node; the best
// incumbent so far is returned.
package lns
