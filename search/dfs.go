package search

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/cpkernel/state"
)

// opKind tags a frame of the work list.
type opKind uint8

const (
	opSave    opKind = iota // open a checkpoint
	opRun                   // run an alternative, then expand its node
	opRestore               // close the checkpoint opened by the matching opSave
)

// frame is one pending action of the work list.
type frame struct {
	op  opKind
	alt Alternative // set for opRun only
}

// DFSearch is a depth-first search driver.
//
// It holds no per-run state besides its listeners, so Solve may be called
// repeatedly. A DFSearch, its manager and the cells behind the branching
// are driven by one goroutine at a time.
type DFSearch struct {
	sm         state.Manager
	branching  Branching
	onSolution []func()
	onFail     []func()
}

// NewDFSearch returns a driver that explores the tree defined by b, rolling
// back through sm.
func NewDFSearch(sm state.Manager, b Branching) *DFSearch {
	return &DFSearch{sm: sm, branching: b}
}

// StateManager returns the manager the driver rolls back through.
func (s *DFSearch) StateManager() state.Manager { return s.sm }

// OnSolution registers fn to run at every solution leaf. Listeners
// accumulate and fire in registration order.
func (s *DFSearch) OnSolution(fn func()) {
	if fn != nil {
		s.onSolution = append(s.onSolution, fn)
	}
}

// OnFail registers fn to run at every caught ErrInconsistency. Listeners
// accumulate and fire in registration order.
func (s *DFSearch) OnFail(fn func()) {
	if fn != nil {
		s.onFail = append(s.onFail, fn)
	}
}

// Solve explores the tree until it is exhausted or limit returns true.
// A nil limit never fires. The manager is back at its entry level when
// Solve returns.
//
// Errors other than ErrInconsistency abort the run and are returned
// wrapped, along with the statistics gathered so far.
func (s *DFSearch) Solve(limit Limit) (Statistics, error) {
	var stats Statistics
	err := s.sm.WithNewState(func() error {
		return s.run(&stats, limit)
	})

	return stats, err
}

// SolveSubjectTo runs setup inside a fresh checkpoint, then searches, then
// rolls back to the level seen on entry whatever the outcome. Calls never
// leak into one another, which is what large-neighborhood search relies on.
//
// A setup returning ErrInconsistency counts as one failure: fail listeners
// fire, the (empty) tree is reported as completed and the error is nil.
// Any other setup error is returned wrapped.
func (s *DFSearch) SolveSubjectTo(limit Limit, setup func() error) (Statistics, error) {
	var stats Statistics
	err := s.sm.WithNewState(func() error {
		if setup != nil {
			if err := setup(); err != nil {
				if !errors.Is(err, ErrInconsistency) {
					return fmt.Errorf("search: setup: %w", err)
				}
				stats.Failures++
				notify(s.onFail)
				stats.Completed = true

				return nil
			}
		}

		return s.run(&stats, limit)
	})

	return stats, err
}

// run is the main loop. ErrInconsistency is caught here and nowhere else.
// Pending restore frames left behind by an early return are closed by the
// caller's WithNewState.
func (s *DFSearch) run(stats *Statistics, limit Limit) error {
	stack := make([]frame, 0, 64)
	stack = s.expand(stack, stats)

	var f frame
	for len(stack) > 0 {
		top := len(stack) - 1
		f = stack[top]
		stack[top] = frame{} // release the closure
		stack = stack[:top]

		switch f.op {
		case opSave:
			s.sm.Save()
		case opRestore:
			s.sm.Restore()
		case opRun:
			if limit != nil && limit(*stats) {
				return nil
			}
			stats.Nodes++
			if err := f.alt(); err != nil {
				if !errors.Is(err, ErrInconsistency) {
					return fmt.Errorf("search: alternative: %w", err)
				}
				stats.Failures++
				notify(s.onFail)

				continue
			}
			stack = s.expand(stack, stats)
		}
	}
	stats.Completed = true

	return nil
}

// expand asks the branching for the alternatives of the current node and
// pushes their frames, or records a solution when there are none.
func (s *DFSearch) expand(stack []frame, stats *Statistics) []frame {
	alts := s.branching()
	if len(alts) == 0 {
		stats.Solutions++
		notify(s.onSolution)

		return stack
	}
	for i := len(alts) - 1; i >= 0; i-- {
		stack = append(stack,
			frame{op: opRestore},
			frame{op: opRun, alt: alts[i]},
			frame{op: opSave},
		)
	}

	return stack
}

func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
