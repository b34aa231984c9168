// Package cpkernel is a reversible-state and backtracking kernel for
// constraint solvers: values that roll back on demand, and a depth-first
// driver that explores a search tree on top of them.
//
// What is in the box?
//
//   - state/   the Manager contract with Trail (undo log) and Copy
//     (snapshot) strategies; reversible Int, Bool and Map cells
//   - domain/  a reversible sparse-set integer domain
//   - search/  DFSearch with an explicit work stack, search limits,
//     Sequencer and limited-discrepancy combinators
//   - lns/     parallel large neighborhood search over independent workers
//   - metrics/ Prometheus recorder for search counters
//
// Quick example:
//
//	sm := state.NewTrail()
//	x := sm.MakeInt(0)
//	sm.Save()
//	x.SetValue(42)
//	sm.Restore() // x.Value() == 0
//
// A Manager and everything bound to it belong to one goroutine. Run
// independent searches on independent managers.
//
//	go install github.com/katalvlaran/cpkernel/cmd/cpkernel@latest
package cpkernel
