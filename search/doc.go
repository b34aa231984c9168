// Package search implements a depth-first search driver over an implicit
// tree of alternatives, using a state.Manager to undo work between
// siblings, plus branching combinators.
//
// What:
//
//   - Branching: a function returning the alternatives of the current node;
//     an empty slice marks a solution leaf.
//   - DFSearch: explores the tree depth-first with an explicit work list,
//     so tree depth is never bounded by the goroutine stack.
//   - Solve / SolveSubjectTo: run until exhaustion or until a Limit fires;
//     SolveSubjectTo applies a setup closure first and always rolls it back.
//   - Sequencer, LimitedDiscrepancy: branching combinators.
//
// Failure signal:
//
// An Alternative (or a SolveSubjectTo setup) returns ErrInconsistency,
// possibly wrapped, to declare its branch dead. The driver catches it at a
// single point in the main loop, counts a failure, notifies fail listeners
// and moves on to the next sibling. Any other error ends the run.
//
// Expansion:
//
// For a node with alternatives a1..ak the driver pushes, in reverse order,
// the frames save / run(ai) / restore, so popping replays
//
//	save → a1 → (subtree of a1) → restore → save → a2 → ... → restore
//
// The restore between siblings happens whether ai succeeded or failed.
//
// Complexity:
//
//   - Memory: O(depth · branching factor) frames on the work list.
//   - Time: O(nodes) driver overhead, plus the cost of alternatives and of
//     the manager's Save/Restore.
package search
