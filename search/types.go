package search

import (
	"errors"
	"fmt"
)

// ErrInconsistency is the infeasibility signal: the branch being explored
// cannot lead to a solution. Alternatives and setup closures return it,
// possibly wrapped; the driver matches it with errors.Is.
var ErrInconsistency = errors.New("search: inconsistency")

// Alternative is one resumable choice of a node.
type Alternative func() error

// Branching returns the alternatives of the current node, in the order they
// are explored. An empty result marks a solution.
type Branching func() []Alternative

// Statistics reports the counters of a single Solve call.
type Statistics struct {
	// Nodes counts executed alternatives.
	Nodes int

	// Failures counts alternatives (or setups) that returned ErrInconsistency.
	Failures int

	// Solutions counts solution leaves.
	Solutions int

	// Completed is true when the tree was exhausted before the limit fired.
	Completed bool
}

// String formats the counters on one line.
func (s Statistics) String() string {
	return fmt.Sprintf("nodes=%d failures=%d solutions=%d completed=%t",
		s.Nodes, s.Failures, s.Solutions, s.Completed)
}

// Limit is polled once per expanded node; returning true stops the search.
type Limit func(Statistics) bool

// Fail is an alternative that always fails.
func Fail() error { return ErrInconsistency }

// Branch is sugar for building the alternatives of a node.
func Branch(alts ...Alternative) []Alternative { return alts }
