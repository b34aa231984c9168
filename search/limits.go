package search

import (
	"context"
	"time"
)

// NodeLimit stops once n alternatives have been executed.
func NodeLimit(n int) Limit {
	return func(s Statistics) bool { return s.Nodes >= n }
}

// FailureLimit stops once n failures have been counted.
func FailureLimit(n int) Limit {
	return func(s Statistics) bool { return s.Failures >= n }
}

// SolutionLimit stops once n solutions have been found.
func SolutionLimit(n int) Limit {
	return func(s Statistics) bool { return s.Solutions >= n }
}

// TimeLimit stops once d has elapsed since TimeLimit was called.
func TimeLimit(d time.Duration) Limit {
	deadline := time.Now().Add(d)

	return func(Statistics) bool { return !time.Now().Before(deadline) }
}

// ContextLimit stops once ctx is done. The check is cooperative: a running
// alternative is never interrupted.
func ContextLimit(ctx context.Context) Limit {
	return func(Statistics) bool { return ctx.Err() != nil }
}

// AnyLimit stops as soon as one of limits does. Nil entries are ignored.
func AnyLimit(limits ...Limit) Limit {
	return func(s Statistics) bool {
		for _, l := range limits {
			if l != nil && l(s) {
				return true
			}
		}

		return false
	}
}
