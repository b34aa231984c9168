package metrics

import (
	"time"

	"github.com/katalvlaran/cpkernel/search"
)

// Recorder defines the observability hooks of the search layer.
type Recorder interface {
	IncSolutions()
	IncFailures()
	ObserveSearch(strategy string, stats search.Statistics, d time.Duration)
	ObserveIteration(improved bool)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncSolutions() {}
func (NoopRecorder) IncFailures() {}
func (NoopRecorder) ObserveSearch(string, search.Statistics, time.Duration) {}
func (NoopRecorder) ObserveIteration(bool) {}

// Attach counts every solution and failure of s on r.
func Attach(s *search.DFSearch, r Recorder) {
	if s == nil || r == nil {
		return
	}
	s.OnSolution(r.IncSolutions)
	s.OnFail(r.IncFailures)
}
