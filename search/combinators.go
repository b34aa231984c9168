package search

// Sequencer chains branchings into one ordered fallback: the result is the
// alternatives of the first branching that returns any, or none when all
// of them report a solution.
func Sequencer(branchings ...Branching) Branching {
	return func() []Alternative {
		for _, b := range branchings {
			if alts := b(); len(alts) > 0 {
				return alts
			}
		}

		return nil
	}
}

// DiscrepancyLimiter wraps a branching so that no explored path takes more
// than maxDiscrepancy non-first choices.
//
// The current discrepancy is a plain counter, not a reversible cell: every
// offered alternative sets it explicitly before delegating, so it is right
// whenever the wrapped branching is called.
type DiscrepancyLimiter struct {
	branching      Branching
	maxDiscrepancy int
	current        int
}

// NewDiscrepancyLimiter wraps b with a discrepancy budget of maxDiscrepancy.
func NewDiscrepancyLimiter(b Branching, maxDiscrepancy int) *DiscrepancyLimiter {
	return &DiscrepancyLimiter{branching: b, maxDiscrepancy: maxDiscrepancy}
}

// Current returns the discrepancy of the path being explored.
func (l *DiscrepancyLimiter) Current() int { return l.current }

// Reset clears the counter; call it between independent searches.
func (l *DiscrepancyLimiter) Reset() { l.current = 0 }

// Branch offers the first maxDiscrepancy-d+1 alternatives of the wrapped
// branching, where d is the current discrepancy. Alternative i runs at
// discrepancy d+i.
func (l *DiscrepancyLimiter) Branch() []Alternative {
	alts := l.branching()
	if len(alts) == 0 {
		return alts
	}
	k := min(l.maxDiscrepancy-l.current+1, len(alts))
	if k <= 0 {
		// Over budget but not a leaf: must not be mistaken for a solution.
		return Branch(Fail)
	}
	d := l.current
	offered := make([]Alternative, k)
	for i := 0; i < k; i++ {
		alt, di := alts[i], d+i
		offered[i] = func() error {
			l.current = di
			return alt()
		}
	}

	return offered
}

// LimitedDiscrepancy is the functional form of NewDiscrepancyLimiter.
func LimitedDiscrepancy(b Branching, maxDiscrepancy int) Branching {
	return NewDiscrepancyLimiter(b, maxDiscrepancy).Branch
}
