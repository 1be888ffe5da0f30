// Package roulette holds the recommendation screen's state and its transitions.
//
// State is a value type. Every transition returns a new State and never mutates
// the receiver, so callers serialize updates by assigning the result.
package roulette

import (
	"github.com/vmunix/roulette/internal/recommend"
)

// Phase is what the screen is currently showing.
type Phase int

const (
	PhaseForm Phase = iota
	PhaseLoading
	PhaseResult
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	default:
		return "form"
	}
}

// Filter is the user's current selection.
type Filter struct {
	Category     recommend.Category
	MinimumScore int
}

// DefaultFilter is the selection on first display and after Reset.
func DefaultFilter() Filter {
	return Filter{Category: recommend.TVShows, MinimumScore: 0}
}

// Query converts the filter into a client query.
func (f Filter) Query() recommend.Query {
	return recommend.Query{Category: f.Category, MinimumScore: f.MinimumScore}
}

// FailurePolicy decides what a failed fetch does to the error flag.
type FailurePolicy int

const (
	// FailureShowsForm clears the error flag, so a failed spin lands back on the form.
	FailureShowsForm FailurePolicy = iota
	// FailureShowsError sets the error flag, so a failed spin shows the error view.
	FailureShowsError
)

// State is the screen state. Phase is derived from loading, failed and rec.
type State struct {
	filter  Filter
	loading bool
	failed  bool
	rec     *recommend.Recommendation
	policy  FailurePolicy
}

// New returns the initial state: form phase with the default filter.
func New(policy FailurePolicy) State {
	return State{filter: DefaultFilter(), policy: policy}
}

// Filter returns the current selection.
func (s State) Filter() Filter { return s.filter }

// Loading reports whether a fetch is outstanding.
func (s State) Loading() bool { return s.loading }

// Failed reports the error flag.
func (s State) Failed() bool { return s.failed }

// Recommendation returns the displayed recommendation, or nil.
func (s State) Recommendation() *recommend.Recommendation { return s.rec }

// Phase derives the display phase. A present recommendation wins over every flag.
func (s State) Phase() Phase {
	switch {
	case s.rec != nil:
		return PhaseResult
	case s.loading:
		return PhaseLoading
	case s.failed:
		return PhaseError
	default:
		return PhaseForm
	}
}

// SetCategory selects a tab. It never changes the phase or starts a fetch.
func (s State) SetCategory(c recommend.Category) State {
	if !c.Valid() {
		return s
	}
	s.filter.Category = c
	return s
}

// SetMinimumScore moves the rating slider. n is clamped to 0..recommend.MaxScore.
func (s State) SetMinimumScore(n int) State {
	s.filter.MinimumScore = min(max(n, 0), recommend.MaxScore)
	return s
}

// Submit enters the loading phase. The caller runs the fetch for Filter().Query()
// and feeds the outcome to Settle. Submitting again before a result arrives is allowed;
// whichever result settles last wins.
func (s State) Submit() State {
	s.loading = true
	s.rec = nil
	s.failed = false
	return s
}

// Settle applies a fetch outcome.
func (s State) Settle(r Result) State {
	s.loading = false
	if r.Err == nil && r.Recommendation != nil {
		s.rec = r.Recommendation
		s.failed = false
		return s
	}
	s.rec = nil
	s.failed = s.policy == FailureShowsError
	return s
}

// Reset clears the result and flags and restores the default filter.
func (s State) Reset() State {
	return New(s.policy)
}
