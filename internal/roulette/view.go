package roulette

import (
	"fmt"

	"github.com/vmunix/roulette/internal/recommend"
)

// View is everything a renderer needs for one frame.
type View struct {
	Phase          Phase
	Filter         Filter
	ScoreLabel     string // "Any" or "More than N"
	SpinLabel      string // "Spin!" or "Spin again!"
	Recommendation *recommend.Recommendation
}

// Render derives the view for s. It has no side effects.
func Render(s State) View {
	v := View{
		Phase:      s.Phase(),
		Filter:     s.filter,
		ScoreLabel: ScoreLabel(s.filter.MinimumScore),
		SpinLabel:  "Spin!",
	}
	if v.Phase == PhaseResult {
		v.Recommendation = s.rec
		v.SpinLabel = "Spin again!"
	}
	return v
}

// ScoreLabel describes a minimum score.
func ScoreLabel(n int) string {
	if n == 0 {
		return "Any"
	}
	return fmt.Sprintf("More than %d", n)
}
