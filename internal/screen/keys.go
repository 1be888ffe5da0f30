package screen

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/vmunix/roulette/internal/roulette"
)

type keyMap struct {
	PrevTab key.Binding
	NextTab key.Binding
	TV      key.Binding
	Movies  key.Binding
	ScoreUp key.Binding
	ScoreDn key.Binding
	Spin    key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevTab: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/→", "type")),
		NextTab: key.NewBinding(key.WithKeys("right", "l", "tab")),
		TV:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tv shows")),
		Movies:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "movies")),
		ScoreUp: key.NewBinding(key.WithKeys("up", "k", "+"), key.WithHelp("↑/↓", "score")),
		ScoreDn: key.NewBinding(key.WithKeys("down", "j", "-")),
		Spin:    key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "spin")),
		Reset:   key.NewBinding(key.WithKeys("r", "esc"), key.WithHelp("r", "reset")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// forPhase enables only the bindings that act in phase.
func (k keyMap) forPhase(p roulette.Phase) keyMap {
	form := p == roulette.PhaseForm
	for _, b := range []*key.Binding{&k.PrevTab, &k.NextTab, &k.TV, &k.Movies, &k.ScoreUp, &k.ScoreDn} {
		b.SetEnabled(form)
	}
	k.Spin.SetEnabled(p != roulette.PhaseLoading)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.ScoreUp, k.Spin, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTab, k.TV, k.Movies},
		{k.ScoreUp, k.Spin},
		{k.Reset, k.Quit},
	}
}
