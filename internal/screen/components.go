package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vmunix/roulette/internal/recommend"
	"github.com/vmunix/roulette/internal/roulette"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultCardWidth = 60

var (
	accent = lipgloss.Color("#008080")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E50914")).
			Padding(0, 1).
			MarginBottom(1)

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)

	labelStyle  = lipgloss.NewStyle().PaddingTop(1).PaddingLeft(1)
	sliderStyle = lipgloss.NewStyle().Margin(0, 1)
	valueStyle  = lipgloss.NewStyle().PaddingLeft(1).MarginBottom(1)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Padding(0, 2).
			Margin(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")).Padding(1, 1)
)

var titleCaser = cases.Title(language.English)

// Header renders the screen title.
func Header(title string) string {
	return headerStyle.Render(title)
}

// Tab renders one category tab.
func Tab(c recommend.Category, active bool) string {
	if active {
		return activeTabStyle.Render("● " + c.Label())
	}
	return inactiveTabStyle.Render("○ " + c.Label())
}

// TypeSelector renders the category tabs with active highlighted.
func TypeSelector(active recommend.Category) string {
	tabs := make([]string, 0, len(recommend.Categories))
	for _, c := range recommend.Categories {
		tabs = append(tabs, Tab(c, c == active))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Slider is a stepped integer control.
type Slider struct {
	Min, Max, Step, Value int
}

// ScoreSlider returns the minimum-score slider positioned at value.
func ScoreSlider(value int) Slider {
	return Slider{Min: 0, Max: recommend.MaxScore, Step: 1, Value: value}
}

// Inc moves one step up, stopping at Max.
func (s Slider) Inc() Slider {
	s.Value = min(s.Value+s.Step, s.Max)
	return s
}

// Dec moves one step down, stopping at Min.
func (s Slider) Dec() Slider {
	s.Value = max(s.Value-s.Step, s.Min)
	return s
}

// View draws the track with a knob at Value.
func (s Slider) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d ", s.Min)
	for i := s.Min; i <= s.Max; i += s.Step {
		switch {
		case i == s.Value:
			b.WriteString("●")
		case i < s.Value:
			b.WriteString("━━")
		default:
			b.WriteString("──")
		}
	}
	fmt.Fprintf(&b, " %d", s.Max)
	return b.String()
}

// ScorePicker renders the labelled rating slider and its current value.
func ScorePicker(score int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("IMDB Score:"),
		sliderStyle.Render(ScoreSlider(score).View()),
		valueStyle.Render(roulette.ScoreLabel(score)),
	)
}

// FilterControls renders tabs, score picker and the spin button.
func FilterControls(v roulette.View) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		TypeSelector(v.Filter.Category),
		ScorePicker(v.Filter.MinimumScore),
		Button(v.SpinLabel),
	)
}

// Button renders a labelled action.
func Button(label string) string {
	return buttonStyle.Render(label)
}

// RecommendationView renders rec read-only, wrapped to width.
func RecommendationView(rec *recommend.Recommendation, width int) string {
	if width <= 0 {
		width = defaultCardWidth
	}
	inner := max(width-4, 20)

	lines := []string{titleStyle.Render(rec.Title)}

	var meta []string
	if rec.Type != "" {
		meta = append(meta, typeLabel(rec.Type))
	}
	if rec.Year > 0 {
		meta = append(meta, fmt.Sprint(rec.Year))
	}
	if rec.Runtime > 0 {
		meta = append(meta, fmt.Sprintf("%d min", rec.Runtime))
	}
	meta = append(meta, "★ "+rec.ScoreLabel())
	lines = append(lines, metaStyle.Render(strings.Join(meta, " · ")))

	if len(rec.Genres) > 0 {
		lines = append(lines, strings.Join(rec.Genres, ", "))
	}
	if rec.Director != "" {
		lines = append(lines, "Director: "+rec.Director)
	}
	if len(rec.Cast) > 0 {
		lines = append(lines, "Cast: "+strings.Join(rec.Cast, ", "))
	}
	if rec.Synopsis != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(inner).Render(rec.Synopsis))
	}
	if rec.Poster != "" {
		lines = append(lines, "", metaStyle.Render(rec.Poster))
	}

	return cardStyle.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func typeLabel(t string) string {
	switch strings.ToLower(t) {
	case "movie":
		return "Movie"
	case "show", "tv", "series":
		return "TV Show"
	default:
		return titleCaser.String(t)
	}
}
