// Package screen is the interactive recommendation screen.
//
// Model follows the bubbletea architecture: Update applies one message at a
// time to a roulette.State, and the only asynchronous work is the fetch command
// started by a spin, whose outcome comes back as a fetchedMsg.
package screen

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/vmunix/roulette/internal/recommend"
	"github.com/vmunix/roulette/internal/roulette"
)

const defaultTitle = "NetFlix Roulette"

// Options configures a Model.
type Options struct {
	Title      string // header text; defaults to "NetFlix Roulette"
	ShowErrors bool   // show the error view on a failed spin instead of the form
	Logger     *slog.Logger
}

// Model is the bubbletea model for the screen.
type Model struct {
	ctx         context.Context // parent of every fetch; tea.Cmd closures run outside Update
	recommender Recommender
	state       roulette.State
	title       string

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	width   int

	logger *slog.Logger
}

// fetchedMsg carries the outcome of one spin back to Update.
type fetchedMsg struct {
	requestID string
	result    roulette.Result
	duration  time.Duration
}

// New creates the screen in its initial form phase.
// ctx bounds every fetch the screen starts.
func New(ctx context.Context, r Recommender, opts Options) Model {
	policy := roulette.FailureShowsForm
	if opts.ShowErrors {
		policy = roulette.FailureShowsError
	}
	title := opts.Title
	if title == "" {
		title = defaultTitle
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return Model{
		ctx:         ctx,
		recommender: r,
		state:       roulette.New(policy),
		title:       title,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(accent)),
		),
		help:   help.New(),
		keys:   defaultKeyMap(),
		logger: logger,
	}
}

// State returns the current screen state.
func (m Model) State() roulette.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fetchedMsg:
		m.state = m.state.Settle(msg.result)
		if msg.result.Err != nil {
			m.logger.Warn("spin failed",
				"request_id", msg.requestID,
				"kind", msg.result.Kind,
				"error", msg.result.Err,
				"phase", m.state.Phase(),
				"duration_ms", msg.duration.Milliseconds())
		} else {
			m.logger.Info("spin settled",
				"request_id", msg.requestID,
				"id", msg.result.Recommendation.ID,
				"title", msg.result.Recommendation.Title,
				"duration_ms", msg.duration.Milliseconds())
		}
		return m, nil

	case spinner.TickMsg:
		if m.state.Phase() != roulette.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.forPhase(m.state.Phase())

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Reset):
		m.state = m.state.Reset()
		m.logger.Debug("filters reset")
		return m, nil
	case key.Matches(msg, keys.Spin):
		return m.submit()
	case key.Matches(msg, keys.PrevTab), key.Matches(msg, keys.NextTab):
		m.state = m.state.SetCategory(m.state.Filter().Category.Other())
	case key.Matches(msg, keys.TV):
		m.state = m.state.SetCategory(recommend.TVShows)
	case key.Matches(msg, keys.Movies):
		m.state = m.state.SetCategory(recommend.Movies)
	case key.Matches(msg, keys.ScoreUp):
		m.state = m.state.SetMinimumScore(ScoreSlider(m.state.Filter().MinimumScore).Inc().Value)
	case key.Matches(msg, keys.ScoreDn):
		m.state = m.state.SetMinimumScore(ScoreSlider(m.state.Filter().MinimumScore).Dec().Value)
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.state = m.state.Submit()

	id := uuid.NewString()
	q := m.state.Filter().Query()
	m.logger.Info("spin started", "request_id", id, "category", q.Category, "min_score", q.MinimumScore)

	return m, tea.Batch(m.fetchCmd(id, q), m.spinner.Tick)
}

func (m Model) fetchCmd(id string, q recommend.Query) tea.Cmd {
	ctx := recommend.WithRequestID(m.ctx, id)
	r := m.recommender
	return func() tea.Msg {
		start := time.Now()
		rec, err := r.Fetch(ctx, q)
		return fetchedMsg{
			requestID: id,
			result:    roulette.ResultOf(rec, err),
			duration:  time.Since(start),
		}
	}
}

func (m Model) View() string {
	v := roulette.Render(m.state)

	var body string
	switch v.Phase {
	case roulette.PhaseResult:
		body = lipgloss.JoinVertical(lipgloss.Left,
			RecommendationView(v.Recommendation, m.width),
			Button(v.SpinLabel),
			"",
			Button("Reset filters!"),
		)
	case roulette.PhaseLoading:
		body = lipgloss.NewStyle().Padding(1, 1).Render(m.spinner.View() + " Spinning the wheel...")
	case roulette.PhaseError:
		body = errorStyle.Render("Ops!")
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, Header(m.title), FilterControls(v))
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(m.keys.forPhase(v.Phase)))
}
