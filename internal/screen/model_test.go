package screen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/roulette/internal/recommend"
	"github.com/vmunix/roulette/internal/roulette"
	"github.com/vmunix/roulette/internal/screen/mocks"
	"go.uber.org/mock/gomock"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestModel(t *testing.T, r Recommender, showErrors bool) Model {
	t.Helper()
	return New(context.Background(), r, Options{ShowErrors: showErrors, Logger: testLogger()})
}

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update must return a screen.Model")
	return nm, cmd
}

func pressAll(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, press(k))
	}
	return m
}

func repeat(k string, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = k
	}
	return keys
}

// runCmd executes cmd, flattening batches, and returns the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// settle runs the fetch started by cmd and feeds its outcome back to the model.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		if fm, ok := msg.(fetchedMsg); ok {
			m, _ = update(t, m, fm)
			return m
		}
	}
	t.Fatal("command did not produce a fetch result")
	return m
}

func TestModel_InitialForm(t *testing.T) {
	m := newTestModel(t, nil, false)

	assert.Nil(t, m.Init())
	assert.Equal(t, roulette.PhaseForm, m.State().Phase())

	view := m.View()
	assert.Contains(t, view, "NetFlix Roulette")
	assert.Contains(t, view, "● TV Shows")
	assert.Contains(t, view, "○ Movies")
	assert.Contains(t, view, "IMDB Score:")
	assert.Contains(t, view, "Any")
	assert.Contains(t, view, "Spin!")
	assert.NotContains(t, view, "Spin again!")
}

func TestModel_CustomTitle(t *testing.T) {
	m := New(context.Background(), nil, Options{Title: "Movie Night", Logger: testLogger()})
	assert.Contains(t, m.View(), "Movie Night")
}

func TestModel_CategoryKeys(t *testing.T) {
	m := newTestModel(t, nil, false)

	m = pressAll(t, m, "right")
	assert.Equal(t, recommend.Movies, m.State().Filter().Category)
	assert.Contains(t, m.View(), "● Movies")

	m = pressAll(t, m, "left")
	assert.Equal(t, recommend.TVShows, m.State().Filter().Category)

	m = pressAll(t, m, "m")
	assert.Equal(t, recommend.Movies, m.State().Filter().Category)
	m = pressAll(t, m, "m")
	assert.Equal(t, recommend.Movies, m.State().Filter().Category, "selecting the active tab keeps it")

	m = pressAll(t, m, "t")
	assert.Equal(t, recommend.TVShows, m.State().Filter().Category)
}

func TestModel_ScoreKeys(t *testing.T) {
	m := newTestModel(t, nil, false)

	m = pressAll(t, m, "up", "up", "+", "k", "up")
	assert.Equal(t, 5, m.State().Filter().MinimumScore)
	assert.Contains(t, m.View(), "More than 5")

	m = pressAll(t, m, "down", "-")
	assert.Equal(t, 3, m.State().Filter().MinimumScore)

	m = pressAll(t, m, repeat("up", 12)...)
	assert.Equal(t, 9, m.State().Filter().MinimumScore, "slider stops at 9")

	m = pressAll(t, m, repeat("down", 12)...)
	assert.Equal(t, 0, m.State().Filter().MinimumScore, "slider stops at 0")
	assert.Contains(t, m.View(), "Any")
}

// Movies, score 5, the service returns Inception.
func TestModel_SpinShowsRecommendation(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := &recommend.Recommendation{ID: "42", Title: "Inception", Type: "movie", Score: 8, Year: 2010}

	r := mocks.NewMockRecommender(ctrl)
	r.EXPECT().
		Fetch(gomock.Any(), recommend.Query{Category: recommend.Movies, MinimumScore: 5}).
		DoAndReturn(func(ctx context.Context, _ recommend.Query) (*recommend.Recommendation, error) {
			assert.NotEmpty(t, recommend.RequestIDFromContext(ctx), "fetch carries a request id")
			return rec, nil
		})

	m := newTestModel(t, r, false)
	m = pressAll(t, m, "m", "up", "up", "up", "up", "up")

	m, cmd := update(t, m, press("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, roulette.PhaseLoading, m.State().Phase(), "loading before the fetch resolves")
	assert.Nil(t, m.State().Recommendation())
	assert.Contains(t, m.View(), "Spinning the wheel")

	m = settle(t, m, cmd)
	assert.Equal(t, roulette.PhaseResult, m.State().Phase())
	assert.Equal(t, rec, m.State().Recommendation())

	view := m.View()
	assert.Contains(t, view, "Inception")
	assert.Contains(t, view, "Movie · 2010")
	assert.Contains(t, view, "8/10")
	assert.Contains(t, view, "Spin again!")
	assert.Contains(t, view, "Reset filters!")
}

func TestModel_FetchUsesScreenContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ctrl := gomock.NewController(t)
	r := mocks.NewMockRecommender(ctrl)
	r.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(fctx context.Context, _ recommend.Query) (*recommend.Recommendation, error) {
			assert.ErrorIs(t, fctx.Err(), context.Canceled, "fetch inherits the screen's context")
			return nil, &recommend.FetchError{Kind: recommend.ErrTransport, Err: fctx.Err()}
		})

	m := New(ctx, r, Options{Logger: testLogger()})
	m, cmd := update(t, m, press("enter"))
	m = settle(t, m, cmd)
	assert.Equal(t, roulette.PhaseForm, m.State().Phase())
}

// Default filter, network down: back to the form, no error banner.
func TestModel_FailedSpinReturnsToForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRecommender(ctrl)
	r.EXPECT().
		Fetch(gomock.Any(), recommend.Query{Category: recommend.TVShows, MinimumScore: 0}).
		Return(nil, &recommend.FetchError{Kind: recommend.ErrTransport, Err: errors.New("network is unreachable")})

	m := newTestModel(t, r, false)
	m, cmd := update(t, m, press("enter"))
	m = settle(t, m, cmd)

	assert.Equal(t, roulette.PhaseForm, m.State().Phase())
	assert.False(t, m.State().Failed())

	view := m.View()
	assert.Contains(t, view, "Spin!")
	assert.NotContains(t, view, "Ops!")
}

func TestModel_FailedSpinShowsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRecommender(ctrl)
	gomock.InOrder(
		r.EXPECT().Fetch(gomock.Any(), gomock.Any()).
			Return(nil, &recommend.FetchError{Kind: recommend.ErrParse, Err: errors.New("invalid character '<'")}),
		r.EXPECT().Fetch(gomock.Any(), gomock.Any()).
			Return(&recommend.Recommendation{ID: "5", Title: "The Wire"}, nil),
	)

	m := newTestModel(t, r, true)
	m, cmd := update(t, m, press("enter"))
	m = settle(t, m, cmd)

	assert.Equal(t, roulette.PhaseError, m.State().Phase())
	assert.Contains(t, m.View(), "Ops!")

	// Retry from the error view
	m, cmd = update(t, m, press("enter"))
	m = settle(t, m, cmd)
	assert.Contains(t, m.View(), "The Wire")
}

// Result reached, then reset.
func TestModel_ResetAfterResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRecommender(ctrl)
	r.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(&recommend.Recommendation{ID: "9", Title: "Mindhunter"}, nil)

	m := newTestModel(t, r, false)
	m = pressAll(t, m, "m", "up", "up", "up")
	m, cmd := update(t, m, press("enter"))
	m = settle(t, m, cmd)
	require.Equal(t, roulette.PhaseResult, m.State().Phase())

	m = pressAll(t, m, "r")
	assert.Equal(t, roulette.PhaseForm, m.State().Phase())
	assert.Equal(t, roulette.DefaultFilter(), m.State().Filter())

	view := m.View()
	assert.Contains(t, view, "● TV Shows")
	assert.Contains(t, view, "Any")
	assert.NotContains(t, view, "Mindhunter")
}

func TestModel_SpinAgainKeepsFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := recommend.Query{Category: recommend.Movies, MinimumScore: 2}
	r := mocks.NewMockRecommender(ctrl)
	gomock.InOrder(
		r.EXPECT().Fetch(gomock.Any(), q).Return(&recommend.Recommendation{ID: "1", Title: "Heat"}, nil),
		r.EXPECT().Fetch(gomock.Any(), q).Return(&recommend.Recommendation{ID: "2", Title: "Ronin"}, nil),
	)

	m := newTestModel(t, r, false)
	m = pressAll(t, m, "m", "up", "up")
	m, cmd := update(t, m, press("enter"))
	m = settle(t, m, cmd)
	require.Contains(t, m.View(), "Heat")

	m, cmd = update(t, m, press("enter"))
	assert.Equal(t, roulette.PhaseLoading, m.State().Phase(), "spinning again clears the old result")
	m = settle(t, m, cmd)

	view := m.View()
	assert.Contains(t, view, "Ronin")
	assert.NotContains(t, view, "Heat")
}

func TestModel_LoadingIgnoresFormKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRecommender(ctrl)
	r.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(&recommend.Recommendation{ID: "1", Title: "Dark"}, nil).Times(1)

	m := newTestModel(t, r, false)
	m, cmd := update(t, m, press("enter"))

	m, extra := update(t, m, press("enter"))
	assert.Nil(t, extra, "no second spin while loading")
	m = pressAll(t, m, "m", "up")
	assert.Equal(t, roulette.DefaultFilter(), m.State().Filter())

	m = settle(t, m, cmd)
	assert.Equal(t, roulette.PhaseResult, m.State().Phase())
}

func TestModel_ResultIgnoresFilterKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRecommender(ctrl)
	r.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(&recommend.Recommendation{ID: "1", Title: "Dark"}, nil)

	m := newTestModel(t, r, false)
	m, cmd := update(t, m, press("enter"))
	m = settle(t, m, cmd)

	m = pressAll(t, m, "right", "up")
	assert.Equal(t, roulette.DefaultFilter(), m.State().Filter())
}

func TestModel_ResetWhileLoading(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRecommender(ctrl)
	r.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(&recommend.Recommendation{ID: "3", Title: "Late"}, nil)

	m := newTestModel(t, r, false)
	m = pressAll(t, m, "up")
	m, cmd := update(t, m, press("enter"))

	m = pressAll(t, m, "esc")
	assert.Equal(t, roulette.PhaseForm, m.State().Phase())

	// The in-flight fetch is not cancelled and still lands.
	m = settle(t, m, cmd)
	assert.Equal(t, roulette.PhaseResult, m.State().Phase())
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, nil, false)

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := update(t, m, press(k))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_SpinnerTickOnlyWhileLoading(t *testing.T) {
	m := newTestModel(t, nil, false)

	_, cmd := update(t, m, m.spinner.Tick())
	assert.Nil(t, cmd, "idle screen does not keep ticking")
}

func TestModel_WindowSizeWrapsCard(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRecommender(ctrl)
	r.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(&recommend.Recommendation{
		ID:       "1",
		Title:    "Dark",
		Synopsis: strings.Repeat("time travel ", 20),
	}, nil)

	m := newTestModel(t, r, false)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 30})
	m, cmd := update(t, m, press("enter"))
	m = settle(t, m, cmd)

	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, lipglossWidth(line), 40)
	}
}
