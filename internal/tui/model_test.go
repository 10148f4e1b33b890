package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/mozzadell/cc-optimizer/internal/clienterror"
	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/report"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubmitter struct {
	calls   int
	payload models.NumericSpending
	resp    *models.RecommendationResponse
	err     error
}

func (s *stubSubmitter) Optimize(_ context.Context, payload models.NumericSpending, _ models.OptimizeOptions) (*models.RecommendationResponse, error) {
	s.calls++
	s.payload = payload
	return s.resp, s.err
}

func twoCards() *models.RecommendationResponse {
	return &models.RecommendationResponse{
		Success:             true,
		TotalAnnualSpending: 6000,
		Recommendations: []models.CardRecommendation{
			{CardID: "b", CardName: "Card B", AnnualRewards: 250, NetRewards: 250},
			{CardID: "a", CardName: "Card A", AnnualRewards: 495, AnnualFee: 95, Credits: 50, NetRewards: 450},
		},
	}
}

func newModel(sub *stubSubmitter) Model {
	return New(Config{
		Submitter: sub,
		Generator: report.NewGenerator(report.Options{}, nil),
	})
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	bksp  = tea.KeyMsg{Type: tea.KeyBackspace}
	reset = tea.KeyMsg{Type: tea.KeyCtrlR}
)

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func resultOf(t *testing.T, cmd tea.Cmd) resultMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if r, ok := msg.(resultMsg); ok {
			return r
		}
	}
	t.Fatal("no result message produced")
	return resultMsg{}
}

func TestModel_TypingIsSanitized(t *testing.T) {
	m, _ := press(t, newModel(&stubSubmitter{}), runes("1a2"), runes("$"), runes("."), runes("5"))
	assert.Equal(t, "12.5", m.Form().Record.Get(models.CategoryGroceries))

	m, _ = press(t, m, bksp)
	assert.Equal(t, "12.", m.Form().Record.Get(models.CategoryGroceries))

	m, _ = press(t, m, down, runes("40"))
	assert.Equal(t, "40", m.Form().Record.Get(models.CategoryDining))

	m, _ = press(t, m, up, up, runes("9"))
	assert.Equal(t, "9", m.Form().Record.Get(models.CategoryOther), "navigation wraps around")
}

func TestModel_SubmitWithoutSpendingShowsValidation(t *testing.T) {
	sub := &stubSubmitter{}
	m, cmd := press(t, newModel(sub), enter)

	assert.Nil(t, cmd)
	assert.Zero(t, sub.calls)
	assert.False(t, m.Form().Loading)
	assert.Contains(t, m.View(), clienterror.MsgNoSpending)
}

func TestModel_SubmitFlow(t *testing.T) {
	sub := &stubSubmitter{resp: twoCards()}
	m, cmd := press(t, newModel(sub), runes("500"), enter)

	require.NotNil(t, cmd)
	assert.True(t, m.Form().Loading)
	assert.Contains(t, m.View(), "Finding your best cards")

	// a second submit while loading is ignored
	_, again := press(t, m, enter)
	assert.Nil(t, again)

	result := resultOf(t, cmd)
	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, 500.0, sub.payload["groceries"])
	assert.Len(t, sub.payload, len(models.Categories))

	next, _ := m.Update(result)
	m = next.(Model)
	assert.False(t, m.Form().Loading)
	require.NotNil(t, m.Form().Response)
	assert.Equal(t, modeResults, m.mode)

	view := m.View()
	assert.Contains(t, view, report.TopPickLabel)
	assert.Regexp(t, `> \[ \] #1 Card A`, view)
}

func TestModel_TransportFailureShowsGenericMessage(t *testing.T) {
	sub := &stubSubmitter{err: &clienterror.TransportError{Cause: errors.New("connection refused")}}
	m, cmd := press(t, newModel(sub), runes("100"), enter)

	next, _ := m.Update(resultOf(t, cmd))
	m = next.(Model)
	assert.Equal(t, modeForm, m.mode)
	assert.Nil(t, m.Form().Response)
	assert.Contains(t, m.View(), clienterror.MsgTransport)
}

func TestModel_SelectionAndSummary(t *testing.T) {
	sub := &stubSubmitter{resp: twoCards()}
	m, cmd := press(t, newModel(sub), runes("500"), enter)
	next, _ := m.Update(resultOf(t, cmd))
	m = next.(Model)

	m, _ = press(t, m, space)
	assert.True(t, m.Selection().Contains("a"))
	assert.Contains(t, m.View(), "Custom Portfolio (1 cards)")

	m, _ = press(t, m, down, space)
	assert.Equal(t, []string{"a", "b"}, m.Selection().IDs())
	assert.Contains(t, m.View(), "$700", "net value 745 + 50 - 95")

	m, _ = press(t, m, space)
	assert.Equal(t, []string{"a"}, m.Selection().IDs())

	// a new submission clears the selection
	m, _ = press(t, m, runes("e"), enter)
	assert.True(t, m.Selection().IsEmpty())
}

func TestModel_ResetClearsEverything(t *testing.T) {
	sub := &stubSubmitter{resp: twoCards()}
	m, cmd := press(t, newModel(sub), runes("500"), enter)
	next, _ := m.Update(resultOf(t, cmd))
	m, _ = press(t, next.(Model), space, reset)

	assert.Equal(t, modeForm, m.mode)
	assert.True(t, m.Selection().IsEmpty())
	assert.Nil(t, m.Form().Response)
	assert.True(t, m.Form().Record.IsEmpty())
}

func TestModel_ResetDropsPendingResult(t *testing.T) {
	sub := &stubSubmitter{resp: &models.RecommendationResponse{
		Success:         true,
		Recommendations: []models.CardRecommendation{{CardID: "old", CardName: "Old Card", NetRewards: 10}},
	}}
	m, cmd := press(t, newModel(sub), runes("500"), enter)
	m, _ = press(t, m, reset)
	assert.False(t, m.Form().Loading)

	// the abandoned request still holds the service, so submit waits for it
	m, again := press(t, m, runes("200"), enter)
	assert.Nil(t, again)
	assert.False(t, m.Form().Loading)

	next, _ := m.Update(resultOf(t, cmd))
	m = next.(Model)
	assert.Equal(t, modeForm, m.mode)
	assert.Nil(t, m.Form().Response)
	assert.Equal(t, "200", m.Form().Record.Get(models.CategoryGroceries))
	assert.NotContains(t, m.View(), "Old Card")

	// once it has returned a fresh submission goes through
	sub.resp = twoCards()
	m, cmd = press(t, m, enter)
	require.NotNil(t, cmd)
	next, _ = m.Update(resultOf(t, cmd))
	m = next.(Model)
	assert.Equal(t, modeResults, m.mode)
	assert.Equal(t, 200.0, sub.payload["groceries"])
}

func TestModel_Quit(t *testing.T) {
	_, cmd := press(t, newModel(&stubSubmitter{}), tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
