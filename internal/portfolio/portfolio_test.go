package portfolio

import (
	"testing"

	"github.com/mozzadell/cc-optimizer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecs() []models.CardRecommendation {
	return []models.CardRecommendation{
		{CardID: "gold", CardName: "Gold Card", AnnualRewards: 200, AnnualFee: 95, Credits: 50},
		{CardID: "cash", CardName: "Cash Card", AnnualRewards: 150, AnnualFee: 0, Credits: 0},
		{CardID: "travel", CardName: "Travel Card", AnnualRewards: 0.1, AnnualFee: 0.2, Credits: 0.3},
	}
}

func TestSelection_Toggle(t *testing.T) {
	empty := NewSelection()
	one := empty.Toggle("gold")

	assert.True(t, one.Contains("gold"))
	assert.False(t, empty.Contains("gold"), "toggle must not mutate the receiver")
	assert.True(t, one.Toggle("gold").Equal(empty))
}

func TestSelection_ToggleTwiceIsIdentity(t *testing.T) {
	start := NewSelection("a", "b")
	for _, id := range []string{"a", "c", ""} {
		assert.True(t, start.Toggle(id).Toggle(id).Equal(start), "id %q", id)
	}
}

func TestNewSelection_CollapsesDuplicates(t *testing.T) {
	s := NewSelection("x", "x", "y")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"x", "y"}, s.IDs())
}

func TestSummarize_EmptyInputs(t *testing.T) {
	summary, ok := Summarize(nil, NewSelection("gold"))
	assert.False(t, ok)
	assert.Equal(t, models.PortfolioSummary{}, summary)

	_, ok = Summarize(sampleRecs(), NewSelection())
	assert.False(t, ok)
}

func TestSummarize_NoMatchesIsZero(t *testing.T) {
	summary, ok := Summarize(sampleRecs(), NewSelection("ghost"))
	assert.True(t, ok)
	assert.Equal(t, models.PortfolioSummary{}, summary)
}

func TestSummarize_TwoCards(t *testing.T) {
	summary, ok := Summarize(sampleRecs(), NewSelection("gold", "cash"))
	require.True(t, ok)
	assert.Equal(t, models.PortfolioSummary{
		TotalRewards: 350,
		TotalFees:    95,
		TotalCredits: 50,
		NetValue:     305,
	}, summary)
}

func TestSummarize_UnknownIDsContributeNothing(t *testing.T) {
	withGhost, ok := Summarize(sampleRecs(), NewSelection("gold", "ghost"))
	require.True(t, ok)
	alone, _ := Summarize(sampleRecs(), NewSelection("gold"))
	assert.Equal(t, alone, withGhost)
}

func TestSummarize_OrderIndependent(t *testing.T) {
	recs := sampleRecs()
	reversed := []models.CardRecommendation{recs[2], recs[1], recs[0]}
	sel := NewSelection("travel", "gold", "cash")

	a, _ := Summarize(recs, sel)
	b, _ := Summarize(reversed, NewSelection("cash", "gold", "travel"))
	assert.Equal(t, a, b)
}

func TestSummarize_DecimalTotals(t *testing.T) {
	summary, ok := Summarize(sampleRecs(), NewSelection("travel"))
	require.True(t, ok)
	assert.Equal(t, 0.1, summary.TotalRewards)
	assert.Equal(t, 0.2, summary.TotalFees)
	assert.Equal(t, 0.3, summary.TotalCredits)
	assert.Equal(t, 0.2, summary.NetValue)
}

func TestSelection_Prune(t *testing.T) {
	pruned := NewSelection("gold", "stale").Prune(sampleRecs())
	assert.Equal(t, []string{"gold"}, pruned.IDs())
}

func TestSelected_KeepsRecommendationOrder(t *testing.T) {
	got := Selected(sampleRecs(), NewSelection("travel", "gold"))
	require.Len(t, got, 2)
	assert.Equal(t, "gold", got[0].CardID)
	assert.Equal(t, "travel", got[1].CardID)
}
