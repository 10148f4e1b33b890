// Package report turns a service response and a portfolio selection into
// something a person reads: ranked text, or JSON, YAML and CSV documents.
package report

import (
	"sort"

	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/portfolio"
)

// BreakdownItem is one category's share of a card's rewards.
type BreakdownItem struct {
	Category string  `json:"category" yaml:"category" csv:"category"`
	Label    string  `json:"label" yaml:"label" csv:"label"`
	Rate     float64 `json:"rate,omitempty" yaml:"rate,omitempty" csv:"rate"`
	Amount   float64 `json:"amount" yaml:"amount" csv:"amount"`
}

// RankedCard is a recommendation with its display position.
type RankedCard struct {
	Rank      int                       `json:"rank" yaml:"rank"`
	TopPick   bool                      `json:"top_pick" yaml:"top_pick"`
	Selected  bool                      `json:"selected" yaml:"selected"`
	Card      models.CardRecommendation `json:"card" yaml:"card"`
	Breakdown []BreakdownItem           `json:"breakdown" yaml:"breakdown"`
}

// View is everything a renderer needs.
type View struct {
	TotalMonthlySpending float64                  `json:"total_monthly_spending" yaml:"total_monthly_spending"`
	TotalAnnualSpending  float64                  `json:"total_annual_spending" yaml:"total_annual_spending"`
	Recommendations      []RankedCard             `json:"recommendations" yaml:"recommendations"`
	Strategies           []models.Strategy        `json:"multi_card_strategies,omitempty" yaml:"multi_card_strategies,omitempty"`
	Portfolio            *models.PortfolioSummary `json:"portfolio,omitempty" yaml:"portfolio,omitempty"`
	PortfolioCards       []string                 `json:"portfolio_cards,omitempty" yaml:"portfolio_cards,omitempty"`
}

// Rank orders recommendations by net rewards, highest first, keeping the
// service's order between equal values, and keeps at most topN (all when
// topN <= 0). recs is not modified.
func Rank(recs []models.CardRecommendation, topN int) []models.CardRecommendation {
	ranked := make([]models.CardRecommendation, len(recs))
	copy(ranked, recs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NetRewards > ranked[j].NetRewards
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Breakdown resolves a card's per-category rewards. breakdown_with_rates is
// used when the service sent it; breakdown otherwise. Non-positive amounts
// are dropped and the rest sorted by amount, largest first.
func Breakdown(card models.CardRecommendation) []BreakdownItem {
	var items []BreakdownItem

	if len(card.BreakdownWithRates) > 0 {
		keys := make([]string, 0, len(card.BreakdownWithRates))
		for k := range card.BreakdownWithRates {
			keys = append(keys, k)
		}
		models.SortCategoryKeys(keys)
		for _, k := range keys {
			ra := card.BreakdownWithRates[k]
			if ra.Amount > 0 {
				items = append(items, BreakdownItem{Category: k, Label: CategoryLabel(k), Rate: ra.Rate, Amount: ra.Amount})
			}
		}
	} else {
		keys := make([]string, 0, len(card.Breakdown))
		for k := range card.Breakdown {
			keys = append(keys, k)
		}
		models.SortCategoryKeys(keys)
		for _, k := range keys {
			if amount := card.Breakdown[k]; amount > 0 {
				items = append(items, BreakdownItem{Category: k, Label: CategoryLabel(k), Amount: amount})
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount > items[j].Amount
	})
	return items
}

// BuildView ranks the response and, when something is selected, summarizes
// the custom portfolio over the full recommendation list.
func BuildView(resp *models.RecommendationResponse, selection portfolio.Selection, topN int) View {
	if resp == nil {
		return View{}
	}

	view := View{
		TotalMonthlySpending: resp.TotalMonthlySpending,
		TotalAnnualSpending:  resp.TotalAnnualSpending,
		Strategies:           resp.MultiCardStrategies,
	}

	for i, card := range Rank(resp.Recommendations, topN) {
		view.Recommendations = append(view.Recommendations, RankedCard{
			Rank:      i + 1,
			TopPick:   i == 0,
			Selected:  selection.Contains(card.CardID),
			Card:      card,
			Breakdown: Breakdown(card),
		})
	}

	if summary, ok := portfolio.Summarize(resp.Recommendations, selection); ok {
		view.Portfolio = &summary
		for _, card := range portfolio.Selected(resp.Recommendations, selection) {
			view.PortfolioCards = append(view.PortfolioCards, card.CardName)
		}
	}

	return view
}
