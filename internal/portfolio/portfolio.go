// Package portfolio aggregates a user-selected subset of recommendations into
// a custom portfolio summary.
package portfolio

import (
	"sort"

	"github.com/mozzadell/cc-optimizer/internal/models"

	"github.com/shopspring/decimal"
)

// Selection is an immutable set of card identifiers.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection builds a selection from ids; duplicates collapse.
func NewSelection(ids ...string) Selection {
	s := Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s Selection) clone() Selection {
	out := Selection{ids: make(map[string]struct{}, len(s.ids)+1)}
	for id := range s.ids {
		out.ids[id] = struct{}{}
	}
	return out
}

// Toggle adds cardID when absent and removes it when present.
func (s Selection) Toggle(cardID string) Selection {
	out := s.clone()
	if _, ok := out.ids[cardID]; ok {
		delete(out.ids, cardID)
	} else {
		out.ids[cardID] = struct{}{}
	}
	return out
}

// Contains reports membership.
func (s Selection) Contains(cardID string) bool {
	_, ok := s.ids[cardID]
	return ok
}

// Len is the number of selected ids.
func (s Selection) Len() int {
	return len(s.ids)
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns the selected ids sorted.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Equal compares two selections as sets.
func (s Selection) Equal(other Selection) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if _, ok := other.ids[id]; !ok {
			return false
		}
	}
	return true
}

// Prune drops ids that are not in recs.
func (s Selection) Prune(recs []models.CardRecommendation) Selection {
	known := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		known[r.CardID] = struct{}{}
	}
	out := Selection{ids: make(map[string]struct{}, len(s.ids))}
	for id := range s.ids {
		if _, ok := known[id]; ok {
			out.ids[id] = struct{}{}
		}
	}
	return out
}

// Summarize totals the selected recommendations. ok is false when the
// selection or the recommendation list is empty. Selected ids missing from
// recs contribute nothing.
func Summarize(recs []models.CardRecommendation, selection Selection) (summary models.PortfolioSummary, ok bool) {
	if selection.IsEmpty() || len(recs) == 0 {
		return models.PortfolioSummary{}, false
	}

	rewards, fees, credits := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range recs {
		if !selection.Contains(r.CardID) {
			continue
		}
		rewards = rewards.Add(decimal.NewFromFloat(r.AnnualRewards))
		fees = fees.Add(decimal.NewFromFloat(r.AnnualFee))
		credits = credits.Add(decimal.NewFromFloat(r.Credits))
	}
	net := rewards.Add(credits).Sub(fees)

	return models.PortfolioSummary{
		TotalRewards: rewards.InexactFloat64(),
		TotalFees:    fees.InexactFloat64(),
		TotalCredits: credits.InexactFloat64(),
		NetValue:     net.InexactFloat64(),
	}, true
}

// Selected returns the recommendations in recs that are in the selection,
// keeping their order.
func Selected(recs []models.CardRecommendation, selection Selection) []models.CardRecommendation {
	var out []models.CardRecommendation
	for _, r := range recs {
		if selection.Contains(r.CardID) {
			out = append(out, r)
		}
	}
	return out
}
