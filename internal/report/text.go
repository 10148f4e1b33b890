package report

import (
	"fmt"
	"strings"

	"github.com/mozzadell/cc-optimizer/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles used by the text renderer and the TUI.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Card     lipgloss.Style
	TopCard  lipgloss.Style
	Badge    lipgloss.Style
	Label    lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Summary  lipgloss.Style
}

// NewStyles returns the colored palette, or unstyled text when color is off.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Title: plain, Subtitle: plain, Card: plain, TopCard: plain, Badge: plain,
			Label: plain, Positive: plain, Negative: plain, Muted: plain, Error: plain, Summary: plain,
		}
	}
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Subtitle: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		Card:     lipgloss.NewStyle().PaddingLeft(2),
		TopCard:  lipgloss.NewStyle().PaddingLeft(1).BorderStyle(lipgloss.ThickBorder()).BorderLeft(true).BorderForeground(lipgloss.Color("#04B575")),
		Badge:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("#04B575")).Padding(0, 1),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Positive: lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		Negative: lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E06C75")),
		Summary:  lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7D56F4")).Padding(0, 1),
	}
}

// Styles returns the palette the generator renders with.
func (g *Generator) Styles() Styles {
	return g.styles
}

// TopPickLabel marks the first ranked card.
const TopPickLabel = "BEST CHOICE"

// RenderText renders the full human-readable report.
func (g *Generator) RenderText(view View) string {
	var b strings.Builder

	b.WriteString(g.RenderSpending(view))
	b.WriteString("\n")
	b.WriteString(g.RenderRecommendations(view))

	if len(view.Strategies) > 0 {
		b.WriteString("\n")
		b.WriteString(g.RenderStrategies(view.Strategies))
	}
	if view.Portfolio != nil {
		b.WriteString("\n")
		b.WriteString(g.RenderPortfolio(*view.Portfolio, view.PortfolioCards))
	}
	return b.String()
}

// RenderSpending renders the monthly and annual spending totals.
func (g *Generator) RenderSpending(view View) string {
	s := g.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Your Spending Summary") + "\n")
	fmt.Fprintf(&b, "  %s %s\n", s.Label.Render("Monthly Spending:"), FormatCurrency(view.TotalMonthlySpending))
	fmt.Fprintf(&b, "  %s %s\n", s.Label.Render("Annual Spending: "), FormatCurrency(view.TotalAnnualSpending))
	return b.String()
}

// RenderRecommendations renders the ranked cards. The first one carries the
// top pick badge.
func (g *Generator) RenderRecommendations(view View) string {
	s := g.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Recommended Credit Cards") + "\n")
	b.WriteString(s.Subtitle.Render("Cards ranked by net rewards (rewards minus annual fee)") + "\n")

	if len(view.Recommendations) == 0 {
		b.WriteString(s.Muted.Render("  No recommendations returned.") + "\n")
		return b.String()
	}

	for _, rc := range view.Recommendations {
		b.WriteString("\n")
		body := g.RenderCard(rc)
		if rc.TopPick {
			b.WriteString(s.Badge.Render(TopPickLabel) + "\n")
			b.WriteString(s.TopCard.Render(body) + "\n")
		} else {
			b.WriteString(s.Card.Render(body) + "\n")
		}
	}
	return b.String()
}

// RenderCard renders one ranked card with its metrics and breakdown.
func (g *Generator) RenderCard(rc RankedCard) string {
	s := g.styles
	card := rc.Card
	var lines []string

	marker := "[ ]"
	if rc.Selected {
		marker = "[x]"
	}
	header := fmt.Sprintf("%s #%d %s", marker, rc.Rank, card.CardName)
	if card.Issuer != "" {
		header += " " + s.Muted.Render("("+card.Issuer+")")
	}
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(header))
	lines = append(lines, s.Muted.Render("id: "+card.CardID))
	if card.Notes != "" {
		lines = append(lines, s.Subtitle.Render(card.Notes))
	}

	lines = append(lines,
		metric(s, "Net Rewards (Year 1):", s.Positive.Render(FormatCurrency(card.FirstYearRewards))),
		metric(s, "Annual Rewards:", FormatCurrency(card.AnnualRewards)),
		metric(s, "Annual Fee:", g.renderFee(card.AnnualFee)),
	)
	if card.Credits > 0 {
		lines = append(lines, metric(s, "Credits:", s.Positive.Render(FormatCurrency(card.Credits))))
	}
	lines = append(lines, metric(s, "Net Value (Annual):", s.Positive.Render(FormatCurrency(card.NetRewards))))

	if line := SignupBonusLine(card); line != "" {
		lines = append(lines, line)
	}
	if card.IsMultiCard && len(card.CardNames) > 0 {
		lines = append(lines, s.Muted.Render("Combines: "+strings.Join(card.CardNames, " + ")))
	}

	if len(rc.Breakdown) > 0 {
		lines = append(lines, s.Label.Render("Rewards Breakdown:"))
		for _, item := range rc.Breakdown {
			line := fmt.Sprintf("  %-16s %s", item.Label, FormatCurrency(item.Amount))
			if rate := FormatRate(item.Rate); rate != "" {
				line += " " + s.Muted.Render("("+rate+")")
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func metric(s Styles, label, value string) string {
	return s.Label.Render(fmt.Sprintf("%-22s", label)) + " " + value
}

func (g *Generator) renderFee(fee float64) string {
	if fee > 0 {
		return g.styles.Negative.Render(FormatFee(fee))
	}
	return FormatFee(fee)
}

// RenderStrategies renders the multi-card strategies the service suggested.
func (g *Generator) RenderStrategies(strategies []models.Strategy) string {
	s := g.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Multi-Card Strategies") + "\n")
	for _, st := range strategies {
		fmt.Fprintf(&b, "\n  %s\n", lipgloss.NewStyle().Bold(true).Render(st.Name))
		if st.Description != "" {
			fmt.Fprintf(&b, "  %s\n", s.Subtitle.Render(st.Description))
		}
		if len(st.Cards) > 0 {
			fmt.Fprintf(&b, "  %s\n", strings.Join(st.Cards, " + "))
		}
		fmt.Fprintf(&b, "  %s %s  %s %s  %s %s\n",
			s.Label.Render("Rewards:"), FormatCurrency(st.TotalAnnualRewards),
			s.Label.Render("Fees:"), g.renderFee(st.TotalAnnualFees),
			s.Label.Render("Net:"), s.Positive.Render(FormatCurrency(st.NetRewards)))
	}
	return b.String()
}

// RenderPortfolio renders the custom portfolio summary box.
func (g *Generator) RenderPortfolio(summary models.PortfolioSummary, cards []string) string {
	s := g.styles
	lines := []string{
		s.Title.Render(fmt.Sprintf("Custom Portfolio (%d cards)", len(cards))),
	}
	if len(cards) > 0 {
		lines = append(lines, s.Muted.Render(strings.Join(cards, ", ")))
	}
	lines = append(lines,
		metric(s, "Total Rewards:", FormatCurrency(summary.TotalRewards)),
		metric(s, "Total Fees:", g.renderFee(summary.TotalFees)),
		metric(s, "Total Credits:", FormatCurrency(summary.TotalCredits)),
		metric(s, "Net Value:", s.Positive.Render(FormatCurrency(summary.NetValue))),
	)
	return s.Summary.Render(strings.Join(lines, "\n")) + "\n"
}
