package tui

import (
	"fmt"
	"strings"

	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/report"

	"github.com/charmbracelet/lipgloss"
)

const (
	formHelp    = "tab/↓ next • shift+tab/↑ previous • enter submit • ctrl+r reset • esc quit"
	resultsHelp = "↑/↓ move • space add to portfolio • e edit spending • ctrl+r reset • q quit"
)

// View implements tea.Model.
func (m Model) View() string {
	styles := m.gen.Styles()
	var b strings.Builder

	b.WriteString(styles.Title.Render("Credit Card Rewards Optimizer") + "\n\n")

	if m.mode == modeResults && m.form.Response != nil {
		b.WriteString(m.resultsView())
		b.WriteString("\n" + styles.Muted.Render(resultsHelp) + "\n")
		return b.String()
	}

	b.WriteString(m.formView())
	if m.form.Loading {
		b.WriteString("\n" + m.spinner.View() + " Finding your best cards...\n")
	}
	if msg := m.form.ErrorMessage(); msg != "" {
		b.WriteString("\n" + styles.Error.Render(msg) + "\n")
	}
	b.WriteString("\n" + styles.Muted.Render(formHelp) + "\n")
	return b.String()
}

func (m Model) formView() string {
	styles := m.gen.Styles()
	period := "/mo"
	if m.opts.IsAnnual {
		period = "/yr"
	}

	var b strings.Builder
	for i, info := range models.Categories {
		pointer := "  "
		if i == m.field {
			pointer = "> "
		}
		value := m.form.Record.Get(info.Key)
		if value == "" {
			value = styles.Muted.Render(info.Placeholder)
		}
		label := fmt.Sprintf("%s %-22s", info.Icon, info.Label)
		if i == m.field {
			label = lipgloss.NewStyle().Bold(true).Render(label)
		}
		fmt.Fprintf(&b, "%s%s $%s%s\n", pointer, label, value, styles.Muted.Render(period))
	}
	return b.String()
}

func (m Model) resultsView() string {
	styles := m.gen.Styles()
	view := m.view()

	var b strings.Builder
	b.WriteString(m.gen.RenderSpending(view) + "\n")

	if len(view.Recommendations) == 0 {
		b.WriteString(styles.Muted.Render("No recommendations returned.") + "\n")
	}
	for i, rc := range view.Recommendations {
		pointer := "  "
		if i == m.cursor {
			pointer = "> "
		}
		check := "[ ]"
		if rc.Selected {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s #%d %-32s net %s  fee %s", pointer, check, rc.Rank, rc.Card.CardName,
			report.FormatCurrency(rc.Card.NetRewards), report.FormatFee(rc.Card.AnnualFee))
		if rc.TopPick {
			line += " " + styles.Badge.Render(report.TopPickLabel)
		}
		b.WriteString(line + "\n")
	}

	if m.cursor < len(view.Recommendations) {
		b.WriteString("\n" + styles.Card.Render(m.gen.RenderCard(view.Recommendations[m.cursor])) + "\n")
	}
	if len(view.Strategies) > 0 {
		b.WriteString("\n" + m.gen.RenderStrategies(view.Strategies))
	}
	if view.Portfolio != nil {
		b.WriteString("\n" + m.gen.RenderPortfolio(*view.Portfolio, view.PortfolioCards))
	}
	return b.String()
}
