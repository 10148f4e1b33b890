package report

import (
	"fmt"
	"strings"

	"github.com/mozzadell/cc-optimizer/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// FormatCurrency renders whole US dollars with thousands separators: $1,235.
// Halves round away from zero.
func FormatCurrency(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(0).IntPart()
	if rounded < 0 {
		return "-$" + humanize.Comma(-rounded)
	}
	return "$" + humanize.Comma(rounded)
}

// FormatFee renders an annual fee as a deduction, or $0 for no-fee cards.
func FormatFee(fee float64) string {
	if fee > 0 {
		return "-" + FormatCurrency(fee)
	}
	return "$0"
}

// FormatRate renders an earn rate. Values below 1 are cash-back fractions,
// others are points multipliers.
func FormatRate(rate float64) string {
	if rate <= 0 {
		return ""
	}
	if rate < 1 {
		return humanize.Ftoa(decimal.NewFromFloat(rate*100).Round(2).InexactFloat64()) + "%"
	}
	return humanize.Ftoa(rate) + "x"
}

// CategoryLabel is the display name for a breakdown key. Known categories
// use their label; anything else is title-cased.
func CategoryLabel(key string) string {
	if c, ok := models.ParseCategory(key); ok {
		return c.Info().Label
	}
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// SignupBonusLine describes a card's signup bonus, or "" when it has none.
func SignupBonusLine(card models.CardRecommendation) string {
	if !card.HasSignupBonus() {
		return ""
	}
	line := fmt.Sprintf("Signup Bonus: %s points (%s value)",
		humanize.Commaf(card.SignupBonus), FormatCurrency(card.SignupValue()))
	if card.SignupSpendRequirement > 0 {
		line += fmt.Sprintf(" after spending %s", FormatCurrency(card.SignupSpendRequirement))
		if card.SignupMonths > 0 {
			line += fmt.Sprintf(" in %d months", card.SignupMonths)
		}
	}
	return line
}
