package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mozzadell/cc-optimizer/internal/logging"
	"github.com/mozzadell/cc-optimizer/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Options controls how a Generator renders.
type Options struct {
	Color        bool
	CSVDelimiter rune
}

// Generator renders a View in one of the supported output formats.
type Generator struct {
	logger logging.Logger
	opts   Options
	styles Styles
}

// NewGenerator creates a Generator. A nil logger discards log output.
func NewGenerator(opts Options, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if opts.CSVDelimiter == 0 {
		opts.CSVDelimiter = ','
	}
	return &Generator{
		logger: logger.WithField(logging.FieldComponent, "ReportGenerator"),
		opts:   opts,
		styles: NewStyles(opts.Color),
	}
}

// Generate renders view in the given format (text, json, yaml or csv).
func (g *Generator) Generate(view View, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", models.FormatText:
		return []byte(g.RenderText(view)), nil
	case models.FormatJSON:
		return g.generateJSON(view)
	case models.FormatYAML:
		return g.generateYAML(view)
	case models.FormatCSV:
		return g.generateCSV(view)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(view View) ([]byte, error) {
	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *Generator) generateYAML(view View) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML report: %w", err)
	}
	return buf.Bytes(), nil
}

// RecommendationRow is one ranked card as a CSV record.
type RecommendationRow struct {
	Rank             int     `csv:"rank"`
	CardID           string  `csv:"card_id"`
	CardName         string  `csv:"card_name"`
	Issuer           string  `csv:"issuer"`
	NetRewards       float64 `csv:"net_rewards"`
	FirstYearRewards float64 `csv:"first_year_rewards"`
	AnnualRewards    float64 `csv:"annual_rewards"`
	AnnualFee        float64 `csv:"annual_fee"`
	Credits          float64 `csv:"credits"`
	SignupBonus      float64 `csv:"signup_bonus"`
	TopCategory      string  `csv:"top_category"`
	TopPick          bool    `csv:"top_pick"`
	Selected         bool    `csv:"selected"`
}

// Rows flattens the ranked cards of a view into CSV records.
func Rows(view View) []*RecommendationRow {
	rows := make([]*RecommendationRow, 0, len(view.Recommendations))
	for _, rc := range view.Recommendations {
		row := &RecommendationRow{
			Rank:             rc.Rank,
			CardID:           rc.Card.CardID,
			CardName:         rc.Card.CardName,
			Issuer:           rc.Card.Issuer,
			NetRewards:       rc.Card.NetRewards,
			FirstYearRewards: rc.Card.FirstYearRewards,
			AnnualRewards:    rc.Card.AnnualRewards,
			AnnualFee:        rc.Card.AnnualFee,
			Credits:          rc.Card.Credits,
			SignupBonus:      rc.Card.SignupBonus,
			TopPick:          rc.TopPick,
			Selected:         rc.Selected,
		}
		if len(rc.Breakdown) > 0 {
			row.TopCategory = rc.Breakdown[0].Category
		}
		rows = append(rows, row)
	}
	return rows
}

func (g *Generator) generateCSV(view View) ([]byte, error) {
	rows := Rows(view)
	out, err := g.MarshalCSV(rows)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	g.logger.Debug("Rendered CSV report", logging.F(logging.FieldCount, len(rows)))
	return out, nil
}

// MarshalCSV writes a slice of csv-tagged structs with the configured
// delimiter.
func (g *Generator) MarshalCSV(rows interface{}) ([]byte, error) {
	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	csvWriter.Comma = g.opts.CSVDelimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
