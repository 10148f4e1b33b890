// Package categories lists the spending categories the service understands
package categories

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mozzadell/cc-optimizer/cmd/common"
	"github.com/mozzadell/cc-optimizer/cmd/root"
	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/report"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List spending categories",
	Long:  `List the spending categories accepted in profiles and --spend pairs, with their example amounts.`,
	RunE:  categoriesFunc,
}

func categoriesFunc(cmd *cobra.Command, args []string) error {
	gen := report.NewGenerator(report.Options{}, root.Log)
	if root.AppContainer != nil {
		gen = root.AppContainer.GetGenerator()
	}
	data, err := render(models.Categories, root.OutputFormat(), gen)
	if err != nil {
		return err
	}
	return common.WriteOutput(data, root.SharedFlags.Output, cmd.OutOrStdout(), root.Log)
}

func render(categories []models.CategoryInfo, format string, gen *report.Generator) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", models.FormatText:
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("KEY", "CATEGORY", "EXAMPLE")
		for _, c := range categories {
			t.Row(string(c.Key), c.Icon+" "+c.Label, "$"+c.Placeholder)
		}
		return []byte(t.Render() + "\n"), nil
	case models.FormatJSON:
		out, err := json.MarshalIndent(categories, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal categories: %w", err)
		}
		return append(out, '\n'), nil
	case models.FormatYAML:
		out, err := yaml.Marshal(categories)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal categories: %w", err)
		}
		return out, nil
	case models.FormatCSV:
		rows := make([]*models.CategoryInfo, len(categories))
		for i := range categories {
			rows[i] = &categories[i]
		}
		out, err := gen.MarshalCSV(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal categories: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (must be text, json, yaml or csv)", format)
	}
}
