// Package optimize handles the non-interactive optimization command
package optimize

import (
	"context"
	"fmt"

	"github.com/mozzadell/cc-optimizer/cmd/common"
	"github.com/mozzadell/cc-optimizer/cmd/root"
	"github.com/mozzadell/cc-optimizer/internal/logging"
	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/profile"
	"github.com/mozzadell/cc-optimizer/internal/report"
	"github.com/mozzadell/cc-optimizer/internal/validation"

	"github.com/spf13/cobra"
)

// Flags holds the optimize command's flags
type Flags struct {
	Spend  []string
	Input  string
	Annual bool
	MaxFee float64
	NoFee  bool
	Select []string
	TopN   int
}

var flags = Flags{}

// Cmd represents the optimize command
var Cmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rank credit cards for your spending",
	Long: `Submit spending per category and print the recommended cards.

Spending comes from a YAML or JSON profile (--input) and/or --spend pairs,
which override the profile:

  ccopt optimize --spend groceries=600 --spend dining=250 --max-fee 100
  ccopt optimize -i spending.yaml --select amex-gold --format json`,
	RunE: optimizeFunc,
}

func init() {
	Cmd.Flags().StringArrayVarP(&flags.Spend, "spend", "s", nil, "Spending as category=amount (repeatable)")
	Cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "Spending profile file (YAML or JSON)")
	Cmd.Flags().BoolVar(&flags.Annual, "annual", false, "Amounts are annual instead of monthly")
	Cmd.Flags().Float64Var(&flags.MaxFee, "max-fee", 0, "Highest acceptable annual fee")
	Cmd.Flags().BoolVar(&flags.NoFee, "no-fee", false, "Only consider cards without an annual fee")
	Cmd.Flags().StringSliceVar(&flags.Select, "select", nil, "Card ids to total as a custom portfolio")
	Cmd.Flags().IntVar(&flags.TopN, "top", 0, "Number of cards to show (default from config)")
}

func optimizeFunc(cmd *cobra.Command, args []string) error {
	c := root.AppContainer
	if c == nil {
		return fmt.Errorf("application not initialized")
	}
	log := c.GetLogger()
	cfg := c.GetConfig()

	format := root.OutputFormat()
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}

	record, err := readSpending(c.GetProfileLoader(), flags.Input, flags.Spend)
	if err != nil {
		return err
	}

	opts := models.OptimizeOptions{IsAnnual: flags.Annual, NoFeeOnly: flags.NoFee}
	if cmd.Flags().Changed("max-fee") {
		maxFee := flags.MaxFee
		opts.MaxAnnualFee = &maxFee
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log.Info("Requesting recommendations", logging.F(logging.FieldEndpoint, c.GetOptimizer().Endpoint()))
	resp, err := common.RunOptimization(ctx, c.GetOptimizer(), record, opts, log)
	if err != nil {
		return err
	}

	topN := cfg.Output.TopN
	if flags.TopN > 0 {
		topN = flags.TopN
	}
	selection := common.SelectCards(flags.Select, resp, log)

	data, err := c.GetGenerator().Generate(report.BuildView(resp, selection, topN), format)
	if err != nil {
		return err
	}
	return common.WriteOutput(data, root.SharedFlags.Output, cmd.OutOrStdout(), log)
}

// readSpending merges the profile file, if any, with --spend pairs.
func readSpending(loader *profile.Loader, input string, pairs []string) (models.SpendingRecord, error) {
	record := models.NewSpendingRecord()
	var err error
	if input != "" {
		if record, err = loader.LoadFile(input, record); err != nil {
			return record, err
		}
	}
	return loader.ParsePairs(pairs, record)
}
