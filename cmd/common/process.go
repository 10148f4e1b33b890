// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"github.com/mozzadell/cc-optimizer/internal/fileutils"
	"github.com/mozzadell/cc-optimizer/internal/logging"
	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/portfolio"
	"github.com/mozzadell/cc-optimizer/internal/spending"
)

// RunOptimization submits record through s. Validation failures never reach
// the service. The returned error carries the message to show users.
func RunOptimization(ctx context.Context, s spending.Submitter, record models.SpendingRecord, opts models.OptimizeOptions, log logging.Logger) (*models.RecommendationResponse, error) {
	if payload, ok := spending.BuildSubmissionPayload(record); ok {
		log.Debug("Submitting spending", logging.F(logging.FieldTotal, payload.Total()))
	}

	form := spending.Form{Record: record}.Submit(ctx, s, opts)
	if form.Err != nil {
		log.WithError(form.Err).Debug("Optimization did not succeed")
		return nil, fmt.Errorf("%s: %w", form.ErrorMessage(), form.Err)
	}

	log.Info("Received recommendations",
		logging.F(logging.FieldCount, len(form.Response.Recommendations)))
	return form.Response, nil
}

// SelectCards builds the custom portfolio selection from card ids given on
// the command line. Ids absent from the response are dropped with a warning.
func SelectCards(ids []string, resp *models.RecommendationResponse, log logging.Logger) portfolio.Selection {
	requested := portfolio.NewSelection(ids...)
	selection := requested.Prune(resp.Recommendations)

	for _, id := range requested.IDs() {
		if !selection.Contains(id) {
			log.Warn("Selected card is not among the recommendations", logging.F(logging.FieldCardID, id))
		}
	}
	return selection
}

// WriteOutput writes data to outputFile, or to stdout when outputFile is empty.
func WriteOutput(data []byte, outputFile string, stdout io.Writer, log logging.Logger) error {
	if outputFile == "" {
		_, err := stdout.Write(data)
		return err
	}

	if err := fileutils.WriteFile(outputFile, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	log.Info("Report written", logging.F(logging.FieldOutputFile, outputFile))
	return nil
}
