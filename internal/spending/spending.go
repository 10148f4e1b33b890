// Package spending is the spending form controller: it sanitizes what the user
// types, turns the record into a numeric payload and drives one submission.
package spending

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/mozzadell/cc-optimizer/internal/clienterror"
	"github.com/mozzadell/cc-optimizer/internal/models"
)

// leadingNumber matches the longest numeric prefix of sanitized text, so
// "12.3.4" reads as 12.3. Signs and exponents never survive Sanitize.
var leadingNumber = regexp.MustCompile(`^\s*(\d+\.?\d*|\.\d+)`)

// Sanitize keeps only ASCII digits and '.'.
func Sanitize(raw string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
}

// UpdateCategory stores the sanitized text under category. In-progress input
// such as "12." is kept as typed.
func UpdateCategory(record models.SpendingRecord, category models.Category, raw string) models.SpendingRecord {
	return record.With(category, Sanitize(raw))
}

// ParseAmount reads an amount leniently: empty and unparsable values are
// zero, and so is anything not starting with a digit or '.'.
func ParseAmount(text string) float64 {
	match := leadingNumber.FindString(text)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(match), 64)
	if err != nil {
		return 0
	}
	return v
}

// BuildSubmissionPayload converts every category to a number. valid is false
// when no category is positive.
func BuildSubmissionPayload(record models.SpendingRecord) (models.NumericSpending, bool) {
	payload := make(models.NumericSpending, len(models.Categories))
	valid := false
	for _, c := range models.Categories {
		v := ParseAmount(record.Get(c.Key))
		payload[string(c.Key)] = v
		if v > 0 {
			valid = true
		}
	}
	return payload, valid
}

// Submitter sends a spending payload to the optimization service.
type Submitter interface {
	Optimize(ctx context.Context, spending models.NumericSpending, opts models.OptimizeOptions) (*models.RecommendationResponse, error)
}

// Form is the whole state of the spending form. Every method returns a new
// Form; none mutates the receiver.
type Form struct {
	Record   models.SpendingRecord
	Response *models.RecommendationResponse
	Err      error
	Loading  bool
}

// NewForm returns an empty form.
func NewForm() Form {
	return Form{Record: models.NewSpendingRecord()}
}

// Update applies one edit to a category.
func (f Form) Update(category models.Category, raw string) Form {
	f.Record = UpdateCategory(f.Record, category, raw)
	return f
}

// Reset empties every category and drops any previous outcome.
func (f Form) Reset() Form {
	return NewForm()
}

// BeginSubmit clears the previous outcome and validates the record. When the
// record has no positive amount it returns ok=false and a form carrying
// ErrNoSpending; no request should be sent.
func (f Form) BeginSubmit() (next Form, payload models.NumericSpending, ok bool) {
	f.Response = nil
	f.Err = nil

	payload, valid := BuildSubmissionPayload(f.Record)
	if !valid {
		f.Err = clienterror.ErrNoSpending
		f.Loading = false
		return f, nil, false
	}

	f.Loading = true
	return f, payload, true
}

// Finish records the outcome of a submission.
func (f Form) Finish(resp *models.RecommendationResponse, err error) Form {
	f.Loading = false
	if err != nil {
		f.Response = nil
		f.Err = err
		return f
	}
	f.Response = resp
	f.Err = nil
	return f
}

// Submit runs a whole submission cycle synchronously.
func (f Form) Submit(ctx context.Context, s Submitter, opts models.OptimizeOptions) Form {
	next, payload, ok := f.BeginSubmit()
	if !ok {
		return next
	}
	resp, err := s.Optimize(ctx, payload, opts)
	return next.Finish(resp, err)
}

// ErrorMessage is the text to show for the current error, if any.
func (f Form) ErrorMessage() string {
	return clienterror.UserMessage(f.Err)
}
