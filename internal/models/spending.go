package models

// SpendingRecord holds the raw text typed for each category. It is a value:
// With returns a new record and never touches the receiver.
type SpendingRecord struct {
	values map[Category]string
}

// NewSpendingRecord returns a record with every category empty.
func NewSpendingRecord() SpendingRecord {
	values := make(map[Category]string, len(Categories))
	for _, c := range Categories {
		values[c.Key] = ""
	}
	return SpendingRecord{values: values}
}

// Get returns the raw text stored for c.
func (r SpendingRecord) Get(c Category) string {
	return r.values[c]
}

// With returns a copy of r with c set to text.
func (r SpendingRecord) With(c Category, text string) SpendingRecord {
	values := make(map[Category]string, len(Categories))
	for _, info := range Categories {
		values[info.Key] = r.values[info.Key]
	}
	values[c] = text
	return SpendingRecord{values: values}
}

// Equal compares two records category by category.
func (r SpendingRecord) Equal(other SpendingRecord) bool {
	for _, info := range Categories {
		if r.values[info.Key] != other.values[info.Key] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether every category is the empty string.
func (r SpendingRecord) IsEmpty() bool {
	for _, info := range Categories {
		if r.values[info.Key] != "" {
			return false
		}
	}
	return true
}

// NumericSpending is the payload form of a record: category key to amount,
// every category present.
type NumericSpending map[string]float64

// Total sums all amounts.
func (s NumericSpending) Total() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// OptimizeOptions are the optional filters sent with a spending payload.
type OptimizeOptions struct {
	// MaxAnnualFee excludes cards whose annual fee exceeds the ceiling.
	MaxAnnualFee *float64 `json:"max_annual_fee,omitempty" validate:"omitempty,gte=0"`
	// NoFeeOnly restricts results to cards without an annual fee.
	NoFeeOnly bool `json:"no_fee_only,omitempty"`
	// IsAnnual marks the amounts as yearly rather than monthly.
	IsAnnual bool `json:"is_annual,omitempty"`
}

// EffectiveMaxFee folds NoFeeOnly into the fee ceiling. NoFeeOnly wins over
// any larger ceiling.
func (o OptimizeOptions) EffectiveMaxFee() *float64 {
	if o.NoFeeOnly {
		zero := 0.0
		return &zero
	}
	return o.MaxAnnualFee
}

// OptimizeRequest is the JSON body posted to the optimization service.
type OptimizeRequest struct {
	Spending     NumericSpending `json:"spending"`
	IsAnnual     bool            `json:"is_annual,omitempty"`
	MaxAnnualFee *float64        `json:"max_annual_fee,omitempty"`
}

// NewOptimizeRequest assembles the request body.
func NewOptimizeRequest(spending NumericSpending, opts OptimizeOptions) OptimizeRequest {
	return OptimizeRequest{
		Spending:     spending,
		IsAnnual:     opts.IsAnnual,
		MaxAnnualFee: opts.EffectiveMaxFee(),
	}
}
