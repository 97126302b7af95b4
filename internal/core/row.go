package core

import (
	"errors"
	"fmt"
	"strings"
)

// FeedKind tags one of the three data sources feeding the ledger. The kind
// decides the normalization semantics: realized rows are merged by customer,
// pipeline rows stay one-per-deal.
type FeedKind string

const (
	FeedRealized         FeedKind = "realized"
	FeedPipelineNE       FeedKind = "pipeline_ne"
	FeedPipelineWorkload FeedKind = "pipeline_workload"
)

// MergeByCustomer reports whether raw records of this feed are collapsed
// into one row per customer during normalization.
func (f FeedKind) MergeByCustomer() bool {
	return f == FeedRealized
}

// Pipeline reports whether rows of this feed carry deal attributes
// (pipeline amount, close date, probability) and editable monthly cells.
func (f FeedKind) Pipeline() bool {
	return f == FeedPipelineNE || f == FeedPipelineWorkload
}

func (f FeedKind) Valid() bool {
	switch f {
	case FeedRealized, FeedPipelineNE, FeedPipelineWorkload:
		return true
	}
	return false
}

var (
	ErrEmptyCustomer = errors.New("empty customer name")
	ErrBadMonth      = errors.New("invalid month key")
)

// Row is one customer's monthly amounts within a feed.
//
// A month absent from Amounts means "no data", which is distinct from an
// explicit zero: realized feeds keep gaps for months without consumption,
// while pipeline rows start with all twelve months set to zero so cells can
// be edited. Total is derived and recomputed on every mutation; it never
// drifts from the sum of Amounts.
type Row struct {
	Customer string
	Amounts  map[MonthKey]float64
	Total    float64

	// Pipeline-only attributes.
	PipelineAmount float64
	CloseDate      string
	Probability    int
}

// NewRealizedRow returns a row with no month data yet.
func NewRealizedRow(customer string) *Row {
	return &Row{
		Customer: strings.TrimSpace(customer),
		Amounts:  make(map[MonthKey]float64, len(FiscalMonths)),
	}
}

// NewPipelineRow returns a deal row with all twelve months zero-initialized,
// pending manual allocation.
func NewPipelineRow(customer string, amount float64, closeDate string, probability int) *Row {
	r := &Row{
		Customer:       strings.TrimSpace(customer),
		Amounts:        make(map[MonthKey]float64, len(FiscalMonths)),
		PipelineAmount: amount,
		CloseDate:      closeDate,
		Probability:    probability,
	}
	for _, m := range FiscalMonths {
		r.Amounts[m] = 0
	}
	return r
}

// SetAmount writes one month's value and recomputes the row total.
func (r *Row) SetAmount(m MonthKey, v float64) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrBadMonth, m)
	}
	r.Amounts[m] = v
	r.Recompute()
	return nil
}

// Amount returns the month's value and whether it is defined.
func (r *Row) Amount(m MonthKey) (float64, bool) {
	v, ok := r.Amounts[m]
	return v, ok
}

// Recompute rebuilds Total from the defined month amounts.
func (r *Row) Recompute() {
	sum := 0.0
	for _, m := range FiscalMonths {
		if v, ok := r.Amounts[m]; ok {
			sum += v
		}
	}
	r.Total = sum
}

func (r *Row) Validate() error {
	if strings.TrimSpace(r.Customer) == "" {
		return ErrEmptyCustomer
	}
	for m := range r.Amounts {
		if !m.Valid() {
			return fmt.Errorf("%w: %q", ErrBadMonth, m)
		}
	}
	return nil
}

// Clone returns a deep copy. Recomputation passes operate on snapshots so
// an in-flight pass never observes a concurrent cell edit.
func (r *Row) Clone() *Row {
	cp := *r
	cp.Amounts = make(map[MonthKey]float64, len(r.Amounts))
	for m, v := range r.Amounts {
		cp.Amounts[m] = v
	}
	return &cp
}
