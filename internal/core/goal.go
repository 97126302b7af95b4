package core

import (
	"errors"
	"strings"
)

// NEProbabilityThreshold is the minimum deal-closure confidence counted
// toward new/expansion progress. Deals below it are not realized progress.
const NEProbabilityThreshold = 90

// TargetSettings are the per-owner goal scalars. They are owned by the
// settings store; the reconciler treats a loaded value as a read-only
// snapshot for the duration of one computation pass.
type TargetSettings struct {
	OwnerID                 string  `json:"-"`
	NETarget                float64 `json:"neTarget"`
	ConsumptionBaseline     float64 `json:"consumptionBaseline"`
	ConsumptionGrowthTarget float64 `json:"consumptionGrowthTarget"`
}

var ErrEmptyOwner = errors.New("empty owner id")

func (s TargetSettings) Validate() error {
	if strings.TrimSpace(s.OwnerID) == "" {
		return ErrEmptyOwner
	}
	return nil
}

// TotalConsumptionTarget is derived, never stored.
func (s TargetSettings) TotalConsumptionTarget() float64 {
	return s.ConsumptionBaseline + s.ConsumptionGrowthTarget
}

// TargetCurve is the annual consumption target pro-rated evenly across the
// twelve fiscal months. A pure function of the settings.
type TargetCurve struct {
	Months map[MonthKey]float64
	Total  float64
}

// NewTargetCurve distributes baseline+growth linearly: each month gets
// total/12. No weighting by quarter length or seasonality.
func NewTargetCurve(s TargetSettings) TargetCurve {
	total := s.TotalConsumptionTarget()
	monthly := total / 12
	c := TargetCurve{Months: make(map[MonthKey]float64, len(FiscalMonths)), Total: total}
	for _, m := range FiscalMonths {
		c.Months[m] = monthly
	}
	return c
}

// GapToGoal is target minus actual. Negative means ahead of pace.
type GapToGoal struct {
	Months map[MonthKey]float64
	Total  float64
}

// ComputeGapToGoal subtracts the ledger from the target curve per month.
// The grand total is curve.Total - ledger.Total; it matches the sum of the
// monthly gaps within floating-point tolerance.
func ComputeGapToGoal(curve TargetCurve, ledger Ledger) GapToGoal {
	g := GapToGoal{Months: make(map[MonthKey]float64, len(FiscalMonths))}
	for _, m := range FiscalMonths {
		g.Months[m] = curve.Months[m] - ledger.Months[m]
	}
	g.Total = curve.Total - ledger.Total
	return g
}

// NEProgress is the percentage of the new/expansion target covered by
// high-confidence open deals: the sum of pipeline amounts with probability
// at or above the threshold, over the target. Zero target yields zero
// rather than a division by zero.
func NEProgress(neRows []*Row, s TargetSettings) float64 {
	if s.NETarget == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range neRows {
		if r.Probability >= NEProbabilityThreshold {
			sum += r.PipelineAmount
		}
	}
	return sum / s.NETarget * 100
}

// ConsumptionProgress is growth over baseline as a percentage of the growth
// target. The value is unclamped so callers can tell "exceeded target" from
// "at target"; display layers clamp to [0,100]. Zero growth target yields
// zero.
func ConsumptionProgress(ledger Ledger, s TargetSettings) float64 {
	if s.ConsumptionGrowthTarget == 0 {
		return 0
	}
	return (ledger.Total - s.ConsumptionBaseline) / s.ConsumptionGrowthTarget * 100
}
