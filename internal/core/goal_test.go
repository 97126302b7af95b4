package core

import "testing"

func TestTargetCurveProRation(t *testing.T) {
	s := TargetSettings{
		OwnerID:                 "owner@example.com",
		ConsumptionBaseline:     600000,
		ConsumptionGrowthTarget: 600000,
	}
	curve := NewTargetCurve(s)
	if curve.Total != 1200000 {
		t.Fatalf("expected curve total 1200000, got %v", curve.Total)
	}
	for _, m := range FiscalMonths {
		if curve.Months[m] != 100000 {
			t.Fatalf("expected %v = 100000, got %v", m, curve.Months[m])
		}
	}
}

func TestGapToGoalTotalsAgree(t *testing.T) {
	s := TargetSettings{ConsumptionBaseline: 500000, ConsumptionGrowthTarget: 700000}
	curve := NewTargetCurve(s)

	r := NewRealizedRow("Acme")
	r.SetAmount(June, 90000)
	r.SetAmount(July, 110000)
	st := SectionTotal([]*Row{r})
	ledger := CombineLedger(st, SectionTotal(nil), SectionTotal(nil))

	gap := ComputeGapToGoal(curve, ledger)

	if gap.Months[June] != curve.Months[June]-90000 {
		t.Fatalf("unexpected june gap %v", gap.Months[June])
	}
	// The independent total formula and the sum of monthly gaps must agree.
	sum := 0.0
	for _, m := range FiscalMonths {
		sum += gap.Months[m]
	}
	if !almostEqual(gap.Total, sum) {
		t.Fatalf("gap total %v disagrees with monthly sum %v", gap.Total, sum)
	}
	if gap.Total != curve.Total-ledger.Total {
		t.Fatalf("gap total must be curve.Total-ledger.Total, got %v", gap.Total)
	}
}

func TestNEProgressThreshold(t *testing.T) {
	s := TargetSettings{NETarget: 100000}
	counted := NewPipelineRow("Counted", 50000, "2025-09-01", 90)
	ignored := NewPipelineRow("Ignored", 50000, "2025-09-01", 89)

	if got := NEProgress([]*Row{counted, ignored}, s); got != 50 {
		t.Fatalf("expected 50%% progress, got %v", got)
	}
	if got := NEProgress([]*Row{ignored}, s); got != 0 {
		t.Fatalf("sub-threshold deal must not count, got %v", got)
	}
}

func TestNEProgressZeroTarget(t *testing.T) {
	row := NewPipelineRow("Acme", 50000, "", 95)
	if got := NEProgress([]*Row{row}, TargetSettings{}); got != 0 {
		t.Fatalf("zero target must yield 0, got %v", got)
	}
}

func TestConsumptionProgress(t *testing.T) {
	r := NewRealizedRow("Acme")
	r.SetAmount(June, 700000)
	ledger := CombineLedger(SectionTotal([]*Row{r}), SectionTotal(nil), SectionTotal(nil))

	s := TargetSettings{ConsumptionBaseline: 500000, ConsumptionGrowthTarget: 400000}
	if got := ConsumptionProgress(ledger, s); got != 50 {
		t.Fatalf("expected 50%%, got %v", got)
	}

	// Exceeding the target stays unclamped.
	s.ConsumptionGrowthTarget = 100000
	if got := ConsumptionProgress(ledger, s); got != 200 {
		t.Fatalf("expected unclamped 200%%, got %v", got)
	}

	if got := ConsumptionProgress(ledger, TargetSettings{ConsumptionBaseline: 500000}); got != 0 {
		t.Fatalf("zero growth target must yield 0, got %v", got)
	}
}

func TestTargetSettingsValidate(t *testing.T) {
	if err := (TargetSettings{}).Validate(); err != ErrEmptyOwner {
		t.Fatalf("expected ErrEmptyOwner, got %v", err)
	}
	if err := (TargetSettings{OwnerID: "o@example.com"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
