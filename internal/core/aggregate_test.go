package core

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= 1e-6*scale
}

func TestSectionTotalMatchesMonthSum(t *testing.T) {
	r1 := NewRealizedRow("Acme")
	r1.SetAmount(June, 10000)
	r1.SetAmount(July, 20000)
	r2 := NewRealizedRow("Globex")
	r2.SetAmount(June, 5000)
	r2.SetAmount(May, 7000)

	st := SectionTotal([]*Row{r1, r2})

	sum := 0.0
	for _, m := range FiscalMonths {
		sum += st.Months[m]
	}
	if st.Total != sum {
		t.Fatalf("section total %v drifted from month sum %v", st.Total, sum)
	}
	if st.Months[June] != 15000 || st.Months[July] != 20000 || st.Months[May] != 7000 {
		t.Fatalf("unexpected month sums: %v", st.Months)
	}
	if st.Total != 42000 {
		t.Fatalf("expected total 42000, got %v", st.Total)
	}
}

func TestSectionTotalStableUnderRowOrder(t *testing.T) {
	r1 := NewPipelineRow("A", 1000, "", 50)
	r1.SetAmount(June, 100)
	r2 := NewPipelineRow("B", 2000, "", 50)
	r2.SetAmount(June, 200)
	r3 := NewPipelineRow("C", 3000, "", 50)
	r3.SetAmount(July, 300)

	a := SectionTotal([]*Row{r1, r2, r3})
	b := SectionTotal([]*Row{r3, r1, r2})
	for _, m := range FiscalMonths {
		if !almostEqual(a.Months[m], b.Months[m]) {
			t.Fatalf("month %v differs across row orders: %v vs %v", m, a.Months[m], b.Months[m])
		}
	}
	if !almostEqual(a.Total, b.Total) {
		t.Fatalf("totals differ across row orders: %v vs %v", a.Total, b.Total)
	}
}

func TestCombineLedger(t *testing.T) {
	realized := NewRealizedRow("Acme")
	realized.SetAmount(June, 10000)
	ne := NewPipelineRow("Initech", 50000, "2025-09-01", 90)
	ne.SetAmount(June, 2000)
	ne.SetAmount(July, 3000)
	wl := NewPipelineRow("Hooli", 20000, "2025-10-01", 60)
	wl.SetAmount(June, 1000)

	rt := SectionTotal([]*Row{realized})
	nt := SectionTotal([]*Row{ne})
	wt := SectionTotal([]*Row{wl})
	ledger := CombineLedger(rt, nt, wt)

	for _, m := range FiscalMonths {
		want := rt.Months[m] + nt.Months[m] + wt.Months[m]
		if ledger.Months[m] != want {
			t.Fatalf("ledger[%v] = %v, want %v", m, ledger.Months[m], want)
		}
	}
	sum := 0.0
	for _, m := range FiscalMonths {
		sum += ledger.Months[m]
	}
	if ledger.Total != sum {
		t.Fatalf("ledger total %v drifted from month sum %v", ledger.Total, sum)
	}
	if !almostEqual(ledger.Total, rt.Total+nt.Total+wt.Total) {
		t.Fatalf("ledger total %v disagrees with summed section totals %v", ledger.Total, rt.Total+nt.Total+wt.Total)
	}
}

func TestRowTotalTracksEdits(t *testing.T) {
	r := NewPipelineRow("Acme", 10000, "2025-08-01", 80)
	if RowTotal(r) != 0 {
		t.Fatalf("fresh pipeline row should total 0, got %v", RowTotal(r))
	}
	r.SetAmount(June, 4000)
	r.SetAmount(July, 6000)
	if r.Total != 10000 || RowTotal(r) != r.Total {
		t.Fatalf("row total %v out of sync with recomputed %v", r.Total, RowTotal(r))
	}
	// Overwrite, not accumulate.
	r.SetAmount(June, 1000)
	if r.Total != 7000 {
		t.Fatalf("expected 7000 after overwrite, got %v", r.Total)
	}
}

func TestRealizedRowKeepsGaps(t *testing.T) {
	r := NewRealizedRow("Acme")
	r.SetAmount(June, 100)
	if _, ok := r.Amount(July); ok {
		t.Fatal("july should be undefined on a realized row")
	}
	p := NewPipelineRow("Acme", 0, "", 0)
	if v, ok := p.Amount(July); !ok || v != 0 {
		t.Fatalf("pipeline months should be defined zeros, got %v ok=%v", v, ok)
	}
}
