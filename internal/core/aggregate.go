package core

// SectionTotals holds a feed's per-month sums plus the grand total. It is
// recomputed from the row collection whenever rows change and is never
// persisted.
type SectionTotals struct {
	Months map[MonthKey]float64
	Total  float64
}

// Ledger is the element-wise sum of the three feeds' section totals: the
// combined actual + committed + pipeline consumption for the period.
type Ledger struct {
	Months map[MonthKey]float64
	Total  float64
}

// SectionTotal sums the defined month amounts across all rows of a feed.
// Undefined months count as zero. The grand total is the sum of the twelve
// month sums, so it cannot drift from them.
func SectionTotal(rows []*Row) SectionTotals {
	st := SectionTotals{Months: make(map[MonthKey]float64, len(FiscalMonths))}
	for _, m := range FiscalMonths {
		sum := 0.0
		for _, r := range rows {
			if v, ok := r.Amounts[m]; ok {
				sum += v
			}
		}
		st.Months[m] = sum
		st.Total += sum
	}
	return st
}

// CombineLedger composes the three section totals into one monthly ledger.
// The grand total is the sum of the twelve combined months, not the sum of
// the three feeds' grand totals; both agree within floating point.
func CombineLedger(realized, ne, workload SectionTotals) Ledger {
	l := Ledger{Months: make(map[MonthKey]float64, len(FiscalMonths))}
	for _, m := range FiscalMonths {
		v := realized.Months[m] + ne.Months[m] + workload.Months[m]
		l.Months[m] = v
		l.Total += v
	}
	return l
}

// RowTotal sums a single row's defined month amounts. It always equals the
// value maintained in Row.Total after any edit.
func RowTotal(r *Row) float64 {
	sum := 0.0
	for _, m := range FiscalMonths {
		if v, ok := r.Amounts[m]; ok {
			sum += v
		}
	}
	return sum
}
