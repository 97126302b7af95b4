package core

import (
	"errors"
	"testing"
)

func TestFiscalMonthOrder(t *testing.T) {
	if len(FiscalMonths) != 12 {
		t.Fatalf("expected 12 fiscal months, got %d", len(FiscalMonths))
	}
	if FiscalMonths[0] != June || FiscalMonths[11] != May {
		t.Fatalf("fiscal year must run June..May, got %v..%v", FiscalMonths[0], FiscalMonths[11])
	}
}

func TestParseFiscalMonth(t *testing.T) {
	tests := []struct {
		label   string
		want    MonthKey
		wantErr bool
	}{
		{"FY25-JUN", June, false},
		{"FY25-MAY", May, false},
		{"FY26-jan", January, false},
		{" FY25-SEP ", September, false},
		{"AUG", August, false},
		{"FY25-XXX", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFiscalMonth(tt.label)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseFiscalMonth(%q): expected error, got %v", tt.label, got)
			}
			if !errors.Is(err, ErrUnknownMonth) {
				t.Fatalf("ParseFiscalMonth(%q): expected ErrUnknownMonth, got %v", tt.label, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseFiscalMonth(%q): unexpected error %v", tt.label, err)
		}
		if got != tt.want {
			t.Fatalf("ParseFiscalMonth(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestMonthKeyValid(t *testing.T) {
	for _, m := range FiscalMonths {
		if !m.Valid() {
			t.Fatalf("%v should be valid", m)
		}
	}
	if MonthKey("smarch").Valid() {
		t.Fatal("smarch should not be a valid month")
	}
}
