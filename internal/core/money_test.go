package core

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"10", 10000, false},
		{"20", 20000, false},
		{"1,234.5", 1234500, false},
		{"$42", 42000, false},
		{"-3", -3000, false},
		{"", 0, true},
		{"n/a", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseAmount(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseProbability(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"90", 90},
		{" 75 ", 75},
		{"50%", 50},
		{"", 0},
		{"high", 0},
	}
	for _, tt := range tests {
		if got := ParseProbability(tt.in); got != tt.want {
			t.Fatalf("ParseProbability(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1_200_000, "$1.2M"},
		{10_000, "$10K"},
		{500, "$500"},
		{-25_000, "-$25K"},
		{0, "$0"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Fatalf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
