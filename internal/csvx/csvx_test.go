package csvx

import "testing"

func TestParseBasic(t *testing.T) {
	text := "Customer Name,Fiscal Month,Actual Consumption (k$)\nAcme,FY25-JUN,10\nGlobex,FY25-JUL,20\n"
	recs, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0]["Customer Name"] != "Acme" || recs[1]["Fiscal Month"] != "FY25-JUL" {
		t.Fatalf("unexpected records: %v", recs)
	}
}

func TestParseQuotedDelimiter(t *testing.T) {
	text := "Customer Name,Amount\n\"Acme, Inc.\",10\n"
	recs, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0]["Customer Name"] != "Acme, Inc." {
		t.Fatalf("quoted field with delimiter mangled: %v", recs)
	}
}

func TestParseEmptyAndHeaderOnly(t *testing.T) {
	for _, text := range []string{"", "   \n", "Customer Name,Amount\n"} {
		recs, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", text, err)
		}
		if len(recs) != 0 {
			t.Fatalf("Parse(%q): expected no records, got %v", text, recs)
		}
	}
}

func TestParseShortRow(t *testing.T) {
	text := "A,B,C\n1,2\n"
	recs, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0]["A"] != "1" || recs[0]["B"] != "2" {
		t.Fatalf("unexpected record: %v", recs[0])
	}
	if _, ok := recs[0]["C"]; ok {
		t.Fatalf("missing trailing field must be absent, got %v", recs[0])
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	text := "A,B\n1,2\n\n3,4\n"
	recs, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
}
